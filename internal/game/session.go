// Package game holds a single game session: one position, its status and the
// setup it started from. A Session is not safe for concurrent use.
package game

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/fen"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/rules"
)

type Session struct {
	pos      *model.Position
	startFEN string
	status   model.GameStatus
}

// Snapshot is enough to rebuild a session: the setup and the moves played
// from it in coordinate notation.
type Snapshot struct {
	StartFEN string   `json:"startFen"`
	Moves    []string `json:"moves"`
}

// NewSession starts a game from setup, or from the standard position when
// setup is blank.
func NewSession(setup string) (*Session, error) {
	var pos *model.Position
	if strings.TrimSpace(setup) == "" {
		pos = model.NewPosition()
	} else {
		parsed, err := fen.Parse(setup)
		if err != nil {
			return nil, err
		}
		pos = parsed
	}

	return &Session{
		pos:      pos,
		startFEN: fen.Format(pos),
		status:   rules.Classify(pos),
	}, nil
}

// MakeMove applies m. The boolean is false when the move was rejected, in which
// case nothing changed. Status is only recomputed after an applied move.
func (s *Session) MakeMove(m model.Move, alreadyValidated bool) (bool, error) {
	ok, err := rules.Apply(s.pos, m, alreadyValidated)
	if err != nil || !ok {
		return false, err
	}
	s.status = rules.Classify(s.pos)
	return true, nil
}

// ParseMove reads coordinate notation such as "e2e4" or "e7e8q" for the side
// to move.
func (s *Session) ParseMove(text string) (model.Move, error) {
	m, err := model.ParseMove(text, s.pos.ToMove)
	if err != nil {
		return model.Move{}, errors.Wrap(errors.ErrInvalidArgument, err.Error())
	}
	return m, nil
}

func (s *Session) IsValidMove(m model.Move) bool {
	return rules.IsLegal(s.pos, m)
}

func (s *Session) PieceAt(sq model.Square) (model.Piece, bool) {
	return s.pos.Board.Get(sq)
}

func (s *Session) Status() model.GameStatus {
	return s.status
}

func (s *Session) ToMove() model.Side {
	return s.pos.ToMove
}

func (s *Session) Rights() model.CastlingRights {
	return s.pos.Rights
}

// History returns a copy of the applied moves, oldest first.
func (s *Session) History() []model.Move {
	out := make([]model.Move, len(s.pos.History))
	copy(out, s.pos.History)
	return out
}

func (s *Session) LastMove() (model.Move, bool) {
	return s.pos.LastMove()
}

// Board returns a copy of the current board.
func (s *Session) Board() model.Board {
	return s.pos.Board.Copy()
}

func (s *Session) FEN() string {
	return fen.Format(s.pos)
}

func (s *Session) StartFEN() string {
	return s.startFEN
}

func (s *Session) InCheck() bool {
	return rules.InCheck(s.pos)
}

func (s *Session) LegalMoves() []model.Move {
	return rules.LegalMoves(s.pos)
}

func (s *Session) LegalMovesFrom(sq model.Square) []model.Move {
	return rules.LegalMovesFrom(s.pos, sq)
}

func (s *Session) Snapshot() Snapshot {
	moves := make([]string, 0, len(s.pos.History))
	for _, m := range s.pos.History {
		moves = append(moves, m.String())
	}
	return Snapshot{StartFEN: s.startFEN, Moves: moves}
}

// Restore rebuilds a session by replaying every recorded move with full
// legality checks.
func Restore(snap Snapshot) (*Session, error) {
	s, err := NewSession(snap.StartFEN)
	if err != nil {
		return nil, err
	}
	for i, text := range snap.Moves {
		m, err := s.ParseMove(text)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		ok, err := s.MakeMove(m, false)
		if err != nil {
			return nil, fmt.Errorf("move %d %s: %w", i+1, text, err)
		}
		if !ok {
			return nil, fmt.Errorf("move %d %s: %w", i+1, text, errors.ErrIllegalMove)
		}
	}
	return s, nil
}
