// Package fen converts between positions and FEN-style text.
//
// Only piece placement, side to move and castling availability are read. The
// en-passant, halfmove and fullmove fields are accepted and ignored, and are
// written back as "- 0 1".
package fen

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/model"
)

// InitialFEN is the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Parse reads a position. A missing side field means White to move and a
// missing castling field means every right is held.
func Parse(s string) (*model.Position, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidPosition)
	}

	pos := &model.Position{
		History: make([]model.Move, 0),
		Rights:  model.AllCastlingRights(),
		ToMove:  model.White,
	}
	if err := parsePiecePositions(&pos.Board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(pos, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(pos, parts); err != nil {
		return nil, err
	}
	return pos, nil
}

// MustParse is Parse for positions known to be valid. It panics otherwise.
func MustParse(s string) *model.Position {
	pos, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return pos
}

func parsePiecePositions(b *model.Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d: %w", len(ranks), errors.ErrInvalidPosition)
	}

	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, ok := model.PieceFromLetter(c)
			if !ok {
				return fmt.Errorf("invalid piece character %q: %w", c, errors.ErrInvalidPosition)
			}
			if file > 7 {
				return fmt.Errorf("rank %d overflows: %w", rank+1, errors.ErrInvalidPosition)
			}
			b.Set(model.NewSquare(file, rank), p)
			file++
		}
		if file != 8 {
			return fmt.Errorf("rank %d has %d files: %w", rank+1, file, errors.ErrInvalidPosition)
		}
	}
	return nil
}

func parseSideToMove(pos *model.Position, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		pos.ToMove = model.White
	case "b":
		pos.ToMove = model.Black
	default:
		return fmt.Errorf("invalid side to move %q: %w", parts[1], errors.ErrInvalidPosition)
	}
	return nil
}

func parseCastlingRights(pos *model.Position, parts []string) error {
	if len(parts) < 3 {
		return nil
	}
	pos.Rights = model.CastlingRights{}
	if parts[2] == "-" {
		return nil
	}
	// Flags appear at most once, in KQkq order.
	last := -1
	for _, c := range parts[2] {
		idx := strings.IndexRune("KQkq", c)
		if idx <= last {
			return fmt.Errorf("invalid castling field %q: %w", parts[2], errors.ErrInvalidPosition)
		}
		last = idx
		switch c {
		case 'K':
			pos.Rights.WhiteKingside = true
		case 'Q':
			pos.Rights.WhiteQueenside = true
		case 'k':
			pos.Rights.BlackKingside = true
		case 'q':
			pos.Rights.BlackQueenside = true
		default:
			return fmt.Errorf("invalid castling field %q: %w", parts[2], errors.ErrInvalidPosition)
		}
	}
	return nil
}

// Format writes pos in the form Parse reads.
func Format(pos *model.Position) string {
	var sb strings.Builder

	writePiecePositions(&sb, &pos.Board)
	sb.WriteByte(' ')
	if pos.ToMove == model.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, pos.Rights)
	sb.WriteString(" - 0 1")

	return sb.String()
}

func writePiecePositions(sb *strings.Builder, b *model.Board) {
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p, ok := b.Get(model.NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

func writeCastlingRights(sb *strings.Builder, r model.CastlingRights) {
	start := sb.Len()
	if r.WhiteKingside {
		sb.WriteByte('K')
	}
	if r.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if r.BlackKingside {
		sb.WriteByte('k')
	}
	if r.BlackQueenside {
		sb.WriteByte('q')
	}
	if sb.Len() == start {
		sb.WriteByte('-')
	}
}
