package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	gamesession "github.com/benbeisheim/chessrules-backend/internal/game"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/obslog"
	"github.com/benbeisheim/chessrules-backend/internal/store"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

// Game is one session with its seats and live observers. The session is only
// touched under mu. When both are needed, mu is taken before connections.mu.
type Game struct {
	ID          string
	mu          sync.Mutex
	saveMu      sync.Mutex
	session     *gamesession.Session
	white       string
	black       string
	connections *GameConnections
}

func NewGame(id string, session *gamesession.Session) *Game {
	return &Game{
		ID:      id,
		session: session,
		connections: &GameConnections{
			connections: make(map[string]Conn),
		},
	}
}

// gameFromSnapshot replays a stored game and restores its seats.
func gameFromSnapshot(snap *store.Snapshot) (*Game, error) {
	session, err := gamesession.Restore(gamesession.Snapshot{
		StartFEN: snap.StartFEN,
		Moves:    snap.Moves,
	})
	if err != nil {
		return nil, err
	}
	g := NewGame(strings.Clone(snap.ID), session)
	g.white = snap.White
	g.black = snap.Black
	return g, nil
}

// AddPlayer seats the player, white first. A player already seated gets their
// existing color back.
func (g *Game) AddPlayer(playerID string) (PlayerColor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.white == playerID:
		return ColorWhite, nil
	case g.black == playerID:
		return ColorBlack, nil
	case g.white == "":
		g.white = strings.Clone(playerID)
		return ColorWhite, nil
	case g.black == "":
		g.black = strings.Clone(playerID)
		return ColorBlack, nil
	}
	return "", errors.Wrapf(errors.ErrGameFull, "game %s", g.ID)
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	_, ok := g.SideOf(playerID)
	return ok
}

// SideOf returns the side the player is seated as.
func (g *Game) SideOf(playerID string) (model.Side, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sideOfLocked(playerID)
}

func (g *Game) sideOfLocked(playerID string) (model.Side, bool) {
	if playerID == "" {
		return model.White, false
	}
	switch playerID {
	case g.white:
		return model.White, true
	case g.black:
		return model.Black, true
	}
	return model.White, false
}

func (g *Game) canSpectate() bool {
	return g.white == "" || g.black == ""
}

// MakeMove plays a move for the player's seat and broadcasts the new state.
func (g *Game) MakeMove(playerID string, payload ws.MovePayload) (GameState, error) {
	g.mu.Lock()
	side, ok := g.sideOfLocked(playerID)
	if !ok {
		g.mu.Unlock()
		return GameState{}, errors.Wrapf(errors.ErrNotInGame, "player %s in game %s", playerID, g.ID)
	}
	if side != g.session.ToMove() {
		g.mu.Unlock()
		return GameState{}, errors.Wrapf(errors.ErrNotYourTurn, "%s to move", g.session.ToMove())
	}

	move := payload.Move(side)
	applied, err := g.session.MakeMove(move, false)
	if err != nil {
		g.mu.Unlock()
		return GameState{}, err
	}
	if !applied {
		g.mu.Unlock()
		return GameState{}, errors.Wrapf(errors.ErrIllegalMove, "%s", move)
	}
	state := g.stateLocked()

	// Holding connections.mu before releasing mu keeps broadcasts in move order.
	g.connections.mu.Lock()
	g.mu.Unlock()
	g.broadcastLocked(state)
	g.connections.mu.Unlock()

	obslog.L().Info("move applied",
		zap.String("game_id", g.ID),
		zap.String("player_id", playerID),
		zap.String("move", move.String()),
		zap.String("status", state.Status.String()),
	)
	return state, nil
}

// ValidateMove reports whether the move would be accepted for the player's
// seat, without playing it.
func (g *Game) ValidateMove(playerID string, payload ws.MovePayload) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	side, ok := g.sideOfLocked(playerID)
	if !ok {
		return false, errors.Wrapf(errors.ErrNotInGame, "player %s in game %s", playerID, g.ID)
	}
	return g.session.IsValidMove(payload.Move(side)), nil
}

// LegalMoves lists the legal moves of the side to move, optionally only those
// starting on from.
func (g *Game) LegalMoves(from *model.Square) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var moves []model.Move
	if from != nil {
		moves = g.session.LegalMovesFrom(*from)
	} else {
		moves = g.session.LegalMoves()
	}
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}

func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *Game) stateLocked() GameState {
	history := g.session.History()
	moves := make([]string, 0, len(history))
	for _, m := range history {
		moves = append(moves, m.String())
	}

	state := GameState{
		ID:          g.ID,
		FEN:         g.session.FEN(),
		Board:       boardRows(g.session.Board()),
		ToMove:      g.session.ToMove(),
		Status:      g.session.Status(),
		IsCheck:     g.session.InCheck(),
		Castling:    g.session.Rights(),
		MoveHistory: moves,
	}
	if last, ok := g.session.LastMove(); ok {
		state.LastMove = &last
	}
	if g.white != "" {
		state.Players.White = &Player{ID: g.white, Color: ColorWhite}
	}
	if g.black != "" {
		state.Players.Black = &Player{ID: g.black, Color: ColorBlack}
	}
	return state
}

// Snapshot captures what the store needs to rebuild this game.
func (g *Game) Snapshot() *store.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *Game) snapshotLocked() *store.Snapshot {
	snap := g.session.Snapshot()
	return &store.Snapshot{
		ID:        g.ID,
		StartFEN:  snap.StartFEN,
		Moves:     snap.Moves,
		White:     g.white,
		Black:     g.black,
		UpdatedAt: time.Now().UTC(),
	}
}

// Save writes the current snapshot to st. Saves of one game run one at a time
// and each takes its snapshot after the previous save finished, so an older
// snapshot never overwrites a newer one.
func (g *Game) Save(ctx context.Context, st store.Store) error {
	g.saveMu.Lock()
	defer g.saveMu.Unlock()
	return st.Save(ctx, g.Snapshot())
}

// RegisterConnection attaches a live connection for a seated player, or for a
// spectator while a seat is still open, and sends it the current state.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	if !g.isPlayerInGameLocked(playerID) && !g.canSpectate() {
		g.mu.Unlock()
		return errors.Wrapf(errors.ErrNotInGame, "player %s in game %s", playerID, g.ID)
	}
	state := g.stateLocked()

	// Registering before mu is released means no move can land between the
	// state sent here and the next broadcast.
	g.connections.mu.Lock()
	g.mu.Unlock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		return errors.Wrapf(errors.ErrIllegalState, "player %s already connected", playerID)
	}
	playerID = strings.Clone(playerID)
	g.connections.connections[playerID] = conn
	obslog.L().Debug("connection registered",
		zap.String("game_id", g.ID),
		zap.String("player_id", playerID),
	)

	if err := conn.WriteJSON(stateMessage(state)); err != nil {
		delete(g.connections.connections, playerID)
		return err
	}
	return nil
}

func (g *Game) isPlayerInGameLocked(playerID string) bool {
	_, ok := g.sideOfLocked(playerID)
	return ok
}

// UnregisterConnection detaches conn. A newer connection registered for the
// same player is left alone.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
		obslog.L().Debug("connection unregistered",
			zap.String("game_id", g.ID),
			zap.String("player_id", playerID),
		)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	return len(g.connections.connections)
}

// broadcastLocked writes state to every connection and drops the ones that
// fail. Callers hold connections.mu.
func (g *Game) broadcastLocked(state GameState) {
	msg := stateMessage(state)
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(msg); err != nil {
			obslog.L().Warn("dropping connection after failed write",
				zap.String("game_id", g.ID),
				zap.String("player_id", playerID),
				zap.Error(err),
			)
			_ = conn.Close()
			delete(g.connections.connections, playerID)
		}
	}
}

func stateMessage(state GameState) ws.Message {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		obslog.L().Error("encode game state", zap.String("game_id", state.ID), zap.Error(err))
	}
	return msg
}
