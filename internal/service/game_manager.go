package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	gamesession "github.com/benbeisheim/chessrules-backend/internal/game"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/obslog"
	"github.com/benbeisheim/chessrules-backend/internal/store"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

// GameManager owns the live games, the matchmaking queue and the snapshot
// store. Games evicted from memory are restored from the store on demand.
type GameManager struct {
	games            map[string]*Game
	queue            *Queue
	matchingChannels map[string]chan string
	store            store.Store
	interval         time.Duration
	mu               sync.RWMutex
}

func NewGameManager(st store.Store, interval time.Duration) *GameManager {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &GameManager{
		games:            make(map[string]*Game),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan string),
		store:            st,
		interval:         interval,
	}
}

// Run pairs queued players every interval until ctx is done.
func (gm *GameManager) Run(ctx context.Context) {
	ticker := time.NewTicker(gm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gm.processMatchmaking(ctx)
		}
	}
}

// processMatchmaking pairs queued players two at a time into fresh games and
// notifies their registered channels.
func (gm *GameManager) processMatchmaking(ctx context.Context) int {
	matched := 0
	for {
		first, second, ok := gm.queue.GetNextPair()
		if !ok {
			return matched
		}

		game, err := gm.newGame("")
		if err != nil {
			obslog.L().Error("create matched game", zap.Error(err))
			return matched
		}
		firstColor, _ := game.AddPlayer(first.ID)
		secondColor, _ := game.AddPlayer(second.ID)

		gm.mu.Lock()
		gm.games[game.ID] = game
		gm.sendMatchFound(first.ID, ws.MatchFoundEvent{GameID: game.ID, Color: string(firstColor)})
		gm.sendMatchFound(second.ID, ws.MatchFoundEvent{GameID: game.ID, Color: string(secondColor)})
		gm.mu.Unlock()

		gm.persist(ctx, game)
		obslog.L().Info("match found",
			zap.String("game_id", game.ID),
			zap.String("white", first.ID),
			zap.String("black", second.ID),
		)
		matched++
	}
}

// sendMatchFound delivers the event to the player's channel, if any, and
// retires the channel. Callers hold gm.mu.
func (gm *GameManager) sendMatchFound(playerID string, event ws.MatchFoundEvent) bool {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return false
	}
	delete(gm.matchingChannels, playerID)

	select {
	case ch <- mustJSON(event):
		close(ch)
		return true
	default:
		obslog.L().Warn("match found event not delivered", zap.String("player_id", playerID))
		close(ch)
		return false
	}
}

// RegisterMatchmakingChannel sets the channel that receives the player's
// match event. An earlier channel for the same player is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[strings.Clone(playerID)] = ch
}

// UnregisterMatchmakingChannel forgets the player's channel without closing it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, exists := gm.matchingChannels[playerID]; exists && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func mustJSON(v interface{}) string {
	bytes, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func (gm *GameManager) newGame(setup string) (*Game, error) {
	session, err := gamesession.NewSession(setup)
	if err != nil {
		return nil, err
	}
	return NewGame(uuid.New().String(), session), nil
}

// CreateGame starts a game from setup, or from the standard position when
// setup is blank, and returns its id.
func (gm *GameManager) CreateGame(ctx context.Context, setup string) (string, error) {
	game, err := gm.newGame(setup)
	if err != nil {
		return "", err
	}

	gm.mu.Lock()
	gm.games[game.ID] = game
	gm.mu.Unlock()

	gm.persist(ctx, game)
	obslog.L().Info("game created", zap.String("game_id", game.ID))
	return game.ID, nil
}

// GetGame looks the game up in memory, then in the store.
func (gm *GameManager) GetGame(ctx context.Context, gameID string) (*Game, error) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return game, nil
	}

	snap, err := gm.store.Load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	restored, err := gameFromSnapshot(snap)
	if err != nil {
		return nil, errors.Wrapf(err, "restore game %s", gameID)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	if game, exists := gm.games[gameID]; exists {
		return game, nil
	}
	gm.games[restored.ID] = restored
	obslog.L().Info("game restored", zap.String("game_id", gameID), zap.Int("moves", len(snap.Moves)))
	return restored, nil
}

// Evict drops a game from memory. It stays in the store.
func (gm *GameManager) Evict(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.games, gameID)
}

func (gm *GameManager) AddPlayerToGame(ctx context.Context, gameID string, playerID string) (PlayerColor, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return "", err
	}
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	gm.persist(ctx, game)
	obslog.L().Info("player joined",
		zap.String("game_id", gameID),
		zap.String("player_id", playerID),
		zap.String("color", string(color)),
	)
	return color, nil
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	if err := gm.queue.AddPlayer(QueuedPlayer{ID: playerID}); err != nil {
		return err
	}
	obslog.L().Info("player queued", zap.String("player_id", playerID), zap.Int("queue_size", gm.queue.Size()))
	return nil
}

func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.Remove(playerID)
}

func (gm *GameManager) GetGameState(ctx context.Context, gameID string) (GameState, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return GameState{}, err
	}
	return game.State(), nil
}

// MakeMove plays a move for the player's seat and persists the game.
func (gm *GameManager) MakeMove(ctx context.Context, gameID string, playerID string, move ws.MovePayload) (GameState, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return GameState{}, err
	}
	state, err := game.MakeMove(playerID, move)
	if err != nil {
		return GameState{}, err
	}
	gm.persist(ctx, game)
	return state, nil
}

func (gm *GameManager) ValidateMove(ctx context.Context, gameID string, playerID string, move ws.MovePayload) (bool, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return false, err
	}
	return game.ValidateMove(playerID, move)
}

func (gm *GameManager) LegalMoves(ctx context.Context, gameID string, from *model.Square) ([]string, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(from), nil
}

func (gm *GameManager) RegisterConnection(ctx context.Context, gameID string, playerID string, conn Conn) error {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// persist saves the game snapshot. The in-memory game stays authoritative, so
// a failed save is logged and not returned.
func (gm *GameManager) persist(ctx context.Context, game *Game) {
	if err := game.Save(ctx, gm.store); err != nil {
		obslog.L().Error("save game snapshot", zap.String("game_id", game.ID), zap.Error(err))
	}
}

// Close releases the store.
func (gm *GameManager) Close() error {
	return gm.store.Close()
}
