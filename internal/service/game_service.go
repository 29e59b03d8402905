package service

import (
	"context"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) JoinGame(ctx context.Context, gameID string, playerID string) (PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(ctx, gameID, playerID)
}

// CreateGame starts a game from a FEN setup, or the standard position when
// fen is blank.
func (gs *GameService) CreateGame(ctx context.Context, fen string) (string, error) {
	gameID, err := gs.gameManager.CreateGame(ctx, fen)
	if err != nil {
		return "", errors.Wrap(err, "failed to create game")
	}
	return gameID, nil
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetGameState(ctx context.Context, gameID string) (GameState, error) {
	return gs.gameManager.GetGameState(ctx, gameID)
}

func (gs *GameService) HandleMove(ctx context.Context, gameID string, playerID string, move ws.MovePayload) (GameState, error) {
	return gs.gameManager.MakeMove(ctx, gameID, playerID, move)
}

func (gs *GameService) ValidateMove(ctx context.Context, gameID string, playerID string, move ws.MovePayload) (bool, error) {
	return gs.gameManager.ValidateMove(ctx, gameID, playerID, move)
}

// LegalMoves lists legal moves in coordinate notation. from may be blank for
// every legal move of the side to move.
func (gs *GameService) LegalMoves(ctx context.Context, gameID string, from string) ([]string, error) {
	var square *model.Square
	if from = strings.TrimSpace(from); from != "" {
		sq, err := model.ParseSquare(from)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidArgument, err.Error())
		}
		square = &sq
	}
	return gs.gameManager.LegalMoves(ctx, gameID, square)
}

func (gs *GameService) RegisterConnection(ctx context.Context, gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(ctx, gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
