package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

// CreateGame starts a game, from the standard position unless the body
// carries a fen.
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, errors.Wrap(errors.ErrInvalidArgument, err.Error()))
		}
	}

	gameID, err := gc.gameService.CreateGame(c.UserContext(), req.FEN)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := middleware.PlayerID(c)

	color, err := gc.gameService.JoinGame(c.UserContext(), gameID, playerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.UserContext(), c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(gameState)
}

func parseMove(c *fiber.Ctx) (ws.MovePayload, error) {
	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return move, errors.Wrap(errors.ErrInvalidArgument, err.Error())
	}
	return move, nil
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	move, err := parseMove(c)
	if err != nil {
		return writeError(c, err)
	}
	state, err := gc.gameService.HandleMove(c.UserContext(), c.Params("gameId"), middleware.PlayerID(c), move)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) ValidateMove(c *fiber.Ctx) error {
	move, err := parseMove(c)
	if err != nil {
		return writeError(c, err)
	}
	valid, err := gc.gameService.ValidateMove(c.UserContext(), c.Params("gameId"), middleware.PlayerID(c), move)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"valid": valid,
	})
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	moves, err := gc.gameService.LegalMoves(c.UserContext(), c.Params("gameId"), c.Query("from"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"moves": moves,
	})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	if err := gc.gameService.JoinMatchmaking(middleware.PlayerID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	removed := gc.gameService.LeaveMatchmaking(middleware.PlayerID(c))
	return c.JSON(fiber.Map{
		"removed": removed,
	})
}

// Register mounts the game routes on router.
func (gc *GameController) Register(router fiber.Router) {
	router.Post("/matchmaking/join", gc.JoinMatchmaking)
	router.Post("/matchmaking/leave", gc.LeaveMatchmaking)
	router.Post("/create", gc.CreateGame)
	router.Post("/join/:gameId", gc.JoinGame)
	router.Get("/:gameId", gc.GetGameState)
	router.Post("/:gameId/move", gc.MakeMove)
	router.Post("/:gameId/validate", gc.ValidateMove)
	router.Get("/:gameId/moves", gc.LegalMoves)
}
