package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/benbeisheim/chessrules-backend/internal/errors"
	"github.com/benbeisheim/chessrules-backend/internal/obslog"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errors.ErrNotInGame), errors.Is(err, errors.ErrNotYourTurn):
		return fiber.StatusForbidden
	case errors.Is(err, errors.ErrGameFull), errors.Is(err, errors.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, errors.ErrIllegalMove),
		errors.Is(err, errors.ErrIllegalState),
		errors.Is(err, errors.ErrInvalidArgument),
		errors.Is(err, errors.ErrInvalidPosition):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		obslog.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		msg = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}
