package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/benbeisheim/chessrules-backend/internal/obslog"
)

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if id := PlayerID(c); id != "" {
			fields = append(fields, zap.String("player_id", id))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			obslog.L().Error("request", append(fields, zap.Error(err))...)
		case status >= fiber.StatusBadRequest:
			obslog.L().Warn("request", fields...)
		default:
			obslog.L().Debug("request", fields...)
		}
		return err
	}
}
