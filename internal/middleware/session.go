package middleware

import (
	"study-deck/internal/logger"
	"study-deck/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	SessionIDHeader = "X-Session-ID"
	SessionIDKey    = "sessionID"
)

// Session resolves the workspace session id from X-Session-ID, minting a new
// one when the header is absent or malformed. The id is always echoed back.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(SessionIDHeader)
		if !util.ValidSessionID(id) {
			newID, err := util.NewSessionID()
			if err != nil {
				logger.Get().Error("Failed to generate session id", zap.Error(err))
				return fiber.NewError(fiber.StatusInternalServerError, "could not create session")
			}
			if id != "" {
				logger.Get().Debug("Replacing malformed session id", zap.String("received", id))
			}
			id = newID
		}
		c.Locals(SessionIDKey, id)
		c.Set(SessionIDHeader, id)
		return c.Next()
	}
}

func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionIDKey).(string)
	return id
}
