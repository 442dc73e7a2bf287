package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"recipebox/web/models"
	"recipebox/web/utils"
)

// SessionReader is the part of the session service middleware needs.
type SessionReader interface {
	GetSession(c *fiber.Ctx) (*models.UserSession, error)
}

// AuthRequired middleware ensures the user is authenticated
func AuthRequired(sessions SessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := sessions.GetSession(c)
		if err != nil {
			slog.Debug("Auth required: no valid session", slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		if session == nil || session.UserID == 0 {
			slog.Debug("Auth required: invalid session")
			return utils.SendUnauthorized(c, "Authentication required")
		}

		c.Locals("user", session)

		return c.Next()
	}
}

// OptionalAuth middleware adds user info to context if authenticated, but doesn't require it
func OptionalAuth(sessions SessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := sessions.GetSession(c)
		if err == nil && session != nil && session.UserID != 0 {
			c.Locals("user", session)
		}

		return c.Next()
	}
}
