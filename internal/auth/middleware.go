package auth

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	fiberlogger "github.com/folio-admin/folio-admin/internal/logger/adapter/fiber"
	"github.com/folio-admin/folio-admin/internal/web/session"
)

// LocalsSession is the fiber.Ctx locals key of the *session.Data of an authenticated request.
const LocalsSession = "session"

// UnauthorizedMessage is the only error text an anonymous caller gets to see.
const UnauthorizedMessage = "Unauthorized access"

// Checker confirms that the identity behind a session still exists.
type Checker interface {
	Valid(ctx context.Context, data *session.Data) (bool, error)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   UnauthorizedMessage,
	})
}

// RequireAuthenticated creates Fiber middleware that only lets authenticated sessions pass.
// Sessions whose identity checker no longer accepts are destroyed.
// The session window is renewed on every successful pass.
func RequireAuthenticated(sessions *session.Manager, checker Checker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, id, err := sessions.Current(c)
		if err != nil {
			log.Error().Err(err).Msg("Failed to read session")
		}

		if data == nil {
			return unauthorized(c)
		}

		ok, err := checker.Valid(c.UserContext(), data)
		if err != nil {
			return fmt.Errorf("check session of %s: %w", data.Username, err)
		}

		if !ok {
			log.Info().Str("user", data.Username).Msg("session of a changed or removed user dropped")

			if err = sessions.Destroy(c); err != nil {
				log.Error().Err(err).Msg("Failed to destroy session")
			}

			return unauthorized(c)
		}

		if err = sessions.Renew(c, id, data); err != nil {
			log.Error().Err(err).Str("user", data.Username).Msg("Failed to renew session")
		}

		c.Locals(LocalsSession, data)
		c.Locals(fiberlogger.LocalsUser, data.Username)

		return c.Next()
	}
}

// CurrentUser returns the identity label stored by RequireAuthenticated, empty otherwise.
func CurrentUser(c *fiber.Ctx) string {
	if data, ok := c.Locals(LocalsSession).(*session.Data); ok {
		return data.Username
	}

	return ""
}
