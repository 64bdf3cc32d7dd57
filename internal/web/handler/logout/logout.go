// Package logout provides the json handler ending an admin session.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-admin/folio-admin/internal/web/handler"
)

// Path is the path of the logout endpoint.
const Path = "/logout"

// Service is the logout handler service.
type Service struct {
	deps *handler.Deps
}

// New returns an uninitialized logout handler.
func New() *Service {
	return &Service{}
}

// Init registers the logout route below api.
func (s *Service) Init(api fiber.Router, deps *handler.Deps) error {
	if api == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	// no auth required, logging out twice is fine
	api.Post(Path, s.Logout)

	return nil
}

// Logout deletes the session from storage and clears the cookie.
// It always succeeds from the client's point of view.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := s.deps.Sessions.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	return handler.OK(c, nil)
}
