package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/folio-admin/folio-admin/internal/auth"
	"github.com/folio-admin/folio-admin/internal/config"
	"github.com/folio-admin/folio-admin/internal/db/store"
	"github.com/folio-admin/folio-admin/internal/web/session"
)

// Deps are the collaborators every api handler is built from.
type Deps struct {
	Cfg      *config.Config
	Store    *store.Store
	Sessions *session.Manager
	Auth     *auth.Service
}

// Valid reports whether all dependencies are set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.Store != nil && d.Sessions != nil && d.Auth != nil
}

// RequireAuth returns the middleware guarding mutating routes.
func (d *Deps) RequireAuth() fiber.Handler {
	return auth.RequireAuthenticated(d.Sessions, d.Auth)
}

// Service is the interface for a web handler service.
type Service interface {
	Init(api fiber.Router, deps *Deps) error
}
