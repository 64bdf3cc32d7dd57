// Package user provides the json api of the additional admin accounts.
// Every route requires an authenticated session, password hashes never leave the store.
package user

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-admin/folio-admin/internal/auth"
	"github.com/folio-admin/folio-admin/internal/db/controller/collection"
	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/web/handler"
)

const (
	// Path of the users collection.
	Path = "/users"

	// DuplicateMessage is sent when the username is taken by another user.
	DuplicateMessage = "Username already exists"

	resource = "User"
)

// Payload is the accepted body of create and update.
type Payload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Service is the users handler service.
type Service struct {
	deps      *handler.Deps
	validator *handler.Validator
}

// New returns an uninitialized users handler.
func New() *Service {
	return &Service{}
}

// Init registers the user routes below api.
func (s *Service) Init(api fiber.Router, deps *handler.Deps) error {
	if api == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	s.validator = handler.NewValidator()

	api.Route(Path, func(router fiber.Router) {
		router.Use(deps.RequireAuth())
		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, s.Create)
		router.Put(handler.IDPath, s.Update)
		router.Delete(handler.IDPath, s.Delete)
	})

	return nil
}

// List returns id, username and created_at of all users.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := s.deps.Store.Users.All(c.UserContext())
	if err != nil {
		return err
	}

	return handler.OK(c, rows)
}

func (s *Service) payload(c *fiber.Ctx) (*Payload, error) {
	p := new(Payload)

	if _, err := handler.Decode(c, p); err != nil {
		return nil, handler.BadRequest(err)
	}

	msg, err := s.validator.Check(p)
	if err != nil {
		return nil, err
	}

	if msg != "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, msg)
	}

	return p, nil
}

// taken reports whether username belongs to a user other than id.
func (s *Service) taken(ctx context.Context, username string, id uint64) (bool, error) {
	existing, err := s.deps.Store.FindUserByUsername(ctx, username)
	if errors.Is(err, collection.ErrNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return existing.ID != id, nil
}

// Create stores a new user with a hashed password.
func (s *Service) Create(c *fiber.Ctx) error {
	p, err := s.payload(c)
	if err != nil {
		return err
	}

	taken, err := s.taken(c.UserContext(), p.Username, 0)
	if err != nil {
		return err
	}

	if taken {
		return fiber.NewError(fiber.StatusBadRequest, DuplicateMessage)
	}

	hash, err := models.HashPassword(p.Password)
	if err != nil {
		return err
	}

	id, err := s.deps.Store.Users.Add(c.UserContext(), &models.User{Username: p.Username, Password: hash})
	if err != nil {
		return err
	}

	log.Info().Str("user", auth.CurrentUser(c)).Str("created", p.Username).Msg("user created")

	return c.JSON(handler.Response{Success: true, ID: id})
}

// Update replaces username and password of a user.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	p, err := s.payload(c)
	if err != nil {
		return err
	}

	taken, err := s.taken(c.UserContext(), p.Username, id)
	if err != nil {
		return err
	}

	if taken {
		return fiber.NewError(fiber.StatusBadRequest, DuplicateMessage)
	}

	hash, err := models.HashPassword(p.Password)
	if err != nil {
		return err
	}

	found, err := s.deps.Store.Users.Update(c.UserContext(), id, collection.Fields{
		"username": p.Username,
		"password": hash,
	})
	if err != nil {
		return err
	}

	if !found {
		return handler.NotFound(resource)
	}

	return handler.OK(c, nil)
}

// Delete removes a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	found, err := s.deps.Store.Users.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}

	if !found {
		return handler.NotFound(resource)
	}

	log.Info().Str("user", auth.CurrentUser(c)).Uint64("deleted", id).Msg("user deleted")

	return handler.OK(c, nil)
}
