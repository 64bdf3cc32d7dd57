// Package social provides the json api of the social profile links.
package social

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/folio-admin/folio-admin/internal/db/controller/collection"
	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/web/handler"
)

const (
	// Path of the socials collection.
	Path = "/socials"

	resource = "Social"
)

// Payload is the accepted body of create and update.
type Payload struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url"      validate:"required"`
	Icon     string `json:"icon"`
}

func (p *Payload) fields(present handler.Present) collection.Fields {
	f := collection.Fields{
		"platform": p.Platform,
		"url":      p.URL,
	}

	if present.Has("icon") {
		f["icon"] = p.Icon
	}

	return f
}

// Service is the socials handler service.
type Service struct {
	deps      *handler.Deps
	validator *handler.Validator
}

// New returns an uninitialized socials handler.
func New() *Service {
	return &Service{}
}

// Init registers the social routes below api.
func (s *Service) Init(api fiber.Router, deps *handler.Deps) error {
	if api == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps
	s.validator = handler.NewValidator()

	api.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Get(handler.IDPath, s.Get)
		router.Post(handler.RootPath, deps.RequireAuth(), s.Create)
		router.Put(handler.IDPath, deps.RequireAuth(), s.Update)
		router.Delete(handler.IDPath, deps.RequireAuth(), s.Delete)
	})

	return nil
}

// List returns all socials in creation order.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := s.deps.Store.Socials.All(c.UserContext())
	if err != nil {
		return err
	}

	return handler.OK(c, rows)
}

// Get returns a single social link.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	row, err := s.deps.Store.Socials.Get(c.UserContext(), id)
	if errors.Is(err, collection.ErrNotFound) {
		return handler.NotFound(resource)
	}

	if err != nil {
		return err
	}

	return handler.OK(c, row)
}

func (s *Service) payload(c *fiber.Ctx) (*Payload, handler.Present, error) {
	p := new(Payload)

	present, err := handler.Decode(c, p)
	if err != nil {
		return nil, nil, handler.BadRequest(err)
	}

	msg, err := s.validator.Check(p)
	if err != nil {
		return nil, nil, err
	}

	if msg != "" {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, msg)
	}

	return p, present, nil
}

// Create stores a new social link.
func (s *Service) Create(c *fiber.Ctx) error {
	p, _, err := s.payload(c)
	if err != nil {
		return err
	}

	id, err := s.deps.Store.Socials.Add(c.UserContext(), &models.Social{
		Platform: p.Platform,
		URL:      p.URL,
		Icon:     p.Icon,
	})
	if err != nil {
		return err
	}

	return c.JSON(handler.Response{Success: true, ID: id})
}

// Update overwrites the sent fields of a social link.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	p, present, err := s.payload(c)
	if err != nil {
		return err
	}

	found, err := s.deps.Store.Socials.Update(c.UserContext(), id, p.fields(present))
	if err != nil {
		return err
	}

	if !found {
		return handler.NotFound(resource)
	}

	return handler.OK(c, nil)
}

// Delete removes a social link.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	found, err := s.deps.Store.Socials.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}

	if !found {
		return handler.NotFound(resource)
	}

	return handler.OK(c, nil)
}
