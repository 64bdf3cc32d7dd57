// Package testimonial provides the json api of the testimonials collection.
package testimonial

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/folio-admin/folio-admin/internal/db/controller/collection"
	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/web/handler"
)

const (
	// Path of the testimonials collection.
	Path = "/testimonials"

	resource = "Testimonial"
)

// Payload is the accepted body of create and update.
// A missing or zero rating is stored as models.DefaultRating.
type Payload struct {
	Name    string      `json:"name"    validate:"required"`
	Role    string      `json:"role"`
	Message string      `json:"message" validate:"required"`
	Rating  handler.Int `json:"rating"  validate:"omitempty,min=1,max=5"`
}

func (p *Payload) rating() int {
	if p.Rating == 0 {
		return models.DefaultRating
	}

	return int(p.Rating)
}

func (p *Payload) fields(present handler.Present) collection.Fields {
	f := collection.Fields{
		"name":    p.Name,
		"message": p.Message,
	}

	if present.Has("role") {
		f["role"] = p.Role
	}

	if present.Has("rating") {
		f["rating"] = p.rating()
	}

	return f
}

// Service is the testimonials handler service.
type Service struct {
	deps      *handler.Deps
	validator *handler.Validator
}

// New returns an uninitialized testimonials handler.
func New() *Service {
	return &Service{}
}

// Init registers the testimonial routes below api.
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

// List returns all testimonials in creation order.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := s.deps.Store.Testimonials.All(c.UserContext())
	if err != nil {
		return err
	}

	return handler.OK(c, rows)
}

// Get returns a single testimonial.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	row, err := s.deps.Store.Testimonials.Get(c.UserContext(), id)
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

// Create stores a new testimonial.
func (s *Service) Create(c *fiber.Ctx) error {
	p, _, err := s.payload(c)
	if err != nil {
		return err
	}

	id, err := s.deps.Store.Testimonials.Add(c.UserContext(), &models.Testimonial{
		Name:    p.Name,
		Role:    p.Role,
		Message: p.Message,
		Rating:  p.rating(),
	})
	if err != nil {
		return err
	}

	return c.JSON(handler.Response{Success: true, ID: id, Message: "Testimonial created"})
}

// Update overwrites the sent fields of a testimonial.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	p, present, err := s.payload(c)
	if err != nil {
		return err
	}

	found, err := s.deps.Store.Testimonials.Update(c.UserContext(), id, p.fields(present))
	if err != nil {
		return err
	}

	if !found {
		return handler.NotFound(resource)
	}

	return c.JSON(handler.Response{Success: true, Message: "Testimonial updated"})
}

// Delete removes a testimonial.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	found, err := s.deps.Store.Testimonials.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}

	if !found {
		return handler.NotFound(resource)
	}

	return c.JSON(handler.Response{Success: true, Message: "Testimonial deleted"})
}
