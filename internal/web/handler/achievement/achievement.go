// Package achievement provides the json api of the achievements collection.
package achievement

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/folio-admin/folio-admin/internal/db/controller/collection"
	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/web/handler"
)

const (
	// Path of the achievements collection.
	Path = "/achievements"

	// Order lists the newest year first, records of the same year newest first.
	Order = "year DESC, id DESC"

	resource = "Achievement"
)

// Payload is the accepted body of create and update.
type Payload struct {
	Title       string         `json:"title"       validate:"required"`
	Description string         `json:"description"`
	Year        handler.Int    `json:"year"`
	Highlight   handler.Truthy `json:"highlight"`
	Icon        string         `json:"icon"`
	Link        string         `json:"link"`
}

func (p *Payload) icon() string {
	if p.Icon == "" {
		return models.DefaultAchievementIcon
	}

	return p.Icon
}

func (p *Payload) link() string {
	if p.Link == "" {
		return models.DefaultAchievementLink
	}

	return p.Link
}

// record builds a new achievement with defaults applied.
func (p *Payload) record() *models.Achievement {
	return &models.Achievement{
		Title:       p.Title,
		Description: p.Description,
		Year:        int(p.Year),
		Highlight:   bool(p.Highlight),
		Icon:        p.icon(),
		Link:        p.link(),
	}
}

// fields lists the columns to overwrite, only keys the client sent are included.
func (p *Payload) fields(present handler.Present) collection.Fields {
	f := collection.Fields{"title": p.Title}

	if present.Has("description") {
		f["description"] = p.Description
	}

	if present.Has("year") {
		f["year"] = int(p.Year)
	}

	if present.Has("highlight") {
		f["highlight"] = bool(p.Highlight)
	}

	if present.Has("icon") {
		f["icon"] = p.icon()
	}

	if present.Has("link") {
		f["link"] = p.link()
	}

	return f
}

// Service is the achievements handler service.
type Service struct {
	deps      *handler.Deps
	validator *handler.Validator
}

// New returns an uninitialized achievements handler.
func New() *Service {
	return &Service{}
}

// Init registers the achievement routes below api.
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

// List returns all achievements, newest year first.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := s.deps.Store.Achievements.AllOrdered(c.UserContext(), Order)
	if err != nil {
		return err
	}

	return handler.OK(c, rows)
}

// Get returns a single achievement.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	row, err := s.deps.Store.Achievements.Get(c.UserContext(), id)
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

// Create stores a new achievement.
func (s *Service) Create(c *fiber.Ctx) error {
	p, _, err := s.payload(c)
	if err != nil {
		return err
	}

	id, err := s.deps.Store.Achievements.Add(c.UserContext(), p.record())
	if err != nil {
		return err
	}

	return c.JSON(handler.Response{Success: true, ID: id, Message: "Achievement created successfully"})
}

// Update overwrites the sent fields of an achievement.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	p, present, err := s.payload(c)
	if err != nil {
		return err
	}

	found, err := s.deps.Store.Achievements.Update(c.UserContext(), id, p.fields(present))
	if err != nil {
		return err
	}

	if !found {
		return handler.NotFound(resource)
	}

	return c.JSON(handler.Response{Success: true, Message: "Achievement updated successfully"})
}

// Delete removes an achievement.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.NotFound(resource)
	}

	found, err := s.deps.Store.Achievements.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}

	if !found {
		return handler.NotFound(resource)
	}

	return c.JSON(handler.Response{Success: true, Message: "Achievement deleted successfully"})
}
