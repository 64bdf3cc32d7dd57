// Package settings provides the json api of the site wide key/value settings.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/folio-admin/folio-admin/internal/db/controller/setting"
	"github.com/folio-admin/folio-admin/internal/web/handler"
)

// Path of the settings map.
const Path = "/settings"

var (
	// ErrNotAnObject is returned when the body is not a json object.
	ErrNotAnObject = errors.New("settings must be a json object")
	// ErrNestedValue is returned for object or array values.
	ErrNestedValue = errors.New("setting values must be strings, numbers or booleans")
)

// Service is the settings handler service.
type Service struct {
	deps *handler.Deps
}

// New returns an uninitialized settings handler.
func New() *Service {
	return &Service{}
}

// Init registers the settings routes below api.
func (s *Service) Init(api fiber.Router, deps *handler.Deps) error {
	if api == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	api.Get(Path, s.Get)
	api.Post(Path, deps.RequireAuth(), s.Post)

	return nil
}

// Get returns all settings as one object.
func (s *Service) Get(c *fiber.Ctx) error {
	values, err := s.deps.Store.Settings(c.UserContext())
	if err != nil {
		return err
	}

	return handler.OK(c, values)
}

// Post merges the sent keys into the settings, other keys keep their value.
func (s *Service) Post(c *fiber.Ctx) error {
	values, err := Parse(c.Body())
	if err != nil {
		return handler.BadRequest(err)
	}

	err = s.deps.Store.SetSettings(c.UserContext(), values)
	if errors.Is(err, setting.ErrSettingNameEmpty) {
		return handler.BadRequest(err)
	}

	if err != nil {
		return err
	}

	return handler.OK(c, nil)
}

// Parse decodes a settings body. Scalars are converted to strings, null becomes "".
func Parse(body []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return nil, ErrNotAnObject
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrNotAnObject
	}

	values := make(map[string]string, len(raw))

	for key, v := range raw {
		if key == "" {
			return nil, setting.ErrSettingNameEmpty
		}

		str, ok := handler.ScalarString(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNestedValue, key)
		}

		values[key] = str
	}

	return values, nil
}
