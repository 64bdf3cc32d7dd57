package login

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-admin/folio-admin/internal/auth"
	"github.com/folio-admin/folio-admin/internal/web/handler"
)

const (
	// Path is the path of the login endpoint.
	Path = "/login"

	// SessionPath reports the state of the caller's session.
	SessionPath = "/session"

	// InvalidCredentialsMessage is sent for every rejected login.
	InvalidCredentialsMessage = "Invalid credentials"
)

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// State is the payload of GET /session.
type State struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// Service is the login handler service.
type Service struct {
	deps *handler.Deps
}

// New returns an uninitialized login handler.
func New() *Service {
	return &Service{}
}

// Init registers the login routes below api.
func (s *Service) Init(api fiber.Router, deps *handler.Deps) error {
	if api == nil || !deps.Valid() {
		return handler.ErrNilDeps
	}

	s.deps = deps

	api.Post(Path, s.Post)
	api.Get(SessionPath, s.Session)

	return nil
}

// Post checks the credentials and starts a session.
func (s *Service) Post(c *fiber.Ctx) error {
	var creds Credentials

	if _, err := handler.Decode(c, &creds); err != nil {
		return handler.BadRequest(fmt.Errorf("%w: %w", ErrInvalidFormData, err))
	}

	who, err := s.deps.Auth.Authenticate(c.UserContext(), creds.Username, creds.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Warn().Str("username", creds.Username).Str("ip", c.IP()).Msg("failed login")
		return handler.Fail(c, fiber.StatusUnauthorized, InvalidCredentialsMessage)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternalServerError, err)
	}

	// never reuse an id handed out before login
	if err = s.deps.Sessions.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to drop previous session")
	}

	if _, err = s.deps.Sessions.Start(c, who); err != nil {
		return fmt.Errorf("%w: %w", ErrInternalServerError, err)
	}

	log.Info().Str("user", who.Username).Msg("admin logged in")

	return handler.OK(c, nil)
}

// Session reports whether the caller is logged in. It does not renew the session.
func (s *Service) Session(c *fiber.Ctx) error {
	data, _, err := s.deps.Sessions.Current(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to read session")
	}

	state := State{}
	if data != nil {
		state.Authenticated = true
		state.Username = data.Username
	}

	return handler.OK(c, state)
}
