// Package handlertest builds fiber apps around api handlers for tests.
package handlertest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/folio-admin/folio-admin/internal/auth"
	"github.com/folio-admin/folio-admin/internal/config"
	"github.com/folio-admin/folio-admin/internal/db/store"
	"github.com/folio-admin/folio-admin/internal/web/handler"
	"github.com/folio-admin/folio-admin/internal/web/session"
)

const (
	// OperatorUsername of the test config.
	OperatorUsername = "admin"
	// OperatorPassword of the test config.
	OperatorPassword = "admin123"

	loginPath     = "/__test/login"
	loginUserPath = "/__test/login/user"
)

// Env is a fiber app with a fresh sqlite store and memory sessions.
type Env struct {
	App     *fiber.App
	Deps    *handler.Deps
	Store   *store.Store
	Storage session.Storage
}

// Result is a decoded api envelope.
type Result struct {
	Status  int
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	ID      uint64          `json:"id"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Cookies []*http.Cookie  `json:"-"`
}

// Config returns the config used by New.
func Config(t testing.TB) *config.Config {
	t.Helper()

	return &config.Config{
		DevMode:  true,
		Title:    "folio-admin test",
		Operator: config.Operator{Username: OperatorUsername, Password: OperatorPassword},
		DB: config.DB{
			Engine: config.EngineSQLite,
			Path:   filepath.Join(t.TempDir(), "portfolio.db"),
		},
		Webserver: config.Webserver{
			Port: 3001,
			URL:  "http://localhost:3001",
			Session: config.Session{
				ExpiryTime: time.Hour,
				Storage:    config.SessionStorageMemory,
			},
		},
	}
}

// NewDeps opens a store in a temp dir and wires sessions and auth.
func NewDeps(t testing.TB) (*handler.Deps, session.Storage) {
	t.Helper()

	cfg := Config(t)

	s, err := store.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	storage := session.NewMemoryStorage()
	t.Cleanup(func() { _ = storage.Close() })

	sessions, err := session.NewManager(storage, cfg.Webserver.Session.ExpiryTime, false)
	require.NoError(t, err)

	return &handler.Deps{
		Cfg:      cfg,
		Store:    s,
		Sessions: sessions,
		Auth:     auth.NewService(cfg.Operator, s),
	}, storage
}

// New returns an app with services mounted below /api.
func New(t testing.TB, services ...handler.Service) *Env {
	t.Helper()

	deps, storage := NewDeps(t)

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})

	app.Post(loginPath, func(c *fiber.Ctx) error {
		_, err := deps.Sessions.Create(c, auth.SuperAdmin)
		return err
	})

	app.Post(loginUserPath, func(c *fiber.Ctx) error {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}

		if err := c.BodyParser(&creds); err != nil {
			return err
		}

		who, err := deps.Auth.Authenticate(c.UserContext(), creds.Username, creds.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		_, err = deps.Sessions.Start(c, who)

		return err
	})

	api := app.Group(handler.APIPath)
	for _, svc := range services {
		require.NoError(t, svc.Init(api, deps))
	}

	return &Env{App: app, Deps: deps, Store: deps.Store, Storage: storage}
}

// Login returns a cookie of a fresh authenticated session.
func (e *Env) Login(t testing.TB) *http.Cookie {
	t.Helper()

	res := e.Do(t, fiber.MethodPost, loginPath, nil, nil)

	c := SessionCookie(res.Cookies)
	require.NotNil(t, c, "no session cookie")

	return c
}

// Do sends a request. body is sent as json unless it is a string, which is sent raw.
func (e *Env) Do(t testing.TB, method, path string, body any, cookie *http.Cookie) Result {
	t.Helper()

	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	res := Result{Status: resp.StatusCode, Cookies: resp.Cookies()}
	if len(raw) > 0 && resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.NoError(t, json.Unmarshal(raw, &res), string(raw))
	}

	return res
}

// LoginAs returns a session cookie of the stored user username.
func (e *Env) LoginAs(t testing.TB, username, password string) *http.Cookie {
	t.Helper()

	res := e.Do(t, fiber.MethodPost, loginUserPath, map[string]string{"username": username, "password": password}, nil)
	require.Equal(t, fiber.StatusOK, res.Status, res.Error)

	c := SessionCookie(res.Cookies)
	require.NotNil(t, c, "no session cookie")

	return c
}

// SessionCookie picks the session cookie out of cookies.
func SessionCookie(cookies []*http.Cookie) *http.Cookie {
	for _, c := range cookies {
		if c.Name == session.CookieName {
			return c
		}
	}

	return nil
}

// DecodeData unmarshals the data member of r into dst.
func DecodeData(t testing.TB, r Result, dst any) {
	t.Helper()

	require.NoError(t, json.Unmarshal(r.Data, dst), string(r.Data))
}
