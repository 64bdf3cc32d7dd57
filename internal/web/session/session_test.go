package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, Storage, *clock) {
	t.Helper()

	clk := &clock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}

	storage := NewMemoryStorage()
	t.Cleanup(func() { _ = storage.Close() })

	m, err := NewManager(storage, ttl, false)
	require.NoError(t, err)

	m.now = clk.now

	return m, storage, clk
}

// newTestApp exposes the manager over http: /login creates, /whoami reads and renews, /logout destroys.
func newTestApp(m *Manager) *fiber.App {
	app := fiber.New()

	app.Post("/login", func(c *fiber.Ctx) error {
		_, err := m.Create(c, "SuperAdmin")
		return err
	})

	app.Post("/login/editor", func(c *fiber.Ctx) error {
		_, err := m.Start(c, Identity{Username: "editor", UserID: 4, Stamp: "abc"})
		return err
	})

	app.Get("/whoami", func(c *fiber.Ctx) error {
		data, id, err := m.Current(c)
		if err != nil {
			return err
		}

		if data == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		if err = m.Renew(c, id, data); err != nil {
			return err
		}

		return c.SendString(data.Username)
	})

	app.Post("/logout", func(c *fiber.Ctx) error {
		return m.Destroy(c)
	})

	return app
}

// stored returns the raw session data kept for id.
func stored(t *testing.T, storage Storage, id string) []byte {
	t.Helper()

	raw, err := storage.Get(id)
	require.NoError(t, err)

	return raw
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}

	t.Fatalf("no %s cookie in response", CookieName)

	return nil
}

func do(t *testing.T, app *fiber.App, method, path string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)
	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestNewManagerWithoutStorage(t *testing.T) {
	_, err := NewManager(nil, time.Hour, false)
	require.ErrorIs(t, err, ErrStorageNil)
}

func TestSecureCookie(t *testing.T) {
	storage := NewMemoryStorage()
	t.Cleanup(func() { _ = storage.Close() })

	m, err := NewManager(storage, time.Hour, true)
	require.NoError(t, err)
	assert.True(t, m.Secure())

	cookie := sessionCookie(t, do(t, newTestApp(m), fiber.MethodPost, "/login", nil))
	assert.True(t, cookie.Secure)
}

func TestCreateSetsCookie(t *testing.T) {
	m, storage, _ := newTestManager(t, time.Hour)
	app := newTestApp(m)

	resp := do(t, app, fiber.MethodPost, "/login", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	assert.Len(t, cookie.Value, 64)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.NotEmpty(t, stored(t, storage, cookie.Value))

	resp = do(t, app, fiber.MethodGet, "/whoami", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStartKeepsTheIdentity(t *testing.T) {
	m, storage, _ := newTestManager(t, time.Hour)
	app := newTestApp(m)

	cookie := sessionCookie(t, do(t, app, fiber.MethodPost, "/login/editor", nil))

	var data Data
	require.NoError(t, json.Unmarshal(stored(t, storage, cookie.Value), &data))
	assert.Equal(t, "editor", data.Username)
	assert.Equal(t, uint64(4), data.UserID)
	assert.Equal(t, "abc", data.Stamp)
	assert.True(t, data.IsAdmin)
}

func TestAnonymousAndUnknownSessions(t *testing.T) {
	m, _, _ := newTestManager(t, time.Hour)
	app := newTestApp(m)

	resp := do(t, app, fiber.MethodGet, "/whoami", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = do(t, app, fiber.MethodGet, "/whoami", &http.Cookie{Name: CookieName, Value: "forged"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionExpiresAfterInactivity(t *testing.T) {
	m, storage, clk := newTestManager(t, time.Hour)
	app := newTestApp(m)

	cookie := sessionCookie(t, do(t, app, fiber.MethodPost, "/login", nil))

	clk.advance(time.Hour)

	resp := do(t, app, fiber.MethodGet, "/whoami", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, stored(t, storage, cookie.Value))
}

func TestRenewSlidesTheWindow(t *testing.T) {
	m, _, clk := newTestManager(t, time.Hour)
	app := newTestApp(m)

	cookie := sessionCookie(t, do(t, app, fiber.MethodPost, "/login", nil))

	// each request within the window renews it
	for range 3 {
		clk.advance(45 * time.Minute)

		resp := do(t, app, fiber.MethodGet, "/whoami", cookie)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	clk.advance(61 * time.Minute)

	resp := do(t, app, fiber.MethodGet, "/whoami", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDestroy(t *testing.T) {
	m, storage, _ := newTestManager(t, time.Hour)
	app := newTestApp(m)

	cookie := sessionCookie(t, do(t, app, fiber.MethodPost, "/login", nil))

	resp := do(t, app, fiber.MethodPost, "/logout", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, sessionCookie(t, resp).Value)
	assert.Empty(t, stored(t, storage, cookie.Value))

	resp = do(t, app, fiber.MethodGet, "/whoami", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// logout without a session is fine
	resp = do(t, app, fiber.MethodPost, "/logout", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("a", []byte("1"), time.Hour))

	got, err = s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	require.NoError(t, s.Delete("a"))

	got, err = s.Get("a")
	require.NoError(t, err)
	assert.Nil(t, got)
}
