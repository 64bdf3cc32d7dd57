// Package session keeps the server side state of admin sessions.
//
// The client only holds an opaque random id in the session cookie. Everything
// else lives in a Storage backend and expires after a window of inactivity.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// ErrStorageNil is returned when a Manager is built without storage.
var ErrStorageNil = errors.New("session storage is nil")

// Identity is who a session is issued to.
// UserID and Stamp are zero for the operator credential.
type Identity struct {
	Username string
	UserID   uint64
	Stamp    string
}

// Data represents the session data structure.
type Data struct {
	Username  string    `json:"username"`
	UserID    uint64    `json:"user_id,omitempty"`
	Stamp     string    `json:"stamp,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the inactivity window has passed at now.
func (d *Data) Expired(now time.Time) bool {
	return !now.Before(d.ExpiresAt)
}

// Manager issues, renews and destroys sessions.
type Manager struct {
	storage Storage
	ttl     time.Duration
	secure  bool
	now     func() time.Time
}

// NewManager returns a Manager writing to storage. secure marks the cookie Secure.
func NewManager(storage Storage, ttl time.Duration, secure bool) (*Manager, error) {
	if storage == nil {
		return nil, ErrStorageNil
	}

	return &Manager{
		storage: storage,
		ttl:     ttl,
		secure:  secure,
		now:     time.Now,
	}, nil
}

// TTL returns the inactivity window.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Secure reports whether cookies are marked Secure.
func (m *Manager) Secure() bool {
	return m.secure
}

// Create starts a new session for the identity label and sets the cookie.
func (m *Manager) Create(c *fiber.Ctx, username string) (*Data, error) {
	return m.Start(c, Identity{Username: username})
}

// Start starts a new session for who and sets the cookie.
func (m *Manager) Start(c *fiber.Ctx, who Identity) (*Data, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	data := &Data{
		Username:  who.Username,
		UserID:    who.UserID,
		Stamp:     who.Stamp,
		IsAdmin:   true,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err = m.write(id, data); err != nil {
		return nil, err
	}

	m.setCookie(c, id, data.ExpiresAt)

	return data, nil
}

// Current returns the session of the request.
// It returns nil without error for anonymous callers, including unknown or expired ids.
func (m *Manager) Current(c *fiber.Ctx) (*Data, string, error) {
	id := c.Cookies(CookieName)
	if id == "" {
		return nil, "", nil
	}

	data, err := m.read(id)
	if err != nil || data == nil {
		return nil, "", err
	}

	if data.Expired(m.now()) {
		if err = m.storage.Delete(id); err != nil {
			return nil, "", fmt.Errorf("delete expired session: %w", err)
		}

		return nil, "", nil
	}

	return data, id, nil
}

// Renew moves the expiry of the session to now + ttl and refreshes the cookie.
func (m *Manager) Renew(c *fiber.Ctx, id string, data *Data) error {
	data.ExpiresAt = m.now().UTC().Add(m.ttl)

	if err := m.write(id, data); err != nil {
		return err
	}

	m.setCookie(c, id, data.ExpiresAt)

	return nil
}

// Destroy deletes the session of the request, if any, and expires the cookie.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	if id := c.Cookies(CookieName); id != "" {
		if err := m.storage.Delete(id); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return nil
}

// write writes the session data for the given session ID.
func (m *Manager) write(id string, data *Data) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err = m.storage.Set(id, out, m.ttl); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}

// read reads the session data for the given session ID, nil if there is none.
func (m *Manager) read(id string) (*Data, error) {
	raw, err := m.storage.Get(id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if len(raw) == 0 {
		return nil, nil
	}

	data := new(Data)
	if err = json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return data, nil
}

func (m *Manager) setCookie(c *fiber.Ctx, id string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(m.ttl.Seconds()),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
