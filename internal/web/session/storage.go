package session

import (
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

// Storage is the key/value backend sessions are kept in.
// Every gofiber/storage driver satisfies it. Get returns nil, nil for a missing key.
type Storage = fiber.Storage

// NewMemoryStorage returns the expiring in-process storage fiber's session store falls back to.
func NewMemoryStorage() Storage {
	return fibersession.New(fibersession.Config{CookieHTTPOnly: true}).Storage
}
