package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/folio-admin/folio-admin/internal/web/session"
)

const (
	// AdminPage is the admin panel of the static front end.
	AdminPage = "/admin.html"
	// LoginPage is the login form of the static front end.
	LoginPage = "/login.html"
)

// New returns the page guard middleware.
func New(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAdminPage := IsAdminPage(c)
		isLoginPage := IsLoginPage(c)

		if !isAdminPage && !isLoginPage {
			return c.Next()
		}

		data, _, err := sessions.Current(c)
		if err != nil {
			log.Error().Err(err).Msg("failed to read session")
		}

		switch {
		case data == nil && isAdminPage:
			return c.Redirect(LoginPage)
		case data != nil && isLoginPage:
			return c.Redirect(AdminPage)
		}

		return c.Next()
	}
}

// IsAdminPage checks if the current request is for the admin panel.
func IsAdminPage(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Path(), AdminPage)
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Path(), LoginPage)
}
