package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/folio-admin/folio-admin/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration // inactivity window of an admin session
	Storage    string        // memory, mysql or postgres
	Table      string        // table name for sql based session storage
}

// Operator is the fixed credential pair that always grants admin access.
type Operator struct {
	Username string
	Password string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Operator  Operator
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	StaticDir      string  // serve the public front end from this directory if set
	MetricsEnabled bool    // expose prometheus metrics on /metrics
	SessionSecret  string  // secret used to derive the cookie encryption key
	Argon2Salt     string  // salt for the cookie key derivation
	Session        Session // session settings
}

// SecureCookies reports whether the site is served over https.
// Browsers drop Secure cookies on plain http, so they are only marked Secure then.
func (w Webserver) SecureCookies() bool {
	u, err := url.Parse(strings.TrimSpace(w.URL))
	if err != nil {
		return false
	}

	return strings.EqualFold(u.Scheme, "https")
}
