// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/folio-admin/folio-admin/internal/config"
)

// Create builds the MySQL Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// URI builds the PostgreSQL connection URI from the configuration.
// Extras are used as the raw query string, e.g. sslmode=disable.
func URI(dbCfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(dbCfg.DB.User, dbCfg.DB.Password),
		Host:     net.JoinHostPort(dbCfg.DB.Host, strconv.Itoa(dbCfg.DB.Port)),
		Path:     "/" + dbCfg.DB.Name,
		RawQuery: dbCfg.DB.Extras,
	}

	return u.String()
}

// Dialector returns the gorm dialector for the configured engine.
// For sqlite the directory of the database file is created if missing.
func Dialector(dbCfg *config.Config) (gorm.Dialector, error) {
	switch dbCfg.DB.Engine {
	case config.EngineSQLite, "":
		if dir := filepath.Dir(dbCfg.DB.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd
				return nil, fmt.Errorf("create database directory %s: %w", dir, err)
			}
		}

		return sqlite.Open(dbCfg.DB.Path), nil
	case config.EngineMySQL:
		return mysql.Open(Create(dbCfg)), nil
	case config.EnginePostgres:
		return postgres.Open(URI(dbCfg)), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownDBEngine, dbCfg.DB.Engine)
	}
}
