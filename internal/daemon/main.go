// Package daemon assembles store, session storage and web service and runs them.
package daemon

import (
	"errors"
	"fmt"
	"strconv"

	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"

	"github.com/folio-admin/folio-admin/internal/config"
	"github.com/folio-admin/folio-admin/internal/db/dsn"
	"github.com/folio-admin/folio-admin/internal/db/store"
	"github.com/folio-admin/folio-admin/internal/web"
	"github.com/folio-admin/folio-admin/internal/web/session"
)

// ErrConfigNil is returned by New without config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	store      *store.Store
	storage    session.Storage
	webService *web.Service
}

// New opens the database, seeds it if configured and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if cfg.DB.Seed {
		if err = Seed(st); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	storage, err := NewSessionStorage(cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sessions, err := newSessions(cfg, storage)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	webService, err := web.New(cfg, st, sessions)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		store:      st,
		storage:    storage,
		webService: webService,
	}, nil
}

// newSessions marks the cookie Secure only when the site is served over https.
func newSessions(cfg *config.Config, storage session.Storage) (*session.Manager, error) {
	return session.NewManager(storage, cfg.Webserver.Session.ExpiryTime, cfg.Webserver.SecureCookies())
}

// NewSessionStorage returns the session backend selected by webserver.session.storage.
// The sql backends reuse the connection settings of the db section.
func NewSessionStorage(cfg *config.Config) (session.Storage, error) {
	switch cfg.Webserver.Session.Storage {
	case config.SessionStorageMemory, "":
		return session.NewMemoryStorage(), nil
	case config.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         cfg.Webserver.Session.Table,
		}), nil
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         cfg.Webserver.Session.Table,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownSessionStorage, cfg.Webserver.Session.Storage)
	}
}

// Start runs the web service until a shutdown signal arrives, then releases store and session storage.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := ":" + strconv.Itoa(d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Str("engine", d.cfg.DB.Engine).Msg("starting web service")

	err := d.webService.Start(addr)

	if cerr := d.storage.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close session storage")
	}

	if cerr := d.store.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close database")
	}

	return err
}
