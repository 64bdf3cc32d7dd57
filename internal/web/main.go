// Package web wires the fiber app: middleware, the json api below /api and the static front end.
package web

import (
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/argon2"

	"github.com/folio-admin/folio-admin/internal/auth"
	"github.com/folio-admin/folio-admin/internal/config"
	"github.com/folio-admin/folio-admin/internal/db/store"
	fiberlogger "github.com/folio-admin/folio-admin/internal/logger/adapter/fiber"
	"github.com/folio-admin/folio-admin/internal/web/handler"
	"github.com/folio-admin/folio-admin/internal/web/handler/achievement"
	"github.com/folio-admin/folio-admin/internal/web/handler/login"
	"github.com/folio-admin/folio-admin/internal/web/handler/logout"
	"github.com/folio-admin/folio-admin/internal/web/handler/settings"
	"github.com/folio-admin/folio-admin/internal/web/handler/social"
	"github.com/folio-admin/folio-admin/internal/web/handler/testimonial"
	"github.com/folio-admin/folio-admin/internal/web/handler/user"
	authmiddleware "github.com/folio-admin/folio-admin/internal/web/middleware/auth"
	"github.com/folio-admin/folio-admin/internal/web/session"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic and 503 during shutdown.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"
)

var (
	// ErrConfigNil is returned by New without config.
	ErrConfigNil = errors.New("config cannot be nil")
	// ErrStoreNil is returned by New without store.
	ErrStoreNil = errors.New("store cannot be nil")
	// ErrSessionsNil is returned by New without session manager.
	ErrSessionsNil = errors.New("session manager cannot be nil")
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	store        *store.Store
	sessions     *session.Manager
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the http server down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown stops the http server.
// Unless in dev mode, checkalive reports 503 for the configured shutdown time first,
// so load balancers can take the instance out of rotation.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		if err := s.App.Shutdown(); err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// SetAlive switches the checkalive answer.
func (s *Service) SetAlive(alive bool) {
	s.alive.Store(alive)
}

// CookieKey derives the base64 encoded AES-256 key of the cookie encryption from secret and salt.
func CookieKey(secret, salt string) string {
	key := argon2.IDKey([]byte(secret), []byte(salt), 1, 19*1024, 4, 32) //nolint:mnd

	return base64.StdEncoding.EncodeToString(key)
}

// New creates the web service and registers all routes.
func New(cfg *config.Config, st *store.Store, sessions *session.Manager) (*Service, error) {
	switch {
	case cfg == nil:
		return nil, ErrConfigNil
	case st == nil:
		return nil, ErrStoreNil
	case sessions == nil:
		return nil, ErrSessionsNil
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
		store:        st,
		sessions:     sessions,
	}
	service.alive.Store(true)

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	// credentials are only allowed together with an explicit origin
	origin := strings.TrimRight(cfg.Webserver.URL, "/")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowCredentials: origin != "",
	}))

	if cfg.Webserver.SessionSecret != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key: CookieKey(cfg.Webserver.SessionSecret, cfg.Webserver.Argon2Salt),
		}))
	} else {
		log.Warn().Msg("no session secret configured: session cookies are not encrypted")
	}

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.Alive() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	if cfg.Webserver.MetricsEnabled {
		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	deps := &handler.Deps{
		Cfg:      cfg,
		Store:    st,
		Sessions: sessions,
		Auth:     auth.NewService(cfg.Operator, st),
	}

	api := app.Group(handler.APIPath)

	for _, svc := range []handler.Service{
		login.New(),
		logout.New(),
		achievement.New(),
		testimonial.New(),
		social.New(),
		user.New(),
		settings.New(),
	} {
		if err := svc.Init(api, deps); err != nil {
			return nil, err
		}
	}

	if cfg.Webserver.StaticDir != "" {
		app.Use(authmiddleware.New(sessions))
		app.Static(handler.RootPath, cfg.Webserver.StaticDir)

		log.Info().Str("dir", cfg.Webserver.StaticDir).Msg("serving static front end")
	}

	return service, nil
}
