// Package store bundles the portfolio collections and the settings map on one database.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/folio-admin/folio-admin/internal/config"
	"github.com/folio-admin/folio-admin/internal/db/controller/collection"
	"github.com/folio-admin/folio-admin/internal/db/controller/setting"
	"github.com/folio-admin/folio-admin/internal/db/dsn"
	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

type (
	// Achievements is the achievements collection.
	Achievements = collection.Collection[models.Achievement, *models.Achievement]
	// Testimonials is the testimonials collection.
	Testimonials = collection.Collection[models.Testimonial, *models.Testimonial]
	// Socials is the socials collection.
	Socials = collection.Collection[models.Social, *models.Social]
	// Users is the users collection.
	Users = collection.Collection[models.User, *models.User]
)

// Store is the explicitly constructed persistence handle passed to the web layer.
type Store struct {
	DB           *gorm.DB
	Achievements *Achievements
	Testimonials *Testimonials
	Socials      *Socials
	Users        *Users
}

// Open connects to the configured database and migrates the schema.
func Open(cfg *config.Config) (*Store, error) {
	dialector, err := dsn.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.DevMode {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			stdlogger.NewComponent("gorm", zerolog.WarnLevel),
			gormlogger.Config{
				SlowThreshold:             slowQueryThreshold,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", cfg.DB.Engine, err)
	}

	s, err := New(db)
	if err != nil {
		_ = closeDB(db)
		return nil, err
	}

	return s, nil
}

// New migrates the schema on db and returns the store.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&models.Achievement{},
		&models.Testimonial{},
		&models.Social{},
		&models.User{},
		&models.Setting{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Store{
		DB:           db,
		Achievements: collection.New[models.Achievement](db),
		Testimonials: collection.New[models.Testimonial](db),
		Socials:      collection.New[models.Social](db),
		Users:        collection.New[models.User](db),
	}, nil
}

// Settings returns the settings map, empty if nothing is set.
func (s *Store) Settings(ctx context.Context) (map[string]string, error) {
	return setting.All(s.DB.WithContext(ctx))
}

// Setting returns a single setting, setting.ErrSettingNotFound if it is not set.
func (s *Store) Setting(ctx context.Context, name string) (*models.Setting, error) {
	return setting.Get(s.DB.WithContext(ctx), name)
}

// SetSetting writes a single setting.
func (s *Store) SetSetting(ctx context.Context, name, value string) error {
	_, err := setting.Set(s.DB.WithContext(ctx), name, value)
	return err
}

// SetSettings merges values into the settings map.
func (s *Store) SetSettings(ctx context.Context, values map[string]string) error {
	return setting.Merge(s.DB.WithContext(ctx), values)
}

// FindUserByUsername returns the stored user or collection.ErrNotFound.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.Users.Find(ctx, "username", username)
}

// FindUserByID returns the stored user or collection.ErrNotFound.
func (s *Store) FindUserByID(ctx context.Context, id uint64) (*models.User, error) {
	return s.Users.Get(ctx, id)
}

// Close releases the database connection pool.
func (s *Store) Close() error {
	return closeDB(s.DB)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
