package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-admin/folio-admin/internal/config"
	"github.com/folio-admin/folio-admin/internal/db/controller/collection"
	"github.com/folio-admin/folio-admin/internal/db/controller/setting"
	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/db/store"
)

func openStore(t *testing.T, path string) *store.Store {
	t.Helper()

	s, err := store.Open(&config.Config{DB: config.DB{Engine: config.EngineSQLite, Path: path}})
	require.NoError(t, err)

	return s
}

func TestOpenMigratesAllCollections(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "portfolio.db"))
	defer func() { require.NoError(t, s.Close()) }()

	for _, table := range []string{"achievements", "testimonials", "socials", "users", "settings"} {
		assert.True(t, s.DB.Migrator().HasTable(table), table)
	}

	settings, err := s.Settings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestStateSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portfolio.db")

	s := openStore(t, path)

	id, err := s.Testimonials.Add(ctx, &models.Testimonial{Name: "Ada", Message: "great", Rating: 5})
	require.NoError(t, err)
	require.NoError(t, s.SetSettings(ctx, map[string]string{"seo_title": "Portfolio"}))
	require.NoError(t, s.Close())

	s = openStore(t, path)
	defer func() { require.NoError(t, s.Close()) }()

	got, err := s.Testimonials.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"seo_title": "Portfolio"}, settings)
}

func TestFindUserByUsername(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "portfolio.db"))
	defer func() { require.NoError(t, s.Close()) }()

	_, err := s.FindUserByUsername(ctx, "editor")
	require.ErrorIs(t, err, collection.ErrNotFound)

	_, err = s.Users.Add(ctx, &models.User{Username: "editor", Password: "hash"})
	require.NoError(t, err)

	u, err := s.FindUserByUsername(ctx, "editor")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)

	u, err = s.FindUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "editor", u.Username)

	_, err = s.FindUserByID(ctx, 2)
	require.ErrorIs(t, err, collection.ErrNotFound)
}

func TestUsernameIsUnique(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "portfolio.db"))
	defer func() { require.NoError(t, s.Close()) }()

	_, err := s.Users.Add(ctx, &models.User{Username: "editor", Password: "hash"})
	require.NoError(t, err)

	_, err = s.Users.Add(ctx, &models.User{Username: "editor", Password: "other"})
	require.Error(t, err)

	n, err := s.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSingleSetting(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "portfolio.db"))
	defer func() { require.NoError(t, s.Close()) }()

	_, err := s.Setting(ctx, "seo_title")
	require.ErrorIs(t, err, setting.ErrSettingNotFound)

	require.NoError(t, s.SetSetting(ctx, "seo_title", "Portfolio"))
	require.NoError(t, s.SetSetting(ctx, "seo_title", "Renamed"))
	require.ErrorIs(t, s.SetSetting(ctx, "", "x"), setting.ErrSettingNameEmpty)

	got, err := s.Setting(ctx, "seo_title")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Value)

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"seo_title": "Renamed"}, settings)
}
