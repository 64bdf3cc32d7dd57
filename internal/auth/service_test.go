package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-admin/folio-admin/internal/auth"
	"github.com/folio-admin/folio-admin/internal/config"
	"github.com/folio-admin/folio-admin/internal/db/controller/collection"
	"github.com/folio-admin/folio-admin/internal/db/models"
	"github.com/folio-admin/folio-admin/internal/web/session"
)

var errBroken = errors.New("disk on fire")

type fakeUsers map[string]*models.User

func (f fakeUsers) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	if username == "broken" {
		return nil, errBroken
	}

	if u, ok := f[username]; ok {
		return u, nil
	}

	return nil, collection.ErrNotFound
}

func (f fakeUsers) FindUserByID(_ context.Context, id uint64) (*models.User, error) {
	if id == 99 {
		return nil, errBroken
	}

	for _, u := range f {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, collection.ErrNotFound
}

func newService(t *testing.T) *auth.Service {
	t.Helper()

	hash, err := models.HashPassword("editor-pass")
	require.NoError(t, err)

	users := fakeUsers{
		"editor": {ID: 1, Username: "editor", Password: hash},
		"admin":  {ID: 2, Username: "admin", Password: hash},
	}

	return auth.NewService(config.Operator{Username: "admin", Password: "admin123"}, users)
}

func TestAuthenticate(t *testing.T) {
	s := newService(t)

	tests := []struct {
		name     string
		username string
		password string
		want     string
		wantErr  error
	}{
		{name: "operator", username: "admin", password: "admin123", want: auth.SuperAdmin},
		{name: "stored user", username: "editor", password: "editor-pass", want: "editor"},
		{name: "stored user shadowed by operator name", username: "admin", password: "editor-pass", want: "admin"},
		{name: "wrong operator password", username: "admin", password: "nope", wantErr: auth.ErrInvalidCredentials},
		{name: "wrong user password", username: "editor", password: "nope", wantErr: auth.ErrInvalidCredentials},
		{name: "unknown user", username: "ghost", password: "x", wantErr: auth.ErrInvalidCredentials},
		{name: "empty password", username: "admin", password: "", wantErr: auth.ErrInvalidCredentials},
		{name: "storage failure", username: "broken", password: "x", wantErr: errBroken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Authenticate(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Username)
		})
	}
}

func TestAuthenticateOperatorOnly(t *testing.T) {
	s := auth.NewService(config.Operator{Username: "admin", Password: "admin123"}, nil)

	got, err := s.Authenticate(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, session.Identity{Username: auth.SuperAdmin}, got)

	ok, err := s.Valid(context.Background(), &session.Data{Username: "editor", UserID: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Authenticate(context.Background(), "editor", "editor-pass")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthenticateStoredUserIdentity(t *testing.T) {
	s := newService(t)

	got, err := s.Authenticate(context.Background(), "editor", "editor-pass")
	require.NoError(t, err)
	assert.Equal(t, "editor", got.Username)
	assert.Equal(t, uint64(1), got.UserID)
	assert.NotEmpty(t, got.Stamp)
}

func TestValid(t *testing.T) {
	hash, err := models.HashPassword("pw")
	require.NoError(t, err)

	editor := &models.User{ID: 1, Username: "editor", Password: hash}
	users := fakeUsers{"editor": editor}
	s := auth.NewService(config.Operator{Username: "admin", Password: "admin123"}, users)
	ctx := context.Background()

	who, err := s.Authenticate(ctx, "editor", "pw")
	require.NoError(t, err)

	data := &session.Data{Username: who.Username, UserID: who.UserID, Stamp: who.Stamp}

	tests := []struct {
		name    string
		data    *session.Data
		want    bool
		wantErr error
	}{
		{name: "operator", data: &session.Data{Username: auth.SuperAdmin}, want: true},
		{name: "no id and not the operator", data: &session.Data{Username: "editor"}},
		{name: "stored user", data: data, want: true},
		{name: "stale stamp", data: &session.Data{Username: "editor", UserID: 1, Stamp: "old"}},
		{name: "renamed", data: &session.Data{Username: "other", UserID: 1, Stamp: who.Stamp}},
		{name: "deleted", data: &session.Data{Username: "ghost", UserID: 7, Stamp: who.Stamp}},
		{name: "storage failure", data: &session.Data{Username: "x", UserID: 99}, wantErr: errBroken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := s.Valid(ctx, tt.data)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	// a new password voids the old session
	editor.Password, err = models.HashPassword("pw")
	require.NoError(t, err)

	ok, err := s.Valid(ctx, data)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalProvider(t *testing.T) {
	hash, err := models.HashPassword("pw")
	require.NoError(t, err)

	p := auth.NewLocalProvider(fakeUsers{"editor": {Username: "editor", Password: hash}})

	u, err := p.Authenticate(context.Background(), "editor", "pw")
	require.NoError(t, err)
	assert.Equal(t, "editor", u.Username)

	_, err = p.Authenticate(context.Background(), "editor", "bad")
	require.ErrorIs(t, err, auth.ErrInvalidPassword)

	_, err = p.Authenticate(context.Background(), "ghost", "pw")
	require.ErrorIs(t, err, auth.ErrUserNotFound)
}
