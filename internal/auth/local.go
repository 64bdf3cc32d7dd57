package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/folio-admin/folio-admin/internal/db/controller/collection"
	"github.com/folio-admin/folio-admin/internal/db/models"
)

// UserFinder looks up stored users by username or id.
// It returns collection.ErrNotFound for unknown users.
type UserFinder interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id uint64) (*models.User, error)
}

// LocalProvider handles local database authentication.
type LocalProvider struct {
	users UserFinder
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(users UserFinder) *LocalProvider {
	return &LocalProvider{users: users}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := p.users.FindUserByUsername(ctx, username)
	if errors.Is(err, collection.ErrNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return user, nil
}

// Lookup returns the stored user with id, ErrUserNotFound if it is gone.
func (p *LocalProvider) Lookup(ctx context.Context, id uint64) (*models.User, error) {
	user, err := p.users.FindUserByID(ctx, id)
	if errors.Is(err, collection.ErrNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}
