package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/folio-admin/folio-admin/internal/config"
	"github.com/folio-admin/folio-admin/internal/web/session"
)

// SuperAdmin is the identity label of the operator credential.
const SuperAdmin = "SuperAdmin"

// Service checks login credentials.
type Service struct {
	operator config.Operator
	local    *LocalProvider
}

// NewService creates a new auth service. users may be nil, then only the operator can log in.
func NewService(operator config.Operator, users UserFinder) *Service {
	s := &Service{operator: operator}
	if users != nil {
		s.local = NewLocalProvider(users)
	}

	return s
}

// Authenticate returns the identity for a valid credential pair.
// The operator pair wins over a stored user of the same name.
// Any mismatch is reported as ErrInvalidCredentials, storage failures are returned as is.
func (s *Service) Authenticate(ctx context.Context, username, password string) (session.Identity, error) {
	if username == "" || password == "" {
		return session.Identity{}, ErrInvalidCredentials
	}

	if s.isOperator(username, password) {
		return session.Identity{Username: SuperAdmin}, nil
	}

	if s.local == nil {
		return session.Identity{}, ErrInvalidCredentials
	}

	user, err := s.local.Authenticate(ctx, username, password)

	switch {
	case err == nil:
		return session.Identity{Username: user.Username, UserID: user.ID, Stamp: user.Stamp()}, nil
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidPassword):
		log.Debug().Err(err).Str("username", username).Msg("login rejected")
		return session.Identity{}, ErrInvalidCredentials
	default:
		return session.Identity{}, err
	}
}

// Valid reports whether the identity of a session still exists.
// A stored user session is void once the user is deleted, renamed or gets a new password.
func (s *Service) Valid(ctx context.Context, data *session.Data) (bool, error) {
	if data.UserID == 0 {
		return data.Username == SuperAdmin, nil
	}

	if s.local == nil {
		return false, nil
	}

	user, err := s.local.Lookup(ctx, data.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return user.Username == data.Username && user.Stamp() == data.Stamp, nil
}

func (s *Service) isOperator(username, password string) bool {
	if s.operator.Username == "" || s.operator.Password == "" {
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.operator.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.operator.Password))

	return userOK&passOK == 1
}
