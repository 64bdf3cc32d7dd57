package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when neither the operator nor a stored user matches.
	// It does not tell which part of the pair was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")
)
