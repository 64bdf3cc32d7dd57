package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User represents an additional admin account.
// The operator credential from the config is not stored here.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	// Username is the unique username for login.
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	// Password is the Argon2id hashed password. It is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`
	// CreatedAt is stamped by the store on insert.
	CreatedAt time.Time `gorm:"<-:create;autoCreateTime:false" json:"created_at"`
}

// TableName implements Record.
func (User) TableName() string { return "users" }

// GetID implements Record.
func (u *User) GetID() uint64 { return u.ID }

// SetID implements Record.
func (u *User) SetID(id uint64) { u.ID = id }

// SetCreatedAt implements Record.
func (u *User) SetCreatedAt(t time.Time) { u.CreatedAt = t }

// HashPassword hashes a plaintext password using the Argon2id algorithm
// with the library's default parameters.
func HashPassword(password string) (string, error) {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return hashedPassword, nil
}

// VerifyPassword verifies a plaintext password against the user's stored hash.
// A malformed hash counts as a mismatch.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Str("username", u.Username).Msg("failed to verify password")
		return false
	}

	return match
}

// Stamp identifies the current password hash without revealing it.
// It changes whenever the password does.
func (u *User) Stamp() string {
	sum := sha256.Sum256([]byte(u.Password))
	return hex.EncodeToString(sum[:8])
}
