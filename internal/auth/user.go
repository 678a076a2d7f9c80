// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/samber/oops"
)

// MaxPasswordLength caps signup passwords; argon2id cost is linear in input
// length, so unbounded input is a cheap denial-of-service vector.
const MaxPasswordLength = 512

// emailRegex accepts a local part, an @, and a dotted domain. Deliverability
// is not checked; the address only has to be unique and well formed.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a registered account. PasswordHash never appears in JSON
// output.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidateEmail validates an email address for signup.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if len(email) > 254 {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email must be at most 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email is not a valid address")
	}
	return nil
}

// ValidatePassword validates a plaintext password for signup.
func ValidatePassword(password string) error {
	if password == "" {
		return oops.Code("AUTH_INVALID_PASSWORD").Errorf("password cannot be empty")
	}
	if len(password) > MaxPasswordLength {
		return oops.Code("AUTH_INVALID_PASSWORD").
			With("max", MaxPasswordLength).
			Errorf("password must be at most %d characters", MaxPasswordLength)
	}
	return nil
}

// UserRepository manages account persistence.
type UserRepository interface {
	// Create stores a new user and fills in the assigned ID.
	// Returns ErrEmailTaken if the email is already registered.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email (exact match, case-sensitive).
	// Returns ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*User, error)
}
