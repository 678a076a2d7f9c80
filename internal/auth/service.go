// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package auth

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// Service provides signup and login.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens *TokenService
}

// NewService creates a Service.
func NewService(users UserRepository, hasher PasswordHasher, tokens *TokenService) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// dummyPasswordHash is verified against when no account matches the email,
// so that lookup misses and password mismatches take comparable time. It is
// a syntactically valid hash that matches no password.
//
//nolint:gosec // G101: intentionally fake hash for timing consistency, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Signup validates the credentials, hashes the password, and creates the
// account. New accounts are never administrators.
func (s *Service) Signup(ctx context.Context, email, password string) (*User, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, err
		}
		return nil, oops.Code("AUTH_SIGNUP_FAILED").
			With("operation", "insert user").
			Wrap(err)
	}

	return user, nil
}

// Login verifies the password and issues a bearer token. Unknown email and
// wrong password collapse into the same error, and password verification
// runs against a dummy hash when the account is missing so the two cases
// take comparable time.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, lookupErr := s.users.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	userExists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return nil, "", oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get user by email").
				Wrap(lookupErr)
		}
	} else {
		targetHash = user.PasswordHash
		userExists = true
	}

	// A stored hash that cannot be decoded collapses to a mismatch; callers
	// must not be able to tell a corrupt record from a wrong password.
	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		valid = false
	}

	if !userExists || !valid {
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	return user, token, nil
}
