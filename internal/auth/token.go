// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// DefaultTokenTTL is how long issued tokens remain valid.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for every token verification failure.
// Expired, malformed, and tampered tokens are indistinguishable to callers;
// the distinction is carried in the wrapping error context for logs only.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload carried by a bearer token.
type Claims struct {
	UserID  int64 `json:"uid"`
	IsAdmin bool  `json:"adm"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. The secret is loaded once at
// startup and must not change for the process lifetime. A non-positive ttl
// falls back to DefaultTokenTTL.
func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, oops.Code("AUTH_EMPTY_SECRET").Errorf("token signing secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue produces a signed token encoding the user identity and role.
func (s *TokenService) Issue(userID int64, isAdmin bool) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_SIGN_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims.
// Only HS256 is accepted; tokens claiming any other algorithm are rejected
// outright. Every failure collapses to ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, oops.Code("AUTH_INVALID_TOKEN").
			With("detail", err.Error()).
			Wrap(ErrInvalidToken)
	}
	if !token.Valid {
		return nil, oops.Code("AUTH_INVALID_TOKEN").Wrap(ErrInvalidToken)
	}

	return claims, nil
}
