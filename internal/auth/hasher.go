// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

// Package auth provides credential hashing, token issuance, and account
// management for Wordhoard.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

// argonParams are the cost parameters for argon2id hashing. The values
// chosen at hash time are embedded in the stored encoding, so these can be
// raised later without invalidating existing hashes.
type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
	saltLen uint32
	keyLen  uint32
}

// OWASP-recommended argon2id defaults.
var defaultArgonParams = argonParams{
	memory:  64 * 1024, // 64 MB
	time:    1,
	threads: 4,
	saltLen: 16,
	keyLen:  32,
}

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher provides one-way password hashing and verification.
type PasswordHasher interface {
	// Hash produces a self-describing encoded hash of the password.
	Hash(password string) (string, error)

	// Verify checks the password against a stored encoded hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or an error
	// when the stored hash cannot be decoded.
	Verify(password, encoded string) (bool, error)
}

// Argon2idHasher implements PasswordHasher using argon2id with PHC-format
// stored hashes: $argon2id$v=19$m=...,t=...,p=...$<salt>$<digest>.
type Argon2idHasher struct {
	params argonParams
}

// NewArgon2idHasher creates an Argon2idHasher with default cost parameters.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{params: defaultArgonParams}
}

// Hash produces an argon2id hash of the password with a fresh random salt.
func (h *Argon2idHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, h.params.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("AUTH_SALT_FAILED").Wrap(err)
	}

	digest := argon2.IDKey([]byte(password), salt, h.params.time, h.params.memory, h.params.threads, h.params.keyLen)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.memory,
		h.params.time,
		h.params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)

	return encoded, nil
}

// Verify re-derives the digest using the parameters and salt embedded in the
// stored hash and compares in constant time. The embedded parameters are
// authoritative; current defaults are never substituted.
func (h *Argon2idHasher) Verify(password, encoded string) (bool, error) {
	params, salt, digest, err := decodeStoredHash(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(digest)))

	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

// decodeStoredHash splits a PHC-format argon2id string into its parameters,
// salt, and digest. Any structural defect is an error; verification must
// fail rather than fall back to defaults.
func decodeStoredHash(encoded string) (argonParams, []byte, []byte, error) {
	var params argonParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Errorf("stored hash has %d segments, want 6", len(parts))
	}
	if parts[1] != "argon2id" {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Errorf("unsupported hash algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Wrap(err)
	}
	if version != argon2.Version {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Errorf("unsupported argon2 version: %d", version)
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &threads); err != nil {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Wrap(err)
	}
	if threads == 0 || threads > 255 {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Errorf("parallelism %d outside uint8 range", threads)
	}
	params.threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Wrap(err)
	}

	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Wrap(err)
	}
	if len(digest) == 0 || len(digest) > 1<<30 {
		return params, nil, nil, oops.Code("AUTH_MALFORMED_HASH").Errorf("invalid digest length: %d", len(digest))
	}

	return params, salt, digest, nil
}
