// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package auth_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordhoard/wordhoard/internal/auth"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@x.com", "user.name+tag@sub.example.org", "x@y.co"}
	for _, email := range valid {
		assert.NoErrorf(t, auth.ValidateEmail(email), "email %q", email)
	}

	invalid := []string{"", "no-at-sign", "@x.com", "a@nodot", "two@@x.com", "spaces in it@x.com", strings.Repeat("a", 250) + "@x.com"}
	for _, email := range invalid {
		assert.Errorf(t, auth.ValidateEmail(email), "email %q", email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, auth.ValidatePassword("longenough"))
	assert.NoError(t, auth.ValidatePassword("p1"))
	assert.Error(t, auth.ValidatePassword(""))
	assert.Error(t, auth.ValidatePassword(strings.Repeat("x", auth.MaxPasswordLength+1)))
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	user := auth.User{
		ID:           1,
		Email:        "a@x.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$ZGlnZXN0",
		IsAdmin:      false,
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "argon2id")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"email":"a@x.com"`)
}
