// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested account does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when an account with the email already exists.
var ErrEmailTaken = errors.New("email already registered")
