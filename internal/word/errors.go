// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package word

import "errors"

// ErrNotFound is returned when a requested word does not exist. A delete
// racing another delete (or an approval racing a delete) observes this
// rather than a distinct conflict error.
var ErrNotFound = errors.New("word not found")

// ErrNotAllowed is returned when the caller's role or ownership does not
// permit the operation. The target record is left untouched.
var ErrNotAllowed = errors.New("operation not allowed")
