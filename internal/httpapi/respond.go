// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

// Package httpapi exposes the dictionary over HTTP: public catalogue reads,
// token-gated submissions, and admin moderation.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/samber/oops"

	"github.com/wordhoard/wordhoard/internal/auth"
	"github.com/wordhoard/wordhoard/internal/word"
	"github.com/wordhoard/wordhoard/pkg/errutil"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // response write error means the client went away
	json.NewEncoder(w).Encode(v)
}

// validationCodes map to 400 with the message passed through; their texts are
// written for end users.
var validationCodes = map[string]bool{
	"AUTH_INVALID_EMAIL":       true,
	"AUTH_INVALID_PASSWORD":    true,
	"WORD_INVALID_TITLE":       true,
	"WORD_INVALID_DESCRIPTION": true,
}

// writeError maps a service error onto an HTTP status and a client-safe
// body. Anything unrecognized is logged with full context and reported as
// an opaque 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, word.ErrNotFound), errors.Is(err, auth.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	case errors.Is(err, word.ErrNotAllowed):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
		return
	case errors.Is(err, auth.ErrEmailTaken):
		// Deliberately generic so signup cannot be used to probe for
		// registered addresses.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not create user"})
		return
	case errors.Is(err, auth.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
		return
	}

	if oopsErr, ok := oops.AsOops(err); ok {
		code, _ := oopsErr.Code().(string)
		if code == "AUTH_INVALID_CREDENTIALS" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
			return
		}
		if validationCodes[code] {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	errutil.LogError(logger, "request failed", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
