// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wordhoard/wordhoard/internal/auth"
	"github.com/wordhoard/wordhoard/internal/observability"
	"github.com/wordhoard/wordhoard/internal/word"
)

// maxBodyBytes caps request bodies; no legitimate payload comes close.
const maxBodyBytes = 1 << 20

// API holds the handlers for all dictionary endpoints.
type API struct {
	auth    *auth.Service
	words   *word.Service
	tokens  *auth.TokenService
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewAPI creates the handler set. metrics may be nil when the
// observability server is disabled.
func NewAPI(authSvc *auth.Service, wordSvc *word.Service, tokens *auth.TokenService, logger *slog.Logger, metrics *observability.Metrics) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		auth:    authSvc,
		words:   wordSvc,
		tokens:  tokens,
		logger:  logger,
		metrics: metrics,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *auth.User `json:"user"`
	Token string     `json:"token"`
}

// handleSignup registers a new non-admin account.
func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := a.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleLogin verifies credentials and returns the account with a fresh
// bearer token.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}
