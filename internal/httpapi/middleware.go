// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"

	"github.com/wordhoard/wordhoard/internal/auth"
)

type contextKey int

const (
	claimsKey contextKey = iota
	requestIDKey
)

// ClaimsFromContext returns the verified token claims for the request, or
// nil for unauthenticated requests.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// RequestIDFromContext returns the request's ULID, or empty string.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument assigns each request a ULID, opens a span named after the
// route template, and emits an access log line plus request metrics.
func (a *API) instrument(next http.Handler) http.Handler {
	tracer := otel.Tracer("github.com/wordhoard/wordhoard/internal/httpapi")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := ulid.Make().String()
		w.Header().Set("X-Request-Id", reqID)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		ctx, span := tracer.Start(ctx, r.Method+" "+route)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		elapsed := time.Since(start)
		a.logger.InfoContext(ctx, "request",
			"request_id", reqID,
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)

		if a.metrics != nil {
			a.metrics.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
			a.metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		}
	})
}

// authGuard rejects requests without a valid bearer token and stores the
// verified claims on the context. Failures use one generic message so
// callers cannot tell a missing header from a forged token.
func (a *API) authGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			a.recordAuthFailure("missing_header")
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			a.recordAuthFailure("malformed_header")
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		claims, err := a.tokens.Verify(parts[1])
		if err != nil {
			a.recordAuthFailure("invalid_token")
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin runs after authGuard and rejects non-admin identities.
func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}
		if !claims.IsAdmin {
			a.recordAuthFailure("not_admin")
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) recordAuthFailure(reason string) {
	if a.metrics != nil {
		a.metrics.AuthFailures.WithLabelValues(reason).Inc()
	}
}
