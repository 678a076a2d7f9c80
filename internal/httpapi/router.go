// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type accessLevel int

const (
	accessPublic accessLevel = iota
	accessUser
	accessAdmin
)

type route struct {
	method  string
	path    string
	access  accessLevel
	handler http.HandlerFunc
}

// routes returns the full endpoint table. Static /words subpaths are listed
// before /words/{id} so the id pattern cannot shadow them.
func (a *API) routes() []route {
	return []route{
		{http.MethodPost, "/users/signup", accessPublic, a.handleSignup},
		{http.MethodPost, "/users/login", accessPublic, a.handleLogin},
		// Login is also accepted over GET for older clients.
		{http.MethodGet, "/users/login", accessPublic, a.handleLogin},

		{http.MethodPost, "/words", accessUser, a.handleSubmitWord},
		{http.MethodPut, "/words/update", accessAdmin, a.handleApproveWord},
		{http.MethodGet, "/words/admin", accessAdmin, a.handleListPending},
		{http.MethodGet, "/words/user", accessUser, a.handleListMine},
		{http.MethodGet, "/words", accessPublic, a.handleListApproved},
		{http.MethodGet, "/words/sorted", accessPublic, a.handleListSorted},
		{http.MethodGet, "/words/search/{title}", accessPublic, a.handleSearchWords},
		{http.MethodGet, "/words/{id:[0-9]+}", accessPublic, a.handleGetWord},
		{http.MethodDelete, "/words/{id:[0-9]+}", accessUser, a.handleDeleteWord},
	}
}

// Router builds the HTTP handler with per-route auth gates and request
// instrumentation applied.
func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	// Installed with Use so mux.CurrentRoute can resolve the route template
	// inside the middleware.
	r.Use(a.instrument)

	for _, rt := range a.routes() {
		var h http.Handler = rt.handler
		switch rt.access {
		case accessAdmin:
			h = a.authGuard(a.requireAdmin(h))
		case accessUser:
			h = a.authGuard(h)
		case accessPublic:
		}
		r.Handle(rt.path, h).Methods(rt.method)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	return r
}
