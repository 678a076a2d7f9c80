// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wordhoard/wordhoard/internal/word"
)

type submitWordRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Character   string `json:"character"`
}

type approveWordRequest struct {
	ID int64 `json:"id"`
}

// handleSubmitWord creates a pending entry owned by the caller.
func (a *API) handleSubmitWord(w http.ResponseWriter, r *http.Request) {
	var req submitWordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	entry, err := a.words.Submit(r.Context(), claims, req.Title, req.Description, req.Character)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	if a.metrics != nil {
		a.metrics.WordSubmissions.Inc()
	}
	writeJSON(w, http.StatusCreated, entry)
}

// handleApproveWord toggles the approved flag on an entry. The route is
// admin-gated, and the service rejects non-admin claims again before any
// lookup.
func (a *API) handleApproveWord(w http.ResponseWriter, r *http.Request) {
	var req approveWordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	entry, err := a.words.Approve(r.Context(), claims, req.ID)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}

	if a.metrics != nil {
		a.metrics.WordApprovals.Inc()
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleDeleteWord removes an entry; the service permits only the owner
// or an admin.
func (a *API) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	claims := ClaimsFromContext(r.Context())
	if err := a.words.Delete(r.Context(), claims, id); err != nil {
		writeError(w, a.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListPending returns the review queue of unapproved entries.
func (a *API) handleListPending(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	words, err := a.words.ListPending(r.Context(), claims)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(words))
}

// handleListMine returns the caller's own submissions.
func (a *API) handleListMine(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	words, err := a.words.ListMine(r.Context(), claims)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(words))
}

// handleListApproved returns the public catalogue.
func (a *API) handleListApproved(w http.ResponseWriter, r *http.Request) {
	words, err := a.words.ListApproved(r.Context())
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(words))
}

// handleListSorted returns all entries ordered by grouping character.
func (a *API) handleListSorted(w http.ResponseWriter, r *http.Request) {
	words, err := a.words.ListSorted(r.Context())
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(words))
}

// handleSearchWords returns approved entries matching the title exactly.
func (a *API) handleSearchWords(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]
	words, err := a.words.Search(r.Context(), title)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(words))
}

// handleGetWord returns a single entry by id.
func (a *API) handleGetWord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := a.words.Get(r.Context(), id)
	if err != nil {
		writeError(w, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func emptyIfNil(words []word.Word) []word.Word {
	if words == nil {
		return []word.Word{}
	}
	return words
}
