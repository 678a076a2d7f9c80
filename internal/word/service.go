// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package word

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/oops"

	"github.com/wordhoard/wordhoard/internal/auth"
)

// Service applies the moderation rules to word entries. Role and ownership
// checks always run before the repository is touched, so a rejected caller
// leaves no side effects.
type Service struct {
	words Repository
}

// NewService creates a Service.
func NewService(words Repository) *Service {
	return &Service{words: words}
}

// Submit creates a pending entry owned by the caller. Any authenticated
// user may submit; entries always start unapproved regardless of input.
func (s *Service) Submit(ctx context.Context, claims *auth.Claims, title, description, character string) (*Word, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}

	character = strings.TrimSpace(character)
	if character == "" {
		character = GroupingCharacter(title)
	}

	w := &Word{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Character:   character,
		Approved:    false,
		OwnerID:     claims.UserID,
	}
	if err := s.words.Create(ctx, w); err != nil {
		return nil, oops.Code("WORD_SUBMIT_FAILED").
			With("operation", "insert word").
			With("owner_id", claims.UserID).
			Wrap(err)
	}
	return w, nil
}

// Approve toggles the approved flag on an existing entry. Admin only;
// non-admin callers are rejected before any lookup or mutation.
func (s *Service) Approve(ctx context.Context, claims *auth.Claims, id int64) (*Word, error) {
	if !claims.IsAdmin {
		return nil, ErrNotAllowed
	}

	w, err := s.words.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, oops.Code("WORD_APPROVE_FAILED").
			With("operation", "get word by id").
			With("word_id", id).
			Wrap(err)
	}

	if err := s.words.SetApproval(ctx, id, !w.Approved); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Deleted between the read and the update; same outcome as an
			// unknown id.
			return nil, err
		}
		return nil, oops.Code("WORD_APPROVE_FAILED").
			With("operation", "set approval").
			With("word_id", id).
			Wrap(err)
	}

	w.Approved = !w.Approved
	return w, nil
}

// Delete removes an entry. Permitted for the entry's owner and for admins;
// everyone else is rejected with the record left intact. A second delete of
// the same id observes ErrNotFound.
func (s *Service) Delete(ctx context.Context, claims *auth.Claims, id int64) error {
	w, err := s.words.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return oops.Code("WORD_DELETE_FAILED").
			With("operation", "get word by id").
			With("word_id", id).
			Wrap(err)
	}

	if !claims.IsAdmin && w.OwnerID != claims.UserID {
		return ErrNotAllowed
	}

	if err := s.words.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return oops.Code("WORD_DELETE_FAILED").
			With("operation", "delete word").
			With("word_id", id).
			Wrap(err)
	}
	return nil
}

// ListPending returns the admin review queue.
func (s *Service) ListPending(ctx context.Context, claims *auth.Claims) ([]Word, error) {
	if !claims.IsAdmin {
		return nil, ErrNotAllowed
	}
	words, err := s.words.ListPending(ctx)
	if err != nil {
		return nil, oops.Code("WORD_LIST_FAILED").With("operation", "list pending").Wrap(err)
	}
	return words, nil
}

// ListMine returns the caller's own submissions, approved or not.
func (s *Service) ListMine(ctx context.Context, claims *auth.Claims) ([]Word, error) {
	words, err := s.words.ListByOwner(ctx, claims.UserID)
	if err != nil {
		return nil, oops.Code("WORD_LIST_FAILED").
			With("operation", "list by owner").
			With("owner_id", claims.UserID).
			Wrap(err)
	}
	return words, nil
}

// Get returns a single entry by id.
func (s *Service) Get(ctx context.Context, id int64) (*Word, error) {
	w, err := s.words.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, oops.Code("WORD_GET_FAILED").With("word_id", id).Wrap(err)
	}
	return w, nil
}

// ListApproved returns the public catalogue.
func (s *Service) ListApproved(ctx context.Context) ([]Word, error) {
	words, err := s.words.ListApproved(ctx)
	if err != nil {
		return nil, oops.Code("WORD_LIST_FAILED").With("operation", "list approved").Wrap(err)
	}
	return words, nil
}

// Search returns approved entries whose title matches exactly.
func (s *Service) Search(ctx context.Context, title string) ([]Word, error) {
	words, err := s.words.SearchApproved(ctx, title)
	if err != nil {
		return nil, oops.Code("WORD_LIST_FAILED").
			With("operation", "search approved").
			With("title", title).
			Wrap(err)
	}
	return words, nil
}

// ListSorted returns all entries ordered by grouping character.
func (s *Service) ListSorted(ctx context.Context) ([]Word, error) {
	words, err := s.words.ListSorted(ctx)
	if err != nil {
		return nil, oops.Code("WORD_LIST_FAILED").With("operation", "list sorted").Wrap(err)
	}
	return words, nil
}
