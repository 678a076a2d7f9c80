// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

// Package word holds the dictionary entries and the moderation rules that
// govern them.
package word

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"
)

// Title and description length limits.
const (
	MaxTitleLength       = 120
	MaxDescriptionLength = 4000
)

// Word is a dictionary entry. OwnerID is set when the entry is submitted and
// never reassigned; Approved flips only through the admin update endpoint.
type Word struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Character   string    `json:"character"`
	Approved    bool      `json:"approved"`
	OwnerID     int64     `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ValidateTitle validates an entry title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return oops.Code("WORD_INVALID_TITLE").Errorf("title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return oops.Code("WORD_INVALID_TITLE").
			With("max", MaxTitleLength).
			Errorf("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// ValidateDescription validates an entry description.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return oops.Code("WORD_INVALID_DESCRIPTION").Errorf("description cannot be empty")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return oops.Code("WORD_INVALID_DESCRIPTION").
			With("max", MaxDescriptionLength).
			Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}

// GroupingCharacter returns the lower-cased first letter of the title, used
// as the dictionary grouping key.
func GroupingCharacter(title string) string {
	for _, r := range strings.TrimSpace(title) {
		return string(unicode.ToLower(r))
	}
	return ""
}

// Repository manages word persistence. Implementations provide atomic
// single-row mutations; SetApproval and Delete report ErrNotFound when the
// row is already gone so concurrent mutations resolve cleanly.
type Repository interface {
	// Create stores a new word and fills in the assigned ID.
	Create(ctx context.Context, w *Word) error

	// GetByID retrieves a word by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*Word, error)

	// SetApproval updates the approved flag. Returns ErrNotFound if absent.
	SetApproval(ctx context.Context, id int64, approved bool) error

	// Delete removes a word. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// ListPending returns words awaiting moderation.
	ListPending(ctx context.Context) ([]Word, error)

	// ListByOwner returns all words submitted by the user.
	ListByOwner(ctx context.Context, ownerID int64) ([]Word, error)

	// ListApproved returns the public catalogue.
	ListApproved(ctx context.Context) ([]Word, error)

	// SearchApproved returns approved words with an exact title match.
	SearchApproved(ctx context.Context, title string) ([]Word, error)

	// ListSorted returns all words ordered by grouping character.
	ListSorted(ctx context.Context) ([]Word, error)
}
