// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

// Package postgres implements the word repository using PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/wordhoard/wordhoard/internal/word"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it for unit tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WordRepository implements word.Repository using PostgreSQL. Approval and
// deletion are single-row statements; losing a read-modify race surfaces as
// word.ErrNotFound via RowsAffected.
type WordRepository struct {
	db DB
}

// NewWordRepository creates a WordRepository.
func NewWordRepository(db DB) *WordRepository {
	return &WordRepository{db: db}
}

const wordColumns = `id, title, description, character, approved, owner_id, created_at`

// Create stores a new word and fills in the assigned ID and creation time.
func (r *WordRepository) Create(ctx context.Context, w *word.Word) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO words (title, description, character, approved, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, w.Title, w.Description, w.Character, w.Approved, w.OwnerID).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return oops.Code("WORD_CREATE_FAILED").
			With("operation", "insert word").
			With("title", w.Title).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a word by ID.
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*word.Word, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+wordColumns+`
		FROM words
		WHERE id = $1
	`, id)

	w, err := scanWord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("WORD_NOT_FOUND").
			With("id", id).
			Wrap(word.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("WORD_GET_FAILED").
			With("operation", "get word by id").
			With("id", id).
			Wrap(err)
	}
	return w, nil
}

// SetApproval updates the approved flag on a single row.
func (r *WordRepository) SetApproval(ctx context.Context, id int64, approved bool) error {
	result, err := r.db.Exec(ctx, `
		UPDATE words SET approved = $2 WHERE id = $1
	`, id, approved)
	if err != nil {
		return oops.Code("WORD_SET_APPROVAL_FAILED").
			With("operation", "set approval").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("WORD_NOT_FOUND").
			With("id", id).
			Wrap(word.ErrNotFound)
	}
	return nil
}

// Delete removes a word.
func (r *WordRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return oops.Code("WORD_DELETE_FAILED").
			With("operation", "delete word").
			With("id", id).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("WORD_NOT_FOUND").
			With("id", id).
			Wrap(word.ErrNotFound)
	}
	return nil
}

// ListPending returns words awaiting moderation, oldest first.
func (r *WordRepository) ListPending(ctx context.Context) ([]word.Word, error) {
	return r.queryWords(ctx, "list pending", `
		SELECT `+wordColumns+`
		FROM words
		WHERE approved = FALSE
		ORDER BY id
	`)
}

// ListByOwner returns all words submitted by the user.
func (r *WordRepository) ListByOwner(ctx context.Context, ownerID int64) ([]word.Word, error) {
	return r.queryWords(ctx, "list by owner", `
		SELECT `+wordColumns+`
		FROM words
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
}

// ListApproved returns the public catalogue.
func (r *WordRepository) ListApproved(ctx context.Context) ([]word.Word, error) {
	return r.queryWords(ctx, "list approved", `
		SELECT `+wordColumns+`
		FROM words
		WHERE approved = TRUE
		ORDER BY id
	`)
}

// SearchApproved returns approved words with an exact title match.
func (r *WordRepository) SearchApproved(ctx context.Context, title string) ([]word.Word, error) {
	return r.queryWords(ctx, "search approved", `
		SELECT `+wordColumns+`
		FROM words
		WHERE approved = TRUE AND title = $1
		ORDER BY id
	`, title)
}

// ListSorted returns all words ordered by grouping character.
func (r *WordRepository) ListSorted(ctx context.Context) ([]word.Word, error) {
	return r.queryWords(ctx, "list sorted", `
		SELECT `+wordColumns+`
		FROM words
		ORDER BY character, id
	`)
}

func (r *WordRepository) queryWords(ctx context.Context, operation, sql string, args ...any) ([]word.Word, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.Code("WORD_LIST_FAILED").
			With("operation", operation).
			Wrap(err)
	}
	defer rows.Close()

	var words []word.Word
	for rows.Next() {
		var w word.Word
		if err := rows.Scan(&w.ID, &w.Title, &w.Description, &w.Character, &w.Approved, &w.OwnerID, &w.CreatedAt); err != nil {
			return nil, oops.Code("WORD_LIST_FAILED").
				With("operation", operation+": scan row").
				Wrap(err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("WORD_LIST_FAILED").
			With("operation", operation+": iterate rows").
			Wrap(err)
	}
	return words, nil
}

func scanWord(row pgx.Row) (*word.Word, error) {
	var w word.Word
	if err := row.Scan(&w.ID, &w.Title, &w.Description, &w.Character, &w.Approved, &w.OwnerID, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}
