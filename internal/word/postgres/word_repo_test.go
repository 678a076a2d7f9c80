// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordhoard/wordhoard/internal/word"
	"github.com/wordhoard/wordhoard/internal/word/postgres"
)

var wordCols = []string{"id", "title", "description", "character", "approved", "owner_id", "created_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestWordRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock := newMock(t)
	repo := postgres.NewWordRepository(mock)

	created := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO words`).
		WithArgs("petrichor", "rain smell", "p", false, int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), created))

	w := &word.Word{Title: "petrichor", Description: "rain smell", Character: "p", OwnerID: 1}
	err := repo.Create(ctx, w)
	require.NoError(t, err)
	assert.Equal(t, int64(3), w.ID)
	assert.Equal(t, created, w.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored word", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectQuery(`FROM words`).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows(wordCols).
				AddRow(int64(3), "petrichor", "rain smell", "p", false, int64(1), time.Now()))

		w, err := repo.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "petrichor", w.Title)
		assert.Equal(t, int64(1), w.OwnerID)
		assert.False(t, w.Approved)
	})

	t.Run("maps no rows to ErrNotFound", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectQuery(`FROM words`).
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows(wordCols))

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, word.ErrNotFound)
	})
}

func TestWordRepository_SetApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("updates a single row", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectExec(`UPDATE words SET approved`).
			WithArgs(int64(3), true).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.SetApproval(ctx, 3, true))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row yields ErrNotFound", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectExec(`UPDATE words SET approved`).
			WithArgs(int64(404), true).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.SetApproval(ctx, 404, true), word.ErrNotFound)
	})
}

func TestWordRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a single row", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectExec(`DELETE FROM words`).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(ctx, 3))
	})

	t.Run("already-deleted row yields ErrNotFound", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectExec(`DELETE FROM words`).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, repo.Delete(ctx, 3), word.ErrNotFound)
	})
}

func TestWordRepository_Listing(t *testing.T) {
	ctx := context.Background()

	t.Run("pending queue scans all columns", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectQuery(`WHERE approved = FALSE`).
			WillReturnRows(pgxmock.NewRows(wordCols).
				AddRow(int64(1), "zephyr", "a breeze", "z", false, int64(1), time.Now()).
				AddRow(int64(2), "aurora", "dawn light", "a", false, int64(2), time.Now()))

		words, err := repo.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, words, 2)
		assert.Equal(t, "zephyr", words[0].Title)
	})

	t.Run("owner listing is filtered by argument", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectQuery(`WHERE owner_id`).
			WithArgs(int64(1)).
			WillReturnRows(pgxmock.NewRows(wordCols).
				AddRow(int64(1), "zephyr", "a breeze", "z", true, int64(1), time.Now()))

		words, err := repo.ListByOwner(ctx, 1)
		require.NoError(t, err)
		require.Len(t, words, 1)
		assert.Equal(t, int64(1), words[0].OwnerID)
	})

	t.Run("search passes the title through", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectQuery(`WHERE approved = TRUE AND title`).
			WithArgs("zephyr").
			WillReturnRows(pgxmock.NewRows(wordCols))

		words, err := repo.SearchApproved(ctx, "zephyr")
		require.NoError(t, err)
		assert.Empty(t, words)
	})

	t.Run("database error is wrapped", func(t *testing.T) {
		mock := newMock(t)
		repo := postgres.NewWordRepository(mock)

		mock.ExpectQuery(`FROM words`).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.ListApproved(ctx)
		assert.Error(t, err)
	})
}
