//go:build integration

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Wordhoard Contributors

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wordhoard/wordhoard/internal/auth"
	authpg "github.com/wordhoard/wordhoard/internal/auth/postgres"
	"github.com/wordhoard/wordhoard/internal/store"
	"github.com/wordhoard/wordhoard/internal/word"
	wordpg "github.com/wordhoard/wordhoard/internal/word/postgres"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestMigrator_FullCycle(t *testing.T) {
	connStr := startPostgres(t)

	migrator, err := store.NewMigrator(connStr)
	require.NoError(t, err)
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, migrator.Up())

	version, dirty, err = migrator.Version()
	require.NoError(t, err)
	assert.Greater(t, version, uint(0))
	assert.False(t, dirty)

	// Up again is a no-op.
	require.NoError(t, migrator.Up())

	require.NoError(t, migrator.Down())

	version, _, err = migrator.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
}

func TestRepositories_RoundTrip(t *testing.T) {
	connStr := startPostgres(t)
	ctx := context.Background()

	migrator, err := store.NewMigrator(connStr)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())
	require.NoError(t, migrator.Close())

	pool, err := store.Connect(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	users := authpg.NewUserRepository(pool)
	words := wordpg.NewWordRepository(pool)

	owner := &auth.User{Email: "owner@example.com", PasswordHash: "irrelevant"}
	require.NoError(t, users.Create(ctx, owner))
	require.NotZero(t, owner.ID)

	// Duplicate email is rejected.
	dup := &auth.User{Email: "owner@example.com", PasswordHash: "other"}
	err = users.Create(ctx, dup)
	assert.ErrorIs(t, err, auth.ErrEmailTaken)

	fetched, err := users.GetByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, fetched.ID)

	entry := &word.Word{
		Title:       "serendipity",
		Description: "a happy accident",
		Character:   "s",
		OwnerID:     owner.ID,
	}
	require.NoError(t, words.Create(ctx, entry))
	require.NotZero(t, entry.ID)

	pending, err := words.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, words.SetApproval(ctx, entry.ID, true))

	approved, err := words.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.True(t, approved[0].Approved)

	found, err := words.SearchApproved(ctx, "serendipity")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, words.Delete(ctx, entry.ID))
	err = words.Delete(ctx, entry.ID)
	assert.ErrorIs(t, err, word.ErrNotFound)
}
