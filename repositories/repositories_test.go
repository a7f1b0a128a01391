package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/veridex/lookup-gateway/database"
	"github.com/veridex/lookup-gateway/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.Initialize(dbPath)
	require.NoError(t, err, "Failed to initialize test database")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestAccountRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &models.Account{
		ID:       "uid-1",
		Username: "alice",
		Email:    "alice@example.com",
		Credits:  10,
	}

	// Create
	require.NoError(t, repo.Create(ctx, account))
	assert.False(t, account.CreatedAt.IsZero(), "expected CreatedAt to be set on create")

	// Get
	retrieved, err := repo.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", retrieved.Username)
	assert.Equal(t, "alice@example.com", retrieved.Email)
	assert.Equal(t, 10, retrieved.Credits)

	// GetByUsername
	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", byName.ID)

	// Duplicate create returns the sentinel, not a generic error
	err = repo.Create(ctx, &models.Account{ID: "uid-1", Username: "other", Credits: 0})
	assert.ErrorIs(t, err, ErrDuplicateAccount)

	// Missing account
	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// Update
	newName := "alice.b"
	updated, err := repo.Update(ctx, "uid-1", models.AccountUpdate{Username: &newName})
	require.NoError(t, err)
	assert.Equal(t, "alice.b", updated.Username)
	assert.Equal(t, "alice@example.com", updated.Email, "update must not clear unspecified fields")

	_, err = repo.Update(ctx, "missing", models.AccountUpdate{Username: &newName})
	assert.ErrorIs(t, err, ErrNotFound)

	// GetAll
	require.NoError(t, repo.Create(ctx, &models.Account{ID: "uid-2", Username: "bob", Credits: 3}))
	accounts, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestAccountRepositoryDebitOne(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Account{ID: "uid-1", Username: "alice", Credits: 2}))

	account, err := repo.DebitOne(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 1, account.Credits, "expected post-debit balance")

	account, err = repo.DebitOne(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, 0, account.Credits)

	// The debit itself is unguarded: it can drive a balance negative.
	// The gatekeeper owns the sufficiency precondition.
	account, err = repo.DebitOne(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, -1, account.Credits)

	_, err = repo.DebitOne(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepositoryConcurrentDebits(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	const start = 25
	const debits = 25

	require.NoError(t, repo.Create(ctx, &models.Account{ID: "uid-1", Username: "alice", Credits: start}))

	var g errgroup.Group
	for i := 0; i < debits; i++ {
		g.Go(func() error {
			_, err := repo.DebitOne(ctx, "uid-1")
			return err
		})
	}
	require.NoError(t, g.Wait())

	account, err := repo.Get(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, start-debits, account.Credits, "concurrent debits must not lose updates")
}

func TestAccountRepositoryBulkAdjust(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Account{ID: "u1", Username: "a", Credits: 0}))
	require.NoError(t, repo.Create(ctx, &models.Account{ID: "u2", Username: "b", Credits: 3}))
	require.NoError(t, repo.Create(ctx, &models.Account{ID: "u3", Username: "c", Credits: 7}))

	affected, err := repo.BulkAdjust(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	expected := map[string]int{"u1": 5, "u2": 8, "u3": 12}
	for id, credits := range expected {
		account, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, credits, account.Credits, "account %s", id)
	}

	// Negative adjustments are allowed on the administrative path
	affected, err = repo.BulkAdjust(ctx, -2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	account, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, account.Credits)
}

func TestAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)
	ctx := context.Background()

	first := &models.AuditEntry{
		RequestID: "req-1",
		AccountID: "uid-1",
		Service:   "phone-intel",
		Query:     "+15550100",
		Status:    models.StatusSuccess,
		Result:    json.RawMessage(`{"v":1}`),
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID, "expected entry ID to be set after creation")

	second := &models.AuditEntry{
		AccountID: "uid-1",
		Service:   "phone-intel",
		Query:     "+15550101",
		Status:    models.StatusFailure,
	}
	require.NoError(t, repo.Create(ctx, second))

	// Entries for an account whose record was never materialized are
	// still accepted: no foreign key blocks the write.
	orphan := &models.AuditEntry{
		AccountID: "never-provisioned",
		Service:   "phone-intel",
		Query:     "+15550102",
		Status:    models.StatusDenied,
	}
	require.NoError(t, repo.Create(ctx, orphan))

	entries, err := repo.GetByAccount(ctx, "uid-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, models.StatusFailure, entries[0].Status)
	assert.Equal(t, models.StatusSuccess, entries[1].Status)
	assert.JSONEq(t, `{"v":1}`, string(entries[1].Result))
	assert.Empty(t, entries[0].Result, "result must be absent outside success")
	assert.Equal(t, "req-1", entries[1].RequestID)
}

func TestProtectedNumberRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProtectedNumberRepository(db)
	ctx := context.Background()

	// Add and read back
	require.NoError(t, repo.Add(ctx, "+91-PROTECTED", "r1"))
	entry, err := repo.Get(ctx, "+91-PROTECTED")
	require.NoError(t, err)
	assert.Equal(t, "r1", entry.Reason)

	// Duplicate insertion is a silent no-op and keeps the first reason
	require.NoError(t, repo.Add(ctx, "+91-PROTECTED", "different"))
	entry, err = repo.Get(ctx, "+91-PROTECTED")
	require.NoError(t, err)
	assert.Equal(t, "r1", entry.Reason)

	// Entry without an authored reason
	require.NoError(t, repo.Add(ctx, "+15550199", ""))
	entry, err = repo.Get(ctx, "+15550199")
	require.NoError(t, err)
	assert.Empty(t, entry.Reason)

	// Stable ordered listing
	numbers, err := repo.GetAllNumbers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"+15550199", "+91-PROTECTED"}, numbers)

	// Remove is idempotent
	require.NoError(t, repo.Remove(ctx, "+91-PROTECTED"))
	require.NoError(t, repo.Remove(ctx, "+91-PROTECTED"))

	_, err = repo.Get(ctx, "+91-PROTECTED")
	assert.ErrorIs(t, err, ErrNotFound)
}
