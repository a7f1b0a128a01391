package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/veridex/lookup-gateway/models"
)

// AccountRepository defines account persistence operations. Every call
// reflects current durable state; there is no caching layer in front of it.
type AccountRepository interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, id string, update models.AccountUpdate) (*models.Account, error)
	GetAll(ctx context.Context) ([]models.Account, error)

	// DebitOne atomically decrements the balance by exactly one and
	// returns the post-debit account. It does not check sufficiency:
	// the gatekeeper owns the >=1 precondition.
	DebitOne(ctx context.Context, id string) (*models.Account, error)

	// BulkAdjust atomically adds amount (may be negative) to every
	// account's balance and returns the number of accounts affected.
	BulkAdjust(ctx context.Context, amount int) (int64, error)
}

// accountRepository implements AccountRepository against SQLite
type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = "id, username, email, credits, created_at"

// scanAccount scans one account row, normalizing the nullable email column
func scanAccount(row interface{ Scan(...any) error }) (*models.Account, error) {
	var account models.Account
	var email sql.NullString

	err := row.Scan(
		&account.ID,
		&account.Username,
		&email,
		&account.Credits,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		account.Email = email.String
	}

	return &account, nil
}

// Get retrieves an account by identifier
func (r *accountRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// GetByUsername retrieves an account by display name
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = ?`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}

	return account, nil
}

// Create inserts a new account. Returns ErrDuplicateAccount when the
// identifier is already taken, so a racing provisioner can re-fetch the
// winner's record instead of failing.
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, username, email, credits, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.Username,
		nullString(account.Email),
		account.Credits,
		account.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrDuplicateAccount
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// Update applies a partial field update and returns the updated account
func (r *accountRepository) Update(ctx context.Context, id string, update models.AccountUpdate) (*models.Account, error) {
	account, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		account.Username = *update.Username
	}
	if update.Email != nil {
		account.Email = *update.Email
	}

	query := `UPDATE accounts SET username = ?, email = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, account.Username, nullString(account.Email), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return account, nil
}

// GetAll retrieves all accounts, oldest first
func (r *accountRepository) GetAll(ctx context.Context) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// DebitOne decrements the balance in a single UPDATE ... RETURNING
// statement. Atomicity comes from the storage layer: two concurrent
// debits against the same account cannot lose an update.
func (r *accountRepository) DebitOne(ctx context.Context, id string) (*models.Account, error) {
	query := `
		UPDATE accounts SET credits = credits - 1
		WHERE id = ?
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to debit account: %w", err)
	}

	return account, nil
}

// BulkAdjust shifts every balance by amount in one statement
func (r *accountRepository) BulkAdjust(ctx context.Context, amount int) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE accounts SET credits = credits + ?`, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust credits: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// nullString converts an empty string to a SQL NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
