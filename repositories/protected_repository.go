package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/veridex/lookup-gateway/models"
)

// ProtectedNumberRepository handles the deny-list of lookup targets.
// The set semantics live in SQL: add and remove are both idempotent.
type ProtectedNumberRepository interface {
	Get(ctx context.Context, number string) (*models.ProtectedNumber, error)
	Add(ctx context.Context, number, reason string) error
	Remove(ctx context.Context, number string) error
	GetAllNumbers(ctx context.Context) ([]string, error)
}

type protectedNumberRepository struct {
	db *sql.DB
}

// NewProtectedNumberRepository creates a new protected number repository
func NewProtectedNumberRepository(db *sql.DB) ProtectedNumberRepository {
	return &protectedNumberRepository{db: db}
}

// Get retrieves a protected entry, or ErrNotFound if the number is not
// on the deny-list
func (r *protectedNumberRepository) Get(ctx context.Context, number string) (*models.ProtectedNumber, error) {
	query := `SELECT number, reason, created_at FROM protected_numbers WHERE number = ?`

	var entry models.ProtectedNumber
	var reason sql.NullString

	err := r.db.QueryRowContext(ctx, query, number).Scan(&entry.Number, &reason, &entry.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get protected number: %w", err)
	}

	if reason.Valid {
		entry.Reason = reason.String
	}

	return &entry, nil
}

// Add inserts a protected number. Inserting an already-present number is
// a silent no-op.
func (r *protectedNumberRepository) Add(ctx context.Context, number, reason string) error {
	query := `
		INSERT OR IGNORE INTO protected_numbers (number, reason, created_at)
		VALUES (?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, number, nullString(reason), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add protected number: %w", err)
	}

	return nil
}

// Remove deletes a protected number. Removing an absent number is a
// silent no-op.
func (r *protectedNumberRepository) Remove(ctx context.Context, number string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM protected_numbers WHERE number = ?`, number)
	if err != nil {
		return fmt.Errorf("failed to remove protected number: %w", err)
	}

	return nil
}

// GetAllNumbers retrieves every protected number, ordered for stable display
func (r *protectedNumberRepository) GetAllNumbers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT number FROM protected_numbers ORDER BY number ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query protected numbers: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("failed to scan protected number: %w", err)
		}
		numbers = append(numbers, number)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating protected numbers: %w", err)
	}

	return numbers, nil
}
