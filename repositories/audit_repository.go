package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/veridex/lookup-gateway/models"
)

// AuditRepository handles the append-only request audit trail. There is
// deliberately no update or delete operation: entries are immutable once
// written.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditEntry) error
	GetByAccount(ctx context.Context, accountID string) ([]models.AuditEntry, error)
}

type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

// Create inserts a new audit entry
func (r *auditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (request_id, account_id, service, query, status, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var result sql.NullString
	if len(entry.Result) > 0 {
		result = sql.NullString{String: string(entry.Result), Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query,
		nullString(entry.RequestID),
		entry.AccountID,
		entry.Service,
		entry.Query,
		string(entry.Status),
		result,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}
	entry.ID = id

	return nil
}

// GetByAccount retrieves an account's audit entries, newest first
func (r *auditRepository) GetByAccount(ctx context.Context, accountID string) ([]models.AuditEntry, error) {
	query := `
		SELECT id, request_id, account_id, service, query, status, result, created_at
		FROM audit_log
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		var requestID, result sql.NullString

		err := rows.Scan(
			&entry.ID,
			&requestID,
			&entry.AccountID,
			&entry.Service,
			&entry.Query,
			&entry.Status,
			&result,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		if requestID.Valid {
			entry.RequestID = requestID.String
		}
		if result.Valid {
			entry.Result = []byte(result.String)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}

	return entries, nil
}
