package models

import (
	"encoding/json"
	"time"
)

// AuditStatus enumerates the recorded outcome of one gated request.
type AuditStatus string

const (
	StatusSuccess            AuditStatus = "success"
	StatusFailure            AuditStatus = "failure"
	StatusDenied             AuditStatus = "denied"
	StatusInsufficientCredit AuditStatus = "insufficient_credit"
)

// Valid reports whether s is one of the recorded outcome statuses.
func (s AuditStatus) Valid() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusDenied, StatusInsufficientCredit:
		return true
	}
	return false
}

// AuditEntry is the immutable record of one gated request. Entries are
// append-only: no update or delete path exists anywhere in the codebase.
// AccountID references an account by identifier only, without a hard
// foreign key, so a racing provision can never block an audit write.
type AuditEntry struct {
	ID        int64           `json:"id"`
	RequestID string          `json:"request_id,omitempty"`
	AccountID string          `json:"account_id"`
	Service   string          `json:"service"`
	Query     string          `json:"query"`
	Status    AuditStatus     `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
