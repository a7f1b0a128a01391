package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Accounts  AccountRepository
	Audit     AuditRepository
	Protected ProtectedNumberRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Accounts:  NewAccountRepository(db),
		Audit:     NewAuditRepository(db),
		Protected: NewProtectedNumberRepository(db),
	}
}
