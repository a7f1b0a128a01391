package services

import (
	"context"

	"github.com/veridex/lookup-gateway/models"
	"github.com/veridex/lookup-gateway/repositories"
)

// AccountService exposes read paths over accounts and their request
// history. The administrative surface lists accounts here; balance
// mutations go through LedgerService only.
type AccountService interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	GetAll(ctx context.Context) ([]models.Account, error)
	GetHistory(ctx context.Context, accountID string) ([]models.AuditEntry, error)
}

type accountService struct {
	accountRepo repositories.AccountRepository
	auditRepo   repositories.AuditRepository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo repositories.AccountRepository, auditRepo repositories.AuditRepository) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		auditRepo:   auditRepo,
	}
}

// Get retrieves one account
func (s *accountService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.accountRepo.Get(ctx, id)
}

// GetAll retrieves every account
func (s *accountService) GetAll(ctx context.Context) ([]models.Account, error) {
	return s.accountRepo.GetAll(ctx)
}

// GetHistory retrieves an account's audit entries, newest first
func (s *accountService) GetHistory(ctx context.Context, accountID string) ([]models.AuditEntry, error) {
	return s.auditRepo.GetByAccount(ctx, accountID)
}
