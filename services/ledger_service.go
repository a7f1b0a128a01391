package services

import (
	"context"
	"fmt"

	"github.com/veridex/lookup-gateway/models"
	"github.com/veridex/lookup-gateway/repositories"
)

// LedgerService owns the two credit mutation paths. No other code path
// changes a balance.
type LedgerService interface {
	// DebitOne atomically decrements the balance by exactly one and
	// returns the post-debit account. It does not pre-check sufficiency;
	// the gatekeeper refuses requests with balance < 1 before calling it.
	DebitOne(ctx context.Context, accountID string) (*models.Account, error)

	// BulkAdjust adds amount (may be negative) to every account's
	// balance in a single atomic operation. Administrative path only.
	BulkAdjust(ctx context.Context, amount int) (int64, error)
}

type ledgerService struct {
	accountRepo repositories.AccountRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(accountRepo repositories.AccountRepository) LedgerService {
	return &ledgerService{accountRepo: accountRepo}
}

// DebitOne charges one credit for a lookup attempt
func (s *ledgerService) DebitOne(ctx context.Context, accountID string) (*models.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account identifier is required")
	}
	return s.accountRepo.DebitOne(ctx, accountID)
}

// BulkAdjust shifts every account's balance by amount
func (s *ledgerService) BulkAdjust(ctx context.Context, amount int) (int64, error) {
	if amount == 0 {
		return 0, nil
	}
	return s.accountRepo.BulkAdjust(ctx, amount)
}
