package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/veridex/lookup-gateway/models"
	"github.com/veridex/lookup-gateway/repositories"
)

// IdentityService reconciles a verified external identity with a local
// account record.
type IdentityService interface {
	// EnsureAccount returns the account for the verified subject
	// identifier, provisioning it on first sight. Repeat calls return
	// the existing record unchanged: this is provisioning-once, not
	// sync-every-time.
	EnsureAccount(ctx context.Context, subjectID, email string) (*models.Account, error)
}

type identityService struct {
	accountRepo repositories.AccountRepository
}

// NewIdentityService creates a new identity service
func NewIdentityService(accountRepo repositories.AccountRepository) IdentityService {
	return &identityService{accountRepo: accountRepo}
}

// EnsureAccount provisions an account on first contact. Concurrent first
// contacts for the same identifier are safe: the account store's
// uniqueness constraint picks one winner and the losers re-fetch.
func (s *identityService) EnsureAccount(ctx context.Context, subjectID, email string) (*models.Account, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("subject identifier is required")
	}

	account, err := s.accountRepo.Get(ctx, subjectID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	account = &models.Account{
		ID:       subjectID,
		Username: usernameFromEmail(email),
		Email:    email,
		Credits:  models.DefaultCreditGrant,
	}

	err = s.accountRepo.Create(ctx, account)
	if errors.Is(err, repositories.ErrDuplicateAccount) {
		// Lost the provisioning race; the winner's record is the account.
		return s.accountRepo.Get(ctx, subjectID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to provision account: %w", err)
	}

	return account, nil
}

// usernameFromEmail derives a display name from the email local-part
func usernameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return models.FallbackUsername
	}
	return local
}
