package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/veridex/lookup-gateway/lookup"
	"github.com/veridex/lookup-gateway/metrics"
	"github.com/veridex/lookup-gateway/models"
	"github.com/veridex/lookup-gateway/repositories"
	"github.com/veridex/lookup-gateway/userctx"
)

// DefaultLookupTimeout bounds how long the gatekeeper waits on the
// external lookup collaborator.
const DefaultLookupTimeout = 15 * time.Second

// GatekeeperService mediates every paid lookup: deny-list check, credit
// check, atomic debit, dispatch to the external collaborator, and exactly
// one audit entry per request regardless of outcome.
type GatekeeperService interface {
	Handle(ctx context.Context, accountID, service, query string) (*models.LookupOutcome, error)
}

type gatekeeperService struct {
	accountRepo   repositories.AccountRepository
	auditRepo     repositories.AuditRepository
	ledger        LedgerService
	denyList      DenyListService
	lookupClient  lookup.Client
	metrics       *metrics.Metrics
	lookupTimeout time.Duration
}

// NewGatekeeperService creates a new gatekeeper service
func NewGatekeeperService(
	accountRepo repositories.AccountRepository,
	auditRepo repositories.AuditRepository,
	ledger LedgerService,
	denyList DenyListService,
	lookupClient lookup.Client,
	m *metrics.Metrics,
	lookupTimeout time.Duration,
) GatekeeperService {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}
	return &gatekeeperService{
		accountRepo:   accountRepo,
		auditRepo:     auditRepo,
		ledger:        ledger,
		denyList:      denyList,
		lookupClient:  lookupClient,
		metrics:       m,
		lookupTimeout: lookupTimeout,
	}
}

// Handle runs one request through the gate. The returned error is reserved
// for conditions with no meaningful outcome (unknown account, storage
// unavailable); denial, insufficient credit and downstream failure are all
// structured outcomes, not errors.
func (s *gatekeeperService) Handle(ctx context.Context, accountID, service, query string) (*models.LookupOutcome, error) {
	// Deny check comes first and is independent of the credit check:
	// a protected target is never charged.
	reason, protected, err := s.denyList.IsProtected(ctx, query)
	if err != nil {
		return nil, err
	}
	if protected {
		s.writeAudit(ctx, accountID, service, query, models.StatusDenied, nil)
		account, err := s.accountRepo.Get(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return models.DeniedOutcome(reason, account.Credits), nil
	}

	// Credit check. The debit itself is unguarded, so the >=1
	// precondition is enforced here and nowhere else.
	account, err := s.accountRepo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Credits < 1 {
		s.writeAudit(ctx, accountID, service, query, models.StatusInsufficientCredit, nil)
		return models.InsufficientCreditOutcome(), nil
	}

	// Debit before dispatch: the charge is for the attempt, not for a
	// successful result. No refund on downstream failure.
	account, err = s.ledger.DebitOne(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementDebits()
	}

	result, err := s.invoke(ctx, service, query)
	if err != nil {
		log.Printf("lookup %s failed for account %s: %v", service, accountID, err)
		s.writeAudit(ctx, accountID, service, query, models.StatusFailure, nil)
		return models.FailureOutcome(account.Credits), nil
	}

	s.writeAudit(ctx, accountID, service, query, models.StatusSuccess, result)
	return models.SuccessOutcome(result, account.Credits), nil
}

// invoke dispatches to the external collaborator under a bounded wait
func (s *gatekeeperService) invoke(ctx context.Context, service, query string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()
	return s.lookupClient.Invoke(ctx, service, query)
}

// writeAudit records the request outcome. A failed audit write is an
// operational problem, not a transaction failure: it is logged and
// counted, and never reverses a completed debit or changes the
// caller-visible outcome.
func (s *gatekeeperService) writeAudit(ctx context.Context, accountID, service, query string, status models.AuditStatus, result json.RawMessage) {
	entry := &models.AuditEntry{
		RequestID: userctx.GetRequestID(ctx),
		AccountID: accountID,
		Service:   service,
		Query:     query,
		Status:    status,
		Result:    result,
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("failed to write audit entry for account %s (status %s): %v", accountID, status, err)
		if s.metrics != nil {
			s.metrics.IncrementAuditFailures()
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveOutcome(string(status))
	}
}
