package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/veridex/lookup-gateway/models"
	"github.com/veridex/lookup-gateway/repositories"
)

// DenyListService manages the set of protected lookup targets.
type DenyListService interface {
	// IsProtected reports whether the target is deny-listed, and with
	// what reason. A protected entry without an authored reason gets a
	// fixed default string, never a blank.
	IsProtected(ctx context.Context, number string) (string, bool, error)

	// Add deny-lists a target. Adding a present target is a no-op.
	Add(ctx context.Context, number, reason string) error

	// Remove un-lists a target. Removing an absent target is a no-op.
	Remove(ctx context.Context, number string) error

	// ListNumbers returns all protected targets in stable order.
	ListNumbers(ctx context.Context) ([]string, error)
}

type denyListService struct {
	protectedRepo repositories.ProtectedNumberRepository
}

// NewDenyListService creates a new deny-list service
func NewDenyListService(protectedRepo repositories.ProtectedNumberRepository) DenyListService {
	return &denyListService{protectedRepo: protectedRepo}
}

// IsProtected checks deny-list membership
func (s *denyListService) IsProtected(ctx context.Context, number string) (string, bool, error) {
	entry, err := s.protectedRepo.Get(ctx, number)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to check deny-list: %w", err)
	}

	reason := entry.Reason
	if reason == "" {
		reason = models.DefaultProtectedReason
	}

	return reason, true, nil
}

// Add deny-lists a target number
func (s *denyListService) Add(ctx context.Context, number, reason string) error {
	if number == "" {
		return fmt.Errorf("number is required")
	}
	return s.protectedRepo.Add(ctx, number, reason)
}

// Remove un-lists a target number
func (s *denyListService) Remove(ctx context.Context, number string) error {
	if number == "" {
		return fmt.Errorf("number is required")
	}
	return s.protectedRepo.Remove(ctx, number)
}

// ListNumbers returns all protected numbers
func (s *denyListService) ListNumbers(ctx context.Context) ([]string, error) {
	return s.protectedRepo.GetAllNumbers(ctx)
}
