// Package mocks provides testify mocks for the repository interfaces,
// used by the service test suites.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/veridex/lookup-gateway/models"
)

// MockAccountRepository mocks repositories.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, id string, update models.AccountUpdate) (*models.Account, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAll(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountRepository) DebitOne(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) BulkAdjust(ctx context.Context, amount int) (int64, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditRepository mocks repositories.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) GetByAccount(ctx context.Context, accountID string) ([]models.AuditEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditEntry), args.Error(1)
}

// MockProtectedNumberRepository mocks repositories.ProtectedNumberRepository
type MockProtectedNumberRepository struct {
	mock.Mock
}

func (m *MockProtectedNumberRepository) Get(ctx context.Context, number string) (*models.ProtectedNumber, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProtectedNumber), args.Error(1)
}

func (m *MockProtectedNumberRepository) Add(ctx context.Context, number, reason string) error {
	args := m.Called(ctx, number, reason)
	return args.Error(0)
}

func (m *MockProtectedNumberRepository) Remove(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockProtectedNumberRepository) GetAllNumbers(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
