package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/veridex/lookup-gateway/models"
	"github.com/veridex/lookup-gateway/repositories"
	"github.com/veridex/lookup-gateway/repositories/mocks"
)

// IdentityServiceTestSuite is a test suite for EnsureAccount
type IdentityServiceTestSuite struct {
	suite.Suite
	service         IdentityService
	mockAccountRepo *mocks.MockAccountRepository
}

// SetupTest sets up the test suite before each test
func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(mocks.MockAccountRepository)
	suite.service = NewIdentityService(suite.mockAccountRepo)
}

// TestEnsureAccount_ExistingAccount tests that repeat calls return the record unchanged
func (suite *IdentityServiceTestSuite) TestEnsureAccount_ExistingAccount() {
	existing := &models.Account{ID: "uid-1", Username: "alice", Email: "alice@example.com", Credits: 4}
	suite.mockAccountRepo.On("Get", mock.Anything, "uid-1").Return(existing, nil)

	account, err := suite.service.EnsureAccount(context.Background(), "uid-1", "different@example.com")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), existing, account)
	assert.Equal(suite.T(), 4, account.Credits, "no credit re-grant on repeat calls")
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

// TestEnsureAccount_ProvisionsNewAccount tests first-contact provisioning
func (suite *IdentityServiceTestSuite) TestEnsureAccount_ProvisionsNewAccount() {
	suite.mockAccountRepo.On("Get", mock.Anything, "uid-1").Return(nil, repositories.ErrNotFound)
	suite.mockAccountRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	account, err := suite.service.EnsureAccount(context.Background(), "uid-1", "alice@example.com")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "uid-1", account.ID)
	assert.Equal(suite.T(), "alice", account.Username, "username is derived from the email local-part")
	assert.Equal(suite.T(), models.DefaultCreditGrant, account.Credits)
}

// TestEnsureAccount_NoEmailFallback tests the fixed fallback display name
func (suite *IdentityServiceTestSuite) TestEnsureAccount_NoEmailFallback() {
	suite.mockAccountRepo.On("Get", mock.Anything, "uid-2").Return(nil, repositories.ErrNotFound)
	suite.mockAccountRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	account, err := suite.service.EnsureAccount(context.Background(), "uid-2", "")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.FallbackUsername, account.Username)
}

// TestEnsureAccount_LostProvisioningRace tests that DuplicateAccount is absorbed
func (suite *IdentityServiceTestSuite) TestEnsureAccount_LostProvisioningRace() {
	winner := &models.Account{ID: "uid-1", Username: "alice", Credits: models.DefaultCreditGrant}

	// First Get misses, Create loses the race, the re-fetch finds the winner.
	suite.mockAccountRepo.On("Get", mock.Anything, "uid-1").Return(nil, repositories.ErrNotFound).Once()
	suite.mockAccountRepo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicateAccount)
	suite.mockAccountRepo.On("Get", mock.Anything, "uid-1").Return(winner, nil).Once()

	account, err := suite.service.EnsureAccount(context.Background(), "uid-1", "alice@example.com")

	assert.NoError(suite.T(), err, "losing the race is not a caller-visible error")
	assert.Equal(suite.T(), winner, account)
}

// TestEnsureAccount_CreateFailure tests that other create errors surface
func (suite *IdentityServiceTestSuite) TestEnsureAccount_CreateFailure() {
	suite.mockAccountRepo.On("Get", mock.Anything, "uid-1").Return(nil, repositories.ErrNotFound)
	suite.mockAccountRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("storage unavailable"))

	_, err := suite.service.EnsureAccount(context.Background(), "uid-1", "alice@example.com")

	assert.Error(suite.T(), err)
}

func TestIdentityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}
