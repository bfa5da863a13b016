package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/core/services"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	mockSettingsRepo *MockSettingsRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.SettingsSvcFacade
	tenantID         string
	userID           string
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewSettingsService(suite.mockSettingsRepo, suite.mockAccountRepo)
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *SettingsServiceTestSuite) TestSetAccountMapping_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1001",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.tenantID, "1001").Return(account, nil).Once()
	suite.mockSettingsRepo.On("UpsertAccountMapping", ctx, mock.MatchedBy(func(m domain.AccountMapping) bool {
		return m.TenantID == suite.tenantID && m.Role == domain.RoleCash && m.AccountCode == "1001"
	})).Return(nil).Once()

	err := suite.service.SetAccountMapping(ctx, suite.tenantID, domain.RoleCash, "1001", suite.userID)

	suite.Require().NoError(err)
	suite.mockSettingsRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestSetAccountMapping_UnknownRole() {
	ctx := context.Background()

	err := suite.service.SetAccountMapping(ctx, suite.tenantID, domain.AccountRole("petty_cash"), "1001", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestSetAccountMapping_UnknownAccount() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.tenantID, "9999").
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.SetAccountMapping(ctx, suite.tenantID, domain.RoleCash, "9999", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SettingsServiceTestSuite) TestSetAccountMapping_InactiveAccount() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1001",
		AccountType: domain.Asset,
		IsActive:    false,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.tenantID, "1001").Return(account, nil).Once()

	err := suite.service.SetAccountMapping(ctx, suite.tenantID, domain.RoleCash, "1001", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSettingsRepo.AssertNotCalled(suite.T(), "UpsertAccountMapping", mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestGetAccountMappings() {
	ctx := context.Background()
	expected := map[domain.AccountRole]string{domain.RoleCash: "1001"}

	suite.mockSettingsRepo.On("FindAccountMappings", ctx, suite.tenantID).Return(expected, nil).Once()

	mappings, err := suite.service.GetAccountMappings(ctx, suite.tenantID)

	suite.Require().NoError(err)
	suite.Equal(expected, mappings)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
