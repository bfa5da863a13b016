package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/core/services"
	"github.com/kopkas/coopledger/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.JournalSvcFacade
	tenantID        string
	userID          string
	cashAccount     domain.Account
	savingsAccount  domain.Account
	txnDate         time.Time
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc)

	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.txnDate = time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1001",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.savingsAccount = domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "2001",
		Name:        "Member Savings",
		AccountType: domain.Liability,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		TransactionDate: suite.txnDate,
		Description:     "Member deposit",
		Lines: []dto.CreateLineRequest{
			{AccountCode: "1001", Debit: decimal.NewFromInt(500)},
			{AccountCode: "2001", Credit: decimal.NewFromInt(500)},
		},
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		"1001": suite.cashAccount,
		"2001": suite.savingsAccount,
	}
}

func (suite *JournalServiceTestSuite) TestCreateJournal_DraftByDefault() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, suite.tenantID, []string{"1001", "2001"}).
		Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Line"),
		portsrepo.NumberSpec{Prefix: "JRN", PeriodKey: "202503"}).
		Return("JRN2025030001", nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.Equal(domain.Draft, journal.Status)
	suite.Equal("JRN2025030001", journal.JournalNumber)
	suite.Nil(journal.PostedBy)
	suite.True(decimal.NewFromInt(500).Equal(journal.TotalDebit))
	suite.True(decimal.NewFromInt(500).Equal(journal.TotalCredit))
	suite.Len(journal.Lines, 2)
	suite.Equal(0, journal.Lines[0].Position)
	suite.Equal(1, journal.Lines[1].Position)

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_CreateAndPost() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Post = true

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, suite.tenantID, []string{"1001", "2001"}).
		Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Line"),
		portsrepo.NumberSpec{Prefix: "JRN", PeriodKey: "202503"}).
		Return("JRN2025030002", nil).Once()

	journal, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, journal.Status)
	suite.Require().NotNil(journal.PostedBy)
	suite.Equal(suite.userID, *journal.PostedBy)
	suite.NotNil(journal.PostedAt)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(499)

	_, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_TooFewLines() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_LineWithBothSides() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(500)
	req.Lines[1].Debit = decimal.NewFromInt(500)

	_, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Only one of the two codes resolves.
	partial := map[string]domain.Account{"1001": suite.cashAccount}
	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, suite.tenantID, []string{"1001", "2001"}).
		Return(partial, nil).Once()

	_, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReferentialIntegrity)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.savingsAccount
	inactive.IsActive = false
	accounts := map[string]domain.Account{"1001": suite.cashAccount, "2001": inactive}
	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, suite.tenantID, []string{"1001", "2001"}).
		Return(accounts, nil).Once()

	_, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReferentialIntegrity)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_ConcurrencyFromRepo() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, suite.tenantID, []string{"1001", "2001"}).
		Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.Line"),
		mock.AnythingOfType("repositories.NumberSpec")).
		Return("", apperrors.ErrConcurrency).Once()

	_, err := suite.service.CreateJournal(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConcurrency)
}

func (suite *JournalServiceTestSuite) draftJournal(journalID string) *domain.Journal {
	return &domain.Journal{
		JournalID:       journalID,
		TenantID:        suite.tenantID,
		JournalNumber:   "JRN2025030001",
		TransactionDate: suite.txnDate,
		Description:     "Member deposit",
		Status:          domain.Draft,
		TotalDebit:      decimal.NewFromInt(500),
		TotalCredit:     decimal.NewFromInt(500),
	}
}

func (suite *JournalServiceTestSuite) draftLines(journalID string) []domain.Line {
	return []domain.Line{
		{LineID: uuid.NewString(), JournalID: journalID, AccountCode: "1001", Debit: decimal.NewFromInt(500), Position: 0},
		{LineID: uuid.NewString(), JournalID: journalID, AccountCode: "2001", Credit: decimal.NewFromInt(500), Position: 1},
	}
}

func (suite *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, journalID).
		Return(suite.draftJournal(journalID), nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).
		Return(suite.draftLines(journalID), nil).Once()
	suite.mockJournalRepo.On("MarkJournalPosted", ctx, suite.tenantID, journalID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	journal, err := suite.service.PostJournal(ctx, suite.tenantID, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, journal.Status)
	suite.Require().NotNil(journal.PostedBy)
	suite.Equal(suite.userID, *journal.PostedBy)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_AlreadyPosted() {
	ctx := context.Background()
	journalID := uuid.NewString()

	posted := suite.draftJournal(journalID)
	posted.Status = domain.Posted

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, journalID).
		Return(posted, nil).Once()

	_, err := suite.service.PostJournal(ctx, suite.tenantID, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkJournalPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, journalID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostJournal(ctx, suite.tenantID, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestPostJournal_CorruptedDraft() {
	ctx := context.Background()
	journalID := uuid.NewString()

	broken := suite.draftLines(journalID)
	broken[1].Credit = decimal.NewFromInt(400)

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, journalID).
		Return(suite.draftJournal(journalID), nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).
		Return(broken, nil).Once()

	_, err := suite.service.PostJournal(ctx, suite.tenantID, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInternal)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkJournalPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCancelJournal_Draft() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, journalID).
		Return(suite.draftJournal(journalID), nil).Once()
	suite.mockJournalRepo.On("DeleteDraftJournal", ctx, suite.tenantID, journalID).
		Return(nil).Once()

	err := suite.service.CancelJournal(ctx, suite.tenantID, journalID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCancelJournal_PostedIsRejected() {
	ctx := context.Background()
	journalID := uuid.NewString()

	posted := suite.draftJournal(journalID)
	posted.Status = domain.Posted

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, journalID).
		Return(posted, nil).Once()

	err := suite.service.CancelJournal(ctx, suite.tenantID, journalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteDraftJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_IncludesLines() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("FindJournalByID", ctx, suite.tenantID, journalID).
		Return(suite.draftJournal(journalID), nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).
		Return(suite.draftLines(journalID), nil).Once()

	journal, err := suite.service.GetJournalByID(ctx, suite.tenantID, journalID)

	suite.Require().NoError(err)
	suite.Len(journal.Lines, 2)
}

func (suite *JournalServiceTestSuite) TestListJournals_PassesToken() {
	ctx := context.Background()
	token := "opaque-token"
	nextToken := "next-token"

	journals := []domain.Journal{*suite.draftJournal(uuid.NewString())}
	suite.mockJournalRepo.On("ListJournalsByTenant", ctx, suite.tenantID, 10, &token).
		Return(journals, nextToken, nil).Once()

	page, err := suite.service.ListJournals(ctx, suite.tenantID, dto.ListJournalsParams{Limit: 10, NextToken: &token})

	suite.Require().NoError(err)
	suite.Len(page.Journals, 1)
	suite.Require().NotNil(page.NextToken)
	suite.Equal(nextToken, *page.NextToken)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
