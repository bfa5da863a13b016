package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.ReportingSvcFacade
	tenantID          string
	asOf              time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo)
	suite.tenantID = uuid.NewString()
	suite.asOf = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)
}

// Activity after disbursing a 1000 loan and receiving one 110 repayment
// (100 principal, 10 interest).
func (suite *ReportingServiceTestSuite) loanScenarioActivity() []domain.AccountActivity {
	return []domain.AccountActivity{
		{AccountCode: "1001", AccountName: "Cash", AccountType: domain.Asset,
			TotalDebit: decimal.NewFromInt(110), TotalCredit: decimal.NewFromInt(1000)},
		{AccountCode: "1101", AccountName: "Loan Receivable", AccountType: domain.Asset,
			TotalDebit: decimal.NewFromInt(1000), TotalCredit: decimal.NewFromInt(100)},
		{AccountCode: "4001", AccountName: "Interest Income", AccountType: domain.Income,
			TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(10)},
	}
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_ClosesToZero() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.tenantID, suite.asOf).
		Return(suite.loanScenarioActivity(), nil).Once()

	report, err := suite.service.GetTrialBalance(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)

	// Rows are ordered by account code.
	suite.Equal("1001", report.Rows[0].AccountCode)
	suite.Equal("1101", report.Rows[1].AccountCode)
	suite.Equal("4001", report.Rows[2].AccountCode)

	// Signed balances follow the normal-balance convention.
	suite.True(decimal.NewFromInt(-890).Equal(report.Rows[0].Balance), "cash balance: %s", report.Rows[0].Balance)
	suite.True(decimal.NewFromInt(900).Equal(report.Rows[1].Balance), "loan balance: %s", report.Rows[1].Balance)
	suite.True(decimal.NewFromInt(10).Equal(report.Rows[2].Balance), "interest balance: %s", report.Rows[2].Balance)

	// The column totals of a ledger built from balanced journals agree.
	suite.True(report.TotalDebit.Equal(report.TotalCredit),
		"debit total %s should equal credit total %s", report.TotalDebit, report.TotalCredit)
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_SkipsZeroActivity() {
	ctx := context.Background()

	activity := append(suite.loanScenarioActivity(), domain.AccountActivity{
		AccountCode: "5001", AccountName: "Rent", AccountType: domain.Expense,
		TotalDebit: decimal.Zero, TotalCredit: decimal.Zero,
	})
	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.tenantID, suite.asOf).
		Return(activity, nil).Once()

	report, err := suite.service.GetTrialBalance(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.Len(report.Rows, 3)
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_EmptyLedger() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetTrialBalanceData", ctx, suite.tenantID, suite.asOf).
		Return([]domain.AccountActivity{}, nil).Once()

	report, err := suite.service.GetTrialBalance(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.TotalDebit.IsZero())
	suite.True(report.TotalCredit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestGetGeneralLedger_RunningBalance() {
	ctx := context.Background()
	startDate := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	endDate := suite.asOf

	cash := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1001",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.tenantID, "1001").Return(cash, nil).Once()
	suite.mockReportingRepo.On("GetAccountTotalsBefore", ctx, suite.tenantID, "1001", startDate).
		Return(domain.AccountActivity{
			AccountCode: "1001",
			TotalDebit:  decimal.NewFromInt(5000),
			TotalCredit: decimal.NewFromInt(3000),
		}, nil).Once()
	suite.mockReportingRepo.On("GetGeneralLedgerRows", ctx, suite.tenantID, "1001", startDate, endDate).
		Return([]domain.GeneralLedgerRow{
			{JournalNumber: "LN202503070001", Debit: decimal.Zero, Credit: decimal.NewFromInt(1000)},
			{JournalNumber: "RP202503150001", Debit: decimal.NewFromInt(110), Credit: decimal.Zero},
		}, nil).Once()

	report, err := suite.service.GetGeneralLedger(ctx, suite.tenantID, "1001", startDate, endDate)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(2000).Equal(report.OpeningBalance), "opening: %s", report.OpeningBalance)
	suite.Require().Len(report.Rows, 2)
	suite.True(decimal.NewFromInt(1000).Equal(report.Rows[0].RunningBalance), "after disbursement: %s", report.Rows[0].RunningBalance)
	suite.True(decimal.NewFromInt(1110).Equal(report.Rows[1].RunningBalance), "after repayment: %s", report.Rows[1].RunningBalance)
	suite.True(report.ClosingBalance.Equal(report.Rows[1].RunningBalance))
}

func (suite *ReportingServiceTestSuite) TestGetGeneralLedger_UnknownAccount() {
	ctx := context.Background()
	startDate := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.tenantID, "9999").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetGeneralLedger(ctx, suite.tenantID, "9999", startDate, suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReportingServiceTestSuite) TestGenerateIncomeStatement() {
	ctx := context.Background()
	startDate := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetActivityByType", ctx, suite.tenantID,
		[]domain.AccountType{domain.Income, domain.Expense}, startDate, suite.asOf).
		Return([]domain.AccountActivity{
			{AccountCode: "4001", AccountName: "Interest Income", AccountType: domain.Income,
				TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(250)},
			{AccountCode: "5001", AccountName: "Rent", AccountType: domain.Expense,
				TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
			{AccountCode: "5002", AccountName: "Bank Fees", AccountType: domain.Expense,
				TotalDebit: decimal.NewFromInt(40), TotalCredit: decimal.NewFromInt(40)},
		}, nil).Once()

	report, err := suite.service.GenerateIncomeStatement(ctx, suite.tenantID, startDate, suite.asOf)

	suite.Require().NoError(err)
	suite.Len(report.Revenue, 1)
	suite.Len(report.Expenses, 1, "net-zero accounts are omitted")
	suite.True(decimal.NewFromInt(250).Equal(report.TotalRevenue))
	suite.True(decimal.NewFromInt(100).Equal(report.TotalExpenses))
	suite.True(decimal.NewFromInt(150).Equal(report.NetIncome))
}

func (suite *ReportingServiceTestSuite) TestGenerateBalanceSheet_AccountingEquation() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetActivityByType", ctx, suite.tenantID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, time.Time{}, suite.asOf).
		Return([]domain.AccountActivity{
			{AccountCode: "1001", AccountName: "Cash", AccountType: domain.Asset,
				TotalDebit: decimal.NewFromInt(900), TotalCredit: decimal.NewFromInt(100)},
			{AccountCode: "2001", AccountName: "Member Savings", AccountType: domain.Liability,
				TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(600)},
			{AccountCode: "3001", AccountName: "Share Capital", AccountType: domain.Equity,
				TotalDebit: decimal.Zero, TotalCredit: decimal.NewFromInt(300)},
		}, nil).Once()

	report, err := suite.service.GenerateBalanceSheet(ctx, suite.tenantID, suite.asOf)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(800).Equal(report.TotalAssets))
	suite.True(decimal.NewFromInt(500).Equal(report.TotalLiabilities))
	suite.True(decimal.NewFromInt(300).Equal(report.TotalEquity))
	suite.True(report.TotalAssets.Equal(report.LiabilitiesAndEquity),
		"assets %s should equal liabilities+equity %s", report.TotalAssets, report.LiabilitiesAndEquity)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
