package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/middleware"
	"github.com/kopkas/coopledger/internal/utils/accounting"
)

// reportingService computes the financial reports from posted ledger data.
// Every signed balance below goes through accounting.SignedAmount, so the
// reports share one normal-balance convention.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetTrialBalance lists every account with posted activity dated on or before
// asOf, ordered by account code.
func (s *reportingService) GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetTrialBalanceData(ctx, tenantID, asOf)
	if err != nil {
		logger.Error("Failed to query trial balance data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate trial balance: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(activity)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, act := range activity {
		if act.TotalDebit.IsZero() && act.TotalCredit.IsZero() {
			continue
		}
		balance, err := accounting.SignedAmount(act.AccountType, act.TotalDebit, act.TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %s", apperrors.ErrInternal, act.AccountCode, err)
		}
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountCode: act.AccountCode,
			AccountName: act.AccountName,
			AccountType: act.AccountType,
			TotalDebit:  act.TotalDebit,
			TotalCredit: act.TotalCredit,
			Balance:     balance,
		})
		report.TotalDebit = report.TotalDebit.Add(act.TotalDebit)
		report.TotalCredit = report.TotalCredit.Add(act.TotalCredit)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccountCode < report.Rows[j].AccountCode
	})

	return report, nil
}

// GetGeneralLedger returns one account's chronological activity with a running
// balance per row, opening from the balance before startDate.
func (s *reportingService) GetGeneralLedger(ctx context.Context, tenantID string, accountCode string, startDate, endDate time.Time) (*domain.GeneralLedgerReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, accountCode)
	if err != nil {
		return nil, err
	}

	opening, err := s.reportingRepo.GetAccountTotalsBefore(ctx, tenantID, accountCode, startDate)
	if err != nil {
		logger.Error("Failed to query opening balance", slog.String("error", err.Error()), slog.String("account_code", accountCode))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	openingBalance, err := accounting.SignedAmount(account.AccountType, opening.TotalDebit, opening.TotalCredit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
	}

	rows, err := s.reportingRepo.GetGeneralLedgerRows(ctx, tenantID, accountCode, startDate, endDate)
	if err != nil {
		logger.Error("Failed to query general ledger rows", slog.String("error", err.Error()), slog.String("account_code", accountCode))
		return nil, fmt.Errorf("failed to generate general ledger: %w", err)
	}

	running := openingBalance
	for i := range rows {
		signed, err := accounting.SignedAmount(account.AccountType, rows[i].Debit, rows[i].Credit)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
		}
		running = running.Add(signed)
		rows[i].RunningBalance = running
	}

	return &domain.GeneralLedgerReport{
		AccountCode:    account.Code,
		AccountName:    account.Name,
		AccountType:    account.AccountType,
		StartDate:      startDate,
		EndDate:        endDate,
		OpeningBalance: openingBalance,
		Rows:           rows,
		ClosingBalance: running,
	}, nil
}

// GenerateIncomeStatement aggregates income and expense activity over [startDate, endDate].
func (s *reportingService) GenerateIncomeStatement(ctx context.Context, tenantID string, startDate, endDate time.Time) (*domain.IncomeStatementReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetActivityByType(ctx, tenantID,
		[]domain.AccountType{domain.Income, domain.Expense}, startDate, endDate)
	if err != nil {
		logger.Error("Failed to query income statement data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate income statement: %w", err)
	}

	report := &domain.IncomeStatementReport{
		StartDate:     startDate,
		EndDate:       endDate,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, act := range activity {
		amount, err := accounting.SignedAmount(act.AccountType, act.TotalDebit, act.TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %s", apperrors.ErrInternal, act.AccountCode, err)
		}
		if amount.IsZero() {
			continue
		}
		entry := domain.AccountAmount{
			AccountCode: act.AccountCode,
			Name:        act.AccountName,
			Amount:      amount,
		}
		switch act.AccountType {
		case domain.Income:
			report.Revenue = append(report.Revenue, entry)
			report.TotalRevenue = report.TotalRevenue.Add(amount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, entry)
			report.TotalExpenses = report.TotalExpenses.Add(amount)
		}
	}

	sortAccountAmounts(report.Revenue)
	sortAccountAmounts(report.Expenses)
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	return report, nil
}

// GenerateBalanceSheet computes asset, liability and equity balances as of a date.
func (s *reportingService) GenerateBalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetActivityByType(ctx, tenantID,
		[]domain.AccountType{domain.Asset, domain.Liability, domain.Equity}, time.Time{}, asOf)
	if err != nil {
		logger.Error("Failed to query balance sheet data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate balance sheet: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, act := range activity {
		balance, err := accounting.SignedAmount(act.AccountType, act.TotalDebit, act.TotalCredit)
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %s", apperrors.ErrInternal, act.AccountCode, err)
		}
		entry := domain.AccountAmount{
			AccountCode: act.AccountCode,
			Name:        act.AccountName,
			Amount:      balance,
		}
		switch act.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, entry)
			report.TotalAssets = report.TotalAssets.Add(balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, entry)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance)
		case domain.Equity:
			report.Equity = append(report.Equity, entry)
			report.TotalEquity = report.TotalEquity.Add(balance)
		}
	}

	sortAccountAmounts(report.Assets)
	sortAccountAmounts(report.Liabilities)
	sortAccountAmounts(report.Equity)
	report.LiabilitiesAndEquity = report.TotalLiabilities.Add(report.TotalEquity)

	return report, nil
}

func sortAccountAmounts(entries []domain.AccountAmount) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AccountCode < entries[j].AccountCode
	})
}
