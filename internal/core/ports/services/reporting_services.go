package services

import (
	"context"
	"time"

	"github.com/kopkas/coopledger/internal/core/domain"
)

// ReportingSvcFacade exposes the financial reports. All reports read posted
// journals only and return empty reports (not errors) for empty ranges.
type ReportingSvcFacade interface {
	// GetTrialBalance lists every account with activity dated on or before
	// asOf, with debit/credit totals and the signed balance, ordered by code.
	GetTrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// GetGeneralLedger returns one account's chronological activity in
	// [startDate, endDate] with a running balance per row.
	GetGeneralLedger(ctx context.Context, tenantID string, accountCode string, startDate, endDate time.Time) (*domain.GeneralLedgerReport, error)

	// GenerateIncomeStatement aggregates income and expense activity over the period.
	GenerateIncomeStatement(ctx context.Context, tenantID string, startDate, endDate time.Time) (*domain.IncomeStatementReport, error)

	// GenerateBalanceSheet computes asset/liability/equity balances as of a date.
	GenerateBalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
