package repositories

import (
	"context"
	"time"

	"github.com/kopkas/coopledger/internal/core/domain"
)

// ReportingRepository defines the read-only aggregations behind the financial
// reports. Every query considers POSTED journals only.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit totals for lines
	// dated on or before asOf. Accounts without activity are not returned.
	GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountActivity, error)

	// GetActivityByType returns per-account debit/credit totals for accounts
	// of the given types within [from, to]. Passing a zero `from` means "from
	// the beginning of the ledger" (used by balance-sheet style reports).
	GetActivityByType(ctx context.Context, tenantID string, types []domain.AccountType, from, to time.Time) ([]domain.AccountActivity, error)

	// GetGeneralLedgerRows returns the posted lines for one account within
	// [from, to], ordered by transaction date then line creation order.
	// RunningBalance on the returned rows is left zero; the service fills it.
	GetGeneralLedgerRows(ctx context.Context, tenantID string, accountCode string, from, to time.Time) ([]domain.GeneralLedgerRow, error)

	// GetAccountTotalsBefore returns the account's debit and credit totals for
	// posted lines strictly before the given date (opening balance input).
	GetAccountTotalsBefore(ctx context.Context, tenantID string, accountCode string, before time.Time) (domain.AccountActivity, error)
}
