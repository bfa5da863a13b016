package repositories

import (
	"context"
	"time"

	"github.com/kopkas/coopledger/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier within a tenant.
	FindAccountByID(ctx context.Context, tenantID string, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its ledger code within a tenant.
	FindAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves accounts for multiple codes, keyed by code.
	// Codes with no matching account are simply absent from the result.
	FindAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts for a tenant, optionally filtered by type
	// and restricted to active accounts.
	ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, activeOnly bool) ([]domain.Account, error)

	// SearchAccounts retrieves accounts whose code, name or category matches the text.
	SearchAccounts(ctx context.Context, tenantID string, text string) ([]domain.Account, error)

	// CountLinesForAccount returns the number of journal lines referencing the
	// account code anywhere in the tenant's ledger.
	CountLinesForAccount(ctx context.Context, tenantID string, code string) (int64, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate code within the tenant
	// surfaces as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive. The referencing-lines check
	// and the flag update run in one database transaction; a referenced
	// account surfaces as apperrors.ErrReferentialIntegrity.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
