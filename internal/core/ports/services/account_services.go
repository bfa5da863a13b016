package services

import (
	"context"

	"github.com/kopkas/coopledger/internal/core/domain"
	"github.com/kopkas/coopledger/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts management to handlers and to
// the posting engine.
type AccountSvcFacade interface {
	// CreateAccount validates the code format and uniqueness and persists a
	// new active account.
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount applies the non-nil fields of req; code changes re-run the
	// format and uniqueness checks.
	UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks the account inactive unless journal lines still
	// reference it.
	DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string) error

	// GetAccountByCode retrieves one account by ledger code.
	GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error)

	// GetAccountsByCodes retrieves accounts for the given codes, keyed by code.
	GetAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts lists accounts, optionally filtered by type and activity.
	ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, activeOnly bool) ([]domain.Account, error)

	// SearchAccounts finds accounts matching the free text.
	SearchAccounts(ctx context.Context, tenantID string, text string) ([]domain.Account, error)
}
