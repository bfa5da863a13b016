package services

import (
	"context"

	"github.com/kopkas/coopledger/internal/core/domain"
)

// PostingSvcFacade is the event-to-journal adapter: it translates domain
// events into balanced journals and submits them to the posting engine.
type PostingSvcFacade interface {
	// ProcessEvent builds the posting template for the event, resolves the
	// participating accounts through the tenant's role mappings, and
	// creates-and-posts the resulting journal. Construction guarantees the
	// debit and credit sums match exactly.
	ProcessEvent(ctx context.Context, event domain.LedgerEvent) (*domain.Journal, error)
}

// SettingsSvcFacade manages per-tenant ledger settings.
type SettingsSvcFacade interface {
	// SetAccountMapping binds an account role to an account code, verifying
	// the code resolves to an existing active account.
	SetAccountMapping(ctx context.Context, tenantID string, role domain.AccountRole, accountCode string, userID string) error

	// GetAccountMappings returns all role mappings for a tenant.
	GetAccountMappings(ctx context.Context, tenantID string) (map[domain.AccountRole]string, error)
}
