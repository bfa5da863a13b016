package repositories

import (
	"context"

	"github.com/kopkas/coopledger/internal/core/domain"
)

// SettingsRepository persists the per-tenant ledger settings, currently the
// role → account-code mapping the event posting templates resolve against.
type SettingsRepository interface {
	// UpsertAccountMapping creates or replaces the mapping for one role.
	UpsertAccountMapping(ctx context.Context, mapping domain.AccountMapping) error

	// FindAccountMappings returns all role mappings for a tenant, keyed by role.
	FindAccountMappings(ctx context.Context, tenantID string) (map[domain.AccountRole]string, error)
}
