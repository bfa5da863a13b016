package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
)

// PgxSettingsRepository persists per-tenant ledger settings.
type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// UpsertAccountMapping creates or replaces the role → account-code mapping.
func (r *PgxSettingsRepository) UpsertAccountMapping(ctx context.Context, m domain.AccountMapping) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO ledger_settings (tenant_id, role, account_code, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, role)
		DO UPDATE SET account_code = EXCLUDED.account_code,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`, m.TenantID, string(m.Role), m.AccountCode, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert account mapping for role "+string(m.Role), err)
	}
	return nil
}

// FindAccountMappings returns all role mappings for a tenant, keyed by role.
func (r *PgxSettingsRepository) FindAccountMappings(ctx context.Context, tenantID string) (map[domain.AccountRole]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT role, account_code FROM ledger_settings WHERE tenant_id = $1;
	`, tenantID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account mappings", err)
	}
	defer rows.Close()

	mappings := make(map[domain.AccountRole]string)
	for rows.Next() {
		var role, code string
		if err := rows.Scan(&role, &code); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account mapping row", err)
		}
		mappings[domain.AccountRole(role)] = code
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account mapping rows", err)
	}
	return mappings, nil
}
