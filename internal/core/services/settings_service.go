package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/middleware"
)

// settingsService manages the per-tenant role → account-code mappings the
// event posting templates resolve against.
type settingsService struct {
	settingsRepo portsrepo.SettingsRepository
	accountRepo  portsrepo.AccountRepositoryFacade
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository, accountRepo portsrepo.AccountRepositoryFacade) portssvc.SettingsSvcFacade {
	return &settingsService{
		settingsRepo: settingsRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// SetAccountMapping binds a role to an account code after verifying the code
// resolves to an existing active account.
func (s *settingsService) SetAccountMapping(ctx context.Context, tenantID string, role domain.AccountRole, accountCode string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	switch role {
	case domain.RoleCash, domain.RoleLoanReceivable, domain.RoleInterestIncome, domain.RoleMemberSavings:
	default:
		return fmt.Errorf("%w: unknown account role %q", apperrors.ErrValidation, role)
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, accountCode)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountCode)
	}

	now := time.Now().UTC()
	mapping := domain.AccountMapping{
		TenantID:    tenantID,
		Role:        role,
		AccountCode: accountCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.settingsRepo.UpsertAccountMapping(ctx, mapping); err != nil {
		logger.Error("Failed to upsert account mapping", slog.String("error", err.Error()), slog.String("role", string(role)))
		return err
	}

	logger.Info("Account mapping set", slog.String("role", string(role)), slog.String("account_code", accountCode))
	return nil
}

// GetAccountMappings returns all role mappings for a tenant.
func (s *settingsService) GetAccountMappings(ctx context.Context, tenantID string) (map[domain.AccountRole]string, error) {
	return s.settingsRepo.FindAccountMappings(ctx, tenantID)
}
