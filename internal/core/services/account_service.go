package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/dto"
	"github.com/kopkas/coopledger/internal/middleware"
)

// accountService provides chart-of-accounts management.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates and persists a new ledger account.
func (s *accountService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.ValidAccountCode(req.Code) {
		return nil, fmt.Errorf("%w: account code %q must be 4 to 6 digits", apperrors.ErrValidation, req.Code)
	}
	if !domain.ValidAccountType(req.AccountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Category:    req.Category,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// Uniqueness is enforced by the (tenant, code) unique index; the repo maps
	// a violation to ErrDuplicate.
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount applies partial updates to an account; code changes re-run the
// format and uniqueness checks.
func (s *accountService) UpdateAccount(ctx context.Context, tenantID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Code != nil && *req.Code != account.Code {
		if !domain.ValidAccountCode(*req.Code) {
			return nil, fmt.Errorf("%w: account code %q must be 4 to 6 digits", apperrors.ErrValidation, *req.Code)
		}
		// Journal lines reference accounts by code, so renaming a referenced
		// code would orphan its history in every report.
		refCount, err := s.accountRepo.CountLinesForAccount(ctx, tenantID, account.Code)
		if err != nil {
			return nil, err
		}
		if refCount > 0 {
			return nil, fmt.Errorf("%w: account %s is referenced by %d journal line(s), its code cannot change", apperrors.ErrReferentialIntegrity, account.Code, refCount)
		}
		account.Code = *req.Code
		updated = true
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: account name must not be empty", apperrors.ErrValidation)
		}
		account.Name = *req.Name
		updated = true
	}
	if req.Category != nil {
		account.Category = *req.Category
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount marks an account inactive. The repository refuses with
// ErrReferentialIntegrity while journal lines reference the account's code.
func (s *accountService) DeactivateAccount(ctx context.Context, tenantID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, userID, time.Now().UTC()); err != nil {
		logger.Warn("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// GetAccountByCode retrieves one account by ledger code.
func (s *accountService) GetAccountByCode(ctx context.Context, tenantID string, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, tenantID, code)
}

// GetAccountsByCodes retrieves accounts for the given codes, keyed by code.
func (s *accountService) GetAccountsByCodes(ctx context.Context, tenantID string, codes []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByCodes(ctx, tenantID, codes)
}

// ListAccounts lists accounts, optionally filtered by type and activity.
func (s *accountService) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType, activeOnly bool) ([]domain.Account, error) {
	if accountType != nil && !domain.ValidAccountType(*accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *accountType)
	}
	return s.accountRepo.ListAccounts(ctx, tenantID, accountType, activeOnly)
}

// SearchAccounts finds accounts matching the free text.
func (s *accountService) SearchAccounts(ctx context.Context, tenantID string, text string) ([]domain.Account, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: search text is required", apperrors.ErrValidation)
	}
	return s.accountRepo.SearchAccounts(ctx, tenantID, text)
}
