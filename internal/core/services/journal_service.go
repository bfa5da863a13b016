package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/dto"
	"github.com/kopkas/coopledger/internal/middleware"
	"github.com/kopkas/coopledger/internal/utils/accounting"
	"github.com/kopkas/coopledger/internal/utils/numbering"
)

var (
	ErrJournalUnbalanced = errors.New("journal debit and credit totals do not match")
	ErrJournalMinLines   = errors.New("journal must have at least two lines")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrDescriptionEmpty  = errors.New("journal description is required")
)

// journalService is the posting engine: validation, numbering, atomic writes
// and the draft/posted/cancelled state machine.
type journalService struct {
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournal creates a new journal entry with its lines after validation.
// Implements portssvc.JournalSvcFacade
func (s *journalService) CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrJournalMinLines)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionEmpty)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines := make([]domain.Line, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.Line{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountCode: lineReq.AccountCode,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			Description: lineReq.Description,
			Position:    i,
			CreatedAt:   now,
			CreatedBy:   creatorUserID,
		}
	}

	journal := domain.Journal{
		JournalID:       journalID,
		TenantID:        tenantID,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		ReferenceType:   req.ReferenceType,
		ReferenceID:     req.ReferenceID,
		Status:          domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.Post {
		journal.Status = domain.Posted
		journal.PostedBy = &creatorUserID
		journal.PostedAt = &now
	}

	spec := portsrepo.NumberSpec{
		Prefix:    numbering.PrefixGeneral,
		PeriodKey: numbering.MonthlyPeriodKey(req.TransactionDate),
	}

	created, err := s.createJournal(ctx, journal, lines, spec)
	if err != nil {
		logger.Error("Failed to create journal", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}

	logger.Info("Journal created",
		slog.String("journal_id", created.JournalID),
		slog.String("journal_number", created.JournalNumber),
		slog.String("status", string(created.Status)))
	return created, nil
}

// CreateEventJournal persists an adapter-built journal, posted immediately,
// numbered with the event prefix and a daily period key.
func (s *journalService) CreateEventJournal(ctx context.Context, tenantID string, journal domain.Journal, lines []domain.Line, numberPrefix string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal.TenantID = tenantID
	journal.Status = domain.Posted

	spec := portsrepo.NumberSpec{
		Prefix:    numberPrefix,
		PeriodKey: numbering.DailyPeriodKey(journal.TransactionDate),
	}

	created, err := s.createJournal(ctx, journal, lines, spec)
	if err != nil {
		logger.Error("Failed to create event journal", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, err
	}

	logger.Info("Event journal posted",
		slog.String("journal_id", created.JournalID),
		slog.String("journal_number", created.JournalNumber))
	return created, nil
}

// createJournal is the shared validate-and-persist path behind both creation
// entry points. Nothing is written when any check fails.
func (s *journalService) createJournal(ctx context.Context, journal domain.Journal, lines []domain.Line, spec portsrepo.NumberSpec) (*domain.Journal, error) {
	for _, line := range lines {
		if err := accounting.ValidateLine(line); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		codes = append(codes, line.AccountCode)
	}
	codes = uniqueStrings(codes)

	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, journal.TenantID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, code := range codes {
		acc, found := accounts[code]
		if !found {
			return nil, fmt.Errorf("%w: %s: code %s", apperrors.ErrReferentialIntegrity, ErrAccountNotFound, code)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s: code %s", apperrors.ErrReferentialIntegrity, ErrAccountInactive, code)
		}
	}

	journal.TotalDebit, journal.TotalCredit = accounting.SumLines(lines)

	number, err := s.journalRepo.SaveJournal(ctx, journal, lines, spec)
	if err != nil {
		return nil, err
	}
	journal.JournalNumber = number
	journal.Lines = lines
	return &journal, nil
}

// PostJournal transitions a draft journal to POSTED. The second call on the
// same journal fails with ErrStateConflict and changes nothing.
func (s *journalService) PostJournal(ctx context.Context, tenantID string, journalID string, postedBy string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal %s is %s, expected DRAFT", apperrors.ErrStateConflict, journalID, journal.Status)
	}

	// Balance was enforced at creation; re-assert it before making the
	// journal part of permanent ledger history.
	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal %s: %w", journalID, err)
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		logger.Error("Stored draft journal is unbalanced", slog.String("journal_id", journalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInternal, err)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkJournalPosted(ctx, tenantID, journalID, postedBy, now); err != nil {
		return nil, err
	}

	journal.Status = domain.Posted
	journal.PostedBy = &postedBy
	journal.PostedAt = &now
	journal.Lines = lines

	logger.Info("Journal posted", slog.String("journal_id", journalID), slog.String("posted_by", postedBy))
	return journal, nil
}

// CancelJournal deletes a draft journal and its lines as one atomic operation.
func (s *journalService) CancelJournal(ctx context.Context, tenantID string, journalID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return err
	}
	if journal.Status != domain.Draft {
		return fmt.Errorf("%w: journal %s is %s, expected DRAFT", apperrors.ErrStateConflict, journalID, journal.Status)
	}

	if err := s.journalRepo.DeleteDraftJournal(ctx, tenantID, journalID); err != nil {
		return err
	}

	logger.Info("Journal cancelled", slog.String("journal_id", journalID), slog.String("cancelled_by", userID))
	return nil
}

// GetJournalByID retrieves a journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, err)
	}
	journal.Lines = lines
	return journal, nil
}

// ListJournals retrieves a paginated list of journals for a tenant.
func (s *journalService) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	journals, nextToken, err := s.journalRepo.ListJournalsByTenant(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	var linesMap map[string][]domain.Line
	if params.IncludeLines && len(journals) > 0 {
		journalIDs := make([]string, len(journals))
		for i, j := range journals {
			journalIDs[i] = j.JournalID
		}
		linesMap, err = s.journalRepo.FindLinesByJournalIDs(ctx, journalIDs)
		if err != nil {
			// Continue without lines rather than failing the whole request.
			logger.Warn("Failed to fetch lines for journals", slog.String("error", err.Error()))
		}
	}

	responses := make([]dto.JournalResponse, len(journals))
	for i, journal := range journals {
		if linesMap != nil {
			journal.Lines = linesMap[journal.JournalID]
		}
		responses[i] = dto.ToJournalResponse(&journal)
	}

	return &dto.ListJournalsResponse{
		Journals:  responses,
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
