package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/middleware"
	"github.com/kopkas/coopledger/internal/utils/numbering"
)

// lineSide says which side of a template line the amount lands on.
type lineSide int

const (
	sideDebit lineSide = iota
	sideCredit
)

// templateEntry is one line of a posting template: which account role
// participates, on which side, and how to read the amount off the event.
// Entries with skipZero drop out when their amount is zero (e.g. the interest
// line of a repayment with no interest portion).
type templateEntry struct {
	role     domain.AccountRole
	side     lineSide
	amount   func(domain.LedgerEvent) decimal.Decimal
	skipZero bool
}

// postingTemplates maps each event type to its ordered template. Debit and
// credit amount selectors are chosen so the sums match by construction; the
// generic interpreter below never needs to re-balance.
var postingTemplates = map[domain.LedgerEventType][]templateEntry{
	domain.EventLoanDisbursed: {
		{role: domain.RoleLoanReceivable, side: sideDebit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Principal }},
		{role: domain.RoleCash, side: sideCredit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Principal }},
	},
	domain.EventLoanRepaid: {
		{role: domain.RoleCash, side: sideDebit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Principal.Add(e.Interest) }},
		{role: domain.RoleLoanReceivable, side: sideCredit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Principal }},
		{role: domain.RoleInterestIncome, side: sideCredit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Interest }, skipZero: true},
	},
	domain.EventSavingsDeposit: {
		{role: domain.RoleCash, side: sideDebit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Amount }},
		{role: domain.RoleMemberSavings, side: sideCredit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Amount }},
	},
	domain.EventSavingsWithdrawal: {
		{role: domain.RoleMemberSavings, side: sideDebit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Amount }},
		{role: domain.RoleCash, side: sideCredit, amount: func(e domain.LedgerEvent) decimal.Decimal { return e.Amount }},
	},
}

// eventDescriptions names the business event on the generated journal.
var eventDescriptions = map[domain.LedgerEventType]string{
	domain.EventLoanDisbursed:     "Loan disbursement",
	domain.EventLoanRepaid:        "Loan repayment",
	domain.EventSavingsDeposit:    "Savings deposit",
	domain.EventSavingsWithdrawal: "Savings withdrawal",
}

// postingAdapterService translates domain events into balanced journals using
// the template registry and the tenant's role → account mappings.
type postingAdapterService struct {
	journalSvc   portssvc.JournalSvcFacade
	settingsRepo portsrepo.SettingsRepository
}

// NewPostingAdapterService creates a new PostingAdapterService.
func NewPostingAdapterService(journalSvc portssvc.JournalSvcFacade, settingsRepo portsrepo.SettingsRepository) portssvc.PostingSvcFacade {
	return &postingAdapterService{
		journalSvc:   journalSvc,
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingAdapterService)(nil)

// ProcessEvent builds and posts the journal for one domain event.
func (s *postingAdapterService) ProcessEvent(ctx context.Context, event domain.LedgerEvent) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	template, ok := postingTemplates[event.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported event type %q", apperrors.ErrValidation, event.Type)
	}
	if event.ReferenceID == "" {
		return nil, fmt.Errorf("%w: event reference ID is required", apperrors.ErrValidation)
	}
	if event.TransactionDate.IsZero() {
		return nil, fmt.Errorf("%w: event transaction date is required", apperrors.ErrValidation)
	}

	mappings, err := s.settingsRepo.FindAccountMappings(ctx, event.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account mappings: %w", err)
	}

	prefix, err := numbering.EventPrefix(event.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	description := event.Description
	if description == "" {
		description = fmt.Sprintf("%s %s", eventDescriptions[event.Type], event.ReferenceID)
	}

	lines := make([]domain.Line, 0, len(template))
	for _, entry := range template {
		amount := entry.amount(event)
		if amount.IsNegative() {
			return nil, fmt.Errorf("%w: negative amount for %s in event %s", apperrors.ErrValidation, entry.role, event.ReferenceID)
		}
		if amount.IsZero() {
			if entry.skipZero {
				continue
			}
			return nil, fmt.Errorf("%w: zero amount for %s in event %s", apperrors.ErrValidation, entry.role, event.ReferenceID)
		}

		code, ok := mappings[entry.role]
		if !ok {
			return nil, fmt.Errorf("%w: no account mapped for role %q in tenant %s", apperrors.ErrNotFound, entry.role, event.TenantID)
		}

		line := domain.Line{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountCode: code,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
			Description: description,
			Position:    len(lines),
			CreatedAt:   now,
			CreatedBy:   event.ProcessedBy,
		}
		if entry.side == sideDebit {
			line.Debit = amount
		} else {
			line.Credit = amount
		}
		lines = append(lines, line)
	}

	journal := domain.Journal{
		JournalID:       journalID,
		TenantID:        event.TenantID,
		TransactionDate: event.TransactionDate,
		Description:     description,
		ReferenceType:   event.ReferenceType(),
		ReferenceID:     event.ReferenceID,
		Status:          domain.Posted,
		PostedBy:        &event.ProcessedBy,
		PostedAt:        &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     event.ProcessedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: event.ProcessedBy,
		},
	}

	created, err := s.journalSvc.CreateEventJournal(ctx, event.TenantID, journal, lines, prefix)
	if err != nil {
		logger.Error("Failed to post event journal",
			slog.String("error", err.Error()),
			slog.String("event_type", string(event.Type)),
			slog.String("reference_id", event.ReferenceID))
		return nil, err
	}

	logger.Info("Ledger event processed",
		slog.String("event_type", string(event.Type)),
		slog.String("reference_id", event.ReferenceID),
		slog.String("journal_number", created.JournalNumber))
	return created, nil
}
