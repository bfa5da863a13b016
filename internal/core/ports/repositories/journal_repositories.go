package repositories

import (
	"context"
	"time"

	"github.com/kopkas/coopledger/internal/core/domain"
)

// NumberSpec tells the journal repository how to derive the journal number:
// the next value of the (tenant, prefix, period) sequence is claimed
// atomically in the same transaction that writes the journal.
type NumberSpec struct {
	Prefix    string
	PeriodKey string
}

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error)

	// ListJournalsByTenant retrieves a paginated list of journals using
	// token-based pagination. It returns the journals, a token for the next
	// page, and an error.
	ListJournalsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// SaveJournal persists a journal header and its lines atomically, claiming
	// the journal number described by spec inside the same transaction. The
	// assigned number is returned. A duplicate number (two writers racing on
	// the same sequence) surfaces as apperrors.ErrConcurrency.
	SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.Line, spec NumberSpec) (string, error)

	// MarkJournalPosted transitions a DRAFT journal to POSTED, recording the
	// posting actor and time. It returns apperrors.ErrStateConflict when the
	// journal is not in DRAFT (the guard is part of the UPDATE, so a
	// concurrent post loses cleanly).
	MarkJournalPosted(ctx context.Context, tenantID string, journalID string, postedBy string, postedAt time.Time) error

	// DeleteDraftJournal removes a DRAFT journal and its lines in one
	// transaction. Non-draft journals surface as apperrors.ErrStateConflict.
	DeleteDraftJournal(ctx context.Context, tenantID string, journalID string) error
}

// LineReader defines read operations for journal line data.
type LineReader interface {
	// FindLinesByJournalID retrieves all lines of a single journal in position order.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.Line, error)

	// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by journal ID.
	FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.Line, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}
