package services

import (
	"context"

	"github.com/kopkas/coopledger/internal/core/domain"
	"github.com/kopkas/coopledger/internal/dto"
)

// JournalSvcFacade is the posting engine: it validates, numbers, stores, posts
// and cancels journals.
type JournalSvcFacade interface {
	// CreateJournal validates balance and account references, assigns a
	// number, and persists the journal with its lines atomically. The journal
	// starts as DRAFT unless req.Post asks for create-and-post.
	CreateJournal(ctx context.Context, tenantID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// CreateEventJournal is the adapter-facing variant: lines are already
	// built from a posting template, the number uses the event's prefix and a
	// daily period key, and the journal is posted immediately.
	CreateEventJournal(ctx context.Context, tenantID string, journal domain.Journal, lines []domain.Line, numberPrefix string) (*domain.Journal, error)

	// PostJournal transitions a draft journal to POSTED.
	PostJournal(ctx context.Context, tenantID string, journalID string, postedBy string) (*domain.Journal, error)

	// CancelJournal deletes a draft journal and its lines.
	CancelJournal(ctx context.Context, tenantID string, journalID string, userID string) error

	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}
