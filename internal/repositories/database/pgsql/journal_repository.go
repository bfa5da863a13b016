package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
	"github.com/kopkas/coopledger/internal/models"
	"github.com/kopkas/coopledger/internal/utils/mapping"
	"github.com/kopkas/coopledger/internal/utils/numbering"
	"github.com/kopkas/coopledger/internal/utils/pagination"
)

// PgxJournalRepository persists journals and their lines.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, tenant_id, journal_number, transaction_date, description,
       reference_type, reference_id, status, total_debit, total_credit,
       posted_by, posted_at, created_at, created_by, last_updated_at, last_updated_by`

// SaveJournal writes the journal header and all lines in one database
// transaction, claiming the next value of the (tenant, prefix, period)
// sequence inside the same transaction. Header and lines become visible
// together or not at all.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.Line, spec portsrepo.NumberSpec) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	// Claim the next sequence value. The upsert takes a row lock, so two
	// writers on the same (tenant, prefix, period) serialize here.
	var seq int64
	err = tx.QueryRow(ctx, `
		INSERT INTO journal_sequences (tenant_id, prefix, period_key, next_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (tenant_id, prefix, period_key)
		DO UPDATE SET next_value = journal_sequences.next_value + 1
		RETURNING next_value;
	`, journal.TenantID, spec.Prefix, spec.PeriodKey).Scan(&seq)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to claim journal sequence", err)
	}

	journal.JournalNumber = numbering.Format(spec.Prefix, spec.PeriodKey, seq)

	m := mapping.ToModelJournal(journal)
	_, err = tx.Exec(ctx, `
		INSERT INTO journals (`+journalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`,
		m.JournalID,
		m.TenantID,
		m.JournalNumber,
		m.TransactionDate,
		m.Description,
		m.ReferenceType,
		m.ReferenceID,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.PostedBy,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent writer committed the same number first.
			return "", fmt.Errorf("%w: journal number %s", apperrors.ErrConcurrency, m.JournalNumber)
		}
		return "", apperrors.NewAppError(500, "failed to insert journal "+m.JournalID, err)
	}

	if err := lockReferencedAccounts(ctx, tx, journal.TenantID, lines); err != nil {
		return "", err
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_id, account_code, debit, credit, description, position, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range lines {
		ml := mapping.ToModelLine(line)
		batch.Queue(lineQuery,
			ml.LineID,
			ml.JournalID,
			ml.AccountCode,
			ml.Debit,
			ml.Credit,
			ml.Description,
			ml.Position,
			ml.CreatedAt,
			ml.CreatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return "", apperrors.NewAppError(500, "failed to execute line batch for journal "+m.JournalID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return journal.JournalNumber, nil
}

// lockReferencedAccounts takes share locks on the active account rows the
// lines reference, held until commit. DeactivateAccount locks the account
// FOR UPDATE before counting references, so the two transactions serialize:
// a deactivation cannot slip in while these lines land, and a deactivation
// that already committed makes this save fail.
func lockReferencedAccounts(ctx context.Context, tx pgx.Tx, tenantID string, lines []domain.Line) error {
	codes := distinctAccountCodes(lines)
	rows, err := tx.Query(ctx, `
		SELECT code FROM accounts
		WHERE tenant_id = $1 AND code = ANY($2) AND is_active = TRUE
		FOR SHARE;
	`, tenantID, codes)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock referenced accounts", err)
	}
	locked := make([]string, 0, len(codes))
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked account code", err)
		}
		locked = append(locked, code)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "failed to lock referenced accounts", err)
	}

	if missing := missingAccountCodes(codes, locked); len(missing) > 0 {
		return fmt.Errorf("%w: account code(s) %s missing or inactive", apperrors.ErrReferentialIntegrity, strings.Join(missing, ", "))
	}
	return nil
}

// distinctAccountCodes returns the unique account codes in line order.
func distinctAccountCodes(lines []domain.Line) []string {
	seen := make(map[string]struct{}, len(lines))
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountCode]; ok {
			continue
		}
		seen[l.AccountCode] = struct{}{}
		codes = append(codes, l.AccountCode)
	}
	return codes
}

// missingAccountCodes reports which requested codes were not locked.
func missingAccountCodes(requested, locked []string) []string {
	have := make(map[string]struct{}, len(locked))
	for _, c := range locked {
		have[c] = struct{}{}
	}
	var missing []string
	for _, c := range requested {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// MarkJournalPosted transitions a DRAFT journal to POSTED. The status guard is
// part of the UPDATE so a concurrent post loses cleanly.
func (r *PgxJournalRepository) MarkJournalPosted(ctx context.Context, tenantID string, journalID string, postedBy string, postedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE journals
		SET status = $4, posted_by = $5, posted_at = $6, last_updated_at = $6, last_updated_by = $5
		WHERE tenant_id = $1 AND journal_id = $2 AND status = $3;
	`, tenantID, journalID, models.Draft, models.Posted, postedBy, postedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or no longer a draft; disambiguate for the caller.
		if _, err := r.FindJournalByID(ctx, tenantID, journalID); err != nil {
			return err
		}
		return fmt.Errorf("%w: journal %s is not a draft", apperrors.ErrStateConflict, journalID)
	}
	return nil
}

// DeleteDraftJournal removes a DRAFT journal and its lines in one transaction.
func (r *PgxJournalRepository) DeleteDraftJournal(ctx context.Context, tenantID string, journalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.JournalStatus
	err = tx.QueryRow(ctx, `
		SELECT status FROM journals
		WHERE tenant_id = $1 AND journal_id = $2
		FOR UPDATE;
	`, tenantID, journalID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock journal "+journalID, err)
	}
	if status != models.Draft {
		return fmt.Errorf("%w: journal %s is %s, expected DRAFT", apperrors.ErrStateConflict, journalID, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for journal "+journalID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journals WHERE tenant_id = $1 AND journal_id = $2;`, tenantID, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal "+journalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, tenantID string, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE tenant_id = $1 AND journal_id = $2;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, tenantID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}
	journal := mapping.ToDomainJournal(*m)
	return &journal, nil
}

// ListJournalsByTenant retrieves a page of journals ordered by transaction
// date then creation time, newest first, using token-based pagination.
func (r *PgxJournalRepository) ListJournalsByTenant(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if nextToken != nil && *nextToken != "" {
		transactionDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		args = append(args, transactionDate, createdAt)
		query += fmt.Sprintf(" AND (transaction_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journals", err)
	}
	defer rows.Close()

	var journals []domain.Journal
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, mapping.ToDomainJournal(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate journal rows", err)
	}

	var newNextToken *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[len(journals)-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newNextToken = &token
	}

	return journals, newNextToken, nil
}

// FindLinesByJournalID retrieves all lines of a single journal in position order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.Line, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, journal_id, account_code, debit, credit, description, position, created_at, created_by
		FROM journal_lines
		WHERE journal_id = $1
		ORDER BY position ASC;
	`, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal "+journalID, err)
	}
	defer rows.Close()

	return collectLines(rows)
}

// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by journal ID.
func (r *PgxJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.Line, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.Line{}, nil
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, journal_id, account_code, debit, credit, description, position, created_at, created_by
		FROM journal_lines
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, position ASC;
	`, journalIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journals", err)
	}
	defer rows.Close()

	lines, err := collectLines(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]domain.Line, len(journalIDs))
	for _, line := range lines {
		result[line.JournalID] = append(result[line.JournalID], line)
	}
	return result, nil
}

func scanJournal(row pgx.Row) (*models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.TenantID,
		&m.JournalNumber,
		&m.TransactionDate,
		&m.Description,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.PostedBy,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectLines(rows pgx.Rows) ([]domain.Line, error) {
	var lines []models.Line
	for rows.Next() {
		var m models.Line
		if err := rows.Scan(
			&m.LineID,
			&m.JournalID,
			&m.AccountCode,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.Position,
			&m.CreatedAt,
			&m.CreatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate line rows", err)
	}
	return mapping.ToDomainLineSlice(lines), nil
}
