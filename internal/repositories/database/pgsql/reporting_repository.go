package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kopkas/coopledger/internal/apperrors"
	"github.com/kopkas/coopledger/internal/core/domain"
	portsrepo "github.com/kopkas/coopledger/internal/core/ports/repositories"
)

// PgxReportingRepository runs the read-only aggregations behind the financial
// reports. Every query filters on POSTED journals.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetTrialBalanceData returns per-account debit/credit totals for posted lines
// dated on or before asOf.
func (r *PgxReportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0)  AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		JOIN accounts a ON a.tenant_id = j.tenant_id AND a.code = l.account_code
		WHERE j.tenant_id = $1
		  AND j.status = 'POSTED'
		  AND j.transaction_date <= $2
		GROUP BY a.code, a.name, a.account_type
		ORDER BY a.code ASC;
	`, tenantID, asOf)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance data", err)
	}
	defer rows.Close()

	return collectActivity(rows)
}

// GetActivityByType returns per-account debit/credit totals for accounts of
// the given types within [from, to]. A zero `from` means from the beginning
// of the ledger.
func (r *PgxReportingRepository) GetActivityByType(ctx context.Context, tenantID string, types []domain.AccountType, from, to time.Time) ([]domain.AccountActivity, error) {
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}

	query := `
		SELECT a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0)  AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		JOIN accounts a ON a.tenant_id = j.tenant_id AND a.code = l.account_code
		WHERE j.tenant_id = $1
		  AND j.status = 'POSTED'
		  AND a.account_type = ANY($2)
		  AND j.transaction_date <= $3`
	args := []interface{}{tenantID, typeNames, to}

	if !from.IsZero() {
		args = append(args, from)
		query += ` AND j.transaction_date >= $4`
	}
	query += `
		GROUP BY a.code, a.name, a.account_type
		ORDER BY a.code ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account activity", err)
	}
	defer rows.Close()

	return collectActivity(rows)
}

// GetGeneralLedgerRows returns the posted lines of one account within
// [from, to] in chronological order. RunningBalance is left zero here; the
// service layer accumulates it on top of the opening balance.
func (r *PgxReportingRepository) GetGeneralLedgerRows(ctx context.Context, tenantID string, accountCode string, from, to time.Time) ([]domain.GeneralLedgerRow, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT j.journal_id, j.journal_number, j.transaction_date, l.description, l.debit, l.credit
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE j.tenant_id = $1
		  AND j.status = 'POSTED'
		  AND l.account_code = $2
		  AND j.transaction_date >= $3
		  AND j.transaction_date <= $4
		ORDER BY j.transaction_date ASC, j.created_at ASC, l.position ASC;
	`, tenantID, accountCode, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query general ledger rows", err)
	}
	defer rows.Close()

	var result []domain.GeneralLedgerRow
	for rows.Next() {
		var row domain.GeneralLedgerRow
		if err := rows.Scan(
			&row.JournalID,
			&row.JournalNumber,
			&row.TransactionDate,
			&row.Description,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan general ledger row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate general ledger rows", err)
	}
	return result, nil
}

// GetAccountTotalsBefore returns an account's posted debit/credit totals
// strictly before the given date.
func (r *PgxReportingRepository) GetAccountTotalsBefore(ctx context.Context, tenantID string, accountCode string, before time.Time) (domain.AccountActivity, error) {
	activity := domain.AccountActivity{AccountCode: accountCode}
	err := r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journals j ON j.journal_id = l.journal_id
		WHERE j.tenant_id = $1
		  AND j.status = 'POSTED'
		  AND l.account_code = $2
		  AND j.transaction_date < $3;
	`, tenantID, accountCode, before).Scan(&activity.TotalDebit, &activity.TotalCredit)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.AccountActivity{}, apperrors.NewAppError(500, "failed to query account totals for "+accountCode, err)
	}
	return activity, nil
}

func collectActivity(rows pgx.Rows) ([]domain.AccountActivity, error) {
	var result []domain.AccountActivity
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(&a.AccountCode, &a.AccountName, &a.AccountType, &a.TotalDebit, &a.TotalCredit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account activity rows", err)
	}
	return result, nil
}
