package dto

import (
	"github.com/kopkas/coopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse is the API shape of a trial balance report.
type TrialBalanceResponse struct {
	AsOf        string                   `json:"asOf"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}

// ToTrialBalanceResponse converts the domain report to its API shape.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	return TrialBalanceResponse{
		AsOf:        r.AsOf.Format("2006-01-02"),
		Rows:        r.Rows,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
	}
}
