package dto

import (
	"time"

	"github.com/kopkas/coopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEventRequest is the inbound shape of a domain event from a loan or
// savings collaborator.
type LedgerEventRequest struct {
	Type            domain.LedgerEventType `json:"type" binding:"required"`
	ReferenceID     string                 `json:"referenceID" binding:"required"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
	Description     string                 `json:"description"`
	Principal       decimal.Decimal        `json:"principal"`
	Interest        decimal.Decimal        `json:"interest"`
	Amount          decimal.Decimal        `json:"amount"`
}

// ToDomainEvent converts the request into a domain event for the given tenant
// and acting user.
func (r LedgerEventRequest) ToDomainEvent(tenantID, processedBy string) domain.LedgerEvent {
	return domain.LedgerEvent{
		Type:            r.Type,
		TenantID:        tenantID,
		ReferenceID:     r.ReferenceID,
		TransactionDate: r.TransactionDate,
		ProcessedBy:     processedBy,
		Description:     r.Description,
		Principal:       r.Principal,
		Interest:        r.Interest,
		Amount:          r.Amount,
	}
}
