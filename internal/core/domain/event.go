package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEventType identifies a domain event that results in a ledger posting.
type LedgerEventType string

const (
	EventLoanDisbursed     LedgerEventType = "LOAN_DISBURSED"
	EventLoanRepaid        LedgerEventType = "LOAN_REPAID"
	EventSavingsDeposit    LedgerEventType = "SAVINGS_DEPOSIT"
	EventSavingsWithdrawal LedgerEventType = "SAVINGS_WITHDRAWAL"
)

// ValidLedgerEventType reports whether t names a supported event type.
func ValidLedgerEventType(t LedgerEventType) bool {
	switch t {
	case EventLoanDisbursed, EventLoanRepaid, EventSavingsDeposit, EventSavingsWithdrawal:
		return true
	}
	return false
}

// LedgerEvent is a domain event emitted by a loan or savings collaborator,
// carrying the amounts the event's posting template needs.
type LedgerEvent struct {
	Type            LedgerEventType `json:"type"`
	TenantID        string          `json:"tenantID"`
	ReferenceID     string          `json:"referenceID"` // Originating entity (loan, savings txn)
	TransactionDate time.Time       `json:"transactionDate"`
	ProcessedBy     string          `json:"processedBy"` // Actor ID for audit attribution
	Description     string          `json:"description"`

	// Amounts; which of these are read depends on the event type.
	Principal decimal.Decimal `json:"principal"` // Loan disbursement / repayment principal portion
	Interest  decimal.Decimal `json:"interest"`  // Repayment interest portion, may be zero
	Amount    decimal.Decimal `json:"amount"`    // Savings deposit / withdrawal amount
}

// ReferenceType returns the reference_type recorded on journals produced for
// this event.
func (e LedgerEvent) ReferenceType() string {
	switch e.Type {
	case EventLoanDisbursed:
		return "loan"
	case EventLoanRepaid:
		return "repayment"
	case EventSavingsDeposit, EventSavingsWithdrawal:
		return "savings_transaction"
	}
	return ""
}
