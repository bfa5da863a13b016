package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft     JournalStatus = "DRAFT"
	Posted    JournalStatus = "POSTED"
	Cancelled JournalStatus = "CANCELLED"
)

// BalanceEpsilon is the largest tolerated difference between a journal's
// debit and credit totals. Anything above it is an unbalanced journal.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// Journal represents a single, balanced financial event composed of multiple lines.
type Journal struct {
	JournalID       string          `json:"journalID"` // Primary Key (UUID)
	TenantID        string          `json:"tenantID"`
	JournalNumber   string          `json:"journalNumber"` // PREFIX + period key + sequence, unique per tenant
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"referenceType"` // Loose link to the originating domain object, e.g. "loan"
	ReferenceID     string          `json:"referenceID"`
	Status          JournalStatus   `json:"status"`
	TotalDebit      decimal.Decimal `json:"totalDebit"`  // Computed from lines at creation, stored for reporting
	TotalCredit     decimal.Decimal `json:"totalCredit"` // Computed from lines at creation, stored for reporting
	PostedBy        *string         `json:"postedBy,omitempty"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"`
	AuditFields
	Lines []Line `json:"lines,omitempty"` // Often loaded separately
}

// Line is a single debit-or-credit amount against one account within a journal.
// Lines have no lifecycle outside their journal.
type Line struct {
	LineID      string          `json:"lineID"` // Primary Key (UUID)
	JournalID   string          `json:"journalID"`
	AccountCode string          `json:"accountCode"` // Reference into the chart of accounts
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	Position    int             `json:"position"` // Creation order within the journal, tie-break for ledgers
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}
