package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a row in the accounts table.
type Account struct {
	AccountID   string      `json:"accountID"`
	TenantID    string      `json:"tenantID"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Category    string      `json:"category"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// AccountMapping represents a row in the ledger_settings table binding an
// account role to a concrete account code for one tenant.
type AccountMapping struct {
	TenantID    string `json:"tenantID"`
	Role        string `json:"role"`
	AccountCode string `json:"accountCode"`
	AuditFields
}
