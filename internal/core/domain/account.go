package domain

import "regexp"

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// accountCodeRegexp matches valid ledger account codes: 4 to 6 digits.
var accountCodeRegexp = regexp.MustCompile(`^\d{4,6}$`)

// ValidAccountCode reports whether code has the required 4-6 digit format.
func ValidAccountCode(code string) bool {
	return accountCodeRegexp.MatchString(code)
}

// ValidAccountType reports whether t is one of the five accounting types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account represents an entry in a tenant's chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary Key (UUID)
	TenantID    string      `json:"tenantID"`  // Owning cooperative
	Code        string      `json:"code"`      // 4-6 digit code, unique per tenant
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, etc.
	Category    string      `json:"category"`    // Free-form grouping, e.g. "current_asset"
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// AccountRole names the function an account plays in event posting templates.
type AccountRole string

const (
	RoleCash           AccountRole = "cash"
	RoleLoanReceivable AccountRole = "loan_receivable"
	RoleInterestIncome AccountRole = "interest_income"
	RoleMemberSavings  AccountRole = "member_savings"
)

// AccountMapping binds an AccountRole to a concrete account code for one tenant.
type AccountMapping struct {
	TenantID    string      `json:"tenantID"`
	Role        AccountRole `json:"role"`
	AccountCode string      `json:"accountCode"`
	AuditFields
}
