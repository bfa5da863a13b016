package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account's activity in a trial balance report.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"` // Signed per the account's normal balance
}

// TrialBalanceReport lists every account with activity up to the report date.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// GeneralLedgerRow is one journal line against an account, annotated with the
// cumulative balance after that line.
type GeneralLedgerRow struct {
	JournalID       string          `json:"journalID"`
	JournalNumber   string          `json:"journalNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport is the chronological activity of one account.
type GeneralLedgerReport struct {
	AccountCode    string             `json:"accountCode"`
	AccountName    string             `json:"accountName"`
	AccountType    AccountType        `json:"accountType"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Rows           []GeneralLedgerRow `json:"rows"`
	ClosingBalance decimal.Decimal    `json:"closingBalance"`
}

// AccountActivity is the raw per-account debit/credit aggregation the
// reporting repository returns; services apply the sign rule on top of it.
type AccountActivity struct {
	AccountCode string
	AccountName string
	AccountType AccountType
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
}

// IncomeStatementReport summarises revenue and expenses over a period.
type IncomeStatementReport struct {
	StartDate     time.Time       `json:"startDate"`
	EndDate       time.Time       `json:"endDate"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport groups asset, liability and equity balances as of a date.
type BalanceSheetReport struct {
	AsOf                 time.Time       `json:"asOf"`
	Assets               []AccountAmount `json:"assets"`
	Liabilities          []AccountAmount `json:"liabilities"`
	Equity               []AccountAmount `json:"equity"`
	TotalAssets          decimal.Decimal `json:"totalAssets"`
	TotalLiabilities     decimal.Decimal `json:"totalLiabilities"`
	TotalEquity          decimal.Decimal `json:"totalEquity"`
	LiabilitiesAndEquity decimal.Decimal `json:"liabilitiesAndEquity"`
}
