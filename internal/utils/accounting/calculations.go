package accounting

import (
	"fmt"

	"github.com/kopkas/coopledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the normal-balance convention to a line's amounts.
// This is the single place the sign rule lives; every report and balance
// computation goes through it so they can never disagree.
//
// ASSET/EXPENSE:            balance moves by debit - credit
// LIABILITY/EQUITY/INCOME:  balance moves by credit - debit
func SignedAmount(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Income:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// SumLines returns the total debit and total credit across lines.
func SumLines(lines []domain.Line) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// ValidateLine checks a single journal line: amounts must be non-negative and
// exactly one of debit/credit must be non-zero.
func ValidateLine(line domain.Line) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("line amounts must be non-negative for account %s", line.AccountCode)
	}
	debitSet := line.Debit.IsPositive()
	creditSet := line.Credit.IsPositive()
	if debitSet == creditSet {
		return fmt.Errorf("line for account %s must have exactly one of debit or credit set", line.AccountCode)
	}
	return nil
}

// ValidateBalance checks that the debit and credit totals of a journal agree
// within the currency epsilon.
func ValidateBalance(lines []domain.Line) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal must have at least two lines")
	}
	totalDebit, totalCredit := SumLines(lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(domain.BalanceEpsilon) {
		return fmt.Errorf("unbalanced journal: debit total is %s, credit total is %s",
			totalDebit.String(), totalCredit.String())
	}
	return nil
}
