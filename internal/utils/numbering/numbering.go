package numbering

import (
	"fmt"
	"time"

	"github.com/kopkas/coopledger/internal/core/domain"
)

// Prefixes identifying the originating transaction kind of a journal.
const (
	PrefixLoanDisbursement   = "LN"
	PrefixLoanRepayment      = "RP"
	PrefixSavingsDeposit     = "SD"
	PrefixSavingsWithdrawal  = "SW"
	PrefixGeneral            = "JRN"
	sequenceWidth            = 4
	dailyPeriodKeyLayout     = "20060102"
	monthlyPeriodKeyLayout   = "200601"
)

// EventPrefix returns the journal-number prefix for a ledger event type.
func EventPrefix(t domain.LedgerEventType) (string, error) {
	switch t {
	case domain.EventLoanDisbursed:
		return PrefixLoanDisbursement, nil
	case domain.EventLoanRepaid:
		return PrefixLoanRepayment, nil
	case domain.EventSavingsDeposit:
		return PrefixSavingsDeposit, nil
	case domain.EventSavingsWithdrawal:
		return PrefixSavingsWithdrawal, nil
	default:
		return "", fmt.Errorf("no journal number prefix for event type %q", t)
	}
}

// DailyPeriodKey derives the day-granularity period key used by event journals.
func DailyPeriodKey(date time.Time) string {
	return date.Format(dailyPeriodKeyLayout)
}

// MonthlyPeriodKey derives the month-granularity period key used by the
// free-standing journal API.
func MonthlyPeriodKey(date time.Time) string {
	return date.Format(monthlyPeriodKeyLayout)
}

// Format assembles a journal number from its parts: PREFIX + PERIOD_KEY +
// zero-padded sequence.
func Format(prefix, periodKey string, sequence int64) string {
	return fmt.Sprintf("%s%s%0*d", prefix, periodKey, sequenceWidth, sequence)
}
