package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopkas/coopledger/internal/core/domain"
	"github.com/kopkas/coopledger/internal/utils/numbering"
)

func TestEventPrefix(t *testing.T) {
	testCases := []struct {
		eventType domain.LedgerEventType
		expected  string
	}{
		{domain.EventLoanDisbursed, "LN"},
		{domain.EventLoanRepaid, "RP"},
		{domain.EventSavingsDeposit, "SD"},
		{domain.EventSavingsWithdrawal, "SW"},
	}
	for _, tc := range testCases {
		prefix, err := numbering.EventPrefix(tc.eventType)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, prefix)
	}
}

func TestEventPrefix_Unknown(t *testing.T) {
	_, err := numbering.EventPrefix(domain.LedgerEventType("DIVIDEND_PAID"))
	assert.Error(t, err)
}

func TestPeriodKeys(t *testing.T) {
	date := time.Date(2025, time.March, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "20250307", numbering.DailyPeriodKey(date))
	assert.Equal(t, "202503", numbering.MonthlyPeriodKey(date))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "LN202503070001", numbering.Format("LN", "20250307", 1))
	assert.Equal(t, "JRN2025030042", numbering.Format("JRN", "202503", 42))
	// Sequences past the pad width keep all their digits.
	assert.Equal(t, "SD2025030712345", numbering.Format("SD", "20250307", 12345))
}
