package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novastream/novastream/internal/types"
)

func sampleQuote() *Quote {
	q := New(types.QuoteSourceTv)
	q.Lines = append(q.Lines,
		&LineItem{
			Key:     "tv-first-month",
			Amount:  decimal.RequireFromString("11.99"),
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeSubscription,
		},
		&LineItem{
			Key:     "installation-remote",
			Amount:  decimal.RequireFromString("30.00"),
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeInstallation,
		},
		&LineItem{
			Key:     "tv-recurring",
			Amount:  decimal.RequireFromString("11.99"),
			Section: types.LineSectionRecurring,
			Type:    types.LineItemTypeSubscription,
		},
	)
	return q
}

func TestRecalculateSumsSections(t *testing.T) {
	q := sampleQuote()
	q.Recalculate()

	assert.Equal(t, "41.99", q.DueToday.StringFixed(2))
	assert.Equal(t, "11.99", q.RecurringMonthly.StringFixed(2))
}

func TestRecalculateIncludesAdjustments(t *testing.T) {
	q := sampleQuote()
	q.Adjustments = append(q.Adjustments, &Adjustment{
		Key:     "coupon-save10",
		Amount:  decimal.RequireFromString("-1.20"),
		Section: types.LineSectionDue,
	})
	q.Recalculate()

	assert.Equal(t, "40.79", q.DueToday.StringFixed(2))
	assert.Equal(t, "11.99", q.RecurringMonthly.StringFixed(2))
}

func TestCloneIsDeep(t *testing.T) {
	q := sampleQuote()
	q.Lines[0].EnsureOriginalAmount()
	q.Recalculate()

	clone := q.Clone()
	clone.Lines[0].Amount = decimal.Zero
	*clone.Lines[0].OriginalAmount = decimal.Zero
	clone.Lines[0].Reason = "mutated"

	assert.Equal(t, "11.99", q.Lines[0].Amount.StringFixed(2))
	require.NotNil(t, q.Lines[0].OriginalAmount)
	assert.Equal(t, "11.99", q.Lines[0].OriginalAmount.StringFixed(2))
	assert.Empty(t, q.Lines[0].Reason)
}

func TestEnsureOriginalAmountIsIdempotent(t *testing.T) {
	line := &LineItem{Amount: decimal.RequireFromString("30.00")}

	line.EnsureOriginalAmount()
	require.NotNil(t, line.OriginalAmount)
	assert.Equal(t, "30.00", line.OriginalAmount.StringFixed(2))

	// A later discount must not overwrite the recorded pre-discount price
	line.Amount = decimal.RequireFromString("15.00")
	line.EnsureOriginalAmount()
	assert.Equal(t, "30.00", line.OriginalAmount.StringFixed(2))
}

func TestAppendReason(t *testing.T) {
	line := &LineItem{}

	line.AppendReason("15% off (12mo commitment)")
	assert.Equal(t, "15% off (12mo commitment)", line.Reason)

	line.AppendReason("Christmas -20%")
	assert.Equal(t, "15% off (12mo commitment), Christmas -20%", line.Reason)
}

func TestNewQuoteHasPrefixedID(t *testing.T) {
	q := New(types.QuoteSourceStreaming)
	assert.Contains(t, q.ID, "quote_")
	assert.Equal(t, types.QuoteSourceStreaming, q.Source)
	assert.Empty(t, q.Lines)
}
