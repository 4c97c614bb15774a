package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"10.1915", "10.19"},
		{"2.998", "3.00"},
		{"16.665833", "16.67"},
		{"45.18", "45.18"},
		{"0", "0.00"},
	}

	for _, tt := range tests {
		rounded := RoundAmount(decimal.RequireFromString(tt.input))
		assert.Equal(t, tt.expected, rounded.StringFixed(2), "rounding %s", tt.input)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "£45.18", FormatAmount(decimal.RequireFromString("45.18"), "gbp"))
	assert.Equal(t, "$10.00", FormatAmount(decimal.NewFromInt(10), "usd"))
	assert.Equal(t, "€0.99", FormatAmount(decimal.RequireFromString("0.99"), "eur"))

	// Unknown codes fall back to the code itself
	assert.Equal(t, "chf12.50", FormatAmount(decimal.RequireFromString("12.50"), "chf"))
}

func TestEnumValidation(t *testing.T) {
	assert.NoError(t, CountryTierCheap.Validate())
	assert.Error(t, CountryTier("luxury").Validate())

	assert.NoError(t, BillingCycleYearly.Validate())
	assert.Error(t, BillingCycle("weekly").Validate())

	assert.NoError(t, InstallationTypeFirestick.Validate())
	assert.Error(t, InstallationType("pigeon").Validate())

	assert.NoError(t, TvDuration6Months.Validate())
	assert.Error(t, TvDurationMonths(5).Validate())
}
