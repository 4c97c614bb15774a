package catalog

import (
	"github.com/novastream/novastream/internal/types"
	"github.com/shopspring/decimal"
)

// TvDurationDiscounts maps a commitment length to the fraction taken off
// the monthly rate. The schedule is monotonically non-decreasing in
// duration.
var TvDurationDiscounts = map[types.TvDurationMonths]decimal.Decimal{
	types.TvDuration1Month:   decimal.Zero,
	types.TvDuration3Months:  decimal.RequireFromString("0.05"),
	types.TvDuration6Months:  decimal.RequireFromString("0.10"),
	types.TvDuration12Months: decimal.RequireFromString("0.15"),
}

// DurationDiscount returns the discount fraction for a duration, zero for
// durations outside the schedule
func DurationDiscount(d types.TvDurationMonths) decimal.Decimal {
	if discount, ok := TvDurationDiscounts[d]; ok {
		return discount
	}
	return decimal.Zero
}
