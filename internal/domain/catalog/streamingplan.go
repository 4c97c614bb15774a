package catalog

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/novastream/novastream/internal/errors"
)

// StreamingPlan is a Streaming Hub subscription plan. YearlyPrice is an
// independently set discounted annual rate, it must stay below 12× the
// monthly rate by data entry.
type StreamingPlan struct {
	ID           string          `json:"id"`
	Label        string          `json:"label"`
	MonthlyPrice decimal.Decimal `json:"monthly_price"`
	YearlyPrice  decimal.Decimal `json:"yearly_price"`
	VpnIncluded  bool            `json:"vpn_included"`
}

// VpnAddonMonthlyPrice is charged on top of plans that do not already
// include the VPN, at a flat monthly rate even under annual billing
var VpnAddonMonthlyPrice = decimal.RequireFromString("2.99")

// StreamingPlans is the canonical streaming plan table
var StreamingPlans = []*StreamingPlan{
	{
		ID:           "cinema-lite",
		Label:        "Lite",
		MonthlyPrice: decimal.RequireFromString("14.99"),
		YearlyPrice:  decimal.RequireFromString("149.99"),
		VpnIncluded:  false,
	},
	{
		ID:           "cinema-pro",
		Label:        "Pro",
		MonthlyPrice: decimal.RequireFromString("19.99"),
		YearlyPrice:  decimal.RequireFromString("199.99"),
		VpnIncluded:  true,
	},
}

// StreamingPlanByID looks up a streaming plan, failing hard on unknown ids
func StreamingPlanByID(id string) (*StreamingPlan, error) {
	plan, found := lo.Find(StreamingPlans, func(p *StreamingPlan) bool {
		return p.ID == id
	})
	if !found {
		return nil, ierr.NewError("streaming plan not found").
			WithHintf("Unknown streaming plan: %s", id).
			WithReportableDetails(map[string]any{"plan_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return plan, nil
}
