package catalog

import (
	"github.com/novastream/novastream/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/novastream/novastream/internal/errors"
)

// TvPlanType distinguishes single-country plans from multi-country bundles
type TvPlanType string

const (
	TvPlanTypeSingle TvPlanType = "single"
	TvPlanTypeBundle TvPlanType = "bundle"
)

// TvPlan is a TV subscription plan. All four monthly price points
// (country tier × service level) are stored explicitly rather than derived;
// exactly one of them applies to any given (tier, pro) pair.
type TvPlan struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type TvPlanType `json:"type"`

	CheapMonthlyLite decimal.Decimal `json:"cheap_monthly_lite"`
	CheapMonthlyPro  decimal.Decimal `json:"cheap_monthly_pro"`
	RichMonthlyLite  decimal.Decimal `json:"rich_monthly_lite"`
	RichMonthlyPro   decimal.Decimal `json:"rich_monthly_pro"`

	// AppFee is a one-time app/license charge, never discounted
	AppFee decimal.Decimal `json:"app_fee"`

	DevicesIncluded int `json:"devices_included"`

	// MaxCountries is zero when IncludesAllCountries is set
	MaxCountries         int  `json:"max_countries,omitempty"`
	IncludesAllCountries bool `json:"includes_all_countries,omitempty"`
}

// MonthlyPrice selects the price point for a country tier and service level
func (p *TvPlan) MonthlyPrice(tier types.CountryTier, pro bool) decimal.Decimal {
	if tier == types.CountryTierCheap {
		if pro {
			return p.CheapMonthlyPro
		}
		return p.CheapMonthlyLite
	}
	if pro {
		return p.RichMonthlyPro
	}
	return p.RichMonthlyLite
}

// TvPlans is the canonical TV plan table
var TvPlans = []*TvPlan{
	{
		ID:               "tv-single",
		Name:             "Single Country",
		Type:             TvPlanTypeSingle,
		CheapMonthlyLite: decimal.RequireFromString("11.99"),
		CheapMonthlyPro:  decimal.RequireFromString("14.99"),
		RichMonthlyLite:  decimal.RequireFromString("14.99"),
		RichMonthlyPro:   decimal.RequireFromString("17.99"),
		AppFee:           decimal.RequireFromString("4.99"),
		DevicesIncluded:  1,
		MaxCountries:     1,
	},
	{
		ID:               "tv-eu-pack",
		Name:             "EU & Friends Pack",
		Type:             TvPlanTypeBundle,
		CheapMonthlyLite: decimal.RequireFromString("19.99"),
		CheapMonthlyPro:  decimal.RequireFromString("24.99"),
		RichMonthlyLite:  decimal.RequireFromString("24.99"),
		RichMonthlyPro:   decimal.RequireFromString("29.99"),
		AppFee:           decimal.RequireFromString("4.99"),
		DevicesIncluded:  2,
		MaxCountries:     5,
	},
	{
		ID:                   "tv-world",
		Name:                 "World Unlimited",
		Type:                 TvPlanTypeBundle,
		CheapMonthlyLite:     decimal.RequireFromString("29.99"),
		CheapMonthlyPro:      decimal.RequireFromString("34.99"),
		RichMonthlyLite:      decimal.RequireFromString("29.99"),
		RichMonthlyPro:       decimal.RequireFromString("34.99"),
		AppFee:               decimal.RequireFromString("4.99"),
		DevicesIncluded:      2,
		IncludesAllCountries: true,
	},
}

// TvPlanByID looks up a TV plan. Unknown ids fail hard: proceeding would
// silently mis-price an order.
func TvPlanByID(id string) (*TvPlan, error) {
	plan, found := lo.Find(TvPlans, func(p *TvPlan) bool {
		return p.ID == id
	})
	if !found {
		return nil, ierr.NewError("tv plan not found").
			WithHintf("Unknown TV plan: %s", id).
			WithReportableDetails(map[string]any{"plan_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return plan, nil
}
