package service

import (
	"strings"

	"github.com/novastream/novastream/internal/domain/quote"
	"github.com/novastream/novastream/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// OrderMetadata is the analytics record derived from a finished quote.
// Pure derivation, no external calls.
type OrderMetadata struct {
	PlanID             string                   `json:"plan_id"`
	BillingCycle       types.OrderBillingCycle  `json:"billing_cycle"`
	CountryTier        *types.CountryTier       `json:"country_tier,omitempty"`
	HasBundle          bool                     `json:"has_bundle"`
	HasFirestick       bool                     `json:"has_firestick"`
	InstallType        types.InstallationType   `json:"install_type"`
	TotalDueToday      decimal.Decimal          `json:"total_due_today"`
	RecurringMonthly   decimal.Decimal          `json:"recurring_monthly"`
	AcquisitionChannel types.AcquisitionChannel `json:"acquisition_channel"`
	PromoApplied       string                   `json:"promo_applied,omitempty"`
}

// BuildOrderMetadata classifies a finished order for analytics
func (s *orderService) BuildOrderMetadata(tvInput *quote.TvInput, streamingInput *quote.StreamingInput, q *quote.Quote, channel types.AcquisitionChannel) *OrderMetadata {
	if channel == "" {
		channel = types.AcquisitionChannelWizard
	}

	planIDs := make([]string, 0, 2)
	if tvInput != nil {
		planIDs = append(planIDs, tvInput.PlanID)
	}
	if streamingInput != nil {
		planIDs = append(planIDs, streamingInput.PlanID)
	}

	var installation *quote.InstallationSelection
	if tvInput != nil {
		installation = &tvInput.Installation
	} else if streamingInput != nil {
		installation = &streamingInput.Installation
	}

	installType := types.InstallationTypeRemote
	if installation != nil {
		installType = installation.Type
	}

	billingCycle := types.OrderBillingCycleMonthly
	if streamingInput != nil && streamingInput.Billing == types.BillingCycleYearly {
		billingCycle = types.OrderBillingCycleYearly
	} else if tvInput != nil && tvInput.DurationMonths > types.TvDuration1Month {
		billingCycle = types.OrderBillingCycleMultiMonth
	}

	var countryTier *types.CountryTier
	if tvInput != nil {
		tier := tvInput.CountryTier
		countryTier = &tier
	}

	// Promo detection scans line reasons for the configured marker
	promoApplied := ""
	marker := s.Config.Pricing.SeasonalPromo.Marker
	if marker != "" {
		_, found := lo.Find(q.Lines, func(l *quote.LineItem) bool {
			return strings.Contains(l.Reason, marker)
		})
		if found {
			promoApplied = s.Config.Pricing.SeasonalPromo.Tag
		}
	}

	return &OrderMetadata{
		PlanID:             strings.Join(planIDs, "+"),
		BillingCycle:       billingCycle,
		CountryTier:        countryTier,
		HasBundle:          tvInput != nil && streamingInput != nil,
		HasFirestick:       installType == types.InstallationTypeFirestick,
		InstallType:        installType,
		TotalDueToday:      q.DueToday,
		RecurringMonthly:   q.RecurringMonthly,
		AcquisitionChannel: channel,
		PromoApplied:       promoApplied,
	}
}
