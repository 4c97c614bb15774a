package service

import (
	"fmt"

	"github.com/novastream/novastream/internal/domain/catalog"
	"github.com/novastream/novastream/internal/domain/quote"
	"github.com/novastream/novastream/internal/types"
	"github.com/shopspring/decimal"
)

// StreamingQuoteService builds a self-contained quote for a Streaming Hub
// subscription
type StreamingQuoteService interface {
	Compute(input quote.StreamingInput) (*quote.Quote, error)
}

type streamingQuoteService struct {
	ServiceParams
	installationService InstallationService
}

func NewStreamingQuoteService(params ServiceParams, installationService InstallationService) StreamingQuoteService {
	return &streamingQuoteService{
		ServiceParams:       params,
		installationService: installationService,
	}
}

func (s *streamingQuoteService) Compute(input quote.StreamingInput) (*quote.Quote, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	plan, err := catalog.StreamingPlanByID(input.PlanID)
	if err != nil {
		return nil, err
	}

	q := quote.New(types.QuoteSourceStreaming)

	// The VPN add-on is only chargeable when the plan does not already
	// include it
	vpnCost := decimal.Zero
	if !plan.VpnIncluded && input.VpnEnabled {
		vpnCost = catalog.VpnAddonMonthlyPrice
	}

	if input.Billing == types.BillingCycleMonthly {
		s.buildMonthlyLines(q, plan, vpnCost)
	} else {
		s.buildYearlyLines(q, plan, vpnCost)
	}

	installation, err := s.installationService.Compute(input.Installation)
	if err != nil {
		return nil, err
	}
	q.Lines = append(q.Lines, installation.LineItems...)

	q.Recalculate()

	if input.Billing == types.BillingCycleYearly {
		// No further charge occurs until renewal; the recurring figure is
		// the amortized average of the annual subscription cost, excluding
		// installation and device charges
		annualSubscription := plan.YearlyPrice.Add(vpnCost.Mul(decimal.NewFromInt(12)))
		q.RecurringMonthly = types.RoundAmount(annualSubscription.Div(decimal.NewFromInt(12)))
	}

	s.Logger.Debugw("computed streaming quote",
		"quote_id", q.ID,
		"plan_id", plan.ID,
		"billing", input.Billing,
		"due_today", q.DueToday,
		"recurring_monthly", q.RecurringMonthly,
	)

	return q, nil
}

func (s *streamingQuoteService) buildMonthlyLines(q *quote.Quote, plan *catalog.StreamingPlan, vpnCost decimal.Decimal) {
	q.RecurringLabel = "billed monthly"

	q.Lines = append(q.Lines, &quote.LineItem{
		Key:     "streaming-first-month",
		Label:   fmt.Sprintf("Streaming HUB %s – first month", plan.Label),
		Amount:  plan.MonthlyPrice,
		Section: types.LineSectionDue,
		Type:    types.LineItemTypeSubscription,
	})

	if vpnCost.IsPositive() {
		q.Lines = append(q.Lines, &quote.LineItem{
			Key:     "streaming-vpn",
			Label:   "VPN Privacy Add-on",
			Amount:  vpnCost,
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeAddon,
		})
		q.Lines = append(q.Lines, &quote.LineItem{
			Key:     "streaming-vpn-recurring",
			Label:   "VPN Privacy Add-on",
			Amount:  vpnCost,
			Section: types.LineSectionRecurring,
			Type:    types.LineItemTypeAddon,
		})
	}

	q.Lines = append(q.Lines, &quote.LineItem{
		Key:     "streaming-recurring",
		Label:   fmt.Sprintf("Streaming HUB %s – recurring", plan.Label),
		Amount:  plan.MonthlyPrice,
		Section: types.LineSectionRecurring,
		Type:    types.LineItemTypeSubscription,
	})
}

func (s *streamingQuoteService) buildYearlyLines(q *quote.Quote, plan *catalog.StreamingPlan, vpnCost decimal.Decimal) {
	q.RecurringLabel = "billed annually"

	// The yearly rate is an independently set discounted price; show the
	// absolute saving against twelve monthly payments
	twelveMonths := types.RoundAmount(plan.MonthlyPrice.Mul(decimal.NewFromInt(12)))
	savings := types.RoundAmount(twelveMonths.Sub(plan.YearlyPrice))

	q.Lines = append(q.Lines, &quote.LineItem{
		Key:            "streaming-yearly",
		Label:          fmt.Sprintf("Streaming HUB %s – yearly", plan.Label),
		Amount:         plan.YearlyPrice,
		Section:        types.LineSectionDue,
		Type:           types.LineItemTypeSubscription,
		OriginalAmount: &twelveMonths,
		Reason:         fmt.Sprintf("Save £%s", savings.StringFixed(2)),
	})

	// The VPN does not get a yearly discount of its own, it is billed at
	// the monthly rate twelve times up front
	if vpnCost.IsPositive() {
		q.Lines = append(q.Lines, &quote.LineItem{
			Key:     "streaming-vpn-yearly",
			Label:   "VPN Privacy Add-on (12 months)",
			Amount:  types.RoundAmount(vpnCost.Mul(decimal.NewFromInt(12))),
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeAddon,
		})
	}
}
