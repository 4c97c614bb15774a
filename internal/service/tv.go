package service

import (
	"fmt"

	"github.com/novastream/novastream/internal/domain/catalog"
	"github.com/novastream/novastream/internal/domain/quote"
	"github.com/novastream/novastream/internal/types"
	"github.com/shopspring/decimal"
)

// TvQuoteService builds a self-contained quote for a TV subscription
type TvQuoteService interface {
	Compute(input quote.TvInput) (*quote.Quote, error)
}

type tvQuoteService struct {
	ServiceParams
	installationService InstallationService
}

func NewTvQuoteService(params ServiceParams, installationService InstallationService) TvQuoteService {
	return &tvQuoteService{
		ServiceParams:       params,
		installationService: installationService,
	}
}

func (s *tvQuoteService) Compute(input quote.TvInput) (*quote.Quote, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	plan, err := catalog.TvPlanByID(input.PlanID)
	if err != nil {
		return nil, err
	}

	q := quote.New(types.QuoteSourceTv)

	// Base monthly from tier and service level, then the commitment
	// discount, rounded to pence
	baseMonthly := plan.MonthlyPrice(input.CountryTier, input.Pro)
	discount := catalog.DurationDiscount(input.DurationMonths)
	effectiveMonthly := types.RoundAmount(baseMonthly.Mul(decimal.NewFromInt(1).Sub(discount)))

	// One-time app/license fee, always at full price
	q.Lines = append(q.Lines, &quote.LineItem{
		Key:     "tv-app-fee",
		Label:   "App License Fee",
		Amount:  plan.AppFee,
		Section: types.LineSectionDue,
		Type:    types.LineItemTypeFee,
	})

	serviceLevel := "Lite"
	if input.Pro {
		serviceLevel = "Pro"
	}
	planLabel := fmt.Sprintf("TV Global %s", serviceLevel)

	firstMonth := &quote.LineItem{
		Key:     "tv-first-month",
		Label:   fmt.Sprintf("%s – first month", planLabel),
		Amount:  effectiveMonthly,
		Section: types.LineSectionDue,
		Type:    types.LineItemTypeSubscription,
	}
	if discount.IsPositive() {
		firstMonth.OriginalAmount = &baseMonthly
		firstMonth.Reason = fmt.Sprintf("%s%% off (%dmo commitment)",
			discount.Mul(decimal.NewFromInt(100)).String(), input.DurationMonths)
	}
	q.Lines = append(q.Lines, firstMonth)

	// Months 2+ recur at the same effective rate
	if input.DurationMonths > types.TvDuration1Month {
		q.RecurringLabel = fmt.Sprintf("for next %d months", input.DurationMonths-1)
		q.Lines = append(q.Lines, &quote.LineItem{
			Key:     "tv-recurring",
			Label:   fmt.Sprintf("%s – recurring", planLabel),
			Amount:  effectiveMonthly,
			Section: types.LineSectionRecurring,
			Type:    types.LineItemTypeSubscription,
		})
	}

	installation, err := s.installationService.Compute(input.Installation)
	if err != nil {
		return nil, err
	}
	q.Lines = append(q.Lines, installation.LineItems...)

	q.Recalculate()

	s.Logger.Debugw("computed tv quote",
		"quote_id", q.ID,
		"plan_id", plan.ID,
		"due_today", q.DueToday,
		"recurring_monthly", q.RecurringMonthly,
	)

	return q, nil
}
