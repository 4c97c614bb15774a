package service

import (
	"fmt"
	"strings"

	"github.com/novastream/novastream/internal/domain/quote"
	"github.com/novastream/novastream/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/novastream/novastream/internal/errors"
)

// OrderService combines product quotes into a single order-level quote and
// applies the order discount pipeline
type OrderService interface {
	// Merge combines zero or more product quotes. A single quote is passed
	// through the discount pipeline without merging.
	Merge(quotes []*quote.Quote, opts quote.MergeOptions) *quote.Quote

	// DefaultMergeOptions derives the merge options for an order from the
	// commercial policy config and the injected clock
	DefaultMergeOptions(hasTv bool, hasStreaming bool) quote.MergeOptions

	// ComputeOrder prices a whole order: optional TV input, optional
	// streaming input, optional coupon
	ComputeOrder(tvInput *quote.TvInput, streamingInput *quote.StreamingInput, couponCode string, channel types.AcquisitionChannel) (*quote.Quote, *OrderMetadata, error)

	// BuildOrderMetadata derives the analytics record for a finished quote
	BuildOrderMetadata(tvInput *quote.TvInput, streamingInput *quote.StreamingInput, q *quote.Quote, channel types.AcquisitionChannel) *OrderMetadata
}

type orderService struct {
	ServiceParams
	tvService        TvQuoteService
	streamingService StreamingQuoteService
}

func NewOrderService(params ServiceParams, tvService TvQuoteService, streamingService StreamingQuoteService) OrderService {
	return &orderService{
		ServiceParams:    params,
		tvService:        tvService,
		streamingService: streamingService,
	}
}

func (s *orderService) Merge(quotes []*quote.Quote, opts quote.MergeOptions) *quote.Quote {
	if len(quotes) == 0 {
		empty := quote.New("")
		empty.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER)
		return empty
	}

	if len(quotes) == 1 {
		// Single product, still runs the discount pipeline
		return s.applyDiscounts(quotes[0].Clone(), opts)
	}

	merged := &quote.Quote{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		Lines:          []*quote.LineItem{},
		Adjustments:    []*quote.Adjustment{},
		RecurringLabel: buildRecurringLabel(quotes),
	}
	// Order is preserved: first quote's lines, then the second's
	for _, q := range quotes {
		merged.Lines = append(merged.Lines, lo.Map(q.Lines, func(l *quote.LineItem, _ int) *quote.LineItem {
			return l.Clone()
		})...)
		merged.Adjustments = append(merged.Adjustments, lo.Map(q.Adjustments, func(a *quote.Adjustment, _ int) *quote.Adjustment {
			return a.Clone()
		})...)
	}

	return s.applyDiscounts(merged, opts)
}

func (s *orderService) DefaultMergeOptions(hasTv bool, hasStreaming bool) quote.MergeOptions {
	pricing := s.Config.Pricing
	opts := quote.MergeOptions{
		WaiveInstallForBundle:     hasTv && hasStreaming,
		OrderThresholdFreeInstall: pricing.OrderThresholdFreeInstall,
	}

	// Promo liveness is evaluated at call time against the injected clock
	if pricing.SeasonalPromo.ActiveAt(s.Clock()()) {
		opts.SeasonalPromoActive = true
		opts.SeasonalPromoPercentFirstMonth = pricing.SeasonalPromo.PercentOff
		opts.SeasonalPromoLabel = pricing.SeasonalPromo.Label
	}

	return opts
}

func (s *orderService) ComputeOrder(tvInput *quote.TvInput, streamingInput *quote.StreamingInput, couponCode string, channel types.AcquisitionChannel) (*quote.Quote, *OrderMetadata, error) {
	if tvInput == nil && streamingInput == nil {
		return nil, nil, ierr.NewError("empty order").
			WithHint("An order must contain a TV or streaming subscription").
			Mark(ierr.ErrValidation)
	}

	quotes := make([]*quote.Quote, 0, 2)
	if tvInput != nil {
		q, err := s.tvService.Compute(*tvInput)
		if err != nil {
			return nil, nil, err
		}
		quotes = append(quotes, q)
	}
	if streamingInput != nil {
		q, err := s.streamingService.Compute(*streamingInput)
		if err != nil {
			return nil, nil, err
		}
		quotes = append(quotes, q)
	}

	opts := s.DefaultMergeOptions(tvInput != nil, streamingInput != nil)
	opts.CouponCode = couponCode

	merged := s.Merge(quotes, opts)
	metadata := s.BuildOrderMetadata(tvInput, streamingInput, merged, channel)

	s.Logger.Infow("computed order quote",
		"order_id", merged.ID,
		"plan_id", metadata.PlanID,
		"due_today", merged.DueToday,
		"recurring_monthly", merged.RecurringMonthly,
		"bundle", metadata.HasBundle,
	)

	return merged, metadata, nil
}

// buildRecurringLabel combines the recurring labels of the source quotes.
// Mixing a monthly with an annual label yields "mixed billing".
func buildRecurringLabel(quotes []*quote.Quote) string {
	labels := lo.FilterMap(quotes, func(q *quote.Quote, _ int) (string, bool) {
		return q.RecurringLabel, q.RecurringLabel != ""
	})

	if len(labels) == 0 {
		return ""
	}
	if len(labels) == 1 {
		return labels[0]
	}

	hasMonthly := lo.SomeBy(labels, func(l string) bool {
		return strings.Contains(l, "monthly")
	})
	hasYearly := lo.SomeBy(labels, func(l string) bool {
		return strings.Contains(l, "annually")
	})
	if hasMonthly && hasYearly {
		return "mixed billing"
	}

	return labels[0]
}

// discount pipeline

const (
	stageBundleInstall  = "bundle-install"
	stageOrderThreshold = "order-threshold"
	stageSeasonalPromo  = "seasonal-promo"
	stageCoupon         = "coupon"
)

// discountStage is one named step of the pipeline. Stages run in list
// order and each declares which earlier stages suppress it, so precedence
// is explicit rather than a side effect of mutation order.
type discountStage struct {
	name       string
	excludedBy []string
	applies    func(p *discountPipeline) bool
	apply      func(p *discountPipeline)
}

type discountPipeline struct {
	quote   *quote.Quote
	opts    quote.MergeOptions
	applied map[string]bool

	bundleRemoteOff  decimal.Decimal
	bundleCalloutOff decimal.Decimal
	couponPercentOff decimal.Decimal
}

// applyDiscounts mutates the given quote through the stage list and
// recomputes both totals from scratch at the end
func (s *orderService) applyDiscounts(q *quote.Quote, opts quote.MergeOptions) *quote.Quote {
	pricing := s.Config.Pricing
	p := &discountPipeline{
		quote:            q,
		opts:             opts,
		applied:          map[string]bool{},
		bundleRemoteOff:  decimal.NewFromFloat(pricing.BundleRemoteInstallOff),
		bundleCalloutOff: decimal.NewFromFloat(pricing.BundleCalloutInstallOff),
		couponPercentOff: decimal.NewFromFloat(pricing.CouponPercentOff),
	}

	for _, stage := range discountStages {
		if lo.SomeBy(stage.excludedBy, func(name string) bool { return p.applied[name] }) {
			continue
		}
		if !stage.applies(p) {
			continue
		}
		stage.apply(p)
		p.applied[stage.name] = true
	}

	q.Recalculate()
	return q
}

// discountStages is the fixed order discount precedence list
var discountStages = []discountStage{
	{
		name:    stageBundleInstall,
		applies: func(p *discountPipeline) bool { return p.opts.WaiveInstallForBundle },
		apply:   (*discountPipeline).applyBundleDiscount,
	},
	{
		name:       stageOrderThreshold,
		excludedBy: []string{stageBundleInstall},
		applies: func(p *discountPipeline) bool {
			if p.opts.OrderThresholdFreeInstall <= 0 {
				return false
			}
			threshold := decimal.NewFromFloat(p.opts.OrderThresholdFreeInstall)
			return p.quote.SectionSubtotal(types.LineSectionDue).GreaterThanOrEqual(threshold)
		},
		apply: (*discountPipeline).applyThresholdDiscount,
	},
	{
		name: stageSeasonalPromo,
		applies: func(p *discountPipeline) bool {
			return p.opts.SeasonalPromoActive && p.opts.SeasonalPromoPercentFirstMonth > 0
		},
		apply: (*discountPipeline).applySeasonalPromo,
	},
	{
		name:    stageCoupon,
		applies: func(p *discountPipeline) bool { return p.opts.CouponCode != "" },
		apply:   (*discountPipeline).applyCoupon,
	},
}

// applyBundleDiscount discounts every due installation line when both
// products are in the order: remote setups by the configured remote
// fraction (currently free), callout visits by the callout fraction
func (p *discountPipeline) applyBundleDiscount() {
	for _, line := range p.quote.Lines {
		if line.Type != types.LineItemTypeInstallation || line.Section != types.LineSectionDue {
			continue
		}
		if strings.Contains(line.Key, "remote") {
			p.discountInstallationLine(line, p.bundleRemoteOff, bundleReason(p.bundleRemoteOff))
		} else if strings.Contains(line.Key, "callout") {
			p.discountInstallationLine(line, p.bundleCalloutOff, bundleReason(p.bundleCalloutOff))
		}
	}
}

// applyThresholdDiscount mirrors the bundle structure for large non-bundle
// orders, skipping lines an earlier discount already touched
func (p *discountPipeline) applyThresholdDiscount() {
	threshold := int64(p.opts.OrderThresholdFreeInstall)
	for _, line := range p.quote.Lines {
		if line.Type != types.LineItemTypeInstallation || line.Section != types.LineSectionDue || line.Reason != "" {
			continue
		}
		if strings.Contains(line.Key, "remote") {
			p.discountInstallationLine(line, p.bundleRemoteOff, thresholdReason(threshold, p.bundleRemoteOff))
		} else if strings.Contains(line.Key, "callout") {
			p.discountInstallationLine(line, p.bundleCalloutOff, thresholdReason(threshold, p.bundleCalloutOff))
		}
	}
}

// applySeasonalPromo takes the promo percentage off due first-month
// subscription lines. The percentage applies to the current, possibly
// already-reduced amount, and the promo reason is appended to any reason
// an earlier discount left behind.
func (p *discountPipeline) applySeasonalPromo() {
	percent := decimal.NewFromFloat(p.opts.SeasonalPromoPercentFirstMonth)
	for _, line := range p.quote.Lines {
		if line.Type != types.LineItemTypeSubscription || line.Section != types.LineSectionDue {
			continue
		}
		if !strings.Contains(line.Key, "first-month") {
			continue
		}

		current := line.Amount
		discount := types.RoundAmount(current.Mul(percent))
		line.EnsureOriginalAmount()
		reduced := types.RoundAmount(current.Sub(discount))
		if reduced.IsNegative() {
			reduced = decimal.Zero
		}
		line.Amount = reduced
		line.AppendReason(p.opts.SeasonalPromoLabel)
	}
}

// applyCoupon takes the configured percentage off the sum of due
// subscription amounts as a single order-level adjustment rather than a
// per-line mutation
func (p *discountPipeline) applyCoupon() {
	totalDiscount := decimal.Zero
	for _, line := range p.quote.Lines {
		if line.Type == types.LineItemTypeSubscription && line.Section == types.LineSectionDue {
			totalDiscount = totalDiscount.Add(types.RoundAmount(line.Amount.Mul(p.couponPercentOff)))
		}
	}

	if totalDiscount.IsPositive() {
		p.quote.Adjustments = append(p.quote.Adjustments, &quote.Adjustment{
			Key:     "coupon-" + strings.ToLower(p.opts.CouponCode),
			Label:   "Promo code " + strings.ToUpper(p.opts.CouponCode),
			Amount:  totalDiscount.Neg(),
			Section: types.LineSectionDue,
		})
	}
}

func (p *discountPipeline) discountInstallationLine(line *quote.LineItem, fraction decimal.Decimal, reason string) {
	line.EnsureOriginalAmount()
	remaining := decimal.NewFromInt(1).Sub(fraction)
	line.Amount = types.RoundAmount(line.OriginalAmount.Mul(remaining))
	line.Reason = reason
}

func bundleReason(fraction decimal.Decimal) string {
	if fraction.Equal(decimal.NewFromInt(1)) {
		return "Bundle TV + HUB"
	}
	return fmt.Sprintf("Bundle TV + HUB (-%s%%)", fraction.Mul(decimal.NewFromInt(100)).String())
}

func thresholdReason(threshold int64, fraction decimal.Decimal) string {
	if fraction.Equal(decimal.NewFromInt(1)) {
		return fmt.Sprintf("Order over £%d", threshold)
	}
	return fmt.Sprintf("Order over £%d (-%s%%)", threshold, fraction.Mul(decimal.NewFromInt(100)).String())
}
