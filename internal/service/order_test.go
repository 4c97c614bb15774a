package service

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/novastream/novastream/internal/domain/quote"
	ierr "github.com/novastream/novastream/internal/errors"
	"github.com/novastream/novastream/internal/testutil"
	"github.com/novastream/novastream/internal/types"
)

type OrderServiceSuite struct {
	testutil.BaseServiceTestSuite
	service          OrderService
	tvService        TvQuoteService
	streamingService StreamingQuoteService
}

func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceSuite))
}

func (s *OrderServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger: s.GetLogger(),
		Config: s.GetConfig(),
		Now:    s.Clock(),
	}
	installationService := NewInstallationService(params)
	s.tvService = NewTvQuoteService(params, installationService)
	s.streamingService = NewStreamingQuoteService(params, installationService)
	s.service = NewOrderService(params, s.tvService, s.streamingService)
}

func (s *OrderServiceSuite) tvInput(install types.InstallationType) quote.TvInput {
	return quote.TvInput{
		PlanID:         "tv-single",
		CountryTier:    types.CountryTierCheap,
		DurationMonths: types.TvDuration1Month,
		Installation:   quote.InstallationSelection{Type: install},
	}
}

func (s *OrderServiceSuite) streamingInput(install types.InstallationType) quote.StreamingInput {
	return quote.StreamingInput{
		PlanID:       "cinema-lite",
		Billing:      types.BillingCycleMonthly,
		VpnEnabled:   true,
		Installation: quote.InstallationSelection{Type: install},
	}
}

func (s *OrderServiceSuite) computeTv(input quote.TvInput) *quote.Quote {
	q, err := s.tvService.Compute(input)
	s.Require().NoError(err)
	return q
}

func (s *OrderServiceSuite) computeStreaming(input quote.StreamingInput) *quote.Quote {
	q, err := s.streamingService.Compute(input)
	s.Require().NoError(err)
	return q
}

func (s *OrderServiceSuite) TestBundleWaivesRemoteInstallation() {
	tv := s.computeTv(s.tvInput(types.InstallationTypeRemote))
	streaming := s.computeStreaming(s.streamingInput(types.InstallationTypeRemote))

	merged := s.service.Merge([]*quote.Quote{tv, streaming},
		quote.MergeOptions{WaiveInstallForBundle: true})

	s.Len(merged.Lines, 8)
	s.Equal("billed monthly", merged.RecurringLabel)

	installs := 0
	for _, line := range merged.Lines {
		if line.Type != types.LineItemTypeInstallation {
			continue
		}
		installs++
		s.True(line.Amount.IsZero())
		s.Require().NotNil(line.OriginalAmount)
		s.Equal("30.00", line.OriginalAmount.StringFixed(2))
		s.Equal("Bundle TV + HUB", line.Reason)
	}
	s.Equal(2, installs)

	// 4.99 + 11.99 + 14.99 + 2.99, both setups free
	s.Equal("34.96", merged.DueToday.StringFixed(2))
	s.Equal("17.98", merged.RecurringMonthly.StringFixed(2))

	// Source quotes stay untouched
	tvInstall := lineByKey(tv.Lines, "installation-remote")
	s.Require().NotNil(tvInstall)
	s.Equal("30.00", tvInstall.Amount.StringFixed(2))
}

func (s *OrderServiceSuite) TestBundleHalvesCalloutInstallation() {
	tv := s.computeTv(s.tvInput(types.InstallationTypeCallout))
	streaming := s.computeStreaming(s.streamingInput(types.InstallationTypeCallout))

	merged := s.service.Merge([]*quote.Quote{tv, streaming},
		quote.MergeOptions{WaiveInstallForBundle: true})

	for _, line := range merged.Lines {
		if line.Type != types.LineItemTypeInstallation {
			continue
		}
		s.Equal("29.50", line.Amount.StringFixed(2))
		s.Require().NotNil(line.OriginalAmount)
		s.Equal("59.00", line.OriginalAmount.StringFixed(2))
		s.Equal("Bundle TV + HUB (-50%)", line.Reason)
	}
}

func (s *OrderServiceSuite) TestThresholdDiscountsInstallation() {
	tv := s.computeTv(s.tvInput(types.InstallationTypeRemote))

	merged := s.service.Merge([]*quote.Quote{tv},
		quote.MergeOptions{OrderThresholdFreeInstall: 40})

	install := lineByKey(merged.Lines, "installation-remote")
	s.Require().NotNil(install)
	s.True(install.Amount.IsZero())
	s.Equal("Order over £40", install.Reason)
	s.Equal("16.98", merged.DueToday.StringFixed(2))
}

func (s *OrderServiceSuite) TestBelowThresholdKeepsInstallation() {
	q := quote.New(types.QuoteSourceTv)
	q.Lines = append(q.Lines,
		&quote.LineItem{
			Key:     "tv-first-month",
			Label:   "TV Global Lite – first month",
			Amount:  decimal.RequireFromString("5.00"),
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeSubscription,
		},
		&quote.LineItem{
			Key:     "installation-remote",
			Label:   "Remote Installation",
			Amount:  decimal.RequireFromString("30.00"),
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeInstallation,
		},
	)
	q.Recalculate()

	merged := s.service.Merge([]*quote.Quote{q},
		quote.MergeOptions{OrderThresholdFreeInstall: 40})

	install := lineByKey(merged.Lines, "installation-remote")
	s.Require().NotNil(install)
	s.Equal("30.00", install.Amount.StringFixed(2))
	s.Empty(install.Reason)
	s.Equal("35.00", merged.DueToday.StringFixed(2))
}

func (s *OrderServiceSuite) TestBundleSuppressesThreshold() {
	tv := s.computeTv(s.tvInput(types.InstallationTypeRemote))
	streaming := s.computeStreaming(s.streamingInput(types.InstallationTypeRemote))

	merged := s.service.Merge([]*quote.Quote{tv, streaming}, quote.MergeOptions{
		WaiveInstallForBundle:     true,
		OrderThresholdFreeInstall: 40,
	})

	// One waiver only, attributed to the bundle
	for _, line := range merged.Lines {
		if line.Type == types.LineItemTypeInstallation {
			s.Equal("Bundle TV + HUB", line.Reason)
		}
	}
	s.Equal("34.96", merged.DueToday.StringFixed(2))
}

func (s *OrderServiceSuite) TestSeasonalPromoStacksOnCommitmentDiscount() {
	input := s.tvInput(types.InstallationTypeRemote)
	input.DurationMonths = types.TvDuration12Months
	tv := s.computeTv(input)

	merged := s.service.Merge([]*quote.Quote{tv}, quote.MergeOptions{
		SeasonalPromoActive:            true,
		SeasonalPromoPercentFirstMonth: 0.20,
		SeasonalPromoLabel:             "Christmas -20%",
	})

	firstMonth := lineByKey(merged.Lines, "tv-first-month")
	s.Require().NotNil(firstMonth)
	// 20% off the already-discounted 10.19
	s.Equal("8.15", firstMonth.Amount.StringFixed(2))
	s.Require().NotNil(firstMonth.OriginalAmount)
	s.Equal("11.99", firstMonth.OriginalAmount.StringFixed(2))
	s.Equal("15% off (12mo commitment), Christmas -20%", firstMonth.Reason)

	// Recurring months are not promotional
	recurring := lineByKey(merged.Lines, "tv-recurring")
	s.Require().NotNil(recurring)
	s.Equal("10.19", recurring.Amount.StringFixed(2))
}

func (s *OrderServiceSuite) TestSeasonalPromoClampsAtZero() {
	q := quote.New(types.QuoteSourceStreaming)
	q.Lines = append(q.Lines, &quote.LineItem{
		Key:     "streaming-first-month",
		Label:   "Streaming HUB Lite – first month",
		Amount:  decimal.RequireFromString("10.00"),
		Section: types.LineSectionDue,
		Type:    types.LineItemTypeSubscription,
	})
	q.Recalculate()

	merged := s.service.Merge([]*quote.Quote{q}, quote.MergeOptions{
		SeasonalPromoActive:            true,
		SeasonalPromoPercentFirstMonth: 1.50,
		SeasonalPromoLabel:             "Blowout",
	})

	firstMonth := lineByKey(merged.Lines, "streaming-first-month")
	s.Require().NotNil(firstMonth)
	s.True(firstMonth.Amount.IsZero())
	s.Require().NotNil(firstMonth.OriginalAmount)
	s.Equal("10.00", firstMonth.OriginalAmount.StringFixed(2))
	s.True(merged.DueToday.IsZero())
}

func (s *OrderServiceSuite) TestCouponCreatesOrderLevelAdjustment() {
	tv := s.computeTv(s.tvInput(types.InstallationTypeRemote))

	merged := s.service.Merge([]*quote.Quote{tv},
		quote.MergeOptions{CouponCode: "SAVE10"})

	s.Require().Len(merged.Adjustments, 1)
	adj := merged.Adjustments[0]
	s.Equal("coupon-save10", adj.Key)
	s.Equal("Promo code SAVE10", adj.Label)
	// 10% of the 11.99 subscription; the app fee is not couponable
	s.Equal("-1.20", adj.Amount.StringFixed(2))
	s.Equal(types.LineSectionDue, adj.Section)

	s.Equal("45.78", merged.DueToday.StringFixed(2))
}

func (s *OrderServiceSuite) TestMergeEmpty() {
	merged := s.service.Merge(nil, quote.MergeOptions{})
	s.True(strings.HasPrefix(merged.ID, "order_"))
	s.Empty(merged.Lines)
	s.True(merged.DueToday.IsZero())
	s.True(merged.RecurringMonthly.IsZero())
}

func (s *OrderServiceSuite) TestMergeSingleClonesAndPreservesTotals() {
	streaming := s.computeStreaming(s.streamingInput(types.InstallationTypeRemote))

	merged := s.service.Merge([]*quote.Quote{streaming}, quote.MergeOptions{})

	s.NotSame(streaming, merged)
	s.True(merged.DueToday.Equal(streaming.DueToday))
	s.True(merged.RecurringMonthly.Equal(streaming.RecurringMonthly))
}

func (s *OrderServiceSuite) TestMergePreservesLineOrder() {
	tv := s.computeTv(s.tvInput(types.InstallationTypeRemote))
	streaming := s.computeStreaming(s.streamingInput(types.InstallationTypeRemote))

	merged := s.service.Merge([]*quote.Quote{tv, streaming}, quote.MergeOptions{})

	s.Require().Len(merged.Lines, len(tv.Lines)+len(streaming.Lines))
	for i, line := range tv.Lines {
		s.Equal(line.Key, merged.Lines[i].Key)
	}
	for i, line := range streaming.Lines {
		s.Equal(line.Key, merged.Lines[len(tv.Lines)+i].Key)
	}
}

func (s *OrderServiceSuite) TestMixedBillingLabel() {
	monthly := s.computeStreaming(s.streamingInput(types.InstallationTypeRemote))

	yearlyInput := s.streamingInput(types.InstallationTypeRemote)
	yearlyInput.Billing = types.BillingCycleYearly
	yearly := s.computeStreaming(yearlyInput)

	merged := s.service.Merge([]*quote.Quote{monthly, yearly}, quote.MergeOptions{})
	s.Equal("mixed billing", merged.RecurringLabel)
}

func (s *OrderServiceSuite) TestDefaultMergeOptionsInsidePromoWindow() {
	opts := s.service.DefaultMergeOptions(true, true)
	s.True(opts.WaiveInstallForBundle)
	s.Equal(40.0, opts.OrderThresholdFreeInstall)
	s.True(opts.SeasonalPromoActive)
	s.Equal(0.20, opts.SeasonalPromoPercentFirstMonth)
	s.Equal("Christmas -20%", opts.SeasonalPromoLabel)
}

func (s *OrderServiceSuite) TestDefaultMergeOptionsAfterPromoEnds() {
	s.SetNow(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	opts := s.service.DefaultMergeOptions(true, false)
	s.False(opts.WaiveInstallForBundle)
	s.False(opts.SeasonalPromoActive)
}

func (s *OrderServiceSuite) TestComputeOrderBundleWithPromo() {
	tvInput := s.tvInput(types.InstallationTypeRemote)
	streamingInput := s.streamingInput(types.InstallationTypeRemote)

	merged, metadata, err := s.service.ComputeOrder(&tvInput, &streamingInput, "", "")
	s.NoError(err)
	s.Require().NotNil(merged)
	s.Require().NotNil(metadata)

	// Both setups waived, 20% off both first months:
	// 4.99 + 9.59 + 11.99 + 2.99
	s.Equal("29.56", merged.DueToday.StringFixed(2))
	s.Equal("17.98", merged.RecurringMonthly.StringFixed(2))

	firstMonth := lineByKey(merged.Lines, "tv-first-month")
	s.Require().NotNil(firstMonth)
	s.Equal("9.59", firstMonth.Amount.StringFixed(2))
	s.Equal("Christmas -20%", firstMonth.Reason)

	s.Equal("tv-single+cinema-lite", metadata.PlanID)
	s.True(metadata.HasBundle)
	s.False(metadata.HasFirestick)
	s.Equal(types.OrderBillingCycleMonthly, metadata.BillingCycle)
	s.Equal(types.InstallationTypeRemote, metadata.InstallType)
	s.Equal(types.AcquisitionChannelWizard, metadata.AcquisitionChannel)
	s.Equal("christmas-2025", metadata.PromoApplied)
	s.Require().NotNil(metadata.CountryTier)
	s.Equal(types.CountryTierCheap, *metadata.CountryTier)
	s.True(metadata.TotalDueToday.Equal(merged.DueToday))
}

func (s *OrderServiceSuite) TestComputeOrderAfterPromoEnds() {
	s.SetNow(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	tvInput := s.tvInput(types.InstallationTypeRemote)
	streamingInput := s.streamingInput(types.InstallationTypeRemote)

	merged, metadata, err := s.service.ComputeOrder(&tvInput, &streamingInput, "", "")
	s.NoError(err)

	s.Equal("34.96", merged.DueToday.StringFixed(2))
	s.Empty(metadata.PromoApplied)

	firstMonth := lineByKey(merged.Lines, "tv-first-month")
	s.Require().NotNil(firstMonth)
	s.Equal("11.99", firstMonth.Amount.StringFixed(2))
}

func (s *OrderServiceSuite) TestComputeOrderStreamingOnlyYearlyFirestick() {
	streamingInput := s.streamingInput(types.InstallationTypeFirestick)
	streamingInput.Billing = types.BillingCycleYearly

	_, metadata, err := s.service.ComputeOrder(nil, &streamingInput, "", types.AcquisitionChannelPhone)
	s.NoError(err)

	s.Equal("cinema-lite", metadata.PlanID)
	s.False(metadata.HasBundle)
	s.True(metadata.HasFirestick)
	s.Equal(types.InstallationTypeFirestick, metadata.InstallType)
	s.Equal(types.OrderBillingCycleYearly, metadata.BillingCycle)
	s.Equal(types.AcquisitionChannelPhone, metadata.AcquisitionChannel)
	s.Nil(metadata.CountryTier)
}

func (s *OrderServiceSuite) TestComputeOrderTvCommitmentIsMultiMonth() {
	tvInput := s.tvInput(types.InstallationTypeRemote)
	tvInput.DurationMonths = types.TvDuration6Months

	_, metadata, err := s.service.ComputeOrder(&tvInput, nil, "", "")
	s.NoError(err)
	s.Equal(types.OrderBillingCycleMultiMonth, metadata.BillingCycle)
}

func (s *OrderServiceSuite) TestComputeOrderEmpty() {
	_, _, err := s.service.ComputeOrder(nil, nil, "", "")
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *OrderServiceSuite) TestTotalsConsistentAfterPipeline() {
	tvInput := s.tvInput(types.InstallationTypeRemote)
	tvInput.DurationMonths = types.TvDuration12Months
	streamingInput := s.streamingInput(types.InstallationTypeRemote)

	merged, _, err := s.service.ComputeOrder(&tvInput, &streamingInput, "WELCOME", "")
	s.NoError(err)

	s.True(merged.DueToday.Equal(types.RoundAmount(merged.SectionSubtotal(types.LineSectionDue))))
	s.True(merged.RecurringMonthly.Equal(types.RoundAmount(merged.SectionSubtotal(types.LineSectionRecurring))))
}
