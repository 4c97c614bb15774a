package types

import (
	ierr "github.com/novastream/novastream/internal/errors"
)

// LineSection identifies which total of a quote a line contributes to
type LineSection string

const (
	// LineSectionDue is a charge billed immediately at checkout
	LineSectionDue LineSection = "due"
	// LineSectionRecurring is a charge expected to repeat on a future
	// billing cycle, shown for informational purposes only
	LineSectionRecurring LineSection = "recurring"
)

// LineItemType classifies what a quote line is charging for
type LineItemType string

const (
	LineItemTypeSubscription LineItemType = "subscription"
	LineItemTypeInstallation LineItemType = "installation"
	LineItemTypeDevice       LineItemType = "device"
	LineItemTypeShipping     LineItemType = "shipping"
	LineItemTypeFee          LineItemType = "fee"
	LineItemTypeAddon        LineItemType = "addon"
)

// QuoteSource tags which product line produced a quote
type QuoteSource string

const (
	QuoteSourceTv        QuoteSource = "tv"
	QuoteSourceStreaming QuoteSource = "streaming"
)

// CountryTier classifies a country's TV feed cost structure
type CountryTier string

const (
	// CountryTierCheap was called "standard" in the legacy catalog
	CountryTierCheap CountryTier = "cheap"
	// CountryTierRich was called "premium" in the legacy catalog
	CountryTierRich CountryTier = "rich"
)

func (t CountryTier) Validate() error {
	switch t {
	case CountryTierCheap, CountryTierRich:
		return nil
	default:
		return ierr.NewError("invalid country tier").
			WithHintf("Country tier must be %s or %s", CountryTierCheap, CountryTierRich).
			WithReportableDetails(map[string]any{"tier": t}).
			Mark(ierr.ErrValidation)
	}
}

// BillingCycle is the billing cadence of a streaming subscription
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func (b BillingCycle) Validate() error {
	switch b {
	case BillingCycleMonthly, BillingCycleYearly:
		return nil
	default:
		return ierr.NewError("invalid billing cycle").
			WithHintf("Billing cycle must be %s or %s", BillingCycleMonthly, BillingCycleYearly).
			WithReportableDetails(map[string]any{"billing": b}).
			Mark(ierr.ErrValidation)
	}
}

// InstallationType is how the service gets set up at the customer's home
type InstallationType string

const (
	// InstallationTypeRemote is a guided remote setup session
	InstallationTypeRemote InstallationType = "remote"
	// InstallationTypeCallout is an engineer home visit
	InstallationTypeCallout InstallationType = "callout"
	// InstallationTypeFirestick ships a pre-configured device instead,
	// setup is included in the device price
	InstallationTypeFirestick InstallationType = "firestick"
)

func (t InstallationType) Validate() error {
	switch t {
	case InstallationTypeRemote, InstallationTypeCallout, InstallationTypeFirestick:
		return nil
	default:
		return ierr.NewError("invalid installation type").
			WithHint("Installation type must be remote, callout or firestick").
			WithReportableDetails(map[string]any{"type": t}).
			Mark(ierr.ErrValidation)
	}
}

// TvDurationMonths is a TV subscription commitment length. Only the
// durations present in the discount schedule are sellable.
type TvDurationMonths int

const (
	TvDuration1Month   TvDurationMonths = 1
	TvDuration3Months  TvDurationMonths = 3
	TvDuration6Months  TvDurationMonths = 6
	TvDuration12Months TvDurationMonths = 12
)

func (d TvDurationMonths) Validate() error {
	switch d {
	case TvDuration1Month, TvDuration3Months, TvDuration6Months, TvDuration12Months:
		return nil
	default:
		return ierr.NewError("invalid subscription duration").
			WithHint("Duration must be 1, 3, 6 or 12 months").
			WithReportableDetails(map[string]any{"duration_months": d}).
			Mark(ierr.ErrValidation)
	}
}

// AcquisitionChannel records where an order was put together
type AcquisitionChannel string

const (
	AcquisitionChannelWizard AcquisitionChannel = "wizard"
	AcquisitionChannelPhone  AcquisitionChannel = "phone"
	AcquisitionChannelManual AcquisitionChannel = "manual"
)

// OrderBillingCycle classifies a whole order for analytics
type OrderBillingCycle string

const (
	OrderBillingCycleMonthly    OrderBillingCycle = "monthly"
	OrderBillingCycleYearly     OrderBillingCycle = "yearly"
	OrderBillingCycleMultiMonth OrderBillingCycle = "multi-month"
)
