package quote

import (
	"github.com/novastream/novastream/internal/types"

	ierr "github.com/novastream/novastream/internal/errors"
)

// InstallationSelection is the customer's installation/shipping choice
type InstallationSelection struct {
	Type types.InstallationType `json:"type"`
	// FirestickID selects a device for firestick installations. Empty
	// means the recommended device; an unknown id is an error.
	FirestickID string `json:"firestick_id,omitempty"`
	// Standalone marks an installation purchased without an accompanying
	// subscription, priced at the higher standalone rate
	Standalone bool `json:"standalone,omitempty"`
}

func (s InstallationSelection) Validate() error {
	return s.Type.Validate()
}

// TvInput is the configuration for a TV subscription quote
type TvInput struct {
	PlanID         string                 `json:"plan_id"`
	CountryTier    types.CountryTier      `json:"country_tier"`
	Pro            bool                   `json:"pro"`
	DurationMonths types.TvDurationMonths `json:"duration_months"`
	Installation   InstallationSelection  `json:"installation"`
}

func (i TvInput) Validate() error {
	if i.PlanID == "" {
		return ierr.NewError("plan id is required").
			WithHint("TV plan id is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.CountryTier.Validate(); err != nil {
		return err
	}
	if err := i.DurationMonths.Validate(); err != nil {
		return err
	}
	return i.Installation.Validate()
}

// StreamingInput is the configuration for a Streaming Hub quote
type StreamingInput struct {
	PlanID  string             `json:"plan_id"`
	Billing types.BillingCycle `json:"billing"`
	// VpnEnabled is ignored when the plan already includes the VPN
	VpnEnabled   bool                  `json:"vpn_enabled"`
	Installation InstallationSelection `json:"installation"`
}

func (i StreamingInput) Validate() error {
	if i.PlanID == "" {
		return ierr.NewError("plan id is required").
			WithHint("Streaming plan id is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.Billing.Validate(); err != nil {
		return err
	}
	return i.Installation.Validate()
}

// MergeOptions steer the order-level discount pipeline
type MergeOptions struct {
	// WaiveInstallForBundle is set when both a TV and a streaming
	// subscription are in the order
	WaiveInstallForBundle bool `json:"waive_install_for_bundle"`

	// OrderThresholdFreeInstall discounts installation lines for orders at
	// or above this due-today subtotal; zero disables the stage
	OrderThresholdFreeInstall float64 `json:"order_threshold_free_install,omitempty"`

	SeasonalPromoActive            bool    `json:"seasonal_promo_active,omitempty"`
	SeasonalPromoPercentFirstMonth float64 `json:"seasonal_promo_percent_first_month,omitempty"`
	SeasonalPromoLabel             string  `json:"seasonal_promo_label,omitempty"`

	CouponCode string `json:"coupon_code,omitempty"`
}
