package dto

import (
	"github.com/novastream/novastream/internal/domain/quote"
	"github.com/novastream/novastream/internal/service"
	"github.com/novastream/novastream/internal/types"
	"github.com/novastream/novastream/internal/validator"
)

// InstallationSelectionRequest selects an installation method
type InstallationSelectionRequest struct {
	Type        string `json:"type" binding:"required" validate:"required,oneof=remote callout firestick"`
	FirestickID string `json:"firestick_id,omitempty"`
	Standalone  bool   `json:"standalone,omitempty"`
}

func (r InstallationSelectionRequest) ToSelection() quote.InstallationSelection {
	return quote.InstallationSelection{
		Type:        types.InstallationType(r.Type),
		FirestickID: r.FirestickID,
		Standalone:  r.Standalone,
	}
}

// TvQuoteRequest prices a TV subscription configuration
type TvQuoteRequest struct {
	PlanID         string                       `json:"plan_id" binding:"required" validate:"required"`
	CountryTier    string                       `json:"country_tier" binding:"required" validate:"required,oneof=cheap rich"`
	Pro            bool                         `json:"pro"`
	DurationMonths int                          `json:"duration_months" binding:"required" validate:"required,oneof=1 3 6 12"`
	Installation   InstallationSelectionRequest `json:"installation" binding:"required"`
}

func (r TvQuoteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r TvQuoteRequest) ToInput() quote.TvInput {
	return quote.TvInput{
		PlanID:         r.PlanID,
		CountryTier:    types.CountryTier(r.CountryTier),
		Pro:            r.Pro,
		DurationMonths: types.TvDurationMonths(r.DurationMonths),
		Installation:   r.Installation.ToSelection(),
	}
}

// StreamingQuoteRequest prices a Streaming Hub configuration
type StreamingQuoteRequest struct {
	PlanID       string                       `json:"plan_id" binding:"required" validate:"required"`
	Billing      string                       `json:"billing" binding:"required" validate:"required,oneof=monthly yearly"`
	VpnEnabled   bool                         `json:"vpn_enabled"`
	Installation InstallationSelectionRequest `json:"installation" binding:"required"`
}

func (r StreamingQuoteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r StreamingQuoteRequest) ToInput() quote.StreamingInput {
	return quote.StreamingInput{
		PlanID:       r.PlanID,
		Billing:      types.BillingCycle(r.Billing),
		VpnEnabled:   r.VpnEnabled,
		Installation: r.Installation.ToSelection(),
	}
}

// OrderQuoteRequest prices a whole order of one or both product lines
type OrderQuoteRequest struct {
	Tv         *TvQuoteRequest        `json:"tv,omitempty"`
	Streaming  *StreamingQuoteRequest `json:"streaming,omitempty"`
	CouponCode string                 `json:"coupon_code,omitempty"`
	Channel    string                 `json:"channel,omitempty" validate:"omitempty,oneof=wizard phone manual"`
}

func (r OrderQuoteRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Tv != nil {
		if err := r.Tv.Validate(); err != nil {
			return err
		}
	}
	if r.Streaming != nil {
		if err := r.Streaming.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QuoteResponse is an itemized quote as rendered by the checkout UI
type QuoteResponse struct {
	*quote.Quote
	DisplayDueToday         string `json:"display_due_today"`
	DisplayRecurringMonthly string `json:"display_recurring_monthly"`
}

func NewQuoteResponse(q *quote.Quote, currency string) *QuoteResponse {
	return &QuoteResponse{
		Quote:                   q,
		DisplayDueToday:         types.FormatAmount(q.DueToday, currency),
		DisplayRecurringMonthly: types.FormatAmount(q.RecurringMonthly, currency),
	}
}

// OrderQuoteResponse is the merged order quote plus its analytics record
type OrderQuoteResponse struct {
	*QuoteResponse
	Metadata *service.OrderMetadata `json:"metadata"`
}
