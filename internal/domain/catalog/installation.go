package catalog

import (
	"github.com/shopspring/decimal"
)

// InstallationRates are the fixed installation prices. Standalone rates
// apply when the setup is purchased without an accompanying subscription.
type InstallationRates struct {
	Remote            decimal.Decimal `json:"remote"`
	RemoteStandalone  decimal.Decimal `json:"remote_standalone"`
	Callout           decimal.Decimal `json:"callout"`
	CalloutStandalone decimal.Decimal `json:"callout_standalone"`
}

// ShippingRates describe device shipping: a flat rate, waived above the
// free threshold
type ShippingRates struct {
	StandardRate  decimal.Decimal `json:"standard_rate"`
	FreeThreshold decimal.Decimal `json:"free_threshold"`
}

var Installation = InstallationRates{
	Remote:            decimal.RequireFromString("30.00"),
	RemoteStandalone:  decimal.RequireFromString("45.00"),
	Callout:           decimal.RequireFromString("59.00"),
	CalloutStandalone: decimal.RequireFromString("79.00"),
}

var Shipping = ShippingRates{
	StandardRate:  decimal.RequireFromString("5.99"),
	FreeThreshold: decimal.RequireFromString("100.00"),
}
