package dto

import (
	"github.com/novastream/novastream/internal/domain/catalog"
)

// CatalogResponse is the full static catalog the checkout UI renders
// selections from
type CatalogResponse struct {
	Countries      []catalog.Country         `json:"countries"`
	TvPlans        []*catalog.TvPlan         `json:"tv_plans"`
	StreamingPlans []*catalog.StreamingPlan  `json:"streaming_plans"`
	Firesticks     []*catalog.Firestick      `json:"firesticks"`
	Installation   catalog.InstallationRates `json:"installation"`
	Shipping       catalog.ShippingRates     `json:"shipping"`
}

func NewCatalogResponse() *CatalogResponse {
	return &CatalogResponse{
		Countries:      catalog.Countries,
		TvPlans:        catalog.TvPlans,
		StreamingPlans: catalog.StreamingPlans,
		Firesticks:     catalog.Firesticks,
		Installation:   catalog.Installation,
		Shipping:       catalog.Shipping,
	}
}
