package catalog

import (
	"github.com/novastream/novastream/internal/types"
	"github.com/samber/lo"

	ierr "github.com/novastream/novastream/internal/errors"
)

// Country is a static catalog entry. The tier drives which price column a
// TV plan uses for it.
type Country struct {
	Code string            `json:"code"`
	Name string            `json:"name"`
	Tier types.CountryTier `json:"tier"`
}

// Countries is the canonical country table. Loaded once, never mutated.
var Countries = []Country{
	{Code: "uk", Name: "United Kingdom", Tier: types.CountryTierRich},
	{Code: "de", Name: "Germany", Tier: types.CountryTierRich},
	{Code: "fr", Name: "France", Tier: types.CountryTierRich},
	{Code: "it", Name: "Italy", Tier: types.CountryTierRich},
	{Code: "es", Name: "Spain", Tier: types.CountryTierRich},
	{Code: "il", Name: "Israel", Tier: types.CountryTierRich},
	{Code: "ru", Name: "Russia", Tier: types.CountryTierRich},
	{Code: "pl", Name: "Poland", Tier: types.CountryTierCheap},
	{Code: "ua", Name: "Ukraine", Tier: types.CountryTierCheap},
	{Code: "ge", Name: "Georgia", Tier: types.CountryTierCheap},
	{Code: "am", Name: "Armenia", Tier: types.CountryTierCheap},
	{Code: "kz", Name: "Kazakhstan", Tier: types.CountryTierCheap},
	{Code: "baltic", Name: "Baltics (LT/LV/EE)", Tier: types.CountryTierCheap},
	{Code: "ro_md", Name: "Romania & Moldova", Tier: types.CountryTierCheap},
	{Code: "tr_az", Name: "Türkiye & Azerbaijan", Tier: types.CountryTierCheap},
}

// CountryByCode looks up a country by its code
func CountryByCode(code string) (*Country, error) {
	country, found := lo.Find(Countries, func(c Country) bool {
		return c.Code == code
	})
	if !found {
		return nil, ierr.NewError("country not found").
			WithHintf("Unknown country: %s", code).
			WithReportableDetails(map[string]any{"code": code}).
			Mark(ierr.ErrNotFound)
	}
	return &country, nil
}
