package service

import (
	"fmt"

	"github.com/novastream/novastream/internal/domain/catalog"
	"github.com/novastream/novastream/internal/domain/quote"
	"github.com/novastream/novastream/internal/types"
	"github.com/shopspring/decimal"
)

// InstallationCost is one priced installation/shipping selection
type InstallationCost struct {
	Install   decimal.Decimal   `json:"install"`
	Device    decimal.Decimal   `json:"device"`
	Shipping  decimal.Decimal   `json:"shipping"`
	LineItems []*quote.LineItem `json:"line_items"`
}

// Total is the combined due-today contribution of the selection
func (c *InstallationCost) Total() decimal.Decimal {
	return c.Install.Add(c.Device).Add(c.Shipping)
}

// InstallationService prices an installation/shipping selection into line
// items
type InstallationService interface {
	Compute(sel quote.InstallationSelection) (*InstallationCost, error)
}

type installationService struct {
	ServiceParams
}

func NewInstallationService(params ServiceParams) InstallationService {
	return &installationService{ServiceParams: params}
}

func (s *installationService) Compute(sel quote.InstallationSelection) (*InstallationCost, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	result := &InstallationCost{
		Install:   decimal.Zero,
		Device:    decimal.Zero,
		Shipping:  decimal.Zero,
		LineItems: []*quote.LineItem{},
	}

	switch sel.Type {
	case types.InstallationTypeRemote:
		result.Install = catalog.Installation.Remote
		label := "Remote Installation"
		if sel.Standalone {
			result.Install = catalog.Installation.RemoteStandalone
			label = "Remote Setup (Standalone)"
		}
		result.LineItems = append(result.LineItems, &quote.LineItem{
			Key:     "installation-remote",
			Label:   label,
			Amount:  result.Install,
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeInstallation,
		})

	case types.InstallationTypeCallout:
		result.Install = catalog.Installation.Callout
		label := "Callout Visit"
		if sel.Standalone {
			result.Install = catalog.Installation.CalloutStandalone
			label = "Callout Visit (Standalone)"
		}
		result.LineItems = append(result.LineItems, &quote.LineItem{
			Key:     "installation-callout",
			Label:   label,
			Amount:  result.Install,
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeInstallation,
		})

	case types.InstallationTypeFirestick:
		// Setup is included in the device price
		stick := catalog.DefaultFirestick()
		if sel.FirestickID != "" {
			found, err := catalog.FirestickByID(sel.FirestickID)
			if err != nil {
				return nil, err
			}
			stick = found
		}
		result.Device = stick.Price

		result.LineItems = append(result.LineItems, &quote.LineItem{
			Key:     "device-firestick",
			Label:   stick.Label,
			Amount:  result.Device,
			Section: types.LineSectionDue,
			Type:    types.LineItemTypeDevice,
		})

		// Shipping is waived above the free threshold, but the line is
		// still emitted so the UI can strike the fee through
		if result.Device.GreaterThan(catalog.Shipping.FreeThreshold) {
			waived := catalog.Shipping.StandardRate
			result.LineItems = append(result.LineItems, &quote.LineItem{
				Key:            "shipping",
				Label:          "Shipping",
				Amount:         decimal.Zero,
				Section:        types.LineSectionDue,
				Type:           types.LineItemTypeShipping,
				OriginalAmount: &waived,
				Reason:         fmt.Sprintf("Free over £%d", catalog.Shipping.FreeThreshold.IntPart()),
			})
		} else {
			result.Shipping = catalog.Shipping.StandardRate
			result.LineItems = append(result.LineItems, &quote.LineItem{
				Key:     "shipping",
				Label:   "Shipping",
				Amount:  result.Shipping,
				Section: types.LineSectionDue,
				Type:    types.LineItemTypeShipping,
			})
		}
	}

	return result, nil
}
