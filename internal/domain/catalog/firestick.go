package catalog

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "github.com/novastream/novastream/internal/errors"
)

// Firestick is a purchasable set-top box. Selection is mutually exclusive,
// an order carries at most one device.
type Firestick struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
	// Recommended marks the device used when no explicit choice was made
	Recommended bool `json:"recommended"`
}

// Firesticks is the canonical device table
var Firesticks = []*Firestick{
	{
		ID:    "firestick-lite",
		Label: "Fire TV Stick Lite",
		Price: decimal.RequireFromString("44.99"),
	},
	{
		ID:          "firestick-4k",
		Label:       "Fire TV Stick 4K",
		Price:       decimal.RequireFromString("84.99"),
		Recommended: true,
	},
	{
		ID:    "firestick-4k-max",
		Label: "Fire TV Stick 4K Max",
		Price: decimal.RequireFromString("109.99"),
	},
}

// FirestickByID looks up a device by id. Unknown ids fail hard, matching
// plan lookups. An earlier generation fell back to the default device here,
// which hid typos in device ids.
func FirestickByID(id string) (*Firestick, error) {
	stick, found := lo.Find(Firesticks, func(f *Firestick) bool {
		return f.ID == id
	})
	if !found {
		return nil, ierr.NewError("firestick not found").
			WithHintf("Unknown device: %s", id).
			WithReportableDetails(map[string]any{"firestick_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return stick, nil
}

// DefaultFirestick returns the recommended device, used when the selection
// leaves the device id empty
func DefaultFirestick() *Firestick {
	stick, found := lo.Find(Firesticks, func(f *Firestick) bool {
		return f.Recommended
	})
	if !found {
		// table always carries a recommended entry
		return Firesticks[0]
	}
	return stick
}
