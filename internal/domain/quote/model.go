package quote

import (
	"github.com/novastream/novastream/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// LineItem is a single priced entry of a quote. Keys are unique within a
// quote. When OriginalAmount is set it carries the pre-discount amount so
// the UI can render a strikethrough price, and Amount never exceeds it.
type LineItem struct {
	Key     string             `json:"key"`
	Label   string             `json:"label"`
	Amount  decimal.Decimal    `json:"amount"`
	Section types.LineSection  `json:"section"`
	Type    types.LineItemType `json:"type"`

	OriginalAmount *decimal.Decimal `json:"original_amount,omitempty"`
	Reason         string           `json:"reason,omitempty"`
}

// EnsureOriginalAmount records the current amount as the pre-discount
// price unless an earlier discount already did
func (l *LineItem) EnsureOriginalAmount() {
	if l.OriginalAmount == nil {
		amount := l.Amount
		l.OriginalAmount = &amount
	}
}

// AppendReason adds a discount reason, comma-joining with any reason an
// earlier discount left on the line
func (l *LineItem) AppendReason(reason string) {
	if l.Reason == "" {
		l.Reason = reason
		return
	}
	l.Reason = l.Reason + ", " + reason
}

func (l *LineItem) Clone() *LineItem {
	clone := *l
	if l.OriginalAmount != nil {
		amount := *l.OriginalAmount
		clone.OriginalAmount = &amount
	}
	return &clone
}

// Adjustment is a quote-level delta not attributable to a single line,
// negative amounts are discounts
type Adjustment struct {
	Key     string            `json:"key"`
	Label   string            `json:"label"`
	Amount  decimal.Decimal   `json:"amount"`
	Section types.LineSection `json:"section"`
}

func (a *Adjustment) Clone() *Adjustment {
	clone := *a
	return &clone
}

// Quote is an itemized price quote for one product line, or for a whole
// order after merging. DueToday and RecurringMonthly always equal the
// rounded sum of the lines and adjustments in their section; Recalculate
// restores that after any mutation.
type Quote struct {
	ID               string            `json:"id"`
	DueToday         decimal.Decimal   `json:"due_today"`
	RecurringMonthly decimal.Decimal   `json:"recurring_monthly"`
	RecurringLabel   string            `json:"recurring_label,omitempty"`
	Lines            []*LineItem       `json:"lines"`
	Adjustments      []*Adjustment     `json:"adjustments"`
	Source           types.QuoteSource `json:"source,omitempty"`
}

// New returns an empty quote with a fresh id
func New(source types.QuoteSource) *Quote {
	return &Quote{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		Lines:       []*LineItem{},
		Adjustments: []*Adjustment{},
		Source:      source,
	}
}

// LinesInSection returns the lines contributing to one section
func (q *Quote) LinesInSection(section types.LineSection) []*LineItem {
	return lo.Filter(q.Lines, func(l *LineItem, _ int) bool {
		return l.Section == section
	})
}

// AdjustmentsInSection returns the adjustments contributing to one section
func (q *Quote) AdjustmentsInSection(section types.LineSection) []*Adjustment {
	return lo.Filter(q.Adjustments, func(a *Adjustment, _ int) bool {
		return a.Section == section
	})
}

// SectionSubtotal sums lines and adjustments of a section without rounding
func (q *Quote) SectionSubtotal(section types.LineSection) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range q.LinesInSection(section) {
		subtotal = subtotal.Add(l.Amount)
	}
	for _, a := range q.AdjustmentsInSection(section) {
		subtotal = subtotal.Add(a.Amount)
	}
	return subtotal
}

// Recalculate recomputes both totals from scratch. Totals are never
// accumulated incrementally, this is what keeps them consistent with the
// lines after every discount stage.
func (q *Quote) Recalculate() {
	q.DueToday = types.RoundAmount(q.SectionSubtotal(types.LineSectionDue))
	q.RecurringMonthly = types.RoundAmount(q.SectionSubtotal(types.LineSectionRecurring))
}

// Clone deep-copies the quote so discount stages can mutate a working copy
func (q *Quote) Clone() *Quote {
	clone := *q
	clone.Lines = lo.Map(q.Lines, func(l *LineItem, _ int) *LineItem {
		return l.Clone()
	})
	clone.Adjustments = lo.Map(q.Adjustments, func(a *Adjustment, _ int) *Adjustment {
		return a.Clone()
	})
	return &clone
}
