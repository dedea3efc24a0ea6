// =============================================================================
// Auto SYSCO - Shared Types
// =============================================================================
//
// This package contains the data model shared by the reference loader, the
// line extractor, the aggregator and the reporter. Keeping it here avoids
// import cycles between those packages.
//
// All monetary values are decimal.Decimal and are kept at full precision.
// Rounding to two places happens only when values are displayed.
//
// =============================================================================

package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORY TYPES
// =============================================================================

// UnknownCategory is the sentinel assigned when an item code is not in the
// reference table.
const UnknownCategory = "Unknown"

// Category is an accounting (GL) classification.
type Category struct {
	// Code is the GL code. It is opaque: numeric codes are kept as strings.
	Code string

	// Label is the human-readable GL description.
	Label string
}

// Unknown returns the sentinel category.
func Unknown() Category {
	return Category{Code: UnknownCategory, Label: UnknownCategory}
}

// Resolution records how a line item's category was obtained.
type Resolution uint8

const (
	// ResolutionNone means no lookup was attempted (special charges).
	ResolutionNone Resolution = iota

	// ResolutionResolved means the item code was found in the reference table.
	ResolutionResolved

	// ResolutionUnresolved means the lookup missed and the item carries the
	// Unknown sentinel.
	ResolutionUnresolved
)

func (r Resolution) String() string {
	switch r {
	case ResolutionResolved:
		return "resolved"
	case ResolutionUnresolved:
		return "unresolved"
	default:
		return "none"
	}
}

// =============================================================================
// LINE ITEM TYPES
// =============================================================================

// ItemKind distinguishes billable lines from synthesized special charges.
type ItemKind uint8

const (
	KindItem ItemKind = iota
	KindBottleDeposit
	KindRecyclingFee
)

// Special charges share one fixed category.
const (
	SpecialChargeCategoryCode  = "600265"
	SpecialChargeCategoryLabel = "N/A Bev"

	BottleDepositTag = "N/A BD"
	RecyclingFeeTag  = "N/A RF"
)

// SpecialChargeCategory returns the category shared by bottle deposits and
// recycling fees.
func SpecialChargeCategory() Category {
	return Category{Code: SpecialChargeCategoryCode, Label: SpecialChargeCategoryLabel}
}

// LineItem is one billable invoice line, or a synthesized special charge.
type LineItem struct {
	// Kind is the line type.
	Kind ItemKind

	// RawCode is the item code as printed (zero padded), or the special
	// charge tag for synthesized charges.
	RawCode string

	// NormalizedCode is RawCode without leading zeros. Empty for special charges.
	NormalizedCode string

	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal

	Category   Category
	Resolution Resolution

	// Description is free text and may be empty.
	Description string

	// SourceLine is the 1-based line number in the document text.
	SourceLine int
}

// Quantity derives the quantity from a line's price and total.
// It is total/price rounded to two places, or zero when price is zero.
func Quantity(price, total decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return total.DivRound(price, 2)
}

// =============================================================================
// SURCHARGE TYPES
// =============================================================================

// SurchargeSet holds the three named BSTPZ surcharges of a document.
type SurchargeSet struct {
	Fuel         decimal.Decimal
	DeliverySize decimal.Decimal
	CreditTerms  decimal.Decimal
}

// Surcharge display names.
const (
	SurchargeFuel         = "BSTPZ FUEL"
	SurchargeDeliverySize = "BSTPZ DELIVERY SIZE"
	SurchargeCreditTerms  = "BSTPZ CREDIT TERMS"
)

// NamedAmount is a labeled monetary value.
type NamedAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Entries returns the surcharges in display order.
func (s SurchargeSet) Entries() []NamedAmount {
	return []NamedAmount{
		{Name: SurchargeFuel, Amount: s.Fuel},
		{Name: SurchargeDeliverySize, Amount: s.DeliverySize},
		{Name: SurchargeCreditTerms, Amount: s.CreditTerms},
	}
}

// Total sums the three surcharges.
func (s SurchargeSet) Total() decimal.Decimal {
	return s.Fuel.Add(s.DeliverySize).Add(s.CreditTerms)
}

// =============================================================================
// SUMMARY TYPES
// =============================================================================

// CategoryTotals is an insertion-ordered mapping of category label to total.
type CategoryTotals struct {
	order  []string
	totals map[string]decimal.Decimal
}

// NewCategoryTotals returns an empty mapping.
func NewCategoryTotals() *CategoryTotals {
	return &CategoryTotals{totals: make(map[string]decimal.Decimal)}
}

// Add accumulates amount under label. The first Add for a label fixes its position.
func (c *CategoryTotals) Add(label string, amount decimal.Decimal) {
	current, exists := c.totals[label]
	if !exists {
		c.order = append(c.order, label)
	}
	c.totals[label] = current.Add(amount)
}

// Get returns the total for label.
func (c *CategoryTotals) Get(label string) (decimal.Decimal, bool) {
	v, ok := c.totals[label]
	return v, ok
}

// Len is the number of labels.
func (c *CategoryTotals) Len() int { return len(c.order) }

// Entries returns the totals in first-occurrence order.
func (c *CategoryTotals) Entries() []NamedAmount {
	out := make([]NamedAmount, 0, len(c.order))
	for _, label := range c.order {
		out = append(out, NamedAmount{Name: label, Amount: c.totals[label]})
	}
	return out
}

// Sum adds all totals.
func (c *CategoryTotals) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, label := range c.order {
		sum = sum.Add(c.totals[label])
	}
	return sum
}

// Summary is the categorized financial summary of one invoice.
type Summary struct {
	Categories     *CategoryTotals
	Surcharges     SurchargeSet
	SurchargeTotal decimal.Decimal
	Tax            decimal.Decimal
	GrandTotal     decimal.Decimal
}

// =============================================================================
// ITEM CODES
// =============================================================================

// NormalizeCode strips leading zeros from a digit string. An all-zero code
// normalizes to "0". NormalizeCode(NormalizeCode(c)) == NormalizeCode(c).
func NormalizeCode(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" && digits != "" {
		return "0"
	}
	return trimmed
}
