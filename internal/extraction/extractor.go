// =============================================================================
// Auto SYSCO - Invoice Line Extraction
// =============================================================================
//
// This module classifies the text lines of an invoice and parses the ones it
// recognizes. Every rule is evaluated on every line and all matching rules
// fire, in this order:
//
//   1. Billable item   : a 7-digit item code at the start of the line.
//   2. Bottle deposit  : "BOTTLE DEPOSIT <amount>", not on a TOTAL line.
//   3. Recycling fee   : "RECYCLING FEE <amount>", not on a TOTAL line.
//   4. Surcharges      : "BSTPZ Fuel", "BSTPZ Delivery Size" and
//                        "BSTPZ Credit Terms". Last amount on the line.
//   5. Tax             : "GST/HST TOTAL" or "GST/HST:". Last amount.
//
// Rules are pure functions of a single line. Their candidates are folded into
// a Result in document order, so surcharges and tax keep the last value seen.
//
// Lines that look like a match but cannot be used are skipped and logged at
// debug level. Extraction itself never fails.
//
// =============================================================================

package extraction

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Allen-Getty99/auto-sysco/internal/types"
)

// Lookup resolves a normalized item code to its category.
type Lookup interface {
	Lookup(code string) (types.Category, bool)
}

// Result is everything extracted from one document.
type Result struct {
	// Items are billable items and special charges in document order.
	Items []types.LineItem

	Surcharges types.SurchargeSet
	Tax        decimal.Decimal

	// LinesScanned is the number of input lines.
	LinesScanned int
}

// Resolved counts items whose category was found in the reference table.
func (r *Result) Resolved() int {
	return r.count(types.ResolutionResolved)
}

// Unresolved counts items that fell back to the Unknown category.
func (r *Result) Unresolved() int {
	return r.count(types.ResolutionUnresolved)
}

func (r *Result) count(res types.Resolution) int {
	n := 0
	for _, item := range r.Items {
		if item.Resolution == res {
			n++
		}
	}
	return n
}

// Extractor applies the line rules to document text.
// An Extractor is not safe for concurrent use.
type Extractor struct {
	scanner *markerScanner
	rules   []rule
	logger  *slog.Logger
}

// NewExtractor returns an extractor resolving item codes through lookup.
// A nil lookup resolves nothing. A nil logger uses slog.Default().
func NewExtractor(lookup Lookup, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Extractor{
		scanner: newMarkerScanner(),
		rules: []rule{
			itemRule(lookup),
			specialChargeRule(markerBottleDeposit, bottleDepositPattern, types.KindBottleDeposit, types.BottleDepositTag, "BOTTLE DEPOSIT"),
			specialChargeRule(markerRecyclingFee, recyclingFeePattern, types.KindRecyclingFee, types.RecyclingFeeTag, "RECYCLING FEE"),
			surchargeRule(markerFuel, surchargeFuel),
			surchargeRule(markerDeliverySize, surchargeDeliverySize),
			surchargeRule(markerCreditTerms, surchargeCreditTerms),
			taxRule,
		},
		logger: logger,
	}
}

// Extract runs every rule over every line.
func (e *Extractor) Extract(lines []string) *Result {
	result := &Result{
		Surcharges: types.SurchargeSet{
			Fuel:         decimal.Zero,
			DeliverySize: decimal.Zero,
			CreditTerms:  decimal.Zero,
		},
		Tax:          decimal.Zero,
		LinesScanned: len(lines),
	}

	for i, text := range lines {
		e.classify(line{number: i + 1, text: text, markers: e.scanner.scan(text)}, result)
	}

	e.logger.Debug("extraction finished",
		"lines", result.LinesScanned,
		"items", len(result.Items),
		"unresolved", result.Unresolved(),
		"tax", result.Tax.String(),
	)

	return result
}

func (e *Extractor) classify(l line, result *Result) {
	for _, r := range e.rules {
		c, err := r(l)
		if err != nil {
			e.logger.Debug("line skipped", "line", l.number, "text", l.text, "reason", err)
			continue
		}
		if c == nil {
			continue
		}
		c.apply(result)
		e.logCandidate(l, c)
	}
}

func (e *Extractor) logCandidate(l line, c candidate) {
	switch c := c.(type) {
	case itemCandidate:
		e.logger.Debug("item extracted",
			"line", l.number,
			"code", c.item.RawCode,
			"qty", c.item.Quantity.String(),
			"price", c.item.UnitPrice.String(),
			"total", c.item.LineTotal.String(),
			"gl_code", c.item.Category.Code,
			"gl_description", c.item.Category.Label,
			"resolution", c.item.Resolution.String(),
		)
	case surchargeCandidate:
		e.logger.Debug("surcharge found", "line", l.number, "amount", c.amount.String())
	case taxCandidate:
		e.logger.Debug("tax found", "line", l.number, "amount", c.amount.String())
	}
}
