package extraction

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/Allen-Getty99/auto-sysco/internal/types"
)

var (
	itemCodePattern      = regexp.MustCompile(`^\s*(\d{7})\s+`)
	decimalPattern       = regexp.MustCompile(`\d+\.\d+`)
	descriptionPattern   = regexp.MustCompile(`\d{7}\s+\d+\s+\d+\s+\S+\s+(.+?)\s+\d+\.\d+\s+\d+\.\d+`)
	bottleDepositPattern = regexp.MustCompile(`BOTTLE DEPOSIT\s+(\d+\.\d{2})`)
	recyclingFeePattern  = regexp.MustCompile(`RECYCLING FEE\s+(\d+\.\d{2})`)
)

// line is one document line as seen by the rules.
type line struct {
	number  int
	text    string
	markers markerSet
}

// candidate is what a rule contributes for one line.
type candidate interface {
	apply(r *Result)
}

type itemCandidate struct{ item types.LineItem }

func (c itemCandidate) apply(r *Result) { r.Items = append(r.Items, c.item) }

type surchargeField uint8

const (
	surchargeFuel surchargeField = iota
	surchargeDeliverySize
	surchargeCreditTerms
)

type surchargeCandidate struct {
	field  surchargeField
	amount decimal.Decimal
}

func (c surchargeCandidate) apply(r *Result) {
	switch c.field {
	case surchargeFuel:
		r.Surcharges.Fuel = c.amount
	case surchargeDeliverySize:
		r.Surcharges.DeliverySize = c.amount
	case surchargeCreditTerms:
		r.Surcharges.CreditTerms = c.amount
	}
}

type taxCandidate struct{ amount decimal.Decimal }

func (c taxCandidate) apply(r *Result) { r.Tax = c.amount }

// errTooFewNumbers marks an item line without both a price and a total.
var errTooFewNumbers = errors.New("item line has fewer than two decimal numbers")

// rule inspects one line and returns at most one candidate. A nil candidate
// with a nil error means the rule does not apply. An error means the line
// looked like a match but could not be used.
type rule func(l line) (candidate, error)

// itemRule recognizes billable item lines and resolves their category.
func itemRule(lookup Lookup) rule {
	return func(l line) (candidate, error) {
		m := itemCodePattern.FindStringSubmatch(l.text)
		if m == nil {
			return nil, nil
		}

		numbers := decimals(l.text)
		if len(numbers) < 2 {
			return nil, errTooFewNumbers
		}
		price := numbers[len(numbers)-2]
		total := numbers[len(numbers)-1]

		item := types.LineItem{
			Kind:           types.KindItem,
			RawCode:        m[1],
			NormalizedCode: types.NormalizeCode(m[1]),
			Quantity:       types.Quantity(price, total),
			UnitPrice:      price,
			LineTotal:      total,
			Description:    description(l.text),
			SourceLine:     l.number,
		}

		if category, ok := lookupCategory(lookup, item.NormalizedCode); ok {
			item.Category = category
			item.Resolution = types.ResolutionResolved
		} else {
			item.Category = types.Unknown()
			item.Resolution = types.ResolutionUnresolved
		}

		return itemCandidate{item: item}, nil
	}
}

func lookupCategory(lookup Lookup, code string) (types.Category, bool) {
	if lookup == nil {
		return types.Category{}, false
	}
	return lookup.Lookup(code)
}

// specialChargeRule recognizes a bottle deposit or recycling fee line.
// Lines that also carry TOTAL are invoice totals, not charges.
func specialChargeRule(m marker, pattern *regexp.Regexp, kind types.ItemKind, tag, name string) rule {
	return func(l line) (candidate, error) {
		if !l.markers.has(m) || l.markers.has(markerTotal) {
			return nil, nil
		}

		match := pattern.FindStringSubmatch(l.text)
		if match == nil {
			return nil, fmt.Errorf("no amount after %q", markerPhrases[m])
		}
		amount, err := decimal.NewFromString(match[1])
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", match[1], err)
		}

		return itemCandidate{item: types.LineItem{
			Kind:        kind,
			RawCode:     tag,
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   amount,
			LineTotal:   amount,
			Category:    types.SpecialChargeCategory(),
			Resolution:  types.ResolutionNone,
			Description: name + " " + amount.StringFixed(2),
			SourceLine:  l.number,
		}}, nil
	}
}

// surchargeRule takes the last decimal on a line carrying the marker.
func surchargeRule(m marker, field surchargeField) rule {
	return func(l line) (candidate, error) {
		if !l.markers.has(m) {
			return nil, nil
		}
		amount, ok := lastDecimal(l.text)
		if !ok {
			return nil, fmt.Errorf("no amount after %q", markerPhrases[m])
		}
		return surchargeCandidate{field: field, amount: amount}, nil
	}
}

// taxRule takes the last decimal on a GST/HST total line.
func taxRule(l line) (candidate, error) {
	if !l.markers.has(markerTaxTotal) && !l.markers.has(markerTaxColon) {
		return nil, nil
	}
	amount, ok := lastDecimal(l.text)
	if !ok {
		return nil, errors.New("no amount on GST/HST line")
	}
	return taxCandidate{amount: amount}, nil
}

// decimals returns every decimal number on the line, left to right.
func decimals(text string) []decimal.Decimal {
	var out []decimal.Decimal
	for _, s := range decimalPattern.FindAllString(text, -1) {
		d, err := decimal.NewFromString(s)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

func lastDecimal(text string) (decimal.Decimal, bool) {
	numbers := decimals(text)
	if len(numbers) == 0 {
		return decimal.Zero, false
	}
	return numbers[len(numbers)-1], true
}

func description(text string) string {
	if m := descriptionPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
