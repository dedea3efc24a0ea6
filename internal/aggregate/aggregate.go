// Package aggregate folds extracted line items into a categorized summary.
//
// Totals are accumulated at full precision. Rounding is left to the report.
package aggregate

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/Allen-Getty99/auto-sysco/internal/types"
)

// mergedLabels are the spellings that fold into the special charge label.
var mergedLabels = []string{types.SpecialChargeCategoryLabel, "NA Bev"}

var mergedFolded = func() map[string]struct{} {
	m := make(map[string]struct{}, len(mergedLabels))
	for _, label := range mergedLabels {
		m[fold(label)] = struct{}{}
	}
	return m
}()

// fold returns the case-folded form of s. A Caser holds state, so each call
// gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// CanonicalLabel maps any case variant of "N/A Bev" or "NA Bev" to
// "N/A Bev". Other labels are returned unchanged.
func CanonicalLabel(label string) string {
	if _, ok := mergedFolded[fold(label)]; ok {
		return types.SpecialChargeCategoryLabel
	}
	return label
}

// Totals sums line totals by category label in first-occurrence order.
func Totals(items []types.LineItem) *types.CategoryTotals {
	totals := types.NewCategoryTotals()
	for _, item := range items {
		totals.Add(item.Category.Label, item.LineTotal)
	}
	return totals
}

// Canonicalize merges label variants into their canonical label. A merged
// group takes the position of its first member. Canonicalize is idempotent.
func Canonicalize(totals *types.CategoryTotals) *types.CategoryTotals {
	out := types.NewCategoryTotals()
	for _, entry := range totals.Entries() {
		out.Add(CanonicalLabel(entry.Name), entry.Amount)
	}
	return out
}

// Summarize builds the invoice summary. The grand total is the sum of the
// canonical category totals, the surcharges and the tax.
func Summarize(items []types.LineItem, surcharges types.SurchargeSet, tax decimal.Decimal) types.Summary {
	categories := Canonicalize(Totals(items))
	surchargeTotal := surcharges.Total()

	return types.Summary{
		Categories:     categories,
		Surcharges:     surcharges,
		SurchargeTotal: surchargeTotal,
		Tax:            tax,
		GrandTotal:     categories.Sum().Add(surchargeTotal).Add(tax),
	}
}
