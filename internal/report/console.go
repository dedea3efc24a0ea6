// =============================================================================
// Auto SYSCO - Invoice Report
// =============================================================================
//
// This module renders the result of one run. The console report has four
// sections:
//
//   --- Item Table (Original Order) ---   every line item, extraction order
//   --- GL Description Summary ---        total per GL description
//   --- BSTPZ Summary ---                 the three surcharges and their sum
//   GST/HST and Grand Total
//
// Amounts are rounded to two places here and nowhere else. The grand total is
// formatted in the configured currency.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/Allen-Getty99/auto-sysco/internal/types"
)

// FallbackCurrency is used when a report names an unknown currency.
const FallbackCurrency = money.CAD

const (
	itemRowFormat = "%-12s%-10s%-15s%-15s%-15s%s\n"
	ruleWidth     = 85
)

// Report is everything needed to render one invoice.
type Report struct {
	// Source is the document the items were extracted from.
	Source string

	// RunID identifies the run that produced the report.
	RunID string

	Items    []types.LineItem
	Summary  types.Summary
	Currency string
}

// WriteConsole writes the plain text report to w.
func WriteConsole(w io.Writer, r Report) error {
	var b strings.Builder

	b.WriteString("\n--- Item Table (Original Order) ---\n")
	fmt.Fprintf(&b, itemRowFormat, "Item Code", "Qty", "Price", "Total", "GL Code", "GL Description")
	b.WriteString(strings.Repeat("-", ruleWidth))
	b.WriteByte('\n')
	for _, item := range r.Items {
		fmt.Fprintf(&b, itemRowFormat,
			item.RawCode,
			amount(item.Quantity),
			amount(item.UnitPrice),
			amount(item.LineTotal),
			item.Category.Code,
			item.Category.Label,
		)
	}

	b.WriteString("\n--- GL Description Summary ---\n")
	if r.Summary.Categories != nil {
		for _, entry := range r.Summary.Categories.Entries() {
			fmt.Fprintf(&b, "%s: %s\n", entry.Name, amount(entry.Amount))
		}
	}

	b.WriteString("\n--- BSTPZ Summary ---\n")
	for _, entry := range r.Summary.Surcharges.Entries() {
		fmt.Fprintf(&b, "%s: %s\n", entry.Name, amount(entry.Amount))
	}
	fmt.Fprintf(&b, "BSTPZ total: %s\n", amount(r.Summary.SurchargeTotal))

	fmt.Fprintf(&b, "\nGST/HST: %s\n", amount(r.Summary.Tax))
	fmt.Fprintf(&b, "\nGrand Total: %s\n", FormatMoney(r.Summary.GrandTotal, r.Currency))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// FormatMoney formats amount in the given ISO 4217 currency without digit
// grouping, for example "$1234.50" for CAD.
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(FallbackCurrency)
	}

	minor := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	formatter := money.NewFormatter(currency.Fraction, currency.Decimal, "", currency.Grapheme, currency.Template)
	return formatter.Format(minor)
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
