package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Allen-Getty99/auto-sysco/internal/types"
)

// Sheet names of the exported workbook.
const (
	ItemsSheet   = "Items"
	SummarySheet = "Summary"
)

var itemHeaders = []any{"Item Code", "Qty", "Price", "Total", "GL Code", "GL Description", "Description", "Source Line"}

// ExportWorkbook writes the report to an xlsx file at path.
func ExportWorkbook(path string, r Report) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:     "auto-sysco",
		Title:       r.Source,
		Identifier:  r.RunID,
		Description: "Categorized SYSCO invoice summary",
	}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	if err := f.SetSheetName("Sheet1", ItemsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}
	if err := writeItems(f, r.Items, styles); err != nil {
		return err
	}
	if err := writeSummary(f, r.Summary, styles); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header int
	number int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	if err != nil {
		return sheetStyles{}, fmt.Errorf("failed to create header style: %w", err)
	}

	number, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return sheetStyles{}, fmt.Errorf("failed to create number style: %w", err)
	}

	return sheetStyles{header: header, number: number}, nil
}

func writeItems(f *excelize.File, items []types.LineItem, styles sheetStyles) error {
	if err := f.SetSheetRow(ItemsSheet, "A1", &itemHeaders); err != nil {
		return fmt.Errorf("failed to write item headers: %w", err)
	}

	for i, item := range items {
		row := []any{
			item.RawCode,
			item.Quantity.InexactFloat64(),
			item.UnitPrice.InexactFloat64(),
			item.LineTotal.InexactFloat64(),
			item.Category.Code,
			item.Category.Label,
			item.Description,
			item.SourceLine,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address item row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(ItemsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write item row %d: %w", i+1, err)
		}
	}

	if err := f.SetCellStyle(ItemsSheet, "A1", "H1", styles.header); err != nil {
		return fmt.Errorf("failed to style item header: %w", err)
	}
	if len(items) > 0 {
		if err := f.SetCellStyle(ItemsSheet, "B2", fmt.Sprintf("D%d", len(items)+1), styles.number); err != nil {
			return fmt.Errorf("failed to style item amounts: %w", err)
		}
	}
	if err := setColWidths(f, ItemsSheet, []colWidth{{"A", "A", 12}, {"B", "E", 14}, {"F", "G", 30}}); err != nil {
		return err
	}
	if err := f.SetPanes(ItemsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze item header: %w", err)
	}

	return nil
}

func writeSummary(f *excelize.File, s types.Summary, styles sheetStyles) error {
	rows := [][]any{{"GL Description", "Total"}}
	if s.Categories != nil {
		for _, entry := range s.Categories.Entries() {
			rows = append(rows, []any{entry.Name, entry.Amount.Round(2).InexactFloat64()})
		}
	}
	for _, entry := range s.Surcharges.Entries() {
		rows = append(rows, []any{entry.Name, entry.Amount.Round(2).InexactFloat64()})
	}
	rows = append(rows,
		[]any{"BSTPZ total", s.SurchargeTotal.Round(2).InexactFloat64()},
		[]any{"GST/HST", s.Tax.Round(2).InexactFloat64()},
		[]any{"Grand Total", s.GrandTotal.Round(2).InexactFloat64()},
	)

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address summary row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	if err := f.SetCellStyle(SummarySheet, "A1", "B1", styles.header); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}
	if err := f.SetCellStyle(SummarySheet, "B2", fmt.Sprintf("B%d", len(rows)), styles.number); err != nil {
		return fmt.Errorf("failed to style summary amounts: %w", err)
	}
	return setColWidths(f, SummarySheet, []colWidth{{"A", "A", 30}, {"B", "B", 14}})
}

type colWidth struct {
	start, end string
	width      float64
}

func setColWidths(f *excelize.File, sheet string, widths []colWidth) error {
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.start, w.end, w.width); err != nil {
			return fmt.Errorf("failed to set %s column width %s:%s: %w", sheet, w.start, w.end, err)
		}
	}
	return nil
}
