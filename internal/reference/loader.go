// =============================================================================
// Auto SYSCO - Reference Loader
// =============================================================================
//
// This module builds the in-memory lookup from item code to GL category.
// The reference data is a table with (at least) three named columns:
//
//   | Item Code | GL Code | GL Description |
//   |-----------|---------|----------------|
//   | 0012345   | 600120  | COFFEE         |
//   | #998877   | 600265  | N/A Bev        |
//
// LOADING RULES:
//   - Header names are trimmed before they are matched.
//   - The first run of digits in the item-code cell is the code; rows with no
//     digits are skipped.
//   - Codes are normalized (leading zeros stripped) so they match the codes
//     printed on invoices.
//   - A later row with the same normalized code replaces an earlier one.
//   - Any failure to open or parse the table is a DataSourceError.
//
// =============================================================================

package reference

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Allen-Getty99/auto-sysco/internal/common"
	"github.com/Allen-Getty99/auto-sysco/internal/config"
	"github.com/Allen-Getty99/auto-sysco/internal/types"
)

// digitRun finds the item code inside a possibly decorated cell.
var digitRun = regexp.MustCompile(`\d+`)

// =============================================================================
// OPTIONS
// =============================================================================

// Options selects the sheet and columns to read.
type Options struct {
	// Sheet is the worksheet name for workbook sources.
	Sheet string

	ItemCodeColumn      string
	CategoryCodeColumn  string
	CategoryLabelColumn string

	Logger *slog.Logger
}

func defaultOptions() Options {
	return Options{
		Sheet:               config.DefaultReferenceSheet,
		ItemCodeColumn:      config.DefaultItemCodeColumn,
		CategoryCodeColumn:  config.DefaultCategoryCodeColumn,
		CategoryLabelColumn: config.DefaultCategoryLabelColumn,
	}
}

// withDefaults fills blank sheet and column names from the default configuration.
func (o Options) withDefaults() Options {
	def := defaultOptions()
	if strings.TrimSpace(o.Sheet) == "" {
		o.Sheet = def.Sheet
	}
	if strings.TrimSpace(o.ItemCodeColumn) == "" {
		o.ItemCodeColumn = def.ItemCodeColumn
	}
	if strings.TrimSpace(o.CategoryCodeColumn) == "" {
		o.CategoryCodeColumn = def.CategoryCodeColumn
	}
	if strings.TrimSpace(o.CategoryLabelColumn) == "" {
		o.CategoryLabelColumn = def.CategoryLabelColumn
	}
	return o
}

// OptionsFromConfig builds Options from the main configuration.
func OptionsFromConfig(cfg *config.MainConfig, logger *slog.Logger) Options {
	return Options{
		Sheet:               cfg.ReferenceSheet,
		ItemCodeColumn:      cfg.Columns.ItemCode,
		CategoryCodeColumn:  cfg.Columns.CategoryCode,
		CategoryLabelColumn: cfg.Columns.CategoryLabel,
		Logger:              logger,
	}
}

// =============================================================================
// TABLE
// =============================================================================

// Table maps normalized item codes to categories. It is read-only after Load.
type Table struct {
	entries map[string]types.Category

	// Source is the path the table was loaded from.
	Source string

	// Skipped counts rows without any digits in the item-code cell.
	Skipped int
}

// Lookup returns the category for a normalized item code.
func (t *Table) Lookup(code string) (types.Category, bool) {
	if t == nil {
		return types.Category{}, false
	}
	c, ok := t.entries[code]
	return c, ok
}

// Len is the number of distinct item codes.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the reference table at path. Workbooks (.xlsx, .xlsm) and CSV
// files are supported. Blank option fields take the default configuration.
func Load(path string, opts Options) (*Table, error) {
	opts = opts.withDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("loading reference data", slog.String("path", path))

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		rows, err = readWorkbook(path, opts.Sheet)
	default:
		err = fmt.Errorf("unsupported reference file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, common.NewDataSourceError(path, err)
	}

	table, err := build(rows, opts)
	if err != nil {
		return nil, common.NewDataSourceError(path, err)
	}
	table.Source = path

	logger.Info("loaded reference data",
		slog.String("path", path),
		slog.Int("items", table.Len()),
		slog.Int("skipped_rows", table.Skipped),
	)

	return table, nil
}

// columnIndex holds the positions of the three required columns.
type columnIndex struct {
	itemCode, categoryCode, categoryLabel int
}

// build turns raw rows (header first) into a Table.
func build(rows [][]string, opts Options) (*Table, error) {
	headerRow := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, fmt.Errorf("reference table has no header row")
	}

	cols, err := locateColumns(rows[headerRow], opts)
	if err != nil {
		return nil, err
	}

	table := &Table{entries: make(map[string]types.Category)}
	for _, row := range rows[headerRow+1:] {
		if isRowEmpty(row) {
			continue
		}

		digits := digitRun.FindString(cell(row, cols.itemCode))
		if digits == "" {
			table.Skipped++
			continue
		}

		table.entries[types.NormalizeCode(digits)] = types.Category{
			Code:  cell(row, cols.categoryCode),
			Label: cell(row, cols.categoryLabel),
		}
	}

	return table, nil
}

// locateColumns matches trimmed header names against the configured names.
func locateColumns(header []string, opts Options) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	find := func(name string) (int, error) {
		idx, ok := positions[strings.TrimSpace(name)]
		if !ok {
			return 0, fmt.Errorf("reference table is missing column %q", strings.TrimSpace(name))
		}
		return idx, nil
	}

	var (
		cols columnIndex
		err  error
	)
	if cols.itemCode, err = find(opts.ItemCodeColumn); err != nil {
		return cols, err
	}
	if cols.categoryCode, err = find(opts.CategoryCodeColumn); err != nil {
		return cols, err
	}
	if cols.categoryLabel, err = find(opts.CategoryLabelColumn); err != nil {
		return cols, err
	}
	return cols, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// cell returns the trimmed value at index, or "" for short rows.
func cell(row []string, index int) string {
	if index < len(row) {
		return strings.TrimSpace(row[index])
	}
	return ""
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
