package processor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Allen-Getty99/auto-sysco/internal/common"
	"github.com/Allen-Getty99/auto-sysco/internal/config"
	"github.com/Allen-Getty99/auto-sysco/internal/report"
)

const invoiceText = "SYSCO FOOD SERVICES\n" +
	"0012345 1 2 CS Colombian Coffee 10.00 20.00\n" +
	"0054321 1 1 CS Cola 12PK 6.00 6.00\n" +
	"0099999 1 1 EA Mystery Item 3.00 3.00\n" +
	"BOTTLE DEPOSIT 0.60\n" +
	"BSTPZ Fuel 5.00\n" +
	"BSTPZ Fuel 7.50\n" +
	"BOTTLE DEPOSIT TOTAL 0.60\n" +
	"GST/HST TOTAL 1.30\n"

// fixture writes a reference workbook and an invoice text file.
func fixture(t *testing.T) *config.MainConfig {
	t.Helper()
	dir := t.TempDir()

	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{
		{"Item Code", "GL Code", "GL Description"},
		{"0012345", "600120", "COFFEE"},
		{"54321", "600265", "N/A BEV"},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	refPath := filepath.Join(dir, "SYSCO_DATABASE.xlsx")
	require.NoError(t, f.SaveAs(refPath))

	docPath := filepath.Join(dir, "FY25 P8 SYSCO 2576717751.txt")
	require.NoError(t, os.WriteFile(docPath, []byte(invoiceText), 0o644))

	cfg := config.Default()
	cfg.DocumentPath = docPath
	cfg.ReferencePath = refPath
	return cfg
}

func TestRun(t *testing.T) {
	cfg := fixture(t)

	var out bytes.Buffer
	result, err := New(cfg, &out, nil).Run()
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Empty(t, result.OutputFile)
	assert.Equal(t, 2, result.Stats.ReferenceEntries)
	assert.Equal(t, 9, result.Stats.LinesScanned)
	assert.Equal(t, 4, result.Stats.ItemsExtracted)
	assert.Equal(t, 2, result.Stats.Resolved)
	assert.Equal(t, 1, result.Stats.Unresolved)

	summary := result.Report.Summary
	require.Equal(t, 3, summary.Categories.Len())

	bev, ok := summary.Categories.Get("N/A Bev")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("6.60").Equal(bev), "N/A BEV and deposit merge, got %s", bev)

	assert.True(t, decimal.RequireFromString("7.50").Equal(summary.Surcharges.Fuel))
	assert.True(t, decimal.RequireFromString("1.30").Equal(summary.Tax))
	assert.True(t, decimal.RequireFromString("38.40").Equal(summary.GrandTotal))

	text := out.String()
	assert.Contains(t, text, "0012345     2.00      10.00          20.00          600120         COFFEE\n")
	assert.Contains(t, text, "N/A Bev: 6.60\n")
	assert.Contains(t, text, "Unknown: 3.00\n")
	assert.Contains(t, text, "BSTPZ total: 7.50\n")
	assert.Contains(t, text, "Grand Total: $38.40\n")
}

func TestRunExport(t *testing.T) {
	cfg := fixture(t)
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")
	cfg.OutputNameFormat = "{invoice}_{uuid}"

	result, err := New(cfg, &bytes.Buffer{}, nil).Run()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.ExportDir, "FY25 P8 SYSCO 2576717751_"+result.RunID+".xlsx"), result.OutputFile)

	f, err := excelize.OpenFile(result.OutputFile)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.ItemsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestRunWithInjectedText(t *testing.T) {
	cfg := fixture(t)

	p := New(cfg, &bytes.Buffer{}, nil)
	p.extractText = func(string) ([]string, error) {
		return []string{"0012345 1 1 EA Coffee 0.00 0.00", "GST/HST: 0.65"}, nil
	}

	result, err := p.Run()
	require.NoError(t, err)

	require.Len(t, result.Report.Items, 1)
	assert.True(t, result.Report.Items[0].Quantity.IsZero())
	assert.True(t, decimal.RequireFromString("0.65").Equal(result.Report.Summary.GrandTotal))
}

func TestRunFailures(t *testing.T) {
	t.Run("missing reference table", func(t *testing.T) {
		cfg := fixture(t)
		cfg.ReferencePath = filepath.Join(t.TempDir(), "missing.xlsx")

		var out bytes.Buffer
		result, err := New(cfg, &out, nil).Run()
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, common.ErrDataSource))
		assert.Empty(t, out.String(), "no partial report")
	})

	t.Run("missing document", func(t *testing.T) {
		cfg := fixture(t)
		cfg.DocumentPath = filepath.Join(t.TempDir(), "missing.pdf")

		var out bytes.Buffer
		result, err := New(cfg, &out, nil).Run()
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, common.ErrDocumentRead))

		var docErr *common.DocumentReadError
		require.True(t, errors.As(err, &docErr))
		assert.Equal(t, cfg.DocumentPath, docErr.Path)
		assert.Empty(t, out.String())
	})
}
