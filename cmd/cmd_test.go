package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Allen-Getty99/auto-sysco/internal/common"
)

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		cfgFile, verbose = "", false
		documentPath, referencePath, exportDir = "", "", ""
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeConfig creates a reference workbook, an invoice and a config file
// pointing at both.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Item Code", "GL Code", "GL Description"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"0012345", "600120", "COFFEE"}))
	refPath := filepath.Join(dir, "reference.xlsx")
	require.NoError(t, f.SaveAs(refPath))

	docPath := filepath.Join(dir, "invoice.txt")
	require.NoError(t, os.WriteFile(docPath, []byte("0012345 1 2 CS Coffee 10.00 20.00\nGST/HST: 1.00\n"), 0o644))

	cfgPath := filepath.Join(dir, "config.yaml")
	content := "document_path: " + docPath + "\nreference_path: " + refPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath
}

func TestRootCommand(t *testing.T) {
	cfgPath := writeConfig(t)

	stdout, stderr, err := execute(t, "whatever.pdf\n", "--config", cfgPath, "--verbose")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, invoicePrompt))
	assert.Contains(t, stdout, "--- Item Table (Original Order) ---")
	assert.Contains(t, stdout, "Grand Total: $21.00")
	assert.Contains(t, stderr, "invoice filename entered")
	assert.Contains(t, stderr, "answer=whatever.pdf")
}

func TestRootCommandEmptyInput(t *testing.T) {
	cfgPath := writeConfig(t)

	stdout, _, err := execute(t, "", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Grand Total: $21.00")
}

func TestProcessCommand(t *testing.T) {
	cfgPath := writeConfig(t)

	t.Run("export dir flag", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		stdout, _, err := execute(t, "", "process", "--config", cfgPath, "--export-dir", dir)
		require.NoError(t, err)
		assert.NotContains(t, stdout, invoicePrompt)

		matches, err := filepath.Glob(filepath.Join(dir, "invoice_*.xlsx"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("missing document", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.pdf")
		_, _, err := execute(t, "", "process", "--config", cfgPath, "--document", missing)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrDocumentRead))
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Auto SYSCO")
	assert.Contains(t, stdout, "Version:    "+Version)
}
