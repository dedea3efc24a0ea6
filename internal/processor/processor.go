// =============================================================================
// Auto SYSCO - Invoice Processor
// =============================================================================
//
// This module orchestrates a single run over one invoice document.
//
// PROCESSING PIPELINE:
//   1. Load the reference table (item code -> GL category)
//   2. Extract the document text
//   3. Classify and parse every line
//   4. Summarize by GL description
//   5. Write the console report
//   6. Export the workbook (only when an export directory is configured)
//
// Steps 1 and 2 are the only fatal ones. Anomalies on individual lines are
// logged and never stop the run.
//
// =============================================================================

package processor

import (
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/Allen-Getty99/auto-sysco/internal/aggregate"
	"github.com/Allen-Getty99/auto-sysco/internal/config"
	"github.com/Allen-Getty99/auto-sysco/internal/document"
	"github.com/Allen-Getty99/auto-sysco/internal/extraction"
	"github.com/Allen-Getty99/auto-sysco/internal/reference"
	"github.com/Allen-Getty99/auto-sysco/internal/report"
	"github.com/Allen-Getty99/auto-sysco/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing one document.
type Result struct {
	// RunID identifies the run in logs and in the exported workbook.
	RunID string

	// DocumentPath is the invoice that was processed.
	DocumentPath string

	// OutputFile is the exported workbook. Empty when export is disabled.
	OutputFile string

	// Report holds the extracted items and their summary.
	Report report.Report

	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// ReferenceEntries is the number of item codes in the reference table.
	ReferenceEntries int

	// ReferenceSkipped is the number of reference rows without a digit run.
	ReferenceSkipped int

	// LinesScanned is the number of document text lines.
	LinesScanned int

	// ItemsExtracted counts billable items and special charges.
	ItemsExtracted int

	// Resolved is the number of items whose code was in the reference table.
	Resolved int

	// Unresolved is the number of items with an Unknown category.
	Unresolved int

	ProcessingTime time.Duration
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// Processor runs the pipeline for the configured document.
type Processor struct {
	config *config.MainConfig
	out    io.Writer
	logger *slog.Logger

	// extractText turns the document into lines. Replaced in tests.
	extractText func(path string) ([]string, error)
}

// New creates a Processor that writes its report to out.
// A nil logger uses slog.Default().
func New(cfg *config.MainConfig, out io.Writer, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		config:      cfg,
		out:         out,
		logger:      logger,
		extractText: document.ExtractLines,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the pipeline. The returned error keeps the stack trace of its
// cause for printing with %+v.
func (p *Processor) Run() (*Result, error) {
	startTime := time.Now()
	runID := uuid.New().String()
	logger := p.logger.With("run_id", runID)

	result := &Result{
		RunID:        runID,
		DocumentPath: p.config.DocumentPath,
	}

	// =========================================================================
	// STEP 1: LOAD REFERENCE TABLE
	// =========================================================================

	table, err := reference.Load(p.config.ReferencePath, reference.OptionsFromConfig(p.config, logger))
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "failed to load reference table")
	}

	result.Stats.ReferenceEntries = table.Len()
	result.Stats.ReferenceSkipped = table.Skipped

	// =========================================================================
	// STEP 2: EXTRACT DOCUMENT TEXT
	// =========================================================================

	logger.Info("processing invoice", "path", p.config.DocumentPath)

	lines, err := p.extractText(p.config.DocumentPath)
	if err != nil {
		return nil, pkgerrors.WithMessage(err, "failed to read invoice")
	}

	// =========================================================================
	// STEP 3: CLASSIFY AND PARSE LINES
	// =========================================================================

	extracted := extraction.NewExtractor(table, logger).Extract(lines)

	result.Stats.LinesScanned = extracted.LinesScanned
	result.Stats.ItemsExtracted = len(extracted.Items)
	result.Stats.Resolved = extracted.Resolved()
	result.Stats.Unresolved = extracted.Unresolved()

	if result.Stats.Unresolved > 0 {
		logger.Warn("items without a GL category", "count", result.Stats.Unresolved)
	}

	// =========================================================================
	// STEP 4: SUMMARIZE
	// =========================================================================

	result.Report = report.Report{
		Source:   p.config.DocumentPath,
		RunID:    runID,
		Items:    extracted.Items,
		Summary:  aggregate.Summarize(extracted.Items, extracted.Surcharges, extracted.Tax),
		Currency: p.config.Currency,
	}

	// =========================================================================
	// STEP 5: CONSOLE REPORT
	// =========================================================================

	if err := report.WriteConsole(p.out, result.Report); err != nil {
		return nil, pkgerrors.WithStack(err)
	}

	// =========================================================================
	// STEP 6: WORKBOOK EXPORT
	// =========================================================================

	if p.config.ExportDir != "" {
		outputPath, err := p.export(result.Report, runID)
		if err != nil {
			return nil, err
		}
		result.OutputFile = outputPath
		logger.Info("wrote workbook", "path", outputPath)
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Stats.ProcessingTime = time.Since(startTime)

	logger.Info("run complete",
		"items", result.Stats.ItemsExtracted,
		"resolved", result.Stats.Resolved,
		"unresolved", result.Stats.Unresolved,
		"grand_total", result.Report.Summary.GrandTotal.StringFixed(2),
		"duration", result.Stats.ProcessingTime,
	)

	return result, nil
}

// export writes the workbook into the export directory.
func (p *Processor) export(r report.Report, runID string) (string, error) {
	if err := utils.EnsureDir(p.config.ExportDir); err != nil {
		return "", pkgerrors.WithStack(err)
	}

	fileName := utils.GenerateOutputFileName(p.config.OutputNameFormat, map[string]string{
		"invoice": utils.BaseName(p.config.DocumentPath),
		"uuid":    runID,
	}, ".xlsx")
	outputPath := filepath.Join(p.config.ExportDir, fileName)

	if err := report.ExportWorkbook(outputPath, r); err != nil {
		return "", pkgerrors.Wrap(err, "failed to export workbook")
	}

	return outputPath, nil
}
