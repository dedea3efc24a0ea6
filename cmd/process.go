// =============================================================================
// Auto SYSCO - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the pipeline without
// prompting. Flags override the configuration file.
//
// COMMAND USAGE:
//   auto-sysco process [flags]
//
// FLAGS:
//   --document    : invoice to process (.pdf or pre-extracted .txt)
//   --reference   : reference workbook or CSV
//   --export-dir  : also write the summary workbook into this directory
//
// =============================================================================

package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Allen-Getty99/auto-sysco/internal/config"
	"github.com/Allen-Getty99/auto-sysco/internal/processor"
	"github.com/Allen-Getty99/auto-sysco/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	documentPath  string
	referencePath string
	exportDir     string
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process an invoice without prompting",
	Long: `The process command loads the reference table, extracts the invoice
lines, and prints the item table and the GL, BSTPZ and GST/HST summaries.

When an export directory is configured the same report is written to an
.xlsx workbook with an Items and a Summary sheet.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		applyFlagOverrides(cfg)

		return runProcess(cmd.OutOrStdout(), cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&documentPath, "document", "", "Invoice to process (overrides document_path)")
	processCmd.Flags().StringVar(&referencePath, "reference", "", "Reference table (overrides reference_path)")
	processCmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for the summary workbook (overrides export_dir)")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess runs one invoice through the pipeline.
func runProcess(out io.Writer, cfg *config.MainConfig, logger *slog.Logger) error {
	if !utils.FileExists(cfg.DocumentPath) {
		logger.Warn("invoice not found, extraction will fail", "path", cfg.DocumentPath)
	}

	_, err := processor.New(cfg, out, logger).Run()
	return err
}

func applyFlagOverrides(cfg *config.MainConfig) {
	if documentPath != "" {
		cfg.DocumentPath = documentPath
	}
	if referencePath != "" {
		cfg.ReferencePath = referencePath
	}
	if exportDir != "" {
		cfg.ExportDir = exportDir
	}
}
