// =============================================================================
// Auto SYSCO - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Running the root
// command without a subcommand processes the configured invoice, exactly
// like the interactive tool it replaces:
//
// COBRA CLI STRUCTURE:
//   rootCmd (auto-sysco)      prompt for the invoice name, then process
//   ├── processCmd            process without prompting, flags override config
//   └── versionCmd            print version information
//
// The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration
//   3. Setting up logging
//   4. Printing fatal errors with their stack trace
//
// =============================================================================

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Allen-Getty99/auto-sysco/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// Empty means config.yaml in the working directory, if present.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// invoicePrompt is shown before processing.
const invoicePrompt = "Enter invoice filename: "

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "auto-sysco",
	Short: "Auto SYSCO - categorize SYSCO invoice lines by GL code",
	Long: `Auto SYSCO reads a SYSCO invoice, matches every item code against a
reference workbook of GL codes, and prints a categorized summary with the
BSTPZ surcharges, GST/HST and the grand total.

Example Usage:
  auto-sysco                          # Prompt, then process the configured invoice
  auto-sysco --config ./p9.yaml       # Use a custom configuration file
  auto-sysco process --document x.pdf # Process a specific invoice without prompting`,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		answer, err := prompt(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		logger.Debug("invoice filename entered", "answer", answer, "using", cfg.DocumentPath)

		return runProcess(cmd.OutOrStdout(), cfg, logger)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is config.yaml, if present)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// setup loads the configuration and installs the logger.
func setup(cmd *cobra.Command) (*config.MainConfig, *slog.Logger, error) {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	logger := newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)

	return cfg, logger, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// prompt asks for the invoice file name. End of input is an empty answer.
func prompt(in io.Reader, out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, invoicePrompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read invoice filename: %w", err)
	}
	return strings.TrimSpace(line), nil
}
