// =============================================================================
// Auto SYSCO - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Every setting has a
// compiled-in default, so the tool runs without any configuration file:
//
//   document_path   : the invoice PDF (or pre-extracted .txt) to process
//   reference_path  : the item code -> GL category workbook (.xlsx or .csv)
//
// A YAML file may override any of the defaults. The default file path
// (config.yaml) is optional; an explicitly requested file must exist.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"gopkg.in/yaml.v3"

	"github.com/Allen-Getty99/auto-sysco/pkg/utils"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultDocumentPath is the invoice processed when nothing else is configured.
	DefaultDocumentPath = "FY25 P8 SYSCO 2576717751.pdf"

	// DefaultReferencePath is the GL mapping workbook.
	DefaultReferencePath = "SYSCO_DATABASE.xlsx"

	DefaultReferenceSheet = "Sheet1"

	DefaultItemCodeColumn      = "Item Code"
	DefaultCategoryCodeColumn  = "GL Code"
	DefaultCategoryLabelColumn = "GL Description"

	DefaultCurrency         = "CAD"
	DefaultOutputNameFormat = "{invoice}_{timestamp}.xlsx"
	DefaultLogLevel         = "info"

	// DefaultConfigFile is looked up in the working directory. It is optional.
	DefaultConfigFile = "config.yaml"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// DocumentPath is the invoice document to process.
	// Files ending in .txt are treated as already-extracted text.
	DocumentPath string `yaml:"document_path"`

	// ReferencePath is the tabular reference data (.xlsx, .xlsm or .csv).
	ReferencePath string `yaml:"reference_path"`

	// ReferenceSheet is the worksheet read from workbook reference data.
	// Ignored for CSV files.
	ReferenceSheet string `yaml:"reference_sheet"`

	// Columns names the reference table headers. Headers in the file are
	// trimmed before they are compared with these names.
	Columns ColumnNames `yaml:"columns"`

	// Currency is the ISO-4217 code used to display the grand total.
	Currency string `yaml:"currency"`

	// ExportDir enables the workbook export when set.
	ExportDir string `yaml:"export_dir"`

	// OutputNameFormat is the export file name. Placeholders:
	//   {invoice}   - document file name without extension
	//   {timestamp} - run time (YYYYMMDD_HHMMSS)
	//   {uuid}      - random UUID
	OutputNameFormat string `yaml:"output_name_format"`

	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// ColumnNames identifies the three reference table columns.
type ColumnNames struct {
	ItemCode      string `yaml:"item_code"`
	CategoryCode  string `yaml:"category_code"`
	CategoryLabel string `yaml:"category_label"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the compiled-in configuration.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyMainConfigDefaults(cfg)
	return cfg
}

// LoadMainConfig loads the configuration from a YAML file.
//
// A missing file at DefaultConfigFile yields Default(). Any other missing or
// unparseable file is an error.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	if configPath == "" {
		configPath = DefaultConfigFile
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && filepath.Clean(configPath) == DefaultConfigFile {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.DocumentPath == "" {
		config.DocumentPath = DefaultDocumentPath
	}
	if config.ReferencePath == "" {
		config.ReferencePath = DefaultReferencePath
	}
	if config.ReferenceSheet == "" {
		config.ReferenceSheet = DefaultReferenceSheet
	}
	if config.Columns.ItemCode == "" {
		config.Columns.ItemCode = DefaultItemCodeColumn
	}
	if config.Columns.CategoryCode == "" {
		config.Columns.CategoryCode = DefaultCategoryCodeColumn
	}
	if config.Columns.CategoryLabel == "" {
		config.Columns.CategoryLabel = DefaultCategoryLabelColumn
	}
	if config.Currency == "" {
		config.Currency = DefaultCurrency
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = DefaultOutputNameFormat
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if _, err := ParseLogLevel(config.LogLevel); err != nil {
		return err
	}

	if money.GetCurrency(config.Currency) == nil {
		return fmt.Errorf("unknown currency %q", config.Currency)
	}

	if config.ExportDir != "" {
		if err := utils.EnsureDir(config.ExportDir); err != nil {
			return err
		}
	}

	return nil
}

// ParseLogLevel maps a configured level name onto a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
