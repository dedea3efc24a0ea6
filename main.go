// =============================================================================
// Auto SYSCO - Main Entry Point
// =============================================================================
//
// USAGE:
//   auto-sysco            - Prompt for the invoice, then process it
//   auto-sysco process    - Process the configured invoice without prompting
//   auto-sysco version    - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : extraction, reconciliation and reporting
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/Allen-Getty99/auto-sysco/cmd"
)

func main() {
	cmd.Execute()
}
