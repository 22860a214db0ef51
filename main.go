// =============================================================================
// Availability Model Translator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Availability Model Translator CLI.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   amt translate   - Translate a model from an input to an output format
//   amt validate    - Validate an input source without generating output
//   amt version     - Display the application version
//
// ARCHITECTURE:
//   cmd/        : CLI command definitions (Cobra)
//   internal/   : the translation core (schema, loader, builder, generator,
//                 translator) — not for external import
//   pkg/        : shared utilities
//
// =============================================================================

package main

import (
	"github.com/availkit/amt/cmd"
)

func main() {
	cmd.Execute()
}
