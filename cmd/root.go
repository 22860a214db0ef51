// =============================================================================
// Availability Model Translator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that the other commands (translate, validate, version)
// are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (amt)
//   ├── translateCmd (amt translate)
//   ├── validateCmd (amt validate)
//   └── versionCmd (amt version)
//
// The root command owns the global flags (--config, --schema, --verbose)
// and the helpers that resolve the effective configuration and schema
// registry for a run.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/availkit/amt/internal/config"
	"github.com/availkit/amt/internal/schema"
)

// cfgFile holds the path to the run configuration file.
var cfgFile string

// schemaFile holds the path to a YAML schema definition, overriding both
// the config file and the embedded default catalog.
var schemaFile string

// verbose enables per-table progress output.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "amt",
	Short: "Availability Model Translator - Convert availability models between tabular formats",
	Long: `Availability Model Translator (amt) converts structural availability models
(components, logic gates and their relationships) between tabular input
formats and simulation-tool output formats.

Inputs:   a directory of CSV files (one file per table), or a single
          XLS/XLSX workbook (one sheet per table).
Outputs:  workbench XML for the availability-simulation tool's import
          wizard, or an Excel workbook.

Every input is validated against the table schema before anything is
emitted: values are type-checked and cross-table references are resolved,
and the full list of problems is reported in one run.

Example Usage:
  amt translate --from csv --in ./model --to xml --out model.xml
  amt translate --from excel --in model.xlsx --to excel --out out.xlsx
  amt validate  --from csv --in ./model`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the run configuration file",
	)
	rootCmd.PersistentFlags().StringVar(
		&schemaFile,
		"schema",
		"",
		"Path to a YAML schema definition (default is the built-in catalog)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output",
	)
}

// loadConfig resolves the effective run configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// loadRegistry resolves the effective schema registry: the --schema flag
// wins over the config file, which wins over the embedded default catalog.
func loadRegistry(cfg *config.Config) (*schema.Registry, error) {
	path := schemaFile
	if path == "" {
		path = cfg.SchemaPath
	}
	if path == "" {
		return schema.Default(), nil
	}
	return schema.LoadFile(path)
}
