// =============================================================================
// Availability Model Translator - Validate Command
// =============================================================================
//
// This file defines the 'validate' command: load and validate an input
// source without generating anything. Useful for checking a model while it
// is still being edited.
//
// COMMAND USAGE:
//   amt validate --from csv|excel --in PATH
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/availkit/amt/internal/builder"
	"github.com/availkit/amt/internal/translator"
)

var (
	validateFrom string
	validateIn   string
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an input source without generating output",
	Long: `The validate command loads the input source and checks it against the
table schema: required-table coverage, value types, column sets and
cross-table references. The complete list of problems is printed in one
run. Exit status is non-zero when any error is found.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFrom, "from", "", "Input format: csv or excel")
	validateCmd.Flags().StringVar(&validateIn, "in", "", "Input location (CSV directory or workbook path)")

	validateCmd.MarkFlagRequired("from")
	validateCmd.MarkFlagRequired("in")
}

// runValidate loads and validates the input, then prints the findings.
func runValidate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	format, err := translator.ParseInputFormat(validateFrom)
	if err != nil {
		return err
	}

	stg, err := translator.Load(format, validateIn, reg)
	if err != nil {
		return err
	}

	m, errs := translator.Validate(stg, reg)

	rows := 0
	for _, st := range stg.Tables() {
		rows += len(st.Rows)
	}
	fmt.Printf("Loaded %d table(s), %d row(s)\n", len(stg.Tables()), rows)
	if verbose {
		for _, t := range m.Tables() {
			fmt.Printf("  %-24s %d row(s)\n", t.Name, t.Len())
		}
	}

	if len(errs) > 0 {
		fmt.Printf("\nValidation errors (%d):\n", len(errs))
		fmt.Println(builder.FormatErrors(errs))
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	fmt.Println("Model is valid.")
	return nil
}
