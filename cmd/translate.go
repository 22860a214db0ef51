// =============================================================================
// Availability Model Translator - Translate Command
// =============================================================================
//
// This file defines the 'translate' command: the full pipeline from an
// input source to an output artifact.
//
// COMMAND USAGE:
//   amt translate --from csv|excel --in PATH --to xml|excel --out PATH
//
// FLAGS:
//   --from    : Input format (csv = directory of CSV files, excel = workbook)
//   --in      : Input location (directory or workbook path)
//   --to      : Output format (xml = workbench XML, excel = workbook)
//   --out     : Output file path
//   --force   : Emit the (partial) artifact even when validation fails
//
// The command prints the full accumulated validation error list with enough
// context to locate the offending source cell, then exits non-zero if any
// error occurred.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/availkit/amt/internal/builder"
	"github.com/availkit/amt/internal/generator"
	"github.com/availkit/amt/internal/translator"
)

var (
	fromFormat string
	inPath     string
	toFormat   string
	outPath    string
	force      bool
)

// translateCmd represents the 'translate' command.
var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate an availability model from an input format to an output format",
	Long: `The translate command loads an availability model from the input source,
validates it against the table schema, and emits it in the target format.

Validation is accumulating: every table and every row is checked and the
complete list of problems is reported in one run. By default any validation
error stops the run before output is written; pass --force to emit the
partial model anyway (rows with errors are dropped).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runTranslate()
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVar(&fromFormat, "from", "", "Input format: csv or excel")
	translateCmd.Flags().StringVar(&inPath, "in", "", "Input location (CSV directory or workbook path)")
	translateCmd.Flags().StringVar(&toFormat, "to", "", "Output format: xml or excel")
	translateCmd.Flags().StringVar(&outPath, "out", "", "Output file path")
	translateCmd.Flags().BoolVar(&force, "force", false, "Emit output even when validation reports errors")

	translateCmd.MarkFlagRequired("from")
	translateCmd.MarkFlagRequired("in")
	translateCmd.MarkFlagRequired("to")
	translateCmd.MarkFlagRequired("out")
}

// runTranslate executes the full pipeline and reports the outcome.
func runTranslate() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	inputFormat, err := translator.ParseInputFormat(fromFormat)
	if err != nil {
		return err
	}
	outputFormat, err := translator.ParseOutputFormat(toFormat)
	if err != nil {
		return err
	}

	// A bare output file name lands in the configured output directory.
	dest := outPath
	if filepath.Dir(dest) == "." && cfg.OutputDir != "." {
		dest = filepath.Join(cfg.OutputDir, dest)
	}

	t, err := translator.New(translator.Options{
		InputFormat:  inputFormat,
		Input:        inPath,
		OutputFormat: outputFormat,
		Output:       dest,
		Registry:     reg,
		Force:        force,
		XML: generator.XMLOptions{
			RootElement: cfg.XML.RootElement,
			ProjectID:   cfg.XML.ProjectID,
		},
		ErrorLog: cfg.ErrorLogEnabled(),
	})
	if err != nil {
		return err
	}

	fmt.Println("=== Availability Model Translator ===")
	fmt.Printf("Input:  %s (%s)\n", inPath, inputFormat)
	fmt.Printf("Output: %s (%s)\n", dest, outputFormat)

	report, err := t.Run()
	if report != nil {
		printReport(report)
	}
	if err != nil {
		if errors.Is(err, translator.ErrValidation) {
			return fmt.Errorf("validation failed with %d error(s); re-run with --force to emit the partial model", len(report.Errors))
		}
		return err
	}
	if len(report.Errors) > 0 {
		// Forced run: output was written, but the exit status still has to
		// signal that the source had problems.
		return fmt.Errorf("translated with %d validation error(s)", len(report.Errors))
	}
	return nil
}

// printReport prints the error list and the run summary.
func printReport(report *translator.Report) {
	if len(report.Errors) > 0 {
		fmt.Printf("\nValidation errors (%d):\n", len(report.Errors))
		fmt.Println(builder.FormatErrors(report.Errors))
		if report.ErrorLogFile != "" {
			fmt.Printf("Error log written to %s\n", report.ErrorLogFile)
		}
	}

	fmt.Println("\n=== Run Summary ===")
	fmt.Printf("Tables loaded:   %d\n", report.TablesLoaded)
	fmt.Printf("Rows loaded:     %d\n", report.RowsLoaded)
	fmt.Printf("Rows dropped:    %d\n", report.RowsDropped)
	if report.OutputFile != "" {
		fmt.Printf("Output written:  %s\n", report.OutputFile)
	} else {
		fmt.Println("Output written:  (skipped)")
	}
	fmt.Printf("Time elapsed:    %s\n", report.Elapsed)
	if verbose {
		fmt.Printf("Run ID:          %s\n", report.RunID)
	}
}
