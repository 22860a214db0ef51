// =============================================================================
// Availability Model Translator - Pipeline Driver
// =============================================================================
//
// The translator orchestrates one run: Load -> Validate -> Generate. It
// owns no business logic of its own; it selects the loader and generator
// variants, threads the schema registry through the pipeline, and reports
// what happened. The three phases are also exposed as composable entry
// points (Load, Validate, Generate) so that callers — the CLI, tests,
// embedding applications — can run any prefix of the pipeline.
//
// Validation errors accumulate and never abort by themselves; whether a
// partial model may be emitted is the caller's decision, expressed through
// Options.Force. Load and generation failures always abort.
//
// =============================================================================

package translator

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/availkit/amt/internal/builder"
	"github.com/availkit/amt/internal/generator"
	"github.com/availkit/amt/internal/loader"
	"github.com/availkit/amt/internal/model"
	"github.com/availkit/amt/internal/schema"
	"github.com/availkit/amt/internal/staging"
	"github.com/availkit/amt/pkg/fileutil"
)

// =============================================================================
// FORMATS
// =============================================================================

// InputFormat selects the loader variant.
type InputFormat string

const (
	// InputCSV reads a directory of {table_name}.csv files.
	InputCSV InputFormat = "csv"

	// InputExcel reads a single XLS/XLSX workbook.
	InputExcel InputFormat = "excel"
)

// ParseInputFormat converts a user-supplied format name.
func ParseInputFormat(s string) (InputFormat, error) {
	switch InputFormat(s) {
	case InputCSV, InputExcel:
		return InputFormat(s), nil
	}
	return "", fmt.Errorf("unknown input format %q (expected csv or excel)", s)
}

// OutputFormat selects the generator variant.
type OutputFormat string

const (
	// OutputXML writes workbench XML.
	OutputXML OutputFormat = "xml"

	// OutputExcel writes one XLSX workbook.
	OutputExcel OutputFormat = "excel"
)

// ParseOutputFormat converts a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputXML, OutputExcel:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (expected xml or excel)", s)
}

// =============================================================================
// COMPOSABLE ENTRY POINTS
// =============================================================================

// Load reads the input source into a staging model.
func Load(format InputFormat, location string, reg *schema.Registry) (*staging.Model, error) {
	var l loader.Loader
	switch format {
	case InputCSV:
		l = loader.NewCSVLoader(location, reg)
	case InputExcel:
		l = loader.NewExcelLoader(location, reg)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	return l.Load()
}

// Validate builds the canonical model, accumulating validation errors.
func Validate(stg *staging.Model, reg *schema.Registry) (*model.Model, []*builder.Error) {
	return builder.Build(stg, reg)
}

// Generate emits the canonical model to dest in the given format.
func Generate(format OutputFormat, m *model.Model, reg *schema.Registry, dest string, xmlOpts generator.XMLOptions) error {
	var g generator.Generator
	switch format {
	case OutputXML:
		g = generator.NewXMLGenerator(reg, xmlOpts)
	case OutputExcel:
		g = generator.NewExcelGenerator(reg)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return g.Generate(m, dest)
}

// =============================================================================
// FULL PIPELINE
// =============================================================================

// ErrValidation is returned by Run when validation reported errors and the
// run was not forced. The report still carries the full error list.
var ErrValidation = errors.New("validation failed")

// Options configures one translation run.
type Options struct {
	// InputFormat and Input locate the source.
	InputFormat InputFormat
	Input       string

	// OutputFormat and Output locate the destination artifact.
	OutputFormat OutputFormat
	Output       string

	// Registry is the schema to validate against. Defaults to the embedded
	// availability-model catalog.
	Registry *schema.Registry

	// Force emits the (partial) artifact even when validation reported
	// errors. Without it, any validation error stops the run before the
	// generation phase.
	Force bool

	// XML carries layout options for the XML output format.
	XML generator.XMLOptions

	// ErrorLog writes the accumulated validation errors to a log file next
	// to the output artifact.
	ErrorLog bool
}

// Report describes what one run did.
type Report struct {
	// RunID uniquely identifies the run, for logs and error files.
	RunID string

	// Errors is the full accumulated validation error list.
	Errors []*builder.Error

	// TablesLoaded is the number of tables found in the source.
	TablesLoaded int

	// RowsLoaded is the number of data rows read from the source.
	RowsLoaded int

	// RowsDropped is the number of rows validation removed from the model.
	RowsDropped int

	// OutputFile is the written artifact, or "" when generation was skipped.
	OutputFile string

	// ErrorLogFile is the written error log, or "".
	ErrorLogFile string

	// Elapsed is the total run duration.
	Elapsed time.Duration
}

// Translator runs the full pipeline.
type Translator struct {
	opts Options
}

// New validates the options and returns a ready translator.
func New(opts Options) (*Translator, error) {
	if _, err := ParseInputFormat(string(opts.InputFormat)); err != nil {
		return nil, err
	}
	if _, err := ParseOutputFormat(string(opts.OutputFormat)); err != nil {
		return nil, err
	}
	if opts.Input == "" {
		return nil, fmt.Errorf("input location is required")
	}
	if opts.Output == "" {
		return nil, fmt.Errorf("output location is required")
	}
	if opts.Registry == nil {
		opts.Registry = schema.Default()
	}
	if opts.XML.RootElement == "" {
		opts.XML = generator.DefaultXMLOptions()
	}
	return &Translator{opts: opts}, nil
}

// Run executes Load -> Validate -> Generate and reports the outcome.
//
// The returned error is non-nil for load failures, generation failures and
// — unless Force is set — validation errors (ErrValidation). The report is
// returned in all cases where loading succeeded.
func (t *Translator) Run() (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.New().String()}

	stg, err := Load(t.opts.InputFormat, t.opts.Input, t.opts.Registry)
	if err != nil {
		return nil, err
	}
	report.TablesLoaded = len(stg.Tables())
	for _, st := range stg.Tables() {
		report.RowsLoaded += len(st.Rows)
	}

	m, errs := Validate(stg, t.opts.Registry)
	report.Errors = errs
	report.RowsDropped = report.RowsLoaded - m.Rows()

	if len(errs) > 0 && t.opts.ErrorLog {
		path, logErr := fileutil.WriteErrorLog(t.opts.Output, report.RunID, builder.FormatErrors(errs))
		if logErr == nil {
			report.ErrorLogFile = path
		}
	}

	if len(errs) > 0 && !t.opts.Force {
		report.Elapsed = time.Since(start)
		return report, ErrValidation
	}

	if err := Generate(t.opts.OutputFormat, m, t.opts.Registry, t.opts.Output, t.opts.XML); err != nil {
		report.Elapsed = time.Since(start)
		return report, err
	}
	report.OutputFile = t.opts.Output
	report.Elapsed = time.Since(start)
	return report, nil
}
