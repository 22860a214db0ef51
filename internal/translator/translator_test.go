package translator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/availkit/amt/internal/generator"
	"github.com/availkit/amt/internal/schema"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.New([]schema.Table{
		{
			Name:     "components",
			Required: true,
			Columns: []schema.Column{
				{Name: "id", Type: schema.TypeInteger},
				{Name: "name", Type: schema.TypeString},
			},
		},
		{
			Name:     "logic",
			Required: true,
			Columns: []schema.Column{
				{Name: "id", Type: schema.TypeInteger},
				{Name: "component_id", Type: schema.TypeReference,
					Ref: &schema.Reference{Table: "components", Column: "id"}},
			},
		},
	})
	require.NoError(t, err)
	return reg
}

// writeCSVModel lays out a valid two-table model in a fresh directory.
func writeCSVModel(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components.csv"),
		[]byte("id,name\n1,Pump\n2,Valve\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logic.csv"),
		[]byte("id,component_id\n10,1\n11,2\n"), 0o644))
	return dir
}

func TestRunCSVToXML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "model.xml")
	tr, err := New(Options{
		InputFormat:  InputCSV,
		Input:        writeCSVModel(t),
		OutputFormat: OutputXML,
		Output:       out,
		Registry:     testRegistry(t),
	})
	require.NoError(t, err)

	report, err := tr.Run()
	require.NoError(t, err)
	require.Empty(t, report.Errors)
	require.Equal(t, 2, report.TablesLoaded)
	require.Equal(t, 4, report.RowsLoaded)
	require.Equal(t, 0, report.RowsDropped)
	require.Equal(t, out, report.OutputFile)
	require.NotEmpty(t, report.RunID)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc := string(data)
	require.True(t, strings.HasPrefix(doc, `<?xml version="1.0" standalone="yes"?>`))
	require.Contains(t, doc, "<name>Pump</name>")
	require.Contains(t, doc, "<component_id>2</component_id>")
}

func TestRunCSVToExcelRoundTrip(t *testing.T) {
	reg := testRegistry(t)
	out := filepath.Join(t.TempDir(), "model.xlsx")

	tr, err := New(Options{
		InputFormat:  InputCSV,
		Input:        writeCSVModel(t),
		OutputFormat: OutputExcel,
		Output:       out,
		Registry:     reg,
	})
	require.NoError(t, err)
	_, err = tr.Run()
	require.NoError(t, err)

	// The generated workbook is a valid input: reload and rebuild.
	stg, err := Load(InputExcel, out, reg)
	require.NoError(t, err)
	m, errs := Validate(stg, reg)
	require.Empty(t, errs, "round-tripped model must validate cleanly")

	components, _ := m.Lookup("components")
	require.Equal(t, 2, components.Len())
	require.Equal(t, int64(1), components.Records[0].Values["id"].Int())
	require.Equal(t, "Pump", components.Records[0].Values["name"].Str())

	logic, _ := m.Lookup("logic")
	require.Equal(t, 2, logic.Len())
	rec, ok := m.Resolve("components", "id", logic.Records[1].Values["component_id"].Str())
	require.True(t, ok)
	require.Equal(t, "Valve", rec.Values["name"].Str())
}

func TestRunStopsOnValidationErrorsWithoutForce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components.csv"),
		[]byte("id,name\n1,Pump\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logic.csv"),
		[]byte("id,component_id\n10,99\n"), 0o644))

	out := filepath.Join(t.TempDir(), "model.xml")
	tr, err := New(Options{
		InputFormat:  InputCSV,
		Input:        dir,
		OutputFormat: OutputXML,
		Output:       out,
		Registry:     testRegistry(t),
	})
	require.NoError(t, err)

	report, err := tr.Run()
	require.ErrorIs(t, err, ErrValidation)
	require.Len(t, report.Errors, 1)
	require.Equal(t, 1, report.RowsDropped)
	require.Empty(t, report.OutputFile)
	require.NoFileExists(t, out)
}

func TestRunForceEmitsPartialModel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components.csv"),
		[]byte("id,name\n1,Pump\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logic.csv"),
		[]byte("id,component_id\n10,1\n11,99\n"), 0o644))

	out := filepath.Join(t.TempDir(), "model.xml")
	tr, err := New(Options{
		InputFormat:  InputCSV,
		Input:        dir,
		OutputFormat: OutputXML,
		Output:       out,
		Registry:     testRegistry(t),
		Force:        true,
	})
	require.NoError(t, err)

	report, err := tr.Run()
	require.NoError(t, err)
	require.Len(t, report.Errors, 1)
	require.Equal(t, out, report.OutputFile)

	data, rerr := os.ReadFile(out)
	require.NoError(t, rerr)
	// The dangling row was dropped; the resolving one survived.
	require.Contains(t, string(data), "<id>10</id>")
	require.NotContains(t, string(data), "<id>11</id>")
}

func TestRunWritesErrorLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components.csv"),
		[]byte("id,name\nx,Pump\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logic.csv"),
		[]byte("id,component_id\n"), 0o644))

	out := filepath.Join(t.TempDir(), "model.xml")
	tr, err := New(Options{
		InputFormat:  InputCSV,
		Input:        dir,
		OutputFormat: OutputXML,
		Output:       out,
		Registry:     testRegistry(t),
		ErrorLog:     true,
	})
	require.NoError(t, err)

	report, err := tr.Run()
	require.ErrorIs(t, err, ErrValidation)
	require.NotEmpty(t, report.ErrorLogFile)

	data, rerr := os.ReadFile(report.ErrorLogFile)
	require.NoError(t, rerr)
	require.Contains(t, string(data), "[type]")
	require.Contains(t, string(data), `"components"`)
}

func TestRunAbortsOnLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "components.csv"),
		[]byte("foo,bar\n1,2\n"), 0o644))

	tr, err := New(Options{
		InputFormat:  InputCSV,
		Input:        dir,
		OutputFormat: OutputXML,
		Output:       filepath.Join(t.TempDir(), "model.xml"),
		Registry:     testRegistry(t),
	})
	require.NoError(t, err)

	report, err := tr.Run()
	require.Error(t, err)
	require.Nil(t, report)
}

func TestNewValidatesOptions(t *testing.T) {
	base := Options{
		InputFormat:  InputCSV,
		Input:        "in",
		OutputFormat: OutputXML,
		Output:       "out.xml",
	}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"bad input format", func(o *Options) { o.InputFormat = "tsv" }},
		{"bad output format", func(o *Options) { o.OutputFormat = "json" }},
		{"missing input", func(o *Options) { o.Input = "" }},
		{"missing output", func(o *Options) { o.Output = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.mutate(&opts)
			_, err := New(opts)
			require.Error(t, err)
		})
	}

	// Registry and XML options default when omitted.
	tr, err := New(base)
	require.NoError(t, err)
	require.NotNil(t, tr.opts.Registry)
	require.Equal(t, generator.DefaultXMLOptions().RootElement, tr.opts.XML.RootElement)
}

func TestParseFormats(t *testing.T) {
	f, err := ParseInputFormat("csv")
	require.NoError(t, err)
	require.Equal(t, InputCSV, f)
	_, err = ParseInputFormat("yaml")
	require.Error(t, err)

	o, err := ParseOutputFormat("excel")
	require.NoError(t, err)
	require.Equal(t, OutputExcel, o)
	_, err = ParseOutputFormat("")
	require.Error(t, err)
}
