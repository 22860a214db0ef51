// =============================================================================
// Availability Model Translator - Excel Workbook Loader
// =============================================================================
//
// The Excel loader treats the source as a single XLS/XLSX workbook with one
// sheet per table. Sheet names are matched against table names under the
// same normalization rule the CSV loader applies to file stems, so a sheet
// called "Failure Models" feeds the failure_models table. Sheets matching
// no table are ignored.
//
// excelize already returns rows with trailing blank cells trimmed; the
// shared assembly additionally skips fully blank rows, so workbooks with
// decorative padding load cleanly.
//
// =============================================================================

package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/availkit/amt/internal/schema"
	"github.com/availkit/amt/internal/staging"
)

// ExcelLoader loads a staging model from one workbook.
type ExcelLoader struct {
	path string
	reg  *schema.Registry
}

// NewExcelLoader returns a loader for the given workbook path.
func NewExcelLoader(path string, reg *schema.Registry) *ExcelLoader {
	return &ExcelLoader{path: path, reg: reg}
}

// Load reads every sheet that matches a schema table.
func (l *ExcelLoader) Load() (*staging.Model, error) {
	wb, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, &LoadError{Source: l.path, Reason: "cannot open workbook", Err: err}
	}
	defer wb.Close()

	// Map normalized sheet names to their actual names.
	sheets := make(map[string]string)
	for _, name := range wb.GetSheetList() {
		norm := schema.Normalize(name)
		if prev, dup := sheets[norm]; dup {
			return nil, &LoadError{
				Source: l.path,
				Reason: fmt.Sprintf("sheets %q and %q both map to table %q", prev, name, norm),
			}
		}
		sheets[norm] = name
	}

	stg := staging.NewModel()
	for _, t := range l.reg.Tables() {
		sheet, ok := sheets[t.Name]
		if !ok {
			continue
		}
		grid, err := wb.GetRows(sheet)
		if err != nil {
			return nil, &LoadError{
				Source: l.path,
				Reason: fmt.Sprintf("cannot read sheet %q", sheet),
				Err:    err,
			}
		}
		st, err := tableFromRows(t, fmt.Sprintf("%s#%s", l.path, sheet), grid)
		if err != nil {
			return nil, err
		}
		stg.Add(st)
	}
	return stg, nil
}
