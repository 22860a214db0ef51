// =============================================================================
// Availability Model Translator - Excel Generator
// =============================================================================
//
// One sheet per schema table, in schema declaration order. The first sheet
// row is the header (needed to automate the column mapping when importing
// into the workbench), followed by one row per record with columns in
// schema order. Null values become empty cells.
//
// The resulting workbook is itself a valid input for the Excel loader, so
// a translation can round-trip: generate, reload, rebuild, and obtain an
// equivalent model.
//
// =============================================================================

package generator

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/availkit/amt/internal/model"
	"github.com/availkit/amt/internal/schema"
)

// Excel caps sheet names at 31 characters. Longer table names cannot be
// represented and fail generation.
const maxSheetName = 31

// ExcelGenerator emits one workbook.
type ExcelGenerator struct {
	reg *schema.Registry
}

// NewExcelGenerator returns a generator using the given schema for sheet
// and column ordering.
func NewExcelGenerator(reg *schema.Registry) *ExcelGenerator {
	return &ExcelGenerator{reg: reg}
}

// Generate writes the model to dest.
func (g *ExcelGenerator) Generate(m *model.Model, dest string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	for i, t := range g.reg.Tables() {
		if len(t.Name) > maxSheetName {
			return &GenerationError{
				Dest:   dest,
				Reason: fmt.Sprintf("table name %q exceeds the %d-character sheet name limit", t.Name, maxSheetName),
			}
		}

		// excelize starts every workbook with one default sheet; reuse it
		// for the first table so the output carries no empty extra sheet.
		if i == 0 {
			if err := wb.SetSheetName(wb.GetSheetName(0), t.Name); err != nil {
				return &GenerationError{Dest: dest, Reason: "cannot name sheet", Err: err}
			}
		} else {
			if _, err := wb.NewSheet(t.Name); err != nil {
				return &GenerationError{Dest: dest, Reason: "cannot create sheet", Err: err}
			}
		}

		if err := g.writeSheet(wb, t, m); err != nil {
			return &GenerationError{Dest: dest, Reason: fmt.Sprintf("cannot write sheet %q", t.Name), Err: err}
		}
	}

	if err := wb.SaveAs(dest); err != nil {
		return &GenerationError{Dest: dest, Reason: "cannot write output workbook", Err: err}
	}
	return nil
}

// writeSheet fills one sheet: header row first, then the records.
func (g *ExcelGenerator) writeSheet(wb *excelize.File, t *schema.Table, m *model.Model) error {
	header := make([]interface{}, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	if err := wb.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}

	mt, ok := m.Lookup(t.Name)
	if !ok {
		return nil
	}
	for i, rec := range mt.Records {
		row := make([]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			v := rec.Values[c.Name]
			if v.IsNull() {
				row[j] = ""
				continue
			}
			// Cells carry the canonical textual rendering rather than typed
			// cell values: the loader reads cell texts back, and identical
			// text is what makes the round-trip exact.
			row[j] = v.Render()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(t.Name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
