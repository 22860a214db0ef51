// =============================================================================
// Availability Model Translator - Loader
// =============================================================================
//
// Loaders read raw tabular data from an input source into a staging model.
// Two source variants are supported:
//   - CSV: a directory with one {table_name}.csv file per table
//   - Excel: a single XLS/XLSX workbook with one sheet per table
//
// A loader's duty is limited to parsing well-formed tables: headers are
// matched against the schema case-insensitively and order-independently,
// blank rows and trailing blank columns are tolerated, and row order is
// preserved exactly as found in the source. Whether a required table is
// missing, whether values parse as their declared types, and whether
// references resolve are all questions for the builder, not the loader.
//
// Adding a new input format means implementing the Loader interface; the
// rest of the pipeline is unaffected.
//
// =============================================================================

package loader

import (
	"fmt"
	"strings"

	"github.com/availkit/amt/internal/schema"
	"github.com/availkit/amt/internal/staging"
)

// Loader reads one input source into a staging model.
//
// Load either returns a complete staging model or fails with a *LoadError.
// A load failure aborts the whole run: a source that cannot be parsed
// cleanly cannot be partially trusted.
type Loader interface {
	Load() (*staging.Model, error)
}

// =============================================================================
// LOAD ERRORS
// =============================================================================

// LoadError describes a source that could not be read or parsed.
type LoadError struct {
	// Source is the offending file, directory or sheet.
	Source string

	// Reason is a human-readable description of the failure.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Source, e.Reason)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }

// =============================================================================
// SHARED TABLE ASSEMBLY
// =============================================================================

// tableFromRows converts one raw cell grid into a staging table.
//
// The first row is the header. Header cells are normalized and matched
// against the table's schema columns; unknown header names are kept so the
// builder can report them, but a header that matches no schema column at
// all is malformed input and fails the load. Blank header cells mark
// trailing blank columns and are dropped together with their cells.
// Fully blank data rows are skipped; short rows are padded with "".
func tableFromRows(t *schema.Table, source string, grid [][]string) (*staging.Table, error) {
	if len(grid) == 0 {
		return nil, &LoadError{Source: source, Reason: "table is empty (missing header row)"}
	}

	headers := make([]string, 0, len(grid[0]))
	known := 0
	for _, raw := range grid[0] {
		name := schema.Normalize(raw)
		if name == "" {
			// Blank header cell: the column carries no data we can address.
			headers = append(headers, "")
			continue
		}
		if _, ok := t.Column(name); ok {
			known++
		}
		headers = append(headers, name)
	}
	if known == 0 {
		return nil, &LoadError{
			Source: source,
			Reason: fmt.Sprintf("header matches no column of table %q", t.Name),
		}
	}
	if dup := duplicateHeader(headers); dup != "" {
		return nil, &LoadError{
			Source: source,
			Reason: fmt.Sprintf("header lists column %q more than once", dup),
		}
	}

	st := &staging.Table{Name: t.Name, Source: source}
	for _, h := range headers {
		if h != "" {
			st.Headers = append(st.Headers, h)
		}
	}

	for i, cells := range grid[1:] {
		if rowBlank(cells) {
			continue
		}
		row := &staging.Row{
			Values:    make(map[string]string, len(st.Headers)),
			SourceRow: i + 2, // 1-based, header is row 1
		}
		for col, h := range headers {
			if h == "" {
				continue
			}
			if col < len(cells) {
				row.Values[h] = strings.TrimSpace(cells[col])
			} else {
				row.Values[h] = ""
			}
		}
		st.Rows = append(st.Rows, row)
	}
	return st, nil
}

// rowBlank reports whether every cell in the row is empty or whitespace.
func rowBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// duplicateHeader returns the first header name that appears twice, or "".
func duplicateHeader(headers []string) string {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if h == "" {
			continue
		}
		if seen[h] {
			return h
		}
		seen[h] = true
	}
	return ""
}
