// =============================================================================
// Availability Model Translator - Validation Error Taxonomy
// =============================================================================
//
// Validation never fails fast. Every problem found while building the
// canonical model is collected as an *Error carrying enough context (table,
// row, column, raw value) to locate the offending source cell, and the full
// list is returned alongside the (possibly partial) model. Callers decide
// whether partial output is acceptable.
//
// =============================================================================

package builder

import (
	"fmt"
	"strings"
)

// Kind classifies a validation error.
type Kind int

const (
	// KindMissingTable reports a required table absent from the input.
	KindMissingTable Kind = iota

	// KindType reports a value that fails to parse as its declared type.
	KindType

	// KindSchemaMismatch reports a column set mismatch: an unknown column in
	// the input (non-fatal, ignored) or a missing required value (drops the
	// row).
	KindSchemaMismatch

	// KindReference reports a reference value with no matching target row.
	KindReference
)

// String returns the user-facing label for the kind.
func (k Kind) String() string {
	switch k {
	case KindMissingTable:
		return "missing-table"
	case KindType:
		return "type"
	case KindSchemaMismatch:
		return "schema-mismatch"
	case KindReference:
		return "reference"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is one accumulated validation error.
type Error struct {
	// Kind classifies the error.
	Kind Kind

	// Table is the canonical name of the affected table.
	Table string

	// Row is the 1-based source row number, or 0 for table-level errors.
	Row int

	// Column is the canonical column name, or "" for table-level errors.
	Column string

	// Value is the raw cell text that triggered the error, where applicable.
	Value string

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] table %q", e.Kind, e.Table)
	if e.Row > 0 {
		fmt.Fprintf(&b, ", row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ", column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Value != "" {
		fmt.Fprintf(&b, " (value: %q)", e.Value)
	}
	return b.String()
}

// FormatErrors renders the accumulated errors one per line for reports and
// error logs.
func FormatErrors(errs []*Error) string {
	if len(errs) == 0 {
		return ""
	}
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
