// =============================================================================
// Availability Model Translator - Generator
// =============================================================================
//
// Generators re-emit a canonical model into a target format. Two variants
// are supported:
//   - Workbench XML: the fixed vocabulary consumed by the workbench's
//     import wizard (one repeated element group per table, one element per
//     record, one child element per column)
//   - Excel: one workbook, one sheet per table, header row followed by the
//     data rows in schema column order
//
// Both variants are deterministic: the same model always produces
// byte-identical XML and a structurally identical workbook, which makes
// regression testing by output comparison possible.
//
// Adding a new output format means implementing the Generator interface.
//
// =============================================================================

package generator

import (
	"fmt"

	"github.com/availkit/amt/internal/model"
)

// Generator serializes a canonical model to a destination file.
//
// Generate either writes the complete artifact or fails with a
// *GenerationError. A generation failure aborts the run: it means the
// destination itself is unusable.
type Generator interface {
	Generate(m *model.Model, dest string) error
}

// GenerationError describes a destination that could not be written or a
// target-format constraint that the model violates.
type GenerationError struct {
	// Dest is the destination path.
	Dest string

	// Reason is a human-readable description of the failure.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generate %s: %s: %v", e.Dest, e.Reason, e.Err)
	}
	return fmt.Sprintf("generate %s: %s", e.Dest, e.Reason)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error { return e.Err }
