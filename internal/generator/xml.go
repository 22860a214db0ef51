// =============================================================================
// Availability Model Translator - Workbench XML Generator
// =============================================================================
//
// The workbench import wizard performs its own table/column auto-matching,
// so the only obligation here is structural fidelity: for every schema
// table, one element per record named after the table, with one child
// element per column in schema declaration order. Reference columns are
// serialized as the target table's key value, not a nested copy, preserving
// the relational shape for the wizard's matching step. Null values are
// omitted entirely.
//
// The document is built by hand rather than through struct marshalling:
// the wizard is sensitive to element order and layout, and hand-building
// keeps both under exact control.
//
// Output layout:
//
//   <?xml version="1.0" standalone="yes"?>
//   <AvailabilityModel>
//     <Project>
//       <Id>AMT_ExportedProject</Id>
//     </Project>
//     <components>
//       <name>Pump</name>
//       <type>basic</type>
//       ...
//     </components>
//     ...
//   </AvailabilityModel>
//
// =============================================================================

package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/availkit/amt/internal/model"
	"github.com/availkit/amt/internal/schema"
)

// =============================================================================
// OPTIONS
// =============================================================================

// XMLOptions controls the workbench XML layout.
type XMLOptions struct {
	// RootElement is the name of the document root.
	// Default: "AvailabilityModel"
	RootElement string

	// ProjectID is written into the <Project><Id> header element so the
	// wizard can label the import.
	// Default: "AMT_ExportedProject"
	ProjectID string

	// Indent is the per-level indentation string.
	// Default: two spaces
	Indent string
}

// DefaultXMLOptions returns the default layout options.
func DefaultXMLOptions() XMLOptions {
	return XMLOptions{
		RootElement: "AvailabilityModel",
		ProjectID:   "AMT_ExportedProject",
		Indent:      "  ",
	}
}

// =============================================================================
// GENERATOR
// =============================================================================

// XMLGenerator emits workbench XML.
type XMLGenerator struct {
	reg  *schema.Registry
	opts XMLOptions
}

// NewXMLGenerator returns a generator using the given schema for table and
// column ordering.
func NewXMLGenerator(reg *schema.Registry, opts XMLOptions) *XMLGenerator {
	if opts.RootElement == "" {
		opts.RootElement = "AvailabilityModel"
	}
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	return &XMLGenerator{reg: reg, opts: opts}
}

// Generate writes the model to dest.
func (g *XMLGenerator) Generate(m *model.Model, dest string) error {
	doc := g.render(m)
	if err := os.WriteFile(dest, doc, 0o644); err != nil {
		return &GenerationError{Dest: dest, Reason: "cannot write output file", Err: err}
	}
	return nil
}

// Render returns the document bytes without writing them, for tests and
// callers that stream the artifact elsewhere.
func (g *XMLGenerator) Render(m *model.Model) []byte {
	return g.render(m)
}

func (g *XMLGenerator) render(m *model.Model) []byte {
	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" standalone=\"yes\"?>\n")
	fmt.Fprintf(&buf, "<%s>\n", g.opts.RootElement)

	if g.opts.ProjectID != "" {
		g.open(&buf, 1, "Project")
		g.leaf(&buf, 2, "Id", g.opts.ProjectID)
		g.close(&buf, 1, "Project")
	}

	for _, t := range g.reg.Tables() {
		mt, ok := m.Lookup(t.Name)
		if !ok {
			continue
		}
		for _, rec := range mt.Records {
			g.open(&buf, 1, t.Name)
			for _, c := range t.Columns {
				v := rec.Values[c.Name]
				if v.IsNull() {
					continue
				}
				g.leaf(&buf, 2, c.Name, v.Render())
			}
			g.close(&buf, 1, t.Name)
		}
	}

	fmt.Fprintf(&buf, "</%s>\n", g.opts.RootElement)
	return buf.Bytes()
}

// =============================================================================
// ELEMENT WRITING
// =============================================================================

func (g *XMLGenerator) open(buf *bytes.Buffer, level int, name string) {
	g.pad(buf, level)
	fmt.Fprintf(buf, "<%s>\n", name)
}

func (g *XMLGenerator) close(buf *bytes.Buffer, level int, name string) {
	g.pad(buf, level)
	fmt.Fprintf(buf, "</%s>\n", name)
}

func (g *XMLGenerator) leaf(buf *bytes.Buffer, level int, name, value string) {
	g.pad(buf, level)
	fmt.Fprintf(buf, "<%s>%s</%s>\n", name, escapeXML(value), name)
}

func (g *XMLGenerator) pad(buf *bytes.Buffer, level int) {
	for i := 0; i < level; i++ {
		buf.WriteString(g.opts.Indent)
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// escapeXML escapes the five XML special characters in text content.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
