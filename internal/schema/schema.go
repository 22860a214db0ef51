// =============================================================================
// Availability Model Translator - Schema Registry
// =============================================================================
//
// This package declares the canonical set of tables that make up an
// availability model: their names, their columns, the primitive type of each
// column, and the references between tables.
//
// The registry is pure configuration data. It is built once (either from the
// embedded default catalog or from a user-supplied YAML definition), validated
// on construction, and never mutated afterwards. Every other stage of the
// pipeline receives the registry as an explicit value:
//   - The loaders use it to match files/sheets and headers to tables/columns.
//   - The builder uses it to type-check values and resolve references.
//   - The generators use it to lay out output tables in declaration order.
//
// =============================================================================

package schema

import (
	"fmt"
	"strings"
)

// =============================================================================
// COLUMN TYPES
// =============================================================================

// Type is the primitive type of a column value.
type Type int

const (
	// TypeString accepts any textual value.
	TypeString Type = iota

	// TypeInteger accepts base-10 integers.
	TypeInteger

	// TypeFloat accepts decimal numbers.
	TypeFloat

	// TypeBoolean accepts true/false (and the usual textual spellings).
	TypeBoolean

	// TypeReference is a key into another table. Columns of this type carry
	// a Reference describing the target table and column.
	TypeReference
)

// String returns the definition-file spelling of the type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeReference:
		return "reference"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType converts a definition-file type name into a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str", "text":
		return TypeString, nil
	case "integer", "int":
		return TypeInteger, nil
	case "float", "double", "decimal":
		return TypeFloat, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "reference", "ref":
		return TypeReference, nil
	}
	return TypeString, fmt.Errorf("unknown column type %q", s)
}

// =============================================================================
// SCHEMA DECLARATIONS
// =============================================================================

// Reference declares the target of a reference column.
type Reference struct {
	// Table is the canonical name of the referenced table.
	Table string

	// Column is the canonical name of the key column in the referenced table.
	Column string

	// Cardinality is "one" or "many". It is recorded for documentation of the
	// model shape; only existence of the target row is enforced.
	Cardinality string
}

// Column declares one column of a table.
type Column struct {
	// Name is the canonical column name (lower-case, underscore-separated).
	Name string

	// Type is the primitive type of the column.
	Type Type

	// Nullable marks columns whose cells may be empty. An empty cell in a
	// non-nullable column is a validation error.
	Nullable bool

	// Ref describes the reference target. Only set when Type is TypeReference.
	Ref *Reference
}

// Table declares one table of the model.
type Table struct {
	// Name is the canonical table name (lower-case, underscore-separated).
	Name string

	// Columns is the ordered column list. Output formats emit columns in
	// exactly this order.
	Columns []Column

	// Required marks tables that must be present in every input source.
	// A missing required table is a validation error (the model still gets
	// an empty table for it).
	Required bool
}

// Column returns the column with the given canonical name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// ColumnNames returns the canonical column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is the immutable set of table declarations for one translation
// run. Construct it with New, Parse, LoadFile or Default.
type Registry struct {
	tables []*Table
	index  map[string]*Table
}

// New builds a registry from table declarations.
//
// All names are normalized before storage. New fails when a table name is
// duplicated, a table has no columns, a column name is duplicated within a
// table, or a reference points at an undeclared table or column.
func New(tables []Table) (*Registry, error) {
	reg := &Registry{index: make(map[string]*Table, len(tables))}
	for i := range tables {
		t := tables[i]
		t.Name = Normalize(t.Name)
		if t.Name == "" {
			return nil, fmt.Errorf("schema: table %d has an empty name", i)
		}
		if _, dup := reg.index[t.Name]; dup {
			return nil, fmt.Errorf("schema: duplicate table %q", t.Name)
		}
		if len(t.Columns) == 0 {
			return nil, fmt.Errorf("schema: table %q has no columns", t.Name)
		}
		seen := make(map[string]bool, len(t.Columns))
		for j := range t.Columns {
			c := &t.Columns[j]
			c.Name = Normalize(c.Name)
			if c.Name == "" {
				return nil, fmt.Errorf("schema: table %q column %d has an empty name", t.Name, j)
			}
			if seen[c.Name] {
				return nil, fmt.Errorf("schema: table %q has duplicate column %q", t.Name, c.Name)
			}
			seen[c.Name] = true
			if c.Type == TypeReference {
				if c.Ref == nil {
					return nil, fmt.Errorf("schema: table %q column %q is a reference without a target", t.Name, c.Name)
				}
				c.Ref.Table = Normalize(c.Ref.Table)
				c.Ref.Column = Normalize(c.Ref.Column)
				if c.Ref.Cardinality == "" {
					c.Ref.Cardinality = "many"
				}
			} else if c.Ref != nil {
				return nil, fmt.Errorf("schema: table %q column %q declares a reference target but is not a reference", t.Name, c.Name)
			}
		}
		tc := t
		reg.tables = append(reg.tables, &tc)
		reg.index[t.Name] = &tc
	}

	// Reference targets can only be checked once every table is registered.
	for _, t := range reg.tables {
		for i := range t.Columns {
			c := &t.Columns[i]
			if c.Type != TypeReference {
				continue
			}
			target, ok := reg.index[c.Ref.Table]
			if !ok {
				return nil, fmt.Errorf("schema: table %q column %q references unknown table %q",
					t.Name, c.Name, c.Ref.Table)
			}
			if _, ok := target.Column(c.Ref.Column); !ok {
				return nil, fmt.Errorf("schema: table %q column %q references unknown column %q.%q",
					t.Name, c.Name, c.Ref.Table, c.Ref.Column)
			}
		}
	}
	return reg, nil
}

// Lookup returns the table declaration for the given name. The name is
// normalized before the lookup, so "Failure Models" finds "failure_models".
func (r *Registry) Lookup(name string) (*Table, bool) {
	t, ok := r.index[Normalize(name)]
	return t, ok
}

// Tables returns all table declarations in declaration order.
func (r *Registry) Tables() []*Table {
	out := make([]*Table, len(r.tables))
	copy(out, r.tables)
	return out
}

// Len returns the number of declared tables.
func (r *Registry) Len() int {
	return len(r.tables)
}

// =============================================================================
// NAME NORMALIZATION
// =============================================================================

// Normalize converts a table, sheet or column name as found in an input
// source into its canonical form: trimmed, lower-case, with interior
// whitespace runs replaced by single underscores.
//
// "Failure Models", "failure models" and "FAILURE_MODELS" all normalize to
// "failure_models". Matching throughout the pipeline is done on normalized
// names; the canonical form is what gets stored and emitted.
func Normalize(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "_")
}
