// =============================================================================
// Availability Model Translator - Canonical Model
// =============================================================================
//
// This package defines the validated, typed, referentially-consistent
// in-memory form of an availability model. A canonical model is produced by
// the builder (internal/builder) exactly once per translation run and is
// treated as immutable by everything downstream: generators only read it,
// and reference handles are resolved by lookup, never by ownership.
//
// The package sits below builder and generator in the dependency graph so
// that both can share these types without an import cycle.
//
// =============================================================================

package model

import "strconv"

// =============================================================================
// TYPED VALUES
// =============================================================================

// Kind discriminates the typed value union.
type Kind int

const (
	// KindNull marks an empty cell in a nullable column.
	KindNull Kind = iota

	// KindString is a textual value.
	KindString

	// KindInt is an integer value.
	KindInt

	// KindFloat is a decimal value.
	KindFloat

	// KindBool is a boolean value.
	KindBool

	// KindRef is a reference to a record in another (or the same) table.
	// The value carries the raw key text; resolution is a lookup against
	// the model, performed lazily by the consumer.
	KindRef
)

// Value is one typed cell value.
type Value struct {
	kind Kind
	str  string // KindString, and the raw key for KindRef
	i    int64
	f    float64
	b    bool

	// refTable is the canonical name of the referenced table (KindRef only).
	refTable string
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// String wraps a textual value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int wraps an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a decimal value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Ref wraps a reference key into the given table.
func Ref(table, key string) Value {
	return Value{kind: KindRef, str: key, refTable: table}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the textual value (KindString) or raw key (KindRef).
func (v Value) Str() string { return v.str }

// Int returns the integer value.
func (v Value) Int() int64 { return v.i }

// Float returns the decimal value.
func (v Value) Float() float64 { return v.f }

// Bool returns the boolean value.
func (v Value) Bool() bool { return v.b }

// RefTable returns the canonical name of the referenced table (KindRef).
func (v Value) RefTable() string { return v.refTable }

// Render returns the canonical textual form used by the generators:
// integers in base 10, floats in their shortest round-trip form, booleans
// as "true"/"false", references as the raw target key, null as "".
//
// The rendering is deterministic so that identical models always produce
// identical output artifacts.
func (v Value) Render() string {
	switch v.kind {
	case KindString, KindRef:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// =============================================================================
// RECORDS AND TABLES
// =============================================================================

// Record is one typed row. Its column set is exactly the column set of its
// table's schema declaration.
type Record struct {
	// Values maps canonical column name to typed value.
	Values map[string]Value

	// SourceRow is the 1-based row number in the original source, kept for
	// error reporting and reproducibility checks.
	SourceRow int
}

// Table is one table of the canonical model.
type Table struct {
	// Name is the canonical table name.
	Name string

	// Records holds the surviving rows in source order.
	Records []*Record

	// keys indexes records by rendered key value, one index per column that
	// is the target of a reference. Built by the builder.
	keys map[string]map[string]*Record
}

// NewTable returns an empty table.
func NewTable(name string) *Table {
	return &Table{Name: name, keys: make(map[string]map[string]*Record)}
}

// Append adds a record to the table.
func (t *Table) Append(r *Record) {
	t.Records = append(t.Records, r)
}

// IndexColumn builds the key index for one column. When two records share a
// key the first one wins, matching the workbench's own import behavior.
func (t *Table) IndexColumn(column string) {
	idx := make(map[string]*Record, len(t.Records))
	for _, r := range t.Records {
		v, ok := r.Values[column]
		if !ok || v.IsNull() {
			continue
		}
		key := v.Render()
		if _, dup := idx[key]; !dup {
			idx[key] = r
		}
	}
	t.keys[column] = idx
}

// Key returns the record whose column renders to key.
func (t *Table) Key(column, key string) (*Record, bool) {
	idx, ok := t.keys[column]
	if !ok {
		return nil, false
	}
	r, ok := idx[key]
	return r, ok
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// =============================================================================
// MODEL
// =============================================================================

// Model is the canonical availability model: every table of the schema, in
// schema declaration order, with typed and reference-checked records.
type Model struct {
	tables []*Table
	index  map[string]*Table
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{index: make(map[string]*Table)}
}

// AddTable registers a table. Tables are expected in schema order; the
// builder is the only writer.
func (m *Model) AddTable(t *Table) {
	m.tables = append(m.tables, t)
	m.index[t.Name] = t
}

// Lookup returns the table with the given canonical name.
func (m *Model) Lookup(name string) (*Table, bool) {
	t, ok := m.index[name]
	return t, ok
}

// Tables returns all tables in schema declaration order.
func (m *Model) Tables() []*Table {
	out := make([]*Table, len(m.tables))
	copy(out, m.tables)
	return out
}

// Resolve follows a reference: it returns the record in the named table
// whose key column renders to key. Dangling references were eliminated
// during validation, so a failed resolve on a validated model means the
// caller asked for a table or column outside the schema.
func (m *Model) Resolve(table, column, key string) (*Record, bool) {
	t, ok := m.index[table]
	if !ok {
		return nil, false
	}
	return t.Key(column, key)
}

// Rows returns the total number of records across all tables.
func (m *Model) Rows() int {
	n := 0
	for _, t := range m.tables {
		n += len(t.Records)
	}
	return n
}
