// Package staging holds the raw, untyped tables read from an input source.
//
// A staging model is what a loader produces and what the builder consumes.
// Values are plain strings keyed by canonical column name; nothing has been
// type-checked yet. The model lives for exactly one loader invocation and is
// discarded once the canonical model has been built.
package staging

// Row is one raw data row. Keys are canonical column names as derived from
// the source header; values are the untouched cell texts (trimmed).
type Row struct {
	// Values maps canonical column name to cell text.
	Values map[string]string

	// SourceRow is the 1-based row number in the source file or sheet,
	// counting the header. Used for error reporting only.
	SourceRow int
}

// Table is one raw table.
type Table struct {
	// Name is the canonical table name.
	Name string

	// Headers are the canonical column names in source order.
	Headers []string

	// Rows are the data rows in source order.
	Rows []*Row

	// Source identifies where the table came from (file path or sheet name),
	// for error messages.
	Source string
}

// Model is the set of raw tables produced by one loader invocation.
type Model struct {
	tables []*Table
	index  map[string]*Table
}

// NewModel returns an empty staging model.
func NewModel() *Model {
	return &Model{index: make(map[string]*Table)}
}

// Add registers a table. A table added twice replaces the earlier entry;
// loaders never do this, but the behavior is deterministic if one does.
func (m *Model) Add(t *Table) {
	if _, exists := m.index[t.Name]; exists {
		for i, old := range m.tables {
			if old.Name == t.Name {
				m.tables[i] = t
				break
			}
		}
	} else {
		m.tables = append(m.tables, t)
	}
	m.index[t.Name] = t
}

// Lookup returns the table with the given canonical name.
func (m *Model) Lookup(name string) (*Table, bool) {
	t, ok := m.index[name]
	return t, ok
}

// Tables returns all tables in insertion order.
func (m *Model) Tables() []*Table {
	out := make([]*Table, len(m.tables))
	copy(out, m.tables)
	return out
}
