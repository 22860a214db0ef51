package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"components", "components"},
		{"Components", "components"},
		{"Failure Models", "failure_models"},
		{"  FAILURE   MODELS  ", "failure_models"},
		{"failure_models", "failure_models"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.out, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestNewValidatesDeclarations(t *testing.T) {
	valid := []Table{
		{
			Name:     "components",
			Required: true,
			Columns: []Column{
				{Name: "id", Type: TypeInteger},
				{Name: "name", Type: TypeString},
			},
		},
		{
			Name: "logic",
			Columns: []Column{
				{Name: "id", Type: TypeInteger},
				{Name: "component_id", Type: TypeReference, Ref: &Reference{Table: "components", Column: "id"}},
			},
		},
	}

	reg, err := New(valid)
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	tbl, ok := reg.Lookup("Components")
	require.True(t, ok, "lookup must be case-insensitive")
	require.Equal(t, "components", tbl.Name)
	require.True(t, tbl.Required)

	col, ok := tbl.Column("id")
	require.True(t, ok)
	require.Equal(t, TypeInteger, col.Type)

	logic, _ := reg.Lookup("logic")
	ref, _ := logic.Column("component_id")
	require.NotNil(t, ref.Ref)
	require.Equal(t, "many", ref.Ref.Cardinality, "cardinality defaults to many")
}

func TestNewRejectsBadDeclarations(t *testing.T) {
	tests := []struct {
		name   string
		tables []Table
	}{
		{
			name: "duplicate table",
			tables: []Table{
				{Name: "a", Columns: []Column{{Name: "x", Type: TypeString}}},
				{Name: "A", Columns: []Column{{Name: "x", Type: TypeString}}},
			},
		},
		{
			name:   "no columns",
			tables: []Table{{Name: "a"}},
		},
		{
			name: "duplicate column",
			tables: []Table{
				{Name: "a", Columns: []Column{
					{Name: "x", Type: TypeString},
					{Name: "X", Type: TypeString},
				}},
			},
		},
		{
			name: "reference without target",
			tables: []Table{
				{Name: "a", Columns: []Column{{Name: "x", Type: TypeReference}}},
			},
		},
		{
			name: "reference to unknown table",
			tables: []Table{
				{Name: "a", Columns: []Column{
					{Name: "x", Type: TypeReference, Ref: &Reference{Table: "nope", Column: "x"}},
				}},
			},
		},
		{
			name: "reference to unknown column",
			tables: []Table{
				{Name: "a", Columns: []Column{
					{Name: "x", Type: TypeString},
					{Name: "y", Type: TypeReference, Ref: &Reference{Table: "a", Column: "missing"}},
				}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.tables)
			require.Error(t, err)
		})
	}
}

func TestParseDefinition(t *testing.T) {
	def := `
tables:
  - name: Components
    required: true
    columns:
      - name: ID
        type: integer
      - name: Name
        type: string
  - name: logic
    columns:
      - name: id
        type: int
      - name: component_id
        type: reference
        references:
          table: components
          column: id
          cardinality: one
`
	reg, err := Parse([]byte(def))
	require.NoError(t, err)

	tbl, ok := reg.Lookup("components")
	require.True(t, ok)
	require.True(t, tbl.Required)
	require.Equal(t, []string{"id", "name"}, tbl.ColumnNames())

	logic, _ := reg.Lookup("logic")
	col, _ := logic.Column("component_id")
	require.Equal(t, TypeReference, col.Type)
	require.Equal(t, "one", col.Ref.Cardinality)
}

func TestParseRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"not yaml", ":\n  - ["},
		{"no tables", "tables: []"},
		{"unknown type", "tables:\n  - name: a\n    columns:\n      - name: x\n        type: blob"},
		{"target on non-reference", `
tables:
  - name: a
    columns:
      - name: x
        type: string
        references:
          table: a
          column: x
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.def))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	def := "tables:\n  - name: a\n    columns:\n      - name: x\n        type: string\n"
	require.NoError(t, os.WriteFile(path, []byte(def), 0o644))

	reg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	reg := Default()

	for _, name := range []string{
		"components", "logic", "failure_models",
		"component_failures", "manpower", "spares",
	} {
		_, ok := reg.Lookup(name)
		require.True(t, ok, "default catalog must declare %q", name)
	}

	components, _ := reg.Lookup("components")
	require.True(t, components.Required)
	logic, _ := reg.Lookup("logic")
	require.True(t, logic.Required)
	fm, _ := reg.Lookup("failure_models")
	require.False(t, fm.Required)

	// components.parent is a nullable self-reference.
	parent, ok := components.Column("parent")
	require.True(t, ok)
	require.Equal(t, TypeReference, parent.Type)
	require.True(t, parent.Nullable)
	require.Equal(t, "components", parent.Ref.Table)
	require.Equal(t, "name", parent.Ref.Column)
}
