package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueRendering(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("Pump"), "Pump"},
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"float", Float(2.5), "2.5"},
		{"float shortest form", Float(0.1), "0.1"},
		{"whole float", Float(3), "3"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"ref", Ref("components", "Pump"), "Pump"},
		{"null", Null(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.v.Render())
		})
	}
}

func TestValueAccessors(t *testing.T) {
	require.Equal(t, KindInt, Int(1).Kind())
	require.True(t, Null().IsNull())
	require.False(t, Int(0).IsNull())

	ref := Ref("components", "Pump")
	require.Equal(t, KindRef, ref.Kind())
	require.Equal(t, "components", ref.RefTable())
	require.Equal(t, "Pump", ref.Str())
}

func TestTableKeyIndex(t *testing.T) {
	tbl := NewTable("components")
	a := &Record{Values: map[string]Value{"id": Int(1), "name": String("Pump")}, SourceRow: 2}
	b := &Record{Values: map[string]Value{"id": Int(2), "name": String("Valve")}, SourceRow: 3}
	dup := &Record{Values: map[string]Value{"id": Int(2), "name": String("Valve copy")}, SourceRow: 4}
	tbl.Append(a)
	tbl.Append(b)
	tbl.Append(dup)
	tbl.IndexColumn("id")

	got, ok := tbl.Key("id", "1")
	require.True(t, ok)
	require.Equal(t, a, got)

	// First record wins on duplicate keys.
	got, ok = tbl.Key("id", "2")
	require.True(t, ok)
	require.Equal(t, b, got)

	_, ok = tbl.Key("id", "99")
	require.False(t, ok)
	_, ok = tbl.Key("name", "Pump")
	require.False(t, ok, "unindexed columns resolve nothing")
}

func TestModelResolve(t *testing.T) {
	m := NewModel()
	tbl := NewTable("components")
	rec := &Record{Values: map[string]Value{"id": Int(1)}}
	tbl.Append(rec)
	tbl.IndexColumn("id")
	m.AddTable(tbl)

	got, ok := m.Resolve("components", "id", "1")
	require.True(t, ok)
	require.Equal(t, rec, got)

	_, ok = m.Resolve("nope", "id", "1")
	require.False(t, ok)

	require.Equal(t, 1, m.Rows())
	require.Len(t, m.Tables(), 1)
}
