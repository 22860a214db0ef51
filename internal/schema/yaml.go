// =============================================================================
// Availability Model Translator - Schema Definitions (YAML)
// =============================================================================
//
// Schema definitions are plain YAML documents:
//
//   tables:
//     - name: components
//       required: true
//       columns:
//         - name: name
//           type: string
//         - name: parent
//           type: reference
//           nullable: true
//           references:
//             table: components
//             column: name
//             cardinality: one
//
// The default catalog for the availability-model domain is embedded in the
// binary (schema.yaml) so that the tool works out of the box; a custom
// definition can be supplied per run with --schema.
//
// =============================================================================

package schema

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed schema.yaml
var defaultDefinition []byte

// =============================================================================
// DEFINITION FILE STRUCTURES
// =============================================================================

// definitionFile mirrors the YAML document layout.
type definitionFile struct {
	Tables []tableDef `yaml:"tables"`
}

type tableDef struct {
	Name     string      `yaml:"name"`
	Required bool        `yaml:"required"`
	Columns  []columnDef `yaml:"columns"`
}

type columnDef struct {
	Name       string  `yaml:"name"`
	Type       string  `yaml:"type"`
	Nullable   bool    `yaml:"nullable"`
	References *refDef `yaml:"references"`
}

type refDef struct {
	Table       string `yaml:"table"`
	Column      string `yaml:"column"`
	Cardinality string `yaml:"cardinality"`
}

// =============================================================================
// LOADING
// =============================================================================

// Parse builds a registry from a YAML schema definition.
func Parse(data []byte) (*Registry, error) {
	var def definitionFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("schema: failed to parse definition: %w", err)
	}
	if len(def.Tables) == 0 {
		return nil, fmt.Errorf("schema: definition declares no tables")
	}

	tables := make([]Table, 0, len(def.Tables))
	for _, td := range def.Tables {
		t := Table{Name: td.Name, Required: td.Required}
		for _, cd := range td.Columns {
			typ, err := ParseType(cd.Type)
			if err != nil {
				return nil, fmt.Errorf("schema: table %q column %q: %w", td.Name, cd.Name, err)
			}
			col := Column{Name: cd.Name, Type: typ, Nullable: cd.Nullable}
			if cd.References != nil {
				col.Ref = &Reference{
					Table:       cd.References.Table,
					Column:      cd.References.Column,
					Cardinality: cd.References.Cardinality,
				}
				// A declared target implies a reference column even when the
				// type field says otherwise; flag the mismatch instead of
				// silently reinterpreting it.
				if typ != TypeReference {
					return nil, fmt.Errorf("schema: table %q column %q has type %s but declares a reference target",
						td.Name, cd.Name, typ)
				}
			}
			t.Columns = append(t.Columns, col)
		}
		tables = append(tables, t)
	}
	return New(tables)
}

// LoadFile builds a registry from a YAML schema definition on disk.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: failed to read definition %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded availability-model catalog.
//
// The embedded definition is compiled in and covered by tests, so a parse
// failure here is a build defect; Default panics rather than making every
// caller thread an impossible error.
func Default() *Registry {
	reg, err := Parse(defaultDefinition)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded default definition is invalid: %v", err))
	}
	return reg
}
