// =============================================================================
// Availability Model Translator - CSV Directory Loader
// =============================================================================
//
// The CSV loader treats the source as a directory containing one
// {table_name}.csv file per table, UTF-8, comma-delimited, with the header
// in the first record. File names are matched against the schema after
// normalization, so "Failure Models.csv" feeds the failure_models table.
// Directory entries that match no table are ignored: input directories
// routinely carry readme files, archives and exports from other tools.
//
// Files for independent tables are read concurrently; assembly of the
// staging model stays single-writer and follows schema declaration order,
// so the result is deterministic regardless of scheduling.
//
// =============================================================================

package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/availkit/amt/internal/schema"
	"github.com/availkit/amt/internal/staging"
)

// CSVLoader loads a staging model from a directory of CSV files.
type CSVLoader struct {
	dir string
	reg *schema.Registry
}

// NewCSVLoader returns a loader for the given directory.
func NewCSVLoader(dir string, reg *schema.Registry) *CSVLoader {
	return &CSVLoader{dir: dir, reg: reg}
}

// Load reads every table file found in the directory.
func (l *CSVLoader) Load() (*staging.Model, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, &LoadError{Source: l.dir, Reason: "cannot read input directory", Err: err}
	}

	// Map normalized file stems to file names so that table matching is
	// case-insensitive ("Components.CSV" -> components).
	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		stem := schema.Normalize(strings.TrimSuffix(name, filepath.Ext(name)))
		if prev, dup := files[stem]; dup {
			return nil, &LoadError{
				Source: l.dir,
				Reason: fmt.Sprintf("both %s and %s map to table %q", prev, name, stem),
			}
		}
		files[stem] = name
	}

	// Fan out one goroutine per table file. Each produces an independent
	// staging table; results are collected by schema position.
	tables := l.reg.Tables()
	results := make([]*staging.Table, len(tables))
	errs := make([]error, len(tables))
	var wg sync.WaitGroup
	for i, t := range tables {
		name, ok := files[t.Name]
		if !ok {
			continue // required-table coverage is checked by the builder
		}
		wg.Add(1)
		go func(i int, t *schema.Table, path string) {
			defer wg.Done()
			results[i], errs[i] = l.loadFile(t, path)
		}(i, t, filepath.Join(l.dir, name))
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	stg := staging.NewModel()
	for _, st := range results {
		if st != nil {
			stg.Add(st)
		}
	}
	return stg, nil
}

// loadFile parses one table file.
func (l *CSVLoader) loadFile(t *schema.Table, path string) (*staging.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // rows may be shorter than the header
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	grid, err := reader.ReadAll()
	if err != nil {
		return nil, &LoadError{Source: path, Reason: "malformed CSV", Err: err}
	}
	return tableFromRows(t, path, grid)
}
