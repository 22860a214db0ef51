// =============================================================================
// Availability Model Translator - Model Builder / Validator
// =============================================================================
//
// The builder turns a raw staging model into the canonical model, checking
// it against the schema registry on the way. It is the single place where
// type coercion and reference checking happen; loaders stay format-specific
// and dumb.
//
// The pass structure:
//
//   1. For every schema table, locate the staging table by canonical name.
//      Absent required tables are reported; absent optional tables become
//      empty tables.
//   2. Type pass: every cell of every row is parsed into its declared type.
//      Rows with unparsable or missing required values are reported and
//      dropped; unknown input columns are reported once per table and
//      otherwise ignored.
//   3. Reference pass: key indexes are built over the rows that survived
//      the type pass, then every reference value is resolved. Dangling
//      references are reported and the referencing row is dropped.
//
// Dropping never cascades: the reference pass checks against the indexes as
// they stood after the type pass, so a row referenced by a dropped row
// stays in the model. Any dangling references that dropping leaves behind
// surface on re-validation, matching single-pass semantics.
//
// Error order is deterministic: schema table order, then row order, then
// column order, with all reference errors after all type errors.
//
// =============================================================================

package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/availkit/amt/internal/model"
	"github.com/availkit/amt/internal/schema"
	"github.com/availkit/amt/internal/staging"
)

// Build constructs the canonical model from staging data.
//
// A non-empty error list does not prevent a model from being returned: the
// model contains every surviving row, and the caller decides whether a
// partial model is acceptable.
func Build(stg *staging.Model, reg *schema.Registry) (*model.Model, []*Error) {
	var errs []*Error
	m := model.NewModel()

	// Pass 1 + 2: table coverage and type coercion.
	for _, t := range reg.Tables() {
		mt := model.NewTable(t.Name)
		m.AddTable(mt)

		st, ok := stg.Lookup(t.Name)
		if !ok {
			if t.Required {
				errs = append(errs, &Error{
					Kind:    KindMissingTable,
					Table:   t.Name,
					Message: "required table is missing from the input",
				})
			}
			continue
		}

		// Unknown input columns are reported once per table and ignored.
		for _, h := range st.Headers {
			if _, ok := t.Column(h); !ok {
				errs = append(errs, &Error{
					Kind:    KindSchemaMismatch,
					Table:   t.Name,
					Column:  h,
					Message: "column is not declared in the schema and was ignored",
				})
			}
		}

		for _, row := range st.Rows {
			rec, rowErrs := typeRow(t, row)
			errs = append(errs, rowErrs...)
			if rec != nil {
				mt.Append(rec)
			}
		}
	}

	// Index every column that is the target of a reference, over the rows
	// that survived the type pass.
	indexTargets(m, reg)

	// Pass 3: resolve references. Checks run against the indexes built
	// above; rows dropped here are invisible only after the pass completes.
	errs = append(errs, resolveReferences(m, reg)...)

	// Rebuild the indexes so that Resolve on the returned model reflects
	// the final record set.
	indexTargets(m, reg)

	return m, errs
}

// typeRow parses one staging row into a typed record. A nil record means
// the row was dropped; the returned errors explain why (and also carry the
// non-fatal problems found before the fatal one).
func typeRow(t *schema.Table, row *staging.Row) (*model.Record, []*Error) {
	var errs []*Error
	rec := &model.Record{
		Values:    make(map[string]model.Value, len(t.Columns)),
		SourceRow: row.SourceRow,
	}
	drop := false

	for i := range t.Columns {
		c := &t.Columns[i]
		raw, present := row.Values[c.Name]
		if !present || raw == "" {
			if c.Nullable {
				rec.Values[c.Name] = model.Null()
				continue
			}
			msg := "required value is empty"
			if !present {
				msg = "required column is missing"
			}
			errs = append(errs, &Error{
				Kind:    KindSchemaMismatch,
				Table:   t.Name,
				Row:     row.SourceRow,
				Column:  c.Name,
				Message: msg,
			})
			drop = true
			continue
		}

		v, err := parseValue(c, raw)
		if err != nil {
			errs = append(errs, &Error{
				Kind:    KindType,
				Table:   t.Name,
				Row:     row.SourceRow,
				Column:  c.Name,
				Value:   raw,
				Message: err.Error(),
			})
			drop = true
			continue
		}
		rec.Values[c.Name] = v
	}

	if drop {
		return nil, errs
	}
	return rec, errs
}

// parseValue coerces one cell text into its declared type.
func parseValue(c *schema.Column, raw string) (model.Value, error) {
	switch c.Type {
	case schema.TypeString:
		return model.String(raw), nil
	case schema.TypeInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.Null(), fmt.Errorf("not a valid integer")
		}
		return model.Int(i), nil
	case schema.TypeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Null(), fmt.Errorf("not a valid number")
		}
		return model.Float(f), nil
	case schema.TypeBoolean:
		switch strings.ToLower(raw) {
		case "true", "yes", "y", "1":
			return model.Bool(true), nil
		case "false", "no", "n", "0":
			return model.Bool(false), nil
		}
		return model.Null(), fmt.Errorf("not a valid boolean")
	case schema.TypeReference:
		return model.Ref(c.Ref.Table, raw), nil
	}
	return model.Null(), fmt.Errorf("unsupported column type %s", c.Type)
}

// indexTargets (re)builds the key index on every referenced column.
func indexTargets(m *model.Model, reg *schema.Registry) {
	for _, t := range reg.Tables() {
		for i := range t.Columns {
			c := &t.Columns[i]
			if c.Type != schema.TypeReference {
				continue
			}
			if target, ok := m.Lookup(c.Ref.Table); ok {
				target.IndexColumn(c.Ref.Column)
			}
		}
	}
}

// resolveReferences checks every reference value and drops referencing rows
// whose target does not exist.
func resolveReferences(m *model.Model, reg *schema.Registry) []*Error {
	var errs []*Error
	for _, t := range reg.Tables() {
		refCols := referenceColumns(t)
		if len(refCols) == 0 {
			continue
		}
		mt, _ := m.Lookup(t.Name)

		surviving := mt.Records[:0]
		for _, rec := range mt.Records {
			keep := true
			for _, c := range refCols {
				v := rec.Values[c.Name]
				if v.IsNull() {
					continue // nullable reference, nothing to resolve
				}
				target, _ := m.Lookup(c.Ref.Table)
				if _, ok := target.Key(c.Ref.Column, v.Str()); !ok {
					errs = append(errs, &Error{
						Kind:   KindReference,
						Table:  t.Name,
						Row:    rec.SourceRow,
						Column: c.Name,
						Value:  v.Str(),
						Message: fmt.Sprintf("no row in table %q has %s = %q",
							c.Ref.Table, c.Ref.Column, v.Str()),
					})
					keep = false
				}
			}
			if keep {
				surviving = append(surviving, rec)
			}
		}
		mt.Records = surviving
	}
	return errs
}

// referenceColumns returns the table's reference columns in declaration
// order.
func referenceColumns(t *schema.Table) []*schema.Column {
	var cols []*schema.Column
	for i := range t.Columns {
		if t.Columns[i].Type == schema.TypeReference {
			cols = append(cols, &t.Columns[i])
		}
	}
	return cols
}
