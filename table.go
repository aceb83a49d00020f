package baskets

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Kind is the declared element type of a column. Kinds are advisory: cells are
// stored as plain values and the kind only drives CSV (de)serialization.
type Kind int

const (
	String Kind = iota
	Float
)

func (k Kind) String() string {
	if k == Float {
		return "float"
	}
	return "string"
}

// Column is a named, typed column of a Table.
type Column struct {
	Name string
	Kind Kind
}

// Table is a small relational container: ordered columns with declared kinds,
// and ordered rows aligned to the column list.
//
// Tables behave as values: every transformation returns a new Table and never
// mutates the receiver, so the same raw table can feed several derived
// pipelines without aliasing surprises.
type Table struct {
	columns []Column
	rows    [][]any
}

// SchemaError reports a structural misuse of a Table: an unknown or duplicate
// column name, or incompatible schemas on Concat.
type SchemaError struct {
	Op      string   // the operation that failed
	Columns []string // the offending column names
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table: %s: invalid columns %s", e.Op, strings.Join(e.Columns, ", "))
}

// NewTable builds a table from columns and rows. Column names must be unique
// and every row must have exactly one cell per column.
func NewTable(columns []Column, rows [][]any) (Table, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Name] {
			return Table{}, &SchemaError{Op: "new", Columns: []string{c.Name}}
		}
		seen[c.Name] = true
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return Table{}, fmt.Errorf("table: new: row %d has %d cells, want %d", i, len(row), len(columns))
		}
	}
	return Table{columns: slices.Clone(columns), rows: slices.Clone(rows)}, nil
}

// Columns returns the column names in declaration order.
func (t Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.rows) }

// HasColumn reports whether the table declares the named column.
func (t Table) HasColumn(name string) bool {
	_, ok := t.index(name)
	return ok
}

func (t Table) index(name string) (int, bool) {
	for i, c := range t.columns {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Row is a read-only view on one row of a Table.
type Row struct {
	table *Table
	i     int
}

// Value returns the cell for the named column, or nil if the column is unknown.
func (r Row) Value(name string) any {
	i, ok := r.table.index(name)
	if !ok {
		return nil
	}
	return r.table.rows[r.i][i]
}

// Float returns the cell as a float64, or 0 if it is not one.
func (r Row) Float(name string) float64 {
	f, _ := r.Value(name).(float64)
	return f
}

// String returns the cell as a string, or "" if it is not one.
func (r Row) String(name string) string {
	s, _ := r.Value(name).(string)
	return s
}

// Rows iterates over the table rows in order.
func (t Table) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i := range t.rows {
			if !yield(Row{table: &t, i: i}) {
				return
			}
		}
	}
}

// Create appends a new column computed per row by fn. It fails with a
// SchemaError if the column already exists.
func (t Table) Create(name string, kind Kind, fn func(Row) any) (Table, error) {
	if t.HasColumn(name) {
		return Table{}, &SchemaError{Op: "create", Columns: []string{name}}
	}
	columns := append(slices.Clone(t.columns), Column{Name: name, Kind: kind})
	rows := make([][]any, len(t.rows))
	for i, row := range t.rows {
		cell := fn(Row{table: &t, i: i})
		rows[i] = append(append(make([]any, 0, len(row)+1), row...), cell)
	}
	return Table{columns: columns, rows: rows}, nil
}

// Delete returns a table without the named columns. Every name must exist.
func (t Table) Delete(names ...string) (Table, error) {
	if missing := t.missing(names); len(missing) > 0 {
		return Table{}, &SchemaError{Op: "delete", Columns: missing}
	}
	keep := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if !slices.Contains(names, c.Name) {
			keep = append(keep, c.Name)
		}
	}
	return t.Select(keep...)
}

// Select returns a table restricted, and reordered, to exactly the named
// columns. Every name must exist.
func (t Table) Select(names ...string) (Table, error) {
	if missing := t.missing(names); len(missing) > 0 {
		return Table{}, &SchemaError{Op: "select", Columns: missing}
	}
	columns := make([]Column, len(names))
	indices := make([]int, len(names))
	for j, name := range names {
		i, _ := t.index(name)
		columns[j] = t.columns[i]
		indices[j] = i
	}
	rows := make([][]any, len(t.rows))
	for i, row := range t.rows {
		nrow := make([]any, len(indices))
		for j, k := range indices {
			nrow[j] = row[k]
		}
		rows[i] = nrow
	}
	return Table{columns: columns, rows: rows}, nil
}

// Map replaces the named column's cells by applying fn to each one. The
// result kind may differ from the original declared kind.
func (t Table) Map(name string, kind Kind, fn func(any) any) (Table, error) {
	k, ok := t.index(name)
	if !ok {
		return Table{}, &SchemaError{Op: "map", Columns: []string{name}}
	}
	columns := slices.Clone(t.columns)
	columns[k].Kind = kind
	rows := make([][]any, len(t.rows))
	for i, row := range t.rows {
		nrow := slices.Clone(row)
		nrow[k] = fn(row[k])
		rows[i] = nrow
	}
	return Table{columns: columns, rows: rows}, nil
}

// Order returns a table with rows sorted by cmp. The sort is stable.
func (t Table) Order(cmp func(a, b Row) int) Table {
	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp(Row{table: &t, i: a}, Row{table: &t, i: b})
	})
	rows := make([][]any, len(t.rows))
	for i, k := range order {
		rows[i] = t.rows[k]
	}
	return Table{columns: slices.Clone(t.columns), rows: rows}
}

// Head returns the first n rows. n larger than the row count is clamped.
func (t Table) Head(n int) Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}
	return Table{columns: slices.Clone(t.columns), rows: t.rows[:n]}
}

// Values returns the named column's cells in row order.
func (t Table) Values(name string) ([]any, error) {
	i, ok := t.index(name)
	if !ok {
		return nil, &SchemaError{Op: "values", Columns: []string{name}}
	}
	values := make([]any, len(t.rows))
	for j, row := range t.rows {
		values[j] = row[i]
	}
	return values, nil
}

// Floats returns the named column's cells as a float64 slice. Every cell must
// be a float64.
func (t Table) Floats(name string) ([]float64, error) {
	i, ok := t.index(name)
	if !ok {
		return nil, &SchemaError{Op: "floats", Columns: []string{name}}
	}
	values := make([]float64, len(t.rows))
	for j, row := range t.rows {
		f, ok := row[i].(float64)
		if !ok {
			return nil, fmt.Errorf("table: floats: column %q row %d holds %T, not float64", name, j, row[i])
		}
		values[j] = f
	}
	return values, nil
}

// Concat merges tables into one whose schema is the schema of the first.
// Later tables must declare the same column names in the same order; any
// mismatch is a SchemaError. Callers are expected to make schemas uniform
// first (see AddMissingColumns) rather than rely on an implicit union.
func Concat(tables ...Table) (Table, error) {
	if len(tables) == 0 {
		return Table{}, fmt.Errorf("table: concat: no tables")
	}
	first := tables[0]
	rows := slices.Clone(first.rows)
	for _, t := range tables[1:] {
		if !slices.Equal(first.Columns(), t.Columns()) {
			return Table{}, &SchemaError{Op: "concat", Columns: t.Columns()}
		}
		rows = append(rows, t.rows...)
	}
	return Table{columns: slices.Clone(first.columns), rows: rows}, nil
}

func (t Table) missing(names []string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
