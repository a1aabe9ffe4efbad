package domain

import (
	"fmt"
	"slices"
)

// Table is an immutable column-major snapshot of occurrence records.
// Methods that change shape or content return a new Table.
type Table struct {
	names []string
	index map[string]int
	cols  [][]Cell
	rows  int
}

// NewTable builds a table from row-major data. Short rows are padded with
// absent cells; rows longer than the header are rejected.
func NewTable(names []string, rows [][]Cell) (*Table, error) {
	cols := make([][]Cell, len(names))
	for c := range cols {
		cols[c] = make([]Cell, len(rows))
	}
	for r, row := range rows {
		if len(row) > len(names) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", r+1, len(row), len(names))
		}
		for c, cell := range row {
			cols[c][r] = cell
		}
	}
	return NewTableFromColumns(names, cols)
}

// NewTableFromColumns builds a table from column-major data. Column names must
// be unique and every column must have the same length.
func NewTableFromColumns(names []string, cols [][]Cell) (*Table, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%d column names for %d columns", len(names), len(cols))
	}
	t := &Table{
		names: slices.Clone(names),
		index: make(map[string]int, len(names)),
		cols:  make([][]Cell, len(cols)),
	}
	for i, name := range names {
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		if i > 0 && len(cols[i]) != len(cols[0]) {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(cols[i]), len(cols[0]))
		}
		t.index[name] = i
		t.cols[i] = cols[i]
	}
	if len(cols) > 0 {
		t.rows = len(cols[0])
	}
	return t, nil
}

// NumRows returns the number of records.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.names) }

// Columns returns the column names in order.
func (t *Table) Columns() []string { return slices.Clone(t.names) }

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column. The returned slice is shared with the
// table and must not be modified.
func (t *Table) Column(name string) ([]Cell, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Cell returns one value; a missing column reads as absent.
func (t *Table) Cell(row int, name string) Cell {
	i, ok := t.index[name]
	if !ok {
		return Absent()
	}
	return t.cols[i][row]
}

// Row returns a copy of one record in column order.
func (t *Table) Row(r int) []Cell {
	row := make([]Cell, len(t.cols))
	for c := range t.cols {
		row[c] = t.cols[c][r]
	}
	return row
}

// WithColumn returns a table with the named column replaced, or appended when
// it does not exist yet. It panics if cells does not match the row count of a
// non-empty table.
func (t *Table) WithColumn(name string, cells []Cell) *Table {
	if len(t.names) > 0 && len(cells) != t.rows {
		panic(fmt.Sprintf("domain: column %q has %d rows, table has %d", name, len(cells), t.rows))
	}
	next := t.shallowCopy()
	if i, ok := next.index[name]; ok {
		next.cols[i] = cells
	} else {
		next.index[name] = len(next.names)
		next.names = append(next.names, name)
		next.cols = append(next.cols, cells)
	}
	next.rows = len(cells)
	return next
}

// Drop returns a table without the named columns. Names that do not exist are
// ignored.
func (t *Table) Drop(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	next := &Table{index: make(map[string]int, len(t.names)), rows: t.rows}
	for i, n := range t.names {
		if drop[n] {
			continue
		}
		next.index[n] = len(next.names)
		next.names = append(next.names, n)
		next.cols = append(next.cols, t.cols[i])
	}
	return next
}

// Filter returns a table holding only the rows for which keep returns true,
// in their original order.
func (t *Table) Filter(keep func(row int) bool) *Table {
	selected := make([]int, 0, t.rows)
	for r := 0; r < t.rows; r++ {
		if keep(r) {
			selected = append(selected, r)
		}
	}
	if len(selected) == t.rows {
		return t
	}
	next := t.shallowCopy()
	for c := range next.cols {
		col := make([]Cell, len(selected))
		for i, r := range selected {
			col[i] = t.cols[c][r]
		}
		next.cols[c] = col
	}
	next.rows = len(selected)
	return next
}

// Map returns a column holding fn applied to each cell of the named column.
// A missing column is treated as all-absent.
func (t *Table) Map(name string, fn func(Cell) Cell) []Cell {
	src, ok := t.Column(name)
	out := make([]Cell, t.rows)
	for r := range out {
		var c Cell
		if ok {
			c = src[r]
		}
		out[r] = fn(c)
	}
	return out
}

func (t *Table) shallowCopy() *Table {
	next := &Table{
		names: slices.Clone(t.names),
		index: make(map[string]int, len(t.index)),
		cols:  slices.Clone(t.cols),
		rows:  t.rows,
	}
	for k, v := range t.index {
		next.index[k] = v
	}
	return next
}
