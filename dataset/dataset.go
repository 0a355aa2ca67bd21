// Package dataset loads uploaded tabular data (CSV, XLS, XLSX) into an
// ordered, typed in-memory table of named columns.
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrEmptyTable signals that the input had no header row.
	ErrEmptyTable = errors.New("table has no header row")
	// ErrDuplicateColumn signals that two columns share the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrRaggedRow signals that a row's cell count differs from the header's.
	ErrRaggedRow = errors.New("row length does not match header")
)

// Column is a single named column of an uploaded table. Its cells are kept
// as the original text; when every cell parses as a number the parsed values
// are available through Floats.
type Column struct {
	Name    string
	cells   []string
	floats  []float64
	numeric bool
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	return len(c.cells)
}

// IsNumeric reports whether every cell of the column parses as a number.
func (c *Column) IsNumeric() bool {
	return c.numeric
}

// Strings returns the original cell texts.
func (c *Column) Strings() []string {
	out := make([]string, len(c.cells))
	copy(out, c.cells)
	return out
}

// Floats returns the parsed values of a numeric column in row order.
// The second return value is false for non-numeric columns.
func (c *Column) Floats() ([]float64, bool) {
	if !c.numeric {
		return nil, false
	}
	out := make([]float64, len(c.floats))
	copy(out, c.floats)
	return out, true
}

// Dataset is an immutable rectangular table: an ordered sequence of named
// columns of equal length.
type Dataset struct {
	cols   []Column
	byName map[string]int
	rows   int
}

// New builds a Dataset from a header row and data rows. Every row must have
// exactly as many cells as the header.
func New(header []string, rows [][]string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, ErrEmptyTable
	}

	byName := make(map[string]int, len(header))
	cols := make([]Column, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, ok := byName[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		byName[name] = i
		cols[i] = Column{
			Name:    name,
			cells:   make([]string, 0, len(rows)),
			floats:  make([]float64, 0, len(rows)),
			numeric: true,
		}
	}

	for n, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d", ErrRaggedRow, n+1, len(row), len(header))
		}
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			cols[i].cells = append(cols[i].cells, cell)
			if !cols[i].numeric {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				cols[i].numeric = false
				cols[i].floats = nil
				continue
			}
			cols[i].floats = append(cols[i].floats, v)
		}
	}

	// A column with no observations carries no values to regress on.
	if len(rows) == 0 {
		for i := range cols {
			cols[i].numeric = false
		}
	}

	return &Dataset{cols: cols, byName: byName, rows: len(rows)}, nil
}

// Rows returns the number of data rows (the observation count).
func (d *Dataset) Rows() int {
	return d.rows
}

// Columns returns the number of columns.
func (d *Dataset) Columns() int {
	return len(d.cols)
}

// ColumnNames returns the column names in their original order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.cols))
	for i := range d.cols {
		names[i] = d.cols[i].Name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// Column returns the named column, or nil if it does not exist.
func (d *Dataset) Column(name string) *Column {
	i, ok := d.byName[name]
	if !ok {
		return nil
	}
	return &d.cols[i]
}

// NumericColumn returns the parsed values of the named column.
// The second return value is false if the column is absent or non-numeric.
func (d *Dataset) NumericColumn(name string) ([]float64, bool) {
	col := d.Column(name)
	if col == nil {
		return nil, false
	}
	return col.Floats()
}
