package table

import (
	"errors"
	"fmt"
)

// ErrNoColumns indicates a table constructed without any column labels.
var ErrNoColumns = errors.New("feature table needs at least one column")

// ErrRowWidthMismatch indicates a row whose length differs from the number
// of table columns.
type ErrRowWidthMismatch struct {
	Want int
	Got  int
}

func (e *ErrRowWidthMismatch) Error() string {
	return fmt.Sprintf("row has %d values, table has %d columns", e.Got, e.Want)
}

// FeatureTable is a dense float64 matrix with named columns.
// One row per molecule, identical width across rows.
type FeatureTable struct {
	columns []string
	rows    [][]float64
}

// New creates an empty table with the given column labels.
func New(columns []string) (*FeatureTable, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	cols := make([]string, len(columns))
	copy(cols, columns)

	return &FeatureTable{columns: cols}, nil
}

// MustNew is like New but panics on error. Intended for tests and
// compile-time-constant column sets.
func MustNew(columns []string) *FeatureTable {
	t, err := New(columns)
	if err != nil {
		panic(err)
	}
	return t
}

// AppendRow adds a row to the table. The row is copied.
func (t *FeatureTable) AppendRow(row []float64) error {
	if len(row) != len(t.columns) {
		return &ErrRowWidthMismatch{Want: len(t.columns), Got: len(row)}
	}

	r := make([]float64, len(row))
	copy(r, row)
	t.rows = append(t.rows, r)

	return nil
}

// NumRows returns the number of rows.
func (t *FeatureTable) NumRows() int {
	return len(t.rows)
}

// NumColumns returns the number of columns.
func (t *FeatureTable) NumColumns() int {
	return len(t.columns)
}

// Columns returns a copy of the column labels.
func (t *FeatureTable) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Row returns a copy of row i.
func (t *FeatureTable) Row(i int) []float64 {
	row := make([]float64, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// At returns the value at row i, column j.
func (t *FeatureTable) At(i, j int) float64 {
	return t.rows[i][j]
}
