/*
Package dataset provides the dense numeric matrices decision trees are
grown from and predict over, and the tabular form training data is
loaded into from CSV files, SQL databases and MongoDB collections.
*/
package dataset

import (
	"fmt"
	"sort"
)

/*
Matrix is a dense row-major matrix of float64 values. It is the shape
training features, targets and prediction inputs take.
*/
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a zero-valued matrix with the given dimensions.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

/*
MatrixFromRows takes a slice of equally-sized rows and returns a
matrix with their values, or an error if the rows are empty or ragged.
*/
func MatrixFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("building matrix: no data")
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			return nil, fmt.Errorf("building matrix: row %d has %d values, want %d", i, len(row), m.cols)
		}
		copy(m.Row(i), row)
	}
	return m, nil
}

// Rows returns the number of rows of the matrix.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns of the matrix.
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// SetAt sets the value at row i, column j.
func (m *Matrix) SetAt(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Row returns the i-th row as a slice sharing the matrix's storage.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// Copy returns an independent copy of the matrix.
func (m *Matrix) Copy() *Matrix {
	c := NewMatrix(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

/*
ArgsortColumns returns, for every column, the row indices ordered by
ascending column value. The sort is stable, so rows with equal values
keep their relative order. The result is the sort-order index shared
across the recursive calls of the tree builder.
*/
func (m *Matrix) ArgsortColumns() [][]int {
	order := make([][]int, m.cols)
	for j := 0; j < m.cols; j++ {
		idx := make([]int, m.rows)
		for i := range idx {
			idx[i] = i
		}
		col := j
		sort.SliceStable(idx, func(a, b int) bool {
			return m.At(idx[a], col) < m.At(idx[b], col)
		})
		order[j] = idx
	}
	return order
}

/*
RowsWhere returns a new matrix holding only the rows for which the
given mask is true, in their original order.
*/
func (m *Matrix) RowsWhere(mask []bool) *Matrix {
	n := 0
	for i := 0; i < m.rows; i++ {
		if mask[i] {
			n++
		}
	}
	out := NewMatrix(n, m.cols)
	k := 0
	for i := 0; i < m.rows; i++ {
		if mask[i] {
			copy(out.Row(k), m.Row(i))
			k++
		}
	}
	return out
}
