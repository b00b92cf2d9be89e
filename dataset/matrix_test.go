package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatrixFromRows(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 2, m.Cols())
	require.Equal(t, 4.0, m.At(1, 1))
	require.Equal(t, []float64{5, 6}, m.Row(2))
}

func TestMatrixFromRowsRejectsRaggedRows(t *testing.T) {
	_, err := MatrixFromRows([][]float64{{1, 2}, {3}})
	require.Error(t, err)
}

func TestMatrixFromRowsRejectsEmpty(t *testing.T) {
	_, err := MatrixFromRows(nil)
	require.Error(t, err)
}

func TestMatrixCopyIsIndependent(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2}})
	require.NoError(t, err)
	c := m.Copy()
	c.SetAt(0, 0, 9)
	require.Equal(t, 1.0, m.At(0, 0))
	require.Equal(t, 9.0, c.At(0, 0))
}

func TestArgsortColumns(t *testing.T) {
	m, err := MatrixFromRows([][]float64{
		{3, 10},
		{1, 30},
		{2, 20},
	})
	require.NoError(t, err)
	order := m.ArgsortColumns()
	require.Equal(t, [][]int{{1, 2, 0}, {0, 2, 1}}, order)
}

func TestArgsortColumnsIsStable(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1}, {1}, {0}, {1}})
	require.NoError(t, err)
	require.Equal(t, [][]int{{2, 0, 1, 3}}, m.ArgsortColumns())
}

func TestRowsWhere(t *testing.T) {
	m, err := MatrixFromRows([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	sub := m.RowsWhere([]bool{true, false, true})
	require.Equal(t, 2, sub.Rows())
	require.Equal(t, []float64{1, 2}, sub.Row(0))
	require.Equal(t, []float64{5, 6}, sub.Row(1))
}
