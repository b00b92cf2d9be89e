package csv

import (
	"strings"
	"testing"

	"github.com/grovekit/grove/feature"
	"github.com/stretchr/testify/require"
)

func TestReadTableWithDiscreteTarget(t *testing.T) {
	input := strings.Join([]string{
		"id,height,color,width",
		"1,1.5,blue,10",
		"2,2.5,red,20",
		"3,0.5,blue,30",
	}, "\n")
	features := []feature.Feature{
		feature.NewContinuousFeature("height"),
		feature.NewContinuousFeature("width"),
	}
	target := feature.NewDiscreteFeature("color", []string{"blue", "red"})

	table, err := ReadTable(strings.NewReader(input), features, target)
	require.NoError(t, err)
	require.Equal(t, 3, table.Count())
	require.Equal(t, 2, table.X.Cols())
	require.Equal(t, []float64{1.5, 10}, table.X.Row(0))
	require.Equal(t, []float64{2.5, 20}, table.X.Row(1))
	// target values are encoded as class indices
	require.Equal(t, []float64{0}, table.Y.Row(0))
	require.Equal(t, []float64{1}, table.Y.Row(1))
	require.Equal(t, []float64{0}, table.Y.Row(2))
}

func TestReadTableWithContinuousTarget(t *testing.T) {
	input := "x,y\n1,10.5\n2,20.5\n"
	features := []feature.Feature{feature.NewContinuousFeature("x")}
	target := feature.NewContinuousFeature("y")

	table, err := ReadTable(strings.NewReader(input), features, target)
	require.NoError(t, err)
	require.Equal(t, []float64{10.5}, table.Y.Row(0))
	require.Equal(t, []float64{20.5}, table.Y.Row(1))
}

func TestReadTableMissingColumn(t *testing.T) {
	input := "x,y\n1,2\n"
	features := []feature.Feature{feature.NewContinuousFeature("z")}
	target := feature.NewContinuousFeature("y")
	_, err := ReadTable(strings.NewReader(input), features, target)
	require.Error(t, err)
	require.Contains(t, err.Error(), "z")
}

func TestReadTableUnknownTargetValue(t *testing.T) {
	input := "x,color\n1,green\n"
	features := []feature.Feature{feature.NewContinuousFeature("x")}
	target := feature.NewDiscreteFeature("color", []string{"blue", "red"})
	_, err := ReadTable(strings.NewReader(input), features, target)
	require.Error(t, err)
}

func TestReadTableInvalidNumber(t *testing.T) {
	input := "x,y\nnope,2\n"
	features := []feature.Feature{feature.NewContinuousFeature("x")}
	target := feature.NewContinuousFeature("y")
	_, err := ReadTable(strings.NewReader(input), features, target)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestReadMatrix(t *testing.T) {
	input := "extra,b,a\n9,2,1\n9,4,3\n"
	features := []feature.Feature{
		feature.NewContinuousFeature("a"),
		feature.NewContinuousFeature("b"),
	}
	X, err := ReadMatrix(strings.NewReader(input), features)
	require.NoError(t, err)
	require.Equal(t, 2, X.Rows())
	// columns follow feature order, not header order
	require.Equal(t, []float64{1, 2}, X.Row(0))
	require.Equal(t, []float64{3, 4}, X.Row(1))
}

func TestReadMatrixMissingColumn(t *testing.T) {
	input := "a\n1\n"
	features := []feature.Feature{feature.NewContinuousFeature("b")}
	_, err := ReadMatrix(strings.NewReader(input), features)
	require.Error(t, err)
}
