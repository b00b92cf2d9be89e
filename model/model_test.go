package model

import (
	"testing"

	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/feature"
	"github.com/grovekit/grove/tree"
	"github.com/stretchr/testify/require"
)

/*
newClassificationModel wraps a 3-node tree splitting its only feature
at 2.5 into pure "blue" and "red" leaves.
*/
func newClassificationModel(t *testing.T) *Model {
	t.Helper()
	tr := tree.New(1, 2, 3)
	tr.AddSplitNode(tree.NoParent, false, 0, 2.5, 0, 0.5, 4, []float64{2, 2})
	tr.AddLeaf(0, true, []float64{2, 0}, 0, 2)
	tr.AddLeaf(0, false, []float64{0, 2}, 0, 2)
	m, err := New(tr,
		[]feature.Feature{feature.NewContinuousFeature("size")},
		feature.NewDiscreteFeature("color", []string{"blue", "red"}))
	require.NoError(t, err)
	return m
}

func newRegressionModel(t *testing.T) *Model {
	t.Helper()
	tr := tree.New(1, 1, 3)
	tr.AddSplitNode(tree.NoParent, false, 0, 2.5, 0, 1.25, 4, []float64{2.5})
	tr.AddLeaf(0, true, []float64{1.5}, 0.25, 2)
	tr.AddLeaf(0, false, []float64{3.5}, 0.25, 2)
	m, err := New(tr,
		[]feature.Feature{feature.NewContinuousFeature("size")},
		feature.NewContinuousFeature("weight"))
	require.NoError(t, err)
	return m
}

func TestTaskFollowsTargetKind(t *testing.T) {
	require.Equal(t, Classification, newClassificationModel(t).Task())
	require.Equal(t, Regression, newRegressionModel(t).Task())
	require.Equal(t, "classification", Classification.String())
	require.Equal(t, "regression", Regression.String())
}

func TestNewRejectsFeatureCountMismatch(t *testing.T) {
	tr := tree.New(2, 1, 1)
	tr.AddLeaf(tree.NoParent, false, []float64{1}, 0, 1)
	_, err := New(tr,
		[]feature.Feature{feature.NewContinuousFeature("only")},
		feature.NewContinuousFeature("y"))
	require.Error(t, err)
}

func TestNewRejectsClassCountMismatch(t *testing.T) {
	tr := tree.New(1, 2, 1)
	tr.AddLeaf(tree.NoParent, false, []float64{1, 1}, 0, 2)
	_, err := New(tr,
		[]feature.Feature{feature.NewContinuousFeature("size")},
		feature.NewDiscreteFeature("color", []string{"blue", "red", "green"}))
	require.Error(t, err)
}

func TestPredictClass(t *testing.T) {
	m := newClassificationModel(t)
	X, err := dataset.MatrixFromRows([][]float64{{1}, {4}, {2.5}})
	require.NoError(t, err)
	labels, err := m.PredictClass(X)
	require.NoError(t, err)
	require.Equal(t, []string{"blue", "red", "blue"}, labels)
}

func TestPredictProba(t *testing.T) {
	m := newClassificationModel(t)
	X, err := dataset.MatrixFromRows([][]float64{{1}, {4}})
	require.NoError(t, err)
	probas, err := m.PredictProba(X)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0}, probas.Row(0))
	require.Equal(t, []float64{0, 1}, probas.Row(1))
}

func TestPredictValue(t *testing.T) {
	m := newRegressionModel(t)
	X, err := dataset.MatrixFromRows([][]float64{{1}, {4}})
	require.NoError(t, err)
	values, err := m.PredictValue(X)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 3.5}, values)
}

func TestPredictionsRejectWrongTaskKind(t *testing.T) {
	X, err := dataset.MatrixFromRows([][]float64{{1}})
	require.NoError(t, err)

	_, err = newRegressionModel(t).PredictClass(X)
	require.Error(t, err)
	_, err = newRegressionModel(t).PredictProba(X)
	require.Error(t, err)
	_, err = newClassificationModel(t).PredictValue(X)
	require.Error(t, err)
}

func TestFeatureNames(t *testing.T) {
	require.Equal(t, []string{"size"}, newClassificationModel(t).FeatureNames())
}
