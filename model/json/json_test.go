package json

import (
	"bytes"
	"testing"

	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/feature"
	"github.com/grovekit/grove/model"
	"github.com/grovekit/grove/tree"
	"github.com/stretchr/testify/require"
)

func classificationModel(t *testing.T) *model.Model {
	t.Helper()
	tr := tree.New(1, 2, 3)
	tr.AddSplitNode(tree.NoParent, false, 0, 2.5, 0, 0.5, 4, []float64{2, 2})
	tr.AddLeaf(0, true, []float64{2, 0}, 0, 2)
	tr.AddLeaf(0, false, []float64{0, 2}, 0, 2)
	m, err := model.New(tr,
		[]feature.Feature{feature.NewContinuousFeature("size")},
		feature.NewDiscreteFeature("color", []string{"blue", "red"}))
	require.NoError(t, err)
	return m
}

func regressionModel(t *testing.T) *model.Model {
	t.Helper()
	tr := tree.New(1, 1, 3)
	tr.AddSplitNode(tree.NoParent, false, 0, 2.5, 0, 1.25, 4, []float64{2.5})
	tr.AddLeaf(0, true, []float64{1.5}, 0.25, 2)
	tr.AddLeaf(0, false, []float64{3.5}, 0.25, 2)
	m, err := model.New(tr,
		[]feature.Feature{feature.NewContinuousFeature("size")},
		feature.NewContinuousFeature("weight"))
	require.NoError(t, err)
	return m
}

func TestClassificationModelRoundTrip(t *testing.T) {
	m := classificationModel(t)
	data, err := Encode(m)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, model.Classification, decoded.Task())
	require.Equal(t, m.FeatureNames(), decoded.FeatureNames())
	require.Equal(t, m.Tree, decoded.Tree)

	X, err := dataset.MatrixFromRows([][]float64{{1}, {4}})
	require.NoError(t, err)
	want, err := m.PredictClass(X)
	require.NoError(t, err)
	got, err := decoded.PredictClass(X)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRegressionModelRoundTrip(t *testing.T) {
	m := regressionModel(t)
	data, err := Encode(m)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, model.Regression, decoded.Task())

	X, err := dataset.MatrixFromRows([][]float64{{1}, {4}})
	require.NoError(t, err)
	want, err := m.PredictValue(X)
	require.NoError(t, err)
	got, err := decoded.PredictValue(X)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestPrunedModelRoundTrip(t *testing.T) {
	m := classificationModel(t)
	pruned, err := m.Tree.Prune(1)
	require.NoError(t, err)
	pm, err := model.New(pruned, m.Features, m.Target)
	require.NoError(t, err)

	data, err := Encode(pm)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, pruned, decoded.Tree)
}

func TestWriteAndReadModel(t *testing.T) {
	m := classificationModel(t)
	var buf bytes.Buffer
	require.NoError(t, WriteModel(&buf, m))
	decoded, err := ReadModel(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Tree, decoded.Tree)
}

func TestEncodeDecoderRoundTrip(t *testing.T) {
	ed := NewEncodeDecoder()
	m := regressionModel(t)
	data, err := ed.Encode(m)
	require.NoError(t, err)
	decoded, err := ed.Decode(data)
	require.NoError(t, err)
	require.Equal(t, m.Tree, decoded.Tree)
}

func TestDecodeRejectsUnknownTask(t *testing.T) {
	_, err := Decode([]byte(`{"task": "clustering"}`))
	require.Error(t, err)
}

func TestDecodeRejectsClassificationWithoutClasses(t *testing.T) {
	m := classificationModel(t)
	data, err := Encode(m)
	require.NoError(t, err)
	corrupted := bytes.Replace(data, []byte(`,"classes":["blue","red"]`), nil, 1)
	require.NotEqual(t, data, corrupted)
	_, err = Decode(corrupted)
	require.Error(t, err)
}
