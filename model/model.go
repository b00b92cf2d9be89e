/*
Package model wraps a grown tree together with the features it was
trained on and the kind of task it solves, shaping raw tree
predictions into class labels and probabilities for classification or
numeric values for regression. It also provides stores to save and
load fitted models by name.
*/
package model

import (
	"fmt"

	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/feature"
	"github.com/grovekit/grove/tree"
)

// TaskKind is the kind of prediction task a model solves.
type TaskKind int

const (
	// Classification predicts one of a finite set of classes; the
	// tree's payload holds per-class training sample counts.
	Classification TaskKind = iota
	// Regression predicts numeric values; the tree's payload holds
	// per-output means.
	Regression
)

func (k TaskKind) String() string {
	if k == Classification {
		return "classification"
	}
	return "regression"
}

/*
Model is a fitted decision tree together with the input features it
consumes and the target feature it predicts. The task kind follows the
target: discrete targets are classified, continuous ones regressed.
*/
type Model struct {
	Tree     *tree.Tree
	Features []feature.Feature
	Target   feature.Feature
}

/*
New takes a grown tree, the input features matching its feature
columns and the target feature it predicts and returns a model, or an
error if the feature count or, for discrete targets, the class count
does not match the tree.
*/
func New(t *tree.Tree, features []feature.Feature, target feature.Feature) (*Model, error) {
	if t.FeatureCount() != len(features) {
		return nil, fmt.Errorf("building model: tree has %d features, %d described", t.FeatureCount(), len(features))
	}
	if df, ok := target.(*feature.DiscreteFeature); ok {
		if t.ValueWidth() != len(df.AvailableValues()) {
			return nil, fmt.Errorf("building model: tree payload width %d does not match %d classes", t.ValueWidth(), len(df.AvailableValues()))
		}
	}
	return &Model{Tree: t, Features: features, Target: target}, nil
}

// Task returns the kind of task the model solves.
func (m *Model) Task() TaskKind {
	if _, ok := m.Target.(*feature.DiscreteFeature); ok {
		return Classification
	}
	return Regression
}

// FeatureNames returns the names of the model's input features, in
// column order.
func (m *Model) FeatureNames() []string {
	names := make([]string, len(m.Features))
	for i, f := range m.Features {
		names[i] = f.Name()
	}
	return names
}

/*
PredictProba takes a matrix of samples and returns, for
classification models, a matrix with one row per sample holding the
probability of each class: the per-class counts of the reached leaf
normalized to sum to one.
*/
func (m *Model) PredictProba(X *dataset.Matrix) (*dataset.Matrix, error) {
	if m.Task() != Classification {
		return nil, fmt.Errorf("predicting probabilities: not a classification model")
	}
	out, err := m.Tree.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("predicting probabilities: %v", err)
	}
	for i := 0; i < out.Rows(); i++ {
		row := out.Row(i)
		var total float64
		for _, v := range row {
			total += v
		}
		if total > 0 {
			for j := range row {
				row[j] /= total
			}
		}
	}
	return out, nil
}

/*
PredictClass takes a matrix of samples and returns, for classification
models, the most probable class label for each sample.
*/
func (m *Model) PredictClass(X *dataset.Matrix) ([]string, error) {
	df, ok := m.Target.(*feature.DiscreteFeature)
	if !ok {
		return nil, fmt.Errorf("predicting classes: not a classification model")
	}
	out, err := m.Tree.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("predicting classes: %v", err)
	}
	classes := df.AvailableValues()
	labels := make([]string, out.Rows())
	for i := 0; i < out.Rows(); i++ {
		best := 0
		row := out.Row(i)
		for j, v := range row {
			if v > row[best] {
				best = j
			}
		}
		labels[i] = classes[best]
	}
	return labels, nil
}

/*
PredictValue takes a matrix of samples and returns, for regression
models, the predicted value of the first output for each sample.
*/
func (m *Model) PredictValue(X *dataset.Matrix) ([]float64, error) {
	if m.Task() != Regression {
		return nil, fmt.Errorf("predicting values: not a regression model")
	}
	out, err := m.Tree.Predict(X)
	if err != nil {
		return nil, fmt.Errorf("predicting values: %v", err)
	}
	values := make([]float64, out.Rows())
	for i := range values {
		values[i] = out.At(i, 0)
	}
	return values, nil
}
