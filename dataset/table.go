package dataset

import (
	"fmt"

	"github.com/grovekit/grove/feature"
)

/*
Table is a loaded training dataset: a feature matrix X with one column
per input feature, a target matrix Y and the features describing them.
Discrete targets are encoded in Y as class indices.
*/
type Table struct {
	X        *Matrix
	Y        *Matrix
	Features []feature.Feature
	Target   feature.Feature
}

/*
NewTable takes a feature matrix, a target matrix and the features
describing their columns and returns a table with them, or an error if
the shapes do not agree or an input feature is not continuous.
*/
func NewTable(X, Y *Matrix, features []feature.Feature, target feature.Feature) (*Table, error) {
	if X.Cols() != len(features) {
		return nil, fmt.Errorf("building table: %d feature columns described by %d features", X.Cols(), len(features))
	}
	if X.Rows() != Y.Rows() {
		return nil, fmt.Errorf("building table: %d feature rows but %d target rows", X.Rows(), Y.Rows())
	}
	for _, f := range features {
		if _, ok := f.(*feature.ContinuousFeature); !ok {
			return nil, fmt.Errorf("building table: input feature %s is not continuous", f.Name())
		}
	}
	return &Table{X: X, Y: Y, Features: features, Target: target}, nil
}

// FeatureNames returns the names of the table's input features, in
// column order.
func (t *Table) FeatureNames() []string {
	names := make([]string, len(t.Features))
	for i, f := range t.Features {
		names[i] = f.Name()
	}
	return names
}

// Count returns the number of samples in the table.
func (t *Table) Count() int {
	return t.X.Rows()
}
