/*
Package criterion provides the impurity criteria trees are grown
under: Gini index and entropy for classification, mean squared error
for regression.

A criterion is initialized with the target values of the samples
reaching a node, with every sample on the right side of a candidate
split, and is then updated incrementally as the split boundary sweeps
over the node's samples in feature order. Eval returns the weighted
error of the current left/right partition; with no samples moved left
it is the error of the node as a leaf.
*/
package criterion

import (
	"fmt"

	"github.com/grovekit/grove/dataset"
)

/*
Criterion computes the error of a sample subset and supports
incremental evaluation of candidate split points.
*/
type Criterion interface {
	// Init computes the totals over the samples selected by the
	// given mask, n of which are set, and resets the split boundary
	// so that every sample is on the right side.
	Init(y *dataset.Matrix, mask []bool, n int)
	// Reset moves the split boundary back to the start, undoing all
	// updates since Init.
	Reset()
	// Update moves the samples at positions [a, b) of the given
	// sample order from the right side to the left side and returns
	// the resulting left-side count.
	Update(a, b int, order []int) int
	// Eval returns the error of the current partition: the impurity
	// of each side weighted by its share of the node's samples.
	Eval() float64
	// Value returns the node's fitted prediction payload computed at
	// Init: per-class sample counts for classification, per-output
	// means for regression.
	Value() []float64
	// ValueWidth returns the length of the payload Value returns.
	ValueWidth() int
}

/*
ForClassification maps the names of the supported classification
criteria to their constructors, which take the number of classes of
each output.
*/
var ForClassification = map[string]func(nClasses []int) Criterion{
	"gini":    NewGini,
	"entropy": NewEntropy,
}

/*
ForRegression maps the names of the supported regression criteria to
their constructors, which take the number of outputs.
*/
var ForRegression = map[string]func(nOutputs int) Criterion{
	"mse": NewMSE,
}

/*
NewClassification takes a criterion name and the number of classes of
each output and returns the named classification criterion, or an
error for an unknown name.
*/
func NewClassification(name string, nClasses []int) (Criterion, error) {
	constructor, ok := ForClassification[name]
	if !ok {
		return nil, fmt.Errorf("unknown classification criterion %q", name)
	}
	return constructor(nClasses), nil
}

/*
NewRegression takes a criterion name and a number of outputs and
returns the named regression criterion, or an error for an unknown
name.
*/
func NewRegression(name string, nOutputs int) (Criterion, error) {
	constructor, ok := ForRegression[name]
	if !ok {
		return nil, fmt.Errorf("unknown regression criterion %q", name)
	}
	return constructor(nOutputs), nil
}
