package tree

import (
	"fmt"
)

const (
	// ImportanceGini weighs each split's error reduction by the
	// number of samples that passed through the node.
	ImportanceGini = "gini"
	// ImportanceSquared accumulates the squared error reduction of
	// each split.
	ImportanceSquared = "squared"
)

/*
FeatureImportances computes the importance of each input feature under
the given method, either ImportanceGini or ImportanceSquared. For
every internal node the method's score is accumulated into the entry
of the node's split feature, and the result is normalized to sum to
one, or left all-zero when no split reduced the error.

An error is returned for an unknown method name or a tree with no
nodes.
*/
func (t *Tree) FeatureImportances(method string) ([]float64, error) {
	if t.nodeCount == 0 {
		return nil, ErrNotFitted
	}
	var score func(node int) float64
	switch method {
	case ImportanceGini:
		score = func(node int) float64 {
			return float64(t.nSamples[node]) * (t.initError[node] - t.bestError[node])
		}
	case ImportanceSquared:
		score = func(node int) float64 {
			g := t.initError[node] - t.bestError[node]
			return g * g
		}
	default:
		return nil, fmt.Errorf("invalid importance method %q: valid methods are %q and %q", method, ImportanceGini, ImportanceSquared)
	}
	importances := make([]float64, t.nFeatures)
	for node := 0; node < t.capacity; node++ {
		if t.childrenLeft[node] == Undefined || t.IsLeaf(node) {
			continue
		}
		importances[t.feature[node]] += score(node)
	}
	var normalizer float64
	for _, imp := range importances {
		normalizer += imp
	}
	if normalizer > 0.0 {
		// avoid dividing by zero, e.g. when the root is pure
		for i := range importances {
			importances[i] /= normalizer
		}
	}
	return importances, nil
}
