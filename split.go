package grove

import (
	"fmt"
	"math/rand"

	"github.com/grovekit/grove/criterion"
	"github.com/grovekit/grove/dataset"
)

// featureThreshold is the minimum gap between consecutive sorted
// feature values for a split boundary to be considered between them.
const featureThreshold = 1e-7

/*
SplitFinder searches candidate (feature, threshold) pairs for the
node's samples selected by mask, n of which are set, under the given
criterion, and returns the best split found together with the error it
leaves and the node's error before splitting. A feature of -1 means no
split satisfying the constraints was found and the node must become a
leaf.

Candidates must keep at least minSamplesLeaf samples on each side, and
at most maxFeatures features are searched, chosen through the given
random source. After any SplitFinder call the criterion holds the
node's totals, so its Value reports the node's fitted payload.
*/
type SplitFinder func(X, y *dataset.Matrix, argsorted [][]int, mask []bool, n, minSamplesLeaf, maxFeatures int, c criterion.Criterion, r *rand.Rand) (feature int, threshold, bestError, initError float64)

/*
SplitFinderFor takes a split strategy name, "best" or "random", and
returns the corresponding SplitFinder or an error for an unknown name.
*/
func SplitFinderFor(name string) (SplitFinder, error) {
	switch name {
	case "best":
		return FindBestSplit, nil
	case "random":
		return FindRandomSplit, nil
	}
	return nil, fmt.Errorf("unknown split strategy %q", name)
}

/*
FindBestSplit evaluates, for each considered feature, every threshold
between consecutive distinct sorted values of the node's samples, and
returns the (feature, threshold) pair minimizing the criterion's
error. Thresholds are the midpoints between the consecutive values.
*/
func FindBestSplit(X, y *dataset.Matrix, argsorted [][]int, mask []bool, n, minSamplesLeaf, maxFeatures int, c criterion.Criterion, r *rand.Rand) (int, float64, float64, float64) {
	c.Init(y, mask, n)
	initError := c.Eval()
	if initError == 0 {
		return -1, 0, initError, initError
	}
	bestFeature := -1
	bestError := initError
	var bestThreshold float64

	sorted := make([]int, 0, n)
	for _, f := range featuresToConsider(X.Cols(), maxFeatures, r) {
		sorted = nodeOrder(sorted[:0], argsorted[f], mask)
		if X.At(sorted[n-1], f) <= X.At(sorted[0], f)+featureThreshold {
			// constant feature at this node
			continue
		}
		c.Reset()
		for k := 0; k < n-1; k++ {
			nLeft := c.Update(k, k+1, sorted)
			if nLeft < minSamplesLeaf || n-nLeft < minSamplesLeaf {
				continue
			}
			if X.At(sorted[k+1], f) <= X.At(sorted[k], f)+featureThreshold {
				continue
			}
			if e := c.Eval(); e < bestError {
				bestError = e
				bestFeature = f
				bestThreshold = (X.At(sorted[k], f) + X.At(sorted[k+1], f)) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestError, initError
}

/*
FindRandomSplit draws, for each considered feature, a single random
threshold within the feature's observed range at the node, evaluates
it, and returns the best across the drawn features. It trades split
quality for decorrelation across the members of randomized-tree
ensembles.
*/
func FindRandomSplit(X, y *dataset.Matrix, argsorted [][]int, mask []bool, n, minSamplesLeaf, maxFeatures int, c criterion.Criterion, r *rand.Rand) (int, float64, float64, float64) {
	c.Init(y, mask, n)
	initError := c.Eval()
	if initError == 0 {
		return -1, 0, initError, initError
	}
	bestFeature := -1
	bestError := initError
	var bestThreshold float64

	sorted := make([]int, 0, n)
	for _, f := range featuresToConsider(X.Cols(), maxFeatures, r) {
		sorted = nodeOrder(sorted[:0], argsorted[f], mask)
		lo, hi := X.At(sorted[0], f), X.At(sorted[n-1], f)
		if hi <= lo+featureThreshold {
			continue
		}
		threshold := lo + r.Float64()*(hi-lo)
		if threshold >= hi {
			threshold = lo
		}
		boundary := 0
		for boundary < n && X.At(sorted[boundary], f) <= threshold {
			boundary++
		}
		c.Reset()
		nLeft := c.Update(0, boundary, sorted)
		if nLeft < minSamplesLeaf || n-nLeft < minSamplesLeaf {
			continue
		}
		if e := c.Eval(); e < bestError {
			bestError = e
			bestFeature = f
			bestThreshold = threshold
		}
	}
	return bestFeature, bestThreshold, bestError, initError
}

// featuresToConsider returns up to maxFeatures distinct feature
// indices drawn without replacement.
func featuresToConsider(nFeatures, maxFeatures int, r *rand.Rand) []int {
	if maxFeatures > nFeatures {
		maxFeatures = nFeatures
	}
	return r.Perm(nFeatures)[:maxFeatures]
}

// nodeOrder appends to dst the entries of order selected by mask,
// keeping their ascending feature-value order.
func nodeOrder(dst, order []int, mask []bool) []int {
	for _, i := range order {
		if mask[i] {
			dst = append(dst, i)
		}
	}
	return dst
}
