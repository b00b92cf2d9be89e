/*
Package grove grows binary decision trees for classification and
regression over tabular numeric data by recursive partitioning, under
a pluggable impurity criterion and split-finding strategy. The grown
trees live in the tree package, which also serves prediction, pruning
and feature-importance queries on them.
*/
package grove

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/grovekit/grove/criterion"
	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/tree"
)

// Error represents an error detected while growing a tree.
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
ErrEmptySampleMask is the error returned when a recursive partition
step is reached with no selected samples. It indicates a broken
invariant of the builder, not a user error, and aborts construction.
*/
const ErrEmptySampleMask = Error("attempting to find a split with an empty sample mask")

// defaultInitialCapacity is the node capacity allocated when the
// depth bound is too large for an exact complete-tree size.
const defaultInitialCapacity = 2047

/*
Grower grows trees from training data. Criterion is required and
MaxDepth should usually be set; every other field has a usable zero
value: best-split search, no minimum sample counts, no density
repacking, all features considered and a time-seeded random source.
*/
type Grower struct {
	// Criterion is the impurity criterion candidate splits are
	// evaluated under.
	Criterion criterion.Criterion
	// Split is the split-finding strategy, FindBestSplit when nil.
	Split SplitFinder
	// MaxDepth bounds the depth of the tree. A depth of zero grows a
	// single leaf; a negative depth means no bound.
	MaxDepth int
	// MinSamplesSplit is the minimum number of samples a node must
	// have to be considered for splitting.
	MinSamplesSplit int
	// MinSamplesLeaf is the minimum number of samples each side of a
	// split must keep.
	MinSamplesLeaf int
	// MinDensity is the sample-mask density under which the builder
	// repacks its working arrays to the masked samples. It trades a
	// copy for faster mask operations and does not affect the
	// resulting tree.
	MinDensity float64
	// MaxFeatures is the number of features considered per split.
	// Zero or negative means all of them.
	MaxFeatures int
	// Rand is the random source used for feature subsampling and
	// random splits. A seeded source makes growing deterministic.
	Rand *rand.Rand
	// Logger reports growing progress. Disabled when left zero.
	Logger zerolog.Logger
}

// builder carries the normalized growing parameters through the
// recursive partitioning of one Grow call.
type builder struct {
	criterion       criterion.Criterion
	split           SplitFinder
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	minDensity      float64
	maxFeatures     int
	rand            *rand.Rand
	tree            *tree.Tree
}

/*
Grow takes a context, a feature matrix X and a target matrix y, and
grows a tree predicting y from X by recursive partitioning. The
returned tree is compacted to its exact node count. An error is
returned if the shapes of X and y do not agree, the grower has no
criterion, or the context is cancelled; no partially grown tree is
ever returned.
*/
func (g *Grower) Grow(ctx context.Context, X, y *dataset.Matrix) (*tree.Tree, error) {
	return g.GrowMasked(ctx, X, y, nil, nil)
}

/*
GrowMasked is Grow with an optional boolean sample mask restricting
the training samples and an optional precomputed per-feature ascending
sort-order index, as returned by X.ArgsortColumns(). Either may be nil
to be derived from X.
*/
func (g *Grower) GrowMasked(ctx context.Context, X, y *dataset.Matrix, sampleMask []bool, argsorted [][]int) (*tree.Tree, error) {
	if g.Criterion == nil {
		return nil, fmt.Errorf("growing tree: no criterion")
	}
	if X.Rows() == 0 {
		return nil, fmt.Errorf("growing tree: no samples")
	}
	if X.Rows() != y.Rows() {
		return nil, fmt.Errorf("growing tree: %d feature rows but %d target rows", X.Rows(), y.Rows())
	}
	if sampleMask == nil {
		sampleMask = make([]bool, X.Rows())
		for i := range sampleMask {
			sampleMask[i] = true
		}
	} else if len(sampleMask) != X.Rows() {
		return nil, fmt.Errorf("growing tree: sample mask covers %d of %d samples", len(sampleMask), X.Rows())
	}
	if argsorted == nil {
		argsorted = X.ArgsortColumns()
	}

	b := &builder{
		criterion:       g.Criterion,
		split:           g.Split,
		maxDepth:        g.MaxDepth,
		minSamplesSplit: g.MinSamplesSplit,
		minSamplesLeaf:  g.MinSamplesLeaf,
		minDensity:      g.MinDensity,
		maxFeatures:     g.MaxFeatures,
		rand:            g.Rand,
	}
	if b.split == nil {
		b.split = FindBestSplit
	}
	if b.maxDepth < 0 {
		b.maxDepth = math.MaxInt32
	}
	if b.minSamplesSplit < 1 {
		b.minSamplesSplit = 1
	}
	if b.minSamplesLeaf < 1 {
		b.minSamplesLeaf = 1
	}
	if b.maxFeatures <= 0 || b.maxFeatures > X.Cols() {
		b.maxFeatures = X.Cols()
	}
	if b.rand == nil {
		b.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	capacity := defaultInitialCapacity
	if b.maxDepth <= 10 {
		// exact size of a complete binary tree of that depth
		capacity = (1 << (b.maxDepth + 1)) - 1
	}
	b.tree = tree.New(X.Cols(), g.Criterion.ValueWidth(), capacity)

	g.Logger.Debug().
		Int("samples", X.Rows()).
		Int("features", X.Cols()).
		Msg("growing tree")
	if err := b.partition(ctx, X, argsorted, y, sampleMask, 0, tree.NoParent, false); err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}
	b.tree.Resize(b.tree.NodeCount())
	g.Logger.Debug().
		Int("nodes", b.tree.NodeCount()).
		Int("leaves", len(b.tree.Leaves())).
		Msg("grown tree")
	return b.tree, nil
}

/*
partition develops the node covering the samples selected by mask at
the given depth: it either appends a leaf or finds a split, appends a
split node and recurses into both sides.
*/
func (b *builder) partition(ctx context.Context, X *dataset.Matrix, argsorted [][]int, y *dataset.Matrix, mask []bool, depth, parent int, isLeftChild bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	if n == 0 {
		return ErrEmptySampleMask
	}

	feature := -1
	var threshold, bestError, initError float64
	if depth < b.maxDepth && n >= b.minSamplesSplit && n >= 2*b.minSamplesLeaf {
		feature, threshold, bestError, initError = b.split(X, y, argsorted, mask, n, b.minSamplesLeaf, b.maxFeatures, b.criterion, b.rand)
	} else {
		initError = errorAtLeaf(y, mask, n, b.criterion)
	}
	value := b.criterion.Value()

	if feature == -1 {
		b.tree.AddLeaf(parent, isLeftChild, value, initError, n)
		return nil
	}

	// sample mask too sparse?
	if float64(n)/float64(X.Rows()) <= b.minDensity {
		X = X.RowsWhere(mask)
		argsorted = X.ArgsortColumns()
		y = y.RowsWhere(mask)
		mask = make([]bool, X.Rows())
		for i := range mask {
			mask[i] = true
		}
	}

	nodeID := b.tree.AddSplitNode(parent, isLeftChild, feature, threshold, bestError, initError, n, value)

	leftMask := make([]bool, len(mask))
	rightMask := make([]bool, len(mask))
	for i, m := range mask {
		if m {
			if X.At(i, feature) <= threshold {
				leftMask[i] = true
			} else {
				rightMask[i] = true
			}
		}
	}
	if err := b.partition(ctx, X, argsorted, y, leftMask, depth+1, nodeID, true); err != nil {
		return err
	}
	return b.partition(ctx, X, argsorted, y, rightMask, depth+1, nodeID, false)
}

// errorAtLeaf computes the criterion's error over the masked samples
// taken as a single leaf.
func errorAtLeaf(y *dataset.Matrix, mask []bool, n int, c criterion.Criterion) float64 {
	c.Init(y, mask, n)
	return c.Eval()
}
