package tree

import (
	"testing"

	"github.com/grovekit/grove/dataset"
	"github.com/stretchr/testify/require"
)

/*
newStumpTree returns a 3-node classification tree splitting its only
feature at 2.5: samples at or below go to a pure class-0 leaf, the rest
to a pure class-1 leaf.
*/
func newStumpTree() *Tree {
	t := New(1, 2, 3)
	t.AddSplitNode(NoParent, false, 0, 2.5, 0, 0.5, 4, []float64{2, 2})
	t.AddLeaf(0, true, []float64{2, 0}, 0, 2)
	t.AddLeaf(0, false, []float64{0, 2}, 0, 2)
	return t
}

/*
newDepth2Tree returns a 7-node tree with two terminal split nodes of
different error reductions, so weakest-link selection is observable:
node 4 reduces the error least, then node 1, then the root.
*/
func newDepth2Tree() *Tree {
	t := New(2, 2, 7)
	t.AddSplitNode(NoParent, false, 0, 5, 0.2, 0.5, 8, []float64{4, 4})
	t.AddSplitNode(0, true, 1, 2, 0.1, 0.3, 4, []float64{3, 1})
	t.AddLeaf(1, true, []float64{3, 0}, 0, 3)
	t.AddLeaf(1, false, []float64{0, 1}, 0, 1)
	t.AddSplitNode(0, false, 0, 8, 0.2, 0.25, 4, []float64{1, 3})
	t.AddLeaf(4, true, []float64{1, 0}, 0, 1)
	t.AddLeaf(4, false, []float64{0, 3}, 0, 3)
	return t
}

func TestNewTreeIsEmpty(t *testing.T) {
	tr := New(3, 2, 7)
	require.Equal(t, 0, tr.NodeCount())
	require.Equal(t, 7, tr.Capacity())
	require.Equal(t, 3, tr.FeatureCount())
	require.Equal(t, 2, tr.ValueWidth())
	require.Equal(t, Undefined, tr.LeftChild(0))
	require.Equal(t, Undefined, tr.RightChild(0))
	require.Equal(t, Undefined, tr.Feature(0))
}

func TestAddNodesLinksChildrenToParents(t *testing.T) {
	tr := newStumpTree()
	require.Equal(t, 3, tr.NodeCount())
	require.Equal(t, 1, tr.LeftChild(0))
	require.Equal(t, 2, tr.RightChild(0))
	require.False(t, tr.IsLeaf(0))
	require.True(t, tr.IsLeaf(1))
	require.True(t, tr.IsLeaf(2))
	require.Equal(t, 0, tr.Feature(0))
	require.Equal(t, 2.5, tr.Threshold(0))
	require.Equal(t, 4, tr.SampleCount(0))
	require.Equal(t, []float64{2, 2}, tr.Value(0))
	require.Equal(t, []float64{2, 0}, tr.Value(1))
	require.Equal(t, []float64{0, 2}, tr.Value(2))
}

func TestAddLeafSetsBothErrorsEqual(t *testing.T) {
	tr := New(1, 1, 1)
	tr.AddLeaf(NoParent, false, []float64{1.5}, 0.25, 10)
	require.Equal(t, 0.25, tr.InitError(0))
	require.Equal(t, 0.25, tr.BestError(0))
	require.True(t, tr.IsLeaf(0))
}

func TestChildIndicesExceedParents(t *testing.T) {
	tr := newDepth2Tree()
	for i := 0; i < tr.NodeCount(); i++ {
		if tr.IsLeaf(i) {
			continue
		}
		require.Greater(t, tr.LeftChild(i), i)
		require.Greater(t, tr.RightChild(i), i)
	}
}

func TestAddNodeDoublesCapacityWhenFull(t *testing.T) {
	tr := New(1, 1, 1)
	tr.AddSplitNode(NoParent, false, 0, 1, 0, 1, 4, []float64{1})
	require.Equal(t, 1, tr.Capacity())
	tr.AddLeaf(0, true, []float64{1}, 0, 2)
	require.Equal(t, 2, tr.Capacity())
	tr.AddLeaf(0, false, []float64{1}, 0, 2)
	require.Equal(t, 4, tr.Capacity())
	require.Equal(t, 3, tr.NodeCount())
	// links survive the reallocation
	require.Equal(t, 1, tr.LeftChild(0))
	require.Equal(t, 2, tr.RightChild(0))
}

func TestResizePreservesNodesAndMarksNewSlots(t *testing.T) {
	tr := newStumpTree()
	tr.Resize(10)
	require.Equal(t, 10, tr.Capacity())
	require.Equal(t, 3, tr.NodeCount())
	require.Equal(t, 1, tr.LeftChild(0))
	require.Equal(t, []float64{0, 2}, tr.Value(2))
	require.Equal(t, Undefined, tr.LeftChild(5))
	require.Equal(t, Undefined, tr.Feature(5))
}

func TestResizeBelowNodeCountTruncates(t *testing.T) {
	tr := newStumpTree()
	tr.Resize(1)
	require.Equal(t, 1, tr.Capacity())
	require.Equal(t, 1, tr.NodeCount())
}

func TestCopyIsIndependent(t *testing.T) {
	tr := newStumpTree()
	cp := tr.Copy()
	require.Equal(t, tr, cp)
	cp.AddLeaf(2, true, []float64{1, 1}, 0, 1)
	require.Equal(t, 3, tr.NodeCount())
	require.Equal(t, Leaf, tr.LeftChild(2))
}

func TestLeaves(t *testing.T) {
	require.Equal(t, []int{1, 2}, newStumpTree().Leaves())
	require.Equal(t, []int{2, 3, 5, 6}, newDepth2Tree().Leaves())
}

func TestLeavesCoverSlotsBeyondNodeCount(t *testing.T) {
	tr := newDepth2Tree()
	pruned, err := tr.Prune(3)
	require.NoError(t, err)
	// node 4 collapsed: its leaf slots 5 and 6 are freed, and 4
	// itself, beyond the new node count, is a live leaf
	require.Equal(t, 5, pruned.NodeCount())
	require.Equal(t, []int{2, 3, 4}, pruned.Leaves())
}

func TestApply(t *testing.T) {
	tr := newStumpTree()
	X, err := dataset.MatrixFromRows([][]float64{{1}, {2.5}, {4}})
	require.NoError(t, err)
	leaves, err := tr.Apply(X)
	require.NoError(t, err)
	require.Equal(t, []int{1, 1, 2}, leaves)
}

func TestApplyShapeMismatch(t *testing.T) {
	tr := newStumpTree()
	X, err := dataset.MatrixFromRows([][]float64{{1, 2}})
	require.NoError(t, err)
	_, err = tr.Apply(X)
	require.Equal(t, ErrShapeMismatch, err)
}

func TestApplyNotFitted(t *testing.T) {
	tr := New(1, 1, 1)
	X, err := dataset.MatrixFromRows([][]float64{{1}})
	require.NoError(t, err)
	_, err = tr.Apply(X)
	require.Equal(t, ErrNotFitted, err)
}
