package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPruningOrderSelectsWeakestLinkFirst(t *testing.T) {
	tr := newDepth2Tree()
	// node 4 reduces the error by 0.05, node 1 by 0.2, so 4 is
	// collapsed first; once both are leaves the root is terminal
	require.Equal(t, []int{4, 1, 0}, tr.PruningOrder(3))
	require.Equal(t, []int{4, 1}, tr.PruningOrder(2))
	require.Equal(t, []int{4}, tr.PruningOrder(1))
}

func TestPruningOrderStopsAtRoot(t *testing.T) {
	tr := newDepth2Tree()
	require.Equal(t, []int{4, 1, 0}, tr.PruningOrder(100))
}

func TestPruningOrderZeroYieldsNothing(t *testing.T) {
	tr := newDepth2Tree()
	require.Nil(t, tr.PruningOrder(0))
	require.Nil(t, tr.PruningOrder(-3))
}

func TestPruningOrderDoesNotMutate(t *testing.T) {
	tr := newDepth2Tree()
	cp := tr.Copy()
	tr.PruningOrder(3)
	require.Equal(t, cp, tr)
}

func TestPruneCollapsesWeakestTerminalNode(t *testing.T) {
	tr := newDepth2Tree()
	pruned, err := tr.Prune(3)
	require.NoError(t, err)
	require.Equal(t, 5, pruned.NodeCount())
	require.True(t, pruned.IsLeaf(4))
	require.Equal(t, Undefined, pruned.LeftChild(5))
	require.Equal(t, Undefined, pruned.LeftChild(6))
	// the collapsed node is a leaf now, so its best error is its own
	require.Equal(t, pruned.InitError(4), pruned.BestError(4))
	// the payload fitted at the node before deeper splitting remains
	require.Equal(t, []float64{1, 3}, pruned.Value(4))
}

func TestPruneToSingleLeaf(t *testing.T) {
	tr := newDepth2Tree()
	pruned, err := tr.Prune(1)
	require.NoError(t, err)
	require.Equal(t, 1, pruned.NodeCount())
	require.Equal(t, []int{0}, pruned.Leaves())
	require.Equal(t, []float64{4, 4}, pruned.Value(0))
}

func TestPruneToCurrentLeafCountIsIdentity(t *testing.T) {
	tr := newDepth2Tree()
	pruned, err := tr.Prune(4)
	require.NoError(t, err)
	require.Equal(t, tr, pruned)
}

func TestPruneBeyondLeafCountIsIdentity(t *testing.T) {
	tr := newDepth2Tree()
	pruned, err := tr.Prune(100)
	require.NoError(t, err)
	require.Equal(t, tr, pruned)
}

func TestPruneDoesNotMutateReceiver(t *testing.T) {
	tr := newDepth2Tree()
	cp := tr.Copy()
	_, err := tr.Prune(1)
	require.NoError(t, err)
	require.Equal(t, cp, tr)
}

func TestPruneNotFitted(t *testing.T) {
	tr := New(1, 1, 1)
	_, err := tr.Prune(1)
	require.Equal(t, ErrNotFitted, err)
}

func TestPruneRejectsTargetBelowOne(t *testing.T) {
	tr := newStumpTree()
	_, err := tr.Prune(0)
	require.Error(t, err)
}

func TestPrunedTreePredictsWithCollapsedLeaves(t *testing.T) {
	tr := newDepth2Tree()
	pruned, err := tr.Prune(3)
	require.NoError(t, err)
	X := matrixFromRowsT(t, [][]float64{{9, 0}})
	leaves, err := pruned.Apply(X)
	require.NoError(t, err)
	require.Equal(t, []int{4}, leaves)
}
