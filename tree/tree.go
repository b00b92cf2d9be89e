/*
Package tree provides a struct-of-arrays representation of binary
decision trees for classification and regression, together with the
operations that consume a grown tree: prediction, weakest-link pruning
and feature-importance computation.

The tree is represented as a number of parallel slices. The i-th
element of each slice holds information about the node i. Node 0 is
always the root. Some of the slices only apply to either leaves or
split nodes; in this case the values of nodes of the other type are
arbitrary.
*/
package tree

import (
	"github.com/grovekit/grove/dataset"
)

const (
	// Leaf is the child sentinel marking a terminal node. A node is
	// a leaf iff both its children equal Leaf.
	Leaf = -1
	// Undefined is the sentinel for unused or freed node slots.
	Undefined = -2
	// NoParent is the parent sentinel to pass when appending the
	// root node.
	NoParent = -1
)

/*
Tree is a binary decision tree stored as parallel arrays indexed by
dense node id. It is grown append-only: children are always created
after their parent, so child indices are strictly greater than the
parent's. Once grown it is immutable for prediction and importance
queries; pruning produces a new, independent Tree.
*/
type Tree struct {
	nFeatures  int
	valueWidth int

	nodeCount int
	capacity  int

	childrenLeft  []int
	childrenRight []int
	feature       []int
	threshold     []float64
	value         []float64 // nodeCount rows of valueWidth, row-major
	bestError     []float64
	initError     []float64
	nSamples      []int
}

/*
New takes the number of input features, the width of the per-node
prediction payload (total class count for classification, output count
for regression) and an initial node capacity, and returns an empty
tree. Children and feature entries are initialized to Undefined.
*/
func New(nFeatures, valueWidth, capacity int) *Tree {
	if capacity < 1 {
		capacity = 1
	}
	t := &Tree{
		nFeatures:  nFeatures,
		valueWidth: valueWidth,
	}
	t.allocate(capacity)
	return t
}

func (t *Tree) allocate(capacity int) {
	t.capacity = capacity
	t.childrenLeft = makeFilled(capacity, Undefined)
	t.childrenRight = makeFilled(capacity, Undefined)
	t.feature = makeFilled(capacity, Undefined)
	t.threshold = make([]float64, capacity)
	t.value = make([]float64, capacity*t.valueWidth)
	t.bestError = make([]float64, capacity)
	t.initError = make([]float64, capacity)
	t.nSamples = make([]int, capacity)
}

func makeFilled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// NodeCount returns the number of nodes (internal nodes and leaves)
// in the tree.
func (t *Tree) NodeCount() int { return t.nodeCount }

// Capacity returns the number of node slots currently allocated.
func (t *Tree) Capacity() int { return t.capacity }

// FeatureCount returns the number of input features the tree was
// grown with.
func (t *Tree) FeatureCount() int { return t.nFeatures }

// ValueWidth returns the width of the per-node prediction payload.
func (t *Tree) ValueWidth() int { return t.valueWidth }

// LeftChild returns the node id of the left child of node i, or Leaf.
func (t *Tree) LeftChild(i int) int { return t.childrenLeft[i] }

// RightChild returns the node id of the right child of node i, or Leaf.
func (t *Tree) RightChild(i int) int { return t.childrenRight[i] }

// Feature returns the feature node i splits on. It is meaningless for
// leaves.
func (t *Tree) Feature(i int) int { return t.feature[i] }

// Threshold returns the split boundary of node i: samples with
// feature value less than or equal to it go left.
func (t *Tree) Threshold(i int) float64 { return t.threshold[i] }

// BestError returns the error remaining after the split of node i.
// For leaves it equals InitError.
func (t *Tree) BestError(i int) float64 { return t.bestError[i] }

// InitError returns the error of node i before splitting.
func (t *Tree) InitError(i int) float64 { return t.initError[i] }

// SampleCount returns the number of training samples that reached
// node i.
func (t *Tree) SampleCount(i int) int { return t.nSamples[i] }

// IsLeaf returns whether node i is a terminal node.
func (t *Tree) IsLeaf(i int) bool {
	return t.childrenLeft[i] == Leaf && t.childrenRight[i] == Leaf
}

/*
Value returns a copy of the prediction payload stored at node i. Every
node carries one: for leaves it is the prediction, for internal nodes
the node's own fitted value before deeper splitting.
*/
func (t *Tree) Value(i int) []float64 {
	v := make([]float64, t.valueWidth)
	copy(v, t.value[i*t.valueWidth:(i+1)*t.valueWidth])
	return v
}

/*
AddSplitNode appends a new internal node splitting on the given
feature at the given threshold and links it as the left or right child
of parent. The parent is ignored when it is NoParent, which is only
valid for the root. Capacity is doubled if the table is full. The new
node's id, always the node count before the append, is returned.
*/
func (t *Tree) AddSplitNode(parent int, isLeftChild bool, feature int, threshold, bestError, initError float64, sampleCount int, value []float64) int {
	nodeID := t.nodeCount
	if nodeID >= t.capacity {
		t.Resize(t.capacity * 2)
	}
	t.feature[nodeID] = feature
	t.threshold[nodeID] = threshold
	t.initError[nodeID] = initError
	t.bestError[nodeID] = bestError
	t.nSamples[nodeID] = sampleCount
	copy(t.value[nodeID*t.valueWidth:(nodeID+1)*t.valueWidth], value)

	if parent > Leaf {
		if isLeftChild {
			t.childrenLeft[parent] = nodeID
		} else {
			t.childrenRight[parent] = nodeID
		}
	}
	t.nodeCount++
	return nodeID
}

/*
AddLeaf appends a new terminal node with the given prediction payload,
error and sample count, and links it as the left or right child of
parent. The parent is ignored when it is NoParent. Both children of
the new node are set to Leaf and its initial and best errors are both
set to the given error. The new node's id is returned.
*/
func (t *Tree) AddLeaf(parent int, isLeftChild bool, value []float64, err float64, sampleCount int) int {
	nodeID := t.nodeCount
	if nodeID >= t.capacity {
		t.Resize(t.capacity * 2)
	}
	copy(t.value[nodeID*t.valueWidth:(nodeID+1)*t.valueWidth], value)
	t.nSamples[nodeID] = sampleCount
	t.initError[nodeID] = err
	t.bestError[nodeID] = err

	if parent > Leaf {
		if isLeftChild {
			t.childrenLeft[parent] = nodeID
		} else {
			t.childrenRight[parent] = nodeID
		}
	}
	t.childrenLeft[nodeID] = Leaf
	t.childrenRight[nodeID] = Leaf
	t.nodeCount++
	return nodeID
}

/*
Resize reallocates all parallel arrays to the given capacity,
preserving existing entries. New slots have children and feature set
to Undefined. If the new capacity is smaller than the node count, the
node count is truncated to it; growing and compaction never take that
path.
*/
func (t *Tree) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == t.capacity {
		return
	}
	old := *t
	t.allocate(capacity)
	n := old.capacity
	if capacity < n {
		n = capacity
	}
	copy(t.childrenLeft, old.childrenLeft[:n])
	copy(t.childrenRight, old.childrenRight[:n])
	copy(t.feature, old.feature[:n])
	copy(t.threshold, old.threshold[:n])
	copy(t.value, old.value[:n*t.valueWidth])
	copy(t.bestError, old.bestError[:n])
	copy(t.initError, old.initError[:n])
	copy(t.nSamples, old.nSamples[:n])
	t.nodeCount = old.nodeCount
	if capacity < t.nodeCount {
		t.nodeCount = capacity
	}
}

/*
Leaves returns the ids of all terminal nodes in ascending order. The
whole slot array is scanned rather than the first nodeCount entries:
pruning leaves gaps of freed slots, so live nodes can sit beyond the
node count.
*/
func (t *Tree) Leaves() []int {
	var leaves []int
	for i := 0; i < t.capacity; i++ {
		if t.IsLeaf(i) {
			leaves = append(leaves, i)
		}
	}
	return leaves
}

/*
Copy returns a new tree with identical contents. Every parallel array
is deep-copied, so the copy can be read concurrently with the
original.
*/
func (t *Tree) Copy() *Tree {
	nt := New(t.nFeatures, t.valueWidth, t.capacity)
	nt.nodeCount = t.nodeCount
	copy(nt.childrenLeft, t.childrenLeft)
	copy(nt.childrenRight, t.childrenRight)
	copy(nt.feature, t.feature)
	copy(nt.threshold, t.threshold)
	copy(nt.value, t.value)
	copy(nt.bestError, t.bestError)
	copy(nt.initError, t.initError)
	copy(nt.nSamples, t.nSamples)
	return nt
}

/*
Apply returns the id of the leaf each row of X lands on when traversed
from the root: at every internal node the row goes left if its value
for the node's split feature is less than or equal to the node's
threshold, right otherwise.
*/
func (t *Tree) Apply(X *dataset.Matrix) ([]int, error) {
	if t.nodeCount == 0 {
		return nil, ErrNotFitted
	}
	if X.Cols() != t.nFeatures {
		return nil, ErrShapeMismatch
	}
	out := make([]int, X.Rows())
	for i := 0; i < X.Rows(); i++ {
		node := 0
		for !t.IsLeaf(node) {
			if X.At(i, t.feature[node]) <= t.threshold[node] {
				node = t.childrenLeft[node]
			} else {
				node = t.childrenRight[node]
			}
		}
		out[i] = node
	}
	return out, nil
}
