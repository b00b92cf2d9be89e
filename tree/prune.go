package tree

import (
	"fmt"
)

/*
PruningOrder computes the order in which the tree's nodes should be
collapsed into leaves to obtain optimal subtrees, using weakest-link
pruning: at every step the terminal node (an internal node whose both
children are leaves) with the smallest error reduction
initError-bestError is selected, ties going to the lowest node id.
After a selection the node's children are conceptually removed and the
node itself treated as a leaf before the next step.

At most maxToPrune node ids are returned; selection also stops once
the root is selected. A maxToPrune of zero or less yields no nodes.
*/
func (t *Tree) PruningOrder(maxToPrune int) []int {
	if maxToPrune <= 0 {
		return nil
	}
	left := make([]int, t.capacity)
	right := make([]int, t.capacity)
	copy(left, t.childrenLeft)
	copy(right, t.childrenRight)
	var nodes []int
	for {
		node := t.nextToPrune(left, right)
		if node < 0 {
			return nodes
		}
		nodes = append(nodes, node)
		if len(nodes) == maxToPrune || node == 0 {
			return nodes
		}
		left[left[node]], right[left[node]] = Undefined, Undefined
		left[right[node]], right[right[node]] = Undefined, Undefined
		left[node], right[node] = Leaf, Leaf
	}
}

/*
nextToPrune returns the weakest-link terminal node of the subtree
defined by the given working children arrays, or -1 if there is none
(a tree reduced to its root).
*/
func (t *Tree) nextToPrune(left, right []int) int {
	best := -1
	var bestG float64
	for i := 0; i < len(left); i++ {
		if left[i] < 0 || right[i] < 0 {
			continue
		}
		if !(left[left[i]] == Leaf && right[left[i]] == Leaf) {
			continue
		}
		if !(left[right[i]] == Leaf && right[right[i]] == Leaf) {
			continue
		}
		g := t.initError[i] - t.bestError[i]
		if best == -1 || g < bestG {
			best = i
			bestG = g
		}
	}
	return best
}

/*
Prune returns a new tree pruned to exactly targetLeaves leaves using
the weakest-link order of PruningOrder. The receiver is not mutated:
the tree is copied, then each selected node has its children marked
Undefined and becomes a leaf, decrementing the node count by two. The
freed slots remain allocated but unreferenced.

Pruning to the current leaf count or more returns an identical copy.
ErrNotFitted is returned for a tree with no nodes and an error for a
targetLeaves below one.
*/
func (t *Tree) Prune(targetLeaves int) (*Tree, error) {
	if t.nodeCount == 0 {
		return nil, ErrNotFitted
	}
	if targetLeaves < 1 {
		return nil, fmt.Errorf("pruning to %d leaves: target must be at least 1", targetLeaves)
	}
	out := t.Copy()
	toRemove := t.nodeCount - len(t.Leaves()) - targetLeaves + 1
	if toRemove <= 0 {
		return out, nil
	}
	for _, node := range t.PruningOrder(toRemove) {
		l, r := out.childrenLeft[node], out.childrenRight[node]
		out.childrenLeft[l], out.childrenRight[l] = Undefined, Undefined
		out.childrenLeft[r], out.childrenRight[r] = Undefined, Undefined
		out.childrenLeft[node], out.childrenRight[node] = Leaf, Leaf
		out.bestError[node] = out.initError[node]
		out.nodeCount -= 2
	}
	return out, nil
}
