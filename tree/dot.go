package tree

import (
	"fmt"
	"io"
)

/*
WriteDOT writes a GraphViz DOT description of the tree onto the given
io.Writer, labelling internal nodes with their split, error and sample
count and leaves with their error, sample count and prediction
payload. Nodes are emitted depth-first from the root. featureNames may
be nil, in which case features are labelled by index.

Renderings can then be generated with, for example:

	dot -Tpng tree.dot -o tree.png

ErrNotFitted is returned for a tree with no nodes.
*/
func (t *Tree) WriteDOT(w io.Writer, featureNames []string) error {
	if t.nodeCount == 0 {
		return ErrNotFitted
	}
	if _, err := fmt.Fprintln(w, "digraph Tree {"); err != nil {
		return err
	}
	if err := t.writeDOTNode(w, 0, featureNames); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func (t *Tree) writeDOTNode(w io.Writer, node int, featureNames []string) error {
	_, err := fmt.Fprintf(w, "%d [label=\"%s\", shape=\"box\"] ;\n", node, t.dotLabel(node, featureNames))
	if err != nil {
		return err
	}
	if t.IsLeaf(node) {
		return nil
	}
	for _, child := range []int{t.childrenLeft[node], t.childrenRight[node]} {
		if _, err := fmt.Fprintf(w, "%d -> %d ;\n", node, child); err != nil {
			return err
		}
		if err := t.writeDOTNode(w, child, featureNames); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) dotLabel(node int, featureNames []string) string {
	if t.IsLeaf(node) {
		return fmt.Sprintf("error = %.4f\\nsamples = %d\\nvalue = %v",
			t.initError[node], t.nSamples[node], t.Value(node))
	}
	name := fmt.Sprintf("X[%d]", t.feature[node])
	if featureNames != nil {
		name = featureNames[t.feature[node]]
	}
	return fmt.Sprintf("%s <= %.4f\\nerror = %.4f\\nsamples = %d\\nvalue = %v",
		name, t.threshold[node], t.initError[node], t.nSamples[node], t.Value(node))
}
