package tree

import (
	"github.com/grovekit/grove/dataset"
)

/*
Predict takes a matrix of samples and returns a matrix with one row
per sample holding the prediction payload of the leaf the sample lands
on. Traversal starts at the root and moves left when the sample's
value for the node's split feature is less than or equal to the node's
threshold, right otherwise, until a leaf is reached. The tree is not
mutated.

ErrNotFitted is returned for a tree with no nodes and ErrShapeMismatch
when the input feature count differs from the one the tree was grown
with.
*/
func (t *Tree) Predict(X *dataset.Matrix) (*dataset.Matrix, error) {
	leaves, err := t.Apply(X)
	if err != nil {
		return nil, err
	}
	out := dataset.NewMatrix(X.Rows(), t.valueWidth)
	for i, leaf := range leaves {
		copy(out.Row(i), t.value[leaf*t.valueWidth:(leaf+1)*t.valueWidth])
	}
	return out, nil
}
