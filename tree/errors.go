package tree

// Error represents an error detected by a tree operation.
type Error string

func (e Error) Error() string {
	return string(e)
}

/*
ErrNotFitted is the error returned by prediction, pruning and
importance queries on a tree with no nodes.
*/
const ErrNotFitted = Error("tree has no nodes")

/*
ErrShapeMismatch is the error returned when the feature count of a
prediction input differs from the feature count the tree was grown
with.
*/
const ErrShapeMismatch = Error("input feature count does not match the tree")
