package criterion

import (
	"math"

	"github.com/grovekit/grove/dataset"
)

/*
classificationCriterion keeps per-class sample counts for the whole
node and for each side of the current split boundary. Target values
are class indices. Counts for all outputs are stored flat, each
output's classes at its own offset.
*/
type classificationCriterion struct {
	nClasses []int
	offsets  []int
	width    int

	y            *dataset.Matrix
	n            int
	nLeft        int
	nRight       int
	total        []float64
	left         []float64
	right        []float64
	sideImpurity func(counts []float64, offset, nClasses int, n float64) float64
}

func newClassificationCriterion(nClasses []int, sideImpurity func([]float64, int, int, float64) float64) *classificationCriterion {
	offsets := make([]int, len(nClasses))
	width := 0
	for k, nc := range nClasses {
		offsets[k] = width
		width += nc
	}
	return &classificationCriterion{
		nClasses:     nClasses,
		offsets:      offsets,
		width:        width,
		total:        make([]float64, width),
		left:         make([]float64, width),
		right:        make([]float64, width),
		sideImpurity: sideImpurity,
	}
}

func (c *classificationCriterion) Init(y *dataset.Matrix, mask []bool, n int) {
	c.y = y
	c.n = n
	for i := range c.total {
		c.total[i] = 0
	}
	for i := 0; i < y.Rows(); i++ {
		if !mask[i] {
			continue
		}
		for k, offset := range c.offsets {
			c.total[offset+int(y.At(i, k))]++
		}
	}
	c.Reset()
}

func (c *classificationCriterion) Reset() {
	c.nLeft = 0
	c.nRight = c.n
	for i := range c.left {
		c.left[i] = 0
	}
	copy(c.right, c.total)
}

func (c *classificationCriterion) Update(a, b int, order []int) int {
	for pos := a; pos < b; pos++ {
		i := order[pos]
		for k, offset := range c.offsets {
			class := offset + int(c.y.At(i, k))
			c.left[class]++
			c.right[class]--
		}
	}
	c.nLeft += b - a
	c.nRight -= b - a
	return c.nLeft
}

func (c *classificationCriterion) Eval() float64 {
	n := float64(c.n)
	var total float64
	for k, nc := range c.nClasses {
		offset := c.offsets[k]
		if c.nLeft > 0 {
			total += float64(c.nLeft) / n * c.sideImpurity(c.left, offset, nc, float64(c.nLeft))
		}
		if c.nRight > 0 {
			total += float64(c.nRight) / n * c.sideImpurity(c.right, offset, nc, float64(c.nRight))
		}
	}
	return total / float64(len(c.nClasses))
}

func (c *classificationCriterion) Value() []float64 {
	v := make([]float64, c.width)
	copy(v, c.total)
	return v
}

func (c *classificationCriterion) ValueWidth() int {
	return c.width
}

/*
NewGini takes the number of classes of each output and returns a
classification criterion evaluating the Gini index
1 - sum over classes of p^2.
*/
func NewGini(nClasses []int) Criterion {
	return newClassificationCriterion(nClasses, giniImpurity)
}

/*
NewEntropy takes the number of classes of each output and returns a
classification criterion evaluating the entropy
-sum over classes of p*log(p), with natural logarithm.
*/
func NewEntropy(nClasses []int) Criterion {
	return newClassificationCriterion(nClasses, entropyImpurity)
}

func giniImpurity(counts []float64, offset, nClasses int, n float64) float64 {
	h := 1.0
	for class := 0; class < nClasses; class++ {
		p := counts[offset+class] / n
		h -= p * p
	}
	return h
}

func entropyImpurity(counts []float64, offset, nClasses int, n float64) float64 {
	var h float64
	for class := 0; class < nClasses; class++ {
		if counts[offset+class] > 0 {
			p := counts[offset+class] / n
			h -= p * math.Log(p)
		}
	}
	return h
}
