package criterion

import (
	"github.com/grovekit/grove/dataset"
)

/*
mseCriterion keeps running sums and squared sums of the target values
for the whole node and for each side of the current split boundary, so
the variance of each side can be evaluated in constant time.
*/
type mseCriterion struct {
	nOutputs int

	y      *dataset.Matrix
	n      int
	nLeft  int
	nRight int

	sumTotal []float64
	sumLeft  []float64
	sumRight []float64
	sqTotal  []float64
	sqLeft   []float64
	sqRight  []float64
}

/*
NewMSE takes a number of outputs and returns a regression criterion
evaluating the mean squared error around each side's mean.
*/
func NewMSE(nOutputs int) Criterion {
	return &mseCriterion{
		nOutputs: nOutputs,
		sumTotal: make([]float64, nOutputs),
		sumLeft:  make([]float64, nOutputs),
		sumRight: make([]float64, nOutputs),
		sqTotal:  make([]float64, nOutputs),
		sqLeft:   make([]float64, nOutputs),
		sqRight:  make([]float64, nOutputs),
	}
}

func (c *mseCriterion) Init(y *dataset.Matrix, mask []bool, n int) {
	c.y = y
	c.n = n
	for k := 0; k < c.nOutputs; k++ {
		c.sumTotal[k] = 0
		c.sqTotal[k] = 0
	}
	for i := 0; i < y.Rows(); i++ {
		if !mask[i] {
			continue
		}
		for k := 0; k < c.nOutputs; k++ {
			v := y.At(i, k)
			c.sumTotal[k] += v
			c.sqTotal[k] += v * v
		}
	}
	c.Reset()
}

func (c *mseCriterion) Reset() {
	c.nLeft = 0
	c.nRight = c.n
	for k := 0; k < c.nOutputs; k++ {
		c.sumLeft[k] = 0
		c.sqLeft[k] = 0
	}
	copy(c.sumRight, c.sumTotal)
	copy(c.sqRight, c.sqTotal)
}

func (c *mseCriterion) Update(a, b int, order []int) int {
	for pos := a; pos < b; pos++ {
		i := order[pos]
		for k := 0; k < c.nOutputs; k++ {
			v := c.y.At(i, k)
			c.sumLeft[k] += v
			c.sqLeft[k] += v * v
			c.sumRight[k] -= v
			c.sqRight[k] -= v * v
		}
	}
	c.nLeft += b - a
	c.nRight -= b - a
	return c.nLeft
}

func (c *mseCriterion) Eval() float64 {
	n := float64(c.n)
	var total float64
	for k := 0; k < c.nOutputs; k++ {
		if c.nLeft > 0 {
			total += float64(c.nLeft) / n * variance(c.sumLeft[k], c.sqLeft[k], float64(c.nLeft))
		}
		if c.nRight > 0 {
			total += float64(c.nRight) / n * variance(c.sumRight[k], c.sqRight[k], float64(c.nRight))
		}
	}
	return total / float64(c.nOutputs)
}

func (c *mseCriterion) Value() []float64 {
	v := make([]float64, c.nOutputs)
	for k := 0; k < c.nOutputs; k++ {
		v[k] = c.sumTotal[k] / float64(c.n)
	}
	return v
}

func (c *mseCriterion) ValueWidth() int {
	return c.nOutputs
}

func variance(sum, sqSum, n float64) float64 {
	mean := sum / n
	return sqSum/n - mean*mean
}
