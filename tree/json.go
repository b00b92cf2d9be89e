package tree

import (
	"encoding/json"
	"fmt"
)

type treeJSON struct {
	FeatureCount  int       `json:"featureCount"`
	ValueWidth    int       `json:"valueWidth"`
	NodeCount     int       `json:"nodeCount"`
	ChildrenLeft  []int     `json:"childrenLeft"`
	ChildrenRight []int     `json:"childrenRight"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
	BestError     []float64 `json:"bestError"`
	InitError     []float64 `json:"initError"`
	SampleCount   []int     `json:"sampleCount"`
}

/*
MarshalJSON serializes the tree as a JSON object holding its parallel
arrays. All allocated slots are written, so pruned trees keep their
freed-slot gaps and round-trip to an equivalent tree.
*/
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(&treeJSON{
		FeatureCount:  t.nFeatures,
		ValueWidth:    t.valueWidth,
		NodeCount:     t.nodeCount,
		ChildrenLeft:  t.childrenLeft,
		ChildrenRight: t.childrenRight,
		Feature:       t.feature,
		Threshold:     t.threshold,
		Value:         t.value,
		BestError:     t.bestError,
		InitError:     t.initError,
		SampleCount:   t.nSamples,
	})
}

/*
UnmarshalJSON replaces the tree's contents with the parallel arrays
decoded from the given JSON object, after checking that the arrays are
consistent with each other and with the declared node count.
*/
func (t *Tree) UnmarshalJSON(data []byte) error {
	jt := &treeJSON{}
	if err := json.Unmarshal(data, jt); err != nil {
		return fmt.Errorf("decoding tree: %v", err)
	}
	capacity := len(jt.ChildrenLeft)
	if capacity == 0 {
		return fmt.Errorf("decoding tree: no node slots")
	}
	if jt.NodeCount < 0 || jt.NodeCount > capacity {
		return fmt.Errorf("decoding tree: node count %d out of range for %d slots", jt.NodeCount, capacity)
	}
	if len(jt.ChildrenRight) != capacity || len(jt.Feature) != capacity ||
		len(jt.Threshold) != capacity || len(jt.BestError) != capacity ||
		len(jt.InitError) != capacity || len(jt.SampleCount) != capacity {
		return fmt.Errorf("decoding tree: parallel arrays have inconsistent lengths")
	}
	if jt.ValueWidth < 1 || len(jt.Value) != capacity*jt.ValueWidth {
		return fmt.Errorf("decoding tree: value array does not match %d slots of width %d", capacity, jt.ValueWidth)
	}
	for i := 0; i < capacity; i++ {
		l, r := jt.ChildrenLeft[i], jt.ChildrenRight[i]
		if (l == Leaf) != (r == Leaf) {
			return fmt.Errorf("decoding tree: node %d has a leaf and a non-leaf child", i)
		}
		if l >= capacity || r >= capacity || (l >= 0 && l <= i) || (r >= 0 && r <= i) {
			return fmt.Errorf("decoding tree: node %d has child out of range", i)
		}
	}
	t.nFeatures = jt.FeatureCount
	t.valueWidth = jt.ValueWidth
	t.nodeCount = jt.NodeCount
	t.capacity = capacity
	t.childrenLeft = jt.ChildrenLeft
	t.childrenRight = jt.ChildrenRight
	t.feature = jt.Feature
	t.threshold = jt.Threshold
	t.value = jt.Value
	t.bestError = jt.BestError
	t.initError = jt.InitError
	t.nSamples = jt.SampleCount
	return nil
}
