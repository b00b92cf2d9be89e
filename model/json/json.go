/*
Package json provides methods to serialize fitted models as JSON and
parse them back.

A model is serialized as a JSON object with the following fields:
  - "task": "classification" or "regression"
  - "features": an array with the names of the input features, in
    feature-column order
  - "target": an object with the name of the predicted feature and,
    for classification, the array of its classes in encoding order
  - "tree": the tree's parallel arrays
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/grovekit/grove/feature"
	"github.com/grovekit/grove/model"
	"github.com/grovekit/grove/tree"
)

type modelJSON struct {
	Task     string     `json:"task"`
	Features []string   `json:"features"`
	Target   targetJSON `json:"target"`
	Tree     *tree.Tree `json:"tree"`
}

type targetJSON struct {
	Name    string   `json:"name"`
	Classes []string `json:"classes,omitempty"`
}

type encodeDecoder struct{}

// NewEncodeDecoder returns a model.EncodeDecoder serializing models
// as JSON.
func NewEncodeDecoder() model.EncodeDecoder {
	return encodeDecoder{}
}

func (encodeDecoder) Encode(m *model.Model) ([]byte, error) {
	return Encode(m)
}

func (encodeDecoder) Decode(data []byte) (*model.Model, error) {
	return Decode(data)
}

/*
Encode takes a model and returns a slice of bytes with the model
serialized as JSON, or an error if it cannot be serialized.
*/
func Encode(m *model.Model) ([]byte, error) {
	jm := &modelJSON{
		Task:     m.Task().String(),
		Features: m.FeatureNames(),
		Target:   targetJSON{Name: m.Target.Name()},
		Tree:     m.Tree,
	}
	if df, ok := m.Target.(*feature.DiscreteFeature); ok {
		jm.Target.Classes = df.AvailableValues()
	}
	data, err := json.Marshal(jm)
	if err != nil {
		return nil, fmt.Errorf("encoding model: %v", err)
	}
	return data, nil
}

/*
Decode takes a slice of bytes with a JSON-serialized model and returns
the model parsed from it, or an error if it cannot be parsed or its
tree is inconsistent with its features.
*/
func Decode(data []byte) (*model.Model, error) {
	jm := &modelJSON{Tree: &tree.Tree{}}
	if err := json.Unmarshal(data, jm); err != nil {
		return nil, fmt.Errorf("decoding model: %v", err)
	}
	var target feature.Feature
	switch jm.Task {
	case "classification":
		if len(jm.Target.Classes) == 0 {
			return nil, fmt.Errorf("decoding model: classification target %s has no classes", jm.Target.Name)
		}
		target = feature.NewDiscreteFeature(jm.Target.Name, jm.Target.Classes)
	case "regression":
		target = feature.NewContinuousFeature(jm.Target.Name)
	default:
		return nil, fmt.Errorf("decoding model: unknown task %q", jm.Task)
	}
	features := make([]feature.Feature, len(jm.Features))
	for i, name := range jm.Features {
		features[i] = feature.NewContinuousFeature(name)
	}
	m, err := model.New(jm.Tree, features, target)
	if err != nil {
		return nil, fmt.Errorf("decoding model: %v", err)
	}
	return m, nil
}

/*
WriteModel takes an io.Writer and a model and serializes the model as
JSON onto the writer.
*/
func WriteModel(w io.Writer, m *model.Model) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

/*
ReadModel takes an io.Reader with a JSON-serialized model and returns
the model parsed from it or an error.
*/
func ReadModel(r io.Reader) (*model.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading model: %v", err)
	}
	return Decode(data)
}
