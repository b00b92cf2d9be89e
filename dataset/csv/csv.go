/*
Package csv provides methods to load dataset.Table training data from
CSV streams and files.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/feature"
)

/*
ReadTable takes an io.Reader for a CSV stream, a slice of input
features and a target feature, and returns a dataset.Table with the
samples parsed from the reader or an error.

The header or first row of the CSV content is expected to contain the
names of all the given features, in any order and possibly among
other columns, which are ignored. The remaining rows should consist of
valid values for every feature: numbers for continuous features and
available values for a discrete target, which are encoded to class
indices.
*/
func ReadTable(reader io.Reader, features []feature.Feature, target feature.Feature) (*dataset.Table, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	featureCols, targetCol, err := columnsFor(header, features, target)
	if err != nil {
		return nil, err
	}
	var xRows, yRows [][]float64
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		x := make([]float64, len(features))
		for i, col := range featureCols {
			x[i], err = strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing line %d: feature %s: %v", l, features[i].Name(), err)
			}
		}
		y, err := parseTargetValue(row[targetCol], target)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
		xRows = append(xRows, x)
		yRows = append(yRows, []float64{y})
	}
	X, err := dataset.MatrixFromRows(xRows)
	if err != nil {
		return nil, err
	}
	Y, err := dataset.MatrixFromRows(yRows)
	if err != nil {
		return nil, err
	}
	return dataset.NewTable(X, Y, features, target)
}

/*
ReadTableFromFilePath takes a filepath string, a slice of input
features and a target feature, opens the file the filepath points to
and uses ReadTable to return a dataset.Table read from it. It will
return an error if the given filepath cannot be opened for reading.
*/
func ReadTableFromFilePath(filepath string, features []feature.Feature, target feature.Feature) (*dataset.Table, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening dataset at %s: %v", filepath, err)
	}
	defer f.Close()
	return ReadTable(f, features, target)
}

/*
ReadMatrix takes an io.Reader for a CSV stream and a slice of input
features and returns a dataset.Matrix with one column per feature,
parsed from the reader, or an error. The header is handled as in
ReadTable; no target column is required. It is the form prediction
inputs are loaded in.
*/
func ReadMatrix(reader io.Reader, features []feature.Feature) (*dataset.Matrix, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	colByName := make(map[string]int)
	for i, name := range header {
		colByName[name] = i
	}
	featureCols := make([]int, len(features))
	for i, f := range features {
		col, ok := colByName[f.Name()]
		if !ok {
			return nil, fmt.Errorf("feature %s not found in CSV header", f.Name())
		}
		featureCols[i] = col
	}
	var xRows [][]float64
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		x := make([]float64, len(features))
		for i, col := range featureCols {
			x[i], err = strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("parsing line %d: feature %s: %v", l, features[i].Name(), err)
			}
		}
		xRows = append(xRows, x)
	}
	return dataset.MatrixFromRows(xRows)
}

func columnsFor(header []string, features []feature.Feature, target feature.Feature) ([]int, int, error) {
	colByName := make(map[string]int)
	for i, name := range header {
		colByName[name] = i
	}
	featureCols := make([]int, len(features))
	for i, f := range features {
		col, ok := colByName[f.Name()]
		if !ok {
			return nil, 0, fmt.Errorf("feature %s not found in CSV header", f.Name())
		}
		featureCols[i] = col
	}
	targetCol, ok := colByName[target.Name()]
	if !ok {
		return nil, 0, fmt.Errorf("target feature %s not found in CSV header", target.Name())
	}
	return featureCols, targetCol, nil
}

func parseTargetValue(value string, target feature.Feature) (float64, error) {
	if df, ok := target.(*feature.DiscreteFeature); ok {
		class, err := df.ClassIndex(value)
		if err != nil {
			return 0, err
		}
		return float64(class), nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("target %s: %v", target.Name(), err)
	}
	return v, nil
}
