/*
Package sqldataset provides loading of dataset.Table training data
from SQL databases through an Adapter interface with SQLite3 and
PostgreSQL implementations in their own subpackages.

Samples are expected on a table named samples with one column per
feature.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/feature"
)

const samplesTableName = "samples"

/*
Adapter is an interface providing the methods needed to load samples
from a specific SQL database backend.
*/
type Adapter interface {
	// ColumnName takes a feature name and returns the quoted column
	// name to use for it in a query, or an error if the name cannot
	// be a column of the backend.
	ColumnName(string) (string, error)
	// Query runs the given query on the backend and returns its
	// rows.
	Query(ctx context.Context, query string) (*sql.Rows, error)
	// Close closes the connection to the backend.
	Close() error
}

/*
ReadTable takes a context, an adapter, a slice of input features and a
target feature and returns a dataset.Table with all the samples on the
adapter's backend, or an error if the backend cannot be queried or a
sample holds an invalid value.
*/
func ReadTable(ctx context.Context, a Adapter, features []feature.Feature, target feature.Feature) (*dataset.Table, error) {
	columns := make([]string, 0, len(features)+1)
	for _, f := range append(append([]feature.Feature{}, features...), target) {
		column, err := a.ColumnName(f.Name())
		if err != nil {
			return nil, fmt.Errorf("reading samples: %v", err)
		}
		columns = append(columns, column)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), samplesTableName)
	rows, err := a.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
	}
	defer rows.Close()
	var xRows, yRows [][]float64
	for rows.Next() {
		x := make([]float64, len(features))
		dests := make([]interface{}, 0, len(features)+1)
		for i := range x {
			dests = append(dests, &x[i])
		}
		var y float64
		var yClass string
		if _, discrete := target.(*feature.DiscreteFeature); discrete {
			dests = append(dests, &yClass)
		} else {
			dests = append(dests, &y)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("scanning sample: %v", err)
		}
		if df, discrete := target.(*feature.DiscreteFeature); discrete {
			class, err := df.ClassIndex(yClass)
			if err != nil {
				return nil, fmt.Errorf("scanning sample: %v", err)
			}
			y = float64(class)
		}
		xRows = append(xRows, x)
		yRows = append(yRows, []float64{y})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading samples: %v", err)
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
