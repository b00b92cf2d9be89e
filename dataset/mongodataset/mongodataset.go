/*
Package mongodataset provides loading of dataset.Table training data
from a MongoDB collection.

Samples are expected as documents of the samples collection of the
session's default database, with one property per feature.
*/
package mongodataset

import (
	"context"
	"fmt"

	"github.com/grovekit/grove/dataset"
	"github.com/grovekit/grove/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const samplesCollectionName = "samples"

/*
ReadTable takes a context, a MongoDB database session, a slice of
input features and a target feature and returns a dataset.Table with
all the samples on the session's default database, or an error if the
collection cannot be queried or a sample holds an invalid value.
*/
func ReadTable(ctx context.Context, session *mgo.Session, features []feature.Feature, target feature.Feature) (*dataset.Table, error) {
	var xRows, yRows [][]float64
	iter := session.DB("").C(samplesCollectionName).Find(nil).Iter()
	var doc bson.M
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return nil, err
		}
		x := make([]float64, len(features))
		for i, f := range features {
			v, err := numericValue(doc, f.Name())
			if err != nil {
				return nil, fmt.Errorf("reading sample %v: %v", doc["_id"], err)
			}
			x[i] = v
		}
		y, err := targetValue(doc, target)
		if err != nil {
			return nil, fmt.Errorf("reading sample %v: %v", doc["_id"], err)
		}
		xRows = append(xRows, x)
		yRows = append(yRows, []float64{y})
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("reading samples collection: %v", err)
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

func numericValue(doc bson.M, name string) (float64, error) {
	switch v := doc[name].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case nil:
		return 0, fmt.Errorf("feature %s has no value", name)
	default:
		return 0, fmt.Errorf("feature %s has non-numeric value %v", name, v)
	}
}

func targetValue(doc bson.M, target feature.Feature) (float64, error) {
	if df, ok := target.(*feature.DiscreteFeature); ok {
		vs, ok := doc[target.Name()].(string)
		if !ok {
			return 0, fmt.Errorf("target %s expects string value, got %T", target.Name(), doc[target.Name()])
		}
		class, err := df.ClassIndex(vs)
		if err != nil {
			return 0, err
		}
		return float64(class), nil
	}
	return numericValue(doc, target.Name())
}
