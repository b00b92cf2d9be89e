/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqldataset package that works over an SQLite3
database file.
*/
package sqlite3adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/grovekit/grove/dataset/sqldataset"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a limit to the number
of open connections (0 meaning no limit) and returns an Adapter that
works on the file's database or an error if it fails to open as an
sqlite3 database.
*/
func New(path string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return fmt.Sprintf("%q", featureName), nil
}

func (a *adapter) Query(ctx context.Context, query string) (*sql.Rows, error) {
	return a.db.QueryContext(ctx, query)
}

func (a *adapter) Close() error {
	return a.db.Close()
}
