//go:build cgo

package store

// DuckDB needs cgo; without it only the SQLite driver is registered.
import _ "github.com/marcboeker/go-duckdb"
