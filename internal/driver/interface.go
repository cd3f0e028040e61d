package driver

import "context"

// Record is one result row keyed by column name.
type Record map[string]any

func (r Record) Get(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// Result is a driver-neutral query result.
type Result struct {
	Records []Record
}

// GraphDriver executes openCypher queries against a graph store. Query
// construction stays out of this layer; drivers only transport parameterized
// queries and translate results.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (Result, error)
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
