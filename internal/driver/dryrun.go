package driver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync"
)

// LoggedQuery is one query the dry-run driver would have executed.
type LoggedQuery struct {
	Query  string         `json:"query"`
	Params map[string]any `json:"params,omitempty"`
}

// DryRunDriver records every query instead of executing it, and optionally
// serializes it to a sink. It receives exactly the queries a live driver
// would, so a recorded log replayed against a real store yields the same end
// state as running live.
type DryRunDriver struct {
	mu      sync.Mutex
	queries []LoggedQuery
	Sink    io.Writer // optional; JSON lines
}

func NewDryRunDriver(sink io.Writer) *DryRunDriver {
	return &DryRunDriver{Sink: sink}
}

func (d *DryRunDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry := LoggedQuery{Query: query, Params: params}
	d.queries = append(d.queries, entry)

	if d.Sink != nil {
		line, err := json.Marshal(entry)
		if err == nil {
			d.Sink.Write(append(line, '\n'))
		}
	} else {
		log.Printf("[dry-run] %s params=%v", query, params)
	}
	return Result{}, nil
}

func (d *DryRunDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (d *DryRunDriver) Close(ctx context.Context) error {
	return nil
}

// Queries returns a copy of everything recorded so far.
func (d *DryRunDriver) Queries() []LoggedQuery {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]LoggedQuery, len(d.queries))
	copy(out, d.queries)
	return out
}
