// Package store executes graph upsert operations against a GraphDriver. It
// owns query phrasing but no domain knowledge: whatever operations it is
// given, it applies in order.
package store

import (
	"context"
	"fmt"
	"log"

	"github.com/oculairmedia/graphline/internal/core/upsert"
	"github.com/oculairmedia/graphline/internal/driver"
)

// OpError describes one failed operation with enough context to retry it.
// Operations are idempotent merges, so retrying a failure has no side
// effects beyond the intended write.
type OpError struct {
	Kind    upsert.Kind
	UUID    string
	GroupID string
	Err     error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s uuid=%s group_id=%s: %v", e.Kind, e.UUID, e.GroupID, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Result summarizes one Apply call.
type Result struct {
	Applied int
	Failed  []*OpError
}

// Client applies operations through an injected driver. A dry-run client is
// just a Client over a DryRunDriver; both modes render identical queries.
type Client struct {
	Driver driver.GraphDriver
}

func NewClient(d driver.GraphDriver) *Client {
	return &Client{Driver: d}
}

// Apply validates, renders and executes operations strictly in the order
// given. A failed operation is recorded and the rest of the batch continues;
// errors are never swallowed silently. An invalid operation (schema
// violation) aborts immediately; it indicates a caller bug, not a store
// fault.
func (c *Client) Apply(ctx context.Context, ops []upsert.Operation) (Result, error) {
	var res Result
	for _, op := range ops {
		query, params, err := Render(op)
		if err != nil {
			return res, fmt.Errorf("invalid operation: %w", err)
		}
		if _, err := c.Driver.ExecuteQuery(ctx, query, params); err != nil {
			opErr := &OpError{Kind: op.Kind, UUID: op.UUID(), GroupID: op.GroupID(), Err: err}
			log.Printf("operation failed: %v", opErr)
			res.Failed = append(res.Failed, opErr)
			continue
		}
		res.Applied++
	}
	return res, nil
}

func (c *Client) BuildIndices(ctx context.Context) error {
	return c.Driver.BuildIndices(ctx)
}

func (c *Client) Close(ctx context.Context) error {
	return c.Driver.Close(ctx)
}
