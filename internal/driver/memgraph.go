package driver

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MemgraphDriver is the bolt-protocol sink, usable against Memgraph or
// Neo4j. Kept as an alternative to FalkorDB for deployments already running
// a bolt store.
type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
}

func NewMemgraphDriver(uri, username, password string) (*MemgraphDriver, error) {
	d, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := d.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to Memgraph")
	return &MemgraphDriver{Driver: d}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (Result, error) {
	eager, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return Result{}, fmt.Errorf("failed to execute query: %w", err)
	}

	result := Result{Records: make([]Record, 0, len(eager.Records))}
	for _, rec := range eager.Records {
		row := make(Record, len(rec.Keys))
		for i, key := range rec.Keys {
			if i < len(rec.Values) {
				row[key] = rec.Values[i]
			}
		}
		result.Records = append(result.Records, row)
	}
	return result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Entity(uuid);",
		"CREATE INDEX ON :Episodic(uuid);",
		"CREATE INDEX ON :Entity(group_id);",
		"CREATE INDEX ON :Episodic(group_id);",
	}

	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			log.Printf("Warning: failed to create index '%s': %v", q, err)
			// Continue, as index might already exist
		}
	}

	return nil
}
