// Backfill: repairs timestamp properties written by earlier pipeline
// variants as numeric epoch millis, rewriting them as canonical RFC3339
// strings so temporal queries see one representation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/oculairmedia/graphline/internal/core/timeutil"
	"github.com/oculairmedia/graphline/internal/driver"
)

func main() {
	addr := flag.String("addr", "localhost:6379", "FalkorDB address")
	graph := flag.String("graph", "graphiti_migration", "graph name")
	dryRun := flag.Bool("dry-run", false, "report updates without executing them")
	flag.Parse()

	ctx := context.Background()

	d, err := driver.NewFalkorDriver(*addr, *graph)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer d.Close(ctx)

	nodesExamined, nodesUpdated, err := backfillNodes(ctx, d, *dryRun)
	if err != nil {
		log.Fatalf("Node backfill failed: %v", err)
	}
	relsExamined, relsUpdated, err := backfillRelationships(ctx, d, *dryRun)
	if err != nil {
		log.Fatalf("Relationship backfill failed: %v", err)
	}

	log.Printf("Nodes: examined=%d updated=%d", nodesExamined, nodesUpdated)
	log.Printf("Relationships: examined=%d updated=%d", relsExamined, relsUpdated)
	if *dryRun {
		log.Println("Dry run: no changes were written")
	}
}

func backfillNodes(ctx context.Context, d *driver.FalkorDriver, dryRun bool) (examined, updated int, err error) {
	result, err := d.ExecuteQuery(ctx,
		"MATCH (n) WHERE n.created_at IS NOT NULL OR n.valid_at IS NOT NULL "+
			"RETURN id(n) AS id, n.created_at AS created_at, n.valid_at AS valid_at", nil)
	if err != nil {
		return 0, 0, err
	}

	for _, rec := range result.Records {
		examined++
		var sets []string
		params := map[string]any{"id": rec["id"]}

		if iso, changed := timeutil.Canonicalize(rec["created_at"]); changed {
			sets = append(sets, "n.created_at = $created_at")
			params["created_at"] = iso
		}
		if iso, changed := timeutil.Canonicalize(rec["valid_at"]); changed {
			sets = append(sets, "n.valid_at = $valid_at")
			params["valid_at"] = iso
		}
		if len(sets) == 0 {
			continue
		}

		query := fmt.Sprintf("MATCH (n) WHERE id(n) = $id SET %s RETURN n.uuid", strings.Join(sets, ", "))
		if dryRun {
			log.Printf("[dry-run] %s params=%v", query, params)
			updated++
			continue
		}
		if _, err := d.ExecuteQuery(ctx, query, params); err != nil {
			return examined, updated, fmt.Errorf("node id=%v: %w", rec["id"], err)
		}
		updated++
	}
	return examined, updated, nil
}

func backfillRelationships(ctx context.Context, d *driver.FalkorDriver, dryRun bool) (examined, updated int, err error) {
	result, err := d.ExecuteQuery(ctx,
		"MATCH ()-[r]->() WHERE r.created_at IS NOT NULL "+
			"RETURN id(r) AS id, r.created_at AS created_at", nil)
	if err != nil {
		return 0, 0, err
	}

	for _, rec := range result.Records {
		examined++
		iso, changed := timeutil.Canonicalize(rec["created_at"])
		if !changed {
			continue
		}

		query := "MATCH ()-[r]->() WHERE id(r) = $id SET r.created_at = $created_at RETURN r.uuid"
		params := map[string]any{"id": rec["id"], "created_at": iso}
		if dryRun {
			log.Printf("[dry-run] %s params=%v", query, params)
			updated++
			continue
		}
		if _, err := d.ExecuteQuery(ctx, query, params); err != nil {
			return examined, updated, fmt.Errorf("relationship id=%v: %w", rec["id"], err)
		}
		updated++
	}
	return examined, updated, nil
}
