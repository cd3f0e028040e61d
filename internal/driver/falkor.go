package driver

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// FalkorDriver talks to FalkorDB, which speaks the Redis protocol and takes
// openCypher via GRAPH.QUERY. Parameters are passed using FalkorDB's
// "CYPHER name=value ..." query prefix rather than interpolated into the
// query body.
type FalkorDriver struct {
	client *redis.Client
	graph  string
}

func NewFalkorDriver(addr, graph string) (*FalkorDriver, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to FalkorDB at %s: %w", addr, err)
	}
	log.Printf("Connected to FalkorDB at %s (graph %s)", addr, graph)
	return &FalkorDriver{client: client, graph: graph}, nil
}

func (d *FalkorDriver) Close(ctx context.Context) error {
	return d.client.Close()
}

func (d *FalkorDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (Result, error) {
	full := query
	if len(params) > 0 {
		full = cypherParamPrefix(params) + " " + query
	}
	raw, err := d.client.Do(ctx, "GRAPH.QUERY", d.graph, full).Result()
	if err != nil {
		return Result{}, fmt.Errorf("GRAPH.QUERY failed: %w", err)
	}
	return parseFalkorResult(raw), nil
}

func (d *FalkorDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX FOR (n:Entity) ON (n.uuid)",
		"CREATE INDEX FOR (n:Entity) ON (n.group_id)",
		"CREATE INDEX FOR (n:Episodic) ON (n.uuid)",
		"CREATE INDEX FOR (n:Episodic) ON (n.group_id)",
	}
	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			// Index likely exists already.
			log.Printf("Warning: failed to create index '%s': %v", q, err)
		}
	}
	return nil
}

// cypherParamPrefix renders params as a deterministic CYPHER prefix. Keys
// are sorted so the same operation always produces the same wire query.
func cypherParamPrefix(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("CYPHER")
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(cypherLiteral(params[k]))
	}
	return b.String()
}

func cypherLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return quoteCypherString(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case []string:
		parts := make([]string, len(t))
		for i, s := range t {
			parts[i] = quoteCypherString(s)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []float32:
		parts := make([]string, len(t))
		for i, f := range t {
			parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return quoteCypherString(fmt.Sprintf("%v", t))
	}
}

func quoteCypherString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	return "'" + r.Replace(s) + "'"
}

// parseFalkorResult translates the nested-array reply of GRAPH.QUERY into
// Records. Reply shape: [header, rows, statistics]; each row is a list of
// cell values aligned with the header columns.
func parseFalkorResult(raw any) Result {
	top, ok := raw.([]any)
	if !ok || len(top) < 2 {
		return Result{}
	}
	header, _ := top[0].([]any)
	rows, _ := top[1].([]any)

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = fmt.Sprintf("%v", h)
	}

	result := Result{Records: make([]Record, 0, len(rows))}
	for _, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			continue
		}
		rec := make(Record, len(cols))
		for i, c := range cells {
			if i < len(cols) {
				rec[cols[i]] = c
			}
		}
		result.Records = append(result.Records, rec)
	}
	return result
}
