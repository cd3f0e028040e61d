package store

import (
	"context"
	"fmt"

	"github.com/oculairmedia/graphline/internal/llm"
)

const searchEntitiesQuery = `
MATCH (n:Entity {group_id: $group_id})
WHERE n.name CONTAINS $query
RETURN n.name AS name, n.summary AS summary
LIMIT $limit`

// SearchEntities finds entities in a group by substring match and returns
// "name: summary" lines. When a reranker is configured the matches are
// reordered by LLM-judged relevance.
func (c *Client) SearchEntities(ctx context.Context, groupID, query string, limit int, reranker llm.Reranker) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	params := map[string]any{
		"group_id": groupID,
		"query":    query,
		"limit":    limit,
	}

	result, err := c.Driver.ExecuteQuery(ctx, searchEntitiesQuery, params)
	if err != nil {
		return nil, fmt.Errorf("entity search failed: %w", err)
	}

	var results []string
	for _, record := range result.Records {
		name, _ := record.Get("name")
		summary, _ := record.Get("summary")
		results = append(results, fmt.Sprintf("%v: %v", name, summary))
	}

	if reranker != nil && len(results) > 1 {
		indices, err := reranker.Rank(ctx, query, results)
		if err == nil {
			reordered := make([]string, 0, len(results))
			for _, i := range indices {
				if i >= 0 && i < len(results) {
					reordered = append(reordered, results[i])
				}
			}
			if len(reordered) > 0 {
				results = reordered
			}
		}
	}

	return results, nil
}
