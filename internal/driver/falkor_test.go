package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCypherParamPrefixDeterministic(t *testing.T) {
	params := map[string]any{
		"uuid":     "abc",
		"group_id": "g",
		"count":    int64(3),
	}

	prefix := cypherParamPrefix(params)
	assert.Equal(t, "CYPHER count=3 group_id='g' uuid='abc'", prefix)
	assert.Equal(t, prefix, cypherParamPrefix(params))
}

func TestCypherLiteralEscaping(t *testing.T) {
	assert.Equal(t, `'it\'s'`, cypherLiteral("it's"))
	assert.Equal(t, `'line\nbreak'`, cypherLiteral("line\nbreak"))
	assert.Equal(t, `'back\\slash'`, cypherLiteral(`back\slash`))
	assert.Equal(t, "null", cypherLiteral(nil))
	assert.Equal(t, "true", cypherLiteral(true))
	assert.Equal(t, "42", cypherLiteral(42))
	assert.Equal(t, "['a', 'b']", cypherLiteral([]string{"a", "b"}))
}

func TestParseFalkorResult(t *testing.T) {
	raw := []any{
		[]any{"name", "summary"},
		[]any{
			[]any{"docker", "container platform"},
			[]any{"redis", "data store"},
		},
		[]any{"Query internal execution time: 0.2"},
	}

	result := parseFalkorResult(raw)

	assert.Len(t, result.Records, 2)
	name, ok := result.Records[0].Get("name")
	assert.True(t, ok)
	assert.Equal(t, "docker", name)
	summary, _ := result.Records[1].Get("summary")
	assert.Equal(t, "data store", summary)
}

func TestParseFalkorResultEmpty(t *testing.T) {
	assert.Empty(t, parseFalkorResult(nil).Records)
	assert.Empty(t, parseFalkorResult([]any{}).Records)
	assert.Empty(t, parseFalkorResult([]any{[]any{"col"}, []any{}}).Records)
}
