package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON unmarshals the JSON object embedded in an LLM response into T.
// Models routinely wrap their output in markdown fences or commentary, so
// everything outside the outermost braces is discarded before decoding.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return zero, fmt.Errorf("no JSON object found in response")
	}
	jsonStr := response[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, jsonStr)
	}

	return result, nil
}
