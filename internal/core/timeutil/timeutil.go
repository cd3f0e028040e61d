package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Canonical timestamp layout: RFC3339, millisecond precision, trailing 'Z'.
// Graph properties store this string form only. Earlier pipeline runs mixed
// epoch-millis integers (the graph engine's timestamp()) with ISO strings,
// which broke temporal range queries downstream.
const layout = "2006-01-02T15:04:05.000Z"

var canonicalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{3})?Z$`)

// NowISO returns the current UTC time in canonical form.
func NowISO() string {
	return time.Now().UTC().Format(layout)
}

// FromEpochMillis converts a millisecond Unix epoch to canonical form.
// Accepts the numeric shapes that show up when reading graph properties back
// (int64, float64) as well as numeric strings.
func FromEpochMillis(value any) (string, error) {
	var ms int64
	switch v := value.(type) {
	case int:
		ms = int64(v)
	case int64:
		ms = v
	case float64:
		ms = int64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return "", fmt.Errorf("not a numeric epoch: %q", v)
		}
		ms = int64(f)
	default:
		return "", fmt.Errorf("unsupported epoch type %T", value)
	}
	return time.UnixMilli(ms).UTC().Format(layout), nil
}

// IsCanonical reports whether value matches the canonical pattern
// YYYY-MM-DDTHH:MM:SS(.mmm)?Z.
func IsCanonical(value string) bool {
	return canonicalPattern.MatchString(value)
}

// Canonicalize inspects a timestamp property read back from the graph and
// returns its canonical form plus whether a rewrite is needed. Values that
// are already canonical, or that are not timestamps at all, come back
// unchanged with changed=false. Used by the backfill command.
func Canonicalize(value any) (canonical string, changed bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(v)
		if IsCanonical(s) {
			return s, false
		}
		if isDigits(s) {
			if iso, err := FromEpochMillis(s); err == nil {
				return iso, true
			}
		}
		return s, false
	case int, int64, float64:
		if iso, err := FromEpochMillis(v); err == nil {
			return iso, true
		}
		return "", false
	default:
		return "", false
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
