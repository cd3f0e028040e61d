// Package dedupe normalizes and merges the entities and relationships
// extracted from a single document before they are turned into graph
// operations. Deduplication is purely lexical: the normalized name is the
// sole merge key, matching how entity UUIDs are derived.
package dedupe

import (
	"strings"

	"github.com/oculairmedia/graphline/internal/core/model"
)

// NormalizeName is the canonical form used for entity identity: lower-case,
// surrounding whitespace trimmed. Entity UUID derivation, relationship
// endpoint resolution and graph lookups all go through this, so a logical
// entity never splits across node rows on casing differences.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Entities merges duplicate entities by normalized name. When two entries
// collide, the one with the longer description wins (proxy for most
// informative). Output preserves insertion order of first occurrence.
// Names in the result are normalized. Idempotent.
func Entities(entities []model.Entity) []model.Entity {
	seen := make(map[string]int, len(entities))
	out := make([]model.Entity, 0, len(entities))
	for _, e := range entities {
		key := NormalizeName(e.Name)
		if key == "" {
			continue
		}
		e.Name = key
		if i, ok := seen[key]; ok {
			if len(e.Description) > len(out[i].Description) {
				e.Type = pick(e.Type, out[i].Type)
				out[i] = e
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, e)
	}
	return out
}

// Relationships merges duplicate relationship claims by the
// (subject, predicate, object) tuple, all lexically normalized. Ties keep
// the longer fact text. Output preserves insertion order of first
// occurrence, with subject/predicate/object normalized.
func Relationships(rels []model.Relationship) []model.Relationship {
	type key struct{ subject, predicate, object string }
	seen := make(map[key]int, len(rels))
	out := make([]model.Relationship, 0, len(rels))
	for _, r := range rels {
		k := key{
			subject:   NormalizeName(r.Subject),
			predicate: NormalizeName(r.Predicate),
			object:    NormalizeName(r.Object),
		}
		if k.subject == "" || k.predicate == "" || k.object == "" {
			continue
		}
		r.Subject, r.Predicate, r.Object = k.subject, k.predicate, k.object
		if i, ok := seen[k]; ok {
			if len(r.Fact) > len(out[i].Fact) {
				out[i] = r
			}
			continue
		}
		seen[k] = len(out)
		out = append(out, r)
	}
	return out
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
