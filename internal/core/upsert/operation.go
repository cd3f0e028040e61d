// Package upsert builds idempotent merge operations against the Graphiti
// graph schema. An Operation says what to write; rendering it into a query
// and executing it belongs to the store client. Because every identifier is
// content-derived and every write is a merge keyed on the mandatory schema
// properties, re-applying the same operations converges to the same graph.
package upsert

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindDocument Kind = "upsert_document"
	KindEntity   Kind = "upsert_entity"
	KindMention  Kind = "upsert_mention"
	KindRelates  Kind = "upsert_relates"
)

// Node labels and relationship types of the persisted schema.
const (
	LabelEpisodic = "Episodic"
	LabelEntity   = "Entity"
	EdgeMentions  = "MENTIONS"
	EdgeRelatesTo = "RELATES_TO"
)

var (
	ErrEmptyGroupID    = errors.New("empty group_id")
	ErrMissingMergeKey = errors.New("missing mandatory merge key")
	ErrMissingEndpoint = errors.New("edge operation missing endpoint uuid")
)

// Operation is a structured merge-or-update against one node or edge.
// MergeKeys form the MERGE predicate and must cover every property the
// schema marks mandatory for the kind. SetOnCreate properties are stamped
// once on first creation and never overwritten; SetAlways properties are
// written on every application (last writer wins).
type Operation struct {
	Kind        Kind
	MergeKeys   map[string]any
	SetOnCreate map[string]any
	SetAlways   map[string]any

	// Endpoint node UUIDs, set for edge kinds only. Both endpoints must
	// already exist when the operation is applied.
	SourceUUID string
	TargetUUID string
}

var mandatoryMergeKeys = map[Kind][]string{
	KindDocument: {"uuid", "group_id"},
	KindEntity:   {"uuid", "name", "group_id"},
	KindMention:  {"uuid", "group_id"},
	KindRelates:  {"uuid", "group_id"},
}

var edgeKinds = map[Kind]bool{
	KindMention: true,
	KindRelates: true,
}

// Validate checks schema compliance: every mandatory merge key present and
// non-empty, and endpoints set for edge kinds. An invalid operation is a
// caller bug upstream; it must never reach the store.
func (op Operation) Validate() error {
	required, ok := mandatoryMergeKeys[op.Kind]
	if !ok {
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
	for _, key := range required {
		v, present := op.MergeKeys[key]
		if !present {
			return fmt.Errorf("%w: %s %s", ErrMissingMergeKey, op.Kind, key)
		}
		if s, isStr := v.(string); isStr && s == "" {
			if key == "group_id" {
				return fmt.Errorf("%w: %s", ErrEmptyGroupID, op.Kind)
			}
			return fmt.Errorf("%w: %s %s is empty", ErrMissingMergeKey, op.Kind, key)
		}
	}
	if edgeKinds[op.Kind] && (op.SourceUUID == "" || op.TargetUUID == "") {
		return fmt.Errorf("%w: %s", ErrMissingEndpoint, op.Kind)
	}
	return nil
}

// UUID returns the merge-key identifier, empty if absent.
func (op Operation) UUID() string {
	s, _ := op.MergeKeys["uuid"].(string)
	return s
}

// GroupID returns the merge-key group partition key, empty if absent.
func (op Operation) GroupID() string {
	s, _ := op.MergeKeys["group_id"].(string)
	return s
}

// IsEdge reports whether the operation targets a relationship.
func (op Operation) IsEdge() bool {
	return edgeKinds[op.Kind]
}
