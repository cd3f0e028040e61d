package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oculairmedia/graphline/internal/core/upsert"
)

// Render turns a validated Operation into a parameterized openCypher query.
// The operation record says what to write; this is the only place that knows
// how to phrase it. Rendering is deterministic (sorted property order) so a
// dry-run log matches what live mode would send byte for byte.
func Render(op upsert.Operation) (string, map[string]any, error) {
	if err := op.Validate(); err != nil {
		return "", nil, err
	}
	switch op.Kind {
	case upsert.KindDocument:
		return renderNode(op, upsert.LabelEpisodic)
	case upsert.KindEntity:
		return renderNode(op, upsert.LabelEntity)
	case upsert.KindMention:
		return renderEdge(op, upsert.LabelEpisodic, upsert.LabelEntity, upsert.EdgeMentions)
	case upsert.KindRelates:
		return renderEdge(op, upsert.LabelEntity, upsert.LabelEntity, upsert.EdgeRelatesTo)
	default:
		return "", nil, fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

func renderNode(op upsert.Operation, label string) (string, map[string]any, error) {
	params := map[string]any{}

	var b strings.Builder
	fmt.Fprintf(&b, "MERGE (n:%s {%s})", label, mergePredicate(op.MergeKeys, params))
	if clause := setClause("n", "c_", op.SetOnCreate, params); clause != "" {
		b.WriteString("\nON CREATE SET ")
		b.WriteString(clause)
	}
	if clause := setClause("n", "s_", op.SetAlways, params); clause != "" {
		b.WriteString("\nSET ")
		b.WriteString(clause)
	}
	b.WriteString("\nRETURN n.uuid AS uuid")
	return b.String(), params, nil
}

func renderEdge(op upsert.Operation, sourceLabel, targetLabel, edgeType string) (string, map[string]any, error) {
	params := map[string]any{
		"source_uuid": op.SourceUUID,
		"target_uuid": op.TargetUUID,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (source:%s {uuid: $source_uuid})", sourceLabel)
	fmt.Fprintf(&b, "\nMATCH (target:%s {uuid: $target_uuid})", targetLabel)
	fmt.Fprintf(&b, "\nMERGE (source)-[e:%s {%s}]->(target)", edgeType, mergePredicate(op.MergeKeys, params))
	if clause := setClause("e", "c_", op.SetOnCreate, params); clause != "" {
		b.WriteString("\nON CREATE SET ")
		b.WriteString(clause)
	}
	if clause := setClause("e", "s_", op.SetAlways, params); clause != "" {
		b.WriteString("\nSET ")
		b.WriteString(clause)
	}
	b.WriteString("\nRETURN e.uuid AS uuid")
	return b.String(), params, nil
}

// mergePredicate renders `uuid: $uuid, group_id: $group_id` and fills params.
func mergePredicate(keys map[string]any, params map[string]any) string {
	names := sortedKeys(keys)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		params[k] = keys[k]
		parts = append(parts, fmt.Sprintf("%s: $%s", k, k))
	}
	return strings.Join(parts, ", ")
}

// setClause renders `n.prop = $c_prop, ...`. Set-property params carry a
// prefix so they cannot collide with merge-key params of the same name.
func setClause(alias, prefix string, props map[string]any, params map[string]any) string {
	names := sortedKeys(props)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		param := prefix + k
		params[param] = props[k]
		parts = append(parts, fmt.Sprintf("%s.%s = $%s", alias, k, param))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
