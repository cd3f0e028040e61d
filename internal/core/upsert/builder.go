package upsert

import (
	"fmt"

	"github.com/oculairmedia/graphline/internal/core/dedupe"
	"github.com/oculairmedia/graphline/internal/core/ident"
	"github.com/oculairmedia/graphline/internal/core/model"
	"github.com/oculairmedia/graphline/internal/core/timeutil"
)

// Builder constructs operations for one document's worth of graph writes.
type Builder struct {
	// Now supplies creation timestamps; defaults to timeutil.NowISO.
	// Injectable so tests get stable output.
	Now func() string

	// Embed, when set, supplies a name embedding attached to entity
	// upserts. Lookup failures are the hook's concern; a nil return skips
	// the property.
	Embed func(name string) []float32
}

func NewBuilder() *Builder {
	return &Builder{Now: timeutil.NowISO}
}

func (b *Builder) now() string {
	if b.Now != nil {
		return b.Now()
	}
	return timeutil.NowISO()
}

// Document builds the Episodic node upsert. Name, source fields and
// created_at are stamped on first creation only; content and valid_at are
// refreshed on every run so re-ingesting a changed page updates the node in
// place.
func (b *Builder) Document(doc model.EpisodicNode) (Operation, error) {
	if doc.GroupID == "" {
		return Operation{}, fmt.Errorf("document %s: %w", doc.UUID, ErrEmptyGroupID)
	}
	createdAt := doc.CreatedAt
	if createdAt == "" {
		createdAt = b.now()
	}
	validAt := doc.ValidAt
	if validAt == "" {
		validAt = b.now()
	}
	op := Operation{
		Kind: KindDocument,
		MergeKeys: map[string]any{
			"uuid":     doc.UUID,
			"group_id": doc.GroupID,
		},
		SetOnCreate: map[string]any{
			"name":               doc.Name,
			"source":             doc.Source,
			"source_description": doc.SourceDescription,
			"created_at":         createdAt,
		},
		SetAlways: map[string]any{
			"content":   doc.Content,
			"valid_at":  validAt,
			"source_id": doc.SourceID,
			"url":       doc.URL,
		},
	}
	return op, op.Validate()
}

// Entity builds an Entity node upsert. The entity name is normalized here so
// the merge key, the derived UUID and later lookups always agree.
func (b *Builder) Entity(entity model.Entity, groupID string) (Operation, error) {
	if groupID == "" {
		return Operation{}, fmt.Errorf("entity %q: %w", entity.Name, ErrEmptyGroupID)
	}
	name := dedupe.NormalizeName(entity.Name)
	if name == "" {
		return Operation{}, fmt.Errorf("entity with empty name in group %s", groupID)
	}
	op := Operation{
		Kind: KindEntity,
		MergeKeys: map[string]any{
			"uuid":     ident.EntityUUID(name, groupID),
			"name":     name,
			"group_id": groupID,
		},
		SetOnCreate: map[string]any{
			"created_at": b.now(),
		},
		SetAlways: map[string]any{
			"summary":     entity.Description,
			"entity_type": entity.Type,
			"labels":      []string{entity.Type},
		},
	}
	if b.Embed != nil {
		if vec := b.Embed(name); len(vec) > 0 {
			op.SetAlways["name_embedding"] = vec
		}
	}
	return op, op.Validate()
}

// Mention builds the MENTIONS edge upsert linking an existing document node
// to an existing entity node. Must be applied after both endpoint upserts.
func (b *Builder) Mention(docUUID, entityUUID, groupID string) (Operation, error) {
	if groupID == "" {
		return Operation{}, fmt.Errorf("mention %s->%s: %w", docUUID, entityUUID, ErrEmptyGroupID)
	}
	op := Operation{
		Kind: KindMention,
		MergeKeys: map[string]any{
			"uuid":     ident.MentionUUID(docUUID, entityUUID),
			"group_id": groupID,
		},
		SetOnCreate: map[string]any{
			"created_at": b.now(),
		},
		SetAlways:  map[string]any{},
		SourceUUID: docUUID,
		TargetUUID: entityUUID,
	}
	return op, op.Validate()
}

// Relates builds the RELATES_TO edge upsert between two existing entity
// nodes. Subject/predicate/object are normalized here, consistent with
// entity identity.
func (b *Builder) Relates(rel model.Relationship, groupID string) (Operation, error) {
	if groupID == "" {
		return Operation{}, fmt.Errorf("relationship %q-%q-%q: %w", rel.Subject, rel.Predicate, rel.Object, ErrEmptyGroupID)
	}
	subject := dedupe.NormalizeName(rel.Subject)
	predicate := dedupe.NormalizeName(rel.Predicate)
	object := dedupe.NormalizeName(rel.Object)
	if subject == "" || predicate == "" || object == "" {
		return Operation{}, fmt.Errorf("relationship with empty member in group %s", groupID)
	}
	op := Operation{
		Kind: KindRelates,
		MergeKeys: map[string]any{
			"uuid":     ident.RelatesUUID(subject, predicate, object, groupID),
			"group_id": groupID,
		},
		SetOnCreate: map[string]any{
			"created_at": b.now(),
		},
		SetAlways: map[string]any{
			"predicate": predicate,
			"fact":      rel.Fact,
		},
		SourceUUID: ident.EntityUUID(subject, groupID),
		TargetUUID: ident.EntityUUID(object, groupID),
	}
	return op, op.Validate()
}

// SkippedRelationship records a relationship left out of a plan because an
// endpoint did not resolve to any extracted entity.
type SkippedRelationship struct {
	Relationship model.Relationship
	Reason       string
}

// Plan composes the full ordered operation sequence for one document:
// document node first, then every entity node, then MENTIONS edges, then
// RELATES_TO edges. The order is a topological requirement: an edge merge
// matches on its endpoints, so both must exist before it is applied.
//
// Entities and relationships are expected deduplicated (dedupe.Entities /
// dedupe.Relationships). Relationships whose subject or object does not
// match a planned entity, case- and whitespace-insensitively, are skipped
// and reported rather than silently producing a no-op merge.
func (b *Builder) Plan(doc model.EpisodicNode, entities []model.Entity, rels []model.Relationship) ([]Operation, []SkippedRelationship, error) {
	docOp, err := b.Document(doc)
	if err != nil {
		return nil, nil, err
	}
	groupID := doc.GroupID

	ops := make([]Operation, 0, 1+2*len(entities)+len(rels))
	ops = append(ops, docOp)

	planned := make(map[string]string, len(entities)) // normalized name -> entity uuid
	for _, e := range entities {
		entOp, err := b.Entity(e, groupID)
		if err != nil {
			return nil, nil, err
		}
		planned[entOp.MergeKeys["name"].(string)] = entOp.UUID()
		ops = append(ops, entOp)
	}

	for _, e := range entities {
		entityUUID := planned[dedupe.NormalizeName(e.Name)]
		mentionOp, err := b.Mention(doc.UUID, entityUUID, groupID)
		if err != nil {
			return nil, nil, err
		}
		ops = append(ops, mentionOp)
	}

	var skipped []SkippedRelationship
	for _, r := range rels {
		subject := dedupe.NormalizeName(r.Subject)
		object := dedupe.NormalizeName(r.Object)
		if _, ok := planned[subject]; !ok {
			skipped = append(skipped, SkippedRelationship{Relationship: r, Reason: fmt.Sprintf("subject %q not among extracted entities", subject)})
			continue
		}
		if _, ok := planned[object]; !ok {
			skipped = append(skipped, SkippedRelationship{Relationship: r, Reason: fmt.Sprintf("object %q not among extracted entities", object)})
			continue
		}
		relOp, err := b.Relates(r, groupID)
		if err != nil {
			return nil, nil, err
		}
		ops = append(ops, relOp)
	}

	return ops, skipped, nil
}
