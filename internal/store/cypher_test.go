package store

import (
	"testing"

	"github.com/oculairmedia/graphline/internal/core/model"
	"github.com/oculairmedia/graphline/internal/core/upsert"
	"github.com/stretchr/testify/assert"
)

func stubBuilder() *upsert.Builder {
	return &upsert.Builder{Now: func() string { return "2024-11-24T00:00:00.000Z" }}
}

func TestRenderDocument(t *testing.T) {
	op, err := stubBuilder().Document(model.EpisodicNode{
		UUID:    "doc-uuid",
		Name:    "Title",
		GroupID: "g",
		Content: "body",
		Source:  "bookstack",
	})
	assert.NoError(t, err)

	query, params, err := Render(op)
	assert.NoError(t, err)

	assert.Contains(t, query, "MERGE (n:Episodic {group_id: $group_id, uuid: $uuid})")
	assert.Contains(t, query, "ON CREATE SET")
	assert.Contains(t, query, "n.created_at = $c_created_at")
	assert.Contains(t, query, "n.content = $s_content")
	assert.Equal(t, "doc-uuid", params["uuid"])
	assert.Equal(t, "g", params["group_id"])
	assert.Equal(t, "body", params["s_content"])
	assert.Equal(t, "2024-11-24T00:00:00.000Z", params["c_created_at"])
}

func TestRenderEntityMergesOnAllMandatoryKeys(t *testing.T) {
	op, err := stubBuilder().Entity(model.Entity{Name: "Docker", Type: "TECHNOLOGY", Description: "d"}, "g")
	assert.NoError(t, err)

	query, params, err := Render(op)
	assert.NoError(t, err)

	// name is part of the merge predicate for entities, not just a SET.
	assert.Contains(t, query, "MERGE (n:Entity {group_id: $group_id, name: $name, uuid: $uuid})")
	assert.Equal(t, "docker", params["name"])
}

func TestRenderMentionEdge(t *testing.T) {
	op, err := stubBuilder().Mention("doc-uuid", "ent-uuid", "g")
	assert.NoError(t, err)

	query, params, err := Render(op)
	assert.NoError(t, err)

	assert.Contains(t, query, "MATCH (source:Episodic {uuid: $source_uuid})")
	assert.Contains(t, query, "MATCH (target:Entity {uuid: $target_uuid})")
	assert.Contains(t, query, "MERGE (source)-[e:MENTIONS {group_id: $group_id, uuid: $uuid}]->(target)")
	assert.Equal(t, "doc-uuid", params["source_uuid"])
	assert.Equal(t, "ent-uuid", params["target_uuid"])
}

func TestRenderRelatesEdge(t *testing.T) {
	op, err := stubBuilder().Relates(model.Relationship{
		Subject: "docker", Predicate: "uses", Object: "containerd", Fact: "Docker uses containerd",
	}, "g")
	assert.NoError(t, err)

	query, params, err := Render(op)
	assert.NoError(t, err)

	assert.Contains(t, query, "MERGE (source)-[e:RELATES_TO {group_id: $group_id, uuid: $uuid}]->(target)")
	assert.Contains(t, query, "e.fact = $s_fact")
	assert.Equal(t, "Docker uses containerd", params["s_fact"])
}

func TestRenderRejectsInvalidOperation(t *testing.T) {
	op := upsert.Operation{
		Kind:      upsert.KindEntity,
		MergeKeys: map[string]any{"uuid": "u", "group_id": ""},
	}
	_, _, err := Render(op)
	assert.Error(t, err)
}

func TestRenderDeterministic(t *testing.T) {
	op, err := stubBuilder().Entity(model.Entity{Name: "Docker", Description: "d"}, "g")
	assert.NoError(t, err)

	q1, _, err := Render(op)
	assert.NoError(t, err)
	q2, _, err := Render(op)
	assert.NoError(t, err)
	assert.Equal(t, q1, q2)
}
