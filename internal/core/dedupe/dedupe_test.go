package dedupe

import (
	"testing"

	"github.com/oculairmedia/graphline/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "docker", NormalizeName("  Docker "))
	assert.Equal(t, "docker", NormalizeName("DOCKER"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestEntitiesKeepsLongerDescription(t *testing.T) {
	input := []model.Entity{
		{Name: "Docker", Type: "TECHNOLOGY", Description: "short"},
		{Name: "docker", Type: "TECHNOLOGY", Description: "a much longer description"},
	}

	out := Entities(input)

	assert.Len(t, out, 1)
	assert.Equal(t, "docker", out[0].Name)
	assert.Equal(t, "a much longer description", out[0].Description)
}

func TestEntitiesPreservesFirstOccurrenceOrder(t *testing.T) {
	input := []model.Entity{
		{Name: "Redis", Description: "store"},
		{Name: "Docker", Description: "container"},
		{Name: "redis ", Description: "an in-memory data store"},
	}

	out := Entities(input)

	assert.Len(t, out, 2)
	assert.Equal(t, "redis", out[0].Name)
	assert.Equal(t, "an in-memory data store", out[0].Description)
	assert.Equal(t, "docker", out[1].Name)
}

func TestEntitiesIdempotent(t *testing.T) {
	input := []model.Entity{
		{Name: "Docker", Description: "short"},
		{Name: "docker", Description: "longer text"},
		{Name: "Redis", Description: "store"},
	}

	once := Entities(input)
	twice := Entities(once)
	assert.Equal(t, once, twice)
}

func TestEntitiesEmptyAndBlankNames(t *testing.T) {
	assert.Empty(t, Entities(nil))
	assert.Empty(t, Entities([]model.Entity{{Name: "  ", Description: "x"}}))
}

func TestRelationshipsCaseInsensitiveMerge(t *testing.T) {
	input := []model.Relationship{
		{Subject: "A", Predicate: "uses", Object: "B", Fact: "fact1"},
		{Subject: "a", Predicate: "USES", Object: "b", Fact: "a longer fact2"},
	}

	out := Relationships(input)

	assert.Len(t, out, 1)
	assert.Equal(t, "a", out[0].Subject)
	assert.Equal(t, "uses", out[0].Predicate)
	assert.Equal(t, "b", out[0].Object)
	assert.Equal(t, "a longer fact2", out[0].Fact)
}

func TestRelationshipsDistinctPredicatesKept(t *testing.T) {
	input := []model.Relationship{
		{Subject: "a", Predicate: "uses", Object: "b", Fact: "f1"},
		{Subject: "a", Predicate: "depends_on", Object: "b", Fact: "f2"},
	}

	out := Relationships(input)
	assert.Len(t, out, 2)
}

func TestRelationshipsIdempotent(t *testing.T) {
	input := []model.Relationship{
		{Subject: "A", Predicate: "uses", Object: "B", Fact: "fact1"},
		{Subject: "a", Predicate: "uses", Object: "b", Fact: "a longer fact2"},
		{Subject: "b", Predicate: "part_of", Object: "c", Fact: "f"},
	}

	once := Relationships(input)
	twice := Relationships(once)
	assert.Equal(t, once, twice)
}

func TestRelationshipsDropsIncomplete(t *testing.T) {
	input := []model.Relationship{
		{Subject: "", Predicate: "uses", Object: "b", Fact: "f"},
		{Subject: "a", Predicate: " ", Object: "b", Fact: "f"},
	}
	assert.Empty(t, Relationships(input))
}
