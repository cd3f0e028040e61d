package ident

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Identifier namespaces. Keeping these distinct prevents collisions between
// the document, entity and edge identifier spaces even when the content
// strings coincide.
const (
	NamespaceDocument = "document"
	NamespaceEntity   = "entity"
	NamespaceMention  = "mentions"
	NamespaceRelates  = "relates"
)

// UUID derives a deterministic, content-addressed identifier from a namespace
// and an ordered list of parts. The same inputs always yield the same UUID,
// which is what makes every graph write an idempotent merge rather than a
// blind insert. Callers are responsible for normalizing parts first; this
// function hashes exactly what it is given.
func UUID(namespace string, parts ...string) string {
	name := namespace
	for _, p := range parts {
		name += "-" + p
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name)).String()
}

// DocumentUUID returns the Episodic node identifier for a source document.
func DocumentUUID(sourceID string) string {
	return UUID(NamespaceDocument, sourceID)
}

// EntityUUID returns the Entity node identifier. Name must already be
// normalized (see dedupe.NormalizeName); entities are partitioned per group.
func EntityUUID(normalizedName, groupID string) string {
	return UUID(NamespaceEntity, normalizedName, groupID)
}

// MentionUUID returns the MENTIONS edge identifier for a (document, entity)
// pair.
func MentionUUID(docUUID, entityUUID string) string {
	return UUID(NamespaceMention, docUUID, entityUUID)
}

// RelatesUUID returns the RELATES_TO edge identifier for a
// (subject, predicate, object, group) tuple. All inputs normalized by caller.
func RelatesUUID(subject, predicate, object, groupID string) string {
	return UUID(NamespaceRelates, subject, predicate, object, groupID)
}

// GroupID slugifies a logical collection name (book or project) into a group
// partition key. An empty or unusable name is an error: earlier pipeline
// variants substituted sentinel values here, which silently mis-partitioned
// data, so the slug is required to be non-empty.
func GroupID(name string) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", fmt.Errorf("cannot derive group id from %q", name)
	}
	return slug, nil
}

// Slugify lower-cases a name and collapses whitespace, underscores and runs
// of punctuation into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // trims leading hyphens
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
