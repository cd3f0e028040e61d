package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/oculairmedia/graphline/internal/core/extraction"
	"github.com/oculairmedia/graphline/internal/core/ident"
	"github.com/oculairmedia/graphline/internal/core/model"
	"github.com/oculairmedia/graphline/internal/driver"
	"github.com/oculairmedia/graphline/internal/llm"
	"github.com/oculairmedia/graphline/internal/store"
	"github.com/stretchr/testify/assert"
)

const analysisJSON = `{
	"entities": [
		{"name": "docker", "type": "TECHNOLOGY", "description": "container platform"},
		{"name": "Docker", "type": "TECHNOLOGY", "description": "a much longer container platform description"},
		{"name": "containerd", "type": "TECHNOLOGY", "description": "runtime"}
	],
	"relationships": [
		{"subject": "Docker", "predicate": "USES", "object": "containerd", "fact": "Docker uses containerd"},
		{"subject": "docker", "predicate": "uses", "object": "kubernetes", "fact": "unresolvable object"}
	],
	"summary": {"title": "Docker", "summary": "About Docker."}
}`

func testDocument() model.Document {
	return model.Document{
		ID:      "42",
		Title:   "Intro to Docker",
		Content: "Docker is a container platform built on containerd.",
		Book:    "Platform Docs",
		URL:     "https://wiki.example.com/page/42",
		Source:  "bookstack",
		Tags:    []string{"infrastructure"},
	}
}

func newTestPipeline(d driver.GraphDriver, embedder llm.Embedder) *Pipeline {
	extractor := extraction.NewExtractor(&MockLLM{Response: analysisJSON}, "")
	return New(extractor, store.NewClient(d), embedder)
}

func TestProcessDocument(t *testing.T) {
	dry := driver.NewDryRunDriver(io.Discard)
	p := newTestPipeline(dry, nil)

	report, err := p.ProcessDocument(context.Background(), testDocument())
	assert.NoError(t, err)

	assert.Equal(t, ident.DocumentUUID("42"), report.DocumentUUID)
	assert.Equal(t, "platform-docs", report.GroupID)
	// docker deduplicated, containerd, plus the "infrastructure" tag.
	assert.Equal(t, 3, report.Entities)
	// docker->containerd survives; docker->kubernetes has no entity node.
	assert.Equal(t, 1, report.Relationships)
	assert.Len(t, report.SkippedRels, 1)
	// 1 document + 3 entities + 3 mentions + 1 relates.
	assert.Equal(t, 8, report.Applied)
	assert.Empty(t, report.Failed)
	assert.Len(t, dry.Queries(), 8)
}

func TestProcessDocumentRerunProducesSameOperations(t *testing.T) {
	first := driver.NewDryRunDriver(io.Discard)
	p1 := newTestPipeline(first, nil)
	_, err := p1.ProcessDocument(context.Background(), testDocument())
	assert.NoError(t, err)

	second := driver.NewDryRunDriver(io.Discard)
	p2 := newTestPipeline(second, nil)
	_, err = p2.ProcessDocument(context.Background(), testDocument())
	assert.NoError(t, err)

	// Identifiers are content-derived, so two runs target the same graph
	// rows with the same queries (timestamps aside).
	q1, q2 := first.Queries(), second.Queries()
	assert.Equal(t, len(q1), len(q2))
	for i := range q1 {
		assert.Equal(t, q1[i].Query, q2[i].Query)
		assert.Equal(t, q1[i].Params["uuid"], q2[i].Params["uuid"])
	}
}

func TestProcessDocumentInputErrors(t *testing.T) {
	p := newTestPipeline(driver.NewDryRunDriver(io.Discard), nil)
	ctx := context.Background()

	doc := testDocument()
	doc.ID = ""
	_, err := p.ProcessDocument(ctx, doc)
	assert.ErrorIs(t, err, ErrMissingID)

	doc = testDocument()
	doc.Content = "tiny"
	_, err = p.ProcessDocument(ctx, doc)
	assert.ErrorIs(t, err, ErrEmptyContent)

	// Empty collection name is an input error, never a sentinel group.
	doc = testDocument()
	doc.Book = ""
	_, err = p.ProcessDocument(ctx, doc)
	assert.ErrorIs(t, err, ErrMissingGroup)
}

func TestProcessDocumentEmbeddings(t *testing.T) {
	embedder := &MockEmbedder{Vector: []float32{0.5}}
	cache := llm.NewEmbeddingCache(embedder)
	p := newTestPipeline(driver.NewDryRunDriver(io.Discard), cache)

	_, err := p.ProcessDocument(context.Background(), testDocument())
	assert.NoError(t, err)

	// One embedding per distinct entity name, via the cache.
	assert.Equal(t, 3, embedder.Calls)
	assert.Equal(t, 3, cache.Len())

	// Re-processing hits the cache only.
	_, err = p.ProcessDocument(context.Background(), testDocument())
	assert.NoError(t, err)
	assert.Equal(t, 3, embedder.Calls)
}

func TestProcessBatchPartialFailure(t *testing.T) {
	p := newTestPipeline(driver.NewDryRunDriver(io.Discard), nil)

	bad := testDocument()
	bad.ID = "43"
	bad.Book = "" // unusable group

	summary := p.ProcessBatch(context.Background(), []model.Document{testDocument(), bad})

	assert.Equal(t, 2, summary.Documents)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, []string{"43"}, summary.FailedIDs)
	assert.Equal(t, 3, summary.Entities)
	assert.Equal(t, 1, summary.Relationships)
	assert.Equal(t, 1, summary.SkippedRels)
	assert.Equal(t, 8, summary.OpsApplied)
}

func TestProcessDocumentExtractionFailure(t *testing.T) {
	extractor := extraction.NewExtractor(&MockLLM{Response: "not json"}, "")
	p := New(extractor, store.NewClient(driver.NewDryRunDriver(io.Discard)), nil)

	_, err := p.ProcessDocument(context.Background(), testDocument())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extraction failed")
}
