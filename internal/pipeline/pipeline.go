// Package pipeline processes source documents end to end: derive identity,
// extract entities and relationships, deduplicate, build the idempotent
// operation plan and apply it to the graph store. Documents are handled one
// at a time; safety under re-runs comes from content-derived identifiers and
// merge semantics, not from transactions.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/oculairmedia/graphline/internal/core/dedupe"
	"github.com/oculairmedia/graphline/internal/core/extraction"
	"github.com/oculairmedia/graphline/internal/core/ident"
	"github.com/oculairmedia/graphline/internal/core/model"
	"github.com/oculairmedia/graphline/internal/core/timeutil"
	"github.com/oculairmedia/graphline/internal/core/upsert"
	"github.com/oculairmedia/graphline/internal/llm"
	"github.com/oculairmedia/graphline/internal/store"
)

var (
	ErrMissingID    = errors.New("document has no id")
	ErrEmptyContent = errors.New("document has no content")
	ErrMissingGroup = errors.New("document has no usable collection name")
)

// minContentLength filters out pages that are effectively empty.
const minContentLength = 10

type Pipeline struct {
	Extractor *extraction.Extractor
	Builder   *upsert.Builder
	Store     *store.Client
	// Embedder is optional; when present, entity upserts carry name
	// embeddings. Wrap it in an llm.EmbeddingCache so repeated names are
	// embedded once per run.
	Embedder llm.Embedder
}

func New(extractor *extraction.Extractor, st *store.Client, embedder llm.Embedder) *Pipeline {
	return &Pipeline{
		Extractor: extractor,
		Builder:   upsert.NewBuilder(),
		Store:     st,
		Embedder:  embedder,
	}
}

// DocumentReport describes the outcome of one document.
type DocumentReport struct {
	DocumentID    string
	DocumentUUID  string
	GroupID       string
	Entities      int
	Relationships int
	SkippedRels   []upsert.SkippedRelationship
	Applied       int
	Failed        []*store.OpError
}

// BatchSummary aggregates a batch run. Failed documents are identified so
// just the failed units can be re-run.
type BatchSummary struct {
	Documents     int
	Succeeded     int
	Failed        int
	FailedIDs     []string
	Entities      int
	Relationships int
	SkippedRels   int
	OpsApplied    int
	OpsFailed     int
}

func (s *BatchSummary) String() string {
	return fmt.Sprintf("documents=%d succeeded=%d failed=%d entities=%d relationships=%d skipped_rels=%d ops_applied=%d ops_failed=%d",
		s.Documents, s.Succeeded, s.Failed, s.Entities, s.Relationships, s.SkippedRels, s.OpsApplied, s.OpsFailed)
}

// ProcessDocument runs one document through the full path. Input problems
// (missing id, empty content, unusable collection name) are returned as
// errors for the caller to count and skip; they never abort a batch and are
// never papered over with sentinel values.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc model.Document) (*DocumentReport, error) {
	if strings.TrimSpace(doc.ID) == "" {
		return nil, ErrMissingID
	}
	if len(strings.TrimSpace(doc.Content)) < minContentLength {
		return nil, fmt.Errorf("document %s: %w", doc.ID, ErrEmptyContent)
	}
	groupID, err := ident.GroupID(doc.Book)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w: %v", doc.ID, ErrMissingGroup, err)
	}

	docUUID := ident.DocumentUUID(doc.ID)
	log.Printf("Processing document %s (%s) group=%s", doc.ID, doc.Title, groupID)

	analysis, err := p.Extractor.Analyze(ctx, doc.Content)
	if err != nil {
		return nil, fmt.Errorf("document %s: extraction failed: %w", doc.ID, err)
	}

	entities := dedupe.Entities(append(extraction.TagEntities(doc.Tags), analysis.Entities...))
	relationships := dedupe.Relationships(analysis.Relationships)

	source := doc.Source
	if source == "" {
		source = "document"
	}
	sourceDescription := doc.URL
	if sourceDescription == "" {
		sourceDescription = source
	}

	now := timeutil.NowISO()
	episode := model.EpisodicNode{
		UUID:              docUUID,
		Name:              doc.Title,
		GroupID:           groupID,
		CreatedAt:         now,
		ValidAt:           now,
		Content:           doc.Content,
		Source:            source,
		SourceDescription: sourceDescription,
		SourceID:          doc.ID,
		URL:               doc.URL,
	}

	builder := p.builderFor(ctx)
	ops, skipped, err := builder.Plan(episode, entities, relationships)
	if err != nil {
		return nil, fmt.Errorf("document %s: plan failed: %w", doc.ID, err)
	}
	for _, s := range skipped {
		log.Printf("document %s: skipping relationship %q-%q-%q: %s",
			doc.ID, s.Relationship.Subject, s.Relationship.Predicate, s.Relationship.Object, s.Reason)
	}

	result, err := p.Store.Apply(ctx, ops)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}

	return &DocumentReport{
		DocumentID:    doc.ID,
		DocumentUUID:  docUUID,
		GroupID:       groupID,
		Entities:      len(entities),
		Relationships: len(relationships) - len(skipped),
		SkippedRels:   skipped,
		Applied:       result.Applied,
		Failed:        result.Failed,
	}, nil
}

// ProcessBatch runs documents in order with partial-failure semantics: one
// bad document is reported and skipped, the rest proceed.
func (p *Pipeline) ProcessBatch(ctx context.Context, docs []model.Document) *BatchSummary {
	summary := &BatchSummary{Documents: len(docs)}
	for _, doc := range docs {
		report, err := p.ProcessDocument(ctx, doc)
		if err != nil {
			log.Printf("document failed: %v", err)
			summary.Failed++
			summary.FailedIDs = append(summary.FailedIDs, doc.ID)
			continue
		}
		summary.Succeeded++
		summary.Entities += report.Entities
		summary.Relationships += report.Relationships
		summary.SkippedRels += len(report.SkippedRels)
		summary.OpsApplied += report.Applied
		summary.OpsFailed += len(report.Failed)
	}
	log.Printf("Batch complete: %s", summary)
	return summary
}

// builderFor attaches the embedding hook for this call. The hook captures
// ctx; embedding failures only drop the property, they never fail the write.
func (p *Pipeline) builderFor(ctx context.Context) *upsert.Builder {
	b := *p.Builder
	if p.Embedder != nil {
		b.Embed = func(name string) []float32 {
			vec, err := p.Embedder.Embed(ctx, name)
			if err != nil {
				log.Printf("embedding failed for %q: %v", name, err)
				return nil
			}
			return vec
		}
	}
	return &b
}
