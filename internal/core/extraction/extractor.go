package extraction

import (
	"context"
	"fmt"

	"github.com/oculairmedia/graphline/internal/core/common"
	"github.com/oculairmedia/graphline/internal/core/model"
	"github.com/oculairmedia/graphline/internal/llm"
)

// DefaultPrompt asks for the full document analysis in one call: entities,
// relationships and a summary, as one JSON object matching
// model.DocumentAnalysis.
const DefaultPrompt = `You are an expert knowledge graph entity extractor. Analyze this documentation content and extract:

1. ENTITIES: Extract important entities and classify them:
   - TECHNOLOGY: Software, frameworks, tools, programming languages, databases
   - CONCEPT: Abstract ideas, methodologies, processes, principles
   - PERSON: Individual people, authors, developers
   - ORGANIZATION: Companies, institutions, teams
   - LOCATION: Places, regions, countries
   - TAG: Labels or categories

2. RELATIONSHIPS: Identify meaningful relationships between entities:
   - Use predicates like: uses, implements, part_of, depends_on, created_by, relates_to
   - Provide supporting facts from the text

3. SUMMARY: Create a clear title and brief 2-3 sentence summary.

Focus on technical and domain-specific entities. Normalize entity names to lowercase.

Respond with a single JSON object:
{
  "entities": [{"name": "...", "type": "...", "description": "..."}],
  "relationships": [{"subject": "...", "predicate": "...", "object": "...", "fact": "..."}],
  "summary": {"title": "...", "summary": "..."}
}

Content:
%s`

type Extractor struct {
	LLM    llm.Client
	Prompt string
}

func NewExtractor(llmClient llm.Client, prompt string) *Extractor {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Extractor{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

// Analyze runs the extraction prompt over the document text and parses the
// resulting analysis. Entity and relationship lists come back raw; callers
// deduplicate them before building graph operations.
func (e *Extractor) Analyze(ctx context.Context, content string) (model.DocumentAnalysis, error) {
	prompt := fmt.Sprintf(e.Prompt, content)

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.DocumentAnalysis{}, fmt.Errorf("failed to generate analysis: %w", err)
	}

	result, err := common.ParseJSON[model.DocumentAnalysis](response)
	if err != nil {
		return model.DocumentAnalysis{}, fmt.Errorf("failed to parse analysis: %w", err)
	}

	return result, nil
}

// TagEntities turns source-system tags into TAG-typed entities so tags and
// LLM-extracted entities merge through the same deduplication pass.
func TagEntities(tags []string) []model.Entity {
	entities := make([]model.Entity, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		entities = append(entities, model.Entity{
			Name:        tag,
			Type:        "TAG",
			Description: fmt.Sprintf("Tag: %s", tag),
		})
	}
	return entities
}
