package model

// All timestamp-valued fields hold canonical RFC3339 strings with a trailing
// 'Z' (see timeutil). Numeric epochs are never written to the graph.

type EntityNode struct {
	UUID          string    `json:"uuid"`
	Name          string    `json:"name"` // normalized (lower-case, trimmed)
	GroupID       string    `json:"group_id"`
	CreatedAt     string    `json:"created_at"`
	EntityType    string    `json:"entity_type,omitempty"` // TECHNOLOGY, CONCEPT, PERSON, ...
	Summary       string    `json:"summary,omitempty"`
	Labels        []string  `json:"labels"`
	NameEmbedding []float32 `json:"name_embedding,omitempty"`
}

type EpisodicNode struct {
	UUID              string `json:"uuid"`
	Name              string `json:"name"`
	GroupID           string `json:"group_id"`
	CreatedAt         string `json:"created_at"`
	ValidAt           string `json:"valid_at"`
	Content           string `json:"content"`
	Source            string `json:"source"`
	SourceDescription string `json:"source_description"`
	SourceID          string `json:"source_id"` // upstream page/issue id
	URL               string `json:"url,omitempty"`
}
