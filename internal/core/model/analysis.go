package model

// Extraction output shapes. These mirror the JSON the extraction prompt asks
// the LLM to produce, so DocumentAnalysis can be unmarshalled directly from
// the model response.

type Entity struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // TECHNOLOGY, CONCEPT, PERSON, ORGANIZATION, LOCATION, TAG
	Description string `json:"description"`
}

type Relationship struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Fact      string `json:"fact"`
}

type DocumentSummary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type DocumentAnalysis struct {
	Entities      []Entity        `json:"entities"`
	Relationships []Relationship  `json:"relationships"`
	Summary       DocumentSummary `json:"summary"`
}
