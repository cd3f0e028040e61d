package model

// Document is one exported unit of source content: a BookStack page or a Huly
// issue, as written by the export scripts (one JSON file per page).
type Document struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"` // plain text, HTML already stripped upstream
	Book    string   `json:"book"`    // logical collection: book or project name
	URL     string   `json:"url,omitempty"`
	Source  string   `json:"source,omitempty"` // "bookstack", "huly"
	Tags    []string `json:"tags,omitempty"`
}
