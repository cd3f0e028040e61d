package model

type EntityEdge struct {
	UUID       string `json:"uuid"`
	SourceUUID string `json:"source_node_uuid"`
	TargetUUID string `json:"target_node_uuid"`
	GroupID    string `json:"group_id"`
	Predicate  string `json:"predicate"` // uses, implements, depends_on, ...
	Fact       string `json:"fact"`
	CreatedAt  string `json:"created_at"`
	// Relationship type is RELATES_TO
}

type EpisodicEdge struct {
	UUID       string `json:"uuid"`
	SourceUUID string `json:"source_node_uuid"` // Episode
	TargetUUID string `json:"target_node_uuid"` // Entity
	GroupID    string `json:"group_id"`
	CreatedAt  string `json:"created_at"`
	// Relationship type is MENTIONS
}
