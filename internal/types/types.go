package types

import "encoding/json"

// Importance levels used by the knowledge base. The loader does not
// enforce these; they document the expected vocabulary and drive the
// ordering of the statistics report.
const (
	ImportanceCritical = "critical"
	ImportanceHigh     = "high"
	ImportanceMedium   = "medium"
	ImportanceLow      = "low"
)

// KnowledgeItem is one packing-list entry loaded from the knowledge base.
// Immutable once loaded; it travels unchanged into the output payload.
type KnowledgeItem struct {
	Item            string   `json:"item"`
	Category        string   `json:"category"`
	DestinationType string   `json:"destination_type"`
	TravelType      string   `json:"travel_type"`
	Season          []string `json:"season"`
	Quantity        int      `json:"quantity"`
	Reason          string   `json:"reason"`
	Importance      string   `json:"importance"`
	Tags            []string `json:"tags"`
	Climate         []string `json:"climate"`
}

// Point is one vector-database-ready record: a fresh UUID, the embedding
// vector, and the originating item as filterable payload.
type Point struct {
	ID      string        `json:"id"`
	Vector  []float32     `json:"vector"`
	Payload KnowledgeItem `json:"payload"`
}

// Metadata describes a completed generation run.
type Metadata struct {
	TotalItems     int    `json:"total_items"`
	EmbeddingModel string `json:"embedding_model"`
	Dimensions     int    `json:"dimensions"`
	GeneratedAt    string `json:"generated_at"`
}

// Export is the full output document consumed by the vector database
// import step.
type Export struct {
	Points   []Point  `json:"points"`
	Metadata Metadata `json:"metadata"`
}

// MarshalJSON ensures nil slices in KnowledgeItem marshal as [] not null.
func (k KnowledgeItem) MarshalJSON() ([]byte, error) {
	if k.Season == nil {
		k.Season = []string{}
	}
	if k.Tags == nil {
		k.Tags = []string{}
	}
	if k.Climate == nil {
		k.Climate = []string{}
	}
	type Alias KnowledgeItem
	return json.Marshal(Alias(k))
}

// MarshalJSON ensures a nil vector marshals as [] not null.
func (p Point) MarshalJSON() ([]byte, error) {
	if p.Vector == nil {
		p.Vector = []float32{}
	}
	type Alias Point
	return json.Marshal(Alias(p))
}

// MarshalJSON ensures a nil point list marshals as [] not null.
func (e Export) MarshalJSON() ([]byte, error) {
	if e.Points == nil {
		e.Points = []Point{}
	}
	type Alias Export
	return json.Marshal(Alias(e))
}
