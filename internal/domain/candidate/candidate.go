// Package candidate defines the result units flowing through the search
// pipeline: raw vector hits and the scored, deduplicated matches returned
// to callers.
package candidate

// Metadata is the structured information extracted from a resume at ingestion
// time and stored alongside each chunk in the vector index. Every field is
// optional; scoring treats absent fields as zero contribution.
type Metadata struct {
	Name       string   `json:"name,omitempty"`
	FileName   string   `json:"file_name,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience []string `json:"experience,omitempty"`
	Education  []string `json:"education,omitempty"`
	Summary    string   `json:"summary,omitempty"`
}

// Hit is a raw nearest-neighbor result from the vector index, before scoring
// and dedup. Score is cosine similarity in [0,1]. Variant records the index of
// the query variant that surfaced the hit; lower means an earlier (more
// literal) probe and wins dedup tie-breaks.
type Hit struct {
	ID      string
	Score   float64
	Chunk   string
	Meta    Metadata
	Variant int
}

// Breakdown is the informational four-component score decomposition. Each
// component is in [0,1]; the weighted sum under the configured static weights
// approximates FinalScore but is not required to equal it.
type Breakdown struct {
	Education       float64 `json:"education"`
	SkillMatch      float64 `json:"skill_match"`
	Experience      float64 `json:"experience"`
	DomainRelevance float64 `json:"domain_relevance"`
}

// Match is a scored, caller-facing candidate. A result set contains at most
// one Match per candidate ID.
type Match struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	FinalScore float64   `json:"score"`
	BaseScore  float64   `json:"base_score"`
	Breakdown  Breakdown `json:"score_breakdown"`

	// WeightedScore is the breakdown folded under the configured static
	// weights. Informational; ordering uses FinalScore.
	WeightedScore float64 `json:"weighted_score"`

	Snippet string   `json:"relevant_text,omitempty"`
	Meta    Metadata `json:"extracted_info"`

	// Variant is the variant index of the kept hit, used for dedup
	// tie-breaking. Not serialized.
	Variant int `json:"-"`
}
