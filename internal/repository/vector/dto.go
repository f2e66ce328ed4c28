package vector

import (
	"encoding/json"
	"strings"

	"github.com/talent-cloud/resumedex/internal/db"
	"github.com/talent-cloud/resumedex/internal/domain/candidate"
)

// metaDTO is the stored shape of extracted resume info in the __meta field.
type metaDTO struct {
	Name       string   `json:"name,omitempty"`
	FileName   string   `json:"file_name,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Experience []string `json:"experience,omitempty"`
	Education  []string `json:"education,omitempty"`
	Summary    string   `json:"summary,omitempty"`
}

// entryToHit converts a raw FT.SEARCH entry into a candidate hit. A malformed
// or absent __meta field yields an empty metadata bag, never an error.
func entryToHit(entry db.SearchEntry, keyPrefix string) candidate.Hit {
	hit := candidate.Hit{
		ID:    strings.TrimPrefix(entry.Key, keyPrefix),
		Score: entry.Score,
		Chunk: entry.Fields["__content"],
	}

	if raw, ok := entry.Fields["__meta"]; ok && raw != "" {
		var dto metaDTO
		if err := json.Unmarshal([]byte(raw), &dto); err == nil {
			hit.Meta = candidate.Metadata{
				Name:       dto.Name,
				FileName:   dto.FileName,
				Skills:     dto.Skills,
				Experience: dto.Experience,
				Education:  dto.Education,
				Summary:    dto.Summary,
			}
		}
	}
	return hit
}
