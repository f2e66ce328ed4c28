package retrieval

import (
	"context"

	"github.com/talent-cloud/resumedex/internal/domain"
	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/query"
)

// Embedder vectorizes query variants.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorIndex runs KNN probes against the resume index.
type VectorIndex interface {
	Query(ctx context.Context, vec []float32, topK int, filters query.Filters) ([]candidate.Hit, error)
}
