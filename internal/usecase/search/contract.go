package search

import (
	"context"

	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/intent"
	"github.com/talent-cloud/resumedex/internal/domain/query"
)

// Analyzer expands a raw query and extracts its intent.
type Analyzer interface {
	Analyze(raw string) (string, intent.Intent)
}

// Retriever pools hits for a set of query variants.
type Retriever interface {
	Retrieve(ctx context.Context, variants []string, topK int, filters query.Filters) ([]candidate.Hit, error)
}

// Reranker scores pooled hits against the query and its intent.
type Reranker interface {
	Rerank(hits []candidate.Hit, raw string, in intent.Intent) []candidate.Match
}
