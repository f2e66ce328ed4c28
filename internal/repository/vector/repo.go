// Package vector adapts the Redis FT.SEARCH backend to the retrieval
// orchestrator's vector index contract.
package vector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/talent-cloud/resumedex/internal/db"
	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/query"
)

// store is the consumer interface for vector search (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the retrieval orchestrator's VectorIndex contract.
type Repo struct {
	store     store
	indexName string
	keyPrefix string
}

// New creates a vector repository over the given index.
func New(s store, keyPrefix, indexName string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, indexName: indexName}
}

// Query runs a KNN probe and converts the raw entries into candidate hits.
// Filters are pushed down to the index as an FT pre-filter expression.
func (r *Repo) Query(
	ctx context.Context, vec []float32, topK int, filters query.Filters,
) ([]candidate.Hit, error) {
	q := &db.KNNQuery{
		IndexName:    r.keyPrefix + r.indexName,
		Vector:       vec,
		K:            topK,
		Filter:       buildFilter(filters),
		ReturnFields: []string{"__content", "__meta", "__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	hits := make([]candidate.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		hits = append(hits, entryToHit(entry, r.keyPrefix))
	}
	return hits, nil
}

// buildFilter renders caller filters as an FT.SEARCH pre-filter expression.
func buildFilter(f query.Filters) string {
	if f.IsEmpty() {
		return ""
	}

	var parts []string
	if len(f.Skills) > 0 {
		escaped := make([]string, len(f.Skills))
		for i, s := range f.Skills {
			escaped[i] = escapeTag(s)
		}
		parts = append(parts, fmt.Sprintf("@skills:{%s}", strings.Join(escaped, "|")))
	}
	if f.MinYears > 0 {
		parts = append(parts, fmt.Sprintf("@years:[%s +inf]",
			strconv.FormatFloat(f.MinYears, 'f', -1, 64)))
	}
	if f.Location != "" {
		parts = append(parts, fmt.Sprintf("@location:{%s}", escapeTag(f.Location)))
	}
	return strings.Join(parts, " ")
}

// escapeTag escapes RediSearch tag syntax characters.
func escapeTag(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ',', '.', '<', '>', '{', '}', '[', ']', '"', '\'', ':', ';',
			'!', '@', '#', '$', '%', '^', '&', '*', '(', ')', '-', '+',
			'=', '~', '|', ' ', '/':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
