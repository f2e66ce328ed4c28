// Package db wraps the Redis backend used for the resume vector index, the
// query-embedding cache, and session contexts.
package db

// KNNQuery describes a vector similarity search against an FT index.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	Filter       string // pre-filter expression, empty for "*"
	ReturnFields []string
}

// SearchEntry is one raw FT.SEARCH document.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult is a raw FT.SEARCH response.
type SearchResult struct {
	Total   int64
	Entries []SearchEntry
}
