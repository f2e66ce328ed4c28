// Package query defines the validated search request.
package query

import "fmt"

// Search parameter limits.
const (
	MaxQueryLength = 4096
	DefaultTopK    = 10
)

// Filters are caller-supplied pre-filters passed through to the vector index.
// Zero values mean "no constraint".
type Filters struct {
	Skills   []string
	MinYears float64
	Location string
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return len(f.Skills) == 0 && f.MinYears == 0 && f.Location == ""
}

// Request is a validated search query. TopK is clamped to [1, maxTopK]; an
// empty query text is allowed and handled downstream by defaulting, never by
// erroring.
type Request struct {
	raw     string
	topK    int
	filters Filters
}

// New validates and normalizes search parameters. maxTopK <= 0 falls back to
// DefaultTopK as the ceiling.
func New(raw string, topK, maxTopK int, filters Filters) (Request, error) {
	if len(raw) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if maxTopK <= 0 {
		maxTopK = DefaultTopK
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > maxTopK {
		topK = maxTopK
	}
	return Request{raw: raw, topK: topK, filters: filters}, nil
}

// Raw returns the original query text.
func (r Request) Raw() string { return r.raw }

// TopK returns the clamped result limit.
func (r Request) TopK() int { return r.topK }

// Filters returns the pre-filter set.
func (r Request) Filters() Filters { return r.filters }
