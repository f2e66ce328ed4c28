package vector

import (
	"context"
	"testing"

	"github.com/talent-cloud/resumedex/internal/db"
	"github.com/talent-cloud/resumedex/internal/domain/query"
)

type fakeStore struct {
	lastQuery *db.KNNQuery
	result    *db.SearchResult
	err       error
}

func (f *fakeStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	f.lastQuery = q
	return f.result, f.err
}

func TestQueryParsesEntries(t *testing.T) {
	store := &fakeStore{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{{
			Key:   "resumedex:resumes:abc123",
			Score: 0.82,
			Fields: map[string]string{
				"__content": "Built Python services",
				"__meta":    `{"name":"Ada","file_name":"ada.pdf","skills":["python","aws"]}`,
			},
		}},
	}}
	repo := New(store, "resumedex:", "resumes:idx")

	hits, err := repo.Query(context.Background(), []float32{0.1, 0.2}, 10, query.Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	h := hits[0]
	if h.ID != "resumes:abc123" {
		t.Errorf("id = %q", h.ID)
	}
	if h.Score != 0.82 {
		t.Errorf("score = %v", h.Score)
	}
	if h.Meta.Name != "Ada" || len(h.Meta.Skills) != 2 {
		t.Errorf("metadata not parsed: %+v", h.Meta)
	}
	if store.lastQuery.IndexName != "resumedex:resumes:idx" {
		t.Errorf("index = %q", store.lastQuery.IndexName)
	}
}

func TestQueryMalformedMeta(t *testing.T) {
	store := &fakeStore{result: &db.SearchResult{
		Total: 1,
		Entries: []db.SearchEntry{{
			Key:    "resumedex:resumes:x",
			Score:  0.5,
			Fields: map[string]string{"__meta": "{not json"},
		}},
	}}
	repo := New(store, "resumedex:", "resumes:idx")

	hits, err := repo.Query(context.Background(), []float32{0.1}, 5, query.Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits[0].Meta.Name != "" || hits[0].Meta.Skills != nil {
		t.Errorf("malformed meta should yield empty bag, got %+v", hits[0].Meta)
	}
}

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name string
		in   query.Filters
		want string
	}{
		{"empty", query.Filters{}, ""},
		{"skills", query.Filters{Skills: []string{"python", "aws"}}, "@skills:{python|aws}"},
		{"years", query.Filters{MinYears: 5}, "@years:[5 +inf]"},
		{
			"combined",
			query.Filters{Skills: []string{"go"}, MinYears: 3, Location: "berlin"},
			"@skills:{go} @years:[3 +inf] @location:{berlin}",
		},
	}
	for _, tt := range tests {
		if got := buildFilter(tt.in); got != tt.want {
			t.Errorf("%s: buildFilter = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBuildFilterEscapesTags(t *testing.T) {
	got := buildFilter(query.Filters{Location: "new york"})
	if got != `@location:{new\ york}` {
		t.Errorf("got %q", got)
	}
}
