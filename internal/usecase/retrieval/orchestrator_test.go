package retrieval

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/talent-cloud/resumedex/internal/domain"
	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/query"
	"github.com/talent-cloud/resumedex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterSearchMetrics()
	os.Exit(m.Run())
}

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{float32(len(text))}}, nil
}

type stubIndex struct {
	mu      sync.Mutex
	calls   int
	hits    map[int][]candidate.Hit // call number -> hits
	failOn  map[int]bool            // call number -> fail
	failAll bool
}

func (s *stubIndex) Query(
	_ context.Context, _ []float32, _ int, _ query.Filters,
) ([]candidate.Hit, error) {
	s.mu.Lock()
	call := s.calls
	s.calls++
	s.mu.Unlock()

	if s.failAll || s.failOn[call] {
		return nil, fmt.Errorf("index unavailable")
	}
	return s.hits[call], nil
}

func newOrchestrator(index VectorIndex) *Orchestrator {
	return New(stubEmbedder{}, index, time.Second, zap.NewNop())
}

func TestRetrieve_PoolsAndTagsHits(t *testing.T) {
	index := &stubIndex{hits: map[int][]candidate.Hit{
		0: {{ID: "a", Score: 0.9}},
		1: {{ID: "b", Score: 0.8}, {ID: "a", Score: 0.7}},
	}}
	o := newOrchestrator(index)

	hits, err := o.Retrieve(context.Background(), []string{"v0", "v1"}, 10, query.Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 pooled hits, got %d", len(hits))
	}
	// Each hit carries some valid variant index. The stub does not pin calls
	// to variants, so only the range is checked.
	for _, h := range hits {
		if h.Variant < 0 || h.Variant > 1 {
			t.Errorf("hit %s has variant %d", h.ID, h.Variant)
		}
	}
}

func TestRetrieve_PartialFailureTolerated(t *testing.T) {
	index := &stubIndex{
		hits:   map[int][]candidate.Hit{1: {{ID: "b", Score: 0.8}}},
		failOn: map[int]bool{0: true},
	}
	o := newOrchestrator(index)

	hits, err := o.Retrieve(context.Background(), []string{"v0", "v1"}, 10, query.Filters{})
	if err != nil {
		t.Fatalf("partial failure must not error, got %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "b" {
		t.Fatalf("expected surviving hit, got %v", hits)
	}
}

func TestRetrieve_AllVariantsFailed(t *testing.T) {
	index := &stubIndex{failAll: true}
	o := newOrchestrator(index)

	_, err := o.Retrieve(context.Background(), []string{"v0", "v1", "v2"}, 10, query.Filters{})
	if !errors.Is(err, domain.ErrRetrievalUnavailable) {
		t.Fatalf("expected ErrRetrievalUnavailable, got %v", err)
	}
}

func TestRetrieve_ZeroHitsIsNotAnError(t *testing.T) {
	index := &stubIndex{hits: map[int][]candidate.Hit{}}
	o := newOrchestrator(index)

	hits, err := o.Retrieve(context.Background(), []string{"v0"}, 10, query.Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("expected no hits, got %v", hits)
	}
}

func TestRetrieve_NoVariants(t *testing.T) {
	o := newOrchestrator(&stubIndex{})
	hits, err := o.Retrieve(context.Background(), nil, 10, query.Filters{})
	if err != nil || hits != nil {
		t.Fatalf("expected nil, nil for no variants, got %v, %v", hits, err)
	}
}

func TestRetrieve_ContextCancelled(t *testing.T) {
	index := &stubIndex{failAll: true}
	o := newOrchestrator(index)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Retrieve(ctx, []string{"v0"}, 10, query.Filters{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
