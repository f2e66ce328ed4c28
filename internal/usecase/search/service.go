// Package search runs the candidate search pipeline: analyze, fan out
// variants, re-rank, dedup, truncate. It owns the pipeline shape; the stages
// themselves live in their own packages.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/talent-cloud/resumedex/internal/domain"
	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/intent"
	"github.com/talent-cloud/resumedex/internal/domain/query"
	"github.com/talent-cloud/resumedex/internal/logger"
	"github.com/talent-cloud/resumedex/internal/metrics"
	"github.com/talent-cloud/resumedex/internal/usecase/variants"
)

// Result is the outcome of one search: the ranked matches plus the
// diagnostics callers surface alongside them.
type Result struct {
	Matches  []candidate.Match
	Intent   intent.Intent
	Expanded string
	Variants []string
	Pooled   int
	Timings  Timings
}

// Timings records per-stage wall time for diagnostics.
type Timings struct {
	Analyze  time.Duration `json:"analyze"`
	Retrieve time.Duration `json:"retrieve"`
	Rerank   time.Duration `json:"rerank"`
}

// Service wires the pipeline stages together.
type Service struct {
	analyzer  Analyzer
	retriever Retriever
	reranker  Reranker
}

// New creates a search service.
func New(analyzer Analyzer, retriever Retriever, reranker Reranker) *Service {
	return &Service{analyzer: analyzer, retriever: retriever, reranker: reranker}
}

// Search executes the full pipeline for one request. Zero matches is a valid
// outcome, not an error; domain.ErrRetrievalUnavailable surfaces only when
// every variant probe failed.
func (s *Service) Search(ctx context.Context, req query.Request) (Result, error) {
	log := logger.FromContext(ctx)
	var res Result

	start := time.Now()
	res.Expanded, res.Intent = s.analyzer.Analyze(req.Raw())
	res.Variants = variants.Generate(res.Expanded, res.Intent)
	res.Timings.Analyze = time.Since(start)
	metrics.SearchStageDuration.WithLabelValues("analyze").Observe(res.Timings.Analyze.Seconds())

	start = time.Now()
	hits, err := s.retriever.Retrieve(ctx, res.Variants, req.TopK(), req.Filters())
	res.Timings.Retrieve = time.Since(start)
	metrics.SearchStageDuration.WithLabelValues("retrieve").Observe(res.Timings.Retrieve.Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrRetrievalUnavailable) {
			metrics.SearchesTotal.WithLabelValues("unavailable").Inc()
		}
		return Result{}, fmt.Errorf("retrieve candidates: %w", err)
	}

	res.Pooled = len(hits)
	metrics.PooledCandidates.Observe(float64(res.Pooled))

	start = time.Now()
	scored := s.reranker.Rerank(hits, req.Raw(), res.Intent)
	res.Matches = Finalize(scored, req.TopK())
	res.Timings.Rerank = time.Since(start)
	metrics.SearchStageDuration.WithLabelValues("rerank").Observe(res.Timings.Rerank.Seconds())

	status := "ok"
	if len(res.Matches) == 0 {
		status = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(status).Inc()

	log.Info("Search completed",
		zap.Int("variants", len(res.Variants)),
		zap.Int("pooled", res.Pooled),
		zap.Int("matches", len(res.Matches)),
		zap.String("specificity", string(res.Intent.Specificity)),
		zap.Duration("retrieve_ms", res.Timings.Retrieve),
	)

	return res, nil
}
