// Package retrieval fans query variants out against the vector index and
// pools the hits. Variants are independent probes: one failing variant
// degrades recall, it does not fail the search.
package retrieval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/talent-cloud/resumedex/internal/domain"
	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	"github.com/talent-cloud/resumedex/internal/domain/query"
	"github.com/talent-cloud/resumedex/internal/metrics"
)

// Orchestrator embeds each variant and probes the index concurrently.
type Orchestrator struct {
	embed   Embedder
	index   VectorIndex
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a retrieval orchestrator. timeout bounds each variant probe,
// embedding included.
func New(embed Embedder, index VectorIndex, timeout time.Duration, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{embed: embed, index: index, timeout: timeout, logger: logger}
}

// Retrieve probes every variant and returns the pooled hits, each tagged with
// the index of the variant that produced it. Hits keep variant order, so
// pooling is deterministic for a fixed index state.
//
// Partial failure is tolerated; domain.ErrRetrievalUnavailable is returned
// only when every variant fails.
func (o *Orchestrator) Retrieve(
	ctx context.Context, variants []string, topK int, filters query.Filters,
) ([]candidate.Hit, error) {
	if len(variants) == 0 {
		return nil, nil
	}

	perVariant := make([][]candidate.Hit, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(i int, v string) {
			defer wg.Done()
			hits, err := o.probe(ctx, v, topK, filters)
			if err != nil {
				errs[i] = err
				metrics.VariantProbesTotal.WithLabelValues("failed").Inc()
				o.logger.Warn("Variant probe failed",
					zap.Int("variant", i),
					zap.String("query", v),
					zap.Error(err),
				)
				return
			}
			metrics.VariantProbesTotal.WithLabelValues("ok").Inc()
			for j := range hits {
				hits[j].Variant = i
			}
			perVariant[i] = hits
		}(i, v)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	var pooled []candidate.Hit
	failed := 0
	var lastErr error
	for i := range variants {
		if errs[i] != nil {
			failed++
			lastErr = errs[i]
			continue
		}
		pooled = append(pooled, perVariant[i]...)
	}

	if failed == len(variants) {
		return nil, fmt.Errorf("all %d variants failed: %w: %w",
			len(variants), domain.ErrRetrievalUnavailable, lastErr)
	}
	return pooled, nil
}

// probe embeds one variant and runs its KNN query under the per-variant timeout.
func (o *Orchestrator) probe(
	ctx context.Context, variant string, topK int, filters query.Filters,
) ([]candidate.Hit, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	embResult, err := o.embed.Embed(ctx, variant)
	if err != nil {
		return nil, fmt.Errorf("vectorize variant: %w", err)
	}

	hits, err := o.index.Query(ctx, embResult.Embedding, topK, filters)
	if err != nil {
		return nil, fmt.Errorf("probe index: %w", err)
	}
	return hits, nil
}
