// Package embedding holds embedder decorators that sit above transport:
// retry policy for transient provider failures.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/talent-cloud/resumedex/internal/domain"
	"github.com/talent-cloud/resumedex/internal/metrics"
)

// RetryingEmbedder retries transient provider failures with exponential
// backoff. Configuration errors (bad key, bad URL) are never retried.
type RetryingEmbedder struct {
	inner    domain.Embedder
	provider string
	model    string
	attempts int
	backoff  time.Duration
	logger   *zap.Logger
}

// NewRetryingEmbedder wraps an embedder with a bounded retry policy.
// attempts is the total number of tries, not the number of retries.
func NewRetryingEmbedder(
	inner domain.Embedder, provider, model string,
	attempts int, backoff time.Duration, logger *zap.Logger,
) *RetryingEmbedder {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryingEmbedder{
		inner:    inner,
		provider: provider,
		model:    model,
		attempts: attempts,
		backoff:  backoff,
		logger:   logger,
	}
}

// Embed delegates to the inner embedder, retrying transient failures.
func (r *RetryingEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	var lastErr error

	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			metrics.EmbeddingRetriesTotal.WithLabelValues(r.provider, r.model).Inc()
			r.logger.Warn("Retrying embedding request",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", r.attempts),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return domain.EmbeddingResult{}, fmt.Errorf("embed retry: %w", ctx.Err())
			case <-time.After(r.backoff << (attempt - 1)):
			}
		}

		result, err := r.inner.Embed(ctx, text)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) {
			return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
		}
	}

	return domain.EmbeddingResult{}, fmt.Errorf("embed after %d attempts: %w", r.attempts, lastErr)
}

// retryable reports whether the failure is worth another try. Provider outages
// and rate limits are transient, configuration errors and context cancellation
// are not.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, domain.ErrEmbeddingConfig) {
		return false
	}
	return errors.Is(err, domain.ErrEmbeddingProviderError) || errors.Is(err, domain.ErrRateLimited)
}
