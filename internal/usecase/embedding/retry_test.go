package embedding

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/talent-cloud/resumedex/internal/domain"
	"github.com/talent-cloud/resumedex/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

type flakyEmbedder struct {
	failures int
	err      error
	calls    int
}

func (f *flakyEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	f.calls++
	if f.calls <= f.failures {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1}}, nil
}

func newRetrying(inner domain.Embedder, attempts int) *RetryingEmbedder {
	return NewRetryingEmbedder(inner, "test", "test-model", attempts, time.Millisecond, zap.NewNop())
}

func TestEmbed_SucceedsAfterTransientFailure(t *testing.T) {
	inner := &flakyEmbedder{
		failures: 2,
		err:      fmt.Errorf("upstream 503: %w", domain.ErrEmbeddingProviderError),
	}
	re := newRetrying(inner, 3)

	result, err := re.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Embedding) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 calls, got %d", inner.calls)
	}
}

func TestEmbed_ExhaustsAttempts(t *testing.T) {
	inner := &flakyEmbedder{
		failures: 10,
		err:      fmt.Errorf("upstream 502: %w", domain.ErrEmbeddingProviderError),
	}
	re := newRetrying(inner, 3)

	_, err := re.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 calls, got %d", inner.calls)
	}
}

func TestEmbed_ConfigErrorNotRetried(t *testing.T) {
	inner := &flakyEmbedder{
		failures: 10,
		err:      fmt.Errorf("401 unauthorized: %w", domain.ErrEmbeddingConfig),
	}
	re := newRetrying(inner, 3)

	_, err := re.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("config error must not be retried, got %d calls", inner.calls)
	}
}

func TestEmbed_RateLimitedIsRetried(t *testing.T) {
	inner := &flakyEmbedder{
		failures: 1,
		err:      fmt.Errorf("429: %w", domain.ErrRateLimited),
	}
	re := newRetrying(inner, 3)

	_, err := re.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 calls, got %d", inner.calls)
	}
}

func TestEmbed_ContextCancelledStopsRetry(t *testing.T) {
	inner := &flakyEmbedder{
		failures: 10,
		err:      fmt.Errorf("upstream 503: %w", domain.ErrEmbeddingProviderError),
	}
	re := NewRetryingEmbedder(inner, "test", "test-model", 5, 50*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := re.Embed(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", inner.calls)
	}
}
