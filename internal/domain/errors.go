package domain

import "errors"

var (
	// ErrRetrievalUnavailable signals that every query variant failed to retrieve,
	// as opposed to a legitimate zero-match result.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrEmbeddingProviderError signals a transient embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingConfig signals a fatal embedding provider configuration problem
	// (bad credentials, unknown model). Never retried.
	ErrEmbeddingConfig = errors.New("embedding provider misconfigured")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrSessionNotFound signals a missing session context.
	ErrSessionNotFound = errors.New("session not found")
)
