package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/talent-cloud/resumedex/internal/config"
	"github.com/talent-cloud/resumedex/internal/db"
	"github.com/talent-cloud/resumedex/internal/domain"
	logpkg "github.com/talent-cloud/resumedex/internal/logger"
	"github.com/talent-cloud/resumedex/internal/metrics"
	"github.com/talent-cloud/resumedex/internal/repository/embcache"
	sessionrepo "github.com/talent-cloud/resumedex/internal/repository/session"
	vectorrepo "github.com/talent-cloud/resumedex/internal/repository/vector"
	"github.com/talent-cloud/resumedex/internal/skills"
	chiTransport "github.com/talent-cloud/resumedex/internal/transport/chi"
	openaiEmb "github.com/talent-cloud/resumedex/internal/transport/openai"
	analyzeruc "github.com/talent-cloud/resumedex/internal/usecase/analyzer"
	embeddinguc "github.com/talent-cloud/resumedex/internal/usecase/embedding"
	followupuc "github.com/talent-cloud/resumedex/internal/usecase/followup"
	healthuc "github.com/talent-cloud/resumedex/internal/usecase/health"
	retrievaluc "github.com/talent-cloud/resumedex/internal/usecase/retrieval"
	scoringuc "github.com/talent-cloud/resumedex/internal/usecase/scoring"
	searchuc "github.com/talent-cloud/resumedex/internal/usecase/search"
	"github.com/talent-cloud/resumedex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting resumedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := db.NewStore(db.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()
	metrics.RegisterHTTPMetrics()

	// Skill vocabulary: built-ins plus the optional override file
	table, err := skills.Load(cfg.Search.SynonymsFile)
	if err != nil {
		logger.Fatal("Failed to load skill tables", zap.Error(err))
	}

	queryEmbedder := buildEmbedder(cfg.Embedding, cfg.Database.KeyPrefix, store, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Repositories
	vectorRepo := vectorrepo.New(store, cfg.Database.KeyPrefix, cfg.Database.IndexName)
	sessionRepo := sessionrepo.New(store, cfg.Database.KeyPrefix,
		time.Duration(cfg.Sessions.TTLHours)*time.Hour)

	// Use case services
	analyzer := analyzeruc.New(table)
	scorer := scoringuc.New(table, scoringuc.Weights{
		Education:       cfg.Search.Weights.Education,
		SkillMatch:      cfg.Search.Weights.SkillMatch,
		Experience:      cfg.Search.Weights.Experience,
		DomainRelevance: cfg.Search.Weights.DomainRelevance,
	})
	retriever := retrievaluc.New(queryEmbedder, vectorRepo,
		time.Duration(cfg.Search.VariantTimeoutSec)*time.Second, logger)
	searchSvc := searchuc.New(analyzer, retriever, scorer)
	reasoner := followupuc.New()
	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(queryEmbedder))

	server := chiTransport.NewServer(
		searchSvc, sessionRepo, reasoner, healthSvc, cfg.Search.MaxTopK, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// buildEmbedder assembles the decorator chain: OpenAI -> Cached -> Retrying -> Instruction
func buildEmbedder(
	embCfg config.EmbeddingConfig,
	keyPrefix string,
	store *db.Store,
	logger *zap.Logger,
) domain.Embedder {
	// Base provider (with transport metrics built-in)
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     embCfg.APIKey,
		BaseURL:    embCfg.BaseURL,
		Model:      embCfg.Model,
		Dimensions: embCfg.Dimensions,
		Provider:   embCfg.Provider,
		Logger:     logger,
	})

	// Cached
	var embedder domain.Embedder = base
	if store != nil {
		embedder = embcache.New(base, store, keyPrefix, metrics.EmbeddingCacheTotal, logger)
	}

	// Retry transient provider failures
	embedder = embeddinguc.NewRetryingEmbedder(
		embedder, embCfg.Provider, embCfg.Model,
		embCfg.RetryAttempts, time.Duration(embCfg.RetryBackoffMs)*time.Millisecond, logger,
	)

	// Instruction prefix applies outermost so cached entries include it
	if embCfg.QueryInstruction != "" {
		return domain.NewInstructionEmbedder(embedder, embCfg.QueryInstruction)
	}

	return embedder
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
