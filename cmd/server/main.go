// Command server starts the ATS resume scorer HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/ai/openrouter"
	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/ai/stub"
	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/httpserver"
	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/nlp"
	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/ats-resume-scorer/internal/adapter/repo/redisusage"
	"github.com/fairyhunter13/ats-resume-scorer/internal/app"
	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
	"github.com/fairyhunter13/ats-resume-scorer/internal/domain"
	"github.com/fairyhunter13/ats-resume-scorer/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, AI, and analysis instrumentation.
	observability.InitMetrics()

	// Infra: Redis for monthly usage counters
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid redis url", slog.Any("error", err))
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("redis connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	usageRepo := redisusage.New(rdb)

	// AI extractor: OpenRouter when configured, deterministic fallback otherwise
	var (
		extractor domain.SkillExtractor
		writer    domain.SuggestionWriter
	)
	if cfg.AIEnabled() {
		cl := openrouter.New(cfg)
		extractor, writer = cl, cl
		slog.Info("ai extraction enabled", slog.String("model", cfg.OpenRouterModel))
	} else {
		extractor = stub.New()
		slog.Info("ai extraction disabled, using deterministic matcher")
	}

	// Optional external NLP engine for density analysis
	var nlpSvc domain.NLPService
	if cl := nlp.New(cfg); cl != nil {
		nlpSvc = cl
		slog.Info("nlp engine configured", slog.String("base_url", cfg.NLPBaseURL))
	}

	analyzeSvc := usecase.NewAnalyzeService(extractor, writer, nlpSvc)
	usageSvc := usecase.NewUsageService(usageRepo, cfg.FreeTierMonthlyLimit)

	srv := httpserver.NewServer(cfg, analyzeSvc, usageSvc, nil)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
