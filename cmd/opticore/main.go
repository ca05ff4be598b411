package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/optiverse/opticore/internal/api"
	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/crossmodule"
	"github.com/optiverse/opticore/internal/emotion"
	"github.com/optiverse/opticore/internal/intent"
	"github.com/optiverse/opticore/internal/llm"
	"github.com/optiverse/opticore/internal/orchestrator"
	"github.com/optiverse/opticore/internal/ratelimit"
	"github.com/optiverse/opticore/internal/suggest"
	"github.com/optiverse/opticore/internal/telemetry"
	"github.com/optiverse/opticore/internal/tiering"
)

var version = "dev"

func main() {
	configDir := flag.String("config", "configs", "path to configuration directory")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	loader := config.NewLoader(*configDir, logger)
	if err := loader.Load(); err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := loader.Config()

	metrics := telemetry.NewMetrics()

	// Redis backs the rate limiter; without it, limiting falls back to the
	// in-process store (fine for a single instance).
	var store ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis not reachable, using in-memory rate limiting", "error", err)
		} else {
			logger.Info("redis connected")
			store = ratelimit.NewRedisStore(rdb)
		}
	}
	limiter := ratelimit.NewLimiter(store)

	// Provider registry with hot reload of API keys and endpoints. The
	// callback must be registered before the watcher starts.
	registry := llm.BuildFromConfig(loader.Providers())
	loader.OnReload(func() {
		registry.Replace(llm.BuildFromConfig(loader.Providers()))
		logger.Info("provider registry reloaded")
	})
	if err := loader.Watch(); err != nil {
		logger.Warn("failed to start config watcher", "error", err)
	}

	health := llm.NewHealthTracker(
		cfg.Routing.CircuitBreaker.FailureThreshold,
		cfg.Routing.CircuitBreaker.RecoveryProbeInterval,
	)
	chain := llm.NewChain(registry, health, cfg.Routing.FallbackProvider, metrics)

	tiers := tiering.NewEvaluator(func() config.TieringConfig { return loader.Config().Tiering })
	if err := tiers.Load(); err != nil {
		logger.Error("failed to load tier policies", "error", err)
		os.Exit(1)
	}

	tuning := func() config.TuningConfig { return loader.Config().Tuning }
	routing := func() config.RoutingConfig { return loader.Config().Routing }

	classifier := intent.NewClassifier(
		intent.NewRemoteClassifier(registry, routing),
		intent.NewFallbackClassifier(func() float64 { return tuning().FallbackConfidence }),
		metrics, logger,
	)
	analyzer := emotion.NewAnalyzer(tuning)
	feedback := emotion.NewFeedbackLog(cfg.Tuning.FeedbackLogCapacity)

	actionRegistry := crossmodule.NewPendingActionRegistry()
	detector := crossmodule.NewDetector(actionRegistry)
	executor := crossmodule.NewExecutor(actionRegistry, logger)
	generator := suggest.NewGenerator(detector, tuning, metrics, logger)

	orch := orchestrator.New(classifier, analyzer, chain, tiers, feedback, metrics, routing, logger)
	prober := llm.NewProber(registry, cfg.Routing.DefaultTimeout)

	handler := api.NewHandler(classifier, analyzer, generator, orch, executor, actionRegistry, prober, metrics, logger)
	routes := api.Routes(handler, limiter,
		func() map[string]config.RateLimitPreset { return loader.Config().RateLimit.Presets },
		metrics, requestIDMiddleware,
	)

	// Metrics are served on their own port, away from the public surface.
	if cfg.Telemetry.MetricsPort > 0 {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Telemetry.MetricsPort)
			logger.Info("metrics server starting", "addr", addr)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("opticore starting", "addr", addr, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("opticore stopped")
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = generateRequestID()
		}
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r)
	})
}

func generateRequestID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("req_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(b))
}
