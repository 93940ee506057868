package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/serene/internal/adapters/http/api"
	"github.com/okian/serene/internal/adapters/profile"
	app "github.com/okian/serene/internal/app"
	"github.com/okian/serene/internal/config"
	"github.com/okian/serene/internal/domain/assess"
	"github.com/okian/serene/internal/domain/lexicon"
	"github.com/okian/serene/internal/domain/recommend"
	"github.com/okian/serene/pkg/logger"
	"github.com/okian/serene/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// Metrics updater intervals.
const (
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second

	nanosecondsPerMillisecond = 1e6
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Build the lexicon, classifier, and scoring engine from configuration.
	lex := lexicon.New(lexicon.WithCrisisKeywords(cfg.CrisisKeywords))
	classifier := assess.NewKeywordClassifier(
		assess.WithLexicon(lex),
		assess.WithSecondaryThreshold(cfg.SecondaryThreshold),
		assess.WithUrgencyThresholds(cfg.UrgencyHigh, cfg.UrgencyMedium),
	)
	engine := recommend.NewEngine(
		recommend.WithLexicon(lex),
		recommend.WithWeights(cfg.RelevanceWeight, cfg.PersonalizationWeight, cfg.EffectivenessWeight, cfg.VarietyWeight),
		recommend.WithVarietyPenalty(cfg.VarietyPenalty, cfg.VarietyDecay),
		recommend.WithBenefitLimit(cfg.BenefitLimit),
	)

	svc := app.New(
		app.WithLogger(log),
		app.WithClassifier(classifier),
		app.WithEngine(engine),
		app.WithProfiles(profile.NewMemStore(profile.WithRecencyLimit(cfg.RecentHistorySize))),
		app.WithQueueSize(cfg.FeedbackQueueSize),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithRecommendationCounts(cfg.DefaultRecommendations, cfg.MaxRecommendations),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Background gauge refreshers.
	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	apiServer := api.NewServer(svc, svc, cfg.MaxRecommendations)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater refreshes runtime gauges until ctx is canceled.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater refreshes service gauges until ctx is canceled.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats updates the queue, catalog, and profile gauges as a
			// side effect.
			svc.GetStats(ctx)
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
