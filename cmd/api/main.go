package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/couchcryptid/indyradio-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/indyradio-service/internal/adapter/kafka"
	"github.com/couchcryptid/indyradio-service/internal/catalog"
	"github.com/couchcryptid/indyradio-service/internal/config"
	"github.com/couchcryptid/indyradio-service/internal/observability"
	"github.com/couchcryptid/indyradio-service/internal/pipeline"
	"github.com/couchcryptid/indyradio-service/internal/questionnaire"
	"github.com/couchcryptid/indyradio-service/internal/recommender"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

const sessionSweepInterval = time.Minute

func main() {
	// A local .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	stations, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		logger.Error("failed to load catalog", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "stations", stations.Len(), "embedded", cfg.CatalogPath == "")

	engine := recommender.NewEngine(stations, logger, metrics)
	cached, err := recommender.NewCachedRecommender(engine, cfg.CacheSize, metrics)
	if err != nil {
		logger.Error("failed to create recommendation cache", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checkers := []sharedobs.ReadinessChecker{stations}

	// The pipeline is cancelled only after the HTTP server has drained.
	pipelineCtx, stopPipeline := context.WithCancel(context.Background())
	defer stopPipeline()

	// Recommendation events are feature-flagged via KAFKA_ENABLED.
	var (
		sink         recommender.EventSink
		writer       *kafkaadapter.Writer
		pipelineDone = make(chan struct{})
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(writer, logger, metrics, cfg.BatchSize, cfg.BatchFlushInterval)
		sink = p
		checkers = append(checkers, p)
		logger.Info("recommendation events enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)

		go func() {
			defer close(pipelineDone)
			if err := p.Run(pipelineCtx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		close(pipelineDone)
		logger.Info("recommendation events disabled")
	}

	rec := recommender.NewPublisher(cached, sink, logger, metrics)

	sessions := questionnaire.NewStore(cfg.SessionTTL, clockwork.NewRealClock(), logger, metrics)
	go sessions.Run(ctx, sessionSweepInterval)

	srv := httpadapter.NewServer(cfg, httpadapter.Deps{
		Catalog:     stations,
		Recommender: rec,
		Sessions:    sessions,
		Ready:       httpadapter.AllReady(checkers...),
		Logger:      logger,
	})

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	stopPipeline()
	drainTimer := time.NewTimer(cfg.ShutdownTimeout)
	defer drainTimer.Stop()
	select {
	case <-pipelineDone:
	case <-drainTimer.C:
		logger.Warn("pipeline did not drain before shutdown timeout")
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
