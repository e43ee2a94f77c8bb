package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/moon-house-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/moon-house-service/internal/adapter/kafka"
	"github.com/couchcryptid/moon-house-service/internal/adapter/refdata"
	"github.com/couchcryptid/moon-house-service/internal/config"
	"github.com/couchcryptid/moon-house-service/internal/observability"
	"github.com/couchcryptid/moon-house-service/internal/pipeline"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	src, err := dataSource(cfg)
	if err != nil {
		logger.Error("invalid reference data source", "error", err)
		os.Exit(1)
	}

	// Tables load once, before anything serves traffic.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.DataLoadTimeout)
	calc, err := refdata.LoadCalculator(loadCtx, src, cfg.Ayanamsa, logger)
	cancelLoad()
	if err != nil {
		logger.Error("failed to load reference tables", "error", err, "source", src.String())
		os.Exit(1)
	}
	metrics.TablesLoaded.Set(1)

	api := httpadapter.NewAPI(calc, cfg.RateLimitRPS, cfg.RateLimitBurst, metrics, logger)

	var (
		ready  httpadapter.ReadinessChecker
		p      *pipeline.Pipeline
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p = pipeline.New(reader, pipeline.NewTransformer(calc, logger), writer, logger, metrics, cfg.BatchSize)
		ready = p
		logger.Info("kafka pipeline enabled", "source", cfg.KafkaSourceTopic, "sink", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka pipeline disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, api, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if p != nil {
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

func dataSource(cfg *config.Config) (refdata.Source, error) {
	switch {
	case cfg.DataDir != "":
		return refdata.Dir(cfg.DataDir), nil
	case cfg.DataURL != "":
		return refdata.NewHTTPSource(cfg.DataURL, &http.Client{Timeout: cfg.DataLoadTimeout})
	default:
		return refdata.Embedded(), nil
	}
}
