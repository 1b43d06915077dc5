// Package app builds the prediction service from configuration. Both the
// salary-api binary and the end-to-end tests go through Build.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"salary-predictor/internal/common/config"
	"salary-predictor/internal/common/database"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/common/observability"
	predictsalary "salary-predictor/internal/handlers/prediction/predict-salary"
	healthcheck "salary-predictor/internal/handlers/system/health-check"
	modelinfo "salary-predictor/internal/handlers/system/model-info"
	serviceinfo "salary-predictor/internal/handlers/system/service-info"
	"salary-predictor/internal/pipeline"
	"salary-predictor/internal/pipeline/artifacts"
	"salary-predictor/internal/pipeline/scorer"
	"salary-predictor/internal/server"
	"salary-predictor/pkg/modelcard"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	// Registry receives the OpenTelemetry exporter. nil means the default
	// Prometheus registry.
	Registry *prometheus.Registry
	// RedisRetries and RedisRetryDelay control the startup ping.
	RedisRetries    int
	RedisRetryDelay time.Duration
}

type App struct {
	Config    *config.Config
	Card      *modelcard.ModelCard
	Loader    *artifacts.Loader
	Predictor *pipeline.Predictor
	Router    http.Handler

	redis  *database.RedisClient
	obs    *observability.Observability
	logger logger.Logger
}

// Build assembles the service. Artifact problems do not fail Build: the
// service starts unhealthy and prediction requests answer 503.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.RedisRetries <= 0 {
		opts.RedisRetries = 3
	}
	if opts.RedisRetryDelay <= 0 {
		opts.RedisRetryDelay = 500 * time.Millisecond
	}

	a := &App{Config: cfg, logger: log}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer = opts.Registry
		gatherer = prometheus.Gatherers{prometheus.DefaultGatherer, opts.Registry}
	}
	if cfg.Metrics.Enabled {
		a.obs = observability.New(cfg.Metrics.ServiceName, registerer, log)
	} else {
		a.obs = &observability.Observability{}
	}

	a.Card = loadCard(cfg.Artifacts.ModelCard, log)

	var cache pipeline.ScoreCache
	var pinger healthcheck.Pinger
	if cfg.Cache.Enabled {
		client, err := connectRedis(ctx, cfg.Database.Redis, opts, log)
		if err != nil {
			log.Warn("Prediction cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			a.redis = client
			pinger = client
			cache = database.NewPredictionCache(client, cfg.Cache.Prefix, config.GetDuration(cfg.Cache.TTL))
		}
	}

	a.Loader = artifacts.NewLoader(cfg.Artifacts.Path, log, artifacts.WithObserver(a.obs))
	a.Predictor = pipeline.New(a.Loader, pipeline.Options{
		Clamp: scorer.ClampPolicy{
			Enabled: cfg.Pipeline.Clamp.Enabled,
			Min:     cfg.Pipeline.Clamp.Min,
			Max:     cfg.Pipeline.Clamp.Max,
		},
		StrictCategories: cfg.Pipeline.StrictCategories,
		Cache:            cache,
		Recorder:         a.obs,
	}, log)

	if _, err := a.Loader.Load(ctx); err != nil {
		log.Error("Model artifacts unavailable, serving unhealthy", map[string]interface{}{
			"path":  a.Loader.Dir(),
			"error": err.Error(),
		})
	}

	handlers := server.Handlers{
		Service:   serviceinfo.NewHandler(cfg.App.Version, a.Card),
		Predict:   predictsalary.NewHandler(predictsalary.LoadConfig(cfg), a.Predictor, a.Card, log),
		Health:    healthcheck.NewHandler(healthcheck.LoadConfig(cfg), a.Predictor, a.Card, pinger, log),
		ModelInfo: modelinfo.NewHandler(a.Predictor, a.Card, log),
	}
	if cfg.Metrics.Enabled {
		handlers.Metrics = promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	a.Router = server.NewRouter(handlers, log)

	return a, nil
}

// Close releases the cache connection and flushes metrics.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if err := a.obs.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func loadCard(path string, log logger.Logger) *modelcard.ModelCard {
	if path == "" {
		return modelcard.Default()
	}
	card, err := modelcard.Load(path)
	if err != nil {
		log.Warn("Using built-in model card", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return modelcard.Default()
	}
	return card
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, opts Options, log logger.Logger) (*database.RedisClient, error) {
	client := database.NewRedis(cfg)
	err := retryWithBackoff(func() error {
		return client.Ping(ctx)
	}, opts.RedisRetries, opts.RedisRetryDelay, log, "Redis connection")
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Info("Redis connected successfully", map[string]interface{}{
		"address": cfg.Address,
	})
	return client, nil
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
