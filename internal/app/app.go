// Package app assembles the molgraph object graph from a loaded Config.  The
// CLI and the HTTP server both start from New so that they share one wiring
// of storage, metrics and services.
package app

import (
	"github.com/turtacn/molgraph/internal/application/conversion"
	"github.com/turtacn/molgraph/internal/application/registers"
	"github.com/turtacn/molgraph/internal/config"
	"github.com/turtacn/molgraph/internal/domain/vocabulary"
	"github.com/turtacn/molgraph/internal/infrastructure/cache/redis"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molgraph/internal/infrastructure/storage"
	"github.com/turtacn/molgraph/internal/infrastructure/storage/dataset"
	"github.com/turtacn/molgraph/internal/infrastructure/storage/minio"
	"github.com/turtacn/molgraph/pkg/errors"
)

// App holds every long-lived component.
type App struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.GraphMetrics
	Registry  *vocabulary.Registry
	Source    storage.Source
	Loader    *dataset.Loader

	// Redis is nil unless cache.enabled is set.
	Redis *redis.Client

	Conversion conversion.Service
	Registers  registers.Service
}

// Option customises New.
type Option func(*options)

type options struct {
	source storage.Source
}

// WithSource replaces the configured dataset source.
func WithSource(src storage.Source) Option {
	return func(o *options) { o.source = src }
}

// New wires an App from cfg.  The dataset source is chosen by
// cfg.Dataset.Source; a MinIO source connects eagerly and fails when the
// bucket is unreachable.
func New(cfg *config.Config, logger logging.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.InvalidParam("config is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	registry, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	collector := prometheus.NewNoopCollector()
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(cfg.Metrics.CollectorConfig(), logger)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create metrics collector")
		}
	}
	metrics := prometheus.NewGraphMetrics(collector)

	src := o.source
	if src == nil {
		src, err = NewSource(cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	a := &App{
		Config:     cfg,
		Logger:     logger,
		Collector:  collector,
		Metrics:    metrics,
		Registry:   registry,
		Source:     src,
		Loader:     dataset.NewLoader(src, logger, metrics),
		Conversion: conversion.NewService(registry, logger, metrics),
		Registers:  registers.NewService(logger, metrics),
	}

	if cfg.Cache.Enabled {
		client, err := redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		cache := redis.NewCache(client, logger,
			redis.WithPrefix(cfg.Cache.Prefix),
			redis.WithTTL(cfg.Cache.TTL),
		)
		a.Redis = client
		a.Conversion = conversion.NewCachedService(a.Conversion, cache, logger)
	}

	logger.Info("molgraph initialised",
		logging.String("dataset", cfg.Dataset.Default),
		logging.String("source", src.Kind()),
		logging.Strings("vocabularies", registry.Names()),
		logging.Bool("metrics", cfg.Metrics.Enabled),
		logging.Bool("cache", cfg.Cache.Enabled),
	)
	return a, nil
}

// NewSource builds the dataset source named by cfg.Dataset.Source.
func NewSource(cfg *config.Config, logger logging.Logger) (storage.Source, error) {
	switch cfg.Dataset.Source {
	case storage.KindLocal, "":
		return storage.NewLocalSource(cfg.Dataset.Root), nil
	case storage.KindMinIO:
		return minio.NewObjectSource(&cfg.MinIO, logger)
	default:
		return nil, errors.InvalidParam("unknown dataset source").WithDetailf("source=%s", cfg.Dataset.Source)
	}
}

// Sink returns the dataset source as a Sink when it supports writing.
func (a *App) Sink() (storage.Sink, error) {
	sink, ok := a.Source.(storage.Sink)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotImplemented, "dataset source is read-only").
			WithDetailf("source=%s", a.Source.Kind())
	}
	return sink, nil
}

// HealthCheckers returns the components that report health.
func (a *App) HealthCheckers() []storage.HealthChecker {
	var checkers []storage.HealthChecker
	if hc, ok := a.Source.(storage.HealthChecker); ok {
		checkers = append(checkers, hc)
	}
	if a.Redis != nil {
		checkers = append(checkers, a.Redis)
	}
	return checkers
}

// Close releases connections held by the App.  It is safe to call on an App
// without a cache.
func (a *App) Close() error {
	if a == nil || a.Redis == nil {
		return nil
	}
	return a.Redis.Close()
}

//Personal.AI order the ending
