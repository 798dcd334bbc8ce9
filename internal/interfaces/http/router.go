// Package http exposes molgraph over HTTP with gin.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/app"
	"github.com/turtacn/molgraph/internal/application/conversion"
	"github.com/turtacn/molgraph/internal/application/registers"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/infrastructure/storage"
	"github.com/turtacn/molgraph/internal/interfaces/http/handlers"
	"github.com/turtacn/molgraph/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the dependencies required to build the route tree.
type RouterConfig struct {
	// Services
	Conversion     conversion.Service
	Registers      registers.Service
	DefaultDataset string
	HealthCheckers []storage.HealthChecker
	Version        string

	// Middleware
	Logger      logging.Logger
	Metrics     middleware.HTTPMetrics
	MaxBodySize int64
	CORSOrigins []string

	// MetricsHandler is mounted at MetricsPath when both are set.
	MetricsHandler http.Handler
	MetricsPath    string
}

// RouterConfigFromApp fills a RouterConfig from a wired App.
func RouterConfigFromApp(a *app.App, version string) RouterConfig {
	cfg := RouterConfig{
		Conversion:     a.Conversion,
		Registers:      a.Registers,
		DefaultDataset: a.Config.Dataset.Default,
		HealthCheckers: a.HealthCheckers(),
		Version:        version,
		Logger:         a.Logger,
		Metrics:        a.Metrics,
		MaxBodySize:    a.Config.Server.MaxBodySize,
		CORSOrigins:    a.Config.Server.CORSOrigins,
	}
	if a.Config.Metrics.Enabled {
		cfg.MetricsHandler = a.Collector.Handler()
		cfg.MetricsPath = a.Config.Metrics.Path
	}
	return cfg
}

// NewRouter constructs the complete route tree:
//
//	GET  /livez, /healthz
//	GET  <metrics path>
//	GET  /api/v1/vocabularies, /api/v1/vocabularies/:name
//	POST /api/v1/molecules/reconstruct, /api/v1/molecules/encode
//	POST /api/v1/registers/match
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// --- Global middleware ---
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging(logger, cfg.Metrics, middleware.DefaultLoggingConfig()))
	if len(cfg.CORSOrigins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = cfg.CORSOrigins
		corsCfg.AllowWildcard = true
		r.Use(middleware.CORS(corsCfg))
	}

	// --- Probes and metrics ---
	handlers.NewHealthHandler(cfg.Version, cfg.HealthCheckers...).RegisterRoutes(r)
	if cfg.MetricsHandler != nil && cfg.MetricsPath != "" {
		r.GET(cfg.MetricsPath, gin.WrapH(cfg.MetricsHandler))
	}

	// --- API v1 ---
	api := r.Group("/api/v1")
	api.Use(middleware.BodyLimit(cfg.MaxBodySize))
	if cfg.Conversion != nil {
		handlers.NewVocabularyHandler(cfg.Conversion).RegisterRoutes(api)
		handlers.NewMoleculeHandler(cfg.Conversion, cfg.DefaultDataset).RegisterRoutes(api)
	}
	if cfg.Registers != nil {
		handlers.NewRegisterHandler(cfg.Registers).RegisterRoutes(api)
	}

	return r
}

//Personal.AI order the ending
