// Command apiserver serves the molgraph HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgraph/internal/app"
	"github.com/turtacn/molgraph/internal/config"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/molgraph/internal/interfaces/http"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: search ./molgraph.yaml, /etc/molgraph)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int) error {
	opts := []config.LoadOption{config.WithSearchPaths(".", "/etc/molgraph")}
	if configPath != "" {
		opts = []config.LoadOption{config.WithConfigPath(configPath)}
	}
	if port > 0 {
		opts = append(opts, config.WithOverrides(map[string]interface{}{"server.port": port}))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Log.LoggerConfig())
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	if configPath != "" {
		err := config.Watch(configPath,
			func(*config.Config) {
				logger.Warn("configuration file changed; restart apiserver to apply", logging.String("path", configPath))
			},
			func(err error) {
				logger.Error("configuration file reload failed", logging.Err(err))
			},
		)
		if err != nil {
			logger.Warn("configuration watch disabled", logging.Err(err))
		}
	}

	logger.Info("starting molgraph API server",
		logging.String("version", version),
		logging.String("addr", cfg.Server.Addr()),
		logging.Dataset(cfg.Dataset.Default),
	)

	gin.SetMode(cfg.Server.Mode)
	router := httpserver.NewRouter(httpserver.RouterConfigFromApp(a, version))
	srv := httpserver.NewServer(cfg.Server, router, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		return err
	}
	logger.Info("API server stopped")
	return nil
}

//Personal.AI order the ending
