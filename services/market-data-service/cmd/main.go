package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/grafana/pyroscope-go"
	"github.com/muhammadchandra19/marketdepth/pkg/errors"
	"github.com/muhammadchandra19/marketdepth/pkg/logger"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/app/server"
	"github.com/muhammadchandra19/marketdepth/services/market-data-service/pkg/config"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	if cfg.Profiler.Enabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: cfg.Profiler.ApplicationName,
			ServerAddress:   cfg.Profiler.ServerAddress,
			Tags: map[string]string{
				"env": cfg.App.Environment,
			},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
				pyroscope.ProfileGoroutines,
			},
		})
		if err != nil {
			appLogger.Error(errors.TracerFromError(err), logger.NewField("component", "profiler"))
		} else {
			defer func() {
				_ = profiler.Stop()
			}()
		}
	}

	srv, err := server.NewServer(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error(err)
		os.Exit(1)
	}
	if err := srv.Start(ctx); err != nil {
		appLogger.Error(err)
		os.Exit(1)
	}

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down Market Data Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	srv.Stop(shutdownCtx)

	appLogger.Info("Market Data Service stopped")
}
