package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/api"
	"github.com/Harshitk-cp/intelreport/internal/buildconfig"
	"github.com/Harshitk-cp/intelreport/internal/config"
	"github.com/Harshitk-cp/intelreport/internal/scenario"
	"github.com/Harshitk-cp/intelreport/internal/service"
	"github.com/Harshitk-cp/intelreport/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	backend, err := store.Open(ctx, config.StoreDriver(), config.DatabaseURL(), config.SQLitePath())
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", config.StoreDriver()), zap.Error(err))
	}
	defer backend.Close()
	logger.Info("store opened", zap.String("driver", backend.Driver))

	world := service.NewWorldService(backend.Intel, logger)

	if path := config.ScenarioFile(); path != "" {
		sc, err := scenario.Load(path)
		if err != nil {
			logger.Fatal("failed to load scenario", zap.String("path", path), zap.Error(err))
		}
		ids, err := sc.Apply(world)
		if err != nil {
			logger.Fatal("failed to apply scenario", zap.String("path", path), zap.Error(err))
		}
		logger.Info("scenario loaded", zap.String("path", path), zap.Int("entities", len(ids)))
	}

	app := api.NewApp(backend, world, logger)

	// Start background services
	bgCtx, stopBackground := context.WithCancel(ctx)
	app.Sweeper.Start()
	go app.Limiter.Run(bgCtx, 10*time.Minute, 10*time.Minute)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting",
			zap.String("addr", addr),
			zap.String("build", buildconfig.String()),
			zap.Bool("dev_build", buildconfig.Dev()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	// Stop background services
	stopBackground()
	app.Sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// newLogger builds the production logger at level, falling back to info
// when level does not parse.
func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
