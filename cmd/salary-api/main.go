// cmd/salary-api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"salary-predictor/internal/app"
	"salary-predictor/internal/common/config"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console", "stderr")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting salary prediction API...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("artifacts", cfg.Artifacts.Path),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := app.Build(ctx, cfg, log, app.Options{})
	if err != nil {
		zapLog.Fatal("service setup failed", zap.Error(err))
	}

	srv := server.New(cfg.Server, service.Router, log)
	if err := srv.ListenAndServe(ctx); err != nil {
		zapLog.Error("HTTP server failed", zap.Error(err))
	}

	// --- Graceful Shutdown ---
	zapLog.Info("Shutdown signal received, releasing resources...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := service.Close(shutdownCtx); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Salary prediction API stopped gracefully")
}
