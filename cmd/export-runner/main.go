package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"outgo/internal/amqp"
	"outgo/internal/config"
	"outgo/internal/delivery"
	applog "outgo/internal/log"
	"outgo/internal/services"
	"outgo/internal/storage"
)

// export-runner executes due scheduled exports. Deploying it is optional:
// without it, schedules are definitions only and NextRun is informational.
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Component: "export-runner",
		Handler:   applog.DefaultConfig().Handler,
	})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	kv, err := storage.Open(cfg.DataBackend, cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open storage", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer kv.Close()

	expenses := storage.NewExpenseStore(kv)
	books := storage.NewBookkeepingStore(kv)

	deliverer, err := delivery.NewDirDeliverer(cfg.ExportDir)
	if err != nil {
		logger.Error("Failed to initialize export directory", "error", err, "dir", cfg.ExportDir)
		os.Exit(1)
	}

	var events *amqp.Client
	if cfg.AMQPURL != "" {
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
			events = nil
		} else {
			defer events.Close()
		}
	}

	exportService := services.NewExportService(expenses, books, deliverer, events)
	scheduleService := services.NewScheduleService(books)
	runner := services.NewRunner(exportService, scheduleService, books, services.RunnerConfig{
		PollInterval: cfg.RunnerInterval,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Start(ctx); err != nil {
		logger.Error("Failed to start schedule runner", "error", err)
		os.Exit(1)
	}
	logger.Info("Export runner started", "interval", cfg.RunnerInterval, "backend", cfg.DataBackend)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := runner.Stop(shutdownCtx); err != nil {
		logger.Error("Runner shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("Export runner stopped gracefully")
}
