// cmd/ingest-worker/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	app "finflow-ledger/internal"
	"finflow-ledger/internal/amqp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.NewApplication()
	if err := application.Initialize(ctx); err != nil {
		application.Logger.Error("Failed to initialize application", "error", err)
		_ = application.Shutdown(context.Background())
		os.Exit(1)
	}

	cfg := application.Config
	if err := cfg.ValidateAMQP(); err != nil {
		application.Logger.Error("Configuration validation failed", "error", err)
		_ = application.Shutdown(context.Background())
		os.Exit(1)
	}

	application.Logger.Info("Starting ingest worker", "exchange", cfg.AMQP.Exchange, "queue", cfg.AMQP.Queue)

	dial := func() (*amqp.Client, error) {
		return amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	}
	err := amqp.Run(ctx, dial, amqp.NewIngestHandler(application.Transactions))
	if err != nil && !errors.Is(err, context.Canceled) {
		application.Logger.Error("Message consumption failed", "error", err)
		_ = application.Shutdown(context.Background())
		os.Exit(1)
	}
	application.Logger.Info("Ingest worker stopped")
	_ = application.Shutdown(context.Background())
}
