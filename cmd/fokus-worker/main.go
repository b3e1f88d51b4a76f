package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"fokus/internal/amqp"
	"fokus/internal/cli"
	"fokus/internal/log"
	"fokus/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting fokus-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := cli.OpenStore(ctx, logger, cfg)
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Store cleanup failed", log.FieldError, err)
			}
		}()
	}

	alertWorker := worker.NewAlertWorker(logger)
	reminder := worker.NewReminderScheduler(result.Store, amqpClient, cfg.ReminderInterval, cfg.ReminderStatePath, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Consuming budget alerts", "queue", cfg.AMQPQueue)
		return amqpClient.ConsumeAlerts(gctx, alertWorker.HandleAlert)
	})

	g.Go(func() error {
		return reminder.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
