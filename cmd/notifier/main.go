package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"orderproc/internal/broker"
	"orderproc/internal/config"
	"orderproc/internal/logger"
	"orderproc/internal/notify"
	"orderproc/internal/worker"
)

func main() {
	var dev bool
	flag.BoolVar(&dev, "dev", false, "Enable godotenv")
	flag.Parse()

	logger := logger.New()

	if dev {
		if err := godotenv.Load(); err != nil {
			logger.Error("Error loading .env file", "error", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	b, err := broker.New(cfg.RabbitMQ, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	if err := b.SetupTopology(); err != nil {
		logger.Error("Failed to set up broker topology", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.New(broker.PaymentNotificationQueue, b, logger)
	h := &handler{sink: notify.LogSink{Logger: logger}, logger: logger}
	if err := w.Run(ctx, h); err != nil {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}
}
