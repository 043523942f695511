package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"orderproc/internal/broker"
	"orderproc/internal/config"
	"orderproc/internal/database"
	"orderproc/internal/logger"
	"orderproc/internal/models"
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

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

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

	appModels := models.NewModels(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.New(broker.OrderUpdateQueue, b, logger)
	h := &handler{orders: appModels.Order, logger: logger}
	if err := w.Run(ctx, h); err != nil {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}
}
