package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"orderproc/internal/broker"
	"orderproc/internal/config"
	"orderproc/internal/database"
	"orderproc/internal/logger"
	"orderproc/internal/models"
)

type application struct {
	orders orderStore
	events publisher
	db     *sql.DB
	logger *slog.Logger
}

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

	app := &application{
		orders: appModels.Order,
		events: b,
		db:     db,
		logger: logger,
	}

	logger.Info("API starting", "port", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), app.routes()); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
