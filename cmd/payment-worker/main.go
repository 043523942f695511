package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"orderproc/internal/broker"
	"orderproc/internal/cache"
	"orderproc/internal/config"
	"orderproc/internal/logger"
	"orderproc/internal/payment"
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

	claims := cache.New(cfg.Redis)
	if err := claims.Ping(context.Background()); err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	processor := payment.NewProcessor(payment.RandomDecider(), b, claims, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Synchronous entry point into the payment flow, next to the
	// queue-driven one.
	mux := http.NewServeMux()
	mux.HandleFunc("POST /payments/process/{orderId}", processPaymentHandler(processor, logger))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: mux}
	go func() {
		logger.Info("Payment HTTP endpoint starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err)
		}
	}()

	w := worker.New(broker.OrderPaymentQueue, b, logger)
	h := &handler{processor: processor, logger: logger}
	if err := w.Run(ctx, h); err != nil {
		logger.Error("Worker failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
