package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/maxierra/tienda360-api/internal/client"
	"github.com/maxierra/tienda360-api/internal/config"
	"github.com/maxierra/tienda360-api/internal/repository"
	"github.com/maxierra/tienda360-api/internal/server"
	"github.com/maxierra/tienda360-api/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	setupLogger(&cfg.Log)

	// fail at startup, not deep inside a request
	if cfg.MercadoPago.AccessToken == "" {
		slog.Error("MP_ACCESS_TOKEN is required")
		os.Exit(1)
	}
	if cfg.Supabase.JWTSecret == "" {
		slog.Error("SUPABASE_JWT_SECRET is required")
		os.Exit(1)
	}

	db := client.InitPostgresClient(cfg.DatabaseURL)
	mpClient := client.NewMercadoPagoClient(&cfg.MercadoPago)

	subscriptionRepo := repository.NewSubscriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	paymentService := service.NewPaymentService(
		mpClient, cfg.BaseURL,
		paymentRepo,
		subscriptionRepo,
		webhookEventRepo,
	)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)
	saleService := service.NewSaleService(saleRepo)

	srv := server.NewServer(paymentService, subscriptionService, saleService, cfg.Supabase.JWTSecret)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	slog.Info("starting HTTP server", "addr", serverAddr, "env", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	slog.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(logCfg *config.Log) {
	level := slog.LevelInfo
	switch strings.ToLower(logCfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if logCfg.Format == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
