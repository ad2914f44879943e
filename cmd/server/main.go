package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akozlov/order-relay/internal/config"
	"github.com/akozlov/order-relay/internal/forwarder"
	"github.com/akozlov/order-relay/internal/handlers"
	"github.com/akozlov/order-relay/internal/middleware"
	"github.com/akozlov/order-relay/internal/service"
	"github.com/akozlov/order-relay/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// maxWebhookBody caps incoming order notifications at 10KB.
const maxWebhookBody = 10 << 10

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting order relay server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"app_env", cfg.AppEnv,
		"endpoint", cfg.Forward.EndpointURL,
		"log_level", cfg.LogLevel,
	)

	// Initialize forwarder; TLS verification is only ever skipped in development
	fwd := forwarder.New(
		cfg.Forward.EndpointURL,
		time.Duration(cfg.Forward.TimeoutMS)*time.Millisecond,
		cfg.Development(),
		log,
	)

	// Initialize services
	relayService := service.NewRelayService(fwd, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	webhookHandler := handlers.NewWebhookHandler(relayService, log, cfg.Development(), cfg.Webhook.LogPayloads)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Sign"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Webhook endpoint
	r.Route("/webhook", func(r chi.Router) {
		r.Get("/", healthHandler.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BodyLimit(maxWebhookBody))
			r.Use(middleware.Signature(cfg.Webhook.Secret))
			r.Post("/", webhookHandler.HandleOrder)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
