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

	"github.com/conventionphotos/order-entry/internal/client"
	"github.com/conventionphotos/order-entry/internal/config"
	"github.com/conventionphotos/order-entry/internal/handlers"
	"github.com/conventionphotos/order-entry/internal/middleware"
	"github.com/conventionphotos/order-entry/internal/service"
	"github.com/conventionphotos/order-entry/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

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

	log.Info("starting photo order entry server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"upstream", cfg.Upstream.BaseURL,
		"log_level", cfg.LogLevel,
	)

	// Client for the fulfillment backend: event directory + order sink
	backend := client.New(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.Timeout)*time.Second)

	// Warm the event directory. A failure here is not fatal: the form
	// degrades to the fallback event-code prefix.
	if events, err := backend.Events(context.Background()); err != nil {
		log.Warn("event directory unavailable, continuing with fallback prefix",
			"prefix", cfg.Upstream.EventPrefix,
			"error", err,
		)
	} else {
		log.Info("event directory loaded", "events_count", len(events))
	}

	// The order session owns the draft and the submission flow
	session := service.NewOrderSession(backend, backend, cfg.Upstream.EventPrefix, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	eventsHandler := handlers.NewEventsHandler(session, log)
	sessionHandler := handlers.NewSessionHandler(session, log)

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
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/events", eventsHandler.List)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.Summary)
			r.Put("/event", sessionHandler.SetEvent)
			r.Put("/customer", sessionHandler.SetContact)
			r.Post("/items", sessionHandler.AddItem)
			r.Patch("/items/{index}", sessionHandler.UpdateItem)
			r.Delete("/items/{index}", sessionHandler.RemoveItem)
			r.Post("/submit", sessionHandler.Submit)
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
