// cmd/api/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MereWhiplash/wordspace/internal/api"
	"github.com/MereWhiplash/wordspace/internal/app"
	"github.com/MereWhiplash/wordspace/internal/config"
	"github.com/MereWhiplash/wordspace/internal/logging"
)

func main() {
	configPath := flag.String("config", "wordspace.yaml", "Path to YAML config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", "err", err)
	}
	defer a.Close()

	// Create handlers
	handlers := api.NewHandlers(a.Service, logger.With("component", "api"))
	handlers.SetHealthCheck(a.Ping)
	handlers.SetCacheStats(a.CacheStats)

	// Setup router
	r := chi.NewRouter()

	// Core middleware
	r.Use(api.RequestID)
	r.Use(api.RequestLogger(logger.With("component", "http")))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(api.MaxBodySize)

	// Rate limiting (if enabled)
	if cfg.Server.RateLimit > 0 {
		limiter := api.NewRateLimiter(cfg.Server.RateLimit, time.Minute)
		r.Use(limiter.Middleware)
	}

	// CORS (if enabled)
	if len(cfg.Server.CORSOrigins) > 0 {
		r.Use(api.CORSMiddleware(cfg.Server.CORSOrigins))
	}

	// Routes
	handlers.Routes(r)
	if cfg.Server.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.Server.StaticDir)))
	}

	// Create server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "err", err)
		}

		close(done)
	}()

	// Start server
	logger.Info("Starting API server", "addr", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("Server error", "err", err)
	}

	<-done
	logger.Info("Server stopped")
}
