// cmd/shim/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MereWhiplash/wordspace/internal/client"
	"github.com/MereWhiplash/wordspace/internal/config"
	"github.com/MereWhiplash/wordspace/internal/logging"
	"github.com/MereWhiplash/wordspace/internal/shim"
)

func main() {
	apiURL := flag.String("api-url", "", "wordspace API URL (required)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, *logLevel, "text")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	// Check for env var if flag not set
	if *apiURL == "" {
		*apiURL = os.Getenv("WORDSPACE_API_URL")
	}

	if *apiURL == "" {
		logger.Fatal("API URL required: use --api-url or WORDSPACE_API_URL environment variable")
	}

	// Create API client
	apiClient := client.New(*apiURL)

	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if health, err := apiClient.Health(healthCtx); err != nil {
		logger.Warn("API health check failed", "url", *apiURL, "err", err)
	} else {
		logger.Info("Connected to API", "url", *apiURL, "status", health.Status)
	}
	healthCancel()

	// Create shim handler
	handler := shim.NewHandler(apiClient)

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "wordspace",
		Version: "1.0.0",
	}, nil)

	// Register tools
	shim.Register(server, handler)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down...")
		cancel()
	}()

	// Start server with stdio transport
	logger.Info("Starting wordspace shim...")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}
