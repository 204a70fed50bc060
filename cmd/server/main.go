package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/MereWhiplash/wordspace/internal/app"
	"github.com/MereWhiplash/wordspace/internal/config"
	"github.com/MereWhiplash/wordspace/internal/logging"
	"github.com/MereWhiplash/wordspace/internal/render"
	"github.com/MereWhiplash/wordspace/internal/tools"
)

// version is set by goreleaser via ldflags
var version = "dev"

func main() {
	configPath := flag.String("config", "wordspace.yaml", "Path to YAML config file")

	// CLI mode flags
	wordsFlag := flag.String("words", "", "Comma-separated words to visualize (CLI mode)")
	centralFlag := flag.String("central", "", "Central word for similarity scores (CLI mode)")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Parse()

	if *versionFlag {
		fmt.Printf("wordspace-server %s\n", version)
		return
	}

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the MCP transport, so logs go to stderr
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", "err", err)
	}
	defer a.Close()

	// CLI mode - compute once and print
	if *wordsFlag != "" {
		if err := runOnce(ctx, a, logger, splitWords(*wordsFlag), *centralFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "wordspace",
		Version: version,
	}, nil)

	// Register tools
	tools.Register(server, a.Service)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down...")
		cancel()
	}()

	// Start server with stdio transport
	logger.Info("Starting wordspace MCP server...")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}

func runOnce(ctx context.Context, a *app.App, logger *log.Logger, words []string, central string) error {
	records, err := a.Service.Compute(ctx, words, central)
	if err != nil {
		return err
	}

	fmt.Println(render.Report(central, words, records))

	stats := a.Resolver.Stats()
	logger.Debug("cache", "hits", stats.Hits, "misses", stats.Misses)
	return nil
}

func splitWords(s string) []string {
	var words []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}
