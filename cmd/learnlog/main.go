// Learnlog: a daily learning journal as an MCP server.
//
// Tracks short "what I learned today" entries with categories, tags,
// a day streak and spreadsheet bulk-import, persisted locally under
// ~/.learnlog. Any MCP-capable AI client can drive it over stdio.
//
// Usage:
//
//	learnlog serve    # Start MCP server (stdio transport)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	logserver "learnlog/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("learnlog v%s\n", logserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	dataDir := os.Getenv("LEARNLOG_DATA_DIR")
	if dataDir == "" {
		dataDir = logserver.DefaultDataDir()
	}

	s, cleanup, err := logserver.New(dataDir)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Learnlog v%s — daily learning journal MCP server

Usage:
  learnlog serve    Start the MCP server (stdio transport)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "learnlog": {
        "command": "learnlog",
        "args": ["serve"]
      }
    }
  }

Data lives in ~/.learnlog (override with LEARNLOG_DATA_DIR).
`, logserver.Version)
}
