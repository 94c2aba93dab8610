// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables AI assistants to read and write tracking data via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/minakami/minakami/internal/mcp"
	"github.com/minakami/minakami/internal/narrative"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI assistants",
		Long: `Start MCP server for AI assistants

Runs minakami as an MCP (Model Context Protocol) server on stdio, so an
assistant can log activities, read daily stats, and manage narrative
summaries.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the assistant host)
  minakami mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "minakami": {
  #       "command": "minakami",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	tracker, cfg, err := openTracker()
	if err != nil {
		return err
	}

	// Narrative generation over MCP is optional; without a key the
	// generate_narrative tool is simply not registered.
	var generator *narrative.Generator
	if cfg.OpenAIKey != "" {
		generator, err = narrative.NewGenerator(cfg, tracker)
		if err != nil {
			log.Printf("Warning: narrative generator unavailable: %v", err)
		}
	} else if !quiet {
		log.Println("OPENAI_API_KEY not set - generate_narrative tool disabled")
	}

	server := mcpserver.NewMCPServer(
		"Minakami Tracker",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, tracker, generator)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Minakami MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, closing storage...")
		}
		if err := tracker.Close(); err != nil {
			log.Printf("Warning: error closing storage: %v", err)
		}
	case err := <-serverErr:
		_ = tracker.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
