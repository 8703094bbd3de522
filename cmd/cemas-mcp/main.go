// Cemas MCP server: exposes the Ikigai and personality questionnaires and
// their scorers over the MCP stdio transport.
//
// Usage:
//
//	cemas-mcp    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ashureev/cemas/internal/assessment"
	"github.com/ashureev/cemas/internal/mcptools"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cemas-mcp v%s\n", mcptools.Version)
			return
		case "--help", "-h", "help":
			fmt.Println("Usage: cemas-mcp    # serve MCP over stdio")
			return
		}
	}

	// Stdout carries the MCP protocol, so logs go to stderr.
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	s := mcptools.NewServer(assessment.StaticSynthesizer{})
	slog.Info("Starting MCP server", "version", mcptools.Version)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
