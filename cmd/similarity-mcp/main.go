package main

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/similarity-go/similarity/internal/config"
	"github.com/similarity-go/similarity/mcp"
)

const (
	serverName    = "similarity"
	serverVersion = "1.0.0"
)

func main() {
	// MCP uses stdout for JSON-RPC, so diagnostics go to stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	configPath := os.Getenv("SIMILARITY_CONFIG")
	loader := config.NewTomlConfigLoader()
	cfg, err := loader.LoadConfig(".")
	if err != nil {
		log.Printf("Warning: failed to load config: %v, using defaults", err)
		cfg = config.DefaultSimilarityConfig()
	}

	dependencies, err := mcp.NewDependencies(cfg, configPath)
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	handlers := mcp.NewHandlerSet(dependencies)
	mcp.RegisterTools(server, handlers)

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("Registered tools:")
	log.Println("  - find_similar_functions: scan a path for near-duplicate functions")
	log.Println("  - compare_functions: score the similarity of two named functions")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
