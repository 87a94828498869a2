// Package mcp exposes the similarity engine over the Model Context Protocol,
// built on mark3labs/mcp-go, adapted
// from a multi-analyzer tool set down to the single scan/compare surface
// this repo implements.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers every similarity MCP tool with the server.
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("find_similar_functions",
		mcp.WithDescription("Scan a path for near-duplicate functions using AST tree edit distance"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory to scan")),
		mcp.WithNumber("threshold",
			mcp.Description("Minimum TSED similarity to report, 0.0-1.0 (default: 0.85)")),
		mcp.WithBoolean("skip_test",
			mcp.Description("Ignore functions annotated/named as tests (default: false)")),
	), h.HandleFindSimilarFunctions)

	s.AddTool(mcp.NewTool("compare_functions",
		mcp.WithDescription("Compute the TSED similarity score between two specific functions"),
		mcp.WithString("file1", mcp.Required(), mcp.Description("Path to the first file")),
		mcp.WithString("function1", mcp.Required(), mcp.Description("Name of the function in file1")),
		mcp.WithString("file2", mcp.Required(), mcp.Description("Path to the second file")),
		mcp.WithString("function2", mcp.Required(), mcp.Description("Name of the function in file2")),
	), h.HandleCompareFunctions)
}
