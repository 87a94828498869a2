package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/similarity-go/similarity/domain"
	"github.com/similarity-go/similarity/internal/engine"
	"github.com/similarity-go/similarity/internal/langparser"
)

// HandlerSet holds the dependencies every tool handler needs.
type HandlerSet struct {
	deps *Dependencies
}

func NewHandlerSet(deps *Dependencies) *HandlerSet {
	return &HandlerSet{deps: deps}
}

// HandleFindSimilarFunctions handles the find_similar_functions tool.
func (h *HandlerSet) HandleFindSimilarFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	cfg := *h.deps.Config()
	cfg.Paths = []string{path}
	if threshold, ok := args["threshold"].(float64); ok {
		cfg.Threshold = threshold
	}
	if skipTest, ok := args["skip_test"].(bool); ok {
		cfg.SkipTest = skipTest
	}
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	result, err := h.deps.svc.Run(&cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(result.Pairs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleCompareFunctions handles the compare_functions tool.
func (h *HandlerSet) HandleCompareFunctions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	file1, _ := args["file1"].(string)
	name1, _ := args["function1"].(string)
	file2, _ := args["file2"].(string)
	name2, _ := args["function2"].(string)
	if file1 == "" || name1 == "" || file2 == "" || name2 == "" {
		return mcp.NewToolResultError("file1, function1, file2 and function2 are all required"), nil
	}

	registry, err := langparser.NewRegistry()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to initialize parsers: %v", err)), nil
	}

	fn1, src1, parser1, err := findFunction(registry, file1, name1)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fn2, src2, _, err := findFunction(registry, file2, name2)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := h.deps.Config()
	comparer := engine.NewFunctionComparer(parser1, cfg.ToTSEDOptions())
	score, ok, err := comparer.Compare(src1, fn1, file1, src2, fn2, file2)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultText(`{"comparable":false}`), nil
	}

	jsonData, err := json.Marshal(map[string]interface{}{
		"comparable": true,
		"similarity": score,
		"clone_type": domain.ClassifyCloneType(score, cfg.Threshold, cfg.Thresholds).String(),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func findFunction(registry *langparser.Registry, file, name string) (*domain.FunctionDef, []byte, domain.Parser, error) {
	parser, err := registry.ForFile(file)
	if err != nil {
		return nil, nil, nil, err
	}
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	functions, err := parser.ExtractFunctions(source, file)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	for _, fn := range functions {
		if fn.Name == name {
			return fn, source, parser, nil
		}
	}
	return nil, nil, nil, fmt.Errorf("function %q not found in %s", name, file)
}
