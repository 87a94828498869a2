// Package service wires internal/walk, internal/langparser and
// internal/engine together into the single operation the CLI and the MCP
// server both need: run a similarity scan over a set of paths and return
// ranked pairs.
package service

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/similarity-go/similarity/domain"
	"github.com/similarity-go/similarity/internal/config"
	"github.com/similarity-go/similarity/internal/engine"
	"github.com/similarity-go/similarity/internal/langparser"
	"github.com/similarity-go/similarity/internal/walk"
)

// defaultFingerprintThreshold matches spec §4.5's conservative default.
const defaultFingerprintThreshold = 0.3

// SimilarityService runs end-to-end similarity scans.
type SimilarityService struct {
	registry *langparser.Registry
}

// NewSimilarityService builds a service with a fresh parser registry wired
// for every supported language (spec §4.7).
func NewSimilarityService() (*SimilarityService, error) {
	reg, err := langparser.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("building parser registry: %w", err)
	}
	return &SimilarityService{registry: reg}, nil
}

// Result bundles the ranked pairs with the raw source bytes per file, so the
// report printer can optionally show function bodies (--print).
type Result struct {
	Pairs   []domain.SimilarityResult
	Sources map[string][]byte
}

// Run discovers files under cfg.Paths, extracts functions per file with the
// matching language adapter, schedules all within-file and cross-file
// comparisons (spec §4.6), and returns the ranked, filtered pairs.
func (s *SimilarityService) Run(cfg *config.SimilarityConfig) (*Result, error) {
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = defaultExtensions()
	}

	files, err := walk.Collect(cfg.Paths, walk.Options{Extensions: extensions})
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to discover source files", err)
	}

	tsedOpts := cfg.ToTSEDOptions()
	sched := engine.NewScheduler(tsedOpts, cfg.Threshold, defaultFingerprintThreshold, cfg.FastPrefilter)
	sched.Thresholds = cfg.Thresholds
	if cfg.Concurrency > 0 {
		sched.Concurrency = cfg.Concurrency
	}

	sources := make(map[string][]byte, len(files))
	unitsByFile := make(map[string][]engine.FunctionUnit)

	for _, file := range files {
		parser, err := s.registry.ForFile(file)
		if err != nil {
			continue
		}

		source, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: %v", domain.NewFileNotFoundError(file, err))
			continue
		}
		sources[file] = source

		functions, err := parser.ExtractFunctions(source, file)
		if err != nil {
			log.Printf("Warning: %v", domain.NewParseError(file, err))
			continue
		}

		comparer := engine.NewFunctionComparer(parser, tsedOpts)
		functions = filterFunctions(functions, cfg, source, comparer)
		units := engine.PrepareUnits(parser, comparer, file, source, functions)
		if len(units) > 0 {
			unitsByFile[file] = units
		}
	}

	var results []domain.SimilarityResult
	grouped := make([][]engine.FunctionUnit, 0, len(unitsByFile))
	for _, units := range unitsByFile {
		results = append(results, sched.WithinFile(units)...)
		grouped = append(grouped, units)
	}
	results = append(results, sched.CrossFile(grouped)...)
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		switch {
		case a.Similarity != b.Similarity:
			return a.Similarity > b.Similarity
		case a.File1 != b.File1:
			return a.File1 < b.File1
		case a.Func1.StartLine != b.Func1.StartLine:
			return a.Func1.StartLine < b.Func1.StartLine
		case a.File2 != b.File2:
			return a.File2 < b.File2
		}
		return a.Func2.StartLine < b.Func2.StartLine
	})

	return &Result{Pairs: results, Sources: sources}, nil
}

// filterFunctions applies the --filter-function / --filter-function-body /
// --skip-test selection criteria ahead of comparison, per spec §4.4 and
// SPEC_FULL.md supplement #2.
func filterFunctions(functions []*domain.FunctionDef, cfg *config.SimilarityConfig, source []byte, comparer *engine.FunctionComparer) []*domain.FunctionDef {
	if cfg.FilterFunction == "" && cfg.FilterFunctionBody == "" {
		return functions
	}

	lines := strings.Split(string(source), "\n")
	filtered := make([]*domain.FunctionDef, 0, len(functions))
	for _, fn := range functions {
		if cfg.FilterFunction != "" && !strings.Contains(fn.Name, cfg.FilterFunction) {
			continue
		}
		if cfg.FilterFunctionBody != "" {
			start, end := fn.BodyStartLine-1, fn.BodyEndLine
			if start < 0 {
				start = 0
			}
			if end > len(lines) {
				end = len(lines)
			}
			if start >= end || !strings.Contains(strings.Join(lines[start:end], "\n"), cfg.FilterFunctionBody) {
				continue
			}
		}
		filtered = append(filtered, fn)
	}
	return filtered
}

func defaultExtensions() []string {
	var exts []string
	for _, lang := range []domain.LanguageTag{
		domain.LanguagePython, domain.LanguageGo, domain.LanguageJavaScript, domain.LanguageTypeScript,
	} {
		exts = append(exts, domain.Extensions(lang)...)
	}
	return exts
}
