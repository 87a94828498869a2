// Package config holds the merged view of CLI flags, an optional
// .similarity.toml project file, and built-in defaults, following a single
// struct-plus-adapter pattern.
package config

import (
	"fmt"

	"github.com/similarity-go/similarity/domain"
	"github.com/similarity-go/similarity/internal/constants"
)

// SimilarityConfig is the unified configuration for a similarity run,
// covering every flag in spec §6's CLI surface table.
type SimilarityConfig struct {
	// Input
	Paths      []string `mapstructure:"paths" toml:"paths"`
	Extensions []string `mapstructure:"extensions" toml:"extensions"`

	// APTED/TSED tuning (spec §3, §4.2, §4.3)
	Threshold     float64 `mapstructure:"threshold" toml:"threshold"`
	RenameCost    float64 `mapstructure:"rename_cost" toml:"rename_cost"`
	MinLines      int     `mapstructure:"min_lines" toml:"min_lines"`
	MinTokens     int     `mapstructure:"min_tokens" toml:"min_tokens"`
	SizePenalty   bool    `mapstructure:"size_penalty" toml:"size_penalty"`
	FastPrefilter bool    `mapstructure:"fast_prefilter" toml:"fast_prefilter"`

	// Function filtering (spec §4.4, SPEC_FULL supplement #2)
	FilterFunction     string `mapstructure:"filter_function" toml:"filter_function"`
	FilterFunctionBody string `mapstructure:"filter_function_body" toml:"filter_function_body"`
	SkipTest           bool   `mapstructure:"skip_test" toml:"skip_test"`

	// Output (spec §6, SPEC_FULL supplements #1 and #4)
	Print  bool   `mapstructure:"print" toml:"print"`
	SortBy string `mapstructure:"sort_by" toml:"sort_by"` // "similarity" or "priority"
	DumpAST bool  `mapstructure:"dump_ast" toml:"dump_ast"`

	// Clone-type classification (SPEC_FULL supplement #6), additive only.
	Thresholds constants.CloneThresholdConfig `mapstructure:"thresholds" toml:"thresholds"`

	// Scheduler tuning (spec §5)
	Concurrency int `mapstructure:"concurrency" toml:"concurrency"`
}

// DefaultSimilarityConfig returns the spec §6 CLI defaults.
func DefaultSimilarityConfig() *SimilarityConfig {
	return &SimilarityConfig{
		Paths:              []string{"."},
		Extensions:         nil, // language default, resolved at run time
		Threshold:          0.85,
		RenameCost:         0.3,
		MinLines:           3,
		MinTokens:          0,
		SizePenalty:        true,
		FastPrefilter:      true,
		FilterFunction:     "",
		FilterFunctionBody: "",
		SkipTest:           false,
		Print:              false,
		SortBy:             "similarity",
		DumpAST:            false,
		Thresholds:         constants.DefaultCloneThresholds(),
		Concurrency:        0, // 0 means runtime.GOMAXPROCS(0)
	}
}

// Validate checks the configuration invariants spec §6 implies, reporting
// each violation as a domain.NewValidationError.
func (c *SimilarityConfig) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return domain.NewValidationError(fmt.Sprintf("threshold %.2f is out of range [0,1]", c.Threshold))
	}
	if c.RenameCost < 0 {
		return domain.NewValidationError(fmt.Sprintf("rename-cost must be >= 0, got %.2f", c.RenameCost))
	}
	if c.MinLines < 0 {
		return domain.NewValidationError(fmt.Sprintf("min-lines must be >= 0, got %d", c.MinLines))
	}
	if c.MinTokens < 0 {
		return domain.NewValidationError(fmt.Sprintf("min-tokens must be >= 0, got %d", c.MinTokens))
	}
	if c.SortBy != "similarity" && c.SortBy != "priority" {
		return domain.NewValidationError(fmt.Sprintf("sort-by must be one of similarity, priority, got %s", c.SortBy))
	}
	if len(c.Paths) == 0 {
		return domain.NewValidationError("paths cannot be empty")
	}
	if err := c.Thresholds.ValidateThresholds(); err != nil {
		return domain.NewValidationError(err.Error())
	}
	return nil
}

// ToTSEDOptions builds the domain-level options the engine package consumes.
func (c *SimilarityConfig) ToTSEDOptions() domain.TSEDOptions {
	return domain.TSEDOptions{
		APTED: domain.APTEDOptions{
			RenameCost: c.RenameCost,
			DeleteCost: 1.0,
			InsertCost: 1.0,
		},
		MinLines:    c.MinLines,
		MinTokens:   c.MinTokens,
		SizePenalty: c.SizePenalty,
		SkipTest:    c.SkipTest,
	}
}
