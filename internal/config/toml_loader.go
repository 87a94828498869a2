package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/similarity-go/similarity/domain"
)

// SimilarityTomlConfig mirrors SimilarityConfig's [similarity] section in a
// .similarity.toml project file. Pointer fields distinguish "absent from the
// file" from "explicitly set to the zero value".
type SimilarityTomlConfig struct {
	Paths      []string `toml:"paths"`
	Extensions []string `toml:"extensions"`

	Threshold     *float64 `toml:"threshold"`
	RenameCost    *float64 `toml:"rename_cost"`
	MinLines      *int     `toml:"min_lines"`
	MinTokens     *int     `toml:"min_tokens"`
	SizePenalty   *bool    `toml:"size_penalty"`
	FastPrefilter *bool    `toml:"fast_prefilter"`

	FilterFunction     string `toml:"filter_function"`
	FilterFunctionBody string `toml:"filter_function_body"`
	SkipTest           *bool  `toml:"skip_test"`

	Print   *bool  `toml:"print"`
	SortBy  string `toml:"sort_by"`
	DumpAST *bool  `toml:"dump_ast"`

	Concurrency *int `toml:"concurrency"`
}

// similarityTomlFile is the top-level shape of .similarity.toml.
type similarityTomlFile struct {
	Similarity SimilarityTomlConfig `toml:"similarity"`
}

// TomlConfigLoader loads a SimilarityConfig from an optional .similarity.toml
// project file layered over the built-in defaults.
type TomlConfigLoader struct{}

func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig resolves a .similarity.toml starting from workDir and walking
// up to the filesystem root, falling back to defaults when none is found.
func (l *TomlConfigLoader) LoadConfig(workDir string) (*SimilarityConfig, error) {
	cfg := DefaultSimilarityConfig()

	path, err := l.findConfigFile(workDir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError("reading "+path, err)
	}

	var file similarityTomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, domain.NewConfigError("parsing "+path, err)
	}

	l.merge(cfg, &file.Similarity)
	return cfg, nil
}

func (l *TomlConfigLoader) merge(cfg *SimilarityConfig, t *SimilarityTomlConfig) {
	if len(t.Paths) > 0 {
		cfg.Paths = t.Paths
	}
	if len(t.Extensions) > 0 {
		cfg.Extensions = t.Extensions
	}
	if t.Threshold != nil {
		cfg.Threshold = *t.Threshold
	}
	if t.RenameCost != nil {
		cfg.RenameCost = *t.RenameCost
	}
	if t.MinLines != nil {
		cfg.MinLines = *t.MinLines
	}
	if t.MinTokens != nil {
		cfg.MinTokens = *t.MinTokens
	}
	if t.SizePenalty != nil {
		cfg.SizePenalty = *t.SizePenalty
	}
	if t.FastPrefilter != nil {
		cfg.FastPrefilter = *t.FastPrefilter
	}
	if t.FilterFunction != "" {
		cfg.FilterFunction = t.FilterFunction
	}
	if t.FilterFunctionBody != "" {
		cfg.FilterFunctionBody = t.FilterFunctionBody
	}
	if t.SkipTest != nil {
		cfg.SkipTest = *t.SkipTest
	}
	if t.Print != nil {
		cfg.Print = *t.Print
	}
	if t.SortBy != "" {
		cfg.SortBy = t.SortBy
	}
	if t.DumpAST != nil {
		cfg.DumpAST = *t.DumpAST
	}
	if t.Concurrency != nil {
		cfg.Concurrency = *t.Concurrency
	}
}

// findConfigFile walks up from startDir looking for .similarity.toml.
func (l *TomlConfigLoader) findConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		candidate := filepath.Join(dir, ".similarity.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
