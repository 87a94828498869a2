package mcp

import (
	"github.com/similarity-go/similarity/internal/config"
	"github.com/similarity-go/similarity/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	svc        *service.SimilarityService
	config     *config.SimilarityConfig
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.SimilarityConfig, configPath string) (*Dependencies, error) {
	if cfg == nil {
		cfg = config.DefaultSimilarityConfig()
	}

	svc, err := service.NewSimilarityService()
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		svc:        svc,
		config:     cfg,
		configPath: configPath,
	}, nil
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.SimilarityConfig {
	return d.config
}

// ConfigPath returns the config path passed to NewDependencies. It is stored
// only; the configuration snapshot is whatever the caller loaded.
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}
