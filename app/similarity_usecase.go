// Package app is the thin use-case layer between cmd/ and service/,
// it owns nothing but
// wiring and presentation, leaving discovery/parsing/scoring to service
// and internal/engine.
package app

import (
	"io"

	"github.com/similarity-go/similarity/internal/config"
	"github.com/similarity-go/similarity/internal/report"
	"github.com/similarity-go/similarity/service"
)

// SimilarityUseCase runs a scan with a given configuration and renders the
// report to an output writer, matching spec §6's CLI contract end to end.
type SimilarityUseCase struct {
	svc *service.SimilarityService
}

func NewSimilarityUseCase() (*SimilarityUseCase, error) {
	svc, err := service.NewSimilarityService()
	if err != nil {
		return nil, err
	}
	return &SimilarityUseCase{svc: svc}, nil
}

// Execute runs the scan and prints the report to w.
func (u *SimilarityUseCase) Execute(w io.Writer, cfg *config.SimilarityConfig, language string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	result, err := u.svc.Run(cfg)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(w, language)
	printer.Print = cfg.Print
	if cfg.SortBy == "priority" {
		printer.SortMode = report.SortByPriority
	}

	printer.Header()
	printer.Report(result.Pairs, report.Sources(result.Sources))
	return nil
}
