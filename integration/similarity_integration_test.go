package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/similarity-go/similarity/app"
	"github.com/similarity-go/similarity/internal/config"
)

// TestSimilarityUseCase_EndToEnd exercises the full pipeline (walk ->
// langparser -> engine -> report) the way the CLI does.
func TestSimilarityUseCase_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := `package sample

func Add(a, b int) int {
	total := a + b
	return total
}

func Sum(x, y int) int {
	total := x + y
	return total
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte(src), 0o644))

	useCase, err := app.NewSimilarityUseCase()
	require.NoError(t, err)

	cfg := config.DefaultSimilarityConfig()
	cfg.Paths = []string{dir}
	cfg.Extensions = []string{"go"}
	cfg.Threshold = 0.8

	var out bytes.Buffer
	require.NoError(t, useCase.Execute(&out, cfg, "go"))

	report := out.String()
	assert.Contains(t, report, "Add")
	assert.Contains(t, report, "Sum")
	assert.Contains(t, report, "Similarity:")
}

func TestSimilarityUseCase_NoDuplicatesSentinel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte("package sample\n\nfunc Noop() {}\n"), 0o644))

	useCase, err := app.NewSimilarityUseCase()
	require.NoError(t, err)

	cfg := config.DefaultSimilarityConfig()
	cfg.Paths = []string{dir}
	cfg.Extensions = []string{"go"}

	var out bytes.Buffer
	require.NoError(t, useCase.Execute(&out, cfg, "go"))
	assert.Contains(t, out.String(), "No duplicate functions found!")
}
