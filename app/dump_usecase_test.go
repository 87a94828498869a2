package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/similarity-go/similarity/internal/config"
)

func TestSimilarityDumper_DumpAST_WritesOneDocumentPerFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.py"), []byte("def add(a, b):\n    return a + b\n"), 0o644))

	dumper, err := NewSimilarityDumper()
	require.NoError(t, err)

	cfg := config.DefaultSimilarityConfig()
	cfg.Paths = []string{dir}

	var out bytes.Buffer
	require.NoError(t, dumper.DumpAST(&out, cfg))

	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "python", docs[0]["language"])
	assert.NotEmpty(t, docs[0]["full_ast"])
}

func TestSimilarityDumper_DumpAST_DefaultsExtensionsWhenUnset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte("package sample\n\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not source"), 0o644))

	dumper, err := NewSimilarityDumper()
	require.NoError(t, err)

	cfg := config.DefaultSimilarityConfig()
	cfg.Paths = []string{dir}
	cfg.Extensions = nil

	var out bytes.Buffer
	require.NoError(t, dumper.DumpAST(&out, cfg))

	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, filepath.Join(dir, "sample.go"), docs[0]["filename"])
}
