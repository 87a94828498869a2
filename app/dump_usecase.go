package app

import (
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/similarity-go/similarity/domain"
	"github.com/similarity-go/similarity/internal/config"
	"github.com/similarity-go/similarity/internal/format"
	"github.com/similarity-go/similarity/internal/langparser"
	"github.com/similarity-go/similarity/internal/walk"
)

// SimilarityDumper serializes each discovered file's full AST, together with
// its extracted function spans, as a round-trippable format.ASTExchange
// document (--dump-ast).
type SimilarityDumper struct {
	registry *langparser.Registry
}

func NewSimilarityDumper() (*SimilarityDumper, error) {
	reg, err := langparser.NewRegistry()
	if err != nil {
		return nil, err
	}
	return &SimilarityDumper{registry: reg}, nil
}

// DumpAST walks cfg.Paths and writes one JSON array entry per file.
func (d *SimilarityDumper) DumpAST(w io.Writer, cfg *config.SimilarityConfig) error {
	extensions := cfg.Extensions
	if len(extensions) == 0 {
		extensions = defaultDumpExtensions()
	}
	files, err := walk.Collect(cfg.Paths, walk.Options{Extensions: extensions})
	if err != nil {
		return err
	}

	var docs []*format.ASTExchange
	for _, file := range files {
		parser, err := d.registry.ForFile(file)
		if err != nil {
			continue
		}
		source, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Warning: %v", domain.NewFileNotFoundError(file, err))
			continue
		}

		tree, err := parser.Parse(source, file)
		if err != nil {
			log.Printf("Warning: %v", domain.NewParseError(file, err))
			continue
		}
		functions, err := parser.ExtractFunctions(source, file)
		if err != nil {
			log.Printf("Warning: %v", domain.NewParseError(file, err))
			continue
		}

		exchange := &format.ASTExchange{
			Language: string(parser.Language()),
			Filename: file,
			FullAST:  format.FromTree(tree),
		}
		for _, fn := range functions {
			exchange.Functions = append(exchange.Functions, format.FromFunctionDef(fn))
		}
		docs = append(docs, exchange)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// defaultDumpExtensions mirrors service.defaultExtensions: with no
// --extensions flag set, scan every language the registry supports rather
// than letting walk.Collect admit every extension unfiltered.
func defaultDumpExtensions() []string {
	var exts []string
	for _, lang := range []domain.LanguageTag{
		domain.LanguagePython, domain.LanguageGo, domain.LanguageJavaScript, domain.LanguageTypeScript,
	} {
		exts = append(exts, domain.Extensions(lang)...)
	}
	return exts
}
