package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/similarity-go/similarity/app"
	"github.com/similarity-go/similarity/internal/config"
	"github.com/similarity-go/similarity/internal/version"
)

// cliFlags mirrors spec §6's CLI surface table one field per flag.
type cliFlags struct {
	threshold          float64
	renameCost         float64
	minLines           int
	minTokens          int
	noSizePenalty      bool
	noFast             bool
	print              bool
	extensions         []string
	filterFunction     string
	filterFunctionBody string
	skipTest           bool
	sortBy             string
	dumpAST            bool
	language           string
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	cmd := &cobra.Command{
		Use:     "similarity [paths...]",
		Short:   "Detect near-duplicate functions via AST tree edit distance",
		Version: version.Short(),
		Long: `similarity compares the structural shape of function ASTs across source
files using an APTED-style tree edit distance and a TSED similarity score,
reporting pairs of functions likely to be clones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			return runSimilarity(cmd, args, flags)
		},
	}

	cmd.Flags().Float64Var(&flags.threshold, "threshold", 0.85, "report pairs with TSED similarity >= threshold")
	cmd.Flags().Float64Var(&flags.renameCost, "rename-cost", 0.3, "APTED rename cost")
	cmd.Flags().IntVar(&flags.minLines, "min-lines", 3, "skip functions shorter than N lines")
	cmd.Flags().IntVar(&flags.minTokens, "min-tokens", 0, "skip functions with fewer than N AST nodes (0 = unset)")
	cmd.Flags().BoolVar(&flags.noSizePenalty, "no-size-penalty", false, "disable the TSED size penalty")
	cmd.Flags().BoolVar(&flags.noFast, "no-fast", false, "disable the fingerprint prefilter")
	cmd.Flags().BoolVar(&flags.print, "print", false, "print function source alongside each report")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "restrict file discovery to these extensions (default: language default)")
	cmd.Flags().StringVar(&flags.filterFunction, "filter-function", "", "only consider functions whose name contains SUBSTR")
	cmd.Flags().StringVar(&flags.filterFunctionBody, "filter-function-body", "", "only consider functions whose body text contains SUBSTR")
	cmd.Flags().BoolVar(&flags.skipTest, "skip-test", false, "ignore functions annotated/named as tests")
	cmd.Flags().StringVar(&flags.sortBy, "sort-by", "similarity", "result order: similarity or priority")
	cmd.Flags().BoolVar(&flags.dumpAST, "dump-ast", false, "dump the parsed AST and function spans of every discovered file as JSON instead of scanning for clones")
	cmd.Flags().StringVar(&flags.language, "language", "source", "label used in the report header")

	cmd.AddCommand(NewVersionCmd())
	return cmd
}

func runSimilarity(cmd *cobra.Command, paths []string, flags *cliFlags) error {
	loader := config.NewTomlConfigLoader()
	cfg, err := loader.LoadConfig(paths[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	explicit := GetExplicitFlags(cmd)
	applyFlags(cfg, flags, paths, explicit)

	if cfg.DumpAST {
		return dumpAST(cmd.OutOrStdout(), cfg)
	}

	useCase, err := app.NewSimilarityUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize parsers: %w", err)
	}
	return useCase.Execute(cmd.OutOrStdout(), cfg, flags.language)
}

// applyFlags merges CLI flag values onto the TOML-loaded config, using
// config.Merge* so a flag only overrides the file's value when the user
// actually passed it on the command line.
func applyFlags(cfg *config.SimilarityConfig, flags *cliFlags, paths []string, explicit map[string]bool) {
	cfg.Paths = paths
	cfg.Threshold = config.MergeFloat64(cfg.Threshold, flags.threshold, "threshold", explicit)
	cfg.RenameCost = config.MergeFloat64(cfg.RenameCost, flags.renameCost, "rename-cost", explicit)
	cfg.MinLines = config.MergeInt(cfg.MinLines, flags.minLines, "min-lines", explicit)
	cfg.MinTokens = config.MergeInt(cfg.MinTokens, flags.minTokens, "min-tokens", explicit)
	cfg.SizePenalty = config.MergeBool(cfg.SizePenalty, !flags.noSizePenalty, "no-size-penalty", explicit)
	cfg.FastPrefilter = config.MergeBool(cfg.FastPrefilter, !flags.noFast, "no-fast", explicit)
	cfg.Print = config.MergeBool(cfg.Print, flags.print, "print", explicit)
	cfg.Extensions = config.MergeStringSlice(cfg.Extensions, flags.extensions, "extensions", explicit)
	cfg.FilterFunction = config.MergeString(cfg.FilterFunction, flags.filterFunction, "filter-function", explicit)
	cfg.FilterFunctionBody = config.MergeString(cfg.FilterFunctionBody, flags.filterFunctionBody, "filter-function-body", explicit)
	cfg.SkipTest = config.MergeBool(cfg.SkipTest, flags.skipTest, "skip-test", explicit)
	cfg.SortBy = config.MergeString(cfg.SortBy, flags.sortBy, "sort-by", explicit)
	cfg.DumpAST = config.MergeBool(cfg.DumpAST, flags.dumpAST, "dump-ast", explicit)
}

// dumpAST implements SPEC_FULL.md supplement #1: serialize every discovered
// file's AST and function spans as round-trippable JSON instead of scanning
// for clones.
func dumpAST(w io.Writer, cfg *config.SimilarityConfig) error {
	useCase, err := app.NewSimilarityDumper()
	if err != nil {
		return err
	}
	return useCase.DumpAST(w, cfg)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
