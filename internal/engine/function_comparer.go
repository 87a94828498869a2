package engine

import (
	"strings"

	"github.com/similarity-go/similarity/domain"
)

// testNamePrefixes captures the name-based test conventions spec §4.4 names:
// Python's test_ prefix and Go's Test*/Benchmark* convention. Annotation-based
// detection is left to the parser adapters, which surface it via
// FunctionDef.IsTest.
var testNamePrefixes = []string{"test_", "Test", "Benchmark"}

// looksLikeTestName is a name-only fallback for adapters that do not set
// IsTest directly.
func looksLikeTestName(name string) bool {
	for _, p := range testNamePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// FunctionComparer extracts function body source by line range, parses it,
// and scores the pair with TSED, honoring the min_lines/min_tokens/skip_test
// filters of spec §4.4.
type FunctionComparer struct {
	parser domain.Parser
	opts   domain.TSEDOptions
}

func NewFunctionComparer(parser domain.Parser, opts domain.TSEDOptions) *FunctionComparer {
	return &FunctionComparer{parser: parser, opts: opts}
}

// Eligible reports whether a single function definition passes the
// min_lines/skip_test filters on its own, before any pairing is attempted.
func (c *FunctionComparer) Eligible(fn *domain.FunctionDef) bool {
	if !fn.Valid() {
		return false
	}
	if fn.LineCount() < c.opts.MinLines {
		return false
	}
	if c.opts.SkipTest && (fn.IsTest || looksLikeTestName(fn.Name)) {
		return false
	}
	return true
}

// Compare extracts the body of fn1 from src1 and fn2 from src2 by line
// range, parses both, and returns the TSED similarity. If either body fails
// min_tokens after parsing, ok is false and no score is produced.
func (c *FunctionComparer) Compare(src1 []byte, fn1 *domain.FunctionDef, file1 string, src2 []byte, fn2 *domain.FunctionDef, file2 string) (score float64, ok bool, err error) {
	body1 := extractLines(src1, fn1.BodyStartLine, fn1.BodyEndLine)
	body2 := extractLines(src2, fn2.BodyStartLine, fn2.BodyEndLine)

	tree1, err := c.parser.Parse(body1, file1)
	if err != nil {
		return 0, false, domain.NewParseErrorFor(file1, err)
	}
	tree2, err := c.parser.Parse(body2, file2)
	if err != nil {
		return 0, false, domain.NewParseErrorFor(file2, err)
	}

	if c.opts.MinTokens > 0 {
		if tree1.SubtreeSize() < c.opts.MinTokens || tree2.SubtreeSize() < c.opts.MinTokens {
			return 0, false, nil
		}
	}

	tsed := NewTSED(c.opts)
	sim, _ := tsed.Score(tree1, tree2)
	return sim, true, nil
}

// extractLines returns the inclusive [start,end] 1-based line range of src.
// Out-of-range bounds are clamped rather than erroring, matching spec §7's
// "offending function is dropped" policy being the caller's responsibility,
// not this helper's.
func extractLines(src []byte, start, end int) []byte {
	lines := strings.Split(string(src), "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1] // a trailing newline ends the last line, it does not start a new one
	}
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end || start > len(lines) {
		return nil
	}
	return []byte(strings.Join(lines[start-1:end], "\n"))
}
