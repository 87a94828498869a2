package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/similarity-go/similarity/domain"
)

func sampleResult(name1, name2 string, start1, lines1, start2, lines2 int, sim float64) domain.SimilarityResult {
	return domain.SimilarityResult{
		File1:      "a.py",
		File2:      "b.py",
		Func1:      &domain.FunctionDef{Name: name1, StartLine: start1, EndLine: start1 + lines1},
		Func2:      &domain.FunctionDef{Name: name2, StartLine: start2, EndLine: start2 + lines2},
		Similarity: sim,
	}
}

func TestPrinter_NoDuplicates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "python")
	p.Report(nil, nil)
	assert.Contains(t, buf.String(), "No duplicate functions found!")
}

func TestPrinter_Header(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "python")
	p.Header()
	assert.Contains(t, buf.String(), "python")
}

func TestPrinter_Report_PrintsLocationAndSimilarity(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "python")
	p.Color = false
	results := []domain.SimilarityResult{sampleResult("foo", "bar", 1, 5, 20, 5, 0.92)}

	p.Report(results, nil)

	out := buf.String()
	assert.Contains(t, out, "a.py:1-6 foo")
	assert.Contains(t, out, "b.py:20-25 bar")
	assert.Contains(t, out, "Similarity: 92.00%")
}

func TestPrinter_Report_SortByPriorityOrdersByWeightedScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "python")
	p.Color = false
	p.SortMode = SortByPriority

	small := sampleResult("small1", "small2", 1, 2, 10, 2, 0.99)
	large := sampleResult("large1", "large2", 1, 200, 300, 200, 0.80)

	p.Report([]domain.SimilarityResult{small, large}, nil)

	out := buf.String()
	firstIdx := strings.Index(out, "large1")
	secondIdx := strings.Index(out, "small1")
	assert.True(t, firstIdx >= 0 && secondIdx >= 0 && firstIdx < secondIdx,
		"expected the higher-priority (larger) pair to print first, got:\n%s", out)
}

func TestPrinter_Report_PrintIncludesSourceBody(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, "python")
	p.Color = false
	p.Print = true

	result := sampleResult("foo", "bar", 1, 2, 1, 2, 0.9)
	result.File1 = "a.py"
	result.File2 = "a.py"
	sources := Sources{
		"a.py": []byte("line1\nline2\nline3\n"),
	}

	p.Report([]domain.SimilarityResult{result}, sources)

	out := buf.String()
	assert.Contains(t, out, "line1")
	assert.Contains(t, out, "line2")
}
