// Package report formats similarity results for the CLI output contract of
// spec §6: a header line, one colorized block per pair, and a sentinel
// when nothing is found.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/similarity-go/similarity/domain"
)

// SortMode picks the ordering applied before printing, beyond the
// scheduler's own deterministic tie-break order.
type SortMode string

const (
	SortBySimilarity SortMode = "similarity"
	SortByPriority   SortMode = "priority"
)

// Printer renders a ranked-pair report to w, matching spec §6's stable
// output format: a header line, one block per pair (two location lines plus
// a similarity line, optionally followed by source bodies), and a sentinel
// when no pairs were found.
type Printer struct {
	W        io.Writer
	Language string
	Print    bool // include function source bodies (--print)
	Color    bool
	SortMode SortMode
}

func NewPrinter(w io.Writer, language string) *Printer {
	return &Printer{W: w, Language: language, SortMode: SortBySimilarity, Color: true}
}

// Sources supplies the original file content for each path, used only when
// Print is enabled.
type Sources map[string][]byte

func (p *Printer) Header() {
	fmt.Fprintf(p.W, "Analyzing %s code similarity...\n\n", p.Language)
}

func (p *Printer) NoDuplicates() {
	fmt.Fprintln(p.W, "No duplicate functions found!")
}

// Report prints every result in results, after applying SortMode.
func (p *Printer) Report(results []domain.SimilarityResult, sources Sources) {
	if len(results) == 0 {
		p.NoDuplicates()
		return
	}

	ordered := make([]domain.SimilarityResult, len(results))
	copy(ordered, results)
	if p.SortMode == SortByPriority {
		sort.SliceStable(ordered, func(i, j int) bool {
			pi := ordered[i].Priority(ordered[i].Func1.LineCount(), ordered[i].Func2.LineCount())
			pj := ordered[j].Priority(ordered[j].Func1.LineCount(), ordered[j].Func2.LineCount())
			return pi > pj
		})
	}

	for _, r := range ordered {
		p.block(r, sources)
	}
}

func (p *Printer) block(r domain.SimilarityResult, sources Sources) {
	bold := color.New(color.Bold)
	similarityColor := color.New(color.FgGreen)
	if r.Similarity < 0.9 {
		similarityColor = color.New(color.FgYellow)
	}

	loc1 := formatLocation(r.File1, r.Func1)
	loc2 := formatLocation(r.File2, r.Func2)
	if p.Color {
		fmt.Fprintln(p.W, bold.Sprint(loc1))
		fmt.Fprintln(p.W, bold.Sprint(loc2))
		fmt.Fprintln(p.W, similarityColor.Sprintf("Similarity: %.2f%%", r.Similarity*100))
	} else {
		fmt.Fprintln(p.W, loc1)
		fmt.Fprintln(p.W, loc2)
		fmt.Fprintf(p.W, "Similarity: %.2f%%\n", r.Similarity*100)
	}

	if p.Print {
		p.showBody(r.File1, r.Func1, sources)
		p.showBody(r.File2, r.Func2, sources)
	}
	fmt.Fprintln(p.W)
}

// formatLocation renders "path:start-end name".
func formatLocation(file string, fn *domain.FunctionDef) string {
	return fmt.Sprintf("%s:%d-%d %s", file, fn.StartLine, fn.EndLine, fn.Name)
}

func (p *Printer) showBody(file string, fn *domain.FunctionDef, sources Sources) {
	src, ok := sources[file]
	if !ok {
		return
	}
	lines := strings.Split(string(src), "\n")
	start, end := fn.StartLine-1, fn.EndLine
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	for _, line := range lines[start:end] {
		fmt.Fprintln(p.W, "  "+line)
	}
	fmt.Fprintln(p.W)
}
