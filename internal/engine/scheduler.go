package engine

import (
	"runtime"
	"sort"
	"sync"

	"github.com/similarity-go/similarity/domain"
	"github.com/similarity-go/similarity/internal/constants"
)

// minSizeRatioForComparison is the size-based early filter: a pair whose
// subtree sizes differ by more than 50% is rejected before the fingerprints
// are even compared, since no amount of structural overlap can close that
// large a size gap into a near-duplicate under TSED's own size penalty.
const minSizeRatioForComparison = 0.5

// sizeRatioAdmits rejects a pair outright when the smaller tree's size is
// less than minSizeRatioForComparison of the larger tree's size.
func sizeRatioAdmits(a, b *domain.TreeNode) bool {
	sizeA, sizeB := a.SubtreeSize(), b.SubtreeSize()
	if sizeA == 0 || sizeB == 0 {
		return true
	}
	smaller, larger := sizeA, sizeB
	if larger < smaller {
		smaller, larger = larger, smaller
	}
	return float64(smaller)/float64(larger) >= minSizeRatioForComparison
}

// FunctionUnit is one eligible function already parsed into its body tree
// and fingerprinted, ready for pairwise comparison. Units are immutable
// after PrepareUnits builds them, so they may be shared freely across
// worker goroutines (spec §5).
type FunctionUnit struct {
	File string
	Def  *domain.FunctionDef
	Tree *domain.TreeNode
	FP   *domain.Fingerprint
}

// PrepareUnits extracts, parses and fingerprints every eligible function in
// one file. Functions failing the comparer's own eligibility filter, or
// whose body fails to parse, are silently dropped (spec §7: malformed spans
// are dropped and logged, parse failures skip the file's affected unit but
// not the whole batch).
func PrepareUnits(parser domain.Parser, comparer *FunctionComparer, file string, source []byte, functions []*domain.FunctionDef) []FunctionUnit {
	units := make([]FunctionUnit, 0, len(functions))
	for _, fn := range functions {
		if !comparer.Eligible(fn) {
			continue
		}
		body := extractLines(source, fn.BodyStartLine, fn.BodyEndLine)
		tree, err := parser.Parse(body, file)
		if err != nil {
			continue
		}
		if comparer.opts.MinTokens > 0 && tree.SubtreeSize() < comparer.opts.MinTokens {
			continue
		}
		units = append(units, FunctionUnit{
			File: file,
			Def:  fn,
			Tree: tree,
			FP:   BuildFingerprint(tree),
		})
	}
	return units
}

// Scheduler drives the within-file and cross-file comparison passes of
// spec §4.6, fanning pair comparisons out over a semaphore-bounded worker
// pool.
type Scheduler struct {
	TSEDOpts             domain.TSEDOptions
	Threshold            float64
	FingerprintThreshold float64
	FastPrefilter        bool
	Concurrency          int

	// Thresholds buckets a result's CloneType once it clears Threshold
	// (SPEC_FULL.md supplement #6). Defaults to constants.DefaultCloneThresholds;
	// service.SimilarityService sets it from SimilarityConfig.Thresholds.
	Thresholds constants.CloneThresholdConfig
}

func NewScheduler(tsedOpts domain.TSEDOptions, threshold, fingerprintThreshold float64, fastPrefilter bool) *Scheduler {
	return &Scheduler{
		TSEDOpts:             tsedOpts,
		Threshold:            threshold,
		FingerprintThreshold: fingerprintThreshold,
		FastPrefilter:        fastPrefilter,
		Concurrency:          runtime.GOMAXPROCS(0),
		Thresholds:           constants.DefaultCloneThresholds(),
	}
}

type pairTask struct {
	a, b FunctionUnit
}

// WithinFile enumerates unordered pairs of distinct functions in a single
// file's units.
func (s *Scheduler) WithinFile(units []FunctionUnit) []domain.SimilarityResult {
	var tasks []pairTask
	for i := 0; i < len(units); i++ {
		for j := i + 1; j < len(units); j++ {
			tasks = append(tasks, pairTask{units[i], units[j]})
		}
	}
	return s.run(tasks)
}

// CrossFile enumerates unordered pairs across distinct files' units.
func (s *Scheduler) CrossFile(unitsByFile [][]FunctionUnit) []domain.SimilarityResult {
	var flat []FunctionUnit
	for _, us := range unitsByFile {
		flat = append(flat, us...)
	}
	var tasks []pairTask
	for i := 0; i < len(flat); i++ {
		for j := i + 1; j < len(flat); j++ {
			if flat[i].File == flat[j].File {
				continue
			}
			tasks = append(tasks, pairTask{flat[i], flat[j]})
		}
	}
	return s.run(tasks)
}

// run fans tasks out over a semaphore-bounded worker pool, collects results
// from every goroutine, then sorts once at the end so the final order is
// deterministic regardless of scheduling (spec §5).
func (s *Scheduler) run(tasks []pairTask) []domain.SimilarityResult {
	concurrency := s.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var results []domain.SimilarityResult

	for _, task := range tasks {
		task := task
		if !sizeRatioAdmits(task.a.Tree, task.b.Tree) {
			continue
		}
		if s.FastPrefilter && !Admits(task.a.FP, task.b.FP, s.FingerprintThreshold) {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			tsed := NewTSED(s.TSEDOpts)
			sim, dist := tsed.Score(task.a.Tree, task.b.Tree)
			if sim < s.Threshold {
				return
			}

			file1, func1, file2, func2 := task.a.File, task.a.Def, task.b.File, task.b.Def
			if file1 > file2 || (file1 == file2 && func1.StartLine > func2.StartLine) {
				file1, func1, file2, func2 = file2, func2, file1, func1
			}

			result := domain.SimilarityResult{
				File1:      file1,
				File2:      file2,
				Func1:      func1,
				Func2:      func2,
				Similarity: sim,
				Distance:   dist,
				Type:       domain.ClassifyCloneType(sim, s.Threshold, s.Thresholds),
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sortResults(results)
	return results
}

// sortResults implements spec §4.6's deterministic ordering:
// (-similarity, file1, start_line1, file2, start_line2).
func sortResults(results []domain.SimilarityResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.File1 != b.File1 {
			return a.File1 < b.File1
		}
		if a.Func1.StartLine != b.Func1.StartLine {
			return a.Func1.StartLine < b.Func1.StartLine
		}
		if a.File2 != b.File2 {
			return a.File2 < b.File2
		}
		return a.Func2.StartLine < b.Func2.StartLine
	})
}
