package domain

import (
	"fmt"

	"github.com/similarity-go/similarity/internal/constants"
)

// APTEDOptions holds the three unit costs the tree edit-distance kernel uses
// (spec §3). Costs are by convention and any non-negative reals are allowed.
type APTEDOptions struct {
	RenameCost    float64
	DeleteCost    float64
	InsertCost    float64
	CompareValues bool
}

// DefaultAPTEDOptions matches the defaults named in spec §3 and §6.
func DefaultAPTEDOptions() APTEDOptions {
	return APTEDOptions{RenameCost: 0.3, DeleteCost: 1.0, InsertCost: 1.0, CompareValues: false}
}

// TSEDOptions wraps APTEDOptions with the function-comparer-level knobs from
// spec §3/§4.3/§4.4.
type TSEDOptions struct {
	APTED        APTEDOptions
	MinLines     int
	MinTokens    int // 0 means unset
	SizePenalty  bool
	SkipTest     bool
}

// DefaultTSEDOptions matches the CLI defaults in spec §6.
func DefaultTSEDOptions() TSEDOptions {
	return TSEDOptions{
		APTED:       DefaultAPTEDOptions(),
		MinLines:    3,
		MinTokens:   0,
		SizePenalty: true,
		SkipTest:    false,
	}
}

// CloneType classifies a SimilarityResult by similarity band, per SPEC_FULL.md
// §4 supplement #6. Purely additive: it never changes the TSED score itself.
type CloneType int

const (
	NotAClone CloneType = iota
	Type1Clone
	Type2Clone
	Type3Clone
	Type4Clone
)

func (c CloneType) String() string {
	switch c {
	case Type1Clone:
		return "Type-1 (Identical)"
	case Type2Clone:
		return "Type-2 (Renamed)"
	case Type3Clone:
		return "Type-3 (Near-Miss)"
	case Type4Clone:
		return "Type-4 (Semantic)"
	default:
		return "Not a clone"
	}
}

// ClassifyCloneType buckets a similarity score using thresholds
// (SimilarityConfig.Thresholds, which defaults to
// constants.DefaultCloneThresholds and is not read from .similarity.toml),
// falling back to NotAClone below userThreshold.
func ClassifyCloneType(similarity, userThreshold float64, thresholds constants.CloneThresholdConfig) CloneType {
	switch {
	case similarity >= thresholds.Type1Threshold:
		return Type1Clone
	case similarity >= thresholds.Type2Threshold:
		return Type2Clone
	case similarity >= thresholds.Type3Threshold:
		return Type3Clone
	case similarity >= userThreshold:
		return Type4Clone
	default:
		return NotAClone
	}
}

// SimilarityResult is the (func1, func2, similarity) triple of spec §3,
// carrying enough location/content metadata to render the §6 output format.
type SimilarityResult struct {
	File1 string
	File2 string
	Func1 *FunctionDef
	Func2 *FunctionDef

	Similarity float64
	Distance   float64
	Type       CloneType
}

func (r *SimilarityResult) String() string {
	return fmt.Sprintf("%s:%d-%d %s <-> %s:%d-%d %s (%.2f%%)",
		r.File1, r.Func1.StartLine, r.Func1.EndLine, r.Func1.Name,
		r.File2, r.Func2.StartLine, r.Func2.EndLine, r.Func2.Name,
		r.Similarity*100)
}

// Priority implements SPEC_FULL.md §4 supplement #4: similarity weighted by
// the average size of the two functions, used only for --sort-by priority.
func (r *SimilarityResult) Priority(size1, size2 int) float64 {
	avg := float64(size1+size2) / 2.0
	return r.Similarity * avg
}
