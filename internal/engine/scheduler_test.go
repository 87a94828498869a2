package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/similarity-go/similarity/domain"
	"github.com/similarity-go/similarity/internal/constants"
	"github.com/similarity-go/similarity/internal/langparser"
)

const schedulerSamplePy = `def add_numbers(a, b):
    total = a + b
    print(total)
    return total


def sum_values(x, y):
    total = x + y
    print(total)
    return total


def unrelated():
    items = []
    for i in range(10):
        items.append(i * 2)
    return items
`

func schedulerUnits(t *testing.T, file string) (domain.Parser, []FunctionUnit) {
	t.Helper()
	adapter := langparser.NewPythonAdapter()
	src := []byte(schedulerSamplePy)
	functions, err := adapter.ExtractFunctions(src, file)
	require.NoError(t, err)

	comparer := NewFunctionComparer(adapter, domain.DefaultTSEDOptions())
	units := PrepareUnits(adapter, comparer, file, src, functions)
	return adapter, units
}

func TestPrepareUnits_KeepsEveryEligibleFunction(t *testing.T) {
	_, units := schedulerUnits(t, "a.py")
	require.Len(t, units, 3)
}

func TestScheduler_WithinFile_FindsNearDuplicatePair(t *testing.T) {
	_, units := schedulerUnits(t, "a.py")
	sched := NewScheduler(domain.DefaultTSEDOptions(), 0.8, 0.3, false)

	results := sched.WithinFile(units)
	require.NotEmpty(t, results)

	top := results[0]
	names := []string{top.Func1.Name, top.Func2.Name}
	assert.Contains(t, names, "add_numbers")
	assert.Contains(t, names, "sum_values")
}

func TestScheduler_CrossFile_OnlyPairsAcrossDistinctFiles(t *testing.T) {
	_, unitsA := schedulerUnits(t, "a.py")
	_, unitsB := schedulerUnits(t, "b.py")

	sched := NewScheduler(domain.DefaultTSEDOptions(), 0.8, 0.3, false)
	results := sched.CrossFile([][]FunctionUnit{unitsA, unitsB})

	require.NotEmpty(t, results)
	for _, r := range results {
		assert.NotEqual(t, r.File1, r.File2)
	}
}

func TestScheduler_Run_RespectsThreshold(t *testing.T) {
	_, units := schedulerUnits(t, "a.py")
	sched := NewScheduler(domain.DefaultTSEDOptions(), 0.999, 0.3, false)

	results := sched.WithinFile(units)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Similarity, 0.999)
	}
}

func TestScheduler_FastPrefilter_StillFindsObviousDuplicates(t *testing.T) {
	_, units := schedulerUnits(t, "a.py")
	sched := NewScheduler(domain.DefaultTSEDOptions(), 0.8, 0.3, true)

	results := sched.WithinFile(units)
	require.NotEmpty(t, results)
}

func TestSizeRatioAdmits_RejectsWhenSizesDifferByMoreThanHalf(t *testing.T) {
	small := domain.NewTreeNode(0, "stmt", "")
	big := domain.NewTreeNode(0, "stmt", "")
	for i := 1; i <= 20; i++ {
		big.AddChild(domain.NewTreeNode(i, "stmt", ""))
	}

	assert.False(t, sizeRatioAdmits(small, big))
}

func TestSizeRatioAdmits_AdmitsSimilarlySizedTrees(t *testing.T) {
	a := domain.NewTreeNode(0, "stmt", "")
	b := domain.NewTreeNode(0, "stmt", "")
	for i := 1; i <= 5; i++ {
		a.AddChild(domain.NewTreeNode(i, "stmt", ""))
		b.AddChild(domain.NewTreeNode(i, "stmt", ""))
	}

	assert.True(t, sizeRatioAdmits(a, b))
}

func TestScheduler_Run_UsesConfiguredThresholdsForCloneType(t *testing.T) {
	_, units := schedulerUnits(t, "a.py")

	sched := NewScheduler(domain.DefaultTSEDOptions(), 0.8, 0.3, false)
	sched.Thresholds = constants.CloneThresholdConfig{
		Type1Threshold: 1.5, // unreachable: similarity is capped at 1.0
		Type2Threshold: 1.2,
		Type3Threshold: 1.1,
		Type4Threshold: 0.8,
	}

	results := sched.WithinFile(units)
	require.NotEmpty(t, results)
	top := results[0]
	assert.Equal(t, domain.Type4Clone, top.Type, "an unreachable Type1 threshold should force Type4 classification instead of the hardcoded default bands")
}

func TestSortResults_OrdersBySimilarityThenLocation(t *testing.T) {
	results := []domain.SimilarityResult{
		{File1: "b.py", Func1: &domain.FunctionDef{StartLine: 1}, File2: "b.py", Func2: &domain.FunctionDef{StartLine: 5}, Similarity: 0.9},
		{File1: "a.py", Func1: &domain.FunctionDef{StartLine: 1}, File2: "a.py", Func2: &domain.FunctionDef{StartLine: 5}, Similarity: 0.95},
	}
	sortResults(results)
	assert.Equal(t, 0.95, results[0].Similarity)
}
