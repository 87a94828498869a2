package domain

import (
	"testing"

	"github.com/similarity-go/similarity/internal/constants"
)

func TestClassifyCloneType_UsesProvidedThresholds(t *testing.T) {
	custom := constants.CloneThresholdConfig{
		Type1Threshold: 0.99,
		Type2Threshold: 0.9,
		Type3Threshold: 0.7,
		Type4Threshold: 0.6,
	}

	if got := ClassifyCloneType(0.995, 0.5, custom); got != Type1Clone {
		t.Errorf("expected Type1Clone, got %v", got)
	}
	// 0.95 clears the default Type1 threshold but not this custom, tighter one.
	if got := ClassifyCloneType(0.95, 0.5, custom); got != Type2Clone {
		t.Errorf("expected Type2Clone under custom thresholds, got %v", got)
	}
	if got := ClassifyCloneType(0.65, 0.5, custom); got != Type4Clone {
		t.Errorf("expected Type4Clone, got %v", got)
	}
	if got := ClassifyCloneType(0.4, 0.5, custom); got != NotAClone {
		t.Errorf("expected NotAClone below userThreshold, got %v", got)
	}
}

func TestClassifyCloneType_DefaultThresholdsMatchStandardBands(t *testing.T) {
	defaults := constants.DefaultCloneThresholds()
	if got := ClassifyCloneType(0.96, 0.85, defaults); got != Type1Clone {
		t.Errorf("expected Type1Clone, got %v", got)
	}
	if got := ClassifyCloneType(0.86, 0.85, defaults); got != Type2Clone {
		t.Errorf("expected Type2Clone, got %v", got)
	}
	if got := ClassifyCloneType(0.81, 0.85, defaults); got != Type3Clone {
		t.Errorf("expected Type3Clone, got %v", got)
	}
}
