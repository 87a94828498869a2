package config

import "testing"

func TestMergeFloat64_UsesOverrideOnlyWhenFlagSet(t *testing.T) {
	flags := map[string]bool{"threshold": true}
	if got := MergeFloat64(0.85, 0.9, "threshold", flags); got != 0.9 {
		t.Errorf("expected override 0.9, got %v", got)
	}
	if got := MergeFloat64(0.85, 0.9, "rename-cost", flags); got != 0.85 {
		t.Errorf("expected base 0.85 for unset flag, got %v", got)
	}
}

func TestMergeBool_UsesOverrideOnlyWhenFlagSet(t *testing.T) {
	flags := map[string]bool{"skip-test": true}
	if got := MergeBool(false, true, "skip-test", flags); got != true {
		t.Errorf("expected override true, got %v", got)
	}
	if got := MergeBool(false, true, "print", flags); got != false {
		t.Errorf("expected base false for unset flag, got %v", got)
	}
}

func TestMergeStringSlice_IgnoresEmptyOverride(t *testing.T) {
	flags := map[string]bool{"extensions": true}
	base := []string{"py"}
	if got := MergeStringSlice(base, nil, "extensions", flags); len(got) != 1 || got[0] != "py" {
		t.Errorf("expected base preserved when override empty, got %v", got)
	}
}
