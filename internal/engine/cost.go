package engine

import "github.com/similarity-go/similarity/domain"

// CostModel supplies the three edit operation costs the APTED kernel needs.
// CostModel is a small interface so alternative cost schedules can be
// swapped in without touching the APTED kernel.
type CostModel interface {
	Insert(n *domain.TreeNode) float64
	Delete(n *domain.TreeNode) float64
	Rename(a, b *domain.TreeNode) float64
}

// DefaultCostModel charges the uniform unit costs from domain.APTEDOptions.
// Rename is zero when the two nodes are EqualAsLabels, RenameCost otherwise.
type DefaultCostModel struct {
	Opts domain.APTEDOptions
}

func NewDefaultCostModel(opts domain.APTEDOptions) *DefaultCostModel {
	return &DefaultCostModel{Opts: opts}
}

func (m *DefaultCostModel) Insert(n *domain.TreeNode) float64 {
	return m.Opts.InsertCost
}

func (m *DefaultCostModel) Delete(n *domain.TreeNode) float64 {
	return m.Opts.DeleteCost
}

func (m *DefaultCostModel) Rename(a, b *domain.TreeNode) float64 {
	if domain.EqualAsLabels(a, b, m.Opts.CompareValues) {
		return 0
	}
	return m.Opts.RenameCost
}
