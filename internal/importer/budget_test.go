package importer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/hashdag/internal/layout"
)

func TestPageBudgetMatchesSourceFormula(t *testing.T) {
	cfg := layout.DefaultConfig()
	got := PageBudget(cfg)

	var want uint64
	for i := uint32(0); i <= cfg.LeafLevel(); i++ {
		n := uint64(1) << i
		nodeCount := n * n
		maxNodeSize := uint64(9)
		if i == cfg.LeafLevel() {
			maxNodeSize = 2
		}
		words := nodeCount * maxNodeSize
		want += (words + uint64(cfg.PageSize) - 1) / uint64(cfg.PageSize)
	}
	require.Equal(t, want, got)
}

func TestConservativeBudgetExceedsOptimisticBudget(t *testing.T) {
	cfg := layout.DefaultConfig()
	require.Greater(t, ConservativePageBudget(cfg), PageBudget(cfg))
}

func TestConservativeBudgetClampedToTotalPageCount(t *testing.T) {
	cfg := layout.DefaultConfig()
	require.LessOrEqual(t, ConservativePageBudget(cfg), uint64(cfg.TotalPageCount()))
}

func TestPreflightMultipliesPerTreeBudget(t *testing.T) {
	cfg := layout.DefaultConfig()
	require.Equal(t, PageBudget(cfg)*5, Preflight(cfg, 5, false))
	require.Equal(t, ConservativePageBudget(cfg)*5, Preflight(cfg, 5, true))
}

func TestPreflightZeroTreesIsZero(t *testing.T) {
	cfg := layout.DefaultConfig()
	require.Equal(t, uint64(0), Preflight(cfg, 0, true))
}
