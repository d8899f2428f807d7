package importer

import "github.com/scigolib/hashdag/internal/layout"

// PageBudget estimates, in pages, how much pool space a single tree's
// worth of import might need, using the node-count formula
// (nodeCount = 2^i * 2^i) the original converter's
// GetTreePageRequirement uses. That formula underestimates: a fully
// populated level i can have up to 8^i nodes, not (2^i)^2, so this
// preserves the source's own (known-optimistic) estimate rather than
// silently correcting it — callers who need a safe bound should use
// ConservativePageBudget instead.
func PageBudget(cfg layout.Config) uint64 {
	return estimatePages(cfg, func(i uint32) uint64 {
		n := uint64(1) << i
		return n * n
	})
}

// ConservativePageBudget bounds the same estimate using the tree's true
// worst-case branching factor (8^i nodes at level i), clamped to the
// table's actual virtual address space so a deep level count cannot
// overflow the estimate past what the table could ever hold.
func ConservativePageBudget(cfg layout.Config) uint64 {
	total := estimatePages(cfg, func(i uint32) uint64 {
		return uint64(1) << (3 * i)
	})
	if cap := uint64(cfg.TotalPageCount()); total > cap {
		return cap
	}
	return total
}

func estimatePages(cfg layout.Config, nodeCountAtLevel func(uint32) uint64) uint64 {
	var total uint64
	for i := uint32(0); i <= cfg.LeafLevel(); i++ {
		nodeCount := nodeCountAtLevel(i)
		maxNodeSize := uint64(9)
		if i == cfg.LeafLevel() {
			maxNodeSize = 2
		}
		words := nodeCount * maxNodeSize
		pages := (words + uint64(cfg.PageSize) - 1) / uint64(cfg.PageSize)
		total += pages
	}
	return total
}

// Preflight multiplies a single tree's estimate by treeCount trees. Use
// conservative=false only when matching the original source's estimate
// is itself the goal (e.g. a regression test against it); production
// callers should pass true.
func Preflight(cfg layout.Config, treeCount int, conservative bool) uint64 {
	var perTree uint64
	if conservative {
		perTree = ConservativePageBudget(cfg)
	} else {
		perTree = PageBudget(cfg)
	}
	return perTree * uint64(treeCount)
}
