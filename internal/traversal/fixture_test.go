package traversal

import (
	"testing"

	"github.com/scigolib/hashdag/internal/forest"
	"github.com/scigolib/hashdag/internal/hashtable"
	"github.com/scigolib/hashdag/internal/layout"
	"github.com/scigolib/hashdag/internal/pool"
)

// buildSingleVoxelChain builds a minimal DAG holding exactly one solid
// 4x4x4 leaf, reached by always descending into child 0 (the "000"
// octant) at every level, anchored as the single root in a fresh
// forest at offset {0,0,0}. The only voxels inside the whole 4096^3
// tree that are set are (0,0,0)..(3,3,3).
func buildSingleVoxelChain(t *testing.T) (*pool.Pool, layout.Config, []forest.Root) {
	t.Helper()
	cfg := layout.DefaultConfig()
	p := pool.New(cfg, 256)
	table := hashtable.New(cfg, p)

	leafPtr, err := table.FindOrAddLeaf(^uint64(0))
	if err != nil {
		t.Fatalf("FindOrAddLeaf: %v", err)
	}

	node := uint32(leafPtr)
	level := cfg.LeafLevel() - 1
	vptr, err := table.FindOrAddNode(level, []uint32{0x01, node})
	if err != nil {
		t.Fatalf("FindOrAddNode: %v", err)
	}
	node = uint32(vptr)
	for level > 0 {
		level--
		n, err := table.FindOrAddNode(level, []uint32{0x01, node})
		if err != nil {
			t.Fatalf("FindOrAddNode: %v", err)
		}
		node = uint32(n)
	}

	var f forest.Forest
	f.Add(pool.VPtr(node), [3]int32{0, 0, 0})
	return p, cfg, f.Roots()
}
