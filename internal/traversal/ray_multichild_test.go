package traversal

import (
	"testing"

	"github.com/scigolib/hashdag/internal/forest"
	"github.com/scigolib/hashdag/internal/hashtable"
	"github.com/scigolib/hashdag/internal/layout"
	"github.com/scigolib/hashdag/internal/pool"
	"github.com/stretchr/testify/require"
)

// buildFarChildFixture builds a root whose only occupied child at the
// top level is index 7 (the "111" octant, diagonally opposite the
// origin corner); index 3 ("011", same y/z half but the near x half)
// is absent. Below that it always descends into child 0, leaving a
// single solid 4x4x4 leaf in the corner of the occupied octant.
//
// This shape only matters for a ray that runs parallel to y and z:
// such a ray crosses the root's x mid-plane while its y/z position
// stays fixed, so both x-halves of that plane are legitimate
// candidates and only the actual child mask (here, index 7 alone)
// decides which one the ray actually visits.
func buildFarChildFixture(t *testing.T) (*pool.Pool, layout.Config, []forest.Root) {
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
	for level > 1 {
		level--
		n, err := table.FindOrAddNode(level, []uint32{0x01, node})
		if err != nil {
			t.Fatalf("FindOrAddNode: %v", err)
		}
		node = uint32(n)
	}

	root, err := table.FindOrAddNode(0, []uint32{0x80, node})
	if err != nil {
		t.Fatalf("FindOrAddNode (root): %v", err)
	}

	var f forest.Forest
	f.Add(pool.VPtr(root), [3]int32{0, 0, 0})
	return p, cfg, f.Roots()
}

// Regression for the cross-axis masking bug in childIntersectionMask:
// with the root's x mid-plane crossed and child index 3 absent, a
// buggy implementation that restricts the crossed axis by direction
// sign instead of leaving both halves open would never consider index
// 7 and report a miss, even though it is the only occupied child and
// lies squarely in the ray's path.
func TestCastRayFindsFarSideChildPastMidplane(t *testing.T) {
	p, cfg, roots := buildFarChildFixture(t)
	half := cfg.TreeSpan() / 2

	origin := [3]float32{-10, float32(half) + 0.5, float32(half) + 0.5}
	dir := [3]float32{1, 0, 0}

	voxel, hit := CastRay(p, cfg, roots, origin, dir, [3]float32{}, nil)
	require.True(t, hit, "ray should reach the solid leaf in the far (index 7) octant")
	require.GreaterOrEqual(t, voxel[0], int32(half))
	require.Less(t, voxel[0], int32(half)+4)
	require.GreaterOrEqual(t, voxel[1], int32(half))
	require.Less(t, voxel[1], int32(half)+4)
	require.GreaterOrEqual(t, voxel[2], int32(half))
	require.Less(t, voxel[2], int32(half)+4)
}

// Same root, but with y/z below the mid-plane instead of above it: the
// ray still crosses the root's x mid-plane, but the two candidate
// children it could be heading into are now indices 0 and 4, neither
// of which is occupied (only index 7 is), so the cast should miss.
func TestCastRayMissesWhenCrossingTowardUnoccupiedChildren(t *testing.T) {
	p, cfg, roots := buildFarChildFixture(t)
	half := cfg.TreeSpan() / 2

	origin := [3]float32{-10, float32(half) - 952, float32(half) - 952}
	dir := [3]float32{1, 0, 0}

	_, hit := CastRay(p, cfg, roots, origin, dir, [3]float32{}, nil)
	require.False(t, hit)
}
