package traversal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/hashdag/internal/forest"
	"github.com/scigolib/hashdag/internal/pool"
)

func TestIsActiveInsideSolidCorner(t *testing.T) {
	p, cfg, roots := buildSingleVoxelChain(t)

	require.True(t, IsActive(p, cfg, roots, [3]int32{0, 0, 0}))
	require.True(t, IsActive(p, cfg, roots, [3]int32{3, 3, 3}))
}

func TestIsActiveOutsideOccupiedOctant(t *testing.T) {
	p, cfg, roots := buildSingleVoxelChain(t)

	require.False(t, IsActive(p, cfg, roots, [3]int32{4, 0, 0}))
	require.False(t, IsActive(p, cfg, roots, [3]int32{0, 4, 0}))
	require.False(t, IsActive(p, cfg, roots, [3]int32{0, 0, 4}))
}

func TestIsActiveOutsideAllRoots(t *testing.T) {
	p, cfg, roots := buildSingleVoxelChain(t)

	require.False(t, IsActive(p, cfg, roots, [3]int32{-1, 0, 0}))
}

func TestIsActiveNoRootsAlwaysFalse(t *testing.T) {
	p, cfg, _ := buildSingleVoxelChain(t)
	var empty []forest.Root
	require.False(t, IsActive(p, cfg, empty, [3]int32{0, 0, 0}))
}

func TestIsActiveUsesFirstMatchingRootInOrder(t *testing.T) {
	p, cfg, roots := buildSingleVoxelChain(t)

	// A decoy root that doesn't overlap the voxel under test, placed
	// before the real root, must not prevent the real hit from being
	// found further down the forest.
	decoy := forest.Root{Offset: [3]int32{100000, 0, 0}, Node: pool.VPtr(roots[0].Node)}
	all := append([]forest.Root{decoy}, roots...)
	require.True(t, IsActive(p, cfg, all, [3]int32{0, 0, 0}))
}
