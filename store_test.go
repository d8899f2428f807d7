package hashdag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildSolidCornerStore wires up a Store the same way a real caller
// would: New, then FindOrAddLeaf/FindOrAddNode/AddRoot directly,
// without going through the importer package.
func buildSolidCornerStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(256)
	require.NoError(t, err)

	leaf, err := s.FindOrAddLeaf(^uint64(0))
	require.NoError(t, err)

	node := leaf
	level := s.LeafLevel() - 1
	node, err = s.FindOrAddNode(level, []uint32{0x01, node})
	require.NoError(t, err)
	for level > 0 {
		level--
		node, err = s.FindOrAddNode(level, []uint32{0x01, node})
		require.NoError(t, err)
	}

	require.NoError(t, s.AddRoot(node, [3]int32{0, 0, 0}))
	return s
}

func TestStoreIsActiveAndCastRayAgreeOnSolidCorner(t *testing.T) {
	s := buildSolidCornerStore(t)

	require.True(t, s.IsActive([3]int32{0, 0, 0}))
	require.True(t, s.IsActive([3]int32{3, 3, 3}))
	require.False(t, s.IsActive([3]int32{4, 0, 0}))

	voxel, hit := s.CastRay([3]float32{-10, 0.5, 0.5}, [3]float32{1, 0, 0}, [3]float32{})
	require.True(t, hit)
	require.Equal(t, [3]int32{0, 0, 0}, voxel)

	require.Equal(t, 1, s.RootCount())
}

func TestStoreAddRootRejectsInvalidPointer(t *testing.T) {
	s, err := New(16)
	require.NoError(t, err)
	require.Error(t, s.AddRoot(0xFFFFFFFF, [3]int32{0, 0, 0}))
}

func TestStoreStatsReflectsInsertedEntries(t *testing.T) {
	s := buildSolidCornerStore(t)

	stats := s.Stats()
	require.Len(t, stats.NodeCountByLevel, int(s.MaxLevelCount()-1))

	var total uint64
	for _, c := range stats.NodeCountByLevel {
		total += c
	}
	// One leaf plus one internal node per level from 0 up to LeafLevel-1.
	require.Equal(t, uint64(s.LeafLevel()+1), total)
	require.Greater(t, stats.TopTierFullness, 0.0)
	require.Greater(t, stats.BottomTierFullness, 0.0)
}

func TestStoreStatsOnEmptyStoreHasNoEntries(t *testing.T) {
	s, err := New(16)
	require.NoError(t, err)

	stats := s.Stats()
	var total uint64
	for _, c := range stats.NodeCountByLevel {
		total += c
	}
	require.Zero(t, total)
}
