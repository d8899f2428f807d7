package gpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scigolib/hashdag/internal/forest"
	"github.com/scigolib/hashdag/internal/pool"
)

type fakeStore struct {
	pageTable     []uint32
	pagePool      []uint32
	poolTopPages  uint32
	pageSize      uint32
	maxLevelCount uint32
	leafLevel     uint32
	roots         []forest.Root
}

func (f *fakeStore) PageTable() []uint32        { return f.pageTable }
func (f *fakeStore) PagePool() []uint32         { return f.pagePool }
func (f *fakeStore) PoolTopPages() uint32       { return f.poolTopPages }
func (f *fakeStore) PageSize() uint32           { return f.pageSize }
func (f *fakeStore) MaxLevelCount() uint32      { return f.maxLevelCount }
func (f *fakeStore) LeafLevel() uint32          { return f.leafLevel }
func (f *fakeStore) ForestRoots() []forest.Root { return f.roots }

func TestUploadPacksLiveWordsLittleEndian(t *testing.T) {
	s := &fakeStore{
		pageTable:     []uint32{0, 1, 2},
		pagePool:      []uint32{0x11223344, 0x55667788, 0xDEADBEEF, 0xCAFEBABE},
		poolTopPages:  1,
		pageSize:      2,
		maxLevelCount: 12,
		leafLevel:     10,
		roots: []forest.Root{
			{Offset: [3]int32{1, -2, 3}, Node: pool.VPtr(42)},
		},
	}

	snap, err := Upload(s)
	require.NoError(t, err)

	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11, 0x88, 0x77, 0x66, 0x55}, snap.Pages)
	require.Len(t, snap.PageTable, 12)
	require.Equal(t, uint32(1), snap.TreeCount)
	require.Equal(t, s.pageSize, snap.PageSize)
	require.Equal(t, s.maxLevelCount, snap.MaxLevelCount)
	require.Equal(t, s.leafLevel, snap.LeafLevel)

	require.Len(t, snap.Roots, 16)
	require.Equal(t, uint32(1), leU32(snap.Roots[0:4]))
	require.Equal(t, uint32(42), leU32(snap.Roots[12:16]))
}

func TestUploadErrorsWhenPoolSmallerThanLivePrefix(t *testing.T) {
	s := &fakeStore{
		pageTable:    []uint32{0},
		pagePool:     []uint32{1, 2},
		poolTopPages: 2,
		pageSize:     2,
	}
	_, err := Upload(s)
	require.Error(t, err)
}

func TestUploadWithNoRootsProducesEmptyRootsBuffer(t *testing.T) {
	s := &fakeStore{
		pageTable:    []uint32{0},
		pagePool:     []uint32{},
		poolTopPages: 0,
		pageSize:     2,
	}
	snap, err := Upload(s)
	require.NoError(t, err)
	require.Empty(t, snap.Roots)
	require.Equal(t, uint32(0), snap.TreeCount)
}

func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
