// Package gpu linearizes a Store's page table, pool, and root list into
// flat byte buffers plus scalar metadata, ready to copy into GPU
// buffers. It is intentionally one-way and opaque to the core: nothing
// under internal/ imports it, and it imports only Store's public
// accessors (plus the forest.Root type, which lives in this module's
// internal tree but carries no core logic of its own).
//
// Grounded on scigolib-hdf5's internal/core/datatype_bfloat16.go for
// the little-endian word-packing style.
package gpu

import (
	"encoding/binary"
	"fmt"

	"github.com/scigolib/hashdag/internal/forest"
)

// store is the subset of *hashdag.Store Upload needs. Declaring it
// locally avoids gpu depending on hashdag's full public surface, and
// keeps this package trivially testable against a fake.
type store interface {
	PageTable() []uint32
	PagePool() []uint32
	PoolTopPages() uint32
	PageSize() uint32
	MaxLevelCount() uint32
	LeafLevel() uint32
	ForestRoots() []forest.Root
}

// Snapshot is a GPU-ready linearization of a Store. Each byte slice is
// little-endian uint32 words, laid out for a direct buffer upload.
type Snapshot struct {
	PageTable []byte
	Pages     []byte
	Roots     []byte

	PageSize      uint32
	MaxLevelCount uint32
	LeafLevel     uint32
	PoolTopPages  uint32
	TreeCount     uint32
}

// Upload builds a Snapshot from s. It copies only the live prefix of
// the pool (PoolTopPages*PageSize words), never the full backing array,
// since pages beyond the water mark are unallocated and their contents
// are meaningless.
func Upload(s store) (*Snapshot, error) {
	pageTable := packWords(s.PageTable())

	liveWords := uint64(s.PoolTopPages()) * uint64(s.PageSize())
	pool := s.PagePool()
	if uint64(len(pool)) < liveWords {
		return nil, fmt.Errorf("gpu.Upload: pool has %d words, live prefix needs %d", len(pool), liveWords)
	}
	pages := packWords(pool[:liveWords])

	roots := s.ForestRoots()
	rootsBuf := make([]byte, len(roots)*16)
	for i, r := range roots {
		off := i * 16
		binary.LittleEndian.PutUint32(rootsBuf[off:], uint32(r.Offset[0]))
		binary.LittleEndian.PutUint32(rootsBuf[off+4:], uint32(r.Offset[1]))
		binary.LittleEndian.PutUint32(rootsBuf[off+8:], uint32(r.Offset[2]))
		binary.LittleEndian.PutUint32(rootsBuf[off+12:], uint32(r.Node))
	}

	return &Snapshot{
		PageTable:     pageTable,
		Pages:         pages,
		Roots:         rootsBuf,
		PageSize:      s.PageSize(),
		MaxLevelCount: s.MaxLevelCount(),
		LeafLevel:     s.LeafLevel(),
		PoolTopPages:  s.PoolTopPages(),
		TreeCount:     uint32(len(roots)),
	}, nil
}

func packWords(words []uint32) []byte {
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}
