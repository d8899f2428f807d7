// Package hashtable implements the store's two-tier bucketed,
// append-only, deduplicating hash table for DAG nodes and leaves.
//
// Grounded in shape on scigolib-hdf5's internal/structures/btree.go
// (signature-check-then-scan entry reading), generalized to the
// HashDAG source's bucket/probe scheme in
// _examples/original_source/src/HashDAG/HashDAG.cpp.
package hashtable

import (
	"math/bits"

	"github.com/scigolib/hashdag/internal/layout"
	"github.com/scigolib/hashdag/internal/pool"
	"github.com/scigolib/hashdag/internal/utils"
)

// Table is the bucketed hash table. It owns no storage of its own;
// entries live in the pool it was built against.
type Table struct {
	cfg   layout.Config
	pool  *pool.Pool
	sizes []uint32 // water mark (in words) of live entries per bucket
}

// New builds a Table over p using cfg's bucket geometry.
func New(cfg layout.Config, p *pool.Pool) *Table {
	return &Table{cfg: cfg, pool: p, sizes: make([]uint32, cfg.TotalBucketCount())}
}

func nodeSizeFromWord0(word0 uint32) uint32 {
	return uint32(bits.OnesCount32(word0&0xFF)) + 1
}

func wordsEqual(a, b []uint32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FindOrAddLeaf deduplicates leaf into the leaf-level bucket it hashes
// to, returning its vptr.
func (t *Table) FindOrAddLeaf(leaf uint64) (pool.VPtr, error) {
	b := t.bucketFor(t.cfg.LeafLevel(), HashLeaf(leaf))
	if addr, ok := t.findLeaf(b, leaf); ok {
		return addr, nil
	}
	return t.addLeaf(b, leaf)
}

func (t *Table) findLeaf(b bucket, leaf uint64) (pool.VPtr, bool) {
	base := t.bucketBase(b)
	size := t.sizes[b]
	for pos := uint32(0); pos < size; pos += 2 {
		addr := base + pool.VPtr(pos)
		word := t.pool.Translate(addr)
		if uint64(word[0])|uint64(word[1])<<32 == leaf {
			return addr, true
		}
	}
	return 0, false
}

func (t *Table) addLeaf(b bucket, leaf uint64) (pool.VPtr, error) {
	pos := t.sizes[b]
	if pos+2 > t.bucketCapacity(b) {
		return 0, utils.WrapError("hashtable.addLeaf", utils.ErrOutOfMemory)
	}
	addr := t.bucketBase(b) + pool.VPtr(pos)
	pageSize := t.cfg.PageSize
	if pos%pageSize == 0 {
		page := uint32(addr) / pageSize
		if !t.pool.IsAllocated(page) {
			if err := t.pool.AllocatePage(page); err != nil {
				return 0, utils.WrapError("hashtable.addLeaf", err)
			}
		}
	}
	word := t.pool.Translate(addr)
	word[0] = uint32(leaf)
	word[1] = uint32(leaf >> 32)
	t.sizes[b] = pos + 2
	return addr, nil
}

// FindOrAddNode deduplicates an internal node's word array (mask word
// plus one word per set child bit) into level's bucket. level must be
// strictly below LeafLevel: FindOrAddLeaf is the only valid path at the
// leaf level.
func (t *Table) FindOrAddNode(level uint32, words []uint32) (pool.VPtr, error) {
	if level >= t.cfg.LeafLevel() {
		return 0, utils.WrapError("hashtable.FindOrAddNode", utils.ErrLevelMismatch)
	}
	b := t.bucketFor(level, HashNode(words))
	if addr, ok := t.findNode(b, words); ok {
		return addr, nil
	}
	return t.addNode(b, words)
}

// findNode walks bucket b a page at a time, mirroring the original
// source's probe loop exactly, including its early-out: if a page's
// start position plus the probed node's size would already run past the
// bucket's current water mark, the whole search (not just this page)
// bails out as a miss. That early-out is conservative rather than
// exhaustive, but it is safe: a node can only be found if an identical
// node was inserted earlier, and dedup only ever compares full-length
// equality, so a bucket that could not fit an exact match at this page
// boundary could not have stored one either.
func (t *Table) findNode(b bucket, words []uint32) (pool.VPtr, bool) {
	base := t.bucketBase(b)
	size := t.sizes[b]
	n := uint32(len(words))
	pageSize := t.cfg.PageSize
	for p := uint32(0); p < size; p += pageSize {
		if p+n >= size {
			return 0, false
		}
		entryCount := size - p
		if entryCount > pageSize {
			entryCount = pageSize
		}
		pagePtr := base + pool.VPtr(p)
		var entryLen uint32
		for i := uint32(0); i < entryCount; i += entryLen {
			entry := t.pool.Translate(pagePtr + pool.VPtr(i))
			entryLen = nodeSizeFromWord0(entry[0])
			if entryLen == n && wordsEqual(entry[:n], words) {
				return pagePtr + pool.VPtr(i), true
			}
		}
	}
	return 0, false
}

// addNode appends words to bucket b, skipping ahead to the next page
// boundary rather than splitting a node across two pages.
func (t *Table) addNode(b bucket, words []uint32) (pool.VPtr, error) {
	pageSize := t.cfg.PageSize
	n := uint32(len(words))
	pos := t.sizes[b]
	if pos%pageSize+n > pageSize {
		pos = (pos/pageSize + 1) * pageSize
	}
	if pos+n > t.bucketCapacity(b) {
		return 0, utils.WrapError("hashtable.addNode", utils.ErrOutOfMemory)
	}
	addr := t.bucketBase(b) + pool.VPtr(pos)
	if pos%pageSize == 0 {
		page := uint32(addr) / pageSize
		if !t.pool.IsAllocated(page) {
			if err := t.pool.AllocatePage(page); err != nil {
				return 0, utils.WrapError("hashtable.addNode", err)
			}
		}
	}
	dst := t.pool.Translate(addr)
	copy(dst[:n], words)
	t.sizes[b] = pos + n
	return addr, nil
}
