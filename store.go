// Package hashdag is a paged, bucketed, deduplicating hash table over a
// voxel octree DAG: a forest of roots, point-membership queries, and a
// stack-based ray-casting engine, built to be GPU-uploadable (see the
// sibling gpu package) without ever depending on a GPU API itself.
//
// Grounded on _examples/original_source/src/HashDAG (HashDAG.hpp/.cpp,
// Converter.hpp/.cpp) for semantics, and on scigolib-hdf5's Go idiom:
// functional options, wrapped sentinel errors, and testify-based
// tests.
package hashdag

import (
	"github.com/scigolib/hashdag/internal/forest"
	"github.com/scigolib/hashdag/internal/hashtable"
	"github.com/scigolib/hashdag/internal/layout"
	"github.com/scigolib/hashdag/internal/pool"
	"github.com/scigolib/hashdag/internal/traversal"
	"github.com/scigolib/hashdag/internal/utils"
)

// Store is a single DAG forest: its pool, hash table, and root list.
// A Store is not safe for concurrent construction (FindOrAddLeaf,
// FindOrAddNode, AddRoot) from multiple goroutines, but read queries
// (IsActive, CastRay, Stats) are safe to call concurrently with each
// other once construction has finished.
type Store struct {
	cfg    layout.Config
	pool   *pool.Pool
	table  *hashtable.Table
	forest *forest.Forest
}

// New builds a Store with room for poolSizePages physical pool pages,
// applying opts over the default tuning constants.
func New(poolSizePages uint32, opts ...Option) (*Store, error) {
	cfg := layout.DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, utils.WrapError("hashdag.New", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, utils.WrapError("hashdag.New", err)
	}
	p := pool.New(cfg, poolSizePages)
	return &Store{
		cfg:    cfg,
		pool:   p,
		table:  hashtable.New(cfg, p),
		forest: &forest.Forest{},
	}, nil
}

// Destroy releases the store's backing arrays. A destroyed Store must
// not be used again.
func (s *Store) Destroy() {
	s.pool = nil
	s.table = nil
	s.forest = nil
}

// FindOrAddLeaf deduplicates a 64-bit (4x4x4) leaf occupancy word,
// returning its virtual address.
func (s *Store) FindOrAddLeaf(leaf uint64) (uint32, error) {
	vptr, err := s.table.FindOrAddLeaf(leaf)
	return uint32(vptr), utils.WrapError("Store.FindOrAddLeaf", err)
}

// FindOrAddNode deduplicates an internal node's word array (child mask
// in word 0, one child vptr per set bit) at level, which must be below
// the leaf level.
func (s *Store) FindOrAddNode(level uint32, words []uint32) (uint32, error) {
	vptr, err := s.table.FindOrAddNode(level, words)
	return uint32(vptr), utils.WrapError("Store.FindOrAddNode", err)
}

// AddRoot appends a new root to the forest, anchored at offset.
// Overlap with existing roots is never validated; see internal/forest.
func (s *Store) AddRoot(node uint32, offset [3]int32) error {
	if node == layout.InvalidPointer {
		return utils.WrapError("Store.AddRoot", utils.ErrInvalidPointer)
	}
	s.forest.Add(pool.VPtr(node), offset)
	return nil
}

// IsActive reports whether voxel is set in any root, in forest order.
func (s *Store) IsActive(voxel [3]int32) bool {
	return traversal.IsActive(s.pool, s.cfg, s.forest.Roots(), voxel)
}

// CastRay finds the first voxel a ray from origin in direction dir
// hits, across all roots in forest order. perturbation jitters dir by
// up to +/-0.5*perturbation per axis; pass the zero vector for a
// deterministic cast.
func (s *Store) CastRay(origin, dir, perturbation [3]float32) ([3]int32, bool) {
	return traversal.CastRay(s.pool, s.cfg, s.forest.Roots(), origin, dir, perturbation, nil)
}

// CastRayTrace is CastRay with an instrumentation sink attached.
func (s *Store) CastRayTrace(origin, dir, perturbation [3]float32, trace *traversal.Trace) ([3]int32, bool) {
	return traversal.CastRay(s.pool, s.cfg, s.forest.Roots(), origin, dir, perturbation, trace)
}

// RootCount returns the number of roots in the forest.
func (s *Store) RootCount() int { return len(s.forest.Roots()) }

// Stats returns a snapshot of the hash table's occupancy: per-level
// entry counts, per-tier bucket fullness, and empty-bucket count.
func (s *Store) Stats() hashtable.Stats { return s.table.Stats() }

// PageSize returns the configured page size, in words.
func (s *Store) PageSize() uint32 { return s.cfg.PageSize }

// MaxLevelCount returns the configured DAG depth.
func (s *Store) MaxLevelCount() uint32 { return s.cfg.MaxLevelCount }

// LeafLevel returns the DAG level at which leaves live.
func (s *Store) LeafLevel() uint32 { return s.cfg.LeafLevel() }

// TreeSpan returns the voxel edge length addressable by one root.
func (s *Store) TreeSpan() uint32 { return s.cfg.TreeSpan() }

// PageTable exposes the raw virtual-to-physical page mapping. Intended
// for the gpu package and diagnostics, not for general use.
func (s *Store) PageTable() []uint32 { return s.pool.PageTable() }

// PagePool exposes the raw backing word array. Intended for the gpu
// package and diagnostics, not for general use.
func (s *Store) PagePool() []uint32 { return s.pool.Physical() }

// PoolTopPages returns the number of physical pages currently in use.
func (s *Store) PoolTopPages() uint32 { return s.pool.PoolTop() }

// ForestRoots exposes the root list. Intended for the gpu package and
// diagnostics, not for general use.
func (s *Store) ForestRoots() []forest.Root { return s.forest.Roots() }
