// Package pool implements the store's virtual paged pool: a bounded
// physical backing array addressed indirectly through a page table, so
// that hash-table buckets can be handed out virtual addresses long
// before (or instead of) the physical page backing them exists.
//
// Grounded on scigolib-hdf5's internal/writer/allocator.go bump
// allocator, generalized from byte offsets to page-granular virtual
// addresses and a fixed physical ceiling.
package pool

import (
	"fmt"

	"github.com/scigolib/hashdag/internal/layout"
	"github.com/scigolib/hashdag/internal/utils"
)

// VPtr is a 32-bit virtual address into the pool: page*PageSize+offset.
type VPtr uint32

// Invalid is the sentinel VPtr meaning "nothing here".
const Invalid VPtr = VPtr(layout.InvalidPointer)

// Pool is a fixed-size physical word array fronted by a page table that
// maps virtual pages to physical page slots. Physical pages are handed
// out in order (a monotonic bump allocator over page slots, not bytes)
// and never reclaimed; that mirrors the store's append-only,
// single-writer construction model.
type Pool struct {
	cfg       layout.Config
	physical  []uint32
	pageTable []uint32 // virtual page -> physical page slot, 0 = unallocated
	poolTop   uint32   // next free physical page slot
	poolSize  uint32   // physical capacity in pages
}

// New allocates a pool with room for poolSizePages physical pages and a
// page table sized to address the hash table's full virtual space, as
// derived from cfg. Physical page slot 0 is reserved so that the
// page-table zero value can mean "unallocated".
func New(cfg layout.Config, poolSizePages uint32) *Pool {
	return &Pool{
		cfg:       cfg,
		physical:  make([]uint32, (poolSizePages+1)*cfg.PageSize),
		pageTable: make([]uint32, cfg.TotalPageCount()),
		poolTop:   1,
		poolSize:  poolSizePages + 1,
	}
}

// IsAllocated reports whether virtual page vpage has physical backing.
func (p *Pool) IsAllocated(vpage uint32) bool {
	return p.pageTable[vpage] != 0
}

// AllocatePage binds virtual page vpage to the next free physical page
// slot, returning ErrOutOfMemory (wrapped) if the physical pool is
// exhausted.
func (p *Pool) AllocatePage(vpage uint32) error {
	if p.poolTop >= p.poolSize {
		return utils.WrapError("AllocatePage", utils.ErrOutOfMemory)
	}
	p.pageTable[vpage] = p.poolTop
	p.poolTop++
	return nil
}

// Translate returns the physical word slice starting at addr. Every
// node or leaf ever written through Translate fits entirely within one
// page (the hash table's append-only insertion enforces this), so
// callers may safely index past the end of a single entry without
// crossing into a different page's unrelated words.
func (p *Pool) Translate(addr VPtr) []uint32 {
	page := uint32(addr) / p.cfg.PageSize
	offset := uint32(addr) % p.cfg.PageSize
	phys := p.pageTable[page]
	base := phys*p.cfg.PageSize + offset
	return p.physical[base:]
}

// PoolTop is the number of physical pages currently allocated,
// including the reserved slot 0.
func (p *Pool) PoolTop() uint32 { return p.poolTop }

// PageTable exposes the raw virtual-to-physical mapping, for stats and
// GPU export.
func (p *Pool) PageTable() []uint32 { return p.pageTable }

// Physical exposes the raw backing array, for stats and GPU export.
func (p *Pool) Physical() []uint32 { return p.physical }

// PageSize returns the configured page size in words.
func (p *Pool) PageSize() uint32 { return p.cfg.PageSize }

// String renders a short human-readable summary, useful in log lines.
func (p *Pool) String() string {
	return fmt.Sprintf("pool(top=%d/%d pages, pageSize=%d)", p.poolTop, p.poolSize, p.cfg.PageSize)
}
