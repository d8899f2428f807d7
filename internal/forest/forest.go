// Package forest tracks the ordered list of DAG roots a store holds,
// each anchored at a world offset; offsets are not checked for
// uniqueness or overlap. Grounded structurally on
// scigolib-hdf5's internal/writer/allocator.go block-list bookkeeping,
// generalized from byte ranges to (offset, vptr) pairs.
package forest

import "github.com/scigolib/hashdag/internal/pool"

// Root anchors one DAG at a signed voxel-space offset. Forest order is
// significant: it is the tie-break for rays that could hit more than
// one root.
type Root struct {
	Offset [3]int32
	Node   pool.VPtr
}

// Forest is the ordered list of a store's roots. The zero value is an
// empty forest ready to use.
type Forest struct {
	roots []Root
}

// Add appends a new root. Overlap between roots is never checked: that
// would require an O(n) geometric comparison against every existing
// root on every insert, which the store's single-writer, append-only
// construction model has no need for. Overlapping roots are simply
// undefined as to which one a point-membership or ray query prefers
// beyond "whichever was added first" (see Roots).
func (f *Forest) Add(node pool.VPtr, offset [3]int32) {
	f.roots = append(f.roots, Root{Offset: offset, Node: node})
}

// Roots returns the roots in insertion order. Callers that need
// first-hit-in-forest-order semantics (point membership, ray casting)
// iterate this slice in order and stop at the first match.
func (f *Forest) Roots() []Root { return f.roots }
