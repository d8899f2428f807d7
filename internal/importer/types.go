// Package importer converts a three-level (32/16/8-branching) sparse
// voxel grid into the store's DAG representation. The source format is
// modeled as a small interface rather than a concrete type so any
// sparse-grid library can be adapted to it with a thin wrapper.
//
// Grounded on _examples/original_source/src/HashDAG/Converter.{hpp,cpp}
// (OpenVDBToDAG / ConstructHashDAG / HandleOpenvdbLevel).
package importer

// Grid is a sparse voxel source: an ordered list of disjoint trees,
// each anchored at a voxel-space offset.
type Grid interface {
	Roots() []GridRoot
}

// GridRoot pairs a source tree's top (32-wide) branch node with the
// voxel-space offset it occupies.
type GridRoot struct {
	Offset [3]int32
	Node   Branch
}

// Branch is an internal node of the source format: an L1 (32-wide) or
// L2 (16-wide) node exposing its child occupancy and children.
type Branch interface {
	// IsChildMaskOn reports whether the child at localIndex (encoded
	// as nodeSize^2*x + nodeSize*y + z, each of x/y/z in
	// [0, nodeSize)) is present.
	IsChildMaskOn(localIndex int) bool
	// IsConstant reports whether every voxel under this node is
	// occupied, letting the importer skip to a single filled subtree
	// without visiting every descendant. The importer treats every
	// constant node as full, so an empty node must report false.
	IsConstant() bool
	// Child returns the node at localIndex, or ok=false if absent.
	Child(localIndex int) (Node, bool)
}

// Leaf is the finest source node: an 8x8x8 block of individual voxel
// occupancy bits, exposed as 64 bytes (512 bits, one per voxel) the way
// OpenVDB exposes a leaf's value mask words.
type Leaf interface {
	ValueMaskBytes() [64]byte
}

// Node is either a Branch (depth 1 or 2) or a Leaf (depth 3); build
// type-asserts it according to the depth it is expected at.
type Node any
