// Package demogrid is a tiny in-memory implementation of
// importer.Grid/Branch/Leaf: a single solid axis-aligned cube, used by
// the importer's tests and by cmd/hashdag-dump to exercise the import
// path without needing a real third-party sparse-grid library on hand.
package demogrid

import "github.com/scigolib/hashdag/internal/importer"

// SolidCube builds a Grid with a single root, fully occupied over
// [0, edge) on every axis, anchored at offset.
func SolidCube(offset [3]int32, edge int32) *Grid {
	return &Grid{offset: offset, edge: edge}
}

// Grid is a single solid cube of edge length edge voxels.
type Grid struct {
	offset [3]int32
	edge   int32
}

func (g *Grid) Roots() []importer.GridRoot {
	return []importer.GridRoot{{
		Offset: g.offset,
		Node:   &branch{edge: g.edge, unit: 128, size: 32},
	}}
}

// branch is an L1 (size 32, unit 128 world voxels) or L2 (size 16, unit
// 8 world voxels) node: origin is its world-space corner relative to
// the root offset, unit*size its world-space extent per axis.
type branch struct {
	origin [3]int32
	unit   int32
	size   int32
	edge   int32
}

func boxFullyOutside(lo, hi [3]int32, edge int32) bool {
	return lo[0] >= edge || lo[1] >= edge || lo[2] >= edge
}

func boxFullyInside(lo, hi [3]int32, edge int32) bool {
	return hi[0] <= edge && hi[1] <= edge && hi[2] <= edge
}

func (b *branch) box() (lo, hi [3]int32) {
	span := b.unit * b.size
	lo = b.origin
	hi = [3]int32{lo[0] + span, lo[1] + span, lo[2] + span}
	return
}

// IsConstant reports whether this branch's whole extent lies inside the
// cube, letting the importer skip straight to a single filled subtree
// without visiting its children. A branch wholly outside the cube
// reports false; its children are all off instead.
func (b *branch) IsConstant() bool {
	lo, hi := b.box()
	return boxFullyInside(lo, hi, b.edge)
}

func (b *branch) decode(localIndex int) (x, y, z int32) {
	n := int(b.size)
	ix := localIndex / (n * n)
	rem := localIndex % (n * n)
	iy := rem / n
	iz := rem % n
	return int32(ix), int32(iy), int32(iz)
}

func (b *branch) childBox(x, y, z int32) (lo, hi [3]int32) {
	lo = [3]int32{b.origin[0] + x*b.unit, b.origin[1] + y*b.unit, b.origin[2] + z*b.unit}
	hi = [3]int32{lo[0] + b.unit, lo[1] + b.unit, lo[2] + b.unit}
	return
}

func (b *branch) IsChildMaskOn(localIndex int) bool {
	x, y, z := b.decode(localIndex)
	lo, hi := b.childBox(x, y, z)
	return !boxFullyOutside(lo, hi, b.edge)
}

func (b *branch) Child(localIndex int) (importer.Node, bool) {
	if !b.IsChildMaskOn(localIndex) {
		return nil, false
	}
	x, y, z := b.decode(localIndex)
	lo, _ := b.childBox(x, y, z)
	if b.size == 32 {
		return &branch{origin: lo, unit: 8, size: 16, edge: b.edge}, true
	}
	return &leaf{origin: lo, edge: b.edge}, true
}

// leaf is an 8x8x8 block, origin its world-space corner.
type leaf struct {
	origin [3]int32
	edge   int32
}

func (l *leaf) ValueMaskBytes() [64]byte {
	var mask [64]byte
	for x := int32(0); x < 8; x++ {
		for y := int32(0); y < 8; y++ {
			for z := int32(0); z < 8; z++ {
				wx, wy, wz := l.origin[0]+x, l.origin[1]+y, l.origin[2]+z
				if wx >= l.edge || wy >= l.edge || wz >= l.edge {
					continue
				}
				bitIndex := x*64 + y*8 + z
				mask[bitIndex/8] |= 1 << uint(bitIndex%8)
			}
		}
	}
	return mask
}
