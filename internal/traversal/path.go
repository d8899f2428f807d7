// Package traversal implements point-membership queries and the
// stack-based ray-casting engine, grounded on
// _examples/original_source/src/HashDAG/HashDAG.cpp's Traverse and
// CastRay.
package traversal

import "math"

// Path accumulates an octree descent as three per-axis bit strings, one
// bit added per level by Descend. Once a path reaches the leaf level it
// is the voxel's coordinate local to its root.
type Path struct {
	X, Y, Z uint32
}

// NullPath is the sentinel returned by a ray cast that found no hit:
// all three components set to their maximum value. This is never a
// reachable coordinate from a real descent (Descend only ever shifts
// in one low bit per level), so it is unambiguous as a miss marker.
func NullPath() Path {
	return Path{X: math.MaxUint32, Y: math.MaxUint32, Z: math.MaxUint32}
}

// IsNull reports whether p is the miss sentinel.
func (p Path) IsNull() bool {
	return p.X == math.MaxUint32 && p.Y == math.MaxUint32 && p.Z == math.MaxUint32
}

// Descend appends child c's octant bits as the new low bit of each axis.
func (p *Path) Descend(c uint8) {
	p.X = p.X<<1 | uint32((c>>2)&1)
	p.Y = p.Y<<1 | uint32((c>>1)&1)
	p.Z = p.Z<<1 | uint32(c&1)
}

// Ascend discards the low `levels` bits of each axis, undoing that many
// Descend calls.
func (p *Path) Ascend(levels uint32) {
	p.X >>= levels
	p.Y >>= levels
	p.Z >>= levels
}

// AsPosition returns the path's coordinate scaled up by the remaining
// levels below it (levelsBelow bits of precision not yet resolved by
// this path), giving a voxel-space position usable as a cube corner.
func (p Path) AsPosition(levelsBelow uint32) [3]int32 {
	return [3]int32{
		int32(p.X << levelsBelow),
		int32(p.Y << levelsBelow),
		int32(p.Z << levelsBelow),
	}
}
