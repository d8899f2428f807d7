package traversal

import (
	"github.com/scigolib/hashdag/internal/dagnode"
	"github.com/scigolib/hashdag/internal/forest"
	"github.com/scigolib/hashdag/internal/layout"
	"github.com/scigolib/hashdag/internal/pool"
)

// cube is an axis-aligned cube in voxel space, tracked during descent
// the same way the original converter tracks its source-format cube:
// pos is its minimum corner, span its edge length.
type cube struct {
	pos  [3]int32
	span int32
}

func (c cube) contains(v [3]int32) bool {
	for i := 0; i < 3; i++ {
		if v[i] < c.pos[i] || v[i] >= c.pos[i]+c.span {
			return false
		}
	}
	return true
}

// split divides c into its 8 children in the fixed octant order the
// child-index bits (cx, cy, cz = (c>>2)&1, (c>>1)&1, c&1) imply.
func (c cube) split() [8]cube {
	half := c.span / 2
	var out [8]cube
	for i := uint8(0); i < 8; i++ {
		cx, cy, cz := dagnode.ChildCoords(i)
		out[i] = cube{
			pos: [3]int32{
				c.pos[0] + int32(cx)*half,
				c.pos[1] + int32(cy)*half,
				c.pos[2] + int32(cz)*half,
			},
			span: half,
		}
	}
	return out
}

// IsActive reports whether voxel is set in any root of roots, checking
// roots in forest order and returning at the first hit.
func IsActive(p *pool.Pool, cfg layout.Config, roots []forest.Root, voxel [3]int32) bool {
	span := int32(cfg.TreeSpan())
	for _, r := range roots {
		root := cube{pos: r.Offset, span: span}
		if !root.contains(voxel) {
			continue
		}
		if descend(p, cfg, r.Node, 0, root, voxel) {
			return true
		}
	}
	return false
}

// descend walks a single DAG from node at level, narrowing c each step
// until it reaches the leaf level, where the leaf's 64-bit occupancy
// word is tested directly. At most one child of any node can contain
// voxel, since the 8 children of a cube split partition it exactly.
func descend(p *pool.Pool, cfg layout.Config, node pool.VPtr, level uint32, c cube, voxel [3]int32) bool {
	if level == cfg.LeafLevel() {
		leaf := dagnode.Leaf64(p.Translate(node))
		local := [3]uint8{
			uint8(voxel[0] - c.pos[0]),
			uint8(voxel[1] - c.pos[1]),
			uint8(voxel[2] - c.pos[2]),
		}
		return dagnode.LeafOccupied(leaf, local[0], local[1], local[2])
	}

	word := p.Translate(node)
	mask := dagnode.ChildMask(word[0])
	children := c.split()
	for ci := uint8(0); ci < 8; ci++ {
		if mask&(1<<ci) == 0 {
			continue
		}
		if !children[ci].contains(voxel) {
			continue
		}
		childPtr := dagnode.ChildPointer(word, mask, ci)
		return descend(p, cfg, pool.VPtr(childPtr), level+1, children[ci], voxel)
	}
	return false
}
