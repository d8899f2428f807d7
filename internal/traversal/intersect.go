package traversal

import "github.com/scigolib/hashdag/internal/dagnode"

// childIntersectionMask computes, for a cube centered at center and a
// ray whose valid parametric range is [tMin, tMax], which of the cube's
// 8 children the ray could plausibly pass through. It never produces a
// false negative but may include children the ray only grazes past an
// axis-aligned plane.
//
// For each axis whose mid-plane the ray crosses within
// (tMin-eps, tMax+eps), both of that axis's halves are plausible
// candidates — crossing the plane means the ray visits one side then
// the other — so the axis itself is never restricted. What narrows the
// result is the *other* two axes: evaluated at the crossing's
// parametric distance, they pin down exactly which two children (one
// per half of the crossed axis) the ray could be heading into.
//
// Grounded on HashDAG::ComputeChildIntersectionMask in
// _examples/original_source/src/HashDAG/HashDAG.cpp (tMid computation,
// epsilon widening, single-octant fallback); the direction-sign gating
// this replaces does not appear there.
func childIntersectionMask(origin, invDir, center [3]float32, tMin, tMax, eps float32) uint8 {
	var tMid [3]float32
	for i := 0; i < 3; i++ {
		tMid[i] = (center[i] - origin[i]) * invDir[i]
		if isNaN(tMid[i]) {
			tMid[i] = fmax32(tMin, tMax)
		}
	}

	var mask uint8
	crossed := false

	for axis := 0; axis < 3; axis++ {
		if tMid[axis] > tMin-eps && tMid[axis] < tMax+eps {
			crossed = true
			mask |= crossAxisMask(axis, origin, invDir, center, tMid[axis])
		}
	}

	if crossed {
		return mask
	}
	return singleOctantMask(origin, invDir, center, (tMin+tMax)*0.5)
}

// crossAxisMask returns the mask of the (up to) two children reachable
// when the ray crosses axis a's mid-plane at parametric distance t: a
// itself ranges over both halves, while the other two axes are fixed by
// where the ray actually is, on the crossing plane, relative to center.
func crossAxisMask(a int, origin, invDir, center [3]float32, t float32) uint8 {
	b, c := otherAxes(a)
	posB := origin[b] + t*rayDir(invDir[b])
	posC := origin[c] + t*rayDir(invDir[c])

	var bitB, bitC uint8
	if posB >= center[b] {
		bitB = 1
	}
	if posC >= center[c] {
		bitC = 1
	}

	var mask uint8
	for aBit := uint8(0); aBit < 2; aBit++ {
		var cx, cy, cz uint8
		switch a {
		case 0:
			cx, cy, cz = aBit, bitB, bitC
		case 1:
			cx, cy, cz = bitB, aBit, bitC
		default:
			cx, cy, cz = bitB, bitC, aBit
		}
		mask |= 1 << dagnode.ChildIndex(cx, cy, cz)
	}
	return mask
}

// otherAxes returns the two axis indices other than a, in (lower, higher) order.
func otherAxes(a int) (int, int) {
	switch a {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// singleOctantMask handles the case where no axis plane falls strictly
// inside (tMin, tMax): the ray's midpoint sample lands in exactly one
// octant, determined by comparing the sample point against center.
func singleOctantMask(origin, invDir, center [3]float32, tMid float32) uint8 {
	var pos [3]float32
	for i := 0; i < 3; i++ {
		pos[i] = origin[i] + tMid*rayDir(invDir[i])
	}
	var c uint8
	if pos[0] >= center[0] {
		c |= 4
	}
	if pos[1] >= center[1] {
		c |= 2
	}
	if pos[2] >= center[2] {
		c |= 1
	}
	return 1 << c
}

// rayDir recovers a direction component from its reciprocal, avoiding a
// division by a near-zero slope.
func rayDir(invDirComponent float32) float32 {
	if invDirComponent == 0 {
		return 0
	}
	return 1 / invDirComponent
}

func isNaN(f float32) bool { return f != f }

func fmax32(a, b float32) float32 {
	if a > b {
		return a
	}
	if isNaN(b) {
		return a
	}
	return b
}
