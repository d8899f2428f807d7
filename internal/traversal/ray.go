package traversal

import (
	"math"
	"math/rand"

	"github.com/scigolib/hashdag/internal/dagnode"
	"github.com/scigolib/hashdag/internal/forest"
	"github.com/scigolib/hashdag/internal/layout"
	"github.com/scigolib/hashdag/internal/pool"
)

// frame is one level of the ray-casting stack: the node being explored,
// its child mask, the remaining (unvisited) children that could still
// intersect the ray, and the cube center/half-span needed to compute
// its children's intersection masks.
type frame struct {
	nodePtr   pool.VPtr
	childMask uint8
	visitMask uint8
	center    [3]float32
	halfSpan  float32
}

func signed(bit uint8) float32 {
	if bit != 0 {
		return 1
	}
	return -1
}

// slabIntersect clips a ray against an axis-aligned box, returning the
// entry/exit parametric distances and whether the ray hits the box at
// all in front of its origin.
func slabIntersect(origin, invDir, lo, hi [3]float32) (tMin, tMax float32, ok bool) {
	tMin = float32(math.Inf(-1))
	tMax = float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		t0 := (lo[i] - origin[i]) * invDir[i]
		t1 := (hi[i] - origin[i]) * invDir[i]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
	}
	return tMin, tMax, tMax >= tMin && tMax >= 0
}

// CastRay finds the first voxel (across roots, in forest order) the ray
// from origin in direction dir hits. perturbation jitters dir by up to
// +/-0.5*perturbation per axis before casting, the standard trick for
// avoiding systematic misses along axis-aligned rays; pass the zero
// vector to cast deterministically. trace may be nil.
func CastRay(p *pool.Pool, cfg layout.Config, roots []forest.Root, origin, dir, perturbation [3]float32, trace *Trace) ([3]int32, bool) {
	jittered := dir
	for i := 0; i < 3; i++ {
		if perturbation[i] != 0 {
			jittered[i] += (rand.Float32() - 0.5) * perturbation[i]
		}
	}
	var invDir [3]float32
	for i := 0; i < 3; i++ {
		invDir[i] = 1 / jittered[i]
	}
	var rayChildOrder uint8
	if jittered[0] < 0 {
		rayChildOrder |= 4
	}
	if jittered[1] < 0 {
		rayChildOrder |= 2
	}
	if jittered[2] < 0 {
		rayChildOrder |= 1
	}

	span := float32(cfg.TreeSpan())
	for _, r := range roots {
		if trace != nil {
			trace.RootVisits++
		}
		lo := [3]float32{float32(r.Offset[0]), float32(r.Offset[1]), float32(r.Offset[2])}
		hi := [3]float32{lo[0] + span, lo[1] + span, lo[2] + span}
		tMin, tMax, ok := slabIntersect(origin, invDir, lo, hi)
		if !ok {
			continue
		}
		if tMin < 0 {
			tMin = 0
		}
		if voxel, hit := castThroughRoot(p, cfg, r, origin, invDir, rayChildOrder, tMin, tMax, trace); hit {
			return voxel, true
		}
	}
	return [3]int32{}, false
}

// castThroughRoot runs the stack-based octree march for one root. It
// mirrors HashDAG::CastRay's state machine: descend towards the next
// unvisited, ray-order-nearest child; when a node runs out of
// candidate children, ascend until one does have candidates left, or
// the whole tree is exhausted (miss).
func castThroughRoot(p *pool.Pool, cfg layout.Config, r forest.Root, origin, invDir [3]float32, rayChildOrder uint8, tMin, tMax float32, trace *Trace) ([3]int32, bool) {
	maxLevel := cfg.MaxLevelCount
	leafLevel := cfg.LeafLevel()
	stack := make([]frame, maxLevel+1)

	span := float32(cfg.TreeSpan())
	stack[0].center = [3]float32{
		float32(r.Offset[0]) + span/2,
		float32(r.Offset[1]) + span/2,
		float32(r.Offset[2]) + span/2,
	}
	stack[0].halfSpan = span / 2

	rootWord := p.Translate(r.Node)
	stack[0].nodePtr = r.Node
	stack[0].childMask = dagnode.ChildMask(rootWord[0])
	stack[0].visitMask = stack[0].childMask & childIntersectionMask(origin, invDir, stack[0].center, tMin, tMax, cfg.RayEpsilon)

	var path Path
	var cachedLeaf uint64
	level := uint32(0)

	for {
		formerLevel := level
		for level > 0 && stack[level].visitMask == 0 {
			level--
		}
		if level == 0 && stack[0].visitMask == 0 {
			return [3]int32{}, false
		}
		path.Ascend(formerLevel - level)

		var nextChild uint8 = 8
		for c := uint8(0); c < 8; c++ {
			candidate := c ^ rayChildOrder
			if stack[level].visitMask&(1<<candidate) != 0 {
				nextChild = candidate
				break
			}
		}
		stack[level].visitMask &^= 1 << nextChild
		path.Descend(nextChild)
		level++

		if level == maxLevel {
			voxel := [3]int32{
				r.Offset[0] + int32(path.X),
				r.Offset[1] + int32(path.Y),
				r.Offset[2] + int32(path.Z),
			}
			return voxel, true
		}

		cx, cy, cz := dagnode.ChildCoords(nextChild)
		parent := stack[level-1]
		childHalf := parent.halfSpan / 2
		childCenter := [3]float32{
			parent.center[0] + signed(cx)*childHalf,
			parent.center[1] + signed(cy)*childHalf,
			parent.center[2] + signed(cz)*childHalf,
		}
		stack[level].center = childCenter
		stack[level].halfSpan = childHalf

		switch {
		case level <= leafLevel-1:
			childPtr := pool.VPtr(dagnode.ChildPointer(p.Translate(parent.nodePtr), parent.childMask, nextChild))
			stack[level].nodePtr = childPtr
			word := p.Translate(childPtr)
			stack[level].childMask = dagnode.ChildMask(word[0])
			stack[level].visitMask = stack[level].childMask & childIntersectionMask(origin, invDir, childCenter, tMin, tMax, cfg.RayEpsilon)
			if trace != nil {
				trace.NodeVisits++
			}
		case level == leafLevel:
			leafPtr := pool.VPtr(dagnode.ChildPointer(p.Translate(parent.nodePtr), parent.childMask, nextChild))
			cachedLeaf = dagnode.Leaf64(p.Translate(leafPtr))
			stack[level].nodePtr = leafPtr
			stack[level].childMask = dagnode.FirstLeafMask(cachedLeaf)
			stack[level].visitMask = stack[level].childMask & childIntersectionMask(origin, invDir, childCenter, tMin, tMax, cfg.RayEpsilon)
			if trace != nil {
				trace.LeafVisits++
			}
		default:
			stack[level].childMask = dagnode.SecondLeafMask(cachedLeaf, nextChild)
			stack[level].visitMask = stack[level].childMask & childIntersectionMask(origin, invDir, childCenter, tMin, tMax, cfg.RayEpsilon)
		}
	}
}
