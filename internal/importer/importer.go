package importer

import (
	"fmt"
	"log"

	"github.com/scigolib/hashdag/internal/utils"
)

// Store is the subset of the top-level Store's API the importer needs.
// Declaring it locally (rather than importing the hashdag package)
// keeps internal/importer free of a dependency on its own caller.
type Store interface {
	FindOrAddLeaf(leaf uint64) (uint32, error)
	FindOrAddNode(level uint32, words []uint32) (uint32, error)
	AddRoot(node uint32, offset [3]int32) error
}

// cube tracks the source format's local index space during descent:
// pos is an (x, y, z) local coordinate, span the node size (32, 16, or
// 8) it is being split within.
type cube struct {
	pos  [3]int
	span int
}

func (c cube) split() [8]cube {
	half := c.span / 2
	var out [8]cube
	for i := 0; i < 8; i++ {
		dx, dy, dz := (i>>2)&1, (i>>1)&1, i&1
		out[i] = cube{pos: [3]int{c.pos[0] + dx*half, c.pos[1] + dy*half, c.pos[2] + dz*half}, span: half}
	}
	return out
}

func localIndex(nodeSize int, pos [3]int) int {
	return nodeSize*nodeSize*pos[0] + nodeSize*pos[1] + pos[2]
}

func nodeSizeForDepth(depth int) int {
	switch depth {
	case 1:
		return 32
	case 2:
		return 16
	default:
		return 0
	}
}

// Import converts every tree in grid into store, adding one DAG root
// per non-empty source tree. An entirely empty source tree is logged
// and skipped rather than added as a root: a forest entry must always
// resolve to real occupancy, so silently adding an empty one would
// misrepresent the scene, but a sparse grid legitimately can contain
// empty trees (e.g. an unused region of a larger world).
func Import(store Store, grid Grid) error {
	for _, root := range grid.Roots() {
		vptr, ok, err := build(store, root.Node, 1, cube{span: 32}, 0, false)
		if err != nil {
			return utils.WrapError(fmt.Sprintf("importer.Import offset=%v", root.Offset), err)
		}
		if !ok {
			log.Printf("importer: skipping empty tree at offset %v", root.Offset)
			continue
		}
		if err := store.AddRoot(vptr, root.Offset); err != nil {
			return utils.WrapError("importer.Import AddRoot", err)
		}
	}
	return nil
}

// build recursively converts one source node into a DAG node, returning
// its vptr and ok=true, or ok=false if the node (and everything under
// it) is entirely empty and so contributes no DAG node at all.
func build(store Store, node Node, depth int, tc cube, dagLevel uint32, full bool) (uint32, bool, error) {
	if depth == 3 {
		leaf, ok := node.(Leaf)
		if !ok {
			return 0, false, utils.ErrCorruptData
		}
		return buildLeaf(store, leaf, dagLevel, full)
	}

	branch, ok := node.(Branch)
	if !ok {
		return 0, false, utils.ErrCorruptData
	}

	nodeSize := nodeSizeForDepth(depth)
	if tc.span == nodeSize && !full && branch.IsConstant() {
		full = true
	}

	children := tc.split()
	var childOn [8]bool
	for i := range childOn {
		childOn[i] = true
	}
	if tc.span == 2 && !full {
		anyOn := false
		for i := 0; i < 8; i++ {
			idx := localIndex(nodeSize, children[i].pos)
			childOn[i] = branch.IsChildMaskOn(idx)
			anyOn = anyOn || childOn[i]
		}
		if !anyOn {
			return 0, false, nil
		}
	}

	words := []uint32{0}
	childCount := 0
	for i := 0; i < 8; i++ {
		if !childOn[i] {
			continue
		}
		var (
			result uint32
			got    bool
			err    error
		)
		if tc.span == 2 {
			idx := localIndex(nodeSize, children[i].pos)
			childNode, present := branch.Child(idx)
			if !present {
				return 0, false, fmt.Errorf("%w: no child at local index %d", utils.ErrCorruptData, idx)
			}
			result, got, err = build(store, childNode, depth+1, cube{span: nodeSize / 2}, dagLevel+1, full)
		} else {
			result, got, err = build(store, branch, depth, children[i], dagLevel+1, full)
		}
		if err != nil {
			return 0, false, err
		}
		if got {
			words[0] |= 1 << uint(i)
			words = append(words, result)
			childCount++
		}
	}
	if childCount == 0 {
		return 0, false, nil
	}
	vptr, err := store.FindOrAddNode(dagLevel, words)
	return vptr, true, err
}

// buildLeaf handles depth 3: an 8x8x8 source leaf splits directly into
// 8 suboctants, each becoming (if non-empty) one DAG leaf referenced by
// the internal node this call produces.
func buildLeaf(store Store, leaf Leaf, dagLevel uint32, full bool) (uint32, bool, error) {
	mask := leaf.ValueMaskBytes()
	words := []uint32{0}
	childCount := 0
	for i := 0; i < 8; i++ {
		var bits uint64
		if full {
			bits = ^uint64(0)
		} else {
			bits = remapSuboctant(mask, i)
		}
		if bits == 0 {
			continue
		}
		vptr, err := store.FindOrAddLeaf(bits)
		if err != nil {
			return 0, false, err
		}
		words[0] |= 1 << uint(i)
		words = append(words, vptr)
		childCount++
	}
	if childCount == 0 {
		return 0, false, nil
	}
	vptr, err := store.FindOrAddNode(dagLevel, words)
	return vptr, true, err
}
