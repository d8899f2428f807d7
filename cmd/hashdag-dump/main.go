// Command hashdag-dump builds a small solid-cube demo store, runs the
// point and ray queries given on the command line against it, and
// prints the store's occupancy stats. It exists as an inspection tool,
// not a file format reader: persistence is out of scope, so there is
// no HashDAG file to open.
//
// Grounded on scigolib-hdf5's cmd/dump_hdf5/main.go: flag-driven
// options, log.Fatalf on setup failure, log.Printf for progress.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/scigolib/hashdag"
	"github.com/scigolib/hashdag/internal/demogrid"
	"github.com/scigolib/hashdag/internal/importer"
)

func main() {
	poolPages := flag.Uint64("pool-pages", 4096, "physical pool size, in pages")
	cubeEdge := flag.Int64("demo-cube", 64, "edge length, in voxels, of the solid demo cube to import")
	voxelFlag := flag.String("voxel", "", "x,y,z voxel to query with IsActive")
	rayFlag := flag.String("ray", "", "ox,oy,oz,dx,dy,dz ray to query with CastRay")
	flag.Parse()

	store, err := hashdag.New(uint32(*poolPages))
	if err != nil {
		log.Fatalf("hashdag.New: %v", err)
	}

	grid := demogrid.SolidCube([3]int32{0, 0, 0}, int32(*cubeEdge))
	if err := importer.Import(store, grid); err != nil {
		log.Fatalf("importer.Import: %v", err)
	}

	if *voxelFlag != "" {
		var x, y, z int32
		if _, err := fmt.Sscanf(*voxelFlag, "%d,%d,%d", &x, &y, &z); err != nil {
			log.Fatalf("-voxel: %v", err)
		}
		log.Printf("IsActive(%d,%d,%d) = %v", x, y, z, store.IsActive([3]int32{x, y, z}))
	}

	if *rayFlag != "" {
		var ox, oy, oz, dx, dy, dz float64
		if _, err := fmt.Sscanf(*rayFlag, "%f,%f,%f,%f,%f,%f", &ox, &oy, &oz, &dx, &dy, &dz); err != nil {
			log.Fatalf("-ray: %v", err)
		}
		origin := [3]float32{float32(ox), float32(oy), float32(oz)}
		dir := [3]float32{float32(dx), float32(dy), float32(dz)}
		voxel, hit := store.CastRay(origin, dir, [3]float32{})
		log.Printf("CastRay(%v, %v) = %v, hit=%v", origin, dir, voxel, hit)
	}

	fmt.Printf("roots: %d\n", store.RootCount())
	fmt.Printf("pool pages in use: %d\n", store.PoolTopPages())

	stats := store.Stats()
	fmt.Printf("empty buckets: %d\n", stats.EmptyBuckets)
	fmt.Printf("top tier fullness: %.4f\n", stats.TopTierFullness)
	fmt.Printf("bottom tier fullness: %.4f\n", stats.BottomTierFullness)
	for level, count := range stats.NodeCountByLevel {
		if count == 0 {
			continue
		}
		fmt.Printf("level %d: %d entries\n", level, count)
	}
}
