// Package layout holds the tuning constants shared by the pool,
// hashtable, dagnode, traversal and importer packages. It has no
// dependencies on the rest of the module so any package may import it
// without risking an import cycle.
package layout

import "fmt"

// InvalidPointer is the sentinel virtual address meaning "no node here".
// Address 0 cannot serve: it is the first word of bucket 0 and can hold
// a real node. The all-ones value lies past the end of the default
// configuration's virtual address space.
const InvalidPointer uint32 = 0xFFFFFFFF

// Config carries the store's fixed tuning constants: page geometry,
// DAG depth, bucket layout, and the ray-cast epsilon. The original
// source bakes these in as compile-time constants; Go has no
// equivalent of constexpr template parameters that a caller can
// override cleanly, so they become a validated runtime value instead,
// built by Store.New from DefaultConfig plus any Option overrides.
type Config struct {
	PageSize      uint32
	MaxLevelCount uint32

	TopLevelRank    uint32
	BottomLevelRank uint32

	TopLevelBucketCount uint32
	TopLevelBucketSize  uint32

	BottomLevelBucketCount uint32
	BottomLevelBucketSize  uint32

	RayEpsilon float32
}

// DefaultConfig returns the store's default tuning constants.
func DefaultConfig() Config {
	return Config{
		PageSize:               512,
		MaxLevelCount:          12,
		TopLevelRank:           6,
		BottomLevelRank:        6,
		TopLevelBucketCount:    1024,
		TopLevelBucketSize:     1024,
		BottomLevelBucketCount: 65536,
		BottomLevelBucketSize:  4096,
		RayEpsilon:             1e-4,
	}
}

// LeafLevel is the DAG level at which leaves (not internal nodes) live.
func (c Config) LeafLevel() uint32 { return c.MaxLevelCount - 2 }

// TreeSpan is the voxel edge length addressable by one root.
func (c Config) TreeSpan() uint32 { return 1 << c.MaxLevelCount }

// TotalTopBucketCount is the bucket count across all top-tier levels.
func (c Config) TotalTopBucketCount() uint32 {
	return c.TopLevelRank * c.TopLevelBucketCount
}

// TotalBottomBucketCount is the bucket count across all bottom-tier levels.
func (c Config) TotalBottomBucketCount() uint32 {
	return c.BottomLevelRank * c.BottomLevelBucketCount
}

// TotalBucketCount is the bucket count across both tiers.
func (c Config) TotalBucketCount() uint32 {
	return c.TotalTopBucketCount() + c.TotalBottomBucketCount()
}

// TotalPageCount is the size of the page table: the virtual address
// space spans exactly enough pages to hold every bucket at its
// configured size.
func (c Config) TotalPageCount() uint32 {
	topWords := c.TotalTopBucketCount() * c.TopLevelBucketSize
	bottomWords := c.TotalBottomBucketCount() * c.BottomLevelBucketSize
	return (topWords + bottomWords) / c.PageSize
}

func isPowerOfTwo(n uint32) bool { return n != 0 && n&(n-1) == 0 }

// Validate rejects configurations that would break bucket addressing
// (power-of-two bucket counts, a level split that accounts for every
// level, a page size that evenly divides both bucket sizes).
func (c Config) Validate() error {
	switch {
	case !isPowerOfTwo(c.PageSize):
		return fmt.Errorf("layout: page size %d is not a power of two", c.PageSize)
	case !isPowerOfTwo(c.TopLevelBucketCount):
		return fmt.Errorf("layout: top-level bucket count %d is not a power of two", c.TopLevelBucketCount)
	case !isPowerOfTwo(c.BottomLevelBucketCount):
		return fmt.Errorf("layout: bottom-level bucket count %d is not a power of two", c.BottomLevelBucketCount)
	case c.TopLevelRank+c.BottomLevelRank != c.MaxLevelCount:
		return fmt.Errorf("layout: top rank %d + bottom rank %d must equal max level count %d",
			c.TopLevelRank, c.BottomLevelRank, c.MaxLevelCount)
	case c.MaxLevelCount < 3:
		return fmt.Errorf("layout: max level count %d leaves no room for a leaf level", c.MaxLevelCount)
	case c.TopLevelBucketSize%c.PageSize != 0:
		return fmt.Errorf("layout: top-level bucket size %d is not a multiple of page size %d", c.TopLevelBucketSize, c.PageSize)
	case c.BottomLevelBucketSize%c.PageSize != 0:
		return fmt.Errorf("layout: bottom-level bucket size %d is not a multiple of page size %d", c.BottomLevelBucketSize, c.PageSize)
	case c.RayEpsilon < 0:
		return fmt.Errorf("layout: ray epsilon %f must not be negative", c.RayEpsilon)
	}
	return nil
}
