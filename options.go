package hashdag

import (
	"fmt"

	"github.com/scigolib/hashdag/internal/layout"
)

// Option configures a Store's tuning constants at construction time.
// Grounded on the functional-options pattern in scigolib-hdf5's
// rebalancing_options.go (FileWriterOption func(*FileWriter) error).
type Option func(*layout.Config) error

func isPowerOfTwo(n uint32) bool { return n != 0 && n&(n-1) == 0 }

// WithPageSize overrides the pool's page size, in words. Must be a
// power of two.
func WithPageSize(words uint32) Option {
	return func(c *layout.Config) error {
		if !isPowerOfTwo(words) {
			return fmt.Errorf("hashdag.WithPageSize: %d is not a power of two", words)
		}
		c.PageSize = words
		return nil
	}
}

// WithMaxLevelCount overrides the DAG's total depth (root through leaf
// suboctants). Must leave room for at least one leaf level.
func WithMaxLevelCount(levels uint32) Option {
	return func(c *layout.Config) error {
		if levels < 3 {
			return fmt.Errorf("hashdag.WithMaxLevelCount: %d leaves no room for a leaf level", levels)
		}
		diff := c.MaxLevelCount - c.BottomLevelRank
		c.MaxLevelCount = levels
		c.TopLevelRank = diff
		c.BottomLevelRank = levels - diff
		return nil
	}
}

// WithLevelSplit overrides how many of the DAG's levels belong to the
// top (larger-bucket) tier versus the bottom tier. topRank+bottomRank
// must equal the configured MaxLevelCount.
func WithLevelSplit(topRank, bottomRank uint32) Option {
	return func(c *layout.Config) error {
		if topRank+bottomRank != c.MaxLevelCount {
			return fmt.Errorf("hashdag.WithLevelSplit: %d+%d != max level count %d", topRank, bottomRank, c.MaxLevelCount)
		}
		c.TopLevelRank = topRank
		c.BottomLevelRank = bottomRank
		return nil
	}
}

// WithBucketCounts overrides the number of buckets per level in each
// tier. Both must be powers of two.
func WithBucketCounts(topCount, bottomCount uint32) Option {
	return func(c *layout.Config) error {
		if !isPowerOfTwo(topCount) || !isPowerOfTwo(bottomCount) {
			return fmt.Errorf("hashdag.WithBucketCounts: counts must be powers of two, got %d, %d", topCount, bottomCount)
		}
		c.TopLevelBucketCount = topCount
		c.BottomLevelBucketCount = bottomCount
		return nil
	}
}

// WithBucketSizes overrides each tier's per-bucket word budget. Both
// must be multiples of the configured page size; New's call to
// Config.Validate catches a mismatch (the page size may itself still
// change via a later WithPageSize option, so checking here would be
// premature).
func WithBucketSizes(topSize, bottomSize uint32) Option {
	return func(c *layout.Config) error {
		c.TopLevelBucketSize = topSize
		c.BottomLevelBucketSize = bottomSize
		return nil
	}
}

// WithRayEpsilon overrides the epsilon CastRay uses when deciding
// whether an axis-plane crossing falls strictly inside a node's
// parametric interval. Must not be negative.
func WithRayEpsilon(eps float32) Option {
	return func(c *layout.Config) error {
		if eps < 0 {
			return fmt.Errorf("hashdag.WithRayEpsilon: %f must not be negative", eps)
		}
		c.RayEpsilon = eps
		return nil
	}
}
