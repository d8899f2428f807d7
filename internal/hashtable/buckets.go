package hashtable

import "github.com/scigolib/hashdag/internal/pool"

// bucket identifies one bucket, a bucket's index running across both
// tiers: [0, TotalTopBucketCount) are top-tier buckets, the rest are
// bottom-tier.
type bucket uint32

// bucketFor selects the bucket holding level's entries for the given
// hash: a power-of-two mask over the hash picks a bucket within the
// level, then a per-tier level offset separates levels from each other.
func (t *Table) bucketFor(level uint32, hash uint32) bucket {
	if level < t.cfg.TopLevelRank {
		b := hash&(t.cfg.TopLevelBucketCount-1) + level*t.cfg.TopLevelBucketCount
		return bucket(b)
	}
	bottomLevel := level - t.cfg.TopLevelRank
	b := hash&(t.cfg.BottomLevelBucketCount-1) + bottomLevel*t.cfg.BottomLevelBucketCount
	return bucket(t.cfg.TotalTopBucketCount() + b)
}

// isTop reports whether b lives in the top tier.
func (t *Table) isTop(b bucket) bool { return uint32(b) < t.cfg.TotalTopBucketCount() }

// bucketCapacity is the configured word budget for bucket b's tier.
func (t *Table) bucketCapacity(b bucket) uint32 {
	if t.isTop(b) {
		return t.cfg.TopLevelBucketSize
	}
	return t.cfg.BottomLevelBucketSize
}

// bucketBase is the vptr of bucket b's first word.
func (t *Table) bucketBase(b bucket) pool.VPtr {
	top := t.cfg.TotalTopBucketCount()
	if uint32(b) < top {
		return pool.VPtr(uint32(b) * t.cfg.TopLevelBucketSize)
	}
	topWords := top * t.cfg.TopLevelBucketSize
	return pool.VPtr(topWords + (uint32(b)-top)*t.cfg.BottomLevelBucketSize)
}
