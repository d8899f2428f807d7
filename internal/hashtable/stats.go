package hashtable

import "github.com/scigolib/hashdag/internal/pool"

// Stats is a snapshot of the table's occupancy, exposed (non-normative
// but useful for tuning and tests) through the top-level Store.Stats.
type Stats struct {
	// NodeCountByLevel[i] is the number of distinct node or leaf
	// entries stored at DAG level i.
	NodeCountByLevel []uint64
	// TopTierFullness and BottomTierFullness are the mean fraction
	// (0..1) of each tier's buckets currently in use.
	TopTierFullness    float64
	BottomTierFullness float64
	// EmptyBuckets is the count of buckets with no entries at all.
	EmptyBuckets uint64
}

// Stats walks every bucket and tallies per-level entry counts and
// fullness. It is O(total bucket count), intended for diagnostics
// rather than the hot path.
func (t *Table) Stats() Stats {
	levels := make([]uint64, t.cfg.MaxLevelCount-1)
	var topFull, bottomFull float64
	var topBuckets, bottomBuckets uint64
	var empty uint64

	for level := uint32(0); level < t.cfg.TopLevelRank; level++ {
		for i := uint32(0); i < t.cfg.TopLevelBucketCount; i++ {
			b := bucket(level*t.cfg.TopLevelBucketCount + i)
			levels[level] += t.countEntries(b, level)
			size := t.sizes[b]
			if size == 0 {
				empty++
			}
			topFull += float64(size) / float64(t.cfg.TopLevelBucketSize)
			topBuckets++
		}
	}
	for bottomLevel := uint32(0); bottomLevel < t.cfg.BottomLevelRank; bottomLevel++ {
		level := t.cfg.TopLevelRank + bottomLevel
		for i := uint32(0); i < t.cfg.BottomLevelBucketCount; i++ {
			b := bucket(t.cfg.TotalTopBucketCount() + bottomLevel*t.cfg.BottomLevelBucketCount + i)
			if level < uint32(len(levels)) {
				levels[level] += t.countEntries(b, level)
			}
			size := t.sizes[b]
			if size == 0 {
				empty++
			}
			bottomFull += float64(size) / float64(t.cfg.BottomLevelBucketSize)
			bottomBuckets++
		}
	}

	s := Stats{NodeCountByLevel: levels, EmptyBuckets: empty}
	if topBuckets > 0 {
		s.TopTierFullness = topFull / float64(topBuckets)
	}
	if bottomBuckets > 0 {
		s.BottomTierFullness = bottomFull / float64(bottomBuckets)
	}
	return s
}

// countEntries counts how many distinct entries bucket b holds, using
// the leaf stride at the leaf level and the variable node stride
// elsewhere.
func (t *Table) countEntries(b bucket, level uint32) uint64 {
	size := t.sizes[b]
	if level == t.cfg.LeafLevel() {
		return uint64(size / 2)
	}
	base := t.bucketBase(b)
	var count uint64
	for pos := uint32(0); pos < size; {
		entry := t.pool.Translate(base + pool.VPtr(pos))
		n := nodeSizeFromWord0(entry[0])
		count++
		pos += n
	}
	return count
}
