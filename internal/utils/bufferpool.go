package utils

import "sync"

var wordBufferPool = sync.Pool{
	New: func() any { return make([]uint32, 0, 16) },
}

// GetWordBuffer returns a zero-length []uint32 with at least the
// requested capacity, reused from a pool when the pooled buffer is
// large enough. The importer does not use it; it builds its child word
// lists with ordinary slices.
func GetWordBuffer(capacity int) []uint32 {
	buf := wordBufferPool.Get().([]uint32)
	if cap(buf) < capacity {
		return make([]uint32, 0, capacity)
	}
	return buf[:0]
}

// ReleaseWordBuffer returns buf to the pool for reuse.
func ReleaseWordBuffer(buf []uint32) {
	wordBufferPool.Put(buf[:0]) //nolint:staticcheck
}
