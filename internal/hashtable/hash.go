package hashtable

// HashLeaf finalizes a 64-bit leaf occupancy word into a 32-bit hash
// using a three-round xor-multiply finalizer (the same constants
// MurmurHash3 uses for its 64-bit finalizer), truncated to
// 32 bits. Verbatim from the original HashDAG source: this exact
// constant sequence is part of the dedup contract, not an incidental
// implementation detail.
func HashLeaf(leaf uint64) uint32 {
	leaf ^= leaf >> 33
	leaf *= 0xff51afd7ed558ccd
	leaf ^= leaf >> 33
	leaf *= 0xc4ceb9fe1a85ec53
	leaf ^= leaf >> 33
	return uint32(leaf)
}

// HashNode hashes an internal node's word array (mask word plus child
// pointers) with a Murmur3-style per-word scramble and finalizer, seed
// 0. Verbatim from the original HashDAG source.
func HashNode(words []uint32) uint32 {
	var h uint32
	for _, w := range words {
		k := w
		k *= 0xcc9e2d51
		k = rotl32(k, 15)
		k *= 0x1b873593
		h ^= k
		h = rotl32(h, 13)
		h = h*5 + 0xe6546b64
	}
	h ^= uint32(len(words))
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

func rotl32(x uint32, r uint) uint32 { return (x << r) | (x >> (32 - r)) }
