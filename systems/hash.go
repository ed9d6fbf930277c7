package systems

// Index-keyed hashing for the placement pass. Every pseudo-random value an
// instance needs is derived from its own index, so the pass has no shared
// RNG state, parallelizes over any worker count, and reproduces bit for bit.

// hashIndex mixes a 64-bit key with the splitmix64 finalizer.
func hashIndex(key uint64) uint64 {
	key ^= key >> 30
	key *= 0xbf58476d1ce4e5b9
	key ^= key >> 27
	key *= 0x94d049bb133111eb
	key ^= key >> 31
	return key
}

// HashFloat01 returns a float32 in [0, 1) keyed by (index, stream).
// Distinct streams give independent values for the same index.
func HashFloat01(index, stream uint32) float32 {
	h := hashIndex(uint64(index)<<32 | uint64(stream))
	// Top 24 bits: exactly representable in a float32 mantissa.
	return float32(h>>40) / float32(1<<24)
}
