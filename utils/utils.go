// Package utils holds the small zero-alloc mixing helper used by the
// reference mutation-graph index. Trimmed from the
// teacher's utils.go, which also carried Ethereum-specific hex/JSON
// scanning helpers this domain has no use for.
package utils

// Mix64 applies a Murmur3-style avalanche to a 64-bit value.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
