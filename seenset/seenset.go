// ════════════════════════════════════════════════════════════════════════════════════════════════
// SeenSet — cache-strategy interface for fact-hash deduplication
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Membership Filter
//
// Description:
//   Opaque membership filter the expander consults before allocating a
//   successor node. None never reports a hit (no storage, no false
//   positives, but no dedup either). Bloom is a fixed bit array with k
//   independent hashes derived from sub-ranges of one SHA3-256 digest:
//   once a key is recorded it is reported seen forever after (one-sided
//   error only — no false negatives — since the search must never miss a
//   valid successor just because dedup dropped it).
//
//   Grounded on dedupe.go's Deduper (a fixed-size structure over a mixed
//   64-bit key), adapted from an evicting ring — which can forget a key
//   and therefore allows false negatives, fine for log dedup — to a
//   monotone Bloom filter, which the fact-hash use case requires.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package seenset

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// SeenSet is the membership filter the expander consults per candidate
// fact hash.
type SeenSet interface {
	WasSeen(factHash uint64) bool
	Record(factHash uint64)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// NONE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// None never reports a hit and stores nothing. Every candidate is treated
// as fresh, so the expander explores exhaustively.
type None struct{}

func (None) WasSeen(uint64) bool { return false }
func (None) Record(uint64)       {}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// BLOOM
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Bloom is a fixed bit-array membership filter. m is the number of bits,
// k the number of hash functions; both are caller-configured.
type Bloom struct {
	bits []uint64 // m bits packed 64 per word
	m    uint64
	k    int
}

// NewBloom allocates a Bloom filter with m bits and k hash functions.
func NewBloom(m uint64, k int) *Bloom {
	if m == 0 {
		m = 1
	}
	if k < 1 {
		k = 1
	}
	words := (m + 63) / 64
	return &Bloom{bits: make([]uint64, words), m: m, k: k}
}

// lanes derives up to 4 independent 64-bit hash lanes from one SHA3-256
// digest of the key, folding the digest into 8-byte sub-ranges rather
// than hashing k separate times. Requests for more than 4 lanes derive
// each further lane i from lane i-4, multiplied by an odd constant plus i.
func (b *Bloom) lanes(key uint64) []uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	digest := sha3.Sum256(buf[:])

	base := make([]uint64, 4)
	for i := 0; i < 4; i++ {
		base[i] = binary.LittleEndian.Uint64(digest[i*8 : i*8+8])
	}

	if b.k <= 4 {
		return base[:b.k]
	}
	lanes := make([]uint64, b.k)
	copy(lanes, base)
	for i := 4; i < b.k; i++ {
		lanes[i] = lanes[i-4]*0x9E3779B97F4A7C15 + uint64(i)
	}
	return lanes
}

func (b *Bloom) bitIndex(lane uint64) uint64 { return lane % b.m }

// Record sets all k bits derived from factHash.
func (b *Bloom) Record(factHash uint64) {
	for _, lane := range b.lanes(factHash) {
		idx := b.bitIndex(lane)
		b.bits[idx/64] |= 1 << (idx % 64)
	}
}

// WasSeen reports true iff all k derived bits are set. May false-positive;
// never false-negatives once Record has been called for the key.
func (b *Bloom) WasSeen(factHash uint64) bool {
	for _, lane := range b.lanes(factHash) {
		idx := b.bitIndex(lane)
		if b.bits[idx/64]&(1<<(idx%64)) == 0 {
			return false
		}
	}
	return true
}
