// ════════════════════════════════════════════════════════════════════════════════════════════════
// Channel — lockless SPSC ring of SearchNode
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Producer/Consumer Bridge
//
// Description:
//   Fixed-capacity single-producer/single-consumer ring carrying
//   SearchNode by value, so the engine (producer) can hand expanded
//   successors to a sibling executor (consumer) — a heavier scorer, a
//   deduplicator, a persistence stage — without locking the hot path.
//
//   Grounded directly on ring24: same cache-line-isolated push/poll
//   cursor layout, reduced to a non-blocking Push/Poll pair. Adapted from
//   ring24's per-slot sequence-number protocol (needed there because its
//   ring size is an arbitrary power of two) to a simpler counter-difference
//   protocol: two counters held in 32-bit atomics, full when the 16-bit
//   wraparound difference pushPointer - pollPointer == N, empty when they're
//   equal. The slot index is the full 32-bit counter modulo N. The buffer here has a fixed length rather
//   than a caller-chosen power of two, which is why the simpler protocol
//   fits.
//
// Safety model (same as ring24): exactly one producer, one consumer.
// Violating that voids every guarantee below.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package channel

import (
	"sync/atomic"

	"github.com/naturalli/synsearch/lex"
	"github.com/naturalli/synsearch/searchnode"
)

// BufferLength is as many SearchNode-sized slots as fit in a 1024-byte
// budget after reserving two cache lines for the isolated counters.
const BufferLength = (1024 - 2*lex.CacheLineSize) / searchnode.Size

// Channel is a fixed-capacity SPSC ring of SearchNode.
//
//go:notinheap
type Channel struct {
	_            [lex.CacheLineSize]byte
	pushPointer  atomic.Uint32 // producer cursor

	_            [lex.CacheLineSize - 4]byte
	pollPointer  atomic.Uint32 // consumer cursor

	buf [BufferLength]searchnode.SearchNode
}

// New constructs an empty channel.
func New() *Channel {
	return &Channel{}
}

// occupancy computes pushPointer - pollPointer using unsigned 16-bit
// wraparound arithmetic, so the difference stays correct across a counter
// wraparound without a branch.
func occupancy(push, poll uint32) uint16 {
	return uint16(push) - uint16(poll)
}

// Push enqueues v. Returns false if the ring is full. Producer-only.
func (c *Channel) Push(v searchnode.SearchNode) bool {
	push := c.pushPointer.Load()
	poll := c.pollPointer.Load()
	if occupancy(push, poll) == BufferLength {
		return false
	}
	c.buf[push%BufferLength] = v
	c.pushPointer.Store(push + 1) // release: payload write precedes counter advance
	return true
}

// Poll dequeues the oldest value. Returns false if the ring is empty.
// Consumer-only.
func (c *Channel) Poll() (searchnode.SearchNode, bool) {
	poll := c.pollPointer.Load()
	push := c.pushPointer.Load() // acquire: observes producer's payload write
	if push == poll {
		return searchnode.SearchNode{}, false
	}
	v := c.buf[poll%BufferLength]
	c.pollPointer.Store(poll + 1)
	return v, true
}
