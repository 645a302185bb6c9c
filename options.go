package synsearch

import "github.com/naturalli/synsearch/channel"

// Options configures a single SynSearch call.
type Options struct {
	// MaxTicks bounds the number of pop+expand iterations.
	MaxTicks uint32
	// CostThreshold is the UCS early-cutoff: once the popped key exceeds
	// it, every remaining fringe entry is guaranteed worse (UCS is
	// monotone), so the search terminates.
	CostThreshold float32
	// StopWhenResultFound halts on the first fact match rather than
	// continuing to accumulate every path under the budget.
	StopWhenResultFound bool
	// Silent suppresses diag logging of the termination reason.
	Silent bool

	// UseBFS selects the FIFO fringe (unit-cost edges) instead of the
	// default UCS binary-heap fringe.
	UseBFS bool
	// FringeCapacity bounds the number of in-flight fringe entries.
	FringeCapacity int
	// PoolBucketShift and PoolMaxBuckets size the node arena; zero
	// PoolMaxBuckets means unbounded growth.
	PoolBucketShift uint
	PoolMaxBuckets  int

	// SeenSetKind selects "none" or "bloom" (default "bloom").
	SeenSetKind string
	BloomBits   uint64
	BloomHashes int

	// ExportSuccessors, if non-nil, receives a best-effort mirror of
	// every successor the expander accepts, so a sibling executor can
	// consume them off the hot path without locking the engine's own
	// fringe/pool. Left nil, no mirroring happens at all.
	ExportSuccessors *channel.Channel
}

// DefaultOptions returns sensible defaults for interactive/test use: a
// small pool and fringe, UCS ordering, and a Bloom seen-set. Production
// callers should size FringeCapacity/PoolMaxBuckets/BloomBits to the
// expected query difficulty.
func DefaultOptions() Options {
	return Options{
		MaxTicks:             10000,
		CostThreshold:        1e9,
		StopWhenResultFound:  true,
		FringeCapacity:       1 << 16,
		PoolBucketShift:      12,
		PoolMaxBuckets:       1 << 8,
		SeenSetKind:          "bloom",
		BloomBits:            1 << 20,
		BloomHashes:          4,
	}
}
