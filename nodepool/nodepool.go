// ════════════════════════════════════════════════════════════════════════════════════════════════
// NodePool — two-level bucketed arena for SearchNode
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Search-Node Arena
//
// Description:
//   Bump-allocator arena over SearchNode records. Buckets of 2^bucketShift
//   entries are allocated on demand; a node's 32-bit id decomposes into
//   (bucket, offset), and addresses of allocated nodes are stable for the
//   pool's lifetime — allocations never move or free individual nodes.
//
//   Grounded on PooledQuantumQueue's externally-managed, handle-addressed
//   entries, generalized from one fixed array to growable buckets so the
//   pool can serve queries whose total node count is not known up front.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package nodepool

import (
	"errors"

	"github.com/naturalli/synsearch/searchnode"
)

// ErrOutOfMemory is returned by Allocate when the pool has reached
// maxBuckets and cannot grow further. The engine treats this as its OOM
// termination reason.
var ErrOutOfMemory = errors.New("nodepool: arena exhausted")

// Pool is a bucketed arena of SearchNode records.
type Pool struct {
	buckets     [][]searchnode.SearchNode
	bucketShift uint
	bucketSize  uint32
	bucketMask  uint32
	maxBuckets  int
	size        int
}

// New creates a pool with the given bucket shift (bucket size = 1<<shift)
// and a cap on the number of buckets it may grow to (0 = unbounded).
func New(bucketShift uint, maxBuckets int) *Pool {
	return &Pool{
		bucketShift: bucketShift,
		bucketSize:  1 << bucketShift,
		bucketMask:  1<<bucketShift - 1,
		maxBuckets:  maxBuckets,
	}
}

// NewDefault creates a pool with the given bucket shift and no cap on the
// number of buckets (New(bucketShift, 0)).
func NewDefault(bucketShift uint) *Pool {
	return New(bucketShift, 0)
}

// Size reports the number of nodes allocated so far.
func (p *Pool) Size() int { return p.size }

func (p *Pool) split(id uint32) (bucket int, offset uint32) {
	return int(id >> p.bucketShift), id & p.bucketMask
}

// Allocate reserves the next slot, returning its stable id and a pointer
// into the arena for the caller to populate. The pointer is valid for the
// pool's lifetime.
func (p *Pool) Allocate() (uint32, *searchnode.SearchNode, error) {
	id := uint32(p.size)
	bucket, offset := p.split(id)

	if bucket >= len(p.buckets) {
		if p.maxBuckets > 0 && bucket >= p.maxBuckets {
			return 0, nil, ErrOutOfMemory
		}
		p.buckets = append(p.buckets, make([]searchnode.SearchNode, p.bucketSize))
	}

	p.size++
	return id, &p.buckets[bucket][offset], nil
}

// Get returns a copy of the node at id. Ids are only ever produced by
// Allocate and consumed by the engine that owns the pool. Get panics if id
// falls in a bucket that was never allocated; an id inside an allocated
// bucket but past Size() returns a zero SearchNode.
func (p *Pool) Get(id uint32) searchnode.SearchNode {
	bucket, offset := p.split(id)
	return p.buckets[bucket][offset]
}

// ReconstructPath follows backpointers from id to the root (backpointer
// == 0, reserved for the root sentinel) and returns the path in
// root-to-leaf order.
func (p *Pool) ReconstructPath(id uint32) []searchnode.SearchNode {
	var reversed []searchnode.SearchNode
	cur := id
	for {
		n := p.Get(cur)
		reversed = append(reversed, n)
		if cur == 0 {
			break
		}
		cur = n.Backpointer()
	}
	path := make([]searchnode.SearchNode, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path
}
