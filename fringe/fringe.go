// ════════════════════════════════════════════════════════════════════════════════════════════════
// Fringe — BFS and UCS frontiers over NodePool ids
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Search Frontier
//
// Description:
//   Two capacity-checked frontier implementations sharing one interface:
//   BFS treats every edge as unit cost and pops FIFO; UCS orders pops by
//   a float32 priority key via a binary min-heap, tie-broken by the
//   lower pool id for determinism.
//
//   Grounded on the fixed-capacity, explicit-occupancy-bookkeeping style
//   of quantumqueue64/PooledQuantumQueue (push returns an ok bool rather
//   than panicking on exhaustion). The UCS key here is an unbounded
//   float32 rather than those queues' quantized integer tick, so it is a
//   hand-rolled binary heap rather than their tick-bucket structure — see
//   DESIGN.md for why the bucket approach isn't reused here.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package fringe

// Fringe is the contract the engine drives its main loop through.
type Fringe interface {
	// Push inserts nodeID with the given priority key (ignored by BFS).
	// Returns false if the fringe is at capacity.
	Push(nodeID uint32, key float32) bool
	// Pop removes and returns the lowest-key element (BFS: the oldest).
	Pop() (nodeID uint32, key float32, ok bool)
	// Peek returns the lowest-key element without removing it.
	Peek() (nodeID uint32, key float32, ok bool)
	IsEmpty() bool
	Len() int
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// BFS: FIFO over pool ids
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// BFS is a fixed-capacity FIFO fringe. Every edge is treated as unit cost;
// the key passed to Push is ignored and Pop always reports 0.
type BFS struct {
	buf      []uint32
	head     int
	tail     int
	count    int
	capacity int
}

// NewBFS creates a BFS fringe with room for capacity entries.
func NewBFS(capacity int) *BFS {
	return &BFS{buf: make([]uint32, capacity), capacity: capacity}
}

func (f *BFS) Push(nodeID uint32, _ float32) bool {
	if f.count == f.capacity {
		return false
	}
	f.buf[f.tail] = nodeID
	f.tail = (f.tail + 1) % f.capacity
	f.count++
	return true
}

func (f *BFS) Pop() (uint32, float32, bool) {
	if f.count == 0 {
		return 0, 0, false
	}
	id := f.buf[f.head]
	f.head = (f.head + 1) % f.capacity
	f.count--
	return id, 0, true
}

func (f *BFS) Peek() (uint32, float32, bool) {
	if f.count == 0 {
		return 0, 0, false
	}
	return f.buf[f.head], 0, true
}

func (f *BFS) IsEmpty() bool { return f.count == 0 }
func (f *BFS) Len() int      { return f.count }

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// UCS: binary min-heap over (key, poolId)
// ═══════════════════════════════════════════════════════════════════════════════════════════════

type heapEntry struct {
	key    float32
	nodeID uint32
}

// less orders by key, then by lower nodeID (older node first) for
// deterministic tie-breaking.
func (a heapEntry) less(b heapEntry) bool {
	if a.key != b.key {
		return a.key < b.key
	}
	return a.nodeID < b.nodeID
}

// UCS is a fixed-capacity binary min-heap fringe.
type UCS struct {
	heap     []heapEntry
	capacity int
}

// NewUCS creates a UCS fringe with room for capacity entries.
func NewUCS(capacity int) *UCS {
	return &UCS{heap: make([]heapEntry, 0, capacity), capacity: capacity}
}

func (f *UCS) Push(nodeID uint32, key float32) bool {
	if len(f.heap) == f.capacity {
		return false
	}
	f.heap = append(f.heap, heapEntry{key: key, nodeID: nodeID})
	f.siftUp(len(f.heap) - 1)
	return true
}

func (f *UCS) Pop() (uint32, float32, bool) {
	if len(f.heap) == 0 {
		return 0, 0, false
	}
	top := f.heap[0]
	last := len(f.heap) - 1
	f.heap[0] = f.heap[last]
	f.heap = f.heap[:last]
	if len(f.heap) > 0 {
		f.siftDown(0)
	}
	return top.nodeID, top.key, true
}

func (f *UCS) Peek() (uint32, float32, bool) {
	if len(f.heap) == 0 {
		return 0, 0, false
	}
	return f.heap[0].nodeID, f.heap[0].key, true
}

func (f *UCS) IsEmpty() bool { return len(f.heap) == 0 }
func (f *UCS) Len() int      { return len(f.heap) }

func (f *UCS) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !f.heap[i].less(f.heap[parent]) {
			break
		}
		f.heap[i], f.heap[parent] = f.heap[parent], f.heap[i]
		i = parent
	}
}

func (f *UCS) siftDown(i int) {
	n := len(f.heap)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && f.heap[left].less(f.heap[smallest]) {
			smallest = left
		}
		if right < n && f.heap[right].less(f.heap[smallest]) {
			smallest = right
		}
		if smallest == i {
			return
		}
		f.heap[i], f.heap[smallest] = f.heap[smallest], f.heap[i]
		i = smallest
	}
}
