// ════════════════════════════════════════════════════════════════════════════════════════════════
// In-memory mutation graph — Robin Hood word index over a flat edge table
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Reference MutationGraph
//
// Description:
//   Reference kb.MutationGraph backed by a flat, sorted edge table with a
//   Robin Hood word->range index in the style of localidx.Hash. Built for
//   a fixed vocabulary at load time; the query path is read-only.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package mutationgraph

import (
	"sort"

	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/lex"
	"github.com/naturalli/synsearch/utils"
)

// wordRange is a contiguous run inside a sorted edge slice.
type wordRange struct {
	start uint32
	count uint32
}

// edgeIndex maps a lex.Word to the range of a sorted edge slice whose key
// function returns that word. Adapted from localidx.Hash: fixed-capacity,
// power-of-2 sized, Robin Hood displacement, zero reserved as the empty
// key sentinel (word ids are offset by one on insertion to keep TreeRootWord,
// which is zero, representable).
type edgeIndex struct {
	keys   []uint32
	vals   []uint32 // index into ranges, +1 (0 = empty)
	ranges []wordRange
	mask   uint32
}

func nextPow2(n int) uint32 {
	s := uint32(1)
	for s < uint32(n) {
		s <<= 1
	}
	return s
}

func buildIndex(edges []kb.Edge, keyOf func(kb.Edge) lex.Word) edgeIndex {
	if len(edges) == 0 {
		return edgeIndex{keys: make([]uint32, 1), vals: make([]uint32, 1), mask: 0}
	}
	sz := nextPow2(len(edges) * 2)
	idx := edgeIndex{
		keys: make([]uint32, sz),
		vals: make([]uint32, sz),
		mask: sz - 1,
	}
	i := 0
	for i < len(edges) {
		j := i + 1
		for j < len(edges) && keyOf(edges[j]) == keyOf(edges[i]) {
			j++
		}
		idx.ranges = append(idx.ranges, wordRange{start: uint32(i), count: uint32(j - i)})
		idx.put(keyOf(edges[i]), uint32(len(idx.ranges)))
		i = j
	}
	return idx
}

// homeSlot avalanches a key through Mix64 before masking it down to a
// table slot, so sequential word ids (the common case for a vocabulary
// assigned in scan order) don't cluster in the low bits of the table the
// way a raw key & mask would.
func (idx *edgeIndex) homeSlot(key uint32) uint32 {
	return uint32(utils.Mix64(uint64(key))) & idx.mask
}

func (idx *edgeIndex) put(word lex.Word, rangeSlot uint32) {
	key := uint32(word) + 1
	pos := idx.homeSlot(key)
	dist := uint32(0)
	val := rangeSlot
	for {
		k := idx.keys[pos]
		if k == 0 {
			idx.keys[pos], idx.vals[pos] = key, val
			return
		}
		if k == key {
			idx.vals[pos] = val
			return
		}
		kDist := (pos + idx.mask + 1 - idx.homeSlot(k)) & idx.mask
		if kDist < dist {
			key, idx.keys[pos] = idx.keys[pos], key
			val, idx.vals[pos] = idx.vals[pos], val
			dist = kDist
		}
		pos = (pos + 1) & idx.mask
		dist++
	}
}

func (idx *edgeIndex) lookup(word lex.Word) (wordRange, bool) {
	if len(idx.ranges) == 0 {
		return wordRange{}, false
	}
	key := uint32(word) + 1
	pos := idx.homeSlot(key)
	dist := uint32(0)
	for {
		k := idx.keys[pos]
		if k == 0 {
			return wordRange{}, false
		}
		if k == key {
			return idx.ranges[idx.vals[pos]-1], true
		}
		kDist := (pos + idx.mask + 1 - idx.homeSlot(k)) & idx.mask
		if kDist < dist {
			return wordRange{}, false
		}
		pos = (pos + 1) & idx.mask
		dist++
	}
}

// InMemory is a fully-loaded, read-only mutation graph.
type InMemory struct {
	bySink      []kb.Edge
	bySource    []kb.Edge
	sinkIndex   edgeIndex
	sourceIndex edgeIndex
	delIndex    edgeIndex
	glosses     map[uint32]string
	vocab       uint64
}

// New builds an InMemory graph from a flat edge list plus the subset of
// those edges licensed as deletions, and an optional gloss table keyed by
// uint32(word)<<8 | uint32(sense).
func New(edges []kb.Edge, deletionEdges []kb.Edge, glosses map[uint32]string) *InMemory {
	bySink := append([]kb.Edge(nil), edges...)
	sort.Slice(bySink, func(i, j int) bool { return bySink[i].Sink < bySink[j].Sink })

	bySource := append([]kb.Edge(nil), edges...)
	sort.Slice(bySource, func(i, j int) bool { return bySource[i].Source < bySource[j].Source })

	byDelSource := append([]kb.Edge(nil), deletionEdges...)
	sort.Slice(byDelSource, func(i, j int) bool { return byDelSource[i].Source < byDelSource[j].Source })

	g := &InMemory{
		bySink:      bySink,
		bySource:    bySource,
		sinkIndex:   buildIndex(bySink, func(e kb.Edge) lex.Word { return e.Sink }),
		sourceIndex: buildIndex(bySource, func(e kb.Edge) lex.Word { return e.Source }),
		delIndex:    buildIndex(byDelSource, func(e kb.Edge) lex.Word { return e.Source }),
		glosses:     glosses,
	}

	seen := make(map[lex.Word]struct{})
	for _, e := range edges {
		seen[e.Source] = struct{}{}
		seen[e.Sink] = struct{}{}
	}
	// lex.TreeRootWord (0) is reserved, and deletion-only edges use it as a
	// placeholder endpoint; it is not counted as a vocabulary word.
	delete(seen, lex.TreeRootWord)
	g.vocab = uint64(len(seen))
	return g
}

func (g *InMemory) IncomingEdges(word lex.Word) []kb.Edge {
	r, ok := g.sinkIndex.lookup(word)
	if !ok {
		return nil
	}
	return g.bySink[r.start : r.start+r.count]
}

func (g *InMemory) OutgoingEdges(word lex.Word) []kb.Edge {
	r, ok := g.sourceIndex.lookup(word)
	if !ok {
		return nil
	}
	return g.bySource[r.start : r.start+r.count]
}

func (g *InMemory) Gloss(word lex.TaggedWord) string {
	key := uint32(word.Word())<<8 | uint32(word.Sense())
	if s, ok := g.glosses[key]; ok {
		return s
	}
	return "<UNK>"
}

// ContainsDeletion reports whether edge.Source is a licensed syntactic
// deletion, per kb.MutationGraph's doc comment: the decision is
// word-keyed only (matching original_source/src/Graph.cc's
// invalidDeletionWords[deletion.source] set), not edge-keyed, since the
// expander's own probe (expander.expandDeletion) never populates
// Sink/Type.
func (g *InMemory) ContainsDeletion(edge kb.Edge) bool {
	_, ok := g.delIndex.lookup(edge.Source)
	return ok
}

func (g *InMemory) VocabSize() uint64 { return g.vocab }
