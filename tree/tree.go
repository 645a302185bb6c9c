// ════════════════════════════════════════════════════════════════════════════════════════════════
// Dependency Tree — packed query representation with incremental hashing
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Query Tree Model
//
// Description:
//   Fixed-capacity dependency tree, 6 bytes of payload per node, with an
//   order-independent hash defined as the XOR of every edge triple
//   <governor_word, relation, dependent_word>. Mutating or deleting a
//   node updates the hash incrementally: XOR out the stale triples, XOR
//   in the fresh ones. Order independence and XOR's self-inverse property
//   are what make that update O(1) per edit instead of a full rescan.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package tree

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/naturalli/synsearch/lex"
)

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// PACKED NODE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// node is the per-token record: 6 bytes of payload, a 32-bit tagged word
// plus a 16-bit governor/relation pair (12 bits used, 4 spare). Go's field
// alignment pads the struct to 8 bytes, so each array element takes 8.
type node struct {
	word   lex.TaggedWord
	govRel uint16 // governor:6 | relation:6 (top 4 bits unused)
}

func packGovRel(governor, relation uint8) uint16 {
	return uint16(governor&0x3F) | uint16(relation&0x3F)<<6
}

func (n node) governor() uint8 { return uint8(n.govRel & 0x3F) }
func (n node) relation() uint8 { return uint8((n.govRel >> 6) & 0x3F) }

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// TREE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// Tree is a fixed-capacity dependency tree sized for MaxQueryLength tokens.
//
// In the packed C layout this struct is designed to fit a single 64-byte
// cache line for typical (sub-maximal) queries, with the unused tail
// tracked by availableCacheLength for auxiliary scratch. This Go port
// keeps that bookkeeping field for parity but does not attempt to cram
// the fixed 26-node array into 64 bytes; the array itself is the
// dominant cost regardless of host language.
type Tree struct {
	nodes                [lex.MaxQueryLength]node
	length                uint8
	availableCacheLength  uint16
	hash                  uint64
}

// New constructs a Tree from parallel word/governor/relation slices.
// governors[i] == lex.TreeRoot marks the root. Returns an error for
// malformed input (cycle, out-of-range governor, oversized query) —
// construction-time errors are fatal for the query, unlike the
// recoverable conditions the engine handles mid-search.
func New(words []lex.TaggedWord, governors []uint8, relations []uint8) (*Tree, error) {
	n := len(words)
	if n == 0 {
		return nil, fmt.Errorf("tree: empty query")
	}
	if n > lex.MaxQueryLength {
		return nil, fmt.Errorf("tree: length %d exceeds MaxQueryLength %d", n, lex.MaxQueryLength)
	}
	if len(governors) != n || len(relations) != n {
		return nil, fmt.Errorf("tree: mismatched field lengths")
	}

	t := &Tree{length: uint8(n)}
	roots := 0
	for i := 0; i < n; i++ {
		g := governors[i]
		if g != lex.TreeRoot && int(g) >= n {
			return nil, fmt.Errorf("tree: node %d has out-of-range governor %d", i, g)
		}
		if g == lex.TreeRoot {
			roots++
		}
		t.nodes[i] = node{word: words[i], govRel: packGovRel(g, relations[i])}
	}
	if roots != 1 {
		return nil, fmt.Errorf("tree: expected exactly one root, found %d", roots)
	}
	if t.hasCycle() {
		return nil, fmt.Errorf("tree: governor relation is cyclic")
	}

	if used := 6 * n; used < lex.CacheLineSize {
		t.availableCacheLength = uint16(lex.CacheLineSize - used)
	}
	t.hash = t.computeHash()
	return t, nil
}

func (t *Tree) hasCycle() bool {
	for start := uint8(0); start < t.length; start++ {
		seen := uint32(0)
		cur := start
		for {
			g := t.nodes[cur].governor()
			if g == lex.TreeRoot {
				break
			}
			if seen&(1<<cur) != 0 {
				return true
			}
			seen |= 1 << cur
			cur = g
		}
	}
	return false
}

// Length reports the number of tokens in the tree.
func (t *Tree) Length() uint8 { return t.length }

// Word returns the tagged word stored at index (zero-indexed, as
// originally parsed — unaffected by any search-time mutation).
func (t *Tree) Word(index uint8) lex.TaggedWord { return t.nodes[index].word }

// Governor returns the governor index of index, or lex.TreeRoot.
func (t *Tree) Governor(index uint8) uint8 { return t.nodes[index].governor() }

// Relation returns the incoming relation id of index.
func (t *Tree) Relation(index uint8) uint8 { return t.nodes[index].relation() }

// GovernorWord returns the word at the governor of index, or
// lex.TreeRootWord if index is the tree root.
func (t *Tree) GovernorWord(index uint8) lex.Word {
	g := t.Governor(index)
	if g == lex.TreeRoot {
		return lex.TreeRootWord
	}
	return t.Word(g).Word()
}

// Root returns the unique index whose governor is lex.TreeRoot.
func (t *Tree) Root() uint8 {
	for i := uint8(0); i < t.length; i++ {
		if t.nodes[i].governor() == lex.TreeRoot {
			return i
		}
	}
	// Unreachable given New's validation, but return a defined sentinel
	// rather than let callers index out of bounds.
	return lex.TreeRoot
}

// Dependents enumerates the children of index in ascending index order,
// capped at cap entries. Returns child indices and their relation ids.
func (t *Tree) Dependents(index uint8, cap int) (indices []uint8, relations []uint8) {
	for i := uint8(0); i < t.length && len(indices) < cap; i++ {
		if i != index && t.nodes[i].governor() == index {
			indices = append(indices, i)
			relations = append(relations, t.nodes[i].relation())
		}
	}
	return indices, relations
}

// CreateDeleteMask computes the bitmask of the subtree rooted at root
// (root included), via a downward reachability scan over the governor
// relation.
func (t *Tree) CreateDeleteMask(root uint8) uint32 {
	mask := uint32(1) << root
	// Fixed-point iteration: at most length passes are needed since each
	// pass can only add nodes whose governor is already marked, and the
	// tree has no cycles.
	for changed := true; changed; {
		changed = false
		for i := uint8(0); i < t.length; i++ {
			bit := uint32(1) << i
			if mask&bit != 0 {
				continue
			}
			g := t.nodes[i].governor()
			if g != lex.TreeRoot && mask&(uint32(1)<<g) != 0 {
				mask |= bit
				changed = true
			}
		}
	}
	return mask
}

// Hash returns the tree's current order-independent hash.
func (t *Tree) Hash() uint64 { return t.hash }

func (t *Tree) computeHash() uint64 {
	var h uint64
	for i := uint8(0); i < t.length; i++ {
		h ^= tripleHash(t.GovernorWord(i), t.nodes[i].relation(), t.nodes[i].word.Word())
	}
	return h
}

// UpdateHashFromMutation returns the hash of the tree after replacing the
// word at index with newWord, given the old hash, the word being
// replaced (oldWord, which may differ from t.Word(index).Word() if the
// search had already substituted a prior mutation there), and the
// governor word gov in effect at index.
func (t *Tree) UpdateHashFromMutation(oldHash uint64, index uint8, oldWord lex.Word, gov lex.Word, newWord lex.Word) uint64 {
	rel := t.nodes[index].relation()
	return oldHash ^ tripleHash(gov, rel, oldWord) ^ tripleHash(gov, rel, newWord)
}

// UpdateHashFromDeletions XORs out the edge triples of every index newly
// set in newDeletions (a delta mask, not the cumulative one). deletionWord
// and gov give the current (possibly mutated) word and governor at
// deletionIndex; every other affected index is assumed to still carry its
// original tree word and governor, which holds under the top-down
// expansion discipline the engine enforces (a governor is always visited
// by the cursor before its dependents).
func (t *Tree) UpdateHashFromDeletions(oldHash uint64, deletionIndex uint8, deletionWord lex.Word, gov lex.Word, newDeletions uint32) uint64 {
	h := oldHash
	for i := uint8(0); i < t.length; i++ {
		if newDeletions&(uint32(1)<<i) == 0 {
			continue
		}
		rel := t.nodes[i].relation()
		if i == deletionIndex {
			h ^= tripleHash(gov, rel, deletionWord)
		} else {
			h ^= tripleHash(t.GovernorWord(i), rel, t.nodes[i].word.Word())
		}
	}
	return h
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// EDGE TRIPLE MIXER
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// tripleHash mixes a governor word, relation id, and dependent word into a
// single 64-bit value using SHA3-256 as the strong mixer: any consistent
// choice works here provided it keeps the three fields independent. The
// 32-byte digest is folded down to 64 bits by XOR, which preserves the
// avalanche the mixer provides while keeping the hash the same width as
// factHash.
func tripleHash(gov lex.Word, rel uint8, dep lex.Word) uint64 {
	var buf [9]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(gov))
	buf[4] = rel
	binary.LittleEndian.PutUint32(buf[5:9], uint32(dep))
	digest := sha3.Sum256(buf[:])
	return binary.LittleEndian.Uint64(digest[0:8]) ^
		binary.LittleEndian.Uint64(digest[8:16]) ^
		binary.LittleEndian.Uint64(digest[16:24]) ^
		binary.LittleEndian.Uint64(digest[24:32])
}

// TripleHash exposes the mixer so a hash can be computed without going
// through a Tree (the tests use it to build expected hashes by hand).
func TripleHash(gov lex.Word, rel uint8, dep lex.Word) uint64 {
	return tripleHash(gov, rel, dep)
}
