// ════════════════════════════════════════════════════════════════════════════════════════════════
// SearchNode — 32-byte packed search state
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Search State Record
//
// Description:
//   Immutable-after-construction search state. Every field is packed to
//   keep the record at exactly 32 bytes, the same discipline the
//   arena-backed queues this package is grounded on apply to their own
//   entries (fixed layout, no pointers except the backpointer id).
//
// Layout:
//   factHash      8B  hash of the implicit current tree
//   packed        4B  index:5 | validity:1 | deleteMask:26
//   currentToken  4B  tagged word occupying index
//   governor      4B  word:24 | lastEdgeType:8  (word of the governor of
//                      index, plus the type of the edge that produced this
//                      node — packed into governor's 8 spare bits since a
//                      lex.Word only occupies the low 24 bits of its slot)
//   backpointer   4B  NodePool id of the parent node (0 = root sentinel)
//   costIfTrue    4B
//   costIfFalse   4B
//   ────────────
//   total        32B
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package searchnode

import (
	"unsafe"

	"github.com/naturalli/synsearch/lex"
)

const (
	indexBits      = 5
	indexMask      = 1<<indexBits - 1
	validityShift  = indexBits
	deleteMaskShift = indexBits + 1
	deleteMaskMask = 1<<26 - 1

	governorEdgeTypeShift = 24
)

// SearchNode is the fixed 32-byte search-state record.
type SearchNode struct {
	factHash     uint64
	packed       uint32
	currentToken lex.TaggedWord
	governor     uint32
	backpointer  uint32
	costIfTrue   float32
	costIfFalse  float32
}

// Index returns the current mutation cursor into the tree.
func (n SearchNode) Index() uint8 { return uint8(n.packed & indexMask) }

// Validity returns the logical polarity of the inference so far.
func (n SearchNode) Validity() bool { return (n.packed>>validityShift)&1 != 0 }

// DeleteMask returns the bitmap of deleted token indices.
func (n SearchNode) DeleteMask() uint32 { return (n.packed >> deleteMaskShift) & deleteMaskMask }

// CurrentToken returns the tagged word currently occupying Index().
func (n SearchNode) CurrentToken() lex.TaggedWord { return n.currentToken }

// Governor returns the word of the governor of Index() at this point in
// the search.
func (n SearchNode) Governor() lex.Word { return lex.Word(n.governor & lex.WordMask) }

// LastEdgeType returns the type of the mutation-graph edge that produced
// this node, passed to WeightModel.Cost as its lastEdgeType argument.
func (n SearchNode) LastEdgeType() lex.EdgeType {
	return lex.EdgeType(n.governor >> governorEdgeTypeShift)
}

// FactHash returns the hash of the implicit current tree (original tree
// with this node's deletion mask and token substitution applied).
func (n SearchNode) FactHash() uint64 { return n.factHash }

// Backpointer returns the NodePool id of the parent node (0 for the root).
func (n SearchNode) Backpointer() uint32 { return n.backpointer }

// CostIfTrue and CostIfFalse are the two accumulated cost paths.
func (n SearchNode) CostIfTrue() float32  { return n.costIfTrue }
func (n SearchNode) CostIfFalse() float32 { return n.costIfFalse }

// PriorityKey is min(costIfTrue, costIfFalse), the value the UCS fringe
// orders on.
func (n SearchNode) PriorityKey() float32 {
	if n.costIfTrue < n.costIfFalse {
		return n.costIfTrue
	}
	return n.costIfFalse
}

func pack(index uint8, validity bool, deleteMask uint32) uint32 {
	v := uint32(0)
	if validity {
		v = 1
	}
	return uint32(index&indexMask) | v<<validityShift | (deleteMask&deleteMaskMask)<<deleteMaskShift
}

func packGovernor(gov lex.Word, edgeType lex.EdgeType) uint32 {
	return uint32(gov)&lex.WordMask | uint32(edgeType)<<governorEdgeTypeShift
}

// EqualityKey is the structural identity of a search state: two nodes
// with the same key represent the same logical position regardless of how
// they were reached. Backpointer is metadata, not identity.
type EqualityKey struct {
	FactHash   uint64
	Index      uint8
	DeleteMask uint32
}

// Key returns n's equality key.
func (n SearchNode) Key() EqualityKey {
	return EqualityKey{FactHash: n.factHash, Index: n.Index(), DeleteMask: n.DeleteMask()}
}

// Equal reports whether n and other represent the same logical state.
func (n SearchNode) Equal(other SearchNode) bool { return n.Key() == other.Key() }

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CONSTRUCTORS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// RootTreeAccessor is the minimal Tree surface the constructors need,
// kept narrow to avoid an import of the tree package (which would create
// no cycle here, but this keeps searchnode buildable against any 6-byte
// packed tree, not just this repo's).
type RootTreeAccessor interface {
	Root() uint8
	Word(index uint8) lex.TaggedWord
	Hash() uint64
}

// NewRoot builds the root search node for a query tree: cursor at the
// tree's root, no deletions, validity true, zero cost.
func NewRoot(t RootTreeAccessor) SearchNode {
	root := t.Root()
	return SearchNode{
		factHash:     t.Hash(),
		packed:       pack(root, true, 0),
		currentToken: t.Word(root),
		governor:     packGovernor(lex.TreeRootWord, 0),
		backpointer:  0,
	}
}

// Mutate builds a child of parent that replaces the token at parent's
// cursor with newToken, updating the fact hash and costs. backpointer is
// the pool id parent was allocated at.
func Mutate(parent SearchNode, newToken lex.TaggedWord, newHash uint64, edgeType lex.EdgeType, dCostTrue, dCostFalse float32, newValidity bool, backpointer uint32) SearchNode {
	return SearchNode{
		factHash:     newHash,
		packed:       pack(parent.Index(), newValidity, parent.DeleteMask()),
		currentToken: newToken,
		governor:     packGovernor(parent.Governor(), edgeType),
		backpointer:  backpointer,
		costIfTrue:   parent.costIfTrue + dCostTrue,
		costIfFalse:  parent.costIfFalse + dCostFalse,
	}
}

// Delete builds a child of parent that merges addedMask into parent's
// deletion mask (the cursor does not move on a deletion step).
func Delete(parent SearchNode, newHash uint64, addedMask uint32, edgeType lex.EdgeType, dCostTrue, dCostFalse float32, newValidity bool, backpointer uint32) SearchNode {
	return SearchNode{
		factHash:     newHash,
		packed:       pack(parent.Index(), newValidity, parent.DeleteMask()|addedMask),
		currentToken: parent.currentToken,
		governor:     packGovernor(parent.Governor(), edgeType),
		backpointer:  backpointer,
		costIfTrue:   parent.costIfTrue + dCostTrue,
		costIfFalse:  parent.costIfFalse + dCostFalse,
	}
}

// MoveCursor builds a child of parent whose cursor advances to newIndex,
// preserving the fact hash (a cursor move edits no edge) and costs, but
// adopting the token and governor at the new position.
func MoveCursor(parent SearchNode, newIndex uint8, newToken lex.TaggedWord, newGovernor lex.Word, backpointer uint32) SearchNode {
	return SearchNode{
		factHash:     parent.factHash,
		packed:       pack(newIndex, parent.Validity(), parent.DeleteMask()),
		currentToken: newToken,
		governor:     packGovernor(newGovernor, 0),
		backpointer:  backpointer,
		costIfTrue:   parent.costIfTrue,
		costIfFalse:  parent.costIfFalse,
	}
}

// Size is the fixed record size in bytes, asserted at init time.
const Size = 32

func init() {
	var n SearchNode
	if unsafe.Sizeof(n) != Size {
		panic("searchnode: SearchNode is not 32 bytes")
	}
}
