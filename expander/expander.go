// ════════════════════════════════════════════════════════════════════════════════════════════════
// Expander — mutation and deletion successor generation
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Successor Generator
//
// Description:
//   Given a popped SearchNode and the query Tree, produces every legal
//   successor: mutations of the current cursor's word (consulting the
//   MutationGraph and scoring via WeightModel), a deletion of the
//   cursor's subtree when licensed, and cursor-advance moves to the next
//   unvisited position in top-down order. Mutation and deletion successors
//   are filtered through the SeenSet (cursor advances keep their parent's
//   hash and are not); every accepted successor is allocated in the
//   NodePool and pushed onto the Fringe.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package expander

import (
	"github.com/naturalli/synsearch/channel"
	"github.com/naturalli/synsearch/fringe"
	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/lex"
	"github.com/naturalli/synsearch/nodepool"
	"github.com/naturalli/synsearch/searchnode"
	"github.com/naturalli/synsearch/seenset"
	"github.com/naturalli/synsearch/tree"
)

// TreeView is the subset of *tree.Tree the expander needs, narrowed so
// the package can be tested against fixtures without constructing a full
// tree.Tree.
type TreeView interface {
	Length() uint8
	Root() uint8
	Word(index uint8) lex.TaggedWord
	Governor(index uint8) uint8
	GovernorWord(index uint8) lex.Word
	Dependents(index uint8, cap int) (indices []uint8, relations []uint8)
	CreateDeleteMask(root uint8) uint32
	UpdateHashFromMutation(oldHash uint64, index uint8, oldWord lex.Word, gov lex.Word, newWord lex.Word) uint64
	UpdateHashFromDeletions(oldHash uint64, deletionIndex uint8, deletionWord lex.Word, gov lex.Word, newDeletions uint32) uint64
}

var _ TreeView = (*tree.Tree)(nil)

// Expand generates every successor of the popped node p and pushes the
// accepted ones into fr, returning false if the pool or fringe ran out of
// room (the engine's OOM signal). When export is non-nil, every accepted
// successor is also mirrored into it for an optional sibling consumer to
// pick up off the hot path; a full export ring drops the mirrored copy
// rather than stalling the search.
func Expand(p searchnode.SearchNode, parentID uint32, t TreeView, graph kb.MutationGraph, weights kb.WeightModel, seen seenset.SeenSet, pool *nodepool.Pool, fr fringe.Fringe, export *channel.Channel) bool {
	if !expandMutations(p, parentID, t, graph, weights, seen, pool, fr, export) {
		return false
	}
	if !expandDeletion(p, parentID, t, graph, weights, seen, pool, fr, export) {
		return false
	}
	return expandCursorAdvance(p, parentID, t, pool, fr, export)
}

func monotonicityAt(t TreeView, index uint8) lex.Monotonicity {
	return t.Word(index).Monotonicity()
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// MUTATIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func expandMutations(p searchnode.SearchNode, parentID uint32, t TreeView, graph kb.MutationGraph, weights kb.WeightModel, seen seenset.SeenSet, pool *nodepool.Pool, fr fringe.Fringe, export *channel.Channel) bool {
	index := p.Index()
	mono := monotonicityAt(t, index)
	changingSameWord := sameIndexAsParent(p, parentID, pool, index)

	for _, e := range graph.IncomingEdges(p.CurrentToken().Word()) {
		if e.Type == lex.NearestNeighbor {
			continue // parametric noise, not a logical edit
		}

		dCost := weights.Cost(p.LastEdgeType(), e, changingSameWord, mono)
		// e.Sink is fixed to p.CurrentToken().Word() by the IncomingEdges
		// filter itself; the word that actually changes at this position
		// is the edge's source — a mutation moves the cursor's word to the
		// *other* endpoint of the licensing edge, not the one it was
		// looked up by.
		newToken := lex.NewTaggedWord(e.Source, e.SourceSense, mono)
		newHash := t.UpdateHashFromMutation(p.FactHash(), index, p.CurrentToken().Word(), p.Governor(), e.Source)

		if seen.WasSeen(newHash) {
			continue
		}
		seen.Record(newHash)

		newValidity := weights.ProjectValidity(p.Validity(), e.Type, mono)
		dCostTrue, dCostFalse := splitCost(dCost, p.Validity(), newValidity)

		child := searchnode.Mutate(p, newToken, newHash, e.Type, dCostTrue, dCostFalse, newValidity, parentID)
		if !allocateAndPush(child, pool, fr, export) {
			return false
		}
	}
	return true
}

// sameIndexAsParent reports whether p's own parent (the node the previous
// tick expanded from) held its cursor at the same index p does now — the
// changingSameWord signal WeightModel.Cost consumes.
// selfID is p's own pool id (the id the engine popped to produce p), not
// p.Backpointer(): the root also has Backpointer() == 0 (its own id), so
// checking the backpointer alone would misidentify every direct child of
// the root as "the root itself" and always report false for that whole
// generation. Only a selfID of 0 means p is the root and has no parent
// to compare against; any other p can look its parent up by backpointer,
// including when that backpointer happens to be the root (id 0).
func sameIndexAsParent(p searchnode.SearchNode, selfID uint32, pool *nodepool.Pool, index uint8) bool {
	if selfID == 0 {
		return false
	}
	parent := pool.Get(p.Backpointer())
	return parent.Index() == index
}

// splitCost routes a scalar edge cost onto the costIfTrue/costIfFalse
// accumulators. An edit that destroys validity zeroes the false-path
// delta, since the projection table says that path can no longer be
// reached truthfully; the true path always accrues the cost.
func splitCost(dCost float32, priorValidity, newValidity bool) (dCostTrue, dCostFalse float32) {
	dCostTrue = dCost
	if priorValidity && !newValidity {
		return dCost, 0
	}
	return dCost, dCost
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// DELETIONS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func expandDeletion(p searchnode.SearchNode, parentID uint32, t TreeView, graph kb.MutationGraph, weights kb.WeightModel, seen seenset.SeenSet, pool *nodepool.Pool, fr fringe.Fringe, export *channel.Channel) bool {
	index := p.Index()
	if index == t.Root() {
		return true // the absolute root of the tree is never deletable
	}

	probe := kb.Edge{Source: p.CurrentToken().Word(), SourceSense: p.CurrentToken().Sense()}
	if !graph.ContainsDeletion(probe) {
		return true
	}

	fullMask := t.CreateDeleteMask(index)
	addedMask := fullMask &^ p.DeleteMask()
	if addedMask == 0 {
		return true // already fully deleted along this path
	}

	mono := monotonicityAt(t, index)
	newHash := t.UpdateHashFromDeletions(p.FactHash(), index, p.CurrentToken().Word(), p.Governor(), addedMask)
	if seen.WasSeen(newHash) {
		return true
	}
	seen.Record(newHash)

	// A deletion has no mutation-graph edge of its own; it is scored and
	// projected as edge type 0 (weightmodel.Hypernym in the reference
	// model), so whether it preserves validity depends on the weight
	// model's entry for that type at the cursor's monotonicity.
	newValidity := weights.ProjectValidity(p.Validity(), 0, mono)
	dCost := weights.Cost(p.LastEdgeType(), kb.Edge{Type: 0}, false, mono)
	dCostTrue, dCostFalse := splitCost(dCost, p.Validity(), newValidity)

	child := searchnode.Delete(p, newHash, addedMask, 0, dCostTrue, dCostFalse, newValidity, parentID)
	return allocateAndPush(child, pool, fr, export)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CURSOR ADVANCE
// ═══════════════════════════════════════════════════════════════════════════════════════════════

// expandCursorAdvance pushes a move-cursor child for each non-deleted
// dependent of the current position, in ascending index order. This is
// the top-down traversal the hash-incrementality invariant depends on:
// descendants are only ever visited after their governor has already been
// through the cursor.
func expandCursorAdvance(p searchnode.SearchNode, parentID uint32, t TreeView, pool *nodepool.Pool, fr fringe.Fringe, export *channel.Channel) bool {
	index := p.Index()
	children, _ := t.Dependents(index, int(t.Length()))
	deleteMask := p.DeleteMask()

	for _, child := range children {
		if deleteMask&(uint32(1)<<child) != 0 {
			continue
		}
		newToken := t.Word(child)
		newGovernor := t.GovernorWord(child)
		node := searchnode.MoveCursor(p, child, newToken, newGovernor, parentID)
		if !allocateAndPush(node, pool, fr, export) {
			return false
		}
	}
	return true
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SHARED ALLOCATE + PUSH
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func allocateAndPush(n searchnode.SearchNode, pool *nodepool.Pool, fr fringe.Fringe, export *channel.Channel) bool {
	id, slot, err := pool.Allocate()
	if err != nil {
		return false
	}
	*slot = n
	if export != nil {
		export.Push(n) // best-effort mirror; a full ring means the optional consumer is behind, not an engine failure
	}
	return fr.Push(id, n.PriorityKey())
}
