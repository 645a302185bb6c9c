package expander

import (
	"testing"

	"github.com/naturalli/synsearch/channel"
	"github.com/naturalli/synsearch/fringe"
	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/lex"
	"github.com/naturalli/synsearch/nodepool"
	"github.com/naturalli/synsearch/searchnode"
	"github.com/naturalli/synsearch/seenset"
	"github.com/naturalli/synsearch/tree"
)

// ═══════════════════════════════════════════════════════════════════════════
// FIXTURES
// ═══════════════════════════════════════════════════════════════════════════

var (
	word1 = lex.NewWord(1)
	word5 = lex.NewWord(5)
	word9 = lex.NewWord(9)
)

// buildTestTree builds a 3-node tree: index0 (word1) is root, index1 and
// index2 (word2, word3) are its direct dependents.
func buildTestTree(t *testing.T) *tree.Tree {
	t.Helper()
	words := []lex.TaggedWord{
		lex.NewTaggedWord(word1, 0, lex.MonoUp),
		lex.NewTaggedWord(lex.NewWord(2), 0, lex.MonoUp),
		lex.NewTaggedWord(lex.NewWord(3), 0, lex.MonoUp),
	}
	governors := []uint8{lex.TreeRoot, 0, 0}
	relations := []uint8{0, 1, 2}
	tr, err := tree.New(words, governors, relations)
	if err != nil {
		t.Fatalf("tree.New() error: %v", err)
	}
	return tr
}

type fakeGraph struct {
	incoming  map[lex.Word][]kb.Edge
	deletable map[lex.Word]bool
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{incoming: make(map[lex.Word][]kb.Edge), deletable: make(map[lex.Word]bool)}
}

func (g *fakeGraph) IncomingEdges(word lex.Word) []kb.Edge { return g.incoming[word] }
func (g *fakeGraph) OutgoingEdges(lex.Word) []kb.Edge      { return nil }
func (g *fakeGraph) Gloss(lex.TaggedWord) string           { return "<UNK>" }
func (g *fakeGraph) ContainsDeletion(e kb.Edge) bool       { return g.deletable[e.Source] }
func (g *fakeGraph) VocabSize() uint64                     { return uint64(len(g.incoming)) }

var _ kb.MutationGraph = (*fakeGraph)(nil)

type fakeWeights struct {
	cost           float32
	breakValidity  bool
}

func (w fakeWeights) Cost(lex.EdgeType, kb.Edge, bool, lex.Monotonicity) float32 { return w.cost }
func (w fakeWeights) ProjectValidity(prior bool, _ lex.EdgeType, _ lex.Monotonicity) bool {
	if w.breakValidity {
		return false
	}
	return prior
}

var _ kb.WeightModel = fakeWeights{}

// ═══════════════════════════════════════════════════════════════════════════
// MUTATIONS
// ═══════════════════════════════════════════════════════════════════════════

func TestExpandMutationsSkipsNearestNeighbor(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	graph.incoming[word1] = []kb.Edge{
		{Source: word5, Sink: word1, Type: lex.NearestNeighbor},
		{Source: word9, Sink: word1, Type: lex.EdgeType(1)},
	}
	weights := fakeWeights{cost: 2.0}

	root := searchnode.NewRoot(tr)
	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root

	fr := fringe.NewUCS(8)
	ok := Expand(root, rootID, tr, graph, weights, seenset.None{}, pool, fr, nil)
	if !ok {
		t.Fatal("Expand() returned false, want true")
	}

	// Only the non-NearestNeighbor edge should have produced a mutation
	// child; expandCursorAdvance also contributes 2 move-cursor children
	// for the root's two dependents. Total = 1 mutation + 2 cursor moves.
	if fr.Len() != 3 {
		t.Fatalf("fringe.Len() = %d, want 3 (1 mutation + 2 cursor advances)", fr.Len())
	}
}

func TestExpandMutationsUpdatesHashAndCost(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	graph.incoming[word1] = []kb.Edge{{Source: word9, Sink: word1, Type: lex.EdgeType(2)}}
	weights := fakeWeights{cost: 3.5}

	root := searchnode.NewRoot(tr)
	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root

	fr := fringe.NewBFS(8)
	if !expandMutations(root, rootID, tr, graph, weights, seenset.None{}, pool, fr, nil) {
		t.Fatal("expandMutations returned false")
	}
	if fr.IsEmpty() {
		t.Fatal("expected a mutation child on the fringe")
	}
	id, _, _ := fr.Pop()
	child := pool.Get(id)
	if child.FactHash() == root.FactHash() {
		t.Error("mutation child should have a different fact hash than root")
	}
	if child.LastEdgeType() != lex.EdgeType(2) {
		t.Errorf("LastEdgeType() = %d, want 2", child.LastEdgeType())
	}
	if child.CostIfTrue() != 3.5 || child.CostIfFalse() != 3.5 {
		t.Errorf("costs = (%v, %v), want (3.5, 3.5)", child.CostIfTrue(), child.CostIfFalse())
	}
}

func TestExpandMutationsBreaksValidityZeroesFalseCost(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	graph.incoming[word1] = []kb.Edge{{Source: word9, Sink: word1, Type: lex.EdgeType(3)}}
	weights := fakeWeights{cost: 1.0, breakValidity: true}

	root := searchnode.NewRoot(tr)
	if !root.Validity() {
		t.Fatal("root should start valid")
	}
	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root

	fr := fringe.NewBFS(8)
	if !expandMutations(root, rootID, tr, graph, weights, seenset.None{}, pool, fr, nil) {
		t.Fatal("expandMutations returned false")
	}
	id, _, _ := fr.Pop()
	child := pool.Get(id)
	if child.Validity() {
		t.Fatal("child validity should have been broken")
	}
	if child.CostIfFalse() != 0 {
		t.Errorf("CostIfFalse() = %v, want 0 once validity is destroyed", child.CostIfFalse())
	}
	if child.CostIfTrue() != 1.0 {
		t.Errorf("CostIfTrue() = %v, want 1.0", child.CostIfTrue())
	}
}

func TestExpandMutationsFiltersAlreadySeen(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	graph.incoming[word1] = []kb.Edge{{Source: word9, Sink: word1, Type: lex.EdgeType(1)}}
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr)
	newHash := tr.UpdateHashFromMutation(root.FactHash(), root.Index(), word1, lex.TreeRootWord, word9)

	seen := seenset.NewBloom(1<<16, 4)
	seen.Record(newHash)

	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root
	fr := fringe.NewBFS(8)

	if !expandMutations(root, rootID, tr, graph, weights, seen, pool, fr, nil) {
		t.Fatal("expandMutations returned false")
	}
	if !fr.IsEmpty() {
		t.Fatal("a previously seen fact hash should not be re-expanded")
	}
}

// TestSameIndexAsParentDistinguishesRootFromRootsChild guards against
// conflating "p is the root" with "p's parent is the root": both have
// Backpointer() == 0 (the root's own pool id), but only the former has no
// parent to compare against.
func TestSameIndexAsParentDistinguishesRootFromRootsChild(t *testing.T) {
	tr := buildTestTree(t)
	root := searchnode.NewRoot(tr)
	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root
	if rootID != 0 {
		t.Fatalf("root pool id = %d, want 0", rootID)
	}

	if sameIndexAsParent(root, rootID, pool, root.Index()) {
		t.Error("the root itself has no parent to compare against")
	}

	child := searchnode.Mutate(root, root.CurrentToken(), root.FactHash(), 0, 0, 0, true, rootID)
	childID, childSlot, _ := pool.Allocate()
	*childSlot = child

	if !sameIndexAsParent(child, childID, pool, child.Index()) {
		t.Error("a direct child of the root should compare against the root's own index, not report false unconditionally")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// DELETIONS
// ═══════════════════════════════════════════════════════════════════════════

func TestExpandDeletionSkipsAbsoluteRoot(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	graph.deletable[word1] = true
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr) // Index() == tr.Root()
	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root
	fr := fringe.NewBFS(8)

	if !expandDeletion(root, rootID, tr, graph, weights, seenset.None{}, pool, fr, nil) {
		t.Fatal("expandDeletion returned false")
	}
	if !fr.IsEmpty() {
		t.Fatal("the tree root must never be deletable")
	}
}

func TestExpandDeletionRequiresGraphLicense(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph() // nothing marked deletable
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr)
	child := searchnode.MoveCursor(root, 1, tr.Word(1), tr.GovernorWord(1), 0)
	pool := nodepool.New(4, 0)
	id, slot, _ := pool.Allocate()
	*slot = child
	fr := fringe.NewBFS(8)

	if !expandDeletion(child, id, tr, graph, weights, seenset.None{}, pool, fr, nil) {
		t.Fatal("expandDeletion returned false")
	}
	if !fr.IsEmpty() {
		t.Fatal("an unlicensed deletion should not be pushed")
	}
}

func TestExpandDeletionPushesWhenLicensed(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	word2 := lex.NewWord(2)
	graph.deletable[word2] = true
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr)
	cursor := searchnode.MoveCursor(root, 1, tr.Word(1), tr.GovernorWord(1), 0)
	pool := nodepool.New(4, 0)
	id, slot, _ := pool.Allocate()
	*slot = cursor
	fr := fringe.NewBFS(8)

	if !expandDeletion(cursor, id, tr, graph, weights, seenset.None{}, pool, fr, nil) {
		t.Fatal("expandDeletion returned false")
	}
	if fr.IsEmpty() {
		t.Fatal("a licensed deletion should be pushed")
	}
	poppedID, _, _ := fr.Pop()
	popped := pool.Get(poppedID)
	if popped.DeleteMask() != tr.CreateDeleteMask(1) {
		t.Errorf("DeleteMask() = %b, want %b", popped.DeleteMask(), tr.CreateDeleteMask(1))
	}
}

func TestExpandDeletionAlreadyFullyDeleted(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	word2 := lex.NewWord(2)
	graph.deletable[word2] = true
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr)
	fullMask := tr.CreateDeleteMask(1)
	cursor := searchnode.Delete(root, root.FactHash(), fullMask, 0, 0, 0, true, 0)
	cursor = searchnode.MoveCursor(cursor, 1, tr.Word(1), tr.GovernorWord(1), 0)

	pool := nodepool.New(4, 0)
	id, slot, _ := pool.Allocate()
	*slot = cursor
	fr := fringe.NewBFS(8)

	if !expandDeletion(cursor, id, tr, graph, weights, seenset.None{}, pool, fr, nil) {
		t.Fatal("expandDeletion returned false")
	}
	if !fr.IsEmpty() {
		t.Fatal("a fully-deleted subtree should not be re-pushed")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// CURSOR ADVANCE
// ═══════════════════════════════════════════════════════════════════════════

func TestExpandCursorAdvanceSkipsDeletedChildren(t *testing.T) {
	tr := buildTestTree(t)
	root := searchnode.NewRoot(tr)
	deleted := searchnode.Delete(root, root.FactHash(), 1<<1, 0, 0, 0, true, 0)

	pool := nodepool.New(4, 0)
	id, slot, _ := pool.Allocate()
	*slot = deleted
	fr := fringe.NewBFS(8)

	if !expandCursorAdvance(deleted, id, tr, pool, fr, nil) {
		t.Fatal("expandCursorAdvance returned false")
	}
	if fr.Len() != 1 {
		t.Fatalf("fringe.Len() = %d, want 1 (only index 2 survives deletion)", fr.Len())
	}
	poppedID, _, _ := fr.Pop()
	if pool.Get(poppedID).Index() != 2 {
		t.Errorf("surviving cursor advance Index() = %d, want 2", pool.Get(poppedID).Index())
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// EXPORT CHANNEL
// ═══════════════════════════════════════════════════════════════════════════

func TestExpandMirrorsSuccessorsToExportChannel(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	graph.incoming[word1] = []kb.Edge{{Source: word9, Sink: word1, Type: lex.EdgeType(1)}}
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr)
	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root
	fr := fringe.NewBFS(8)
	export := channel.New()

	if !Expand(root, rootID, tr, graph, weights, seenset.None{}, pool, fr, export) {
		t.Fatal("Expand() returned false, want true")
	}

	// 1 mutation + 2 cursor advances should each have been mirrored.
	count := 0
	for {
		if _, ok := export.Poll(); !ok {
			break
		}
		count++
	}
	if count != 3 {
		t.Fatalf("export channel received %d entries, want 3 (1 mutation + 2 cursor advances)", count)
	}
}

func TestExpandToleratesFullExportChannel(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph() // no mutation/deletion edges; only cursor advances fire
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr)
	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root
	fr := fringe.NewBFS(8)
	export := channel.New()
	for i := 0; i < channel.BufferLength; i++ {
		export.Push(searchnode.SearchNode{})
	}

	if !Expand(root, rootID, tr, graph, weights, seenset.None{}, pool, fr, export) {
		t.Fatal("Expand() should still succeed when the export ring is full")
	}
	if fr.Len() != 2 {
		t.Fatalf("fringe.Len() = %d, want 2 (a full export ring must not block the fringe)", fr.Len())
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// OOM PROPAGATION
// ═══════════════════════════════════════════════════════════════════════════

func TestExpandReturnsFalseWhenPoolExhausted(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph()
	graph.incoming[word1] = []kb.Edge{{Source: word9, Sink: word1, Type: lex.EdgeType(1)}}
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr)
	pool := nodepool.New(0, 1) // bucket size 1, exactly one slot total
	rootID, slot, _ := pool.Allocate()
	*slot = root
	fr := fringe.NewBFS(8)

	if Expand(root, rootID, tr, graph, weights, seenset.None{}, pool, fr, nil) {
		t.Fatal("Expand() should report false once the pool is exhausted")
	}
}

func TestExpandReturnsFalseWhenFringeFull(t *testing.T) {
	tr := buildTestTree(t)
	graph := newFakeGraph() // no mutation or deletion edges, isolates cursor advance
	weights := fakeWeights{cost: 1.0}

	root := searchnode.NewRoot(tr)
	pool := nodepool.New(4, 0)
	rootID, slot, _ := pool.Allocate()
	*slot = root
	fr := fringe.NewBFS(1) // room for only one of the two cursor-advance children

	if Expand(root, rootID, tr, graph, weights, seenset.None{}, pool, fr, nil) {
		t.Fatal("Expand() should report false once the fringe rejects a push")
	}
}
