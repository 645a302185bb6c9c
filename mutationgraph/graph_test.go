package mutationgraph

import (
	"testing"

	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/lex"
)

var (
	wA = lex.NewWord(10)
	wB = lex.NewWord(20)
	wC = lex.NewWord(30)
)

func TestIncomingOutgoingEdges(t *testing.T) {
	edges := []kb.Edge{
		{Source: wA, Sink: wB, Type: 1},
		{Source: wC, Sink: wB, Type: 2},
		{Source: wB, Sink: wC, Type: 3},
	}
	g := New(edges, nil, nil)

	in := g.IncomingEdges(wB)
	if len(in) != 2 {
		t.Fatalf("IncomingEdges(wB) len = %d, want 2", len(in))
	}
	for _, e := range in {
		if e.Sink != wB {
			t.Errorf("IncomingEdges(wB) returned edge with sink %v, want wB", e.Sink)
		}
	}

	out := g.OutgoingEdges(wB)
	if len(out) != 1 || out[0].Sink != wC {
		t.Fatalf("OutgoingEdges(wB) = %+v, want single edge to wC", out)
	}

	if edges := g.IncomingEdges(wA); edges != nil {
		t.Errorf("IncomingEdges(wA) = %v, want nil (wA is never a sink)", edges)
	}
}

func TestGlossFallsBackToUnknown(t *testing.T) {
	glosses := map[uint32]string{uint32(wA)<<8 | 0: "alpha"}
	g := New(nil, nil, glosses)

	tagged := lex.NewTaggedWord(wA, 0, lex.MonoDefault)
	if got := g.Gloss(tagged); got != "alpha" {
		t.Errorf("Gloss(wA) = %q, want %q", got, "alpha")
	}
	missing := lex.NewTaggedWord(wB, 0, lex.MonoDefault)
	if got := g.Gloss(missing); got != "<UNK>" {
		t.Errorf("Gloss(missing) = %q, want <UNK>", got)
	}
}

func TestContainsDeletion(t *testing.T) {
	deletions := []kb.Edge{{Source: wA, Sink: 0, Type: 0}}
	g := New(nil, deletions, nil)

	if !g.ContainsDeletion(kb.Edge{Source: wA, Sink: 0, Type: 0}) {
		t.Error("ContainsDeletion should license the registered source")
	}
	if g.ContainsDeletion(kb.Edge{Source: wB, Sink: 0, Type: 0}) {
		t.Error("ContainsDeletion should require a matching source")
	}
}

// TestContainsDeletionIgnoresSinkAndType guards against reintroducing an
// edge-keyed comparison: ContainsDeletion licenses deleting a source word
// regardless of what sink/type the flagged edge happened to carry, since
// expandDeletion's probe never populates either field.
func TestContainsDeletionIgnoresSinkAndType(t *testing.T) {
	deletions := []kb.Edge{{Source: wA, Sink: wB, Type: 5}}
	g := New(nil, deletions, nil)

	if !g.ContainsDeletion(kb.Edge{Source: wA}) {
		t.Error("ContainsDeletion should license wA even though the registered edge carried a non-zero sink/type")
	}
}

func TestVocabSize(t *testing.T) {
	edges := []kb.Edge{
		{Source: wA, Sink: wB},
		{Source: wB, Sink: wC},
	}
	g := New(edges, nil, nil)
	if g.VocabSize() != 3 {
		t.Errorf("VocabSize() = %d, want 3", g.VocabSize())
	}
}

func TestEmptyGraphHasNoEdges(t *testing.T) {
	g := New(nil, nil, nil)
	if g.IncomingEdges(wA) != nil {
		t.Error("empty graph should report no incoming edges")
	}
	if g.OutgoingEdges(wA) != nil {
		t.Error("empty graph should report no outgoing edges")
	}
	if g.ContainsDeletion(kb.Edge{Source: wA}) {
		t.Error("empty graph should license no deletions")
	}
	if g.VocabSize() != 0 {
		t.Errorf("VocabSize() = %d, want 0", g.VocabSize())
	}
}
