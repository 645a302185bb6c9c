// Package kb declares the read-only external collaborators the search core
// consumes: the mutation graph, the fact database, and the edge weight
// model. The core never constructs these; it only calls through the
// interfaces here, so any KB implementation (in-memory, SQLite-backed,
// generated) can drive the same engine.
package kb

import "github.com/naturalli/synsearch/lex"

// Edge is a licensed lexical substitution between two tagged words.
type Edge struct {
	Source      lex.Word
	SourceSense uint8
	Sink        lex.Word
	SinkSense   uint8
	Type        lex.EdgeType
	Cost        float32
}

// MutationGraph is the lexical/ontological knowledge base of valid
// word-to-word edits. Implementations must keep the slice returned by
// IncomingEdges stable and outliving the engine.
type MutationGraph interface {
	// IncomingEdges returns every edge whose sink is word.
	IncomingEdges(word lex.Word) []Edge
	// OutgoingEdges returns every edge whose source is word (the
	// bidirectional overlay of IncomingEdges).
	OutgoingEdges(word lex.Word) []Edge
	// Gloss renders a tagged word for diagnostics, "<UNK>" on miss.
	Gloss(word lex.TaggedWord) string
	// ContainsDeletion reports whether deleting edge.Source is a licensed
	// syntactic deletion. This is the single source of truth for
	// deletion validity (see DESIGN.md, Open Questions).
	ContainsDeletion(edge Edge) bool
	// VocabSize reports the number of distinct words known to the graph.
	VocabSize() uint64
}

// FactDB is the trie of known premises.
type FactDB interface {
	// Contains reports whether the exact token sequence tokens[:length]
	// is a stored premise. hash is the caller's incremental hash of that
	// sequence, offered as a fast pre-check; implementations may ignore
	// it and compare tokens directly.
	Contains(hash uint64, tokens []lex.Word, length int) bool

	// CompletionsFor fills outCompletions/outEdges with the tokens (and
	// the edge type licensing each insertion) that would extend
	// tokens[:length] into a stored premise, and reports whether the
	// exact sequence tokens[:length] is itself stored.
	CompletionsFor(tokens []lex.Word, length int, outCompletions []lex.Word, outEdges []lex.EdgeType) (n int, exact bool)
}

// WeightModel scores edges and projects natural-logic validity.
type WeightModel interface {
	// Cost computes the incremental cost of applying edge at a position
	// with monotonicity mono, given the type of the edge that produced
	// the current search node (lastEdgeType) and whether this edge edits
	// the same tree position as that previous edit (changingSameWord).
	Cost(lastEdgeType lex.EdgeType, edge Edge, changingSameWord bool, mono lex.Monotonicity) float32

	// ProjectValidity applies the natural-logic projection table, mapping
	// the validity bit before the edit to the validity bit after it.
	ProjectValidity(priorValidity bool, edgeType lex.EdgeType, mono lex.Monotonicity) bool
}
