// ════════════════════════════════════════════════════════════════════════════════════════════════
// Trie — canonical sorted-token fact store and completion index
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Reference FactDB
//
// Description:
//   A premise is stored as its ascending-sorted token sequence, so lookup
//   and completion are order-independent the way the original Trie/
//   TrieFactDB test fixture exercises them (original_source/test/src/
//   TestTrie.cc): {4,1} and {1,4} occupy the same trie path.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package factdb

import (
	"sort"

	"github.com/naturalli/synsearch/lex"
)

type trieNode struct {
	children map[lex.Word]*trieNode
	isFact   bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[lex.Word]*trieNode)}
}

// Trie is a reference, in-memory kb.FactDB.
type Trie struct {
	root           *trieNode
	validInsertion map[lex.Word]lex.EdgeType
}

// NewTrie returns an empty fact store.
func NewTrie() *Trie {
	return &Trie{
		root:           newTrieNode(),
		validInsertion: make(map[lex.Word]lex.EdgeType),
	}
}

func sortedCopy(tokens []lex.Word, length int) []lex.Word {
	cp := append([]lex.Word(nil), tokens[:length]...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	return cp
}

// Add records tokens[:length] as a known premise.
func (t *Trie) Add(tokens []lex.Word, length int) {
	cur := t.root
	for _, w := range sortedCopy(tokens, length) {
		next, ok := cur.children[w]
		if !ok {
			next = newTrieNode()
			cur.children[w] = next
		}
		cur = next
	}
	cur.isFact = true
}

// AddValidInsertion licenses word as an insertable completion word whose
// deletion (in the reverse direction) has type edgeType.
func (t *Trie) AddValidInsertion(word lex.Word, edgeType lex.EdgeType) {
	t.validInsertion[word] = edgeType
}

// Contains implements kb.FactDB.Contains; hash is unused by this reference
// implementation, which walks the trie directly.
func (t *Trie) Contains(hash uint64, tokens []lex.Word, length int) bool {
	node := t.walk(sortedCopy(tokens, length))
	return node != nil && node.isFact
}

func (t *Trie) walk(sorted []lex.Word) *trieNode {
	cur := t.root
	for _, w := range sorted {
		next, ok := cur.children[w]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// CompletionsFor implements kb.FactDB.CompletionsFor: it walks the sorted
// prefix formed by tokens[:length], and reports every word one level
// below that prefix node as a licensed single-word completion, in
// ascending order, alongside the edge type recorded by AddValidInsertion
// (lex.NearestNeighbor if the word was never registered).
func (t *Trie) CompletionsFor(tokens []lex.Word, length int, outCompletions []lex.Word, outEdges []lex.EdgeType) (int, bool) {
	sorted := sortedCopy(tokens, length)
	node := t.walk(sorted)
	if node == nil {
		return 0, false
	}
	children := make([]lex.Word, 0, len(node.children))
	for w := range node.children {
		children = append(children, w)
	}
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })

	n := len(children)
	if n > len(outCompletions) {
		n = len(outCompletions)
	}
	if n > len(outEdges) {
		n = len(outEdges)
	}
	for i := 0; i < n; i++ {
		outCompletions[i] = children[i]
		if et, ok := t.validInsertion[children[i]]; ok {
			outEdges[i] = et
		} else {
			outEdges[i] = lex.NearestNeighbor
		}
	}
	return n, node.isFact
}
