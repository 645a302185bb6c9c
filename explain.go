package synsearch

import (
	"strings"

	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/searchnode"
)

// ExplainPath renders a found path's token sequence using the mutation
// graph's glosses, one word per edit step, "<UNK>" on a missing gloss.
// This mirrors the original NaturalLI's debug tracing of accepted paths
// (see original_source/src/Search.cc) as a small, non-hot-path
// presentation helper.
func ExplainPath(graph kb.MutationGraph, path []searchnode.SearchNode) string {
	var b strings.Builder
	for i, n := range path {
		if i > 0 {
			b.WriteString(" -> ")
		}
		b.WriteString(graph.Gloss(n.CurrentToken()))
	}
	return b.String()
}
