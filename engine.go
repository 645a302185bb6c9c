// ════════════════════════════════════════════════════════════════════════════════════════════════
// SynSearch — main search loop
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Engine
//
// Description:
//   Single-threaded, cooperative main loop: pop the lowest-cost fringe
//   entry, test it against the fact database, expand it, repeat. Follows
//   main.go's phased-orchestration style (each phase logged, failures
//   surfaced as a termination code rather than a panic or bare error).
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package synsearch

import (
	"fmt"

	"github.com/naturalli/synsearch/diag"
	"github.com/naturalli/synsearch/expander"
	"github.com/naturalli/synsearch/fringe"
	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/lex"
	"github.com/naturalli/synsearch/nodepool"
	"github.com/naturalli/synsearch/searchnode"
	"github.com/naturalli/synsearch/seenset"
	"github.com/naturalli/synsearch/tree"
)

// SynSearch runs a single query search to completion.
func SynSearch(graph kb.MutationGraph, factDB kb.FactDB, weights kb.WeightModel, t *tree.Tree, opts Options) (Response, error) {
	if t == nil {
		return Response{}, fmt.Errorf("synsearch: nil tree")
	}

	pool := nodepool.New(opts.PoolBucketShift, opts.PoolMaxBuckets)
	fr := newFringe(opts)
	seen := newSeenSet(opts)

	rootNode := searchnode.NewRoot(t)
	rootID, slot, err := pool.Allocate()
	if err != nil || rootID != 0 {
		return Response{}, fmt.Errorf("synsearch: could not allocate root")
	}
	*slot = rootNode
	seen.Record(rootNode.FactHash())
	if !fr.Push(rootID, rootNode.PriorityKey()) {
		return Response{Termination: OOM}, nil
	}

	var (
		found [][]searchnode.SearchNode
		ticks uint64
	)

	for {
		if fr.IsEmpty() {
			return finish(opts, found, ticks, Exhausted), nil
		}
		if uint32(ticks) >= opts.MaxTicks {
			return finish(opts, found, ticks, Timeout), nil
		}

		id, key, ok := fr.Pop()
		if !ok {
			return finish(opts, found, ticks, Exhausted), nil
		}
		ticks++

		if !opts.UseBFS && key > opts.CostThreshold {
			// UCS is monotone: every remaining entry is at least as
			// costly, so nothing left can beat the threshold either.
			return finish(opts, found, ticks, Exhausted), nil
		}

		node := pool.Get(id)
		tokens := currentTokens(t, node)
		if factDB.Contains(node.FactHash(), tokens, len(tokens)) {
			found = append(found, pool.ReconstructPath(id))
			if opts.StopWhenResultFound {
				return finish(opts, found, ticks, Found), nil
			}
		}

		if !expander.Expand(node, id, t, graph, weights, seen, pool, fr, opts.ExportSuccessors) {
			return finish(opts, found, ticks, OOM), nil
		}
	}
}

func finish(opts Options, found [][]searchnode.SearchNode, ticks uint64, term Termination) Response {
	diag.Termination(term, opts.Silent)
	return Response{Paths: found, TotalTicks: ticks, Termination: term}
}

func newFringe(opts Options) fringe.Fringe {
	capacity := opts.FringeCapacity
	if capacity <= 0 {
		capacity = 1 << 16
	}
	if opts.UseBFS {
		return fringe.NewBFS(capacity)
	}
	return fringe.NewUCS(capacity)
}

func newSeenSet(opts Options) seenset.SeenSet {
	if opts.SeenSetKind == "none" {
		return seenset.None{}
	}
	bits := opts.BloomBits
	if bits == 0 {
		bits = 1 << 20
	}
	k := opts.BloomHashes
	if k == 0 {
		k = 4
	}
	return seenset.NewBloom(bits, k)
}

// currentTokens materializes the token sequence a SearchNode implies:
// the original tree's words in index order, with deleted indices
// skipped and the cursor's own position substituted with the node's
// (possibly mutated) current token.
func currentTokens(t *tree.Tree, n searchnode.SearchNode) []lex.Word {
	mask := n.DeleteMask()
	tokens := make([]lex.Word, 0, t.Length())
	for i := uint8(0); i < t.Length(); i++ {
		if mask&(uint32(1)<<i) != 0 {
			continue
		}
		if i == n.Index() {
			tokens = append(tokens, n.CurrentToken().Word())
		} else {
			tokens = append(tokens, t.Word(i).Word())
		}
	}
	return tokens
}
