package synsearch

// constants.go — stable, load-bearing tunables re-exported from lex for
// callers that only import the root package.

import "github.com/naturalli/synsearch/lex"

const (
	// MaxQueryLength is the largest number of tokens a query tree may hold.
	MaxQueryLength = lex.MaxQueryLength

	// TreeRoot is the sentinel 6-bit governor value marking the tree root.
	TreeRoot = lex.TreeRoot

	// NearestNeighborEdgeType marks edges the expander skips as
	// parametric noise rather than logical edits.
	NearestNeighborEdgeType = lex.NearestNeighbor

	// PoolBucketShift is the default log2 bucket size for the node pool.
	PoolBucketShift = lex.PoolBucketShift
)

// TreeRootWord is the reserved governor word used for the root's own
// incoming edge triple.
var TreeRootWord = lex.TreeRootWord
