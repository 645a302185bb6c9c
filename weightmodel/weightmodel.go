// ════════════════════════════════════════════════════════════════════════════════════════════════
// Default weight model — edge cost and natural-logic validity projection
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Natural-Logic Search Engine
// Component: Reference WeightModel
//
// Description:
//   Assigns a base cost per lexical edge relation, adjusted by the graph's
//   own per-edge cost, a same-word-revisit penalty, and the monotonicity
//   at the edited tree position; and carries the natural-logic validity
//   projection table (original_source/src/Graph.cc computes an analogous
//   per-edge, per-monotonicity flip when building its invalid-deletion
//   set).
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package weightmodel

import (
	"github.com/naturalli/synsearch/kb"
	"github.com/naturalli/synsearch/lex"
)

// The nine non-NearestNeighbor lexical relation classes a mutation edge
// can carry. lex.NearestNeighbor (9) is reserved and never reaches Cost
// or ProjectValidity: the expander skips it before scoring.
const (
	Hypernym lex.EdgeType = iota
	Hyponym
	Synonym
	Antonym
	AddModifier
	RemoveModifier
	Nominalize
	QuantifierWeaken
	QuantifierStrengthen
	numEdgeTypes = 9
)

const numMono = 4 // lex.MonoUp, MonoDown, MonoFlat, MonoDefault

// sameWordPenalty discourages the search from repeatedly re-editing the
// tree position the previous step already touched (see DESIGN.md for the
// model-defined choice of penalty magnitude).
const sameWordPenalty = 0.75

// baseCost is the per-relation cost floor before the graph's own
// edge.Cost and monotonicity adjustment are applied.
var baseCost = [numEdgeTypes]float32{
	Hypernym:             1.0,
	Hyponym:              1.5,
	Synonym:              0.1,
	Antonym:              5.0,
	AddModifier:          1.0,
	RemoveModifier:       0.5,
	Nominalize:           0.75,
	QuantifierWeaken:     1.25,
	QuantifierStrengthen: 1.75,
}

// monoScale multiplies the base cost (the graph's own edge.Cost is added
// unscaled) according to the monotonicity of the position being edited:
// generalizing (Hypernym) an upward-monotone argument or specializing
// (Hyponym) a downward-monotone one is licensed cheaply; the reverse is
// expensive; flat/default positions are neutral.
var monoScale = [numEdgeTypes][numMono]float32{
	Hypernym: {lex.MonoUp: 0.5, lex.MonoDown: 2.0, lex.MonoFlat: 1.0, lex.MonoDefault: 1.0},
	Hyponym:  {lex.MonoUp: 2.0, lex.MonoDown: 0.5, lex.MonoFlat: 1.0, lex.MonoDefault: 1.0},
	Synonym:  {lex.MonoUp: 1.0, lex.MonoDown: 1.0, lex.MonoFlat: 1.0, lex.MonoDefault: 1.0},
	Antonym:  {lex.MonoUp: 1.0, lex.MonoDown: 1.0, lex.MonoFlat: 1.0, lex.MonoDefault: 1.0},
}

// projectionFlip[edgeType][mono] reports whether applying that edge at
// that monotonicity flips the running validity bit. Unlisted edge types
// default to "never flips" (the zero value).
var projectionFlip = [numEdgeTypes][numMono]bool{
	Hypernym: {lex.MonoUp: false, lex.MonoDown: true, lex.MonoFlat: false, lex.MonoDefault: false},
	Hyponym:  {lex.MonoUp: true, lex.MonoDown: false, lex.MonoFlat: false, lex.MonoDefault: false},
	Antonym:  {lex.MonoUp: true, lex.MonoDown: true, lex.MonoFlat: true, lex.MonoDefault: false},
	RemoveModifier: {lex.MonoUp: false, lex.MonoDown: true, lex.MonoFlat: false, lex.MonoDefault: false},
	QuantifierWeaken:     {lex.MonoUp: false, lex.MonoDown: true, lex.MonoFlat: false, lex.MonoDefault: false},
	QuantifierStrengthen: {lex.MonoUp: true, lex.MonoDown: false, lex.MonoFlat: false, lex.MonoDefault: false},
}

// Default is the reference kb.WeightModel.
type Default struct{}

// NewDefault returns the reference weight model. It is stateless.
func NewDefault() Default { return Default{} }

// Cost implements kb.WeightModel.
func (Default) Cost(lastEdgeType lex.EdgeType, edge kb.Edge, changingSameWord bool, mono lex.Monotonicity) float32 {
	t := edge.Type
	cost := edge.Cost
	if int(t) < numEdgeTypes {
		cost += baseCost[t] * scaleFor(t, mono)
	} else {
		cost += baseCost[Synonym]
	}
	if changingSameWord {
		cost += sameWordPenalty
	}
	return cost
}

func scaleFor(t lex.EdgeType, mono lex.Monotonicity) float32 {
	s := monoScale[t][mono]
	if s == 0 {
		return 1.0
	}
	return s
}

// ProjectValidity implements kb.WeightModel.
func (Default) ProjectValidity(priorValidity bool, edgeType lex.EdgeType, mono lex.Monotonicity) bool {
	if int(edgeType) >= numEdgeTypes {
		return priorValidity
	}
	if projectionFlip[edgeType][mono] {
		return !priorValidity
	}
	return priorValidity
}
