// Package synsearch implements natural-logic inference by search: given a
// query sentence expressed as a dependency tree, it searches a space of
// syntactically-constrained edits (word mutations, subtree deletions)
// that monotonically transform the query into some premise stored in a
// fact database. A successful search returns a path of edits whose
// cumulative cost is below a threshold — a proof that the premise
// entails, or is entailed by, the query under natural logic.
//
// The package wires together the lower-level packages that do the actual
// work: tree (the query representation and its incremental hash),
// searchnode/nodepool (the packed search state and its arena),
// fringe (the BFS/UCS frontier), seenset (dedup), channel (the optional
// SPSC bridge to a second executor), and expander (successor
// generation). MutationGraph, FactDB, and WeightModel (package kb) are
// read-only external collaborators the caller supplies.
package synsearch
