// Package rope implements the generic, summary-carrying B-tree engine
// spec.md §4.6 describes as Rope<Summary>: a height-balanced tree whose
// leaves hold elements and whose internal nodes cache the additive sum of
// their children's summaries. It has no notion of text, UTF-8, or
// grapheme clusters — those live in the text package, which instantiates
// this engine with Chunk elements and a four-metric Summary.
//
// The tree is realized as a fully persistent (immutable) structure:
// mutating operations build fresh nodes along the edit spine and reuse
// every subtree they do not touch, rather than mutating shared nodes in
// place behind a reference-count uniqueness check (Go has no
// isKnownUniquelyReferenced primitive to drive such a check). See
// DESIGN.md for the rationale; spec.md §9 allows either design as long as
// unrelated subtrees are shared and parents are never reached via weak
// back-pointers.
package rope

// Summary is an additive per-subtree annotation: a 4-tuple for BigString,
// but the engine itself only needs Add/Sub/IsZero. S is required to
// satisfy Summary[S] itself (F-bounded), so a tree's own summary type can
// combine with itself.
type Summary[S any] interface {
	Add(other S) S
	Sub(other S) S
	IsZero() bool
}

// Element is a leaf payload that knows its own summary. For BigString
// this is a Chunk; Measure is expected to be cheap (a precomputed-field
// read), not a recount.
type Element[S any] interface {
	Measure() S
}
