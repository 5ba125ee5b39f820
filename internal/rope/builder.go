package rope

// Builder accumulates elements into a balanced tree in O(n/B) amortized
// work rather than O(n) repeated insertion, per spec.md §4.6. It mirrors
// veggiemonk-aretext's two-phase bulk loader (bulkLoadIntoLeaves, then
// buildInnerNodesFromLeaves): Push appends to a flat run of completed
// leaves plus one pending (possibly undersized) leaf, and Finalize grows
// the inner levels bottom-up from that flat run exactly the way
// buildInnerNodesFromLeaves groups sibling leaf groups into parents one
// level at a time.
//
// Builder has no notion of grapheme-breaker state or any other
// application-specific boundary bookkeeping; text.Builder layers that on
// top by wrapping this type.
type Builder[E Element[S], S Summary[S]] struct {
	leaves  []*node[E, S]
	pending []E
}

// NewBuilder returns an empty Builder.
func NewBuilder[E Element[S], S Summary[S]]() *Builder[E, S] {
	return &Builder[E, S]{}
}

// Push appends one element to the builder's pending leaf, flushing it into
// the completed-leaf run once it reaches MaxNodeSize.
func (b *Builder[E, S]) Push(e E) {
	b.pending = append(b.pending, e)
	if len(b.pending) == MaxNodeSize {
		b.flush()
	}
}

// PushLeaf appends a whole pre-built leaf of elements directly, skipping
// the pending buffer. Used when a caller (text.Builder) already has a
// full leaf's worth of chunks ready to go.
func (b *Builder[E, S]) PushLeaf(elems []E) {
	if len(b.pending) > 0 {
		b.flush()
	}
	if len(elems) > 0 {
		b.leaves = append(b.leaves, newLeaf[E, S](elems))
	}
}

func (b *Builder[E, S]) flush() {
	if len(b.pending) == 0 {
		return
	}
	b.leaves = append(b.leaves, newLeaf[E, S](b.pending))
	b.pending = nil
}

// Len reports how many elements have been pushed so far (including the
// still-pending leaf).
func (b *Builder[E, S]) Len() int {
	n := len(b.pending)
	for _, l := range b.leaves {
		n += l.count
	}
	return n
}

// Finalize flushes any pending elements (even if that leaves the tree's
// sole leaf undersized, per spec.md §3's singleton exception) and builds
// the balanced inner levels bottom-up.
func (b *Builder[E, S]) Finalize() *Tree[E, S] {
	b.flush()
	if len(b.leaves) == 0 {
		return Empty[E, S]()
	}
	level := b.leaves
	for len(level) > 1 {
		level = buildParentLevel[E, S](level)
	}
	return &Tree[E, S]{root: level[0]}
}

// buildParentLevel groups a level of nodes into parents of up to
// MaxNodeSize children each, mirroring buildInnerNodesFromLeaves'
// grouping of leafGroups into parentGroups one level at a time.
func buildParentLevel[E Element[S], S Summary[S]](level []*node[E, S]) []*node[E, S] {
	parents := make([]*node[E, S], 0, len(level)/MaxNodeSize+1)
	for i := 0; i < len(level); i += MaxNodeSize {
		end := i + MaxNodeSize
		if end > len(level) {
			end = len(level)
		}
		parents = append(parents, newInternal[E, S](level[i:end]))
	}
	return parents
}
