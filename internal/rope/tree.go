package rope

// Tree is the public handle onto a rope. The zero Tree is not valid;
// use Empty. A Tree value is immutable: every operation below returns a
// new Tree (or the receiver itself, when nothing changed), sharing
// untouched subtrees with the original.
type Tree[E Element[S], S Summary[S]] struct {
	root *node[E, S] // nil means the empty tree
}

// Empty returns the empty tree.
func Empty[E Element[S], S Summary[S]]() *Tree[E, S] {
	return &Tree[E, S]{}
}

// IsEmpty reports whether the tree holds zero elements.
func (t *Tree[E, S]) IsEmpty() bool { return t == nil || t.root == nil }

// ElementCount returns the number of leaf elements (e.g. chunks) in t.
func (t *Tree[E, S]) ElementCount() int {
	if t.IsEmpty() {
		return 0
	}
	return t.root.count
}

// Summary returns the whole tree's additive summary (the root's).
func (t *Tree[E, S]) Summary() S {
	var zero S
	if t.IsEmpty() {
		return zero
	}
	return t.root.summary
}

// ElementAt returns the element at global ordinal i (0-based, across all
// leaves in order). It fails fatally via panic if i is out of range;
// callers are expected to have validated i already (spec.md §4.6's
// "Index operations validate ... and fail fatally on out-of-bounds").
func (t *Tree[E, S]) ElementAt(i int) E {
	n := t.root
	for {
		if n == nil || i < 0 || i >= n.count {
			panic("rope: element index out of range")
		}
		if n.leaf {
			return n.elems[i]
		}
		for _, c := range n.children {
			if i < c.count {
				n = c
				break
			}
			i -= c.count
		}
	}
}

// ForEachElement calls fn with every element in order, stopping early if
// fn returns false.
func (t *Tree[E, S]) ForEachElement(fn func(E) bool) {
	if t.IsEmpty() {
		return
	}
	var walk func(n *node[E, S]) bool
	walk = func(n *node[E, S]) bool {
		if n.leaf {
			for _, e := range n.elems {
				if !fn(e) {
					return false
				}
			}
			return true
		}
		for _, c := range n.children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(t.root)
}

// Locate descends the tree by a metric, per spec.md §4.6's "Find by
// metric offset": sizeOf projects a subtree Summary onto the metric's
// notion of size (e.g. UTF-8 byte count). It returns the global ordinal
// of the element containing offset target in that metric, plus the
// residual offset within that element's own contribution, or ok=false if
// target is not strictly inside any element (including the empty-tree and
// exactly-at-the-end cases, which callers handle as their own sentinels).
func (t *Tree[E, S]) Locate(sizeOf func(S) int, target int) (ordinal int, residual int, ok bool) {
	if t.IsEmpty() || target < 0 {
		return 0, 0, false
	}
	n := t.root
	base := 0
	for {
		if n.leaf {
			acc := 0
			for i, e := range n.elems {
				sz := sizeOf(e.Measure())
				if acc+sz > target {
					return base + i, target - acc, true
				}
				acc += sz
			}
			return 0, 0, false
		}
		acc := 0
		childBase := 0
		found := false
		for _, c := range n.children {
			sz := sizeOf(c.summary)
			if acc+sz > target {
				n = c
				base += childBase
				target -= acc
				found = true
				break
			}
			acc += sz
			childBase += c.count
		}
		if !found {
			return 0, 0, false
		}
	}
}

// PrefixSize returns the sum, in the given metric, of every element
// before global ordinal i.
func (t *Tree[E, S]) PrefixSize(sizeOf func(S) int, i int) int {
	if t.IsEmpty() || i <= 0 {
		return 0
	}
	n := t.root
	total := 0
	for {
		if n.leaf {
			for j := 0; j < i && j < len(n.elems); j++ {
				total += sizeOf(n.elems[j].Measure())
			}
			return total
		}
		for _, c := range n.children {
			if i < c.count {
				n = c
				break
			}
			total += sizeOf(c.summary)
			i -= c.count
		}
	}
}

// SplitAtElement splits t into two trees: the first holding the first n
// elements, the second holding the rest. 0 <= n <= t.ElementCount().
func (t *Tree[E, S]) SplitAtElement(n int) (left, right *Tree[E, S]) {
	if t.IsEmpty() {
		return Empty[E, S](), Empty[E, S]()
	}
	if n <= 0 {
		return Empty[E, S](), t
	}
	if n >= t.root.count {
		return t, Empty[E, S]()
	}
	ln, rn := splitNode[E, S](t.root, n)
	return &Tree[E, S]{root: ln}, &Tree[E, S]{root: rn}
}

func splitNode[E Element[S], S Summary[S]](nd *node[E, S], n int) (*node[E, S], *node[E, S]) {
	if nd.leaf {
		return leafOrNil[E, S](nd.elems[:n]), leafOrNil[E, S](nd.elems[n:])
	}
	idx, rem := 0, n
	for i, c := range nd.children {
		if rem < c.count {
			idx = i
			break
		}
		rem -= c.count
		idx = i + 1
	}
	if idx == len(nd.children) {
		// boundary falls exactly at the end of the last child.
		return collapse[E, S](cloneNodeSlice[E, S](nd.children)), nil
	}
	lc, rc := splitNode[E, S](nd.children[idx], rem)
	leftChildren := append(cloneNodeSlice[E, S](nd.children[:idx]))
	if lc != nil {
		leftChildren = append(leftChildren, lc)
	}
	rightChildren := make([]*node[E, S], 0, len(nd.children)-idx)
	if rc != nil {
		rightChildren = append(rightChildren, rc)
	}
	rightChildren = append(rightChildren, cloneNodeSlice[E, S](nd.children[idx+1:])...)
	return collapse[E, S](leftChildren), collapse[E, S](rightChildren)
}

// Concat concatenates t and other, rebalancing the join spine, per
// spec.md §4.6. Either operand may be empty.
func (t *Tree[E, S]) Concat(other *Tree[E, S]) *Tree[E, S] {
	if t.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return t
	}
	n1, n2 := concatNodes[E, S](t.root, t.root.ht, other.root, other.root.ht)
	if n2 == nil {
		return &Tree[E, S]{root: n1}
	}
	return &Tree[E, S]{root: newInternal[E, S]([]*node[E, S]{n1, n2})}
}

// concatNodes merges adjacent subtrees a (height ha) and b (height hb),
// returning one replacement node, or two when a level's capacity
// overflowed and had to split (the caller wraps two results in a new
// parent, growing the tree's height by one).
func concatNodes[E Element[S], S Summary[S]](a *node[E, S], ha int, b *node[E, S], hb int) (*node[E, S], *node[E, S]) {
	switch {
	case ha == hb:
		if a.leaf {
			elems := make([]E, 0, len(a.elems)+len(b.elems))
			elems = append(elems, a.elems...)
			elems = append(elems, b.elems...)
			return splitLeafEvenly[E, S](elems)
		}
		children := make([]*node[E, S], 0, len(a.children)+len(b.children))
		children = append(children, a.children...)
		children = append(children, b.children...)
		return splitChildrenEvenly[E, S](children)
	case ha > hb:
		lastIdx := len(a.children) - 1
		newLast, overflow := concatNodes[E, S](a.children[lastIdx], ha-1, b, hb)
		children := cloneNodeSlice[E, S](a.children[:lastIdx])
		children = append(children, newLast)
		if overflow != nil {
			children = append(children, overflow)
		}
		return splitChildrenEvenly[E, S](children)
	default: // ha < hb
		firstIdx := 0
		newFirst, overflow := concatNodes[E, S](a, ha, b.children[firstIdx], hb-1)
		var children []*node[E, S]
		if overflow != nil {
			children = append(children, newFirst, overflow)
		} else {
			children = append(children, newFirst)
		}
		children = append(children, cloneNodeSlice[E, S](b.children[firstIdx+1:])...)
		return splitChildrenEvenly[E, S](children)
	}
}
