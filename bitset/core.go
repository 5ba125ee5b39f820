package bitset

// BitSetCore is a dynamic vector of words implementing full set algebra
// over nonnegative integers. Bit n is set iff storage[n/64] has bit n%64
// set. storage is always kept in canonical form: it never ends in an
// all-zero word, so the empty set has storage of length zero and
// byte-for-byte storage equality is semantic equality.
//
// Callers at this layer are trusted not to pass negative values; the
// surface-facing BitSetView is what gates negatives (see view.go).
type BitSetCore struct {
	storage []word
}

// wordIndex and bitOffset split a value into its word/bit coordinates.
func wordIndex(v uint) uint { return v / wordBits }
func bitOffset(v uint) uint { return v % wordBits }

// Len reports the number of words currently allocated (exported for the
// wire codec; not part of the element-counting API).
func (b *BitSetCore) Len() int { return len(b.storage) }

// contains reports whether v is a member, in O(1).
func (b *BitSetCore) contains(v uint) bool {
	wi := wordIndex(v)
	if wi >= uint(len(b.storage)) {
		return false
	}
	return b.storage[wi].contains(bitOffset(v))
}

// ensure grows storage so that word index wi exists, appending empty words.
func (b *BitSetCore) ensure(wi uint) {
	for uint(len(b.storage)) <= wi {
		b.storage = append(b.storage, 0)
	}
}

// insert adds v to the set. Because insert only ever sets bits, it can
// never itself violate canonical form: growth only ever appends words, and
// the newly set bit keeps the final word nonzero.
func (b *BitSetCore) insert(v uint) {
	wi := wordIndex(v)
	b.ensure(wi)
	b.storage[wi].insert(bitOffset(v))
}

// remove clears v's bit if present. Clearing a bit can create a trailing
// run of all-zero words, so remove always shrinks afterward.
func (b *BitSetCore) remove(v uint) {
	wi := wordIndex(v)
	if wi >= uint(len(b.storage)) {
		return
	}
	b.storage[wi].remove(bitOffset(v))
	b.shrink()
}

// shrink drops the longest all-zero suffix of storage, restoring canonical
// form. It is called after any operation that might clear tail bits.
func (b *BitSetCore) shrink() {
	n := len(b.storage)
	for n > 0 && b.storage[n-1].isEmpty() {
		n--
	}
	b.storage = b.storage[:n]
}

// count returns the total number of set bits.
func (b *BitSetCore) count() int {
	n := 0
	for _, w := range b.storage {
		n += w.count()
	}
	return n
}

// isEmpty reports whether no bits are set. Canonical form guarantees this
// is equivalent to storage having zero length.
func (b *BitSetCore) isEmpty() bool { return len(b.storage) == 0 }

// clone returns an independent deep copy.
func (b *BitSetCore) clone() *BitSetCore {
	cp := &BitSetCore{storage: make([]word, len(b.storage))}
	copy(cp.storage, b.storage)
	return cp
}

// --- range operations -------------------------------------------------

// splitRange decomposes [lo, hi) into a half-open run of whole words plus
// up to two partial-word edges, invoking fn(wordIdx, mask) for every word
// the range touches.
func splitRange(lo, hi uint, fn func(wi uint, mask word)) {
	if lo >= hi {
		return
	}
	loWord, loBit := wordIndex(lo), bitOffset(lo)
	hiWord, hiBit := wordIndex(hi), bitOffset(hi)

	if loWord == hiWord {
		fn(loWord, wordRange(loBit, hiBit))
		return
	}
	fn(loWord, wordRange(loBit, wordBits))
	for wi := loWord + 1; wi < hiWord; wi++ {
		fn(wi, word(^uint64(0)))
	}
	if hiBit > 0 {
		fn(hiWord, wordUpTo(hiBit))
	}
}

// insertRange sets every bit in [lo, hi).
func (b *BitSetCore) insertRange(lo, hi uint) {
	if lo >= hi {
		return
	}
	b.ensure(wordIndex(hi - 1))
	splitRange(lo, hi, func(wi uint, mask word) {
		b.storage[wi] |= mask
	})
}

// removeRange clears every bit in [lo, hi).
func (b *BitSetCore) removeRange(lo, hi uint) {
	if lo >= hi || len(b.storage) == 0 {
		return
	}
	splitRange(lo, hi, func(wi uint, mask word) {
		if wi < uint(len(b.storage)) {
			b.storage[wi] &^= mask
		}
	})
	b.shrink()
}

// toggleRange flips every bit in [lo, hi).
func (b *BitSetCore) toggleRange(lo, hi uint) {
	if lo >= hi {
		return
	}
	b.ensure(wordIndex(hi-1) + 1)
	splitRange(lo, hi, func(wi uint, mask word) {
		b.storage[wi] ^= mask
	})
	b.shrink()
}

// intersectRange keeps only bits that lie within [lo, hi), clearing
// everything outside of it.
func (b *BitSetCore) intersectRange(lo, hi uint) {
	if len(b.storage) == 0 {
		return
	}
	if lo > 0 {
		splitRange(0, lo, func(wi uint, mask word) {
			if wi < uint(len(b.storage)) {
				b.storage[wi] &^= mask
			}
		})
	}
	endWord := wordIndex(hi)
	for wi := endWord + 1; wi < uint(len(b.storage)); wi++ {
		b.storage[wi] = 0
	}
	if endWord < uint(len(b.storage)) {
		b.storage[endWord] &= wordUpTo(bitOffset(hi))
	}
	b.shrink()
}

// --- binary set algebra -------------------------------------------------

func maxLen(a, b int) int {
	if a > b {
		return a
	}
	return b
}
func minLen(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// union returns a new set containing every element of b or other.
func (b *BitSetCore) union(other *BitSetCore) *BitSetCore {
	n := maxLen(len(b.storage), len(other.storage))
	out := &BitSetCore{storage: make([]word, n)}
	for i := 0; i < n; i++ {
		var a, o word
		if i < len(b.storage) {
			a = b.storage[i]
		}
		if i < len(other.storage) {
			o = other.storage[i]
		}
		out.storage[i] = a.union(o)
	}
	out.shrink()
	return out
}

// intersection returns a new set containing only elements present in both.
func (b *BitSetCore) intersection(other *BitSetCore) *BitSetCore {
	n := minLen(len(b.storage), len(other.storage))
	out := &BitSetCore{storage: make([]word, n)}
	for i := 0; i < n; i++ {
		out.storage[i] = b.storage[i].intersection(other.storage[i])
	}
	out.shrink()
	return out
}

// subtracting returns a new set containing elements of b that are not in other.
func (b *BitSetCore) subtracting(other *BitSetCore) *BitSetCore {
	n := len(b.storage)
	out := &BitSetCore{storage: make([]word, n)}
	for i := 0; i < n; i++ {
		var o word
		if i < len(other.storage) {
			o = other.storage[i]
		}
		out.storage[i] = b.storage[i].subtracting(o)
	}
	out.shrink()
	return out
}

// symmetricDifference returns a new set containing elements present in
// exactly one of b, other.
func (b *BitSetCore) symmetricDifference(other *BitSetCore) *BitSetCore {
	n := maxLen(len(b.storage), len(other.storage))
	out := &BitSetCore{storage: make([]word, n)}
	for i := 0; i < n; i++ {
		var a, o word
		if i < len(b.storage) {
			a = b.storage[i]
		}
		if i < len(other.storage) {
			o = other.storage[i]
		}
		out.storage[i] = a.symmetricDifference(o)
	}
	out.shrink()
	return out
}

// formUnion mutates b in place to be the union of b and other.
func (b *BitSetCore) formUnion(other *BitSetCore) {
	if n := maxLen(len(b.storage), len(other.storage)); n > 0 {
		b.ensure(uint(n - 1))
	}
	for i := range other.storage {
		b.storage[i] |= other.storage[i]
	}
}

// formIntersection mutates b in place to be the intersection of b and other.
func (b *BitSetCore) formIntersection(other *BitSetCore) {
	n := minLen(len(b.storage), len(other.storage))
	for i := 0; i < n; i++ {
		b.storage[i] &= other.storage[i]
	}
	b.storage = b.storage[:n]
	b.shrink()
}

// formSubtraction mutates b in place to remove every element also in other.
func (b *BitSetCore) formSubtraction(other *BitSetCore) {
	n := minLen(len(b.storage), len(other.storage))
	for i := 0; i < n; i++ {
		b.storage[i] &^= other.storage[i]
	}
	b.shrink()
}

// formSymmetricDifference mutates b in place.
func (b *BitSetCore) formSymmetricDifference(other *BitSetCore) {
	b.ensure(uint(maxLen(len(b.storage), len(other.storage))))
	for i := range other.storage {
		b.storage[i] ^= other.storage[i]
	}
	b.shrink()
}

// --- relational predicates ----------------------------------------------

// isSubset reports whether every element of b is also in other.
func (b *BitSetCore) isSubset(other *BitSetCore) bool {
	if len(b.storage) > len(other.storage) {
		for i := len(other.storage); i < len(b.storage); i++ {
			if !b.storage[i].isEmpty() {
				return false
			}
		}
	}
	n := minLen(len(b.storage), len(other.storage))
	for i := 0; i < n; i++ {
		if b.storage[i].subtracting(other.storage[i]) != 0 {
			return false
		}
	}
	return true
}

// isStrictSubset reports whether b is a subset of other and b != other.
func (b *BitSetCore) isStrictSubset(other *BitSetCore) bool {
	return b.isSubset(other) && !b.isEqualSet(other)
}

// isSuperset reports whether other is a subset of b.
func (b *BitSetCore) isSuperset(other *BitSetCore) bool {
	return other.isSubset(b)
}

// isStrictSuperset reports whether other is a subset of b and b != other.
func (b *BitSetCore) isStrictSuperset(other *BitSetCore) bool {
	return other.isSubset(b) && !b.isEqualSet(other)
}

// isDisjoint reports whether b and other share no elements.
func (b *BitSetCore) isDisjoint(other *BitSetCore) bool {
	n := minLen(len(b.storage), len(other.storage))
	for i := 0; i < n; i++ {
		if b.storage[i].intersection(other.storage[i]) != 0 {
			return false
		}
	}
	return true
}

// isEqualSet reports byte-for-byte storage equality, which canonical form
// guarantees is semantic set equality.
func (b *BitSetCore) isEqualSet(other *BitSetCore) bool {
	if len(b.storage) != len(other.storage) {
		return false
	}
	for i := range b.storage {
		if b.storage[i] != other.storage[i] {
			return false
		}
	}
	return true
}

// --- iteration ------------------------------------------------------------

// forEach calls fn with every member in strictly ascending order.
func (b *BitSetCore) forEach(fn func(v uint)) {
	for wi, w := range b.storage {
		for w != 0 {
			bit, ok := w.next()
			if !ok {
				break
			}
			fn(uint(wi)*wordBits + uint(bit))
		}
	}
}

// firstMember returns the smallest member of the set, if any.
func (b *BitSetCore) firstMember() (uint, bool) {
	for wi, w := range b.storage {
		if w != 0 {
			return uint(wi)*wordBits + uint(w.firstSetBit()), true
		}
	}
	return 0, false
}

// indexAfter returns the smallest member strictly greater than v, and
// whether one exists.
func (b *BitSetCore) indexAfter(v uint) (uint, bool) {
	wi := wordIndex(v + 1)
	startBit := bitOffset(v + 1)
	if wi < uint(len(b.storage)) {
		if masked := b.storage[wi] & ^wordUpTo(startBit); masked != 0 {
			return wi*wordBits + uint(masked.firstSetBit()), true
		}
		wi++
	}
	for ; wi < uint(len(b.storage)); wi++ {
		if b.storage[wi] != 0 {
			return wi*wordBits + uint(b.storage[wi].firstSetBit()), true
		}
	}
	return 0, false
}

// indexBefore returns the largest member strictly smaller than v, and
// whether one exists.
func (b *BitSetCore) indexBefore(v uint) (uint, bool) {
	if v == 0 || len(b.storage) == 0 {
		return 0, false
	}
	wi := wordIndex(v - 1)
	if wi >= uint(len(b.storage)) {
		wi = uint(len(b.storage)) - 1
	} else {
		endBit := bitOffset(v-1) + 1
		if masked := b.storage[wi] & wordUpTo(endBit); masked != 0 {
			return wi*wordBits + uint(masked.lastSetBit()), true
		}
		if wi == 0 {
			return 0, false
		}
		wi--
	}
	for {
		if b.storage[wi] != 0 {
			return wi*wordBits + uint(b.storage[wi].lastSetBit()), true
		}
		if wi == 0 {
			return 0, false
		}
		wi--
	}
}

// fromValues builds a BitSetCore containing exactly the given values
// (duplicates collapse, as for any set).
func fromValues(vs []uint) *BitSetCore {
	b := &BitSetCore{}
	for _, v := range vs {
		b.insert(v)
	}
	return b
}
