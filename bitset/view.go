package bitset

import (
	"math/rand/v2"

	set3 "github.com/TomTonic/Set3"

	"github.com/gocollect/corestruct/internal/xerrors"
)

// BitSetView is the public value type over BitSetCore. It accepts signed
// Go integers at its boundary and is responsible for exactly the
// negative/out-of-range gating spec.md §4.3 and §7 describe: queries and
// removals silently treat negatives as absent, while insertions (Insert,
// and InsertRange/ToggleRange with a negative upper bound) fail fatally.
//
// Per spec.md §5, copying a BitSetView shares storage until a mutation:
// an ordinary Go assignment (b := a) copies only the core pointer, so a
// and b alias the same BitSetCore. Go has no isKnownUniquelyReferenced
// to tell a mutation whether that aliasing is real, so instead of a
// refcount this follows internal/rope.Tree's persistent-node approach:
// every mutating method clones the core it is about to write to (see
// cow) before changing it, so a's handle never observes b's edits or
// vice versa. Mutating methods therefore take a pointer receiver, since
// the clone must be written back into the caller's own BitSetView value.
type BitSetView struct {
	core *BitSetCore
}

// cow gives v exclusive ownership of a fresh core by cloning its current
// one and storing the clone back into v, then returns it for the caller
// to mutate. Every mutating method on BitSetView goes through this, so a
// view obtained by plain assignment from another never shares writes.
func (v *BitSetView) cow() *BitSetCore {
	fresh := v.core.clone()
	v.core = fresh
	return fresh
}

// New returns an empty BitSetView.
func New() BitSetView {
	return BitSetView{core: &BitSetCore{}}
}

// FromInts returns a BitSetView containing exactly the given values.
// Negative values are rejected fatally, matching insert's contract.
func FromInts(vs ...int) BitSetView {
	v := New()
	for _, x := range vs {
		v.Insert(x)
	}
	return v
}

// FromRange returns a BitSetView containing every integer in [lo, hi).
func FromRange(lo, hi int) BitSetView {
	v := New()
	v.InsertRange(lo, hi)
	return v
}

// FromSet3 converts a *set3.Set3[int] into a BitSetView, wiring the
// teacher's own hash-set dependency in as one of the "arbitrary integer
// iterable" inputs spec.md §6 calls for.
func FromSet3(s *set3.Set3[int]) BitSetView {
	v := New()
	if s == nil {
		return v
	}
	s.ForEach(func(x int) {
		v.Insert(x)
	})
	return v
}

// ToSet3 materializes the view's members into a *set3.Set3[int].
func (v BitSetView) ToSet3() *set3.Set3[int] {
	out := set3.EmptyWithCapacity[int](uint32(v.Count()))
	v.core.forEach(func(x uint) { out.Add(int(x)) })
	return out
}

func checkNonNegative(who string, x int) uint {
	if x < 0 {
		xerrors.Fail("bitset: %s: negative value %d is not a valid member", who, x)
	}
	return uint(x)
}

// clampQueryRange clamps [lo, hi) to [0, max] the way spec.md §4.3
// requires for pure queries (never fatal).
func clampQueryRange(lo, hi int) (uint, uint, bool) {
	if hi <= 0 || hi <= lo {
		return 0, 0, false
	}
	if lo < 0 {
		lo = 0
	}
	return uint(lo), uint(hi), true
}

// Contains reports whether x is a member. Negative x reports false rather
// than failing, per spec.md §7.3.
func (v BitSetView) Contains(x int) bool {
	if x < 0 {
		return false
	}
	return v.core.contains(uint(x))
}

// Insert adds x to the set. Negative x is a fatal precondition failure.
func (v *BitSetView) Insert(x int) {
	v.cow().insert(checkNonNegative("Insert", x))
}

// Remove removes x from the set, if present. Negative x is treated as a
// no-op removal of a value that cannot be a member, matching Contains'
// leniency for queries rather than Insert's strictness for insertions.
func (v *BitSetView) Remove(x int) {
	if x < 0 {
		return
	}
	v.cow().remove(uint(x))
}

// Update is an alias for Insert matching spec.md §6's "update(with:)" name.
func (v *BitSetView) Update(x int) { v.Insert(x) }

// InsertRange inserts every value in [lo, hi). A negative upper bound (or
// an otherwise invalid range crossing the integer domain) is fatal for
// this mutating call, per spec.md §7.3; lo is clamped down to 0.
func (v *BitSetView) InsertRange(lo, hi int) {
	if hi < 0 {
		xerrors.Fail("bitset: InsertRange: negative upper bound %d", hi)
	}
	if lo >= hi {
		return
	}
	if lo < 0 {
		lo = 0
	}
	v.cow().insertRange(uint(lo), uint(hi))
}

// RemoveRange removes every value in [lo, hi). Unlike InsertRange this is
// a range whose bounds being out of the integer domain simply removes
// nothing, since removal of things never present is not an error.
func (v *BitSetView) RemoveRange(lo, hi int) {
	lo2, hi2, ok := clampQueryRange(lo, hi)
	if !ok {
		return
	}
	v.cow().removeRange(lo2, hi2)
}

// ToggleRange flips membership of every value in [lo, hi).
func (v *BitSetView) ToggleRange(lo, hi int) {
	if hi < 0 {
		xerrors.Fail("bitset: ToggleRange: negative upper bound %d", hi)
	}
	if lo >= hi {
		return
	}
	if lo < 0 {
		lo = 0
	}
	v.cow().toggleRange(uint(lo), uint(hi))
}

// IntersectRange keeps only members within [lo, hi).
func (v *BitSetView) IntersectRange(lo, hi int) {
	lo2, hi2, ok := clampQueryRange(lo, hi)
	fresh := v.cow()
	if !ok {
		fresh.storage = fresh.storage[:0]
		return
	}
	fresh.intersectRange(lo2, hi2)
}

// Count returns the number of members.
func (v BitSetView) Count() int { return v.core.count() }

// IsEmpty reports whether the view has no members.
func (v BitSetView) IsEmpty() bool { return v.core.isEmpty() }

// Clone returns an independent copy.
func (v BitSetView) Clone() BitSetView {
	return BitSetView{core: v.core.clone()}
}

// --- set algebra, value-returning -----------------------------------------

func (v BitSetView) Union(other BitSetView) BitSetView {
	return BitSetView{core: v.core.union(other.core)}
}
func (v BitSetView) Intersection(other BitSetView) BitSetView {
	return BitSetView{core: v.core.intersection(other.core)}
}
func (v BitSetView) Subtracting(other BitSetView) BitSetView {
	return BitSetView{core: v.core.subtracting(other.core)}
}
func (v BitSetView) SymmetricDifference(other BitSetView) BitSetView {
	return BitSetView{core: v.core.symmetricDifference(other.core)}
}

// --- set algebra, in place --------------------------------------------------

func (v *BitSetView) FormUnion(other BitSetView)               { v.cow().formUnion(other.core) }
func (v *BitSetView) FormIntersection(other BitSetView)        { v.cow().formIntersection(other.core) }
func (v *BitSetView) FormSubtraction(other BitSetView)         { v.cow().formSubtraction(other.core) }
func (v *BitSetView) FormSymmetricDifference(other BitSetView) { v.cow().formSymmetricDifference(other.core) }

// FormUnionRange inserts every value of r into v in place. spec.md §9 notes
// the Swift source's formUnion(Range<UInt>) was an empty stub on one code
// path; per the spec we implement the obviously-intended semantics here
// rather than reproduce that bug.
func (v *BitSetView) FormUnionRange(lo, hi int) { v.InsertRange(lo, hi) }

// --- relational predicates --------------------------------------------------

func (v BitSetView) IsSubset(other BitSetView) bool         { return v.core.isSubset(other.core) }
func (v BitSetView) IsStrictSubset(other BitSetView) bool   { return v.core.isStrictSubset(other.core) }
func (v BitSetView) IsSuperset(other BitSetView) bool       { return v.core.isSuperset(other.core) }
func (v BitSetView) IsStrictSuperset(other BitSetView) bool { return v.core.isStrictSuperset(other.core) }
func (v BitSetView) IsDisjoint(other BitSetView) bool       { return v.core.isDisjoint(other.core) }
func (v BitSetView) IsEqualSet(other BitSetView) bool       { return v.core.isEqualSet(other.core) }

// --- iteration / indexing ---------------------------------------------------

// ForEach calls fn with every member in strictly ascending order.
func (v BitSetView) ForEach(fn func(x int)) {
	v.core.forEach(func(u uint) { fn(int(u)) })
}

// Members returns every member as a freshly allocated, ascending slice.
func (v BitSetView) Members() []int {
	out := make([]int, 0, v.Count())
	v.ForEach(func(x int) { out = append(out, x) })
	return out
}

// Index is an opaque cursor over a BitSetView's members: it carries the
// numeric position (value) it addresses. The zero Index is not valid;
// obtain one from IndexAfter/IndexBefore or member iteration.
type Index struct {
	value int
	valid bool
}

// IndexAfter returns the index of the member following i. Passing the
// zero Index returns the first member, if any.
func (v BitSetView) IndexAfter(i Index) (Index, bool) {
	var next uint
	var ok bool
	if !i.valid {
		next, ok = v.core.firstMember()
	} else {
		next, ok = v.core.indexAfter(uint(i.value))
	}
	if !ok {
		return Index{}, false
	}
	return Index{value: int(next), valid: true}, true
}

// IndexBefore returns the index of the member preceding i, scanning
// backward to the previous set bit.
func (v BitSetView) IndexBefore(i Index) (Index, bool) {
	if !i.valid {
		return Index{}, false
	}
	prev, ok := v.core.indexBefore(uint(i.value))
	if !ok {
		return Index{}, false
	}
	return Index{value: int(prev), valid: true}, true
}

// Value returns the integer this index addresses.
func (i Index) Value() int { return i.value }

// --- ergonomic member/slice access -----------------------------------------

// Member reports whether x is set. Setter form: SetMember(x, on) sets or
// clears membership like the spec's self[member: i] = bool.
func (v BitSetView) Member(x int) bool { return v.Contains(x) }

// SetMember sets or clears membership of x, realizing spec.md's
// `self[member: i] = bool` ergonomic accessor as a regular method (Go has
// no boolean-valued subscript assignment).
func (v *BitSetView) SetMember(x int, on bool) {
	if on {
		v.Insert(x)
	} else {
		v.Remove(x)
	}
}

// Slice returns a view over the subset of v's members falling in the
// integer range [lo, hi), clamped to a valid domain. This realizes
// spec.md's `self[members: a..b]` sliced accessor. It builds the result
// directly from a single fresh core rather than composing Clone with the
// public IntersectRange, which would clone twice under cow's policy.
func (v BitSetView) Slice(lo, hi int) BitSetView {
	out := v.core.clone()
	lo2, hi2, ok := clampQueryRange(lo, hi)
	if !ok {
		out.storage = out.storage[:0]
	} else {
		out.intersectRange(lo2, hi2)
	}
	return BitSetView{core: out}
}

// Filter allocates a fresh BitSetView containing exactly the members of v
// for which pred returns true, per spec.md §4.3.
func (v BitSetView) Filter(pred func(x int) bool) BitSetView {
	out := &BitSetCore{storage: make([]word, len(v.core.storage))}
	v.core.forEach(func(x uint) {
		if pred(int(x)) {
			out.insert(x)
		}
	})
	out.shrink()
	return BitSetView{core: out}
}

// Random returns a BitSetView with each of the integers in [0, n) present
// independently with probability 1/2, per spec.md §4.3's random(upTo:).
func Random(n int) BitSetView {
	if n <= 0 {
		return New()
	}
	nw := (uint(n) + wordBits - 1) / wordBits
	storage := make([]word, nw)
	for i := range storage {
		storage[i] = word(rand.Uint64())
	}
	if rem := uint(n) % wordBits; rem != 0 {
		storage[nw-1] &= wordUpTo(rem)
	}
	out := &BitSetCore{storage: storage}
	out.shrink()
	return BitSetView{core: out}
}
