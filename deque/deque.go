// Package deque implements RigidDeque, a fixed-capacity ring buffer
// (spec.md §4.8, C8): a heap slab of capacity C, a head slot, and an
// element count, with elements laid out as a ring. The deque never
// grows itself; callers size it up front with Reallocate.
package deque

import "github.com/gocollect/corestruct/internal/xerrors"

// RigidDeque is a fixed-capacity ring buffer over a heap slab. The zero
// value has capacity zero; use New to allocate one.
type RigidDeque[T any] struct {
	buf   []T
	head  int
	count int
}

// New returns an empty RigidDeque with room for capacity elements.
func New[T any](capacity int) *RigidDeque[T] {
	if capacity < 0 {
		xerrors.Fail("deque: negative capacity %d", capacity)
	}
	return &RigidDeque[T]{buf: make([]T, capacity)}
}

// Len reports the number of live elements.
func (d *RigidDeque[T]) Len() int { return d.count }

// Cap reports the deque's fixed capacity.
func (d *RigidDeque[T]) Cap() int { return len(d.buf) }

// IsEmpty reports whether the deque holds no elements.
func (d *RigidDeque[T]) IsEmpty() bool { return d.count == 0 }

// IsFull reports whether the deque is at capacity.
func (d *RigidDeque[T]) IsFull() bool { return d.count == len(d.buf) }

// slot maps a logical index in [0, count) to its physical slot in buf.
func (d *RigidDeque[T]) slot(i int) int {
	n := len(d.buf)
	s := d.head + i
	if s >= n {
		s -= n
	}
	return s
}

// At returns the element at logical index i.
func (d *RigidDeque[T]) At(i int) T {
	if i < 0 || i >= d.count {
		xerrors.Fail("deque: index %d out of range [0,%d)", i, d.count)
	}
	return d.buf[d.slot(i)]
}

// SwapAt exchanges the elements at logical indices i and j.
func (d *RigidDeque[T]) SwapAt(i, j int) {
	if i < 0 || i >= d.count || j < 0 || j >= d.count {
		xerrors.Fail("deque: swap index out of range [0,%d)", d.count)
	}
	si, sj := d.slot(i), d.slot(j)
	d.buf[si], d.buf[sj] = d.buf[sj], d.buf[si]
}

// Append adds v at the back. Fatal if the deque is full.
func (d *RigidDeque[T]) Append(v T) {
	if d.IsFull() {
		xerrors.Fail("deque: append into full deque (capacity %d)", len(d.buf))
	}
	d.buf[d.slot(d.count)] = v
	d.count++
}

// Prepend adds v at the front. Fatal if the deque is full.
func (d *RigidDeque[T]) Prepend(v T) {
	if d.IsFull() {
		xerrors.Fail("deque: prepend into full deque (capacity %d)", len(d.buf))
	}
	n := len(d.buf)
	d.head--
	if d.head < 0 {
		d.head += n
	}
	d.count++
	d.buf[d.head] = v
}

// Insert places v at logical index at, shifting whichever side of at
// holds fewer elements so the move count is minimized, per spec.md
// §4.8's "split the live region at the insertion point, push the
// smaller half" policy.
func (d *RigidDeque[T]) Insert(at int, v T) {
	if at < 0 || at > d.count {
		xerrors.Fail("deque: insert index %d out of range [0,%d]", at, d.count)
	}
	if d.IsFull() {
		xerrors.Fail("deque: insert into full deque (capacity %d)", len(d.buf))
	}
	left, right := at, d.count-at
	if left <= right {
		// Shift the left half back by one to open a gap at at-1.
		n := len(d.buf)
		d.head--
		if d.head < 0 {
			d.head += n
		}
		for i := 0; i < left; i++ {
			d.buf[d.slot(i)] = d.buf[d.slot(i+1)]
		}
		d.buf[d.slot(left)] = v
	} else {
		// Shift the right half forward by one to open a gap at at.
		for i := d.count; i > at; i-- {
			d.buf[d.slot(i)] = d.buf[d.slot(i-1)]
		}
		d.buf[d.slot(at)] = v
	}
	d.count++
}

// Remove deletes the element at logical index at, shifting whichever
// side holds fewer elements to close the gap.
func (d *RigidDeque[T]) Remove(at int) T {
	if at < 0 || at >= d.count {
		xerrors.Fail("deque: remove index %d out of range [0,%d)", at, d.count)
	}
	removed := d.buf[d.slot(at)]
	left, right := at, d.count-at-1
	var zero T
	if left <= right {
		for i := at; i > 0; i-- {
			d.buf[d.slot(i)] = d.buf[d.slot(i-1)]
		}
		d.buf[d.head] = zero
		n := len(d.buf)
		d.head++
		if d.head >= n {
			d.head -= n
		}
	} else {
		for i := at; i < d.count-1; i++ {
			d.buf[d.slot(i)] = d.buf[d.slot(i+1)]
		}
		d.buf[d.slot(d.count-1)] = zero
	}
	d.count--
	return removed
}

// RemoveFirst deletes and returns the front element.
func (d *RigidDeque[T]) RemoveFirst() T { return d.Remove(0) }

// RemoveLast deletes and returns the back element.
func (d *RigidDeque[T]) RemoveLast() T { return d.Remove(d.count - 1) }

// PopFirst removes and returns the front element, or the zero value and
// false if the deque is empty.
func (d *RigidDeque[T]) PopFirst() (T, bool) {
	var zero T
	if d.IsEmpty() {
		return zero, false
	}
	return d.RemoveFirst(), true
}

// PopLast removes and returns the back element, or the zero value and
// false if the deque is empty.
func (d *RigidDeque[T]) PopLast() (T, bool) {
	var zero T
	if d.IsEmpty() {
		return zero, false
	}
	return d.RemoveLast(), true
}

// ReplaceSubrange overwrites the logical range [lo, hi) with newElems.
// newElems may be a different length than hi-lo; the resulting deque
// length must still fit within capacity. Shifts the shorter side the
// same way Insert/Remove do.
func (d *RigidDeque[T]) ReplaceSubrange(lo, hi int, newElems []T) {
	if lo < 0 || hi > d.count || lo > hi {
		xerrors.Fail("deque: invalid replaceSubrange range [%d,%d) of %d", lo, hi, d.count)
	}
	delta := len(newElems) - (hi - lo)
	if d.count+delta > len(d.buf) {
		xerrors.Fail("deque: replaceSubrange would overflow capacity %d", len(d.buf))
	}
	for i := hi - 1; i >= lo; i-- {
		d.Remove(i)
	}
	for i, v := range newElems {
		d.Insert(lo+i, v)
	}
}

// Consume destroys the contiguous logical range [lo, hi) lazily: fn
// observes up to two spans of buf covering the range (one if the range
// doesn't wrap the physical ring, two if it does) before the gap is
// closed, per spec.md §4.8's drain contract.
func (d *RigidDeque[T]) Consume(lo, hi int, fn func([]T)) {
	if lo < 0 || hi > d.count || lo > hi {
		xerrors.Fail("deque: invalid consume range [%d,%d) of %d", lo, hi, d.count)
	}
	n := len(d.buf)
	start := d.slot(lo)
	remaining := hi - lo
	if remaining > 0 {
		firstLen := n - start
		if firstLen > remaining {
			firstLen = remaining
		}
		fn(d.buf[start : start+firstLen])
		if firstLen < remaining {
			fn(d.buf[0 : remaining-firstLen])
		}
	}
	for i := 0; i < remaining; i++ {
		d.Remove(lo)
	}
}

// Reallocate replaces the deque's backing slab with one of the given
// capacity, preserving element order. Fatal if capacity is smaller than
// the current element count: the deque never drops live elements on a
// reallocation, only callers choosing to shrink below Len() are an
// error.
func (d *RigidDeque[T]) Reallocate(capacity int) {
	if capacity < d.count {
		xerrors.Fail("deque: reallocate(%d) below current length %d", capacity, d.count)
	}
	fresh := make([]T, capacity)
	for i := 0; i < d.count; i++ {
		fresh[i] = d.buf[d.slot(i)]
	}
	d.buf = fresh
	d.head = 0
}
