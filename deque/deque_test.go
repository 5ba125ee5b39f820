package deque

import "testing"

func collect[T any](d *RigidDeque[T]) []T {
	out := make([]T, d.Len())
	for i := range out {
		out[i] = d.At(i)
	}
	return out
}

func assertEqual(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAppendPrependBasic(t *testing.T) {
	d := New[int](4)
	d.Append(2)
	d.Append(3)
	d.Prepend(1)
	d.Append(4)
	assertEqual(t, collect(d), []int{1, 2, 3, 4})
	if !d.IsFull() {
		t.Fatalf("expected deque to be full at capacity")
	}
}

func TestAppendIntoFullPanics(t *testing.T) {
	d := New[int](1)
	d.Append(1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic appending into a full deque")
		}
	}()
	d.Append(2)
}

func TestRemoveFromEmptyPanics(t *testing.T) {
	d := New[int](1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic removing from an empty deque")
		}
	}()
	d.RemoveFirst()
}

func TestInsertAtMiddle(t *testing.T) {
	d := New[int](8)
	for _, v := range []int{1, 2, 4, 5} {
		d.Append(v)
	}
	d.Insert(2, 3)
	assertEqual(t, collect(d), []int{1, 2, 3, 4, 5})
}

func TestInsertMinimalShiftDirection(t *testing.T) {
	// Inserting near the front should shift the (smaller) left half, so
	// the physical head moves rather than the whole tail.
	d := New[int](8)
	for _, v := range []int{1, 2, 3, 4, 5, 6} {
		d.Append(v)
	}
	d.Insert(1, 99)
	assertEqual(t, collect(d), []int{1, 99, 2, 3, 4, 5, 6})
	if d.head != 7 {
		t.Fatalf("head = %d, want 7 (left half shifted back by one)", d.head)
	}
}

func TestRemoveFromFrontAndBack(t *testing.T) {
	d := New[int](8)
	for _, v := range []int{1, 2, 3, 4, 5} {
		d.Append(v)
	}
	if got := d.RemoveFirst(); got != 1 {
		t.Fatalf("RemoveFirst() = %d, want 1", got)
	}
	if got := d.RemoveLast(); got != 5 {
		t.Fatalf("RemoveLast() = %d, want 5", got)
	}
	assertEqual(t, collect(d), []int{2, 3, 4})
}

func TestRemoveMiddle(t *testing.T) {
	d := New[int](8)
	for _, v := range []int{1, 2, 3, 4, 5} {
		d.Append(v)
	}
	if got := d.Remove(2); got != 3 {
		t.Fatalf("Remove(2) = %d, want 3", got)
	}
	assertEqual(t, collect(d), []int{1, 2, 4, 5})
}

func TestPopFirstLastOnEmpty(t *testing.T) {
	d := New[int](2)
	if _, ok := d.PopFirst(); ok {
		t.Fatalf("PopFirst on empty deque should report false")
	}
	if _, ok := d.PopLast(); ok {
		t.Fatalf("PopLast on empty deque should report false")
	}
	d.Append(7)
	v, ok := d.PopFirst()
	if !ok || v != 7 {
		t.Fatalf("PopFirst() = (%d,%v), want (7,true)", v, ok)
	}
	if !d.IsEmpty() {
		t.Fatalf("deque should be empty after draining its only element")
	}
}

func TestSwapAt(t *testing.T) {
	d := New[int](4)
	for _, v := range []int{1, 2, 3} {
		d.Append(v)
	}
	d.SwapAt(0, 2)
	assertEqual(t, collect(d), []int{3, 2, 1})
}

func TestReplaceSubrange(t *testing.T) {
	d := New[int](8)
	for _, v := range []int{1, 2, 3, 4, 5} {
		d.Append(v)
	}
	d.ReplaceSubrange(1, 3, []int{20, 30, 40})
	assertEqual(t, collect(d), []int{1, 20, 30, 40, 4, 5})
}

func TestConsumeObservesSpansAndClosesGap(t *testing.T) {
	d := New[int](8)
	for _, v := range []int{1, 2, 3, 4, 5} {
		d.Append(v)
	}
	var seen []int
	d.Consume(1, 4, func(span []int) {
		seen = append(seen, span...)
	})
	assertEqual(t, seen, []int{2, 3, 4})
	assertEqual(t, collect(d), []int{1, 5})
}

func TestConsumeSpansAcrossWrappedRing(t *testing.T) {
	// Force the live region to wrap the physical ring, then drain a range
	// that itself straddles the wrap, so Consume must call fn twice.
	d := New[int](4)
	for _, v := range []int{1, 2, 3, 4} {
		d.Append(v)
	}
	d.RemoveFirst()
	d.RemoveFirst()
	d.Append(5)
	d.Append(6) // buffer now wraps: logical [3,4,5,6]
	assertEqual(t, collect(d), []int{3, 4, 5, 6})

	var spans [][]int
	d.Consume(0, 4, func(span []int) {
		cp := append([]int(nil), span...)
		spans = append(spans, cp)
	})
	if len(spans) != 2 {
		t.Fatalf("expected Consume to observe 2 spans across the wrap, got %d", len(spans))
	}
	if !d.IsEmpty() {
		t.Fatalf("expected deque to be empty after consuming its whole range")
	}
}

func TestReallocateGrowsCapacityPreservingOrder(t *testing.T) {
	d := New[int](3)
	for _, v := range []int{1, 2, 3} {
		d.Append(v)
	}
	d.Reallocate(6)
	if d.Cap() != 6 {
		t.Fatalf("Cap() = %d, want 6", d.Cap())
	}
	assertEqual(t, collect(d), []int{1, 2, 3})
	d.Append(4)
	assertEqual(t, collect(d), []int{1, 2, 3, 4})
}

func TestReallocateBelowLengthPanics(t *testing.T) {
	d := New[int](4)
	d.Append(1)
	d.Append(2)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic reallocating below current length")
		}
	}()
	d.Reallocate(1)
}
