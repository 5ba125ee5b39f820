package bitset

import (
	"bytes"
	"testing"

	set3 "github.com/TomTonic/Set3"
)

func TestViewContainsIgnoresNegative(t *testing.T) {
	v := FromInts(1, 2, 3)
	if v.Contains(-1) {
		t.Fatalf("negative membership query should be false, not fatal")
	}
	if !v.Contains(2) {
		t.Fatalf("2 should be a member")
	}
}

func TestViewInsertNegativeIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Insert(-1) should panic")
		}
	}()
	v := New()
	v.Insert(-1)
}

func TestViewInsertRangeNegativeUpperBoundIsFatal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("InsertRange with negative hi should panic")
		}
	}()
	v := New()
	v.InsertRange(0, -5)
}

func TestViewRemoveRangeClampsQueries(t *testing.T) {
	v := FromRange(0, 10)
	v.RemoveRange(-100, 5)
	for x := 0; x < 5; x++ {
		if v.Contains(x) {
			t.Fatalf("%d should have been removed", x)
		}
	}
	if !v.Contains(5) {
		t.Fatalf("5 should remain")
	}
}

func TestViewSetAlgebraAndMembers(t *testing.T) {
	a := FromInts(1, 2, 3, 4)
	b := FromInts(0, 2, 4, 6)

	u := a.Union(b)
	if got, want := u.Members(), []int{0, 1, 2, 3, 4, 6}; !equalInts(got, want) {
		t.Fatalf("union = %v, want %v", got, want)
	}
	if got, want := a.Intersection(b).Members(), []int{2, 4}; !equalInts(got, want) {
		t.Fatalf("intersection = %v, want %v", got, want)
	}
	if got, want := a.Subtracting(b).Members(), []int{1, 3}; !equalInts(got, want) {
		t.Fatalf("subtracting = %v, want %v", got, want)
	}
	if a.IsDisjoint(b) {
		t.Fatalf("a, b share elements")
	}
	if !a.IsSubset(FromRange(0, 11)) {
		t.Fatalf("a should be subset of [0,11)")
	}
}

func TestViewFormUnionRangeFollowsSpecNotBug(t *testing.T) {
	v := New()
	v.FormUnionRange(3, 6)
	if got, want := v.Members(), []int{3, 4, 5}; !equalInts(got, want) {
		t.Fatalf("FormUnionRange(3,6) = %v, want %v", got, want)
	}
}

func TestViewFilter(t *testing.T) {
	v := FromRange(0, 20)
	even := v.Filter(func(x int) bool { return x%2 == 0 })
	for x := 0; x < 20; x++ {
		want := x%2 == 0
		if got := even.Contains(x); got != want {
			t.Fatalf("Filter: Contains(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestViewSlice(t *testing.T) {
	v := FromRange(0, 100)
	s := v.Slice(10, 20)
	for x := 0; x < 100; x++ {
		want := x >= 10 && x < 20
		if got := s.Contains(x); got != want {
			t.Fatalf("Slice: Contains(%d) = %v, want %v", x, got, want)
		}
	}
}

func TestViewSetMember(t *testing.T) {
	v := New()
	v.SetMember(5, true)
	if !v.Member(5) {
		t.Fatalf("SetMember(5, true) should insert 5")
	}
	v.SetMember(5, false)
	if v.Member(5) {
		t.Fatalf("SetMember(5, false) should remove 5")
	}
}

func TestViewIndexWalk(t *testing.T) {
	v := FromInts(3, 7, 9)
	var got []int
	idx := Index{}
	for {
		next, ok := v.IndexAfter(idx)
		if !ok {
			break
		}
		got = append(got, next.Value())
		idx = next
	}
	if want := []int{3, 7, 9}; !equalInts(got, want) {
		t.Fatalf("index walk = %v, want %v", got, want)
	}
}

func TestViewSet3Interop(t *testing.T) {
	s := set3.From(1, 2, 3)
	v := FromSet3(s)
	if want := []int{1, 2, 3}; !equalInts(v.Members(), want) {
		t.Fatalf("FromSet3 = %v, want %v", v.Members(), want)
	}
	back := v.ToSet3()
	if back.Len() != 3 || !back.Contains(2) {
		t.Fatalf("ToSet3 round-trip failed")
	}
}

func TestViewWireRoundTrip(t *testing.T) {
	v := FromInts(1, 64, 130, 1000)
	var buf bytes.Buffer
	if err := v.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.IsEqualSet(v) {
		t.Fatalf("decoded set %v != original %v", got.Members(), v.Members())
	}
}

func TestViewWireEmptyIsEmptySequence(t *testing.T) {
	v := New()
	var buf bytes.Buffer
	if err := v.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty set should encode to zero bytes, got %d", buf.Len())
	}
}

func TestRandomUpToMasksTopWord(t *testing.T) {
	v := Random(10)
	for x := 10; x < 64; x++ {
		if v.Contains(x) {
			t.Fatalf("Random(10) must not set bits >= 10, found %d", x)
		}
	}
}

func TestViewIndependentAfterPlainAssignment(t *testing.T) {
	a := New()
	a.Insert(1)
	b := a
	b.Insert(2)
	if a.Contains(2) {
		t.Fatalf("mutating b through an ordinary assignment (b := a) must not affect a")
	}
	if !b.Contains(1) || !b.Contains(2) {
		t.Fatalf("b should contain both 1 and 2, got %v", b.Members())
	}
	if !a.Contains(1) {
		t.Fatalf("a should still contain 1")
	}
}

func TestIsEqualSet(t *testing.T) {
	a := FromInts(1, 2, 3)
	b := FromInts(3, 2, 1)
	if !a.IsEqualSet(b) {
		t.Fatalf("sets built from same elements in different order must be equal")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
