package rope

import "testing"

// intSummary is a minimal Summary used only to exercise the generic
// engine: it tracks a count and a sum, so tests can check both an
// element-count metric and a value-sum metric.
type intSummary struct {
	n   int
	sum int
}

func (s intSummary) Add(o intSummary) intSummary { return intSummary{s.n + o.n, s.sum + o.sum} }
func (s intSummary) Sub(o intSummary) intSummary { return intSummary{s.n - o.n, s.sum - o.sum} }
func (s intSummary) IsZero() bool                { return s.n == 0 && s.sum == 0 }

type intElem int

func (e intElem) Measure() intSummary { return intSummary{n: 1, sum: int(e)} }

func bySum(s intSummary) int { return s.sum }

func buildTree(vals ...int) *Tree[intElem, intSummary] {
	b := NewBuilder[intElem, intSummary]()
	for _, v := range vals {
		b.Push(intElem(v))
	}
	return b.Finalize()
}

func collect(t *Tree[intElem, intSummary]) []int {
	var out []int
	t.ForEachElement(func(e intElem) bool {
		out = append(out, int(e))
		return true
	})
	return out
}

func TestBuilderProducesElementsInOrder(t *testing.T) {
	vals := make([]int, 0, 500)
	for i := 0; i < 500; i++ {
		vals = append(vals, i)
	}
	tr := buildTree(vals...)
	if got := tr.ElementCount(); got != 500 {
		t.Fatalf("ElementCount() = %d, want 500", got)
	}
	got := collect(tr)
	for i, v := range got {
		if v != i {
			t.Fatalf("element %d = %d, want %d", i, v, i)
		}
	}
}

func TestElementAt(t *testing.T) {
	tr := buildTree(10, 20, 30, 40, 50)
	for i, want := range []int{10, 20, 30, 40, 50} {
		if got := int(tr.ElementAt(i)); got != want {
			t.Fatalf("ElementAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestElementAtOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range ElementAt")
		}
	}()
	tr := buildTree(1, 2, 3)
	tr.ElementAt(3)
}

func TestLocateByValueSumMetric(t *testing.T) {
	tr := buildTree(10, 10, 10, 10) // cumulative sums: 10,20,30,40
	ord, res, ok := tr.Locate(bySum, 15)
	if !ok || ord != 1 || res != 5 {
		t.Fatalf("Locate(15) = (%d,%d,%v), want (1,5,true)", ord, res, ok)
	}
	ord, res, ok = tr.Locate(bySum, 0)
	if !ok || ord != 0 || res != 0 {
		t.Fatalf("Locate(0) = (%d,%d,%v), want (0,0,true)", ord, res, ok)
	}
	_, _, ok = tr.Locate(bySum, 40)
	if ok {
		t.Fatalf("Locate(40) should be out of range (exactly at end)")
	}
}

func TestPrefixSize(t *testing.T) {
	tr := buildTree(1, 2, 3, 4, 5)
	if got := tr.PrefixSize(bySum, 0); got != 0 {
		t.Fatalf("PrefixSize(0) = %d, want 0", got)
	}
	if got := tr.PrefixSize(bySum, 3); got != 6 {
		t.Fatalf("PrefixSize(3) = %d, want 6", got)
	}
	if got := tr.PrefixSize(bySum, 5); got != 15 {
		t.Fatalf("PrefixSize(5) = %d, want 15", got)
	}
}

func TestSplitAtElementRoundTrips(t *testing.T) {
	vals := make([]int, 0, 200)
	for i := 0; i < 200; i++ {
		vals = append(vals, i)
	}
	tr := buildTree(vals...)
	for _, n := range []int{0, 1, 17, 100, 199, 200} {
		left, right := tr.SplitAtElement(n)
		if got := left.ElementCount(); got != n {
			t.Fatalf("n=%d: left count = %d, want %d", n, got, n)
		}
		if got := right.ElementCount(); got != 200-n {
			t.Fatalf("n=%d: right count = %d, want %d", n, got, 200-n)
		}
		merged := append(collect(left), collect(right)...)
		for i, v := range merged {
			if v != i {
				t.Fatalf("n=%d: merged[%d] = %d, want %d", n, i, v, i)
			}
		}
	}
}

func TestConcatPreservesOrderAndCounts(t *testing.T) {
	a := buildTree(1, 2, 3, 4, 5)
	b := buildTree(6, 7, 8)
	c := a.Concat(b)
	if got := c.ElementCount(); got != 8 {
		t.Fatalf("ElementCount() = %d, want 8", got)
	}
	got := collect(c)
	for i := 0; i < 8; i++ {
		if got[i] != i+1 {
			t.Fatalf("concat[%d] = %d, want %d", i, got[i], i+1)
		}
	}
}

func TestConcatEmptyOperands(t *testing.T) {
	a := buildTree(1, 2, 3)
	empty := Empty[intElem, intSummary]()
	if c := a.Concat(empty); c.ElementCount() != 3 {
		t.Fatalf("a.Concat(empty) should be unchanged")
	}
	if c := empty.Concat(a); c.ElementCount() != 3 {
		t.Fatalf("empty.Concat(a) should equal a")
	}
}

func TestConcatManyTimesStaysConsistent(t *testing.T) {
	tr := Empty[intElem, intSummary]()
	want := make([]int, 0, 300)
	for i := 0; i < 300; i++ {
		tr = tr.Concat(buildTree(i))
		want = append(want, i)
	}
	if got := tr.ElementCount(); got != 300 {
		t.Fatalf("ElementCount() = %d, want 300", got)
	}
	got := collect(tr)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSummaryMatchesLinearScan(t *testing.T) {
	vals := []int{3, 1, 4, 1, 5, 9, 2, 6}
	tr := buildTree(vals...)
	want := 0
	for _, v := range vals {
		want += v
	}
	if got := tr.Summary().sum; got != want {
		t.Fatalf("Summary().sum = %d, want %d", got, want)
	}
	if got := tr.Summary().n; got != len(vals) {
		t.Fatalf("Summary().n = %d, want %d", got, len(vals))
	}
}

func TestPushLeafBypassesPending(t *testing.T) {
	b := NewBuilder[intElem, intSummary]()
	b.Push(intElem(1))
	b.PushLeaf([]intElem{2, 3, 4})
	b.Push(intElem(5))
	tr := b.Finalize()
	want := []int{1, 2, 3, 4, 5}
	got := collect(tr)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
