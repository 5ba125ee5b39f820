package text

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/gocollect/corestruct/internal/xerrors"
)

// baseView implements the Index-navigation contract shared by all four
// Unicode views (spec.md §4.7): count, first, last, index(after:),
// index(_:offsetBy:), distance(from:to:).
type baseView struct {
	bs *BigString
	v  View
}

// Count returns the view's element count.
func (bv baseView) Count() int { return bv.bs.Count(bv.v) }

// First returns the index of the first element, if any.
func (bv baseView) First() (Index, bool) {
	if bv.Count() == 0 {
		return invalidIndex, false
	}
	return bv.bs.indexAt(bv.v, 0)
}

// Last returns the index of the last element, if any.
func (bv baseView) Last() (Index, bool) {
	n := bv.Count()
	if n == 0 {
		return invalidIndex, false
	}
	return bv.bs.indexAt(bv.v, n-1)
}

// End returns the one-past-the-end index, always valid.
func (bv baseView) End() Index {
	idx, _ := bv.bs.indexAt(bv.v, bv.Count())
	return idx
}

// IndexAfter returns the index one element after i.
func (bv baseView) IndexAfter(i Index) (Index, bool) {
	off, ok := bv.bs.offsetInView(bv.v, i)
	if !ok {
		return invalidIndex, false
	}
	return bv.bs.indexAt(bv.v, off+1)
}

// IndexBefore returns the index one element before i.
func (bv baseView) IndexBefore(i Index) (Index, bool) {
	off, ok := bv.bs.offsetInView(bv.v, i)
	if !ok || off == 0 {
		return invalidIndex, false
	}
	return bv.bs.indexAt(bv.v, off-1)
}

// IndexOffsetBy returns the index n elements after i (n may be negative).
func (bv baseView) IndexOffsetBy(i Index, n int) (Index, bool) {
	off, ok := bv.bs.offsetInView(bv.v, i)
	if !ok {
		return invalidIndex, false
	}
	return bv.bs.indexAt(bv.v, off+n)
}

// Distance returns the number of elements between from and to (negative
// if to precedes from). Fails fatally if either index cannot be resolved
// in this view, matching spec.md §7's bounds-error taxonomy.
func (bv baseView) Distance(from, to Index) int {
	a, ok1 := bv.bs.offsetInView(bv.v, from)
	b, ok2 := bv.bs.offsetInView(bv.v, to)
	if !ok1 || !ok2 {
		xerrors.Fail("text: distance between indices not resolvable in this view")
	}
	return b - a
}

// RoundDown returns the canonical aligned index at or before i.
func (bv baseView) RoundDown(i Index) Index { return bv.bs.RoundDown(bv.v, i) }

// RoundUp returns the canonical aligned index at or after i.
func (bv baseView) RoundUp(i Index) Index { return bv.bs.RoundUp(bv.v, i) }

// UTF8View is the byte-oriented view over a BigString.
type UTF8View struct{ baseView }

// UTF8 returns bs's UTF-8 byte view.
func (bs *BigString) UTF8() UTF8View { return UTF8View{baseView{bs, ViewUTF8}} }

// ByteAt returns the raw byte at index i.
func (v UTF8View) ByteAt(i Index) byte {
	b, ok := v.bs.byteAt(i.utf8Offset)
	if !ok {
		xerrors.Fail("text: utf8 index out of range")
	}
	return b
}

// Slice returns the raw UTF-8 substring in [lo, hi).
func (v UTF8View) Slice(lo, hi Index) string {
	if !lo.valid || !hi.valid || lo.utf8Offset > hi.utf8Offset {
		xerrors.Fail("text: invalid utf8 range")
	}
	return v.bs.sliceBytes(lo.utf8Offset, hi.utf8Offset)
}

// ForEach calls fn with every byte in order, stopping early if fn returns
// false.
func (v UTF8View) ForEach(fn func(byte) bool) {
	cur, ok := v.First()
	end := v.bs.Count(ViewUTF8)
	for ok && cur.utf8Offset < end {
		if !fn(v.ByteAt(cur)) {
			return
		}
		cur, ok = v.IndexAfter(cur)
	}
}

// ScalarView is the Unicode-scalar-oriented view over a BigString.
type ScalarView struct{ baseView }

// Scalars returns bs's scalar view.
func (bs *BigString) Scalars() ScalarView { return ScalarView{baseView{bs, ViewScalars}} }

// RuneAt returns the scalar starting at index i.
func (v ScalarView) RuneAt(i Index) rune {
	ord, local, ok := v.bs.tree.Locate(sizeOf(ViewUTF8), i.utf8Offset)
	if !ok {
		xerrors.Fail("text: scalar index out of range")
	}
	r, _ := utf8.DecodeRune(v.bs.tree.ElementAt(ord).Bytes()[local:])
	return r
}

// Slice returns the substring spanning the scalar range [lo, hi).
func (v ScalarView) Slice(lo, hi Index) string {
	if !lo.valid || !hi.valid || lo.utf8Offset > hi.utf8Offset {
		xerrors.Fail("text: invalid scalar range")
	}
	return v.bs.sliceBytes(lo.utf8Offset, hi.utf8Offset)
}

// ForEach calls fn with every scalar in order.
func (v ScalarView) ForEach(fn func(rune) bool) {
	cur, ok := v.First()
	end := v.bs.Count(ViewUTF8)
	for ok && cur.utf8Offset < end {
		if !fn(v.RuneAt(cur)) {
			return
		}
		cur, ok = v.IndexAfter(cur)
	}
}

// UTF16View is the UTF-16-code-unit-oriented view over a BigString.
type UTF16View struct{ baseView }

// UTF16 returns bs's UTF-16 view.
func (bs *BigString) UTF16() UTF16View { return UTF16View{baseView{bs, ViewUTF16}} }

// CodeUnitAt returns the UTF-16 code unit addressed by i, honoring the
// trailing-surrogate flag for non-BMP scalars.
func (v UTF16View) CodeUnitAt(i Index) uint16 {
	r := v.bs.Scalars().RuneAt(Index{utf8Offset: i.utf8Offset, valid: true})
	if r > 0xFFFF {
		hi, lo := utf16.EncodeRune(r)
		if i.trailingSurrogate {
			return uint16(lo)
		}
		return uint16(hi)
	}
	return uint16(r)
}

// ForEach calls fn with every UTF-16 code unit in order.
func (v UTF16View) ForEach(fn func(uint16) bool) {
	cur, ok := v.First()
	end := v.bs.Count(ViewUTF8)
	for ok && cur.utf8Offset < end {
		if !fn(v.CodeUnitAt(cur)) {
			return
		}
		cur, ok = v.IndexAfter(cur)
	}
}

// CharacterView is the grapheme-cluster-oriented view over a BigString.
type CharacterView struct{ baseView }

// Characters returns bs's grapheme-cluster view.
func (bs *BigString) Characters() CharacterView { return CharacterView{baseView{bs, ViewCharacters}} }

// StringAt walks forward from i until the next grapheme-cluster boundary
// (which may span chunks) and returns the cluster's text, per spec.md
// §4.7's single-index character subscripting contract.
func (v CharacterView) StringAt(i Index) string {
	if !i.valid {
		xerrors.Fail("text: invalid character index")
	}
	end, ok := v.bs.nextCharacterBreak(i.utf8Offset)
	if !ok {
		xerrors.Fail("text: character index out of range")
	}
	return v.bs.sliceBytes(i.utf8Offset, end)
}

// Slice returns the substring spanning the character range [lo, hi).
func (v CharacterView) Slice(lo, hi Index) string {
	if !lo.valid || !hi.valid || lo.utf8Offset > hi.utf8Offset {
		xerrors.Fail("text: invalid character range")
	}
	return v.bs.sliceBytes(lo.utf8Offset, hi.utf8Offset)
}

// ForEach calls fn with every grapheme cluster's text in order.
func (v CharacterView) ForEach(fn func(string) bool) {
	cur, ok := v.First()
	end := v.bs.Count(ViewUTF8)
	for ok && cur.utf8Offset < end {
		if !fn(v.StringAt(cur)) {
			return
		}
		cur, ok = v.IndexAfter(cur)
	}
}
