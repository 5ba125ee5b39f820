package text

import (
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/gocollect/corestruct/internal/rope"
	"github.com/gocollect/corestruct/internal/xerrors"
)

// BigString is a rope-structured Unicode text container: one
// internal/rope.Tree of Chunks, exposing four Unicode views over a
// single Index type (spec.md §4, C7).
type BigString struct {
	tree *rope.Tree[Chunk, Summary]
}

// NewBigString builds a BigString from s via the bulk-loading Builder.
func NewBigString(s string) *BigString {
	b := NewBuilder()
	b.WriteString(s)
	return b.Build()
}

// NewBigStringFromReader reads r fully and builds a BigString, returning
// an error (not a panic) if the bytes are not valid UTF-8 — the one
// recoverable error path spec.md §6 names for BigString construction.
func NewBigStringFromReader(r io.Reader) (*BigString, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "text: read")
	}
	if !utf8.Valid(data) {
		return nil, errors.New("text: input is not valid UTF-8")
	}
	b := NewBuilder()
	b.Write(data)
	return b.Build(), nil
}

// NewBigStringNFC builds a BigString after applying NFC normalization,
// the ecosystem's standard Unicode canonicalization (golang.org/x/text).
func NewBigStringNFC(s string) *BigString {
	return NewBigString(norm.NFC.String(s))
}

// Empty returns the empty BigString.
func Empty() *BigString {
	return NewBuilder().Build()
}

// IsEmpty reports whether bs holds zero bytes.
func (bs *BigString) IsEmpty() bool { return bs.tree.IsEmpty() }

// Count returns bs's size in the given view's metric.
func (bs *BigString) Count(v View) int { return sizeOf(v)(bs.tree.Summary()) }

// String reconstructs the full UTF-8 text.
func (bs *BigString) String() string {
	var out []byte
	bs.tree.ForEachElement(func(c Chunk) bool {
		out = append(out, c.Bytes()...)
		return true
	})
	return string(out)
}

// Concat concatenates bs and other, sharing untouched subtrees.
func (bs *BigString) Concat(other *BigString) *BigString {
	return &BigString{tree: bs.tree.Concat(other.tree)}
}

// ReplaceSubrange replaces the UTF-8 byte range [lo, hi) with newContent,
// per spec.md §4.7's Editing contract: split the rope at both endpoints,
// build a fresh middle from newContent, and concatenate left · middle ·
// right. newContent is segmented into grapheme clusters on its own, and
// the boundaries at lo and hi are not re-examined: a cluster that spans
// either edit edge afterwards is counted as two characters.
func (bs *BigString) ReplaceSubrange(lo, hi Index, newContent string) *BigString {
	if !lo.valid || !hi.valid || lo.utf8Offset > hi.utf8Offset {
		xerrors.Fail("text: invalid replaceSubrange range")
	}
	left, rest := splitTreeAtByteOffset(bs.tree, lo.utf8Offset)
	_, right := splitTreeAtByteOffset(rest, hi.utf8Offset-lo.utf8Offset)
	middle := NewBigString(newContent)
	merged := left.Concat(middle.tree).Concat(right)
	return &BigString{tree: merged}
}

// byteAt returns the raw byte at absolute UTF-8 offset off.
func (bs *BigString) byteAt(off int) (byte, bool) {
	ord, local, ok := bs.tree.Locate(sizeOf(ViewUTF8), off)
	if !ok {
		return 0, false
	}
	return bs.tree.ElementAt(ord).Bytes()[local], true
}

// sliceBytes returns the raw UTF-8 text in the absolute byte range
// [lo, hi).
func (bs *BigString) sliceBytes(lo, hi int) string {
	if lo >= hi {
		return ""
	}
	var out []byte
	prefix := 0
	bs.tree.ForEachElement(func(c Chunk) bool {
		start, end := prefix, prefix+c.Len()
		if end > lo && start < hi {
			a, b := lo-start, hi-start
			if a < 0 {
				a = 0
			}
			if b > c.Len() {
				b = c.Len()
			}
			out = append(out, c.Bytes()[a:b]...)
		}
		prefix = end
		return end < hi
	})
	return string(out)
}

// indexAt converts a per-view ordinal offset (e.g. the 3rd scalar) into
// the Index addressing it.
func (bs *BigString) indexAt(v View, target int) (Index, bool) {
	total := bs.Count(v)
	if target < 0 || target > total {
		return invalidIndex, false
	}
	if target == total {
		return Index{utf8Offset: bs.Count(ViewUTF8), valid: true}, true
	}
	ord, local, ok := bs.tree.Locate(sizeOf(v), target)
	if !ok {
		return invalidIndex, false
	}
	chunk := bs.tree.ElementAt(ord)
	prefixUTF8 := bs.tree.PrefixSize(sizeOf(ViewUTF8), ord)
	var localByte int
	var trailing bool
	switch v {
	case ViewUTF8:
		localByte = local
	case ViewScalars:
		localByte = chunk.byteOffsetForScalar(local)
	case ViewUTF16:
		localByte, trailing = chunk.byteOffsetForUTF16(local)
	case ViewCharacters:
		b, found := chunk.byteOffsetForCharacter(local)
		if !found {
			return invalidIndex, false
		}
		localByte = b
	default:
		xerrors.Fail("text: unknown view")
	}
	return Index{utf8Offset: prefixUTF8 + localByte, trailingSurrogate: trailing, valid: true}, true
}

// offsetInView converts an Index into its ordinal position in the given
// view's metric (e.g. "this is the 5th character").
func (bs *BigString) offsetInView(v View, idx Index) (int, bool) {
	if !idx.valid {
		return 0, false
	}
	total8 := bs.Count(ViewUTF8)
	if idx.utf8Offset < 0 || idx.utf8Offset > total8 {
		return 0, false
	}
	if idx.utf8Offset == total8 {
		return bs.Count(v), true
	}
	ord, local, ok := bs.tree.Locate(sizeOf(ViewUTF8), idx.utf8Offset)
	if !ok {
		return 0, false
	}
	chunk := bs.tree.ElementAt(ord)
	prefix := bs.tree.PrefixSize(sizeOf(v), ord)
	switch v {
	case ViewUTF8:
		return prefix + local, true
	case ViewScalars:
		return prefix + chunk.scalarDistance(0, local), true
	case ViewUTF16:
		n := chunk.utf16Distance(0, local)
		if idx.trailingSurrogate {
			n++
		}
		return prefix + n, true
	case ViewCharacters:
		return prefix + chunk.charactersBefore(local), true
	default:
		xerrors.Fail("text: unknown view")
		return 0, false
	}
}

// nextCharacterBreak returns the absolute UTF-8 offset of the next
// grapheme-cluster boundary strictly after start, walking across chunk
// edges when the owning cluster straddles them.
func (bs *BigString) nextCharacterBreak(start int) (int, bool) {
	total := bs.Count(ViewUTF8)
	if start < 0 || start >= total {
		return 0, false
	}
	ord, local, ok := bs.tree.Locate(sizeOf(ViewUTF8), start)
	if !ok {
		return 0, false
	}
	chunk := bs.tree.ElementAt(ord)
	if next, found := chunk.indexAfterCharacter(local); found {
		return bs.tree.PrefixSize(sizeOf(ViewUTF8), ord) + next, true
	}
	base := bs.tree.PrefixSize(sizeOf(ViewUTF8), ord) + chunk.Len()
	n := bs.tree.ElementCount()
	for i := ord + 1; i < n; i++ {
		c := bs.tree.ElementAt(i)
		if c.HasBreaks() {
			return base + c.firstBreak, true
		}
		base += c.Len()
	}
	return total, true
}

// RoundDown returns the canonical aligned index for view v at or before
// i, per spec.md §4.7's per-view round-down policy.
func (bs *BigString) RoundDown(v View, i Index) Index {
	switch v {
	case ViewUTF8:
		j := i
		j.trailingSurrogate = false
		return j
	case ViewUTF16:
		if i.trailingSurrogate {
			return i
		}
		return bs.roundDownScalar(i)
	case ViewScalars:
		return bs.roundDownScalar(i)
	case ViewCharacters:
		return bs.roundDownCharacter(i)
	default:
		xerrors.Fail("text: unknown view")
		return invalidIndex
	}
}

// RoundUp returns roundDown(i); if that differs from i, steps forward one
// unit in view v (spec.md §4.7).
func (bs *BigString) RoundUp(v View, i Index) Index {
	down := bs.RoundDown(v, i)
	if down.Equal(i) {
		return down
	}
	bv := baseView{bs: bs, v: v}
	next, ok := bv.IndexAfter(down)
	if !ok {
		return down
	}
	return next
}

func (bs *BigString) roundDownScalar(i Index) Index {
	total := bs.Count(ViewUTF8)
	if i.utf8Offset >= total {
		return Index{utf8Offset: total, valid: true}
	}
	ord, local, ok := bs.tree.Locate(sizeOf(ViewUTF8), i.utf8Offset)
	if !ok {
		return Index{utf8Offset: total, valid: true}
	}
	c := bs.tree.ElementAt(ord)
	text := c.Bytes()
	for local > 0 && !utf8.RuneStart(text[local]) {
		local--
	}
	base := bs.tree.PrefixSize(sizeOf(ViewUTF8), ord)
	return Index{utf8Offset: base + local, valid: true}
}

func (bs *BigString) roundDownCharacter(i Index) Index {
	n := bs.tree.ElementCount()
	if n == 0 {
		return Index{utf8Offset: 0, valid: true}
	}
	total := bs.Count(ViewUTF8)
	var ord, local int
	if i.utf8Offset >= total {
		ord = n - 1
		local = bs.tree.ElementAt(ord).Len()
	} else {
		var ok bool
		ord, local, ok = bs.tree.Locate(sizeOf(ViewUTF8), i.utf8Offset)
		if !ok {
			ord = n - 1
			local = bs.tree.ElementAt(ord).Len()
		}
	}
	for {
		c := bs.tree.ElementAt(ord)
		if b, found := c.indexAtOrBeforeCharacter(local); found {
			base := bs.tree.PrefixSize(sizeOf(ViewUTF8), ord)
			return Index{utf8Offset: base + b, valid: true}
		}
		ord--
		if ord < 0 {
			return Index{utf8Offset: 0, valid: true}
		}
		local = bs.tree.ElementAt(ord).Len()
	}
}

// splitTreeAtByteOffset splits tree at the absolute UTF-8 byte offset
// off, which may fall in the interior of a chunk; the straddling chunk is
// split into two fresh chunks so both halves remain elements in their own
// right.
func splitTreeAtByteOffset(tree *rope.Tree[Chunk, Summary], off int) (*rope.Tree[Chunk, Summary], *rope.Tree[Chunk, Summary]) {
	total := sizeOf(ViewUTF8)(tree.Summary())
	if off <= 0 {
		return rope.Empty[Chunk, Summary](), tree
	}
	if off >= total {
		return tree, rope.Empty[Chunk, Summary]()
	}
	ord, local, ok := tree.Locate(sizeOf(ViewUTF8), off)
	if !ok {
		return tree, rope.Empty[Chunk, Summary]()
	}
	left, right := tree.SplitAtElement(ord)
	if local == 0 {
		return left, right
	}
	straddle := right.ElementAt(0)
	_, rest := right.SplitAtElement(1)
	leftPiece, rightPiece := splitChunkAt(straddle, local)
	lb := rope.NewBuilder[Chunk, Summary]()
	lb.PushLeaf([]Chunk{leftPiece})
	left = left.Concat(lb.Finalize())
	rb := rope.NewBuilder[Chunk, Summary]()
	rb.PushLeaf([]Chunk{rightPiece})
	right = rb.Finalize().Concat(rest)
	return left, right
}

// splitChunkAt splits a single chunk's text at local byte offset local
// into two fresh chunks, re-partitioning c's own cached breaks (computed
// with full cross-chunk context when c was built) rather than re-scanning
// c.text in isolation. An isolated re-scan would always treat byte 0 as a
// fresh cluster start and byte len(text) as a cluster's end, which is
// exactly wrong when c.firstBreak or c.lastBreak says otherwise.
func splitChunkAt(c Chunk, local int) (Chunk, Chunk) {
	text := c.Bytes()
	lChars, lFirst, lLast, lBreaks := chunkBreaks(c.breaks, 0, local)
	rChars, rFirst, rLast, rBreaks := chunkBreaks(c.breaks, local, len(text))
	left := newChunk(append([]byte(nil), text[:local]...), lChars, lFirst, lLast, lBreaks)
	right := newChunk(append([]byte(nil), text[local:]...), rChars, rFirst, rLast, rBreaks)
	return left, right
}
