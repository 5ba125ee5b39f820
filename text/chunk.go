package text

import "unicode/utf8"

// Chunk bounds are spec.md §3's MAX_UTF8/MIN_UTF8: construction keeps a
// chunk's raw UTF-8 byte length at or below MaxUTF8. MinUTF8 is not
// enforced: the last chunk of a write and the pieces an edit splits off
// may be shorter, and short neighboring chunks are not merged.
const (
	MaxUTF8 = 255
	MinUTF8 = (MaxUTF8 + 1) / 2
)

// Chunk is a bounded leaf of raw UTF-8 text plus precomputed counts, the
// rope.Element spec.md §4's BigString is built from. Alongside the
// firstBreak/lastBreak edge summary it caches every interior grapheme
// boundary as well (breaks), since text is never longer than MaxUTF8
// bytes the extra slice stays small, and caching rather than re-deriving
// it keeps interior navigation honest about boundaries that genuinely
// depend on a neighboring chunk (see the breaks field's own comment).
type Chunk struct {
	text []byte

	utf16      int
	scalars    int
	characters int

	// firstBreak and lastBreak are byte offsets, local to text, of the
	// first and last grapheme-cluster boundary that falls within this
	// chunk. Both equal len(text) when no cluster starts inside the
	// chunk at all (the whole chunk is owned by a cluster that started
	// in a previous chunk and, per the chunk boundary rule, is counted
	// there instead).
	firstBreak int
	lastBreak  int

	// breaks holds every grapheme-cluster boundary candidate local to
	// text, including one at 0 and one at len(text) (see chunkBreaks).
	// It is computed once, from a scan wide enough to see this chunk's
	// neighbors, and cached here rather than re-derived later: a fresh
	// isolated re-scan of text alone cannot tell whether byte 0 is a
	// genuine cluster start or a continuation from the previous chunk,
	// nor whether the cluster starting at lastBreak actually closes
	// before len(text) or continues into the next chunk. Caching trades
	// a slice per chunk for correctness at those two edges.
	breaks []int
}

// newChunk builds a Chunk from raw bytes plus a precomputed
// characters/firstBreak/lastBreak/breaks quadruple (see chunkBreaks),
// deriving the UTF-16 and scalar counts directly from text.
func newChunk(text []byte, characters, firstBreak, lastBreak int, breaks []int) Chunk {
	utf16, scalars := 0, 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRune(text[i:])
		scalars++
		if r > 0xFFFF {
			utf16 += 2
		} else {
			utf16++
		}
		i += size
	}
	return Chunk{
		text:       text,
		utf16:      utf16,
		scalars:    scalars,
		characters: characters,
		firstBreak: firstBreak,
		lastBreak:  lastBreak,
		breaks:     breaks,
	}
}

// newChunkFromText builds a Chunk by running the grapheme breaker over its
// own bytes in isolation. It suits a standalone chunk with no neighboring
// chunk, where isolation is exact rather than an approximation; the
// BigString construction paths do not call it (they go through
// splitIntoChunks).
func newChunkFromText(text []byte, g GraphemeBreaker) Chunk {
	characters, first, last, breaks := g.edgeCounts(text)
	return newChunk(text, characters, first, last, breaks)
}

// Measure implements rope.Element[Summary].
func (c Chunk) Measure() Summary {
	return Summary{UTF8: len(c.text), UTF16: c.utf16, Scalars: c.scalars, Characters: c.characters}
}

// Bytes returns the chunk's raw UTF-8 text. Callers must not mutate it.
func (c Chunk) Bytes() []byte { return c.text }

// Len returns the chunk's UTF-8 byte length.
func (c Chunk) Len() int { return len(c.text) }

// HasBreaks reports whether any grapheme cluster starts within this
// chunk.
func (c Chunk) HasBreaks() bool { return c.firstBreak < len(c.text) }

// breakOffsets returns every grapheme-cluster boundary local to this
// chunk's own bytes, for the character-level operations that need an
// interior boundary rather than just the edges.
func (c Chunk) breakOffsets() []int {
	return c.breaks
}

// indexAfterCharacter returns the byte offset, local to the chunk, of the
// next grapheme-cluster boundary strictly after local. ok is false if
// local is the chunk's lastBreak or beyond.
func (c Chunk) indexAfterCharacter(local int) (next int, ok bool) {
	for _, b := range c.breakOffsets() {
		if b > local {
			return b, true
		}
	}
	return 0, false
}

// indexBeforeCharacter returns the byte offset, local to the chunk, of the
// nearest grapheme-cluster boundary strictly before local. ok is false if
// no such boundary exists (local is at or before the chunk's firstBreak).
func (c Chunk) indexBeforeCharacter(local int) (prev int, ok bool) {
	best := -1
	for _, b := range c.breakOffsets() {
		if b < local {
			best = b
		} else {
			break
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// characterDistance counts the grapheme-cluster boundaries in (lo, hi],
// i.e. the number of clusters starting within that local byte range.
func (c Chunk) characterDistance(lo, hi int) int {
	n := 0
	for _, b := range c.breakOffsets() {
		if b > lo && b <= hi {
			n++
		}
	}
	return n
}

// scalarDistance counts Unicode scalars in the local byte range [lo, hi).
func (c Chunk) scalarDistance(lo, hi int) int {
	n := 0
	for i := lo; i < hi; {
		_, size := utf8.DecodeRune(c.text[i:])
		i += size
		n++
	}
	return n
}

// utf16Distance counts UTF-16 code units in the local byte range [lo, hi).
func (c Chunk) utf16Distance(lo, hi int) int {
	n := 0
	for i := lo; i < hi; {
		r, size := utf8.DecodeRune(c.text[i:])
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
		i += size
	}
	return n
}

// charactersBefore counts the grapheme clusters owned by this chunk that
// start strictly before the local byte offset local.
func (c Chunk) charactersBefore(local int) int {
	n := 0
	for _, b := range c.breakOffsets() {
		if b >= local {
			break
		}
		n++
	}
	return n
}

// byteOffsetForScalar returns the local byte offset of the n-th scalar
// (0-indexed); n == scalars is valid and returns len(text).
func (c Chunk) byteOffsetForScalar(n int) int {
	i, pos := 0, 0
	for pos < len(c.text) {
		if i == n {
			return pos
		}
		_, size := utf8.DecodeRune(c.text[pos:])
		pos += size
		i++
	}
	return pos
}

// byteOffsetForUTF16 returns the local byte offset of the n-th UTF-16
// code unit's owning scalar, together with whether n names that scalar's
// trailing (low) surrogate half. A non-BMP scalar occupies two ordinals;
// landing on the second one returns the scalar's own byte offset (not
// the following scalar's) with trailing set, so the caller can build an
// Index whose WithTrailingSurrogate-equivalent flag is correct rather
// than one that silently snapped past the low half.
func (c Chunk) byteOffsetForUTF16(n int) (pos int, trailing bool) {
	i, p := 0, 0
	for p < len(c.text) {
		r, size := utf8.DecodeRune(c.text[p:])
		width := 1
		if r > 0xFFFF {
			width = 2
		}
		if n < i+width {
			return p, width == 2 && n == i+1
		}
		i += width
		p += size
	}
	return p, false
}

// byteOffsetForCharacter returns the local byte offset of the n-th
// grapheme cluster owned by this chunk (0-indexed). ok is false if n is
// not less than the chunk's characters count.
func (c Chunk) byteOffsetForCharacter(n int) (int, bool) {
	i := 0
	for _, b := range c.breakOffsets() {
		if b >= len(c.text) {
			break
		}
		if i == n {
			return b, true
		}
		i++
	}
	return 0, false
}

// indexAtOrBeforeCharacter returns the largest grapheme-cluster boundary
// local to this chunk that is <= local, per the round-down character
// policy in spec.md §4.7.
func (c Chunk) indexAtOrBeforeCharacter(local int) (int, bool) {
	best := -1
	for _, b := range c.breakOffsets() {
		if b <= local {
			best = b
		} else {
			break
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
