package text

import (
	"unicode/utf8"

	"github.com/gocollect/corestruct/internal/rope"
)

// Builder accumulates text into chunks and bulk-loads them into a rope,
// mirroring aretext's bulk-loading constructor (spec.md §4.6's Builder).
// It threads a GraphemeBreaker's scalar-classification state across
// successive Write calls, so scalar and UTF-16 counts are unaffected by
// how the caller chose to split its input into calls. A grapheme cluster
// that straddles the exact byte offset where one Write call ends and the
// next begins is still counted as two characters, the same way it would
// be at any other hard boundary the caller imposed; NewBigString and
// NewBigStringFromReader both write their whole input in a single call,
// so this never arises in practice.
type Builder struct {
	rb      *rope.Builder[Chunk, Summary]
	breaker GraphemeBreaker
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{rb: rope.NewBuilder[Chunk, Summary](), breaker: NewGraphemeBreaker()}
}

// WriteString appends s, chunking and measuring it in the process.
func (b *Builder) WriteString(s string) { b.Write([]byte(s)) }

// Write appends text, chunking and measuring it in the process. text need
// not be chunk-sized or grapheme-aligned; Write handles both, except that
// each call's start is treated as a grapheme-cluster boundary (see the
// Builder doc comment).
func (b *Builder) Write(text []byte) {
	if len(text) == 0 {
		return
	}
	next, bs := b.breaker.advance(text)
	for _, c := range splitIntoChunks(text, bs) {
		b.rb.PushLeaf([]Chunk{c})
	}
	b.breaker = next
}

// Len returns the number of chunks pushed so far.
func (b *Builder) Len() int { return b.rb.Len() }

// Build finalizes the builder into a BigString.
func (b *Builder) Build() *BigString {
	return &BigString{tree: b.rb.Finalize()}
}

// buildFromChunks assembles a BigString directly from pre-built chunks,
// bypassing Write's chunking. Used by tests that need to force a
// particular chunk layout (e.g. a split at an exact byte offset).
func buildFromChunks(chunks []Chunk) *BigString {
	rb := rope.NewBuilder[Chunk, Summary]()
	for _, c := range chunks {
		rb.PushLeaf([]Chunk{c})
	}
	return &BigString{tree: rb.Finalize()}
}

// splitIntoChunks partitions text into MaxUTF8-bounded, scalar-aligned
// chunks, assigning each one its owned slice of the already-computed
// boundary list bs (offsets relative to text's start).
func splitIntoChunks(text []byte, bs []int) []Chunk {
	return splitIntoChunksMax(text, bs, MaxUTF8)
}

// splitIntoChunksMax is splitIntoChunks generalized over the chunk size
// bound, so tests can force a split at an exact byte position (spec.md
// §8 seed scenario 4: "force a chunk split ... by constructing with a
// small MAX_UTF8").
func splitIntoChunksMax(text []byte, bs []int, max int) []Chunk {
	if len(text) == 0 {
		return nil
	}
	var chunks []Chunk
	start := 0
	for start < len(text) {
		end := start + max
		switch {
		case end >= len(text):
			end = len(text)
		default:
			for end > start && !utf8.RuneStart(text[end]) {
				end--
			}
			if end == start {
				end = start + max
			}
		}
		characters, first, last, breaks := chunkBreaks(bs, start, end)
		chunks = append(chunks, newChunk(text[start:end], characters, first, last, breaks))
		start = end
	}
	return chunks
}
