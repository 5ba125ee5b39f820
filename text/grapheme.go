package text

import "github.com/rivo/uniseg"

// GraphemeBreaker wraps uniseg's UAX #29 state machine as a copyable,
// comparable value, per spec.md §4.5's requirement that breaker state be a
// plain value rather than a singleton cursor. The zero value is not the
// start state; use NewGraphemeBreaker.
type GraphemeBreaker struct {
	state int
}

// NewGraphemeBreaker returns a breaker positioned at the start of a fresh
// run of text (uniseg's sentinel "determine the state from scratch").
func NewGraphemeBreaker() GraphemeBreaker {
	return GraphemeBreaker{state: -1}
}

// consumePartialCharacter advances the breaker across prefix without
// recording any boundary, for a caller that already knows prefix ends
// mid-cluster and only needs the resulting state to resume from.
func (g GraphemeBreaker) consumePartialCharacter(prefix []byte) GraphemeBreaker {
	if len(prefix) == 0 {
		return g
	}
	state := g.state
	pos := 0
	for pos < len(prefix) {
		cluster, _, _, newState := uniseg.FirstGraphemeCluster(prefix[pos:], state)
		state = newState
		pos += len(cluster)
	}
	return GraphemeBreaker{state: state}
}

// boundaries walks text from the breaker's current state and returns every
// grapheme-cluster boundary offset relative to text's start, including 0
// and len(text). Because the whole of text is visible to uniseg in one
// pass, clusters that would straddle an artificial chunk split never get
// truncated early for lack of lookahead: BigString construction calls
// this over the whole input, then assigns the resulting boundaries to
// chunks afterward (see chunkBreaks), rather than asking each chunk to
// detect its own edges in isolation. Editing (BigString.ReplaceSubrange)
// calls it over the replacement text only; the boundaries at the two
// edit edges are not re-examined.
func (g GraphemeBreaker) boundaries(text []byte) []int {
	_, bs := g.advance(text)
	return bs
}

// advance is boundaries plus the breaker state as of the end of text, for
// a caller (text.Builder) that processes a document in successive Write
// calls and needs to resume correctly at the next call's start.
func (g GraphemeBreaker) advance(text []byte) (next GraphemeBreaker, boundaries []int) {
	bs := []int{0}
	if len(text) == 0 {
		return g, bs
	}
	state := g.state
	pos := 0
	for pos < len(text) {
		cluster, _, _, newState := uniseg.FirstGraphemeCluster(text[pos:], state)
		state = newState
		pos += len(cluster)
		bs = append(bs, pos)
	}
	return GraphemeBreaker{state: state}, bs
}

// edgeCounts measures text in isolation, per spec.md §4.5's edgeCounts
// contract: characters is the count of cluster boundaries strictly before
// len(text) (i.e. clusters whose leading scalar lies in text), and
// firstBreak/lastBreak are the byte offsets of the first and last
// boundary in [0, len(text)], the break at len(text) included (both equal
// to len(text) when no cluster starts inside text at all). Lacking a
// following chunk's bytes, a cluster that actually continues past text's
// end is resolved the same way it would be with full context in practice,
// because Unicode grapheme rules this implementation cares about only
// look a short, bounded distance ahead; BigString's own construction path
// uses boundaries() over the whole input instead.
func (g GraphemeBreaker) edgeCounts(text []byte) (characters, firstBreak, lastBreak int, breaks []int) {
	bs := g.boundaries(text)
	return chunkBreaks(bs, 0, len(text))
}

// chunkBreaks assigns a firstBreak/lastBreak/characters triple to the
// sub-range [chunkStart, chunkEnd) of a buffer whose full boundary list is
// bs (offsets relative to that same buffer). A break landing exactly at
// chunkEnd belongs to the following chunk's owned count (spec.md §3's
// "chunk boundary rule"): it still updates firstBreak/lastBreak (a
// grapheme break genuinely occurred there) but is not counted towards
// characters. breaks is the same candidates re-expressed local to
// [chunkStart, chunkEnd] (i.e. shifted by -chunkStart); Chunk caches this
// list directly so later interior-boundary lookups never need to
// re-derive breaks from an isolated re-scan of the chunk's own bytes,
// which would lose the cross-chunk context captured here.
func chunkBreaks(bs []int, chunkStart, chunkEnd int) (characters, firstBreak, lastBreak int, breaks []int) {
	length := chunkEnd - chunkStart
	firstBreak, lastBreak = length, length
	found := false
	for _, b := range bs {
		if b < chunkStart {
			continue
		}
		if b > chunkEnd {
			break
		}
		breaks = append(breaks, b-chunkStart)
		if !found {
			firstBreak = b - chunkStart
			found = true
		}
		lastBreak = b - chunkStart
		if b < chunkEnd {
			characters++
		}
	}
	return characters, firstBreak, lastBreak, breaks
}
