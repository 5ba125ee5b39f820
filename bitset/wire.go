package bitset

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Encode writes v as spec.md §6's wire format: an unkeyed, little-endian
// sequence of 64-bit words, one per entry of the canonical storage. The
// empty set encodes as zero words. We use LittleEndian here per the spec's
// explicit wire format rather than any byte order serving ordered
// comparison, which is a different concern entirely.
func (v BitSetView) Encode(w io.Writer) error {
	buf := make([]byte, 8)
	for _, word := range v.core.storage {
		binary.LittleEndian.PutUint64(buf, uint64(word))
		if _, err := w.Write(buf); err != nil {
			return errors.Wrap(err, "bitset: encode")
		}
	}
	return nil
}

// Decode reads a BitSetView from the wire format produced by Encode. If r
// additionally implements a Len() int method (as a *bytes.Reader does via
// its Len() method reporting unread bytes), the decoder uses it only to
// preallocate storage capacity; it is not required.
func Decode(r io.Reader) (BitSetView, error) {
	type lenHint interface{ Len() int }
	storage := make([]word, 0)
	if lh, ok := r.(lenHint); ok {
		if n := lh.Len(); n > 0 {
			storage = make([]word, 0, n/8)
		}
	}
	buf := make([]byte, 8)
	for {
		_, err := io.ReadFull(r, buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return BitSetView{}, errors.Wrap(err, "bitset: decode")
		}
		storage = append(storage, word(binary.LittleEndian.Uint64(buf)))
	}
	core := &BitSetCore{storage: storage}
	core.shrink()
	return BitSetView{core: core}, nil
}
