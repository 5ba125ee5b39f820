package text

// Summary is the additive 4-tuple per-subtree annotation spec.md §3
// describes: UTF-8 bytes, UTF-16 code units, Unicode scalars, and
// grapheme clusters ("characters") owned by the subtree.
type Summary struct {
	UTF8       int
	UTF16      int
	Scalars    int
	Characters int
}

// Add returns the componentwise sum of s and o.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		UTF8:       s.UTF8 + o.UTF8,
		UTF16:      s.UTF16 + o.UTF16,
		Scalars:    s.Scalars + o.Scalars,
		Characters: s.Characters + o.Characters,
	}
}

// Sub returns the componentwise difference s - o.
func (s Summary) Sub(o Summary) Summary {
	return Summary{
		UTF8:       s.UTF8 - o.UTF8,
		UTF16:      s.UTF16 - o.UTF16,
		Scalars:    s.Scalars - o.Scalars,
		Characters: s.Characters - o.Characters,
	}
}

// IsZero reports whether s is the additive identity.
func (s Summary) IsZero() bool { return s.UTF8 == 0 }

// View names the four Unicode views spec.md §4.7 exposes over BigString,
// sharing a single Index type.
type View int

const (
	ViewUTF8 View = iota
	ViewUTF16
	ViewScalars
	ViewCharacters
)

// sizeOf projects a Summary onto one metric's notion of size, the
// function rope.Tree.Locate/PrefixSize are parameterized over.
func sizeOf(v View) func(Summary) int {
	switch v {
	case ViewUTF8:
		return func(s Summary) int { return s.UTF8 }
	case ViewUTF16:
		return func(s Summary) int { return s.UTF16 }
	case ViewScalars:
		return func(s Summary) int { return s.Scalars }
	case ViewCharacters:
		return func(s Summary) int { return s.Characters }
	default:
		panic("text: unknown view")
	}
}
