package diffview

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffWords computes a word-granularity diff between two texts. Each
// word or whitespace run is mapped to a single rune so the character
// diff operates on whole tokens, the same encoding trick the library
// uses for its line mode.
func diffWords(a, b string) []diffmatchpatch.Diff {
	enc := newTokenEncoder()
	ra := enc.encode(a)
	rb := enc.encode(b)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(ra, rb, false)

	out := make([]diffmatchpatch.Diff, len(diffs))
	for i, d := range diffs {
		out[i] = diffmatchpatch.Diff{Type: d.Type, Text: enc.decode(d.Text)}
	}
	return out
}

type tokenEncoder struct {
	ids    map[string]rune
	tokens []string
}

func newTokenEncoder() *tokenEncoder {
	return &tokenEncoder{ids: make(map[string]rune)}
}

// Token IDs double as runes inside the diff library, so they must stay
// valid UTF-8 scalar values. IDs at or above the surrogate block are
// shifted past it; a surrogate would be replaced with U+FFFD on the
// []rune to string conversion and its token lost.
const (
	surrogateMin  = 0xD800
	surrogateSpan = 0x0800
)

func tokenID(index int) rune {
	if index >= surrogateMin {
		return rune(index + surrogateSpan)
	}
	return rune(index)
}

func tokenIndex(id rune) int {
	if id >= surrogateMin+surrogateSpan {
		return int(id) - surrogateSpan
	}
	return int(id)
}

func (e *tokenEncoder) encode(text string) []rune {
	var runes []rune
	for _, tok := range tokenize(text) {
		id, ok := e.ids[tok]
		if !ok {
			id = tokenID(len(e.tokens))
			e.ids[tok] = id
			e.tokens = append(e.tokens, tok)
		}
		runes = append(runes, id)
	}
	return runes
}

func (e *tokenEncoder) decode(encoded string) string {
	var b strings.Builder
	for _, id := range encoded {
		if i := tokenIndex(id); i < len(e.tokens) {
			b.WriteString(e.tokens[i])
		}
	}
	return b.String()
}

// tokenize splits text into alternating word and whitespace runs,
// preserving every byte so decode(encode(s)) == s.
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder
	var inSpace bool

	for _, r := range text {
		isSpace := unicode.IsSpace(r)
		if current.Len() > 0 && isSpace != inSpace {
			tokens = append(tokens, current.String())
			current.Reset()
		}
		inSpace = isSpace
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
