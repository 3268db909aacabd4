package parse

import (
	"sort"

	"rosepine/internal/casing"
	"rosepine/internal/format"
	"rosepine/internal/palette"
)

type spelling[T any] struct {
	value T
	text  []rune
}

// lexicon holds every case-converted spelling of an enumeration, longest
// first, so the first hit at a position is the longest match ("hex_ns" wins
// over "hex" regardless of declaration order).
type lexicon[T any] struct {
	byCase map[casing.Case][]spelling[T]
}

func newLexicon[T any](values []T, name func(T) string) *lexicon[T] {
	x := &lexicon[T]{byCase: make(map[casing.Case][]spelling[T], len(casing.All))}
	for _, c := range casing.All {
		list := make([]spelling[T], 0, len(values))
		for _, v := range values {
			list = append(list, spelling[T]{value: v, text: []rune(casing.Convert(name(v), c))})
		}
		sort.SliceStable(list, func(i, j int) bool {
			return len(list[i].text) > len(list[j].text)
		})
		x.byCase[c] = list
	}
	return x
}

// Spellings returns the precomputed spellings for a case, longest first.
func (x *lexicon[T]) Spellings(c casing.Case) []string {
	list := x.byCase[c]
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s.text)
	}
	return out
}

// scanEnum finds the longest spelling matching at the cursor. It does not move
// the cursor; the returned length is in runes.
func scanEnum[T any](l *Lexer, x *lexicon[T], c casing.Case) (T, int, bool) {
	for _, s := range x.byCase[c] {
		if len(s.text) > 0 && l.matches(s.text) {
			return s.value, len(s.text), true
		}
	}
	var zero T
	return zero, 0, false
}

// parseEnum consumes the longest matching spelling.
func parseEnum[T any](l *Lexer, x *lexicon[T], c casing.Case) (T, bool) {
	v, n, ok := scanEnum(l, x, c)
	if ok {
		l.consume(n)
	}
	return v, ok
}

var (
	roleLexicon   = newLexicon(palette.Roles(), palette.Role.Name)
	formatLexicon = newLexicon(format.All(), format.Format.Name)
	metaLexicon   = newLexicon(palette.MetaKeys(), palette.MetaKey.Name)
	caseLexicon   = newLexicon(casing.All, casing.Case.Name)
)
