package parse

import (
	"fmt"
	"strings"

	"rosepine/internal/casing"
)

// Delimiter is the bracket pair that encloses a role group.
type Delimiter int

const (
	Parenthesis Delimiter = iota
	CurlyBracket
	AngleBracket
	SquareBracket
)

var delimiters = map[Delimiter]struct {
	name        string
	open, close rune
}{
	Parenthesis:   {"Parenthesis", '(', ')'},
	CurlyBracket:  {"CurlyBracket", '{', '}'},
	AngleBracket:  {"AngleBracket", '<', '>'},
	SquareBracket: {"SquareBracket", '[', ']'},
}

// Delimiters returns every delimiter in declaration order.
func Delimiters() []Delimiter {
	return []Delimiter{Parenthesis, CurlyBracket, AngleBracket, SquareBracket}
}

// Open returns the opening bracket.
func (d Delimiter) Open() rune { return delimiters[d].open }

// Close returns the closing bracket.
func (d Delimiter) Close() rune { return delimiters[d].close }

// String returns the kebab spelling used by flags and config, e.g. "curly-bracket".
func (d Delimiter) String() string {
	if info, ok := delimiters[d]; ok {
		return casing.Convert(info.name, casing.Kebab)
	}
	return fmt.Sprintf("Delimiter(%d)", int(d))
}

// ParseDelimiter resolves a delimiter by name ("parenthesis", "square_bracket")
// or by either of its bracket characters.
func ParseDelimiter(raw string) (Delimiter, error) {
	trimmed := strings.TrimSpace(raw)
	key := casing.Convert(trimmed, casing.Kebab)
	for _, d := range Delimiters() {
		if key == d.String() || trimmed == string(d.Open()) || trimmed == string(d.Close()) {
			return d, nil
		}
	}
	return Parenthesis, fmt.Errorf("unknown delimiter: %q", raw)
}

// Options configures the placeholder grammar.
type Options struct {
	Prefix    rune
	Separator rune
	Delimiter Delimiter
}

// DefaultOptions returns the stock grammar: $role, $(dark|light).
func DefaultOptions() Options {
	return Options{
		Prefix:    '$',
		Separator: '|',
		Delimiter: Parenthesis,
	}
}
