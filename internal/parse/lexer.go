package parse

import (
	"fmt"
	"strings"
)

// Lexer is a cursor over the runes of a template document.
type Lexer struct {
	index   int
	content []rune
	opts    Options
}

// NewLexer wraps content with the cursor at the first rune.
func NewLexer(content string, opts Options) *Lexer {
	return &Lexer{content: []rune(content), opts: opts}
}

// Pos returns the cursor offset in runes.
func (l *Lexer) Pos() int {
	return l.index
}

// Current returns the rune under the cursor.
func (l *Lexer) Current() (rune, bool) {
	return l.Lookahead(0)
}

// Lookahead peeks n runes past the cursor without moving it.
func (l *Lexer) Lookahead(n int) (rune, bool) {
	i := l.index + n
	if i < 0 || i >= len(l.content) {
		return 0, false
	}
	return l.content[i], true
}

// Advance moves the cursor one rune forward. It refuses to move off the last
// rune, so the document scan never treats the final rune as current.
func (l *Lexer) Advance() (int, bool) {
	if l.index >= len(l.content)-1 {
		return l.index, false
	}
	l.index++
	return l.index, true
}

// consume moves the cursor n runes forward unconditionally; a token that ends
// the document leaves the cursor one past the last rune.
func (l *Lexer) consume(n int) {
	l.index += n
}

func (l *Lexer) at(r rune) bool {
	c, ok := l.Current()
	return ok && c == r
}

// SkipWhitespace consumes literal spaces only.
func (l *Lexer) SkipWhitespace() {
	for l.at(' ') {
		l.consume(1)
	}
}

// ScanAhead reports whether pattern appears verbatim starting at the cursor.
// Callers position the cursor on the rune after the prefix before matching
// names, so relative to the prefix this is lookahead(1).
func (l *Lexer) ScanAhead(pattern string) bool {
	return l.matches([]rune(pattern))
}

func (l *Lexer) matches(pattern []rune) bool {
	if l.index+len(pattern) > len(l.content) {
		return false
	}
	for i, r := range pattern {
		if l.content[l.index+i] != r {
			return false
		}
	}
	return true
}

// String renders the cursor position for debug logs.
func (l *Lexer) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "index: %d, prefix: %q, separator: %q, delimiter: %s\n",
		l.index, l.opts.Prefix, l.opts.Separator, l.opts.Delimiter)
	b.WriteString(strings.Repeat(" ", l.index))
	b.WriteString("v\n")
	b.WriteString(string(l.content))
	return b.String()
}
