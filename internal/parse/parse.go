// Package parse implements the placeholder grammar embedded in template
// documents:
//
//	$role[:format][/opacity]
//	$(dark|light)[:format][/opacity]
//	$(main|moon|dawn)[:format][/opacity]
//	$metadata[:case]
//
// The prefix, group separator and group brackets are configurable through
// Options. Parsing never fails the whole document: every placeholder yields
// either a Capture or an *Error.
package parse

import (
	"strconv"

	"rosepine/internal/casing"
	"rosepine/internal/debug"
	appErrors "rosepine/internal/errors"
)

const (
	formatMarker  = ':'
	opacityMarker = '/'
	maxOpacityLen = 3
)

var logger = debug.Scope("parse")

// Result is the outcome of one placeholder, successful or not.
type Result struct {
	Capture Capture
	Err     error
}

// Start returns the offset of the placeholder's prefix character.
func (r Result) Start() int {
	if r.Err != nil {
		if pe, ok := r.Err.(*Error); ok {
			return pe.Start
		}
	}
	return r.Capture.Start
}

// OK reports whether the placeholder parsed.
func (r Result) OK() bool {
	return r.Err == nil
}

// Parse scans the whole document once and returns every placeholder in
// document order. A failed placeholder is reported and scanning resumes on
// the rune after its prefix.
func Parse(document string, opts Options) []Result {
	l := NewLexer(document, opts)
	var results []Result

	for {
		if _, ok := l.Lookahead(1); !ok {
			break
		}
		if l.at(opts.Prefix) {
			start := l.Pos()
			capture, err := ParseCapture(l)
			if err == nil {
				results = append(results, Result{Capture: capture})
				// the cursor already sits on the first rune after the placeholder
				continue
			}
			logger.Logf("%v", err)
			results = append(results, Result{Err: err})
			l.index = start
		}
		l.Advance()
	}

	return results
}

// Captures returns only the successfully parsed placeholders.
func Captures(results []Result) []Capture {
	out := make([]Capture, 0, len(results))
	for _, r := range results {
		if r.OK() {
			out = append(out, r.Capture)
		}
	}
	return out
}

// ParseCapture consumes one placeholder starting at the cursor, which must be
// on the prefix character.
func ParseCapture(l *Lexer) (Capture, error) {
	start := l.Pos()
	if !l.at(l.opts.Prefix) {
		return Capture{}, newError(appErrors.CodeMalformedPrefix, start, l.Pos(), nil)
	}
	l.consume(1)

	if key, ok := parseEnum(l, metaLexicon, casing.Snake); ok {
		capture := Capture{Kind: KindMetadata, Start: start, Meta: key}
		if l.at(formatMarker) {
			l.consume(1)
			if c, ok := parseEnum(l, caseLexicon, casing.Snake); ok {
				capture.Case = &c
			} else {
				// unknown case names are left as literal text
				l.consume(-1)
			}
		}
		capture.End = l.Pos()
		return capture, nil
	}

	roles, err := parseRoles(l, start)
	if err != nil {
		return Capture{}, err
	}
	capture := Capture{Kind: KindRole, Start: start, Roles: roles}

	if l.at(formatMarker) {
		l.consume(1)
		f, ok := parseEnum(l, formatLexicon, casing.Snake)
		if !ok {
			return Capture{}, newError(appErrors.CodeUnknownToken, start, l.Pos(), nil)
		}
		capture.Format = &f
	}

	if l.at(opacityMarker) {
		l.consume(1)
		opacity, err := parseOpacity(l, start)
		if err != nil {
			return Capture{}, err
		}
		capture.Opacity = &opacity
	}

	capture.End = l.Pos()
	return capture, nil
}

func parseRoles(l *Lexer, start int) (RoleGroup, error) {
	var group RoleGroup
	delim := l.opts.Delimiter

	if !l.at(delim.Open()) {
		r, ok := parseEnum(l, roleLexicon, casing.Snake)
		if !ok {
			return group, newError(appErrors.CodeUnknownToken, start, l.Pos(), nil)
		}
		group.Push(r)
		return group, nil
	}

	l.consume(1)
	for i := 0; i < MaxGroupRoles; i++ {
		l.SkipWhitespace()
		r, ok := parseEnum(l, roleLexicon, casing.Snake)
		if !ok {
			return group, newError(appErrors.CodeUnknownToken, start, l.Pos(), nil)
		}
		group.Push(r)
		l.SkipWhitespace()
		if i == MaxGroupRoles-1 || !l.at(l.opts.Separator) {
			break
		}
		l.consume(1)
	}

	if !l.at(delim.Close()) {
		return group, newError(appErrors.CodeUnclosedGroup, start, l.Pos(), nil)
	}
	l.consume(1)
	return group, nil
}

func parseOpacity(l *Lexer, start int) (uint16, error) {
	digits := make([]rune, 0, maxOpacityLen)
	for len(digits) < maxOpacityLen {
		c, ok := l.Current()
		if !ok || c < '0' || c > '9' {
			break
		}
		digits = append(digits, c)
		l.consume(1)
	}

	v, err := strconv.ParseUint(string(digits), 10, 16)
	if err != nil {
		return 0, newError(appErrors.CodeInvalidOpacity, start, l.Pos(), err)
	}
	return uint16(v), nil
}
