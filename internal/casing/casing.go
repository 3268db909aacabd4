// Package casing converts identifier-like strings between naming conventions.
// It is used to derive the matchable spellings of palette, format and
// metadata names, and to post-process metadata values in templates.
package casing

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case is a naming convention.
type Case int

const (
	Snake Case = iota
	ShoutySnake
	Kebab
	ShoutyKebab
	Camel
	Pascal
	Title
	Train
	Lower
	Upper
)

// All lists every case in declaration order.
var All = []Case{Snake, ShoutySnake, Kebab, ShoutyKebab, Camel, Pascal, Title, Train, Lower, Upper}

var names = map[Case]string{
	Snake:       "Snake",
	ShoutySnake: "ShoutySnake",
	Kebab:       "Kebab",
	ShoutyKebab: "ShoutyKebab",
	Camel:       "Camel",
	Pascal:      "Pascal",
	Title:       "Title",
	Train:       "Train",
	Lower:       "Lower",
	Upper:       "Upper",
}

var (
	titleCaser = cases.Title(language.Und)
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// Name returns the canonical Pascal-cased name of the case.
func (c Case) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("Case(%d)", int(c))
}

// String returns the snake spelling used in templates and config files.
func (c Case) String() string {
	return Convert(c.Name(), Snake)
}

// Parse resolves a case from any spelling that converts to its snake name.
func Parse(raw string) (Case, error) {
	key := Convert(strings.TrimSpace(raw), Snake)
	for _, c := range All {
		if c.String() == key {
			return c, nil
		}
	}
	return Snake, fmt.Errorf("unknown case: %q", raw)
}

// Convert rewrites s in the given naming convention.
func Convert(s string, c Case) string {
	switch c {
	case Snake:
		return strcase.ToSnake(s)
	case ShoutySnake:
		// strcase only upper-cases ASCII
		return upperCaser.String(strcase.ToSnake(s))
	case Kebab:
		return strcase.ToKebab(s)
	case ShoutyKebab:
		return upperCaser.String(strcase.ToKebab(s))
	case Camel:
		return strcase.ToLowerCamel(s)
	case Pascal:
		return strcase.ToCamel(s)
	case Title:
		return titleCaser.String(strcase.ToDelimited(s, ' '))
	case Train:
		return strings.ReplaceAll(titleCaser.String(strcase.ToDelimited(s, ' ')), " ", "-")
	case Lower:
		return lowerCaser.String(s)
	case Upper:
		return upperCaser.String(s)
	default:
		return s
	}
}
