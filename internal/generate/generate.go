// Package generate turns one template document into one output document per
// palette variant.
//
// The replace engine parses the placeholder grammar once and splices the
// rendered values into a copy of the document for every variant, last
// placeholder first so earlier offsets stay valid. The template engine hands
// the document to text/template with the variant's colors and metadata.
package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"rosepine/internal/debug"
	appErrors "rosepine/internal/errors"
	"rosepine/internal/format"
	"rosepine/internal/palette"
	"rosepine/internal/parse"
)

var logger = debug.Scope("generate")

// Engine selects how documents are rendered.
type Engine string

const (
	EngineReplace  Engine = "replace"
	EngineTemplate Engine = "template"
)

// ParseEngine resolves an engine name; the empty string selects replace.
func ParseEngine(raw string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(raw))); e {
	case "", EngineReplace:
		return EngineReplace, nil
	case EngineTemplate:
		return EngineTemplate, nil
	default:
		return "", appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("unknown engine %q (want replace or template)", raw), nil)
	}
}

// Config is everything a generation run needs besides the document.
type Config struct {
	Parse parse.Options
	// Format applies to placeholders without an explicit :format.
	Format format.Format
	// ForceAlpha renders an opaque alpha channel when no opacity is given.
	ForceAlpha bool
	Engine     Engine
}

// DefaultConfig returns the stock grammar with hex output.
func DefaultConfig() Config {
	return Config{
		Parse:  parse.DefaultOptions(),
		Format: format.Hex,
		Engine: EngineReplace,
	}
}

// Diagnostic reports a placeholder that was left as literal text.
type Diagnostic struct {
	Start int
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %v", d.Start, d.Err)
}

// Result holds the rendered text per variant plus the placeholders that could
// not be substituted.
type Result struct {
	Outputs     map[palette.Variant]string
	Diagnostics []Diagnostic
}

// Text returns the output for v.
func (r Result) Text(v palette.Variant) string {
	return r.Outputs[v]
}

// Generate renders document for every variant with the configured engine.
// Placeholder problems never fail the call; they are returned as diagnostics.
// An error is only returned by the template engine when the document itself
// cannot be parsed or executed.
func Generate(document string, cfg Config) (Result, error) {
	if cfg.Engine == EngineTemplate {
		return Template(document, cfg)
	}
	return Replace(document, cfg), nil
}

type pass struct {
	text  string
	diags []Diagnostic
}

// Replace runs the placeholder engine.
func Replace(document string, cfg Config) Result {
	results := parse.Parse(document, cfg.Parse)

	var diags []Diagnostic
	captures := make([]parse.Capture, 0, len(results))
	for _, r := range results {
		if !r.OK() {
			diags = append(diags, Diagnostic{Start: r.Start(), Err: r.Err})
			continue
		}
		captures = append(captures, r.Capture)
	}

	src := []rune(document)
	variants := palette.Variants()
	passes := iter.Map(variants, func(v *palette.Variant) pass {
		return replaceVariant(src, captures, *v, cfg)
	})

	out := Result{Outputs: make(map[palette.Variant]string, len(variants))}
	seen := make(map[int]bool)
	for i, v := range variants {
		out.Outputs[v] = passes[i].text
		for _, d := range passes[i].diags {
			// opacity errors repeat identically in every variant
			if !seen[d.Start] {
				seen[d.Start] = true
				diags = append(diags, d)
			}
		}
	}

	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Start < diags[j].Start })
	out.Diagnostics = diags
	return out
}

func replaceVariant(src []rune, captures []parse.Capture, v palette.Variant, cfg Config) pass {
	buf := make([]rune, len(src))
	copy(buf, src)

	var p pass
	for i := len(captures) - 1; i >= 0; i-- {
		c := captures[i]
		value, err := Render(c, v, cfg)
		if err != nil {
			logger.Logf("%s: placeholder at %d left as text: %v", v, c.Start, err)
			p.diags = append(p.diags, Diagnostic{Start: c.Start, Err: err})
			continue
		}
		buf = splice(buf, c.Start, c.End, []rune(value))
	}
	p.text = string(buf)
	return p
}

func splice(buf []rune, start, end int, value []rune) []rune {
	out := make([]rune, 0, len(buf)-(end-start)+len(value))
	out = append(out, buf[:start]...)
	out = append(out, value...)
	return append(out, buf[end:]...)
}
