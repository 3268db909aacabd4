package main

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"rosepine/internal/format"
)

func TestFormatsMarkdown(t *testing.T) {
	md := formatsMarkdown()

	rows := 0
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "| `") {
			rows++
		}
	}
	if rows != len(format.All()) {
		t.Errorf("table has %d rows, want %d", rows, len(format.All()))
	}
	for _, want := range []string{
		"| `hex` | `#eb6f92` | `#eb6f9280` |",
		"| `rgb_ansi` | `235;111;146` | `235;111;146;0.5` |",
		"| `hsl_function` | `hsl(343, 76%, 68%)` |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestFormatsCommandPlain(t *testing.T) {
	stdout, _, err := runCLI(t, afero.NewMemMapFs(), "formats", "--style", "plain")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(stdout, "# Formats") || !strings.Contains(stdout, "ahex_ns") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestBuildMarkdownRenderer(t *testing.T) {
	render := buildMarkdownRenderer("notty", 60)
	out := render("# Title\n\nSome *body* text.")
	if !strings.Contains(out, "Title") || !strings.Contains(out, "body") {
		t.Errorf("rendered = %q", out)
	}

	// unknown styles fall back to plain wrapping
	render = buildMarkdownRenderer("no-such-style", 10)
	if got := render("one two three four"); !strings.Contains(got, "\n") {
		t.Errorf("fallback did not wrap: %q", got)
	}
}
