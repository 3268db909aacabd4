package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"rosepine/internal/format"
	"rosepine/internal/palette"
)

// sampleOpacity is the alpha used for the second example column.
const sampleOpacity uint16 = 50

func (a *app) formatsCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List every color format with an example",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			render := buildMarkdownRenderer(style, terminalWidth())
			_, _ = fmt.Fprintln(a.stdout, render(formatsMarkdown()))
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "dark", "glamour style: dark, light, notty or plain")
	return cmd
}

// formatsMarkdown is a table of every format rendering love from the main
// variant, with and without alpha.
func formatsMarkdown() string {
	love := palette.Love.Color(palette.Main)
	alpha := sampleOpacity

	var b strings.Builder
	b.WriteString("# Formats\n\n")
	fmt.Fprintf(&b, "Examples render `%s` from %s; the alpha column uses `/%d`.\n\n",
		palette.Love, palette.Main.Name(), sampleOpacity)
	b.WriteString("| Name | Example | With alpha |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, f := range format.All() {
		withAlpha, err := f.Render(love, &alpha)
		if err != nil {
			withAlpha = err.Error()
		}
		fmt.Fprintf(&b, "| `%s` | `%s` | `%s` |\n", f, f.Color(love), withAlpha)
	}
	return b.String()
}

func buildMarkdownRenderer(style string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
