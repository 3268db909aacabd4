package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"rosepine/internal/format"
	"rosepine/internal/palette"
)

func (a *app) paletteCmd() *cobra.Command {
	var (
		variantName string
		formatName  string
		noColor     bool
	)

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Show every role of one or all variants as swatches",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			variants := palette.Variants()
			if variantName != "" {
				v, err := palette.ParseVariant(variantName)
				if err != nil {
					return a.fail(err)
				}
				variants = []palette.Variant{v}
			}
			f, err := format.Parse(formatName)
			if err != nil {
				return a.fail(err)
			}

			renderer := lipgloss.NewRenderer(a.stdout)
			if noColor {
				renderer.SetColorProfile(termenv.Ascii)
			}
			for i, v := range variants {
				if i > 0 {
					_, _ = fmt.Fprintln(a.stdout)
				}
				printSwatches(a.stdout, renderer, v, f)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&variantName, "variant", "", "only show this variant")
	f.StringVarP(&formatName, "format", "f", format.Hex.String(), "format of the value column")
	f.BoolVar(&noColor, "no-color", false, "print values without swatches")
	return cmd
}

// printSwatches writes one line per role: a colored block, the role name and
// the value in format f.
func printSwatches(w io.Writer, renderer *lipgloss.Renderer, v palette.Variant, f format.Format) {
	header := renderer.NewStyle().Bold(true).Foreground(primaryColor)
	name := renderer.NewStyle().Foreground(textColor)
	_, _ = fmt.Fprintln(w, header.Render(v.Name())+" "+renderer.NewStyle().Foreground(dimColor).Render("("+v.Kind().String()+")"))

	width := 0
	for _, r := range palette.Roles() {
		width = max(width, len(r.String()))
	}
	for _, r := range palette.Roles() {
		c := r.Color(v)
		swatch := renderer.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
		if renderer.ColorProfile() == termenv.Ascii {
			swatch = ""
		} else {
			swatch += " "
		}
		label := r.String() + strings.Repeat(" ", width-len(r.String()))
		_, _ = fmt.Fprintf(w, "  %s%s  %s\n", swatch, name.Render(label), f.Color(c))
	}
}
