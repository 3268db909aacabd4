package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"rosepine/internal/format"
	"rosepine/internal/palette"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func (a *app) colorCmd() *cobra.Command {
	var (
		variantName string
		formatName  string
		opacity     uint16
		copyValue   bool
	)

	cmd := &cobra.Command{
		Use:   "color <role>",
		Short: "Print one palette color in a given format",
		Example: "  rosepine color love --variant moon --format rgb_function\n" +
			"  rosepine color highlight_med --opacity 50 --copy",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := palette.ParseRole(args[0])
			if err != nil {
				return a.fail(err)
			}
			variant, err := palette.ParseVariant(variantName)
			if err != nil {
				return a.fail(err)
			}
			f, err := format.Parse(formatName)
			if err != nil {
				return a.fail(err)
			}

			var alpha *uint16
			if cmd.Flags().Changed("opacity") {
				alpha = &opacity
			}
			out, err := f.Render(role.Color(variant), alpha)
			if err != nil {
				return a.fail(err)
			}
			_, _ = fmt.Fprintln(a.stdout, out)

			if copyValue {
				if err := copyToClipboard(out); err != nil {
					return a.fail(fmt.Errorf("copy to clipboard: %w", err))
				}
				_, _ = fmt.Fprintln(a.stderr, dimStyle.Render("Copied to clipboard"))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&variantName, "variant", palette.Main.Key(), "palette variant: main, moon or dawn")
	f.StringVarP(&formatName, "format", "f", format.Hex.String(), "color format")
	f.Uint16Var(&opacity, "opacity", format.MaxOpacity, "alpha percentage (0-100)")
	f.BoolVar(&copyValue, "copy", false, "also copy the value to the clipboard")
	return cmd
}
