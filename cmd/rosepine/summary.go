package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"rosepine/internal/build"
	"rosepine/internal/palette"
)

// maxListedDiagnostics caps how many diagnostics the summary prints.
const maxListedDiagnostics = 10

// BuildSummary holds what the CLI prints after a build.
type BuildSummary struct {
	Version string
	Out     string
	Report  build.Report
}

// printBuildSummary prints the per-variant counts and any diagnostics.
func printBuildSummary(w io.Writer, summary BuildSummary, width int) {
	if width <= 0 {
		width = defaultWidth
	}

	versionStr := ""
	if summary.Version != "" {
		versionStr = dimStyle.Render(fmt.Sprintf(" v%s", summary.Version))
	}
	_, _ = fmt.Fprintln(w, titleStyle.Render("Rosé Pine")+versionStr+dimStyle.Render(" • "+summary.Out))

	report := summary.Report
	written := report.WrittenByVariant()
	rows := make([][2]string, 0, len(palette.Variants()))
	for _, v := range palette.Variants() {
		rows = append(rows, [2]string{v.Name(), fmt.Sprintf("%d written", written[v])})
	}
	for _, line := range alignRows(rows) {
		_, _ = fmt.Fprintln(w, "  "+line)
	}

	totals := successStyle.Render(fmt.Sprintf("%d written", report.Written()))
	if skipped := report.Skipped(); skipped > 0 {
		totals += ", " + dimStyle.Render(fmt.Sprintf("%d up to date", skipped))
	}
	if n := len(report.Diagnostics); n > 0 {
		totals += ", " + warnStyle.Render(pluralize(n, "placeholder", "placeholders")+" left unchanged")
	}
	_, _ = fmt.Fprintln(w, textStyle.Render(totals))

	if len(report.Diagnostics) == 0 {
		return
	}
	_, _ = fmt.Fprint(w, formatDiagnostics(report.Diagnostics, width))
}

// alignRows renders label/value pairs with the values in one column. Labels
// may carry ANSI styling, so widths are measured on the printable cells.
func alignRows(rows [][2]string) []string {
	labelWidth := 0
	for _, row := range rows {
		if w := ansi.StringWidth(row[0]); w > labelWidth {
			labelWidth = w
		}
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		pad := strings.Repeat(" ", labelWidth-ansi.StringWidth(row[0]))
		out = append(out, labelStyle.Render(row[0])+pad+"  "+textStyle.Render(row[1]))
	}
	return out
}

// formatDiagnostics lists diagnostics wrapped to width and indented under a header.
func formatDiagnostics(diags []build.Diagnostic, width int) string {
	var b strings.Builder
	b.WriteString(warnStyle.Render("Unrendered placeholders:") + "\n")

	listed := diags
	if len(listed) > maxListedDiagnostics {
		listed = listed[:maxListedDiagnostics]
	}
	wrapAt := width - 4
	if wrapAt < 20 {
		wrapAt = 20
	}
	for _, d := range listed {
		wrapped := wordwrap.String(d.String(), wrapAt)
		b.WriteString(indent.String(wrapped, 2) + "\n")
	}
	if rest := len(diags) - len(listed); rest > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", rest)) + "\n")
	}
	return b.String()
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
