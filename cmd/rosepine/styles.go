package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"rosepine/internal/palette"
)

const defaultWidth = 80

// Colors come from the main variant so the CLI wears its own theme.
var (
	primaryColor = roleColor(palette.Iris)
	accentColor  = roleColor(palette.Rose)
	dimColor     = roleColor(palette.Muted)
	textColor    = roleColor(palette.Text)
	successColor = roleColor(palette.Foam)
	warnColor    = roleColor(palette.Gold)
	errorColor   = roleColor(palette.Love)
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	textStyle = lipgloss.NewStyle().
			Foreground(textColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	warnStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(accentColor)
)

func roleColor(r palette.Role) lipgloss.Color {
	return lipgloss.Color(r.Color(palette.Main).Hex())
}

// terminalWidth reports the width of stdout, or defaultWidth when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
