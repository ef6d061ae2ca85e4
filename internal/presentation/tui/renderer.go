package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// RenderFunc turns markdown into terminal output.
type RenderFunc func(markdown string) (string, error)

// NewRenderer returns a function that renders markdown using glamour.
// When stdout is not a terminal the markdown is passed through unchanged.
func NewRenderer() RenderFunc {
	if !IsTerminal(os.Stdout) {
		return Plain
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return Plain
	}
	return r.Render
}

// Plain returns markdown as is.
func Plain(markdown string) (string, error) {
	return markdown, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
