package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the scormkit banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct{ text, color string }{
		{"  ___  ___ ___  ___ __  __ _   _ _", "#818cf8"},
		{" / __|/ __/ _ \\| _ \\  \\/  | |_(_) |_", "#a78bfa"},
		{" \\__ \\ (_| (_) |   / |\\/| | / / |  _|", "#c084fc"},
		{" |___/\\___\\___/|_|_\\_|  |_|_\\_\\_|\\__|", "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status colours a one-word outcome: green when ok, red otherwise.
func Status(ok bool, text string) string {
	p := termenv.EnvColorProfile()
	color := "#22c55e"
	if !ok {
		color = "#ef4444"
	}
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
