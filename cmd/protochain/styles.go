package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"protochain/pkg/config"
)

var (
	accentColor  = lipgloss.Color("#3B82F6")
	successColor = lipgloss.Color("#10B981")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
)

type styles struct {
	header  lipgloss.Style
	enabled lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
}

// newStyles binds the palette to w. In auto mode the color profile is
// detected from w, so buffers and pipes get plain text.
func newStyles(w io.Writer, color string) styles {
	r := lipgloss.NewRenderer(w)
	switch color {
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	}
	return styles{
		header:  r.NewStyle().Foreground(accentColor).Bold(true),
		enabled: r.NewStyle().Foreground(successColor),
		muted:   r.NewStyle().Foreground(mutedColor),
		ok:      r.NewStyle().Foreground(successColor).Bold(true),
		err:     r.NewStyle().Foreground(errorColor).Bold(true),
	}
}
