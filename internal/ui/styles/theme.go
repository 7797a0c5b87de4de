// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styles used by the console. Styles are bound to the
// renderer of one output so piped output stays plain.
type Theme struct {
	renderer *lipgloss.Renderer

	// Reply styles command replies
	Reply lipgloss.Style
	// Error styles error messages
	Error lipgloss.Style
	// Warning styles warnings such as a file that failed to reload
	Warning lipgloss.Style
	// Hint styles the usage of a pending argument
	Hint lipgloss.Style
	// Command styles command names in tables
	Command lipgloss.Style
	// Usage styles decider descriptions in tables
	Usage lipgloss.Style
	// Heading styles table headings
	Heading lipgloss.Style
	// Muted styles separators and secondary text
	Muted lipgloss.Style
}

// NewTheme creates a theme rendering for w. With noColor set, or when w is
// not a color capable terminal, styles render plain text.
func NewTheme(w io.Writer, noColor bool) *Theme {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	t := &Theme{renderer: r}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	r := t.renderer

	t.Reply = r.NewStyle().Foreground(Emerald)
	t.Error = r.NewStyle().Bold(true).Foreground(Rose)
	t.Warning = r.NewStyle().Foreground(Amber)
	t.Hint = r.NewStyle().Italic(true).Foreground(Amber)
	t.Command = r.NewStyle().Bold(true).Foreground(Purple)
	t.Usage = r.NewStyle().Foreground(TextSecondary)
	t.Heading = r.NewStyle().Bold(true).Foreground(Cyan).MarginBottom(1)
	t.Muted = r.NewStyle().Foreground(TextMuted)
}

// ColorProfile returns the profile styles are rendered with.
func (t *Theme) ColorProfile() termenv.Profile {
	return t.renderer.ColorProfile()
}

// Separator renders a horizontal rule of the given width.
func (t *Theme) Separator(width int) string {
	if width <= 0 {
		width = 70
	}
	return t.Muted.Render(strings.Repeat("-", width))
}
