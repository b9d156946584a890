package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the markdown wrap width.
const DefaultWordWrap = 80

// RenderMarkdown renders md for the terminal with glamour. Headless output
// gets the source markdown unchanged, which reads fine as plain text.
// Rendering errors also fall back to the source.
func RenderMarkdown(theme *Theme, hm *HeadlessManager, md string) string {
	if hm != nil && hm.IsHeadless() {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.GlamourStyle()),
		glamour.WithWordWrap(DefaultWordWrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil || strings.TrimSpace(out) == "" {
		return md
	}
	return out
}
