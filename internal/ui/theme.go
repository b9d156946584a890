// Package ui holds the terminal presentation layer: colors, headless
// detection, the progress bar and spinner, and markdown rendering.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig selects the palette.
type ThemeConfig struct {
	Mode    string // "dark" (default) or "light"
	NoColor bool
}

// Colors is a palette of hex colors.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

var (
	darkColors = Colors{
		Primary:   "#7B61FF",
		Secondary: "#4285F4",
		Success:   "#10B981",
		Warning:   "#F59E0B",
		Error:     "#EF4444",
		Muted:     "#6B7280",
	}
	lightColors = Colors{
		Primary:   "#5B3FD9",
		Secondary: "#1A73E8",
		Success:   "#047857",
		Warning:   "#B45309",
		Error:     "#B91C1C",
		Muted:     "#4B5563",
	}
)

// Theme styles the CLI's own output.
type Theme struct {
	Mode    string
	NoColor bool
	Colors  Colors
}

// NewTheme creates a Theme from cfg.
func NewTheme(cfg ThemeConfig) *Theme {
	t := &Theme{Mode: cfg.Mode, NoColor: cfg.NoColor, Colors: darkColors}
	if cfg.Mode == "light" {
		t.Colors = lightColors
	} else {
		t.Mode = "dark"
	}
	return t
}

func (t *Theme) render(color string, bold bool, s string) string {
	if t.NoColor {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(bold).Render(s)
}

// Info styles a status line.
func (t *Theme) Info(s string) string { return t.render(t.Colors.Secondary, true, s) }

// Success styles a completion line.
func (t *Theme) Success(s string) string { return t.render(t.Colors.Success, true, s) }

// Warning styles a recoverable problem.
func (t *Theme) Warning(s string) string { return t.render(t.Colors.Warning, true, s) }

// Error styles a fatal problem.
func (t *Theme) Error(s string) string { return t.render(t.Colors.Error, true, s) }

// Muted styles secondary detail.
func (t *Theme) Muted(s string) string { return t.render(t.Colors.Muted, false, s) }

// GlamourStyle returns the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	switch {
	case t.NoColor:
		return "notty"
	case t.Mode == "light":
		return "light"
	default:
		return "dark"
	}
}
