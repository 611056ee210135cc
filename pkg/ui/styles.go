package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceSM = 2
	SpaceMD = 3
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorDanger  = lipgloss.Color("#FF5555")

	// Privacy badge colors
	ColorOpen     = lipgloss.Color("#50FA7B")
	ColorOpenBg   = lipgloss.Color("#1A3D2A")
	ColorClosed   = lipgloss.Color("#FF79C6")
	ColorClosedBg = lipgloss.Color("#3D1A33")
)

// Theme carries the renderer and semantic colors shared by every view
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Open      lipgloss.AdaptiveColor
	Closed    lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	Base lipgloss.Style
}

// DefaultTheme builds the theme for r (lipgloss.DefaultRenderer if nil)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: string(ColorPrimary)},
		Secondary: lipgloss.AdaptiveColor{Light: "#4B5A8A", Dark: string(ColorMuted)},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: string(ColorSubtext)},
		Border:    lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: string(ColorBgHighlight)},
		Open:      lipgloss.AdaptiveColor{Light: "#1E8E3E", Dark: string(ColorOpen)},
		Closed:    lipgloss.AdaptiveColor{Light: "#C2185B", Dark: string(ColorClosed)},
		Danger:    lipgloss.AdaptiveColor{Light: "#C62828", Dark: string(ColorDanger)},
		Base:      r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1E1E1E", Dark: string(ColorText)}),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// AVATAR SWATCHES
// ══════════════════════════════════════════════════════════════════════════════

// avatarPalette maps the color tags used by the groups API to terminal colors
var avatarPalette = map[string]string{
	"red":    "#FF5555",
	"green":  "#50FA7B",
	"yellow": "#F1FA8C",
	"blue":   "#6CA0FF",
	"purple": "#BD93F9",
	"white":  "#F8F8F2",
	"orange": "#FFB86C",
	"black":  "#21222C",
	"pink":   "#FF79C6",
	"cyan":   "#8BE9FD",
	"gray":   "#6272A4",
	"grey":   "#6272A4",
}

// AvatarColor resolves a color tag to a terminal color. Hex tags are used
// as is; unknown names fall back to the muted color.
func AvatarColor(tag string) lipgloss.Color {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if hex, ok := avatarPalette[tag]; ok {
		return lipgloss.Color(hex)
	}
	if isHexColor(tag) {
		return lipgloss.Color(tag)
	}
	return ColorMuted
}

func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 {
		return false
	}
	if s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}
	return true
}

// RenderSwatch returns a filled dot in the avatar color, or blank space of
// the same width when the group has no color
func RenderSwatch(t Theme, tag string) string {
	if tag == "" {
		return "  "
	}
	return t.Renderer.NewStyle().Foreground(AvatarColor(tag)).Render("●") + " "
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// RenderPrivacyBadge returns a styled OPEN/CLOSED badge
func RenderPrivacyBadge(t Theme, closed bool) string {
	fg, bg, label := ColorOpen, ColorOpenBg, " OPEN "
	if closed {
		fg, bg, label = ColorClosed, ColorClosedBg, "CLOSED"
	}
	return t.Renderer.NewStyle().
		Foreground(fg).
		Background(bg).
		Bold(true).
		Render(label)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(t Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
