// Package theme holds the lipgloss palette and styles shared by the terminal
// UI and the CLI's table output.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette. Colours adapt to light and dark terminals; the size colours match
// the web editor's small/medium/large badges.
var (
	ColorText      = lipgloss.AdaptiveColor{Light: "#1f2328", Dark: "#e6edf3"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#59636e", Dark: "#8b949e"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#d0d7de", Dark: "#30363d"}
	ColorBar       = lipgloss.AdaptiveColor{Light: "#f6f8fa", Dark: "#161b22"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#1f6feb"}
	ColorOnAccent  = lipgloss.Color("#ffffff")

	ColorSizeSmall  = lipgloss.Color("#2e7d32")
	ColorSizeMedium = lipgloss.Color("#ef6c00")
	ColorSizeLarge  = lipgloss.Color("#c62828")
)

// Styles holds every lipgloss style used by the terminal front ends.
type Styles struct {
	Header    lipgloss.Style
	Summary   lipgloss.Style
	Hint      lipgloss.Style
	ColHeader lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	Checked          lipgloss.Style

	SizeSmall  lipgloss.Style
	SizeMedium lipgloss.Style
	SizeLarge  lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Confirm     lipgloss.Style
	Dirty       lipgloss.Style
	HelpOverlay lipgloss.Style
	StatusBar   lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
}

// DefaultStyles returns a fresh set of styles.
func DefaultStyles() Styles {
	base := lipgloss.NewStyle().Foreground(ColorText)
	muted := lipgloss.NewStyle().Foreground(ColorMuted)
	field := base.Border(lipgloss.RoundedBorder()).Padding(0, 1)

	return Styles{
		Header:    base.Background(ColorHighlight).Foreground(ColorOnAccent).Bold(true).Padding(0, 1),
		Summary:   muted.PaddingLeft(1),
		Hint:      lipgloss.NewStyle().Foreground(ColorSizeMedium).Italic(true).PaddingLeft(1),
		ColHeader: muted.Bold(true).Underline(true),

		ListItem:         base,
		ListItemSelected: base.Background(ColorHighlight).Foreground(ColorOnAccent),
		Checked:          lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true),

		SizeSmall:  lipgloss.NewStyle().Foreground(ColorSizeSmall),
		SizeMedium: lipgloss.NewStyle().Foreground(ColorSizeMedium),
		SizeLarge:  lipgloss.NewStyle().Foreground(ColorSizeLarge).Bold(true),

		Input:        field.BorderForeground(ColorBorder),
		InputFocused: field.BorderForeground(ColorHighlight),

		Confirm: lipgloss.NewStyle().Background(ColorSizeLarge).Foreground(ColorOnAccent).Bold(true).Padding(0, 1),
		Dirty:   lipgloss.NewStyle().Foreground(ColorSizeMedium).Bold(true),
		HelpOverlay: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorHighlight).
			Padding(1, 3),
		StatusBar: muted.Background(ColorBar).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(ColorSizeLarge).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(ColorSizeSmall),
	}
}

// SizeStyle returns the style for a size class name ("small", "medium",
// "large"). Unknown names get the small style.
func (s Styles) SizeStyle(class string) lipgloss.Style {
	switch class {
	case "large":
		return s.SizeLarge
	case "medium":
		return s.SizeMedium
	default:
		return s.SizeSmall
	}
}
