package tui

import (
	"strings"

	"claude-config-editor/internal/theme"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel renders a centered overlay showing all keybindings.
// It floats on top of the projects screen.
type HelpModel struct {
	visible bool
	keys    KeyMap
	styles  theme.Styles
	help    help.Model
}

// NewHelpModel creates a new help overlay.
func NewHelpModel(keys KeyMap, styles theme.Styles) HelpModel {
	h := help.New()
	h.ShowAll = true
	return HelpModel{
		keys:   keys,
		styles: styles,
		help:   h,
	}
}

// Toggle flips the overlay visibility.
func (h *HelpModel) Toggle() {
	h.visible = !h.visible
}

// Visible reports whether the overlay is currently showing.
func (h *HelpModel) Visible() bool {
	return h.visible
}

// View renders the help overlay, centered within the given dimensions.
func (h *HelpModel) View(width, height int) string {
	if !h.visible {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorText).
		Render("Keybindings")

	lines := []string{
		title,
		"",
		h.help.FullHelpView(h.keys.FullHelp()),
		"",
		lipgloss.NewStyle().
			Foreground(theme.ColorMuted).
			Italic(true).
			Render("Press any key to close"),
	}
	overlay := h.styles.HelpOverlay.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
}
