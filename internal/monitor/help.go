package monitor

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
)

// newHelp builds the help renderer with the monitor's palette.
func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " · "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true)
	h.Styles.ShortDesc = MutedStyle
	h.Styles.ShortSeparator = MutedStyle
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	h.Styles.FullSeparator = MutedStyle
	return h
}

// helpBox renders the full key table as an overlay box.
func helpBox(h help.Model, keys keyMap) string {
	h.ShowAll = true

	var lines []string
	lines = append(lines, overlayTitleStyle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")
	lines = append(lines, h.View(keys))
	lines = append(lines, "")
	lines = append(lines, MutedStyle.Render("Press h to close"))

	return overlayStyle.Render(strings.Join(lines, "\n"))
}

// footerHelp renders the one-line key hint, cut to width.
func footerHelp(h help.Model, keys keyMap, width int) string {
	h.ShowAll = false
	h.Width = width
	return h.View(keys)
}
