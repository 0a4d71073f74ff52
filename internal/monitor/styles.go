package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
)

// Base styles for the monitor
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Width(labelWidth)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	// NoDataStyle marks a resource that has never been fetched successfully.
	NoDataStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ui.ColorMuted).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorInfo).
			Padding(0, 2)

	confirmStyle = overlayStyle.
			BorderForeground(ui.ColorError)

	overlayTitleStyle = lipgloss.NewStyle().
				Foreground(ui.ColorPrimary).
				Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(ui.ColorInfo).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorInfo).
			Padding(0, 1)
)

// labelWidth is the fixed column for "Status", "Started" and friends.
const labelWidth = 10

// SectionHeader renders a section title followed by a rule to the given width.
// Format: ── Title ─────────────── value
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	left := "── " + title + " "
	right := ""
	if value != "" {
		right = " " + value
	}

	fill := width - lipgloss.Width(left) - lipgloss.Width(right)
	if fill < 1 {
		fill = 1
	}

	border := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	titleStyle := lipgloss.NewStyle().Foreground(ui.ColorInfo).Bold(true)

	return border.Render("── ") +
		titleStyle.Render(title) +
		border.Render(" "+strings.Repeat("─", fill)) +
		MutedStyle.Render(right)
}

// field renders one "Label  value" row.
func field(label, value string) string {
	return LabelStyle.Render(label) + value
}
