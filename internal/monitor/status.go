package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ismet55555/yojenkins-sub000/internal/jenkins"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
)

// statusLook is how one status is presented: color, glyph and finish sound.
type statusLook struct {
	Color  lipgloss.Color
	Symbol string
	Sound  string
}

// neutralLook covers every status the table doesn't name.
var neutralLook = statusLook{Color: ui.ColorPrimary, Symbol: ui.SymbolUnknown}

// statusLooks is static; unknown statuses fall through to neutralLook.
var statusLooks = map[jenkins.Status]statusLook{
	jenkins.StatusSuccess:  {Color: ui.ColorSuccess, Symbol: ui.SymbolSuccess, Sound: "success"},
	jenkins.StatusFailure:  {Color: ui.ColorError, Symbol: ui.SymbolFail, Sound: "failure"},
	jenkins.StatusUnstable: {Color: ui.ColorWarning, Symbol: ui.SymbolWarning, Sound: "unstable"},
	jenkins.StatusAborted:  {Color: ui.ColorMuted, Symbol: ui.SymbolSkipped, Sound: "aborted"},
	jenkins.StatusNotBuilt: {Color: ui.ColorMuted, Symbol: ui.SymbolSkipped},
	jenkins.StatusRunning:  {Color: ui.ColorRunning, Symbol: ui.SymbolProgress},
	jenkins.StatusQueued:   {Color: ui.ColorInfo, Symbol: ui.SymbolPending},
	jenkins.StatusPaused:   {Color: ui.ColorInfo, Symbol: ui.SymbolPaused},
	jenkins.StatusDisabled: {Color: ui.ColorMuted, Symbol: ui.SymbolSkipped},
	"PENDING":              {Color: ui.ColorInfo, Symbol: ui.SymbolPending},
}

// normalize folds a status to the case used by statusLooks.
func normalize(s jenkins.Status) jenkins.Status {
	return jenkins.Status(strings.ToUpper(string(s)))
}

func lookFor(s jenkins.Status) statusLook {
	if look, ok := statusLooks[normalize(s)]; ok {
		return look
	}
	return neutralLook
}

// StatusColor returns the display color for a status.
func StatusColor(s jenkins.Status) lipgloss.Color {
	return lookFor(s).Color
}

// StatusStyle returns a foreground style for a status.
func StatusStyle(s jenkins.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusColor(s)).Bold(true)
}

// StatusSymbol returns the glyph for a status.
func StatusSymbol(s jenkins.Status) string {
	return lookFor(s).Symbol
}

// StatusSound returns the sound to play when a build finishes with s, or ""
// for none.
func StatusSound(s jenkins.Status) string {
	return lookFor(s).Sound
}

// renderStatus renders the status word with its glyph. Running items show
// the spinner frame instead of the static glyph.
func renderStatus(s jenkins.Status, spinnerFrame string) string {
	if s == "" {
		s = jenkins.StatusUnknown
	}
	sym := StatusSymbol(s)
	if normalize(s) == jenkins.StatusRunning && spinnerFrame != "" {
		sym = spinnerFrame
	}
	return StatusStyle(s).Render(sym + " " + string(s))
}
