package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is what a keystroke asks the monitor to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPause
	ActionHelp
	ActionAbort
	ActionBuild
	ActionOpen
	ActionSound
	ActionLogs
	ActionResume
)

// String returns the lowercase action name.
func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionPause:
		return "pause"
	case ActionHelp:
		return "help"
	case ActionAbort:
		return "abort"
	case ActionBuild:
		return "build"
	case ActionOpen:
		return "open"
	case ActionSound:
		return "sound"
	case ActionLogs:
		return "logs"
	case ActionResume:
		return "resume"
	default:
		return "none"
	}
}

// keyMap is the static key table. Bindings that don't apply to the monitored
// resource are disabled and neither match nor show in help.
type keyMap struct {
	Quit   key.Binding
	Pause  key.Binding
	Help   key.Binding
	Abort  key.Binding
	Build  key.Binding
	Open   key.Binding
	Sound  key.Binding
	Logs   key.Binding
	Resume key.Binding
}

func newKeyMap(kind Kind) keyMap {
	km := keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit (press twice)"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause / unpause polling"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "toggle this help"),
		),
		Abort: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "abort build (press twice)"),
		),
		Build: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "trigger new build (press twice)"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Sound: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle finish sound"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "exit and stream logs"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r", "esc"),
			key.WithHelp("r/esc", "resume / cancel"),
		),
	}

	switch kind {
	case KindBuild:
		km.Build.SetEnabled(false)
	case KindJob:
		km.Abort.SetEnabled(false)
		km.Logs.SetEnabled(false)
	}
	return km
}

// Lookup maps a keystroke to an action. Unknown keys map to ActionNone.
func (km keyMap) Lookup(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, km.Quit):
		return ActionQuit
	case key.Matches(msg, km.Pause):
		return ActionPause
	case key.Matches(msg, km.Help):
		return ActionHelp
	case key.Matches(msg, km.Abort):
		return ActionAbort
	case key.Matches(msg, km.Build):
		return ActionBuild
	case key.Matches(msg, km.Open):
		return ActionOpen
	case key.Matches(msg, km.Sound):
		return ActionSound
	case key.Matches(msg, km.Logs):
		return ActionLogs
	case key.Matches(msg, km.Resume):
		return ActionResume
	}
	return ActionNone
}

// ShortHelp implements help.KeyMap for the footer line.
func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Quit, km.Pause, km.Help, km.Abort, km.Build, km.Open}
}

// FullHelp implements help.KeyMap for the help overlay.
func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Abort, km.Build, km.Logs, km.Open, km.Sound},
		{km.Pause, km.Resume, km.Help, km.Quit},
	}
}
