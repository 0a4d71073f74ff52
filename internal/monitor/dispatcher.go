package monitor

import "time"

// State is the interaction mode of the monitor.
type State int

const (
	StateNormal State = iota
	StatePaused
	StateHelpShown
	StateConfirmAbort
	StateConfirmBuild
	StateConfirmQuit
	StateShowingLogs
	StateExited
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "NORMAL"
	case StatePaused:
		return "PAUSED"
	case StateHelpShown:
		return "HELP_SHOWN"
	case StateConfirmAbort:
		return "CONFIRM_ABORT"
	case StateConfirmBuild:
		return "CONFIRM_BUILD"
	case StateConfirmQuit:
		return "CONFIRM_QUIT"
	case StateShowingLogs:
		return "SHOWING_LOGS"
	case StateExited:
		return "EXITED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the state ends the render loop.
func (s State) Terminal() bool {
	return s == StateShowingLogs || s == StateExited
}

// Effect is a side effect the caller must carry out after a dispatch.
type Effect int

const (
	EffectNone Effect = iota
	EffectAbort
	EffectTrigger
	EffectOpen
	EffectLogs
	EffectExit
)

// noticeTTL is how long a transient notice stays on screen.
const noticeTTL = 1500 * time.Millisecond

// arm is one half of an arm/commit pair: the first press arms, the second
// consecutive press commits and disarms.
type arm struct {
	presses int
}

func (a *arm) press() (commit bool) {
	a.presses++
	if a.presses >= 2 {
		a.presses = 0
		return true
	}
	return false
}

func (a *arm) reset() { a.presses = 0 }

// UIState is owned by the render loop. Pollers never touch it, so it has no lock.
type UIState struct {
	kind  Kind
	state State

	Paused       bool
	HelpVisible  bool
	SoundEnabled bool

	quit  arm
	abort arm
	build arm

	notice      string
	noticeUntil time.Time
}

// NewUIState returns the initial state for a monitor of the given kind.
func NewUIState(kind Kind, sound bool) *UIState {
	return &UIState{kind: kind, state: StateNormal, SoundEnabled: sound}
}

// State returns the current interaction mode.
func (u *UIState) State() State { return u.state }

// QuitPresses, AbortPresses and BuildPresses expose the arm counters.
func (u *UIState) QuitPresses() int  { return u.quit.presses }
func (u *UIState) AbortPresses() int { return u.abort.presses }
func (u *UIState) BuildPresses() int { return u.build.presses }

// SetNotice shows msg until now+noticeTTL.
func (u *UIState) SetNotice(msg string, now time.Time) {
	u.notice = msg
	u.noticeUntil = now.Add(noticeTTL)
}

// Notice returns the transient notice if it hasn't expired.
func (u *UIState) Notice(now time.Time) string {
	if u.notice == "" || now.After(u.noticeUntil) {
		return ""
	}
	return u.notice
}

// baseState is where the monitor settles when no confirmation is pending.
func (u *UIState) baseState() State {
	switch {
	case u.Paused:
		return StatePaused
	case u.HelpVisible:
		return StateHelpShown
	default:
		return StateNormal
	}
}

// Dispatch applies one action and returns the side effect to run.
// Terminal states swallow all input.
func (u *UIState) Dispatch(a Action, now time.Time) Effect {
	if u.state.Terminal() {
		return EffectNone
	}

	switch a {
	case ActionQuit:
		u.abort.reset()
		u.build.reset()
		if u.quit.press() {
			u.state = StateExited
			return EffectExit
		}
		u.state = StateConfirmQuit

	case ActionResume:
		u.quit.reset()
		u.abort.reset()
		u.build.reset()
		u.Paused = false
		u.HelpVisible = false
		u.state = StateNormal

	case ActionPause:
		switch u.state {
		case StateNormal:
			u.Paused = true
			u.state = StatePaused
		case StatePaused:
			u.Paused = false
			u.state = StateNormal
		}

	case ActionHelp:
		switch u.state {
		case StateNormal:
			u.HelpVisible = true
			u.state = StateHelpShown
		case StateHelpShown:
			u.HelpVisible = false
			u.state = StateNormal
		}

	case ActionAbort:
		if u.kind != KindBuild {
			return EffectNone
		}
		u.quit.reset()
		u.build.reset()
		if u.abort.press() {
			u.state = u.baseState()
			return EffectAbort
		}
		u.state = StateConfirmAbort

	case ActionBuild:
		if u.kind != KindJob {
			return EffectNone
		}
		u.quit.reset()
		u.abort.reset()
		if u.build.press() {
			u.state = u.baseState()
			return EffectTrigger
		}
		u.state = StateConfirmBuild

	case ActionOpen:
		return EffectOpen

	case ActionSound:
		u.SoundEnabled = !u.SoundEnabled
		if u.SoundEnabled {
			u.SetNotice("Sound ON", now)
		} else {
			u.SetNotice("Sound OFF", now)
		}

	case ActionLogs:
		if u.kind == KindBuild && u.state == StateNormal {
			u.state = StateShowingLogs
			return EffectLogs
		}
	}
	return EffectNone
}
