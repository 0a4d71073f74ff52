package monitor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ismet55555/yojenkins-sub000/internal/jenkins"
	"github.com/ismet55555/yojenkins-sub000/internal/logger"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
)

// frameMsg is the fixed render tick.
type frameMsg time.Time

// actionResultMsg reports how a remote action went.
type actionResultMsg struct {
	action Action
	err    error
}

// slots holds one snapshot per polled resource. Each has exactly one poller
// writing it; the model only reads.
type slots struct {
	server Snapshot[jenkins.ServerStatus]
	build  Snapshot[jenkins.Build]
	stages Snapshot[[]jenkins.Stage]
	job    Snapshot[jenkins.Job]
	builds Snapshot[[]jenkins.BuildRef]
}

// Model is the Bubble Tea model for the monitor. All of its state is owned
// by the Bubble Tea event loop.
type Model struct {
	kind     Kind
	target   string
	renderer *Renderer
	keys     keyMap
	ui       *UIState
	gate     *PauseGate
	slots    *slots

	build BuildSource
	job   JobSource
	sound sounder
	log   logger.Logger

	// ctx is the polling context. Remote actions and sounds run under it so
	// they are abandoned once the monitor exits.
	ctx         context.Context
	stopPolling context.CancelFunc

	frameInterval time.Duration
	spinnerEvery  int
	minWidth      int
	minHeight     int
	now           func() time.Time

	width  int
	height int
	tick   int

	// Last seen running build, for the finish sound.
	watchNumber  int
	watchRunning bool

	outcome Outcome
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return m.frameCmd()
}

// Update handles a message and returns the updated model and command.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		m.tick++
		m.checkFinished()
		return m, m.frameCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case actionResultMsg:
		m.ui.SetNotice(resultNotice(msg), m.now())
		return m, nil
	}
	return m, nil
}

// View renders the current frame.
func (m Model) View() string {
	return m.renderer.Render(m.frame())
}

// Outcome reports how the model ended.
func (m Model) Outcome() Outcome {
	return m.outcome
}

func (m Model) frame() Frame {
	now := m.now()
	f := Frame{
		Kind:      m.kind,
		Width:     m.width,
		Height:    m.height,
		MinWidth:  m.minWidth,
		MinHeight: m.minHeight,
		Now:       now,
		Target:    m.target,
		Server:    m.slots.server.Read(),
		UI:        m.ui.View(now),
		Spinner:   ui.SpinnerFrame(m.tick / m.spinnerEvery),
	}
	if m.kind == KindJob {
		f.Job = m.slots.job.Read()
		f.Builds = m.slots.builds.Read()
	} else {
		f.Build = m.slots.build.Read()
		f.Stages = m.slots.stages.Read()
	}
	return f
}

func (m Model) frameCmd() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) tooSmall() bool {
	return m.width < m.minWidth || m.height < m.minHeight
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Lookup(msg)
	if action == ActionNone {
		return m, nil
	}
	// The resize prompt only honors quitting.
	if m.tooSmall() && action != ActionQuit && action != ActionResume {
		return m, nil
	}

	before := m.ui.State()
	effect := m.ui.Dispatch(action, m.now())
	m.gate.Set(m.ui.Paused)
	if after := m.ui.State(); after != before {
		m.log.Debug("key %s: %s -> %s", action, before, after)
	}

	switch effect {
	case EffectExit:
		m.outcome = OutcomeQuit
		m.stopPolling()
		return m, tea.Quit

	case EffectLogs:
		m.outcome = OutcomeLogs
		m.stopPolling()
		return m, tea.Quit

	case EffectAbort:
		m.ui.SetNotice("Requesting abort"+ellipsis, m.now())
		build, ctx := m.build, m.ctx
		return m, func() tea.Msg {
			return actionResultMsg{action: ActionAbort, err: build.Abort(ctx)}
		}

	case EffectTrigger:
		m.ui.SetNotice("Triggering build"+ellipsis, m.now())
		job, ctx := m.job, m.ctx
		return m, func() tea.Msg {
			return actionResultMsg{action: ActionBuild, err: job.Trigger(ctx)}
		}

	case EffectOpen:
		open := m.openFunc()
		return m, func() tea.Msg {
			return actionResultMsg{action: ActionOpen, err: open()}
		}
	}
	return m, nil
}

func (m Model) openFunc() func() error {
	if m.kind == KindJob {
		return m.job.Open
	}
	return m.build.Open
}

// checkFinished plays the finish sound when the watched build goes from
// running to a final result.
func (m *Model) checkFinished() {
	var (
		number int
		status jenkins.Status
		ok     bool
	)
	if m.kind == KindJob {
		var job jenkins.Job
		job, ok = m.slots.job.Get()
		if ok && job.LastBuild != nil {
			number, status = job.LastBuild.Number, job.LastBuild.Status
		} else {
			ok = false
		}
	} else {
		var b jenkins.Build
		b, ok = m.slots.build.Get()
		number, status = b.Number, b.Status
	}
	if !ok {
		return
	}

	if m.watchRunning && number == m.watchNumber && status.Finished() && m.ui.SoundEnabled {
		m.log.Debug("build #%d finished with %s", number, status)
		m.sound.play(m.ctx, StatusSound(status))
	}
	m.watchNumber = number
	m.watchRunning = status == jenkins.StatusRunning
}

func resultNotice(msg actionResultMsg) string {
	if msg.err != nil {
		switch msg.action {
		case ActionAbort:
			return "Abort failed: " + msg.err.Error()
		case ActionBuild:
			return "Trigger failed: " + msg.err.Error()
		default:
			return "Could not open browser: " + msg.err.Error()
		}
	}
	switch msg.action {
	case ActionAbort:
		return "Abort requested"
	case ActionBuild:
		return "Build triggered"
	default:
		return "Opened in browser"
	}
}
