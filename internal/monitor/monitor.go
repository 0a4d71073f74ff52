package monitor

import (
	"context"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ismet55555/yojenkins-sub000/internal/config"
	"github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/ismet55555/yojenkins-sub000/internal/jenkins"
	"github.com/ismet55555/yojenkins-sub000/internal/logger"
	"github.com/ismet55555/yojenkins-sub000/internal/output"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
)

// shutdownGrace is how long Run waits for pollers after the UI exits. An
// in-flight fetch may outlive it; its result is never rendered.
const shutdownGrace = 500 * time.Millisecond

// Options configures a Monitor. Zero intervals and sizes take the defaults
// from config.DefaultMonitorConfig.
type Options struct {
	Kind   Kind
	Build  BuildSource // required for KindBuild
	Job    JobSource   // required for KindJob
	Server ServerSource

	Config config.MonitorConfig

	Sound  bool
	Player Player

	Logger logger.Logger
	// LogWriter receives streamed build logs after the UI exits. Defaults to stdout.
	LogWriter io.Writer
	// ProgramOptions are appended to the Bubble Tea program options; tests
	// use them to swap input and output.
	ProgramOptions []tea.ProgramOption
	// Now overrides the clock for rendering.
	Now func() time.Time
}

// poller is the type-erased view of a Poller[T] the orchestrator manages.
type poller interface {
	Start(ctx context.Context)
	Done() <-chan struct{}
}

// Monitor wires pollers, the dispatcher and the renderer together.
type Monitor struct {
	opts    Options
	cfg     config.MonitorConfig
	slots   *slots
	gate    *PauseGate
	pollers []poller
	log     logger.Logger
}

// New validates opts and prepares the pollers without starting anything.
func New(opts Options) (*Monitor, error) {
	switch opts.Kind {
	case KindBuild:
		if opts.Build == nil {
			return nil, errors.New(errors.ErrMonitor, "No build to monitor", "Pass a build URL")
		}
	case KindJob:
		if opts.Job == nil {
			return nil, errors.New(errors.ErrMonitor, "No job to monitor", "Pass a job URL")
		}
	default:
		return nil, errors.New(errors.ErrMonitor, "Unknown monitor kind", "")
	}
	if opts.Server == nil {
		return nil, errors.New(errors.ErrMonitor, "No server to check", "")
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewEnvLogger("[monitor]")
	}

	m := &Monitor{
		opts:  opts,
		cfg:   withDefaults(opts.Config),
		slots: &slots{},
		gate:  &PauseGate{},
		log:   log,
	}
	m.pollers = m.newPollers()
	return m, nil
}

func withDefaults(c config.MonitorConfig) config.MonitorConfig {
	d := config.DefaultMonitorConfig()
	if c.BuildInterval <= 0 {
		c.BuildInterval = d.BuildInterval
	}
	if c.StagesInterval <= 0 {
		c.StagesInterval = d.StagesInterval
	}
	if c.JobInterval <= 0 {
		c.JobInterval = d.JobInterval
	}
	if c.BuildsInterval <= 0 {
		c.BuildsInterval = d.BuildsInterval
	}
	if c.ServerInterval <= 0 {
		c.ServerInterval = d.ServerInterval
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	if c.MinWidth <= 0 {
		c.MinWidth = d.MinWidth
	}
	if c.MinHeight <= 0 {
		c.MinHeight = d.MinHeight
	}
	return c
}

func (m *Monitor) newPollers() []poller {
	server := m.opts.Server
	ps := []poller{
		NewPoller(PollerConfig[jenkins.ServerStatus]{
			Name:     "server",
			Interval: m.cfg.ServerInterval,
			Fetch: func(ctx context.Context) (jenkins.ServerStatus, error) {
				st := jenkins.ServerStatus{Reachable: server.Reachable(ctx), CheckedAt: time.Now()}
				if st.Reachable {
					st.User, st.Authenticated = server.Authenticated(ctx)
				}
				return st, nil
			},
		}, &m.slots.server, m.gate, m.log),
	}

	if m.opts.Kind == KindJob {
		job := m.opts.Job
		return append(ps,
			NewPoller(PollerConfig[jenkins.Job]{Name: "job", Interval: m.cfg.JobInterval, Fetch: job.Job}, &m.slots.job, m.gate, m.log),
			NewPoller(PollerConfig[[]jenkins.BuildRef]{Name: "builds", Interval: m.cfg.BuildsInterval, Fetch: job.Builds}, &m.slots.builds, m.gate, m.log),
		)
	}

	build := m.opts.Build
	return append(ps,
		NewPoller(PollerConfig[jenkins.Build]{Name: "build", Interval: m.cfg.BuildInterval, Fetch: build.Build}, &m.slots.build, m.gate, m.log),
		NewPoller(PollerConfig[[]jenkins.Stage]{Name: "stages", Interval: m.cfg.StagesInterval, Fetch: build.Stages}, &m.slots.stages, m.gate, m.log),
	)
}

// start launches every poller under ctx.
func (m *Monitor) start(ctx context.Context) {
	for _, p := range m.pollers {
		p.Start(ctx)
	}
}

// wait gives pollers up to grace to notice shutdown. It reports whether all
// of them stopped in time.
func (m *Monitor) wait(grace time.Duration) bool {
	deadline := time.NewTimer(grace)
	defer deadline.Stop()
	for _, p := range m.pollers {
		select {
		case <-p.Done():
		case <-deadline.C:
			return false
		}
	}
	return true
}

func (m *Monitor) targetURL() string {
	if m.opts.Kind == KindJob {
		return m.opts.Job.URL()
	}
	return m.opts.Build.URL()
}

// model builds the Bubble Tea model. stop cancels ctx.
func (m *Monitor) model(ctx context.Context, stop context.CancelFunc) Model {
	player := m.opts.Player
	if player == nil {
		player = NewCommandPlayer(m.cfg.SoundCommand)
	}
	now := m.opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		kind:          m.opts.Kind,
		target:        m.targetURL(),
		renderer:      NewRenderer(m.opts.Kind),
		keys:          newKeyMap(m.opts.Kind),
		ui:            NewUIState(m.opts.Kind, m.opts.Sound || m.cfg.Sound),
		gate:          m.gate,
		slots:         m.slots,
		build:         m.opts.Build,
		job:           m.opts.Job,
		sound:         sounder{player: player, log: m.log},
		log:           m.log,
		ctx:           ctx,
		stopPolling:   stop,
		frameInterval: m.cfg.FrameInterval,
		spinnerEvery:  ui.SpinnerTicks(m.cfg.FrameInterval),
		minWidth:      m.cfg.MinWidth,
		minHeight:     m.cfg.MinHeight,
		now:           now,
	}
}

// Run starts polling, shows the monitor until the user quits, then stops
// polling. When the user asked for logs they are streamed before returning.
func (m *Monitor) Run(ctx context.Context) (Outcome, error) {
	pollCtx, stop := context.WithCancel(ctx)
	defer stop()

	m.start(pollCtx)
	m.log.Debug("monitoring %s %s", m.opts.Kind, m.targetURL())

	progOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, m.opts.ProgramOptions...)
	prog := tea.NewProgram(m.model(pollCtx, stop), progOpts...)
	final, runErr := prog.Run()

	stop()
	if !m.wait(shutdownGrace) {
		m.log.Debug("pollers still finishing after %s", shutdownGrace)
	}

	if ctx.Err() != nil {
		return OutcomeCancelled, nil
	}
	if runErr != nil {
		return OutcomeQuit, errors.WrapWithCode(runErr, errors.ErrMonitor,
			"Monitor stopped unexpectedly",
			"Make sure you are running in an interactive terminal")
	}

	outcome := OutcomeQuit
	if fm, ok := final.(Model); ok {
		outcome = fm.Outcome()
	}
	if outcome == OutcomeLogs {
		return outcome, m.streamLogs(ctx)
	}
	return outcome, nil
}

func (m *Monitor) streamLogs(ctx context.Context) error {
	w := m.opts.LogWriter
	if w == nil {
		w = os.Stdout
	}
	lw := output.NewLineWriter(w, output.NewConsoleFormatter(func(result string) lipgloss.Style {
		return StatusStyle(jenkins.Status(result))
	}))
	err := m.opts.Build.StreamLogs(ctx, lw)
	if ferr := lw.Flush(); err == nil {
		err = ferr
	}
	return jenkins.Describe(err, "Could not stream build logs",
		"Check the console output in a browser instead")
}
