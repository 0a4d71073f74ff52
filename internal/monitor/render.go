package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/ismet55555/yojenkins-sub000/internal/jenkins"
	"github.com/ismet55555/yojenkins-sub000/internal/ui"
	"github.com/ismet55555/yojenkins-sub000/internal/util"
	"github.com/muesli/reflow/truncate"
)

// NoDataMarker is shown in place of any resource that has no snapshot yet.
const NoDataMarker = "NO DATA"

const ellipsis = "…"

// Frame is everything one rendered frame depends on.
type Frame struct {
	Kind      Kind
	Width     int
	Height    int
	MinWidth  int
	MinHeight int
	Now       time.Time
	Target    string

	Server Reading[jenkins.ServerStatus]
	Build  Reading[jenkins.Build]
	Stages Reading[[]jenkins.Stage]
	Job    Reading[jenkins.Job]
	Builds Reading[[]jenkins.BuildRef]

	UI      UIView
	Spinner string
}

// UIView is the read-only part of UIState the renderer needs.
type UIView struct {
	State        State
	Paused       bool
	HelpVisible  bool
	SoundEnabled bool
	Notice       string
}

// View captures the renderer-facing fields of the UI state at now.
func (u *UIState) View(now time.Time) UIView {
	return UIView{
		State:        u.state,
		Paused:       u.Paused,
		HelpVisible:  u.HelpVisible,
		SoundEnabled: u.SoundEnabled,
		Notice:       u.Notice(now),
	}
}

// Renderer turns a Frame into a string. It keeps no state between frames
// beyond the static key table and widget settings.
type Renderer struct {
	keys keyMap
	help help.Model
	bar  progress.Model
}

// NewRenderer creates a renderer for a monitor of the given kind.
func NewRenderer(kind Kind) *Renderer {
	return &Renderer{
		keys: newKeyMap(kind),
		help: newHelp(),
		bar: progress.New(
			progress.WithSolidFill(string(ui.ColorRunning)),
			progress.WithoutPercentage(),
		),
	}
}

// Render draws one frame.
func (r *Renderer) Render(f Frame) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	if f.Width < f.MinWidth || f.Height < f.MinHeight {
		return r.resizePrompt(f)
	}

	width := f.Width - 2
	var lines []string
	lines = append(lines, r.header(f, width)...)
	lines = append(lines, "")

	var body []string
	if f.Kind == KindJob {
		body = r.jobBody(f, width)
	} else {
		body = r.buildBody(f, width)
	}

	// Header, body and a two-line footer must fit; the body gets cut first.
	room := f.Height - len(lines) - 2
	if room < 0 {
		room = 0
	}
	switch {
	case room == 0:
		body = nil
	case len(body) > room:
		hidden := len(body) - room + 1
		body = append(body[:room-1:room-1], MutedStyle.Render(fmt.Sprintf("%s %d more %s", ellipsis, hidden, util.Pluralize(hidden, "line", "lines"))))
	}
	lines = append(lines, body...)

	for len(lines) < f.Height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, r.footer(f, width))

	for i, l := range lines {
		lines[i] = " " + fit(l, width)
	}
	base := strings.Join(lines, "\n")

	if box := r.activeOverlay(f); box != "" {
		base = overlay(base, box, f.Width, f.Height, -1)
	}
	if f.UI.Notice != "" {
		base = overlay(base, noticeStyle.Render(f.UI.Notice), f.Width, f.Height, f.Height-5)
	}
	return base
}

func (r *Renderer) resizePrompt(f Frame) string {
	msg := strings.Join([]string{
		HeaderStyle.Render("Terminal too small"),
		MutedStyle.Render(fmt.Sprintf("need %dx%d, have %dx%d", f.MinWidth, f.MinHeight, f.Width, f.Height)),
		MutedStyle.Render("press q twice to quit"),
	}, "\n")
	if f.UI.State == StateConfirmQuit {
		msg += "\n" + StatusStyle(jenkins.StatusFailure).Render("press q again to quit")
	}
	return lipgloss.Place(f.Width, f.Height, lipgloss.Center, lipgloss.Center, msg)
}

func (r *Renderer) header(f Frame, width int) []string {
	title := HeaderStyle.Render("yojenkins " + f.Kind.String() + " monitor")
	server := r.serverLine(f)

	gap := width - lipgloss.Width(title) - lipgloss.Width(server)
	if gap < 1 {
		return []string{title, server}
	}
	return []string{title + strings.Repeat(" ", gap) + server}
}

func (r *Renderer) serverLine(f Frame) string {
	if !f.Server.OK {
		return MutedStyle.Render(ui.SymbolPending + " server: checking" + ellipsis)
	}
	st := f.Server.Value
	if !st.Reachable {
		return StatusStyle(jenkins.StatusFailure).Render(ui.SymbolFail + " server unreachable")
	}
	user := "anonymous"
	if st.Authenticated {
		user = st.User
	}
	return StatusStyle(jenkins.StatusSuccess).Render(ui.SymbolSuccess+" server") + MutedStyle.Render(" as "+user)
}

func (r *Renderer) buildBody(f Frame, width int) []string {
	var lines []string
	lines = append(lines, SectionHeader("Build", updatedAgo(f.Build, f.Now), width))

	if !f.Build.OK {
		lines = append(lines, noData("build details", f.Target, width)...)
	} else {
		b := f.Build.Value
		name := b.FullName
		if name == "" {
			name = fmt.Sprintf("#%d", b.Number)
		}
		lines = append(lines,
			field("Name", ValueStyle.Render(name)),
			field("Status", renderStatus(b.Status, f.Spinner)),
		)
		if !b.Started.IsZero() {
			started := humanize.RelTime(b.Started, f.Now, "ago", "from now")
			if b.BuiltOn != "" {
				started += " on " + b.BuiltOn
			}
			lines = append(lines, field("Started", ValueStyle.Render(started)))
		}
		lines = append(lines, field("Elapsed", r.elapsed(b, f.Now, width)))
		lines = append(lines, field("URL", MutedStyle.Render(b.URL)))
	}

	lines = append(lines, "")
	lines = append(lines, SectionHeader("Stages", stageCount(f.Stages), width))
	switch {
	case !f.Stages.OK:
		lines = append(lines, noData("stages", "", width)...)
	case len(f.Stages.Value) == 0:
		lines = append(lines, MutedStyle.Render("no pipeline stages"))
	default:
		for _, s := range f.Stages.Value {
			lines = append(lines, stageRow(s, f.Spinner, width))
		}
	}
	return lines
}

// elapsed renders elapsed vs estimated time with a bar when there is room.
func (r *Renderer) elapsed(b jenkins.Build, now time.Time, width int) string {
	text := formatDuration(b.Elapsed(now))
	if b.Estimated > 0 {
		text += " / ~" + formatDuration(b.Estimated)
	}
	p := b.Progress(now)
	barWidth := width - labelWidth - lipgloss.Width(text) - 2
	if p < 0 || barWidth < 10 {
		return ValueStyle.Render(text)
	}
	if barWidth > 40 {
		barWidth = 40
	}
	bar := r.bar
	bar.Width = barWidth
	return ValueStyle.Render(text) + "  " + bar.ViewAs(p)
}

func (r *Renderer) jobBody(f Frame, width int) []string {
	var lines []string
	lines = append(lines, SectionHeader("Job", updatedAgo(f.Job, f.Now), width))

	if !f.Job.OK {
		lines = append(lines, noData("job details", f.Target, width)...)
	} else {
		j := f.Job.Value
		name := j.FullName
		if name == "" {
			name = j.Name
		}
		lines = append(lines,
			field("Name", ValueStyle.Render(name)),
			field("Status", renderStatus(j.Status, f.Spinner)),
			field("Flags", ValueStyle.Render(jobFlags(j))),
		)
		if j.LastBuild != nil {
			lines = append(lines, field("Last", buildRefSummary(*j.LastBuild, f.Now, f.Spinner)))
		}
		lines = append(lines, field("URL", MutedStyle.Render(j.URL)))
	}

	lines = append(lines, "")
	lines = append(lines, SectionHeader("Recent builds", "", width))
	switch {
	case !f.Builds.OK:
		lines = append(lines, noData("builds", "", width)...)
	case len(f.Builds.Value) == 0:
		lines = append(lines, MutedStyle.Render("no builds yet"))
	default:
		for _, b := range f.Builds.Value {
			lines = append(lines, buildRefSummary(b, f.Now, f.Spinner))
		}
	}
	return lines
}

func (r *Renderer) footer(f Frame, width int) string {
	var flags []string
	if f.UI.Paused {
		flags = append(flags, StatusStyle(jenkins.StatusPaused).Render("PAUSED"))
	}
	if f.UI.SoundEnabled {
		flags = append(flags, MutedStyle.Render("♪ sound on"))
	}
	right := strings.Join(flags, "  ")

	left := footerHelp(r.help, r.keys, width-lipgloss.Width(right)-2)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// activeOverlay picks the single modal to draw. Confirmations and pause win
// over the help panel.
func (r *Renderer) activeOverlay(f Frame) string {
	switch {
	case f.UI.State == StateConfirmQuit:
		return confirmBox("Quit monitor?", "press q again to quit, r to cancel")
	case f.UI.State == StateConfirmAbort:
		what := "this build"
		if f.Build.OK {
			what = fmt.Sprintf("build #%d", f.Build.Value.Number)
		}
		return confirmBox("Abort "+what+"?", "press a again to abort, r to cancel")
	case f.UI.State == StateConfirmBuild:
		return confirmBox("Trigger a new build?", "press b again to build, r to cancel")
	case f.UI.Paused:
		return overlayStyle.Render(overlayTitleStyle.Render("PAUSED") + "\n" +
			MutedStyle.Render("polling stopped, press p to resume"))
	case f.UI.HelpVisible:
		return helpBox(r.help, r.keys)
	}
	return ""
}

func confirmBox(title, hint string) string {
	return confirmStyle.Render(overlayTitleStyle.Render(title) + "\n" + MutedStyle.Render(hint))
}

// noData renders the placeholder block for a missing resource.
func noData(what, target string, width int) []string {
	msg := NoDataMarker + "  " + what + " not available yet"
	if target != "" {
		msg += "\n" + target
	}
	box := NoDataStyle.MaxWidth(width).Render(msg)
	return strings.Split(box, "\n")
}

func stageRow(s jenkins.Stage, spinner string, width int) string {
	status := renderStatus(s.Status, spinner)
	dur := MutedStyle.Render(formatDuration(s.Duration))

	nameWidth := width - 16 - lipgloss.Width(dur) - 2
	if nameWidth < 8 {
		nameWidth = 8
	}
	return cell(s.Name, nameWidth) + " " + cell(status, 16) + " " + dur
}

func buildRefSummary(b jenkins.BuildRef, now time.Time, spinner string) string {
	parts := []string{
		ValueStyle.Render(fmt.Sprintf("#%-5d", b.Number)),
		cell(renderStatus(b.Status, spinner), 14),
	}
	if !b.Started.IsZero() {
		parts = append(parts, MutedStyle.Render(humanize.RelTime(b.Started, now, "ago", "from now")))
	}
	if b.Duration > 0 {
		parts = append(parts, MutedStyle.Render(formatDuration(b.Duration)))
	}
	return strings.Join(parts, " ")
}

func jobFlags(j jenkins.Job) string {
	var flags []string
	if j.Buildable {
		flags = append(flags, "buildable")
	} else {
		flags = append(flags, "not buildable")
	}
	if j.InQueue {
		flags = append(flags, "in queue")
	}
	if j.NextBuildNumber > 0 {
		flags = append(flags, fmt.Sprintf("next #%d", j.NextBuildNumber))
	}
	return strings.Join(flags, ", ")
}

func stageCount(r Reading[[]jenkins.Stage]) string {
	if !r.OK || len(r.Value) == 0 {
		return ""
	}
	done := 0
	for _, s := range r.Value {
		if s.Status.Finished() {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(r.Value))
}

func updatedAgo[T any](r Reading[T], now time.Time) string {
	if !r.OK || r.Updated.IsZero() {
		return ""
	}
	if now.Sub(r.Updated) < time.Second {
		return "updated now"
	}
	return "updated " + humanize.RelTime(r.Updated, now, "ago", "from now")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

// fit cuts a rendered line to width columns, never wrapping.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return truncate.StringWithTail(s, uint(width), ellipsis)
}

// cell fits s into exactly width columns.
func cell(s string, width int) string {
	s = fit(s, width)
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// overlay draws box centered horizontally over base. Row -1 centers it
// vertically too; otherwise the box starts at that row.
func overlay(base, box string, width, height, row int) string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}

	boxLines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	top := row
	if top < 0 {
		top = (height - len(boxLines)) / 2
	}
	if top < 0 {
		top = 0
	}
	left := (width - boxWidth) / 2
	if left < 0 {
		left = 0
	}

	for i, bl := range boxLines {
		y := top + i
		if y >= len(lines) {
			break
		}
		line := lines[y]
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		bl = fit(bl, width-left)
		right := left + ansi.StringWidth(bl)
		lines[y] = ansi.Cut(line, 0, left) + bl + ansi.Cut(line, right, width)
	}
	return strings.Join(lines, "\n")
}
