package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/ismet55555/yojenkins-sub000/internal/jenkins"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func withColor(t *testing.T) {
	t.Helper()
	orig := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() { lipgloss.SetColorProfile(orig) })
}

func baseFrame(kind Kind) Frame {
	return Frame{
		Kind:      kind,
		Width:     100,
		Height:    30,
		MinWidth:  60,
		MinHeight: 16,
		Now:       t0,
		Target:    "http://ci/job/app/1/",
		UI:        UIView{State: StateNormal},
	}
}

func assertFits(t *testing.T, out string, f Frame) {
	t.Helper()
	lines := strings.Split(out, "\n")
	assert.LessOrEqual(t, len(lines), f.Height)
	for i, l := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(l), f.Width, "line %d too wide: %q", i, l)
	}
}

func TestRender_NoDataForEmptySnapshots(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)

	out := r.Render(f)
	assert.Contains(t, out, NoDataMarker)
	assert.Contains(t, out, "build details")
	assert.Contains(t, out, "stages")
	assert.Contains(t, out, "checking")
	assertFits(t, out, f)
}

func TestRender_JobNoData(t *testing.T) {
	r := NewRenderer(KindJob)
	f := baseFrame(KindJob)

	out := r.Render(f)
	assert.Contains(t, out, NoDataMarker)
	assert.Contains(t, out, "job details")
	assert.Contains(t, out, "yojenkins job monitor")
}

func TestRender_PartialData(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)
	f.Build = Reading[jenkins.Build]{OK: true, Updated: t0, Value: jenkins.Build{
		Number:    12,
		FullName:  "app #12",
		Status:    jenkins.StatusRunning,
		Building:  true,
		Started:   t0.Add(-3 * time.Minute),
		Estimated: 6 * time.Minute,
		BuiltOn:   "agent-7",
	}}

	out := r.Render(f)
	assert.Contains(t, out, "app #12")
	assert.Contains(t, out, "agent-7")
	assert.Contains(t, out, "3 minutes ago")
	assert.Contains(t, out, "3m0s / ~6m0s")
	// Stages never arrived, so only that block is a placeholder.
	assert.Equal(t, 1, strings.Count(out, NoDataMarker))
}

func TestRender_Stages(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)
	f.Stages = Reading[[]jenkins.Stage]{OK: true, Value: []jenkins.Stage{
		{Name: "Checkout", Status: jenkins.StatusSuccess, Duration: 2 * time.Second},
		{Name: "Test", Status: jenkins.StatusRunning},
	}}

	out := r.Render(f)
	assert.Contains(t, out, "Checkout")
	assert.Contains(t, out, "1/2")

	f.Stages = Reading[[]jenkins.Stage]{OK: true, Value: []jenkins.Stage{}}
	assert.Contains(t, r.Render(f), "no pipeline stages")
}

func TestRender_StatusColors(t *testing.T) {
	withColor(t)
	r := NewRenderer(KindBuild)

	tests := []struct {
		status jenkins.Status
		want   lipgloss.Color
	}{
		{jenkins.StatusSuccess, StatusColor(jenkins.StatusSuccess)},
		{jenkins.StatusFailure, StatusColor(jenkins.StatusFailure)},
		{"bogus-unmapped-value", neutralLook.Color},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			f := baseFrame(KindBuild)
			f.Build = Reading[jenkins.Build]{OK: true, Value: jenkins.Build{Number: 1, Status: tt.status}}

			want := lipgloss.NewStyle().Foreground(tt.want).Bold(true).Render(StatusSymbol(tt.status) + " " + string(tt.status))
			assert.Contains(t, r.Render(f), want)
		})
	}
}

func TestRender_TruncatesLongText(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)
	f.Width = 60
	f.Build = Reading[jenkins.Build]{OK: true, Value: jenkins.Build{
		Number:   1,
		FullName: strings.Repeat("very-long-folder/", 10) + "app #1",
		URL:      "http://ci/" + strings.Repeat("job/x/", 20),
		Status:   jenkins.StatusSuccess,
	}}
	f.Stages = Reading[[]jenkins.Stage]{OK: true, Value: []jenkins.Stage{
		{Name: strings.Repeat("stage", 30), Status: jenkins.StatusSuccess},
	}}

	out := r.Render(f)
	assert.Contains(t, out, ellipsis)
	assertFits(t, out, f)
}

func TestRender_ClipsBodyToHeight(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)
	f.Height = 16

	var stages []jenkins.Stage
	for i := 0; i < 40; i++ {
		stages = append(stages, jenkins.Stage{Name: "s", Status: jenkins.StatusSuccess})
	}
	f.Stages = Reading[[]jenkins.Stage]{OK: true, Value: stages}

	out := r.Render(f)
	assert.Contains(t, out, "more")
	assertFits(t, out, f)
}

func TestRender_ResizePrompt(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)
	f.Width, f.Height = 40, 10

	out := r.Render(f)
	assert.Contains(t, out, "Terminal too small")
	assert.Contains(t, out, "need 60x16")
	assert.NotContains(t, out, NoDataMarker)

	f.UI.State = StateConfirmQuit
	assert.Contains(t, r.Render(f), "press q again")
}

func TestRender_ZeroSize(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)
	f.Width, f.Height = 0, 0
	assert.Empty(t, r.Render(f))
}

func TestRender_OverlayPrecedence(t *testing.T) {
	r := NewRenderer(KindBuild)

	tests := []struct {
		name    string
		ui      UIView
		want    string
		notWant string
	}{
		{"help alone", UIView{State: StateHelpShown, HelpVisible: true}, "Keyboard Shortcuts", "Quit monitor?"},
		{"quit suppresses help", UIView{State: StateConfirmQuit, HelpVisible: true}, "Quit monitor?", "Keyboard Shortcuts"},
		{"abort suppresses help", UIView{State: StateConfirmAbort, HelpVisible: true}, "Abort this build?", "Keyboard Shortcuts"},
		{"pause notice", UIView{State: StatePaused, Paused: true}, "polling stopped", "Keyboard Shortcuts"},
		{"quit over pause", UIView{State: StateConfirmQuit, Paused: true}, "Quit monitor?", "polling stopped"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := baseFrame(KindBuild)
			f.UI = tt.ui
			out := r.Render(f)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, tt.notWant)
			assertFits(t, out, f)
		})
	}
}

func TestRender_NoticeStacksOnOverlay(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)
	f.UI = UIView{State: StateHelpShown, HelpVisible: true, Notice: "Sound ON"}

	out := r.Render(f)
	assert.Contains(t, out, "Sound ON")
	assert.Contains(t, out, "Keyboard Shortcuts")
}

func TestRender_ServerLine(t *testing.T) {
	r := NewRenderer(KindBuild)
	f := baseFrame(KindBuild)

	f.Server = Reading[jenkins.ServerStatus]{OK: true, Value: jenkins.ServerStatus{Reachable: false}}
	assert.Contains(t, r.Render(f), "server unreachable")

	f.Server = Reading[jenkins.ServerStatus]{OK: true, Value: jenkins.ServerStatus{Reachable: true, Authenticated: true, User: "alice"}}
	assert.Contains(t, r.Render(f), "as alice")

	f.Server = Reading[jenkins.ServerStatus]{OK: true, Value: jenkins.ServerStatus{Reachable: true}}
	assert.Contains(t, r.Render(f), "as anonymous")
}

func TestRender_Job(t *testing.T) {
	r := NewRenderer(KindJob)
	f := baseFrame(KindJob)
	f.Job = Reading[jenkins.Job]{OK: true, Value: jenkins.Job{
		FullName:        "team/app",
		Status:          jenkins.StatusFailure,
		Buildable:       true,
		InQueue:         true,
		NextBuildNumber: 8,
		LastBuild:       &jenkins.BuildRef{Number: 7, Status: jenkins.StatusFailure},
	}}
	f.Builds = Reading[[]jenkins.BuildRef]{OK: true, Value: []jenkins.BuildRef{
		{Number: 7, Status: jenkins.StatusFailure, Started: t0.Add(-time.Hour), Duration: time.Minute},
		{Number: 6, Status: jenkins.StatusSuccess},
	}}

	out := r.Render(f)
	assert.Contains(t, out, "team/app")
	assert.Contains(t, out, "buildable, in queue, next #8")
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "#6")
	assert.Contains(t, out, "1 hour ago")
	assert.NotContains(t, out, NoDataMarker)
}

func TestOverlay_CentersBox(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	out := overlay(base, "XX", 20, 10, -1)

	lines := strings.Split(out, "\n")
	assert.Equal(t, ".........XX.........", lines[4])
	assert.Equal(t, strings.Repeat(".", 20), lines[0])
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "-", formatDuration(0))
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1m5s", formatDuration(65*time.Second+300*time.Millisecond))
}
