package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// SpinnerFrames defines the animation frames (◐ ◓ ◑ ◒) shared by every
// running indicator.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10, // 100ms per frame
}

// SpinnerFrame returns the frame for a monotonically increasing tick counter.
func SpinnerFrame(tick int) string {
	if tick < 0 {
		tick = -tick
	}
	return SpinnerFrames.Frames[tick%len(SpinnerFrames.Frames)]
}

// SpinnerTicks converts a render tick interval into how many ticks each
// spinner frame should stay on screen.
func SpinnerTicks(frameInterval time.Duration) int {
	if frameInterval <= 0 || frameInterval >= SpinnerFrames.FPS {
		return 1
	}
	return int(SpinnerFrames.FPS / frameInterval)
}
