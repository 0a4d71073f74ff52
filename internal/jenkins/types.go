package jenkins

import (
	"strings"
	"time"
)

// Status is a normalized build, stage or job state.
// Values outside the constants below are passed through untouched so callers
// can still display whatever the server reported.
type Status string

const (
	StatusSuccess  Status = "SUCCESS"
	StatusFailure  Status = "FAILURE"
	StatusUnstable Status = "UNSTABLE"
	StatusAborted  Status = "ABORTED"
	StatusNotBuilt Status = "NOT_BUILT"
	StatusRunning  Status = "RUNNING"
	StatusQueued   Status = "QUEUED"
	StatusPaused   Status = "PAUSED"
	StatusDisabled Status = "DISABLED"
	StatusUnknown  Status = "UNKNOWN"
)

// Finished reports whether the status is a terminal build result.
func (s Status) Finished() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusUnstable, StatusAborted, StatusNotBuilt:
		return true
	default:
		return false
	}
}

// Build is the state of a single build as shown by the monitor.
type Build struct {
	Number      int
	DisplayName string
	FullName    string
	URL         string
	Status      Status
	Building    bool
	Started     time.Time
	Duration    time.Duration
	Estimated   time.Duration
	BuiltOn     string
}

// Elapsed returns how long the build has been running, or its final duration.
func (b Build) Elapsed(now time.Time) time.Duration {
	if !b.Building && b.Duration > 0 {
		return b.Duration
	}
	if b.Started.IsZero() || now.Before(b.Started) {
		return 0
	}
	return now.Sub(b.Started)
}

// Progress returns elapsed/estimated in the range [0, 1], or -1 when unknown.
func (b Build) Progress(now time.Time) float64 {
	if !b.Building {
		if b.Status.Finished() {
			return 1
		}
		return -1
	}
	if b.Estimated <= 0 {
		return -1
	}
	p := float64(b.Elapsed(now)) / float64(b.Estimated)
	if p > 1 {
		p = 1
	}
	return p
}

// Stage is one pipeline stage of a build.
type Stage struct {
	ID       string
	Name     string
	Status   Status
	Started  time.Time
	Duration time.Duration
}

// BuildRef is a build as it appears in a job's build list.
type BuildRef struct {
	Number   int
	URL      string
	Status   Status
	Started  time.Time
	Duration time.Duration
}

// Job is the state of a job as shown by the monitor.
type Job struct {
	Name            string
	FullName        string
	URL             string
	Status          Status
	InQueue         bool
	Buildable       bool
	NextBuildNumber int
	LastBuild       *BuildRef
}

// ServerStatus is the result of the cheap liveness checks.
type ServerStatus struct {
	URL           string
	Reachable     bool
	Authenticated bool
	User          string
	CheckedAt     time.Time
}

// buildStatus derives a Status from the raw building flag and result string.
func buildStatus(building bool, result string) Status {
	if building {
		return StatusRunning
	}
	if result == "" {
		return StatusUnknown
	}
	return Status(strings.ToUpper(result))
}

// stageStatus maps pipeline (wfapi) stage states to Status.
func stageStatus(raw string) Status {
	switch strings.ToUpper(raw) {
	case "SUCCESS":
		return StatusSuccess
	case "FAILED", "FAILURE":
		return StatusFailure
	case "IN_PROGRESS":
		return StatusRunning
	case "ABORTED":
		return StatusAborted
	case "UNSTABLE":
		return StatusUnstable
	case "NOT_EXECUTED":
		return StatusNotBuilt
	case "PAUSED_PENDING_INPUT":
		return StatusPaused
	case "QUEUED":
		return StatusQueued
	case "":
		return StatusUnknown
	default:
		return Status(strings.ToUpper(raw))
	}
}

// jobStatus maps the job "color" ball to Status; "_anime" suffixes mean a build is running.
func jobStatus(color string, inQueue bool) Status {
	if strings.HasSuffix(color, "_anime") {
		return StatusRunning
	}
	if inQueue {
		return StatusQueued
	}
	switch color {
	case "blue", "green":
		return StatusSuccess
	case "red":
		return StatusFailure
	case "yellow":
		return StatusUnstable
	case "aborted":
		return StatusAborted
	case "notbuilt":
		return StatusNotBuilt
	case "disabled":
		return StatusDisabled
	case "":
		return StatusUnknown
	default:
		return Status(strings.ToUpper(color))
	}
}

// millis converts an epoch-milliseconds timestamp to time.Time; zero stays zero.
func millis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
