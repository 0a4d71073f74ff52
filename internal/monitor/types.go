package monitor

import (
	"context"
	"io"

	"github.com/ismet55555/yojenkins-sub000/internal/jenkins"
)

// Kind is the type of resource being monitored.
type Kind int

const (
	KindBuild Kind = iota
	KindJob
)

// String returns "build" or "job".
func (k Kind) String() string {
	if k == KindJob {
		return "job"
	}
	return "build"
}

// BuildSource is everything the monitor needs from one build.
type BuildSource interface {
	URL() string
	Build(ctx context.Context) (jenkins.Build, error)
	Stages(ctx context.Context) ([]jenkins.Stage, error)
	Abort(ctx context.Context) error
	Open() error
	StreamLogs(ctx context.Context, w io.Writer) error
}

// JobSource is everything the monitor needs from one job.
type JobSource interface {
	URL() string
	Job(ctx context.Context) (jenkins.Job, error)
	Builds(ctx context.Context) ([]jenkins.BuildRef, error)
	Trigger(ctx context.Context) error
	Open() error
}

// ServerSource answers the liveness checks.
type ServerSource interface {
	Reachable(ctx context.Context) bool
	Authenticated(ctx context.Context) (user string, ok bool)
}

// Outcome is how the monitor ended.
type Outcome int

const (
	// OutcomeQuit means the user confirmed quit.
	OutcomeQuit Outcome = iota
	// OutcomeLogs means the user asked for logs; they have been streamed.
	OutcomeLogs
	// OutcomeCancelled means the caller's context ended the monitor.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuit:
		return "quit"
	case OutcomeLogs:
		return "logs"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
