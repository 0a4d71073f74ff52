// Package testing provides test doubles for the jenkins package.
package testing

import (
	"context"
	"io"
	"sync"

	"github.com/ismet55555/yojenkins-sub000/internal/jenkins"
)

// FakeBuild is an in-memory build the monitor can watch.
// Zero value succeeds with an empty build; set the exported fields under
// Update to change what the next fetch returns.
type FakeBuild struct {
	mu sync.Mutex

	// Configuration
	BuildURL  string
	State     jenkins.Build
	StageList []jenkins.Stage
	BuildErr  error
	StagesErr error
	AbortErr  error
	OpenErr   error
	Logs      string
	LogsErr   error
	PanicOn   string // "build" or "stages" panics inside that fetch

	// Call tracking
	BuildCalls  int
	StagesCalls int
	AbortCalls  int
	OpenCalls   int
	LogCalls    int
}

// NewFakeBuild creates a running build fake at url.
func NewFakeBuild(url string) *FakeBuild {
	return &FakeBuild{
		BuildURL: url,
		State: jenkins.Build{
			Number:   1,
			URL:      url,
			Status:   jenkins.StatusRunning,
			Building: true,
		},
	}
}

// Update runs fn with the fake locked, for changing state while pollers run.
func (f *FakeBuild) Update(fn func(f *FakeBuild)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *FakeBuild) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.BuildURL
}

func (f *FakeBuild) Build(ctx context.Context) (jenkins.Build, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BuildCalls++
	if f.PanicOn == "build" {
		panic("fake build panic")
	}
	if f.BuildErr != nil {
		return jenkins.Build{}, f.BuildErr
	}
	return f.State, nil
}

func (f *FakeBuild) Stages(ctx context.Context) ([]jenkins.Stage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StagesCalls++
	if f.PanicOn == "stages" {
		panic("fake stages panic")
	}
	if f.StagesErr != nil {
		return nil, f.StagesErr
	}
	out := make([]jenkins.Stage, len(f.StageList))
	copy(out, f.StageList)
	return out, nil
}

func (f *FakeBuild) Abort(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AbortCalls++
	return f.AbortErr
}

func (f *FakeBuild) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.OpenCalls++
	return f.OpenErr
}

func (f *FakeBuild) StreamLogs(ctx context.Context, w io.Writer) error {
	f.mu.Lock()
	f.LogCalls++
	logs, logsErr := f.Logs, f.LogsErr
	f.mu.Unlock()
	if logsErr != nil {
		return logsErr
	}
	_, err := io.WriteString(w, logs)
	return err
}

// Calls returns the abort, open and log call counts in one locked read.
func (f *FakeBuild) Calls() (abort, open, logs int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.AbortCalls, f.OpenCalls, f.LogCalls
}

// FakeJob is an in-memory job the monitor can watch.
type FakeJob struct {
	mu sync.Mutex

	// Configuration
	JobURL     string
	State      jenkins.Job
	BuildList  []jenkins.BuildRef
	JobErr     error
	BuildsErr  error
	TriggerErr error
	OpenErr    error

	// Call tracking
	JobCalls     int
	BuildsCalls  int
	TriggerCalls int
	OpenCalls    int
}

// NewFakeJob creates an idle job fake at url.
func NewFakeJob(url string) *FakeJob {
	return &FakeJob{
		JobURL: url,
		State: jenkins.Job{
			Name:      "fake",
			FullName:  "fake",
			URL:       url,
			Status:    jenkins.StatusSuccess,
			Buildable: true,
		},
	}
}

// Update runs fn with the fake locked.
func (f *FakeJob) Update(fn func(f *FakeJob)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *FakeJob) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.JobURL
}

func (f *FakeJob) Job(ctx context.Context) (jenkins.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.JobCalls++
	if f.JobErr != nil {
		return jenkins.Job{}, f.JobErr
	}
	return f.State, nil
}

func (f *FakeJob) Builds(ctx context.Context) ([]jenkins.BuildRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BuildsCalls++
	if f.BuildsErr != nil {
		return nil, f.BuildsErr
	}
	out := make([]jenkins.BuildRef, len(f.BuildList))
	copy(out, f.BuildList)
	return out, nil
}

func (f *FakeJob) Trigger(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TriggerCalls++
	return f.TriggerErr
}

func (f *FakeJob) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.OpenCalls++
	return f.OpenErr
}

// Calls returns the trigger and open call counts in one locked read.
func (f *FakeJob) Calls() (trigger, open int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.TriggerCalls, f.OpenCalls
}

// FakeServer answers liveness checks.
type FakeServer struct {
	mu sync.Mutex

	Up     bool
	User   string // empty means anonymous
	Checks int
}

// NewFakeServer creates a reachable server with an authenticated user.
func NewFakeServer() *FakeServer {
	return &FakeServer{Up: true, User: "tester"}
}

// Update runs fn with the fake locked.
func (f *FakeServer) Update(fn func(f *FakeServer)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *FakeServer) Reachable(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Checks++
	return f.Up
}

func (f *FakeServer) Authenticated(ctx context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.Up || f.User == "" {
		return "", false
	}
	return f.User, true
}
