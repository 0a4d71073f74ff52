package jenkins

import (
	"context"
	"io"
)

// BuildHandle binds a client to one build URL, so callers that watch a single
// build don't need to carry the URL around.
type BuildHandle struct {
	client *Client
	url    string
}

// BuildAt returns a handle for the build at buildURL.
func (c *Client) BuildAt(buildURL string) *BuildHandle {
	return &BuildHandle{client: c, url: NormalizeURL(buildURL)}
}

func (h *BuildHandle) URL() string { return h.url }

func (h *BuildHandle) Build(ctx context.Context) (Build, error) {
	return h.client.Build(ctx, h.url)
}

func (h *BuildHandle) Stages(ctx context.Context) ([]Stage, error) {
	return h.client.Stages(ctx, h.url)
}

func (h *BuildHandle) Abort(ctx context.Context) error {
	return h.client.Abort(ctx, h.url)
}

func (h *BuildHandle) Open() error {
	return OpenInBrowser(h.url)
}

func (h *BuildHandle) StreamLogs(ctx context.Context, w io.Writer) error {
	return h.client.StreamLogs(ctx, h.url, w, DefaultLogInterval)
}

// JobHandle binds a client to one job URL.
type JobHandle struct {
	client *Client
	url    string
}

// JobAt returns a handle for the job at jobURL.
func (c *Client) JobAt(jobURL string) *JobHandle {
	return &JobHandle{client: c, url: NormalizeURL(jobURL)}
}

func (h *JobHandle) URL() string { return h.url }

func (h *JobHandle) Job(ctx context.Context) (Job, error) {
	return h.client.Job(ctx, h.url)
}

func (h *JobHandle) Builds(ctx context.Context) ([]BuildRef, error) {
	return h.client.JobBuilds(ctx, h.url)
}

func (h *JobHandle) Trigger(ctx context.Context) error {
	return h.client.Trigger(ctx, h.url)
}

func (h *JobHandle) Open() error {
	return OpenInBrowser(h.url)
}
