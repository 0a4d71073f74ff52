package jenkins

import (
	"context"
	"strconv"
	"time"
)

// MaxRecentBuilds caps how many builds a job's build list returns.
const MaxRecentBuilds = 10

const jobTree = "name,fullName,url,color,inQueue,buildable,nextBuildNumber,lastBuild[number,url,result,building,timestamp,duration]"

type rawBuildRef struct {
	Number    int    `json:"number"`
	URL       string `json:"url"`
	Result    string `json:"result"`
	Building  bool   `json:"building"`
	Timestamp int64  `json:"timestamp"`
	Duration  int64  `json:"duration"`
}

func (r rawBuildRef) toRef() BuildRef {
	return BuildRef{
		Number:   r.Number,
		URL:      NormalizeURL(r.URL),
		Status:   buildStatus(r.Building, r.Result),
		Started:  millis(r.Timestamp),
		Duration: time.Duration(r.Duration) * time.Millisecond,
	}
}

type rawJob struct {
	Name            string       `json:"name"`
	FullName        string       `json:"fullName"`
	URL             string       `json:"url"`
	Color           string       `json:"color"`
	InQueue         bool         `json:"inQueue"`
	Buildable       bool         `json:"buildable"`
	NextBuildNumber int          `json:"nextBuildNumber"`
	LastBuild       *rawBuildRef `json:"lastBuild"`
}

// Job fetches the current state of the job at jobURL.
func (c *Client) Job(ctx context.Context, jobURL string) (Job, error) {
	var raw rawJob
	if err := c.getJSON(ctx, NormalizeURL(jobURL)+"api/json?tree="+jobTree, &raw); err != nil {
		return Job{}, err
	}

	job := Job{
		Name:            raw.Name,
		FullName:        raw.FullName,
		URL:             NormalizeURL(raw.URL),
		Status:          jobStatus(raw.Color, raw.InQueue),
		InQueue:         raw.InQueue,
		Buildable:       raw.Buildable,
		NextBuildNumber: raw.NextBuildNumber,
	}
	if job.URL == "" {
		job.URL = NormalizeURL(jobURL)
	}
	if raw.LastBuild != nil {
		ref := raw.LastBuild.toRef()
		job.LastBuild = &ref
	}
	return job, nil
}

// JobBuilds fetches the most recent builds of a job, newest first.
func (c *Client) JobBuilds(ctx context.Context, jobURL string) ([]BuildRef, error) {
	var raw struct {
		Builds []rawBuildRef `json:"builds"`
	}
	tree := "builds[number,url,result,building,timestamp,duration]{0," + strconv.Itoa(MaxRecentBuilds) + "}"
	if err := c.getJSON(ctx, NormalizeURL(jobURL)+"api/json?tree="+tree, &raw); err != nil {
		return nil, err
	}

	builds := make([]BuildRef, 0, len(raw.Builds))
	for _, b := range raw.Builds {
		builds = append(builds, b.toRef())
	}
	return builds, nil
}

// Trigger queues a new build of the job.
func (c *Client) Trigger(ctx context.Context, jobURL string) error {
	return c.post(ctx, NormalizeURL(jobURL)+"build")
}
