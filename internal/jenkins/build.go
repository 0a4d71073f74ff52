package jenkins

import (
	"context"
	"net/http"
	"time"
)

const buildTree = "number,displayName,fullDisplayName,url,result,building,timestamp,duration,estimatedDuration,builtOn"

type rawBuild struct {
	Number            int    `json:"number"`
	DisplayName       string `json:"displayName"`
	FullDisplayName   string `json:"fullDisplayName"`
	URL               string `json:"url"`
	Result            string `json:"result"`
	Building          bool   `json:"building"`
	Timestamp         int64  `json:"timestamp"`
	Duration          int64  `json:"duration"`
	EstimatedDuration int64  `json:"estimatedDuration"`
	BuiltOn           string `json:"builtOn"`
}

func (r rawBuild) toBuild() Build {
	b := Build{
		Number:      r.Number,
		DisplayName: r.DisplayName,
		FullName:    r.FullDisplayName,
		URL:         NormalizeURL(r.URL),
		Status:      buildStatus(r.Building, r.Result),
		Building:    r.Building,
		Started:     millis(r.Timestamp),
		Duration:    time.Duration(r.Duration) * time.Millisecond,
		BuiltOn:     r.BuiltOn,
	}
	if r.EstimatedDuration > 0 {
		b.Estimated = time.Duration(r.EstimatedDuration) * time.Millisecond
	}
	return b
}

// Build fetches the current state of the build at buildURL.
func (c *Client) Build(ctx context.Context, buildURL string) (Build, error) {
	var raw rawBuild
	if err := c.getJSON(ctx, NormalizeURL(buildURL)+"api/json?tree="+buildTree, &raw); err != nil {
		return Build{}, err
	}
	b := raw.toBuild()
	if b.URL == "" {
		b.URL = NormalizeURL(buildURL)
	}
	return b, nil
}

type rawStages struct {
	Stages []struct {
		ID                  string `json:"id"`
		Name                string `json:"name"`
		Status              string `json:"status"`
		StartTimeMillis     int64  `json:"startTimeMillis"`
		DurationMillis      int64  `json:"durationMillis"`
		PauseDurationMillis int64  `json:"pauseDurationMillis"`
	} `json:"stages"`
}

// Stages fetches the ordered pipeline stages of a build from the workflow API.
// Freestyle builds have no workflow API; the 404 is reported as an empty list.
func (c *Client) Stages(ctx context.Context, buildURL string) ([]Stage, error) {
	var raw rawStages
	err := c.getJSON(ctx, NormalizeURL(buildURL)+"wfapi/describe", &raw)
	if IsStatus(err, http.StatusNotFound) {
		return []Stage{}, nil
	}
	if err != nil {
		return nil, err
	}

	stages := make([]Stage, 0, len(raw.Stages))
	for _, s := range raw.Stages {
		stages = append(stages, Stage{
			ID:       s.ID,
			Name:     s.Name,
			Status:   stageStatus(s.Status),
			Started:  millis(s.StartTimeMillis),
			Duration: time.Duration(s.DurationMillis) * time.Millisecond,
		})
	}
	return stages, nil
}

// Abort requests the server to stop a running build.
func (c *Client) Abort(ctx context.Context, buildURL string) error {
	return c.post(ctx, NormalizeURL(buildURL)+"stop")
}
