package jenkins

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultLogInterval is how often StreamLogs asks for more output.
const DefaultLogInterval = time.Second

// StreamLogs copies the build console to w until the build finishes or ctx is
// cancelled. It uses the progressive text endpoint when available and falls
// back to re-downloading the full console and printing only what changed.
// The fallback is best-effort: a console rewritten between polls may show
// missing or repeated lines.
func (c *Client) StreamLogs(ctx context.Context, buildURL string, w io.Writer, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultLogInterval
	}
	buildURL = NormalizeURL(buildURL)

	written, err := c.streamProgressive(ctx, buildURL, w, interval)
	if written == 0 && IsStatus(err, http.StatusNotFound) {
		c.log.Debug("progressive text unavailable for %s, falling back to full console", buildURL)
		return c.streamFull(ctx, buildURL, w, interval)
	}
	return err
}

// streamProgressive returns how many bytes it copied to w, so a failure after
// output has started is not mistaken for a missing endpoint.
func (c *Client) streamProgressive(ctx context.Context, buildURL string, w io.Writer, interval time.Duration) (int64, error) {
	var offset, written int64
	for {
		req, err := c.newRequest(ctx, http.MethodGet, buildURL+"logText/progressiveText?start="+strconv.FormatInt(offset, 10), nil)
		if err != nil {
			return written, err
		}
		req.Header.Set("Accept", "text/plain")

		resp, err := c.do(req)
		if err != nil {
			return written, err
		}
		n, copyErr := io.Copy(w, resp.Body)
		resp.Body.Close()
		written += n
		if copyErr != nil {
			return written, copyErr
		}

		if size, err := strconv.ParseInt(resp.Header.Get("X-Text-Size"), 10, 64); err == nil {
			offset = size
		}
		if !strings.EqualFold(resp.Header.Get("X-More-Data"), "true") {
			return written, nil
		}
		if !sleepCtx(ctx, interval) {
			return written, ctx.Err()
		}
	}
}

func (c *Client) streamFull(ctx context.Context, buildURL string, w io.Writer, interval time.Duration) error {
	var previous string
	for {
		// Read state before the text so the last download covers the final output.
		build, err := c.Build(ctx, buildURL)
		if err != nil {
			return err
		}

		current, err := c.consoleText(ctx, buildURL)
		if err != nil {
			return err
		}
		if added := appendedText(previous, current); added != "" {
			if _, err := io.WriteString(w, added); err != nil {
				return err
			}
		}
		previous = current

		if !build.Building {
			return nil
		}
		if !sleepCtx(ctx, interval) {
			return ctx.Err()
		}
	}
}

func (c *Client) consoleText(ctx context.Context, buildURL string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, buildURL+"consoleText", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// appendedText returns the part of cur that was not in prev. Consoles normally
// only grow, so the prefix check covers almost every call; rewritten output
// (e.g. truncated or masked lines) goes through a character diff instead and
// only the inserted runs are reported.
func appendedText(prev, cur string) string {
	if strings.HasPrefix(cur, prev) {
		return cur[len(prev):]
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(prev, cur, false))

	var b strings.Builder
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffInsert {
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
