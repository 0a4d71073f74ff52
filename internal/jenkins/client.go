// Package jenkins is a small client for the parts of the Jenkins REST API the
// live monitor consumes: build and stage state, job state, liveness checks,
// the two destructive mutations (abort and trigger), and console log streaming.
package jenkins

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/ismet55555/yojenkins-sub000/internal/errors"
	"github.com/ismet55555/yojenkins-sub000/internal/logger"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options configures a Client.
type Options struct {
	ServerURL string
	Username  string
	Token     string
	Timeout   time.Duration
	Insecure  bool

	// HTTPClient overrides the transport entirely (tests use httptest clients).
	HTTPClient *http.Client
	Logger     logger.Logger
}

// Client talks to one server with one set of credentials.
// It is safe for concurrent use by multiple pollers.
type Client struct {
	server   string
	username string
	token    string
	http     *http.Client
	log      logger.Logger
}

// NewClient creates a client for the server in opts.
func NewClient(opts Options) (*Client, error) {
	server := NormalizeURL(opts.ServerURL)
	if server == "" {
		return nil, errors.New(errors.ErrConfig,
			"No server URL given",
			"Set server_url in your profile or YOJENKINS_SERVER_URL")
	}

	hc := opts.HTTPClient
	if hc == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if opts.Insecure {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in per profile
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		// The jar keeps the session cookie the crumb is bound to.
		hc = &http.Client{Timeout: timeout, Transport: transport, Jar: jar}
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewEnvLogger("[jenkins]")
	}

	return &Client{
		server:   server,
		username: opts.Username,
		token:    opts.Token,
		http:     hc,
		log:      log,
	}, nil
}

// ServerURL returns the normalized server root URL.
func (c *Client) ServerURL() string {
	return c.server
}

// HTTPError is returned for any response with status >= 400.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsStatus reports whether err is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Describe turns an error from a client call into a structured error. HTTP
// failures take their code and suggestion from the status; anything else, or
// a status with no advice of its own, gets fallback.
func Describe(err error, message, fallback string) error {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		e := errors.ForStatus(err, httpErr.StatusCode, message)
		if e.Suggestion == "" {
			e.Suggestion = fallback
		}
		return e
	}
	return errors.WrapWithCode(err, errors.ErrRequest, message, fallback)
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "Could not build request for "+url)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends the request and turns error statuses into *HTTPError.
// On success the caller owns the response body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("%s %s failed after %s: %v", req.Method, req.URL, time.Since(start), err)
		return nil, err
	}
	c.log.Debug("%s %s -> %d in %s", req.Method, req.URL, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		resp.Body.Close()
		return nil, &HTTPError{Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// getJSON fetches url and decodes the JSON body into v.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "Unexpected response from "+url)
	}
	return nil
}

// post sends an empty POST with a CSRF crumb when the server issues one.
func (c *Client) post(ctx context.Context, url string) error {
	field, value, err := c.crumb(ctx)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	if field != "" {
		req.Header.Set(field, value)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

type crumbResponse struct {
	Crumb             string `json:"crumb"`
	CrumbRequestField string `json:"crumbRequestField"`
}

// crumb fetches a CSRF crumb. Servers with CSRF protection disabled answer 404,
// which means no header is needed.
func (c *Client) crumb(ctx context.Context) (string, string, error) {
	var cr crumbResponse
	err := c.getJSON(ctx, c.server+"crumbIssuer/api/json", &cr)
	if IsStatus(err, http.StatusNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return cr.CrumbRequestField, cr.Crumb, nil
}
