// Package upstream is the JSON-over-HTTP transport shared by third-party API clients
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/platform/logger"
	"nutriscope/internal/platform/retry"
)

const (
	defaultTimeout = 30 * time.Second
	defaultUA      = "nutriscope-api"
	maxBody        = 4 << 20
)

// Options configures a Client
type Options struct {
	// Name identifies the upstream in logs and errors, e.g. "nutritionix"
	Name      string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// Header is sent on every request, typically credentials
	Header http.Header
	Retry  retry.Policy

	// HTTPClient overrides the default client; Timeout is ignored when set
	HTTPClient *http.Client
}

// Client sends JSON requests to one base URL
type Client struct {
	http *http.Client
	opts Options
	log  *logger.Logger
}

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{
		http: hc,
		opts: o,
		log:  logger.Named(o.Name),
	}
}

// Name returns the upstream name
func (c *Client) Name() string { return c.opts.Name }

// Log returns the client's component logger
func (c *Client) Log() *logger.Logger { return c.log }

// Request describes one call
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil
	Body any
}

// Do sends req and decodes a 2xx JSON response into out (skipped when out is nil).
// Non-2xx statuses become perr.Upstream errors; transient failures are retried per policy
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var payload []byte
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s: encode request", c.opts.Name)
		}
		payload = b
	}

	u := c.opts.BaseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	return retry.Do(ctx, c.opts.Retry, c.opts.Name, func(ctx context.Context) error {
		return c.once(ctx, req.Method, u, payload, out)
	})
}

func (c *Client) once(ctx context.Context, method, u string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	hreq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "%s: new request failed", c.opts.Name)
	}
	for k, vs := range c.opts.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	hreq.Header.Set("User-Agent", c.opts.UserAgent)
	hreq.Header.Set("Accept", "application/json")
	if payload != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s: request failed", c.opts.Name)
	}
	defer func() {
		if cerr := drainAndClose(resp.Body); cerr != nil {
			c.log.Debug().Err(cerr).Msg("close body failed")
		}
	}()

	c.log.Debug().
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("upstream http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// small tail for diagnostics; bodies never carry our credentials
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Str("body", string(tail)).Msg("upstream non-2xx")
		return perr.Upstream(c.opts.Name, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "%s: decode response", c.opts.Name)
	}
	return nil
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
