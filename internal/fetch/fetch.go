// Package fetch issues JSON GET requests with bounded, linearly backed-off retries.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	// DefaultMaxAttempts is the total number of attempts per request.
	DefaultMaxAttempts = 3
	// DefaultBackoff is the base wait; attempt i+1 waits DefaultBackoff*(i+1).
	DefaultBackoff = 400 * time.Millisecond

	defaultTimeout = 30 * time.Second
	maxErrorBody   = 512
)

// ErrRequestFailed marks a request whose every attempt failed.
// The last underlying cause stays reachable through errors.Is / errors.As.
var ErrRequestFailed = errors.New("request failed")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "API status " + http.StatusText(e.Code)
	}
	return "API status " + http.StatusText(e.Code) + ": " + e.Body
}

// Gate admits a single request attempt, blocking until it may proceed.
type Gate interface {
	Wait(ctx context.Context) error
}

// Client performs GET requests decoding JSON bodies.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	backoff     time.Duration
	userAgent   string
	metrics     *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxAttempts sets the total attempt count. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the base backoff step.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.backoff = d
		}
	}
}

// WithUserAgent sets the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMetrics records attempt outcomes.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a fetch client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	header http.Header
	gate   Gate
}

// RequestOption configures a single request.
type RequestOption func(*request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *request) { r.header.Set(key, value) }
}

// WithGate makes every attempt pass through g before hitting the network.
func WithGate(g Gate) RequestOption {
	return func(r *request) { r.gate = g }
}

// GetJSON fetches rawURL and decodes the JSON body into out.
// Non-2xx statuses, transport errors and undecodable bodies are retried until
// the attempt budget is spent, waiting backoff*(i+1) after failed attempt i.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any, opts ...RequestOption) error {
	req := request{header: http.Header{}}
	req.header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.header.Set("User-Agent", c.userAgent)
	}
	for _, opt := range opts {
		opt(&req)
	}

	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return errors.Newf("decode target must be a non-nil pointer, got %T", out)
	}
	host := hostOf(rawURL)

	var lastErr error
	for attempt := range c.maxAttempts {
		if attempt > 0 {
			if err := sleep(ctx, c.backoff*time.Duration(attempt)); err != nil {
				return err
			}
		}
		if req.gate != nil {
			if err := req.gate.Wait(ctx); err != nil {
				return errors.Wrap(err, "wait for rate limit")
			}
		}

		lastErr = c.do(ctx, rawURL, req.header, target)
		c.metrics.observe(host, lastErr)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return errors.Mark(
		errors.Wrapf(lastErr, "GET %s failed after %d attempts", rawURL, c.maxAttempts),
		ErrRequestFailed,
	)
}

// do performs one attempt. The body is decoded into a fresh value that only
// replaces *target on success, so a rejected payload never leaks into it.
func (c *Client) do(ctx context.Context, rawURL string, header http.Header, target reflect.Value) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header = header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	fresh := reflect.New(target.Type().Elem())
	if err := json.NewDecoder(resp.Body).Decode(fresh.Interface()); err != nil {
		return errors.Wrap(err, "decode response")
	}
	target.Elem().Set(fresh.Elem())
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
