package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	cockroach "github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransport replays canned responses and records when each call happened.
type mockTransport struct {
	mu        sync.Mutex
	responses []func() (*http.Response, error)
	calls     []time.Time
	requests  []*http.Request
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.calls)
	m.calls = append(m.calls, time.Now())
	m.requests = append(m.requests, req)
	if idx < len(m.responses) {
		return m.responses[idx]()
	}
	return nil, errors.New("no more responses configured")
}

func jsonResponse(status int, body string) func() (*http.Response, error) {
	return func() (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
		}, nil
	}
}

func transportError(msg string) func() (*http.Response, error) {
	return func() (*http.Response, error) {
		return nil, errors.New(msg)
	}
}

type payload struct {
	Name string `json:"name"`
}

func newTestClient(mock *mockTransport, opts ...Option) *Client {
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: mock})}, opts...)
	return New(opts...)
}

func TestGetJSON_Success(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){jsonResponse(http.StatusOK, `{"name":"luba"}`)},
		}
		c := newTestClient(mock)

		var out payload
		err := c.GetJSON(context.Background(), "http://example.com/x", &out)

		require.NoError(t, err)
		assert.Equal(t, "luba", out.Name)
		assert.Len(t, mock.calls, 1)
	})
}

func TestGetJSON_RetriesWithLinearBackoff(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){
				jsonResponse(http.StatusInternalServerError, `oops`),
				transportError("connection reset"),
				jsonResponse(http.StatusOK, `{"name":"third"}`),
			},
		}
		c := newTestClient(mock)

		var out payload
		err := c.GetJSON(context.Background(), "http://example.com/x", &out)

		require.NoError(t, err)
		assert.Equal(t, "third", out.Name)
		require.Len(t, mock.calls, 3)
		assert.Equal(t, 400*time.Millisecond, mock.calls[1].Sub(mock.calls[0]))
		assert.Equal(t, 800*time.Millisecond, mock.calls[2].Sub(mock.calls[1]))
	})
}

func TestGetJSON_ExhaustedAttempts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){
				jsonResponse(http.StatusServiceUnavailable, ``),
				jsonResponse(http.StatusServiceUnavailable, ``),
				jsonResponse(http.StatusServiceUnavailable, `down`),
				jsonResponse(http.StatusOK, `{"name":"never"}`),
			},
		}
		c := newTestClient(mock)

		var out payload
		err := c.GetJSON(context.Background(), "http://example.com/x", &out)

		require.Error(t, err)
		assert.True(t, cockroach.Is(err, ErrRequestFailed))
		var statusErr *StatusError
		require.True(t, cockroach.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
		assert.Equal(t, "down", statusErr.Body)
		assert.Len(t, mock.calls, DefaultMaxAttempts)
		assert.Empty(t, out.Name)
	})
}

func TestGetJSON_UndecodableBodyIsRetried(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){
				jsonResponse(http.StatusOK, `{not json`),
				jsonResponse(http.StatusOK, `{"name":"ok"}`),
			},
		}
		c := newTestClient(mock)

		var out payload
		require.NoError(t, c.GetJSON(context.Background(), "http://example.com/x", &out))
		assert.Equal(t, "ok", out.Name)
		assert.Len(t, mock.calls, 2)
	})
}

func TestGetJSON_RejectedPayloadDoesNotLeakIntoRetry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){
				jsonResponse(http.StatusOK, `{"name":"stale","count":"oops"}`),
				jsonResponse(http.StatusOK, `{"count":2}`),
			},
		}
		c := newTestClient(mock)

		var out struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		require.NoError(t, c.GetJSON(context.Background(), "http://example.com/x", &out))
		assert.Empty(t, out.Name)
		assert.Equal(t, 2, out.Count)
		assert.Len(t, mock.calls, 2)
	})
}

func TestGetJSON_NonPointerTargetFailsFast(t *testing.T) {
	mock := &mockTransport{}
	c := newTestClient(mock)

	var out payload
	err := c.GetJSON(context.Background(), "http://example.com/x", out)
	require.Error(t, err)
	assert.Empty(t, mock.calls)
}

func TestGetJSON_CustomAttemptsAndBackoff(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){
				transportError("first failure"),
				transportError("second failure"),
			},
		}
		c := newTestClient(mock, WithMaxAttempts(2), WithBackoff(100*time.Millisecond))

		err := c.GetJSON(context.Background(), "http://example.com/x", &payload{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "second failure")
		require.Len(t, mock.calls, 2)
		assert.Equal(t, 100*time.Millisecond, mock.calls[1].Sub(mock.calls[0]))
	})
}

func TestGetJSON_ContextCanceledDuringBackoff(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){
				transportError("down"),
				jsonResponse(http.StatusOK, `{"name":"late"}`),
			},
		}
		c := newTestClient(mock)

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		err := c.GetJSON(ctx, "http://example.com/x", &payload{})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Len(t, mock.calls, 1)
	})
}

func TestGetJSON_Headers(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){jsonResponse(http.StatusOK, `{}`)},
		}
		c := newTestClient(mock, WithUserAgent("culturedeck-test/1.0"))

		err := c.GetJSON(context.Background(), "http://example.com/x", &payload{}, WithHeader("X-Extra", "1"))

		require.NoError(t, err)
		require.Len(t, mock.requests, 1)
		h := mock.requests[0].Header
		assert.Equal(t, "culturedeck-test/1.0", h.Get("User-Agent"))
		assert.Equal(t, "application/json", h.Get("Accept"))
		assert.Equal(t, "1", h.Get("X-Extra"))
	})
}

type countingGate struct {
	calls int
	err   error
}

func (g *countingGate) Wait(context.Context) error {
	g.calls++
	return g.err
}

func TestGetJSON_GatePerAttempt(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){
				transportError("down"),
				jsonResponse(http.StatusOK, `{}`),
			},
		}
		c := newTestClient(mock)
		gate := &countingGate{}

		require.NoError(t, c.GetJSON(context.Background(), "http://example.com/x", &payload{}, WithGate(gate)))
		assert.Equal(t, 2, gate.calls)
	})
}

func TestGetJSON_GateErrorStopsRequest(t *testing.T) {
	mock := &mockTransport{}
	c := newTestClient(mock)
	gate := &countingGate{err: context.Canceled}

	err := c.GetJSON(context.Background(), "http://example.com/x", &payload{}, WithGate(gate))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mock.calls)
}

func TestGetJSON_Metrics(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{
			responses: []func() (*http.Response, error){
				transportError("down"),
				jsonResponse(http.StatusOK, `{}`),
			},
		}
		metrics := NewMetrics(prometheus.NewRegistry())
		c := newTestClient(mock, WithMetrics(metrics))

		require.NoError(t, c.GetJSON(context.Background(), "http://example.com/x", &payload{}))

		assert.InDelta(t, 1, testutil.ToFloat64(metrics.Attempts.WithLabelValues("example.com", "error")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(metrics.Attempts.WithLabelValues("example.com", "ok")), 0)
	})
}

func TestStatusError_Message(t *testing.T) {
	assert.Equal(t, "API status Not Found", (&StatusError{Code: 404}).Error())
	assert.Equal(t, "API status Bad Gateway: upstream", (&StatusError{Code: 502, Body: "upstream"}).Error())
}
