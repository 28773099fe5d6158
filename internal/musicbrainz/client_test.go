package musicbrainz

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/culturedeck/internal/fetch"
	"github.com/llehouerou/culturedeck/internal/ratelimit"
	"github.com/llehouerou/culturedeck/internal/source"
)

// mockTransport is a mock http.RoundTripper serving canned bodies by path.
type mockTransport struct {
	mu       sync.Mutex
	bodies   map[string]string
	status   int
	requests []*http.Request
	calls    []time.Time
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	m.calls = append(m.calls, time.Now())

	if m.status != 0 {
		return &http.Response{StatusCode: m.status, Body: http.NoBody}, nil
	}
	body, ok := m.bodies[req.URL.Path]
	if !ok {
		return nil, errors.New("unexpected path " + req.URL.Path)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func newTestClient(mock *mockTransport, limiter fetch.Gate, opts ...Option) *Client {
	f := fetch.New(
		fetch.WithHTTPClient(&http.Client{Transport: mock}),
		fetch.WithMaxAttempts(1),
	)
	opts = append([]Option{WithBaseURL("http://mb.test/ws/2")}, opts...)
	return NewClient(f, limiter, opts...)
}

const artistsBody = `{"artists":[
	{"id":"a1","name":"Miles Davis","sort-name":"Davis, Miles","type":"Person","country":"US","score":100,
	 "life-span":{"begin":"1926-05-26","end":"1991-09-28"}},
	{"id":"a2","name":"Miles","score":80}
]}`

const recordingsBody = `{"recordings":[
	{"id":"r1","title":"So What","length":562000,"score":100,"first-release-date":"1959-08-17",
	 "artist-credit":[{"name":"Miles Davis","joinphrase":" & "},{"artist":{"name":"John Coltrane"}}],
	 "releases":[{"id":"rel1","title":"Kind of Blue"}]},
	{"id":"r2","title":"Untimed","length":null}
]}`

const instrumentsBody = `{"instruments":[
	{"id":"i1","name":"trumpet","type":"Wind instrument","description":"Brass instrument","score":100}
]}`

func TestClient_SearchArtists(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{bodies: map[string]string{"/ws/2/artist": artistsBody}}
		c := newTestClient(mock, nil)

		artists, err := c.SearchArtists(context.Background(), "miles", 15)

		require.NoError(t, err)
		require.Len(t, artists, 2)
		assert.Equal(t, "Miles Davis", artists[0].Label())
		assert.Equal(t, "musicbrainz-artist:a1", artists[0].Key())
		assert.Equal(t, source.ProvenanceMusicBrainzArtist, artists[0].Provenance())
		assert.Equal(t, "1926", artists[0].BeginYear)
		assert.Equal(t, "1991", artists[0].EndYear)
		assert.Equal(t, "1926 - 1991", artists[0].LifeSpan())
		assert.Empty(t, artists[1].LifeSpan())

		require.Len(t, mock.requests, 1)
		q := mock.requests[0].URL.Query()
		assert.Equal(t, "miles", q.Get("query"))
		assert.Equal(t, "json", q.Get("fmt"))
		assert.Equal(t, "15", q.Get("limit"))
		assert.Equal(t, DefaultUserAgent, mock.requests[0].Header.Get("User-Agent"))
	})
}

func TestClient_SearchRecordings(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{bodies: map[string]string{"/ws/2/recording": recordingsBody}}
		c := newTestClient(mock, nil)

		recs, err := c.SearchRecordings(context.Background(), "so what", 15)

		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "So What", recs[0].Label())
		assert.Equal(t, "Miles Davis & John Coltrane", recs[0].Artist)
		assert.Equal(t, 562*time.Second, recs[0].Length)
		assert.Equal(t, "rel1", recs[0].ReleaseID)
		assert.Equal(t, "Kind of Blue", recs[0].ReleaseTitle)
		assert.Equal(t, "1959-08-17", recs[0].FirstRelease)
		assert.Equal(t, source.ProvenanceMusicBrainzRecording, recs[1].Provenance())
		assert.Zero(t, recs[1].Length)
	})
}

func TestClient_SearchInstruments(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{bodies: map[string]string{"/ws/2/instrument": instrumentsBody}}
		c := newTestClient(mock, nil, WithUserAgent("custom/1.0"))

		insts, err := c.SearchInstruments(context.Background(), "trumpet", 10)

		require.NoError(t, err)
		require.Len(t, insts, 1)
		assert.Equal(t, "trumpet", insts[0].Label())
		assert.Equal(t, "Wind instrument", insts[0].Type)
		assert.Equal(t, "musicbrainz-instrument:i1", insts[0].Key())
		assert.Equal(t, "custom/1.0", mock.requests[0].Header.Get("User-Agent"))
	})
}

func TestClient_MissingArrayYieldsEmpty(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{bodies: map[string]string{"/ws/2/artist": `{"count":0}`}}
		c := newTestClient(mock, nil)

		artists, err := c.SearchArtists(context.Background(), "nobody", 15)

		require.NoError(t, err)
		assert.NotNil(t, artists)
		assert.Empty(t, artists)
	})
}

func TestClient_FailurePropagates(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{status: http.StatusServiceUnavailable}
		c := newTestClient(mock, nil)

		_, err := c.SearchRecordings(context.Background(), "x", 15)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "musicbrainz recording search")
	})
}

func TestClient_SharedLimiterSerializesEntities(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockTransport{bodies: map[string]string{
			"/ws/2/artist":     artistsBody,
			"/ws/2/recording":  recordingsBody,
			"/ws/2/instrument": instrumentsBody,
		}}
		c := newTestClient(mock, ratelimit.New(time.Second))

		var wg sync.WaitGroup
		wg.Go(func() { _, _ = c.SearchArtists(context.Background(), "q", 15) })
		wg.Go(func() { _, _ = c.SearchRecordings(context.Background(), "q", 15) })
		wg.Go(func() { _, _ = c.SearchInstruments(context.Background(), "q", 10) })
		wg.Wait()

		require.Len(t, mock.calls, 3)
		first, last := mock.calls[0], mock.calls[0]
		for _, at := range mock.calls {
			if at.Before(first) {
				first = at
			}
			if at.After(last) {
				last = at
			}
		}
		assert.GreaterOrEqual(t, last.Sub(first), 2*time.Second-time.Millisecond)
	})
}

func TestExtractArtist(t *testing.T) {
	var credits []artistCredit
	assert.Empty(t, extractArtist(credits))

	credits = []artistCredit{{Name: "A", JoinPhrase: " feat. "}, {Name: "B"}}
	assert.Equal(t, "A feat. B", extractArtist(credits))
}

func TestExtractYear(t *testing.T) {
	assert.Equal(t, "1926", extractYear("1926-05-26"))
	assert.Equal(t, "1926", extractYear("1926"))
	assert.Equal(t, "19", extractYear("19"))
}
