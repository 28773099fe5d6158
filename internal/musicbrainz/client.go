package musicbrainz

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/culturedeck/internal/fetch"
)

const (
	DefaultBaseURL   = "https://musicbrainz.org/ws/2"
	DefaultUserAgent = "culturedeck/0.1 (https://github.com/llehouerou/culturedeck)"
)

// Fetcher performs JSON GET requests. *fetch.Client implements it.
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL string, out any, opts ...fetch.RequestOption) error
}

// Client provides access to the MusicBrainz search API.
// Every request passes through the shared limiter, whatever the entity.
type Client struct {
	fetcher   Fetcher
	limiter   fetch.Gate
	baseURL   string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent MusicBrainz uses to identify us.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a MusicBrainz client. limiter should be the process-wide
// MusicBrainz limiter; nil disables rate limiting.
func NewClient(f Fetcher, limiter fetch.Gate, opts ...Option) *Client {
	c := &Client{
		fetcher:   f,
		limiter:   limiter,
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchArtists searches for artists matching the query.
func (c *Client) SearchArtists(ctx context.Context, query string, limit int) ([]Artist, error) {
	var result artistSearchResponse
	if err := c.search(ctx, "artist", query, limit, &result); err != nil {
		return nil, err
	}
	return convertArtists(result.Artists), nil
}

// SearchRecordings searches for recordings matching the query.
func (c *Client) SearchRecordings(ctx context.Context, query string, limit int) ([]Recording, error) {
	var result recordingSearchResponse
	if err := c.search(ctx, "recording", query, limit, &result); err != nil {
		return nil, err
	}
	return convertRecordings(result.Recordings), nil
}

// SearchInstruments searches for instruments matching the query.
func (c *Client) SearchInstruments(ctx context.Context, query string, limit int) ([]Instrument, error) {
	var result instrumentSearchResponse
	if err := c.search(ctx, "instrument", query, limit, &result); err != nil {
		return nil, err
	}
	return convertInstruments(result.Instruments), nil
}

func (c *Client) search(ctx context.Context, entity, query string, limit int, out any) error {
	params := url.Values{}
	params.Set("query", query)
	params.Set("fmt", "json")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, entity, params.Encode())

	opts := []fetch.RequestOption{fetch.WithHeader("User-Agent", c.userAgent)}
	if c.limiter != nil {
		opts = append(opts, fetch.WithGate(c.limiter))
	}
	if err := c.fetcher.GetJSON(ctx, reqURL, out, opts...); err != nil {
		return errors.Wrapf(err, "musicbrainz %s search", entity)
	}
	return nil
}

// convertArtists converts raw API results to Artist structs.
func convertArtists(results []artistResult) []Artist {
	artists := make([]Artist, 0, len(results))
	for _, r := range results {
		a := Artist{
			ID:             r.ID,
			Name:           r.Name,
			SortName:       r.SortName,
			Type:           r.Type,
			Country:        r.Country,
			Score:          r.Score,
			Disambiguation: r.Disambiguation,
		}
		if r.LifeSpan != nil {
			a.BeginYear = extractYear(r.LifeSpan.Begin)
			a.EndYear = extractYear(r.LifeSpan.End)
		}
		artists = append(artists, a)
	}
	return artists
}

func convertRecordings(results []recordingResult) []Recording {
	recordings := make([]Recording, 0, len(results))
	for _, r := range results {
		rec := Recording{
			ID:             r.ID,
			Title:          r.Title,
			Length:         time.Duration(r.Length) * time.Millisecond,
			Artist:         extractArtist(r.ArtistCredit),
			FirstRelease:   r.FirstReleaseDate,
			Score:          r.Score,
			Disambiguation: r.Disambiguation,
		}
		if len(r.Releases) > 0 {
			rec.ReleaseID = r.Releases[0].ID
			rec.ReleaseTitle = r.Releases[0].Title
		}
		recordings = append(recordings, rec)
	}
	return recordings
}

func convertInstruments(results []instrumentResult) []Instrument {
	instruments := make([]Instrument, 0, len(results))
	for _, r := range results {
		instruments = append(instruments, Instrument(r))
	}
	return instruments
}

// extractArtist extracts the artist name from artist credits.
func extractArtist(credits []artistCredit) string {
	if len(credits) == 0 {
		return ""
	}

	parts := make([]string, 0, len(credits))
	for _, c := range credits {
		name := c.Name
		if name == "" {
			name = c.Artist.Name
		}
		parts = append(parts, name+c.JoinPhrase)
	}
	return strings.Join(parts, "")
}

// extractYear returns the year portion of a date string (YYYY-MM-DD or YYYY).
func extractYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}
