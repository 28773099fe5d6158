// Package cleveland provides a client for the Cleveland Museum of Art Open Access API.
package cleveland

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/llehouerou/culturedeck/internal/fetch"
	"github.com/llehouerou/culturedeck/internal/source"
)

// DefaultBaseURL is the public open access endpoint.
const DefaultBaseURL = "https://openaccess-api.clevelandart.org/api"

// Fetcher performs JSON GET requests. *fetch.Client implements it.
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL string, out any, opts ...fetch.RequestOption) error
}

// Client queries the Cleveland collection.
type Client struct {
	fetcher Fetcher
	baseURL string
}

// NewClient creates a Cleveland client. An empty baseURL selects DefaultBaseURL.
func NewClient(f Fetcher, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{fetcher: f, baseURL: baseURL}
}

// Search returns up to limit artworks with images matching query.
// Records come back complete; no per-item fetch is needed.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Artwork, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("has_image", "1")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	reqURL := fmt.Sprintf("%s/artworks/?%s", c.baseURL, params.Encode())

	var result searchResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, &result); err != nil {
		return nil, errors.Wrap(err, "cleveland search")
	}
	if result.Data == nil {
		return []Artwork{}, nil
	}
	return result.Data, nil
}

type searchResponse struct {
	Data []Artwork `json:"data"`
}

// Artwork is a Cleveland collection record.
type Artwork struct {
	ID              int       `json:"id"`
	AccessionNumber string    `json:"accession_number"`
	Title           string    `json:"title"`
	CreationDate    string    `json:"creation_date"`
	Culture         []string  `json:"culture"`
	Technique       string    `json:"technique"`
	Type            string    `json:"type"`
	Description     string    `json:"description"`
	URL             string    `json:"url"`
	Creators        []creator `json:"creators"`
	Images          images    `json:"images"`
}

type creator struct {
	Description string `json:"description"`
}

type images struct {
	Web *image `json:"web"`
}

type image struct {
	URL string `json:"url"`
}

var _ source.Item = Artwork{}

func (a Artwork) Provenance() source.Provenance { return source.ProvenanceCleveland }

func (a Artwork) Key() string {
	return source.Key(source.ProvenanceCleveland, strconv.Itoa(a.ID))
}

func (a Artwork) Label() string {
	if a.Title == "" {
		return "Untitled"
	}
	return a.Title
}

// Image returns the web-sized image URL, or "" when absent.
func (a Artwork) Image() string {
	if a.Images.Web == nil {
		return ""
	}
	return a.Images.Web.URL
}

// Creator joins creator descriptions, falling back to the culture list.
func (a Artwork) Creator() string {
	names := make([]string, 0, len(a.Creators))
	for _, c := range a.Creators {
		if c.Description != "" {
			names = append(names, c.Description)
		}
	}
	if len(names) > 0 {
		return strings.Join(names, "; ")
	}
	return strings.Join(a.Culture, ", ")
}
