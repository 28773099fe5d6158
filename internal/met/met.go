// Package met provides a client for The Metropolitan Museum of Art Collection API.
// Search returns object IDs only; details are fetched per object.
package met

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/culturedeck/internal/fetch"
	"github.com/llehouerou/culturedeck/internal/source"
)

// DefaultBaseURL is the public collection endpoint.
const DefaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"

// Fetcher performs JSON GET requests. *fetch.Client implements it.
type Fetcher interface {
	GetJSON(ctx context.Context, rawURL string, out any, opts ...fetch.RequestOption) error
}

// Client queries the Met collection.
type Client struct {
	fetcher Fetcher
	baseURL string
	logger  *zap.Logger
}

// NewClient creates a Met client. An empty baseURL selects DefaultBaseURL.
func NewClient(f Fetcher, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{fetcher: f, baseURL: baseURL, logger: logger}
}

// SearchIDs returns the IDs of objects with images matching query.
// A response without objectIDs yields an empty slice.
func (c *Client) SearchIDs(ctx context.Context, query string) ([]int, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hasImages", "true")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	var result searchResponse
	if err := c.fetcher.GetJSON(ctx, reqURL, &result); err != nil {
		return nil, errors.Wrap(err, "met search")
	}
	if result.ObjectIDs == nil {
		return []int{}, nil
	}
	return result.ObjectIDs, nil
}

// GetObject fetches a single object's details.
func (c *Client) GetObject(ctx context.Context, id int) (*Object, error) {
	reqURL := fmt.Sprintf("%s/objects/%d", c.baseURL, id)

	var obj Object
	if err := c.fetcher.GetJSON(ctx, reqURL, &obj); err != nil {
		return nil, errors.Wrapf(err, "met object %d", id)
	}
	return &obj, nil
}

// GetObjects fetches all ids concurrently and returns, in id order, those that
// loaded and carry an image. Individual failures are dropped; each fetch has
// its own retry budget and the batch as a whole is never retried.
func (c *Client) GetObjects(ctx context.Context, ids []int) []Object {
	slots := make([]*Object, len(ids))

	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			obj, err := c.GetObject(ctx, id)
			if err != nil {
				c.logger.Debug("met object unavailable", zap.Int("id", id), zap.Error(err))
				return nil
			}
			slots[i] = obj
			return nil
		})
	}
	_ = g.Wait()

	objects := make([]Object, 0, len(ids))
	for _, obj := range slots {
		if obj != nil && obj.HasImage() {
			objects = append(objects, *obj)
		}
	}
	return objects
}

type searchResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

// Object is a Met collection object.
type Object struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	PrimaryImage      string `json:"primaryImage"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	ObjectDate        string `json:"objectDate"`
	ArtistDisplayName string `json:"artistDisplayName"`
	Culture           string `json:"culture"`
	Department        string `json:"department"`
	Medium            string `json:"medium"`
	ObjectURL         string `json:"objectURL"`
}

var _ source.Item = Object{}

func (o Object) Provenance() source.Provenance { return source.ProvenanceMet }

func (o Object) Key() string {
	return source.Key(source.ProvenanceMet, strconv.Itoa(o.ObjectID))
}

func (o Object) Label() string {
	if o.Title == "" {
		return "Untitled"
	}
	return o.Title
}

// HasImage reports whether the object has any image URL.
func (o Object) HasImage() bool {
	return o.PrimaryImageSmall != "" || o.PrimaryImage != ""
}

// Image returns the small image when available, else the full one.
func (o Object) Image() string {
	if o.PrimaryImageSmall != "" {
		return o.PrimaryImageSmall
	}
	return o.PrimaryImage
}
