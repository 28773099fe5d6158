// Package aggregate fans a query out to every source adapter and merges the
// answers into one categorized result set, isolating per-source failures.
package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/culturedeck/internal/cleveland"
	"github.com/llehouerou/culturedeck/internal/met"
	"github.com/llehouerou/culturedeck/internal/musicbrainz"
	"github.com/llehouerou/culturedeck/internal/source"
)

// MetSource is the two-phase Met adapter.
type MetSource interface {
	SearchIDs(ctx context.Context, query string) ([]int, error)
	GetObjects(ctx context.Context, ids []int) []met.Object
}

// ClevelandSource is the single-phase Cleveland adapter.
type ClevelandSource interface {
	Search(ctx context.Context, query string, limit int) ([]cleveland.Artwork, error)
}

// MusicSource is the rate-limited MusicBrainz adapter.
type MusicSource interface {
	SearchArtists(ctx context.Context, query string, limit int) ([]musicbrainz.Artist, error)
	SearchRecordings(ctx context.Context, query string, limit int) ([]musicbrainz.Recording, error)
	SearchInstruments(ctx context.Context, query string, limit int) ([]musicbrainz.Instrument, error)
}

// Limits caps the per-source fan-out.
type Limits struct {
	MetDetails  int // Met objects whose details are fetched
	Artists     int
	Recordings  int
	Instruments int
}

// DefaultLimits are the caps used when none are configured.
var DefaultLimits = Limits{
	MetDetails:  10,
	Artists:     15,
	Recordings:  15,
	Instruments: 10,
}

// Options selects branches for a single search.
type Options struct {
	IncludeArt   bool
	IncludeMusic bool
	MaxResults   int // artifacts cap; 0 means uncapped
}

// OptionsForScope maps a search scope to branch options.
func OptionsForScope(scope source.Scope, maxResults int) Options {
	return Options{
		IncludeArt:   scope.IncludesArt(),
		IncludeMusic: scope.IncludesMusic(),
		MaxResults:   maxResults,
	}
}

// Aggregator runs searches across all sources.
type Aggregator struct {
	met       MetSource
	cleveland ClevelandSource
	music     MusicSource
	limits    Limits
	logger    *zap.Logger
	metrics   *Metrics
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLimits overrides DefaultLimits. Zero fields keep their default.
func WithLimits(l Limits) Option {
	return func(a *Aggregator) {
		if l.MetDetails > 0 {
			a.limits.MetDetails = l.MetDetails
		}
		if l.Artists > 0 {
			a.limits.Artists = l.Artists
		}
		if l.Recordings > 0 {
			a.limits.Recordings = l.Recordings
		}
		if l.Instruments > 0 {
			a.limits.Instruments = l.Instruments
		}
	}
}

// WithLogger sets the logger for isolated source failures.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics records search durations and source failures.
func WithMetrics(m *Metrics) Option {
	return func(a *Aggregator) { a.metrics = m }
}

// New creates an aggregator over the three adapters.
func New(m MetSource, c ClevelandSource, mb MusicSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		met:       m,
		cleveland: c,
		music:     mb,
		limits:    DefaultLimits,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Search queries the selected branches concurrently. A failing source only
// empties its own slice and is reported in Results.Failures; the returned
// error is non-nil only when ctx ends before the search completes.
func (a *Aggregator) Search(ctx context.Context, query string, opts Options) (*Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	var (
		fails     failures
		artifacts = []source.Item{}
		music     = musicResults{
			recordings:  []source.Item{},
			artists:     []source.Item{},
			instruments: []source.Item{},
		}
	)

	var g errgroup.Group
	if opts.IncludeArt {
		g.Go(func() error {
			artifacts = a.searchArt(ctx, query, opts.MaxResults, &fails)
			return nil
		})
	}
	if opts.IncludeMusic {
		g.Go(func() error {
			music = a.searchMusic(ctx, query, &fails)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Results{
		Query:       query,
		Artifacts:   artifacts,
		Recordings:  music.recordings,
		Artists:     music.artists,
		Instruments: music.instruments,
		Failures:    fails.list(),
		Took:        time.Since(start),
	}
	a.metrics.observeSearch(res.Took)
	return res, nil
}

// searchArt runs Cleveland and the Met chain side by side and returns
// Cleveland artworks followed by Met objects, capped at maxResults.
func (a *Aggregator) searchArt(ctx context.Context, query string, maxResults int, fails *failures) []source.Item {
	var (
		artworks []cleveland.Artwork
		objects  []met.Object
	)

	var g errgroup.Group
	g.Go(func() error {
		arts, err := a.cleveland.Search(ctx, query, maxResults)
		if err != nil {
			a.fail(fails, source.ProvenanceCleveland, query, err)
			return nil
		}
		artworks = arts
		return nil
	})
	g.Go(func() error {
		ids, err := a.met.SearchIDs(ctx, query)
		if err != nil {
			a.fail(fails, source.ProvenanceMet, query, err)
			return nil
		}
		if len(ids) > a.limits.MetDetails {
			ids = ids[:a.limits.MetDetails]
		}
		objects = a.met.GetObjects(ctx, ids)
		return nil
	})
	_ = g.Wait()

	items := make([]source.Item, 0, len(artworks)+len(objects))
	items = append(items, toItems(artworks)...)
	items = append(items, toItems(objects)...)
	if maxResults > 0 && len(items) > maxResults {
		items = items[:maxResults]
	}
	return items
}

type musicResults struct {
	recordings  []source.Item
	artists     []source.Item
	instruments []source.Item
}

// searchMusic issues the three MusicBrainz searches together; the shared
// limiter inside the adapter decides their admission order.
func (a *Aggregator) searchMusic(ctx context.Context, query string, fails *failures) musicResults {
	out := musicResults{
		recordings:  []source.Item{},
		artists:     []source.Item{},
		instruments: []source.Item{},
	}

	var g errgroup.Group
	g.Go(func() error {
		artists, err := a.music.SearchArtists(ctx, query, a.limits.Artists)
		if err != nil {
			a.fail(fails, source.ProvenanceMusicBrainzArtist, query, err)
			return nil
		}
		out.artists = toItems(artists)
		return nil
	})
	g.Go(func() error {
		recs, err := a.music.SearchRecordings(ctx, query, a.limits.Recordings)
		if err != nil {
			a.fail(fails, source.ProvenanceMusicBrainzRecording, query, err)
			return nil
		}
		out.recordings = toItems(recs)
		return nil
	})
	g.Go(func() error {
		insts, err := a.music.SearchInstruments(ctx, query, a.limits.Instruments)
		if err != nil {
			a.fail(fails, source.ProvenanceMusicBrainzInstrument, query, err)
			return nil
		}
		out.instruments = toItems(insts)
		return nil
	})
	_ = g.Wait()

	return out
}

func (a *Aggregator) fail(fails *failures, src source.Provenance, query string, err error) {
	a.logger.Warn("source search failed",
		zap.String("source", string(src)),
		zap.String("query", query),
		zap.Error(err),
	)
	a.metrics.observeFailure(src)
	fails.add(Failure{Source: src, Err: err})
}

func toItems[T source.Item](xs []T) []source.Item {
	items := make([]source.Item, 0, len(xs))
	for _, x := range xs {
		items = append(items, x)
	}
	return items
}
