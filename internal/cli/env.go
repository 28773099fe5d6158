package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/llehouerou/culturedeck/internal/aggregate"
	"github.com/llehouerou/culturedeck/internal/cleveland"
	"github.com/llehouerou/culturedeck/internal/config"
	"github.com/llehouerou/culturedeck/internal/errmsg"
	"github.com/llehouerou/culturedeck/internal/fetch"
	"github.com/llehouerou/culturedeck/internal/logging"
	"github.com/llehouerou/culturedeck/internal/met"
	"github.com/llehouerou/culturedeck/internal/musicbrainz"
	"github.com/llehouerou/culturedeck/internal/ratelimit"
	"github.com/llehouerou/culturedeck/internal/searchctl"
	"github.com/llehouerou/culturedeck/internal/state"
)

// env holds the process-wide services shared by every command.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *http.Server
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, string(errmsg.OpConfigLoad))
	}

	logCfg := cfg.GetLogConfig()
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	logger, err := logging.New(logging.Config{
		Level:       logCfg.Level,
		File:        logCfg.File,
		Development: logCfg.Development,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create logger")
	}

	e := &env{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	e.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.HasMetrics() {
		e.serveMetrics(cfg.Metrics.Addr)
	}
	return e, nil
}

func (e *env) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))

	e.metrics = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		e.logger.Info("serving metrics", zap.String("addr", addr))
		if err := e.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
}

// Close stops the metrics server and flushes the logger.
func (e *env) Close() {
	if e.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := e.metrics.Shutdown(ctx); err != nil {
			e.logger.Warn("shutdown metrics server", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}

func (e *env) openState() (*state.Manager, error) {
	logger := logging.WithComponent(e.logger, "state")
	if e.cfg.StatePath != "" {
		return state.OpenPath(e.cfg.StatePath, logger)
	}
	return state.Open(logger)
}

func (e *env) searchConfig() searchctl.Config {
	sc := e.cfg.GetSearchConfig()
	return searchctl.Config{
		Debounce:   sc.Debounce,
		MinLength:  sc.MinQueryLength,
		MaxResults: sc.MaxResults,
	}
}

// newAggregator wires the three adapters over one retrying fetch client.
// MusicBrainz requests additionally pass the process-wide limiter.
func (e *env) newAggregator() *aggregate.Aggregator {
	httpCfg := e.cfg.GetHTTPConfig()
	mbCfg := e.cfg.GetMusicBrainzConfig()
	sc := e.cfg.GetSearchConfig()

	fetcher := fetch.New(
		fetch.WithHTTPClient(&http.Client{Timeout: httpCfg.Timeout}),
		fetch.WithMaxAttempts(httpCfg.MaxAttempts),
		fetch.WithBackoff(httpCfg.Backoff),
		fetch.WithMetrics(fetch.NewMetrics(e.registry)),
	)
	limiter := ratelimit.New(mbCfg.Interval)
	e.logger.Debug("musicbrainz rate limit", zap.Duration("interval", limiter.Interval()))

	return aggregate.New(
		met.NewClient(fetcher, e.cfg.Met.BaseURL, logging.WithComponent(e.logger, "met")),
		cleveland.NewClient(fetcher, e.cfg.Cleveland.BaseURL),
		musicbrainz.NewClient(fetcher, limiter,
			musicbrainz.WithBaseURL(mbCfg.BaseURL),
			musicbrainz.WithUserAgent(mbCfg.UserAgent),
		),
		aggregate.WithLimits(aggregate.Limits{
			MetDetails:  sc.MetDetailLimit,
			Artists:     sc.ArtistLimit,
			Recordings:  sc.RecordingLimit,
			Instruments: sc.InstrumentLimit,
		}),
		aggregate.WithLogger(logging.WithComponent(e.logger, "aggregate")),
		aggregate.WithMetrics(aggregate.NewMetrics(e.registry)),
	)
}
