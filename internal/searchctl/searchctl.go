// Package searchctl turns live query input into debounced aggregated searches.
//
// Every input change bumps a generation counter. A debounce tick or a search
// result carrying an older generation is dropped, so only the newest query's
// results are ever applied, even when an earlier search finishes last.
package searchctl

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/culturedeck/internal/aggregate"
	"github.com/llehouerou/culturedeck/internal/errmsg"
	"github.com/llehouerou/culturedeck/internal/source"
)

const (
	DefaultDebounce   = 500 * time.Millisecond
	DefaultMinLength  = 2
	DefaultMaxResults = 20
)

// State is the controller's position in its search cycle.
type State int

const (
	StateIdle     State = iota // nothing scheduled
	StatePending               // debounce tick armed
	StateInFlight              // aggregator running
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateInFlight:
		return "in-flight"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Searcher runs one aggregated search. *aggregate.Aggregator implements it.
type Searcher interface {
	Search(ctx context.Context, query string, opts aggregate.Options) (*aggregate.Results, error)
}

// Config tunes the controller. Zero fields take the defaults.
type Config struct {
	Debounce   time.Duration
	MinLength  int
	MaxResults int
}

func (c Config) withDefaults() Config {
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.MinLength <= 0 {
		c.MinLength = DefaultMinLength
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	return c
}

// debounceMsg fires when the quiet period for generation gen elapses.
type debounceMsg struct {
	gen uint64
}

// resultMsg carries a finished search back to the update loop.
type resultMsg struct {
	gen     uint64
	query   string
	results *aggregate.Results
	err     error
}

// AppliedMsg is emitted after a search result becomes current.
type AppliedMsg struct {
	Query   string
	Scope   source.Scope
	Results *aggregate.Results
}

// Model is the debounced search controller. It must only be touched from the
// Bubble Tea update loop.
type Model struct {
	searcher Searcher
	cfg      Config
	logger   *zap.Logger

	gen     uint64
	query   string
	scope   source.Scope
	state   State
	results *aggregate.Results
	status  string
}

// New creates a controller.
func New(s Searcher, cfg Config, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		searcher: s,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// SetQuery records new input. Input that only differs from the current query
// in surrounding whitespace is stored without re-searching. Input shorter than
// the minimum length clears the results without touching the network;
// otherwise a debounce tick is armed and any earlier tick or in-flight search
// is superseded.
func (m *Model) SetQuery(q string) tea.Cmd {
	same := strings.TrimSpace(q) == strings.TrimSpace(m.query)
	m.query = q
	if same {
		return nil
	}
	return m.arm()
}

// SetScope changes the searched scope and re-runs the current query.
func (m *Model) SetScope(s source.Scope) tea.Cmd {
	if s == m.scope {
		return nil
	}
	m.scope = s
	return m.arm()
}

// Refresh re-runs the current query, even if it is unchanged.
func (m *Model) Refresh() tea.Cmd {
	return m.arm()
}

func (m *Model) arm() tea.Cmd {
	m.gen++

	if utf8.RuneCountInString(strings.TrimSpace(m.query)) < m.cfg.MinLength {
		m.results = nil
		m.status = ""
		m.state = StateIdle
		return nil
	}

	m.state = StatePending
	gen := m.gen
	return tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen}
	})
}

// Update handles the controller's own messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceMsg:
		return m.handleDebounce(msg)
	case resultMsg:
		return m.handleResult(msg)
	}
	return nil
}

func (m *Model) handleDebounce(msg debounceMsg) tea.Cmd {
	if msg.gen != m.gen {
		return nil
	}

	m.state = StateInFlight
	m.status = "Searching…"

	searcher := m.searcher
	gen := m.gen
	query := strings.TrimSpace(m.query)
	opts := aggregate.OptionsForScope(m.scope, m.cfg.MaxResults)

	return func() tea.Msg {
		res, err := searcher.Search(context.Background(), query, opts)
		return resultMsg{gen: gen, query: query, results: res, err: err}
	}
}

func (m *Model) handleResult(msg resultMsg) tea.Cmd {
	if msg.gen != m.gen {
		m.logger.Debug("discarding stale search result",
			zap.String("query", msg.query),
			zap.Uint64("generation", msg.gen),
			zap.Uint64("current", m.gen),
		)
		return nil
	}

	m.state = StateIdle

	if msg.err != nil {
		m.logger.Warn("search failed", zap.String("query", msg.query), zap.Error(msg.err))
		m.results = nil
		m.status = errmsg.Retry(errmsg.OpSearch)
		return nil
	}

	m.results = msg.results
	m.status = statusFor(msg.query, msg.results)

	applied := AppliedMsg{Query: msg.query, Scope: m.scope, Results: msg.results}
	return func() tea.Msg { return applied }
}

func statusFor(query string, res *aggregate.Results) string {
	if res.Empty() {
		return fmt.Sprintf("No results for %q", query)
	}
	n := humanize.Comma(int64(res.Len()))
	if res.Partial() {
		return fmt.Sprintf("%s results (%d source(s) unavailable)", n, len(res.Failures))
	}
	return n + " results"
}

// Query returns the latest raw input.
func (m *Model) Query() string { return m.query }

// Scope returns the current scope.
func (m *Model) Scope() source.Scope { return m.scope }

// State returns the current cycle state.
func (m *Model) State() State { return m.state }

// Results returns the current results, nil when cleared.
func (m *Model) Results() *aggregate.Results { return m.results }

// Status returns the user-facing status line.
func (m *Model) Status() string { return m.status }

// Generation returns the latest issued generation.
func (m *Model) Generation() uint64 { return m.gen }

// MinLength returns the configured minimum query length.
func (m *Model) MinLength() int { return m.cfg.MinLength }
