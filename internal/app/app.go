// internal/app/app.go
package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/culturedeck/internal/aggregate"
	"github.com/llehouerou/culturedeck/internal/keymap"
	"github.com/llehouerou/culturedeck/internal/searchctl"
	"github.com/llehouerou/culturedeck/internal/source"
	"github.com/llehouerou/culturedeck/internal/state"
	"github.com/llehouerou/culturedeck/internal/ui"
	"github.com/llehouerou/culturedeck/internal/ui/list"
	"github.com/llehouerou/culturedeck/internal/ui/styles"
)

// View is the content shown below the search input.
type View int

const (
	ViewHistory   View = iota // input empty: recent searches
	ViewResults               // search results
	ViewFavorites             // saved favorites
)

// Options wires the model's collaborators.
type Options struct {
	Searcher searchctl.Searcher
	Search   searchctl.Config
	Prefs    *state.Preferences
	Logger   *zap.Logger
}

// Model is the root application model.
type Model struct {
	Search    *searchctl.Model
	Input     textinput.Model
	Results   list.Model[source.Item]
	History   list.Model[state.HistoryEntry]
	Favorites list.Model[state.Favorite]
	Prefs     *state.Preferences
	Keys      *keymap.Resolver
	Logger    *zap.Logger

	// Detail is the item whose detail pane is open, or nil.
	Detail        source.Item
	ShowFavorites bool
	// Notice replaces the search status until the next input change.
	Notice string

	// shown is the results value currently loaded into the Results list.
	shown *aggregate.Results

	Width  int
	Height int
}

// New creates the application model and applies the saved theme.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Search the Met, Cleveland and MusicBrainz..."
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	m := Model{
		Search:    searchctl.New(opts.Searcher, opts.Search, logger.Named("search")),
		Input:     ti,
		Results:   list.New[source.Item](ui.ScrollMargin),
		History:   list.New[state.HistoryEntry](ui.ScrollMargin),
		Favorites: list.New[state.Favorite](ui.ScrollMargin),
		Prefs:     opts.Prefs,
		Keys:      keymap.NewResolver(keymap.All),
		Logger:    logger,
	}

	styles.SetTheme(m.Prefs.Theme())
	m.History.SetItems(m.Prefs.History())
	m.Favorites.SetItems(m.Prefs.Favorites())
	m.syncFocus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// ActiveView returns the view currently shown below the input.
func (m Model) ActiveView() View {
	switch {
	case m.ShowFavorites:
		return ViewFavorites
	case strings.TrimSpace(m.Input.Value()) == "":
		return ViewHistory
	default:
		return ViewResults
	}
}

// syncFocus gives keyboard navigation to the list of the active view.
func (m *Model) syncFocus() {
	v := m.ActiveView()
	m.Results.SetFocused(v == ViewResults && m.Detail == nil)
	m.History.SetFocused(v == ViewHistory)
	m.Favorites.SetFocused(v == ViewFavorites)
}

// syncResults reloads the Results list when the controller replaced its results.
func (m *Model) syncResults() {
	res := m.Search.Results()
	if res == m.shown {
		return
	}
	m.shown = res

	var items []source.Item
	for _, c := range source.Categories {
		items = append(items, res.Category(c)...)
	}
	m.Results.SetItems(items)

	if m.Detail != nil && res == nil {
		m.Detail = nil
	}
}
