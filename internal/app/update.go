// internal/app/update.go
package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/culturedeck/internal/errmsg"
	"github.com/llehouerou/culturedeck/internal/keymap"
	"github.com/llehouerou/culturedeck/internal/searchctl"
	"github.com/llehouerou/culturedeck/internal/source"
	"github.com/llehouerou/culturedeck/internal/state"
	"github.com/llehouerou/culturedeck/internal/ui"
	"github.com/llehouerou/culturedeck/internal/ui/headerbar"
	"github.com/llehouerou/culturedeck/internal/ui/layout"
	"github.com/llehouerou/culturedeck/internal/ui/list"
	"github.com/llehouerou/culturedeck/internal/ui/styles"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.layout()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case searchctl.AppliedMsg:
		m.recordSearch(msg)

	default:
		var inputCmd tea.Cmd
		m.Input, inputCmd = m.Input.Update(msg)
		cmd = tea.Batch(m.Search.Update(msg), inputCmd)
	}

	m.syncResults()
	m.syncFocus()
	return m, cmd
}

// bodyHeight is the number of lines between the input and the footer.
func (m Model) bodyHeight() int {
	return layout.BodyHeight(m.Height, layout.ChromeOpts{
		HeaderHeight: headerbar.Height,
		InputHeight:  ui.InputHeight,
		GapHeight:    ui.GapHeight,
		FooterHeight: ui.FooterHeight,
	})
}

func (m *Model) layout() {
	body := m.bodyHeight()

	// Category headings take up to one line each.
	m.Results.SetSize(layout.ResultsWidth(m.Width), layout.ListHeight(body, len(source.Categories)))
	m.History.SetSize(m.Width, layout.ListHeight(body, 1))
	m.Favorites.SetSize(m.Width, layout.ListHeight(body, 1))
	m.Input.Width = max(m.Width-len(m.Input.Prompt)-1, 10)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	view := m.ActiveView()

	if handled, cmd := m.runAction(m.Keys.Resolve(msg.String()), view); handled {
		return cmd
	}

	if res := m.activeListUpdate(msg, view); res.Action == list.ActionMoved {
		return nil
	}

	return m.updateInput(msg)
}

func (m *Model) activeListUpdate(msg tea.Msg, view View) list.Result {
	switch view {
	case ViewResults:
		return m.Results.Update(msg)
	case ViewHistory:
		return m.History.Update(msg)
	case ViewFavorites:
		return m.Favorites.Update(msg)
	}
	return list.Result{Index: -1}
}

// updateInput feeds a key to the search input and forwards changes to the
// controller.
func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	before := m.Input.Value()

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)

	after := m.Input.Value()
	if after == before {
		return cmd
	}

	m.Detail = nil
	m.ShowFavorites = false
	m.Notice = ""
	return tea.Batch(cmd, m.Search.SetQuery(after))
}

// runAction executes a bound action. It reports false when the action does not
// apply to the current view, so the key falls through to the input.
func (m *Model) runAction(action keymap.Action, view View) (bool, tea.Cmd) {
	switch action {
	case keymap.ActionQuit:
		return true, tea.Quit

	case keymap.ActionBack:
		return m.back()

	case keymap.ActionCycleScope:
		m.Notice = ""
		return true, m.Search.SetScope(m.Search.Scope().Next())

	case keymap.ActionToggleTheme:
		m.toggleTheme()
		return true, nil

	case keymap.ActionRefresh:
		if view != ViewResults {
			return false, nil
		}
		m.Notice = ""
		return true, m.Search.Refresh()

	case keymap.ActionShowFavorites:
		m.ShowFavorites = !m.ShowFavorites
		m.Detail = nil
		m.Favorites.SetItems(m.Prefs.Favorites())
		return true, nil

	case keymap.ActionOpenDetail:
		return m.open(view)

	case keymap.ActionToggleFavorite:
		item, ok := m.selectedItem(view)
		if !ok {
			return false, nil
		}
		m.toggleFavorite(item)
		return true, nil

	case keymap.ActionVoteUp, keymap.ActionVoteDown:
		item, ok := m.selectedItem(view)
		if !ok {
			return false, nil
		}
		delta := 1
		if action == keymap.ActionVoteDown {
			delta = -1
		}
		m.vote(item, delta)
		return true, nil

	case keymap.ActionClearHistory:
		if view != ViewHistory {
			return false, nil
		}
		if err := m.Prefs.ClearHistory(); err != nil {
			m.fail(errmsg.OpHistoryClear, err)
			return true, nil
		}
		m.History.SetItems(nil)
		m.Notice = "History cleared"
		return true, nil
	}

	return false, nil
}

func (m *Model) back() (bool, tea.Cmd) {
	switch {
	case m.Detail != nil:
		m.Detail = nil
		return true, nil
	case m.ShowFavorites:
		m.ShowFavorites = false
		return true, nil
	case m.Input.Value() != "":
		m.Input.SetValue("")
		m.Notice = ""
		m.History.SetItems(m.Prefs.History())
		return true, m.Search.SetQuery("")
	}
	return false, nil
}

// open acts on enter: details for a result, or a new search for a history
// entry or favorite.
func (m *Model) open(view View) (bool, tea.Cmd) {
	switch view {
	case ViewResults:
		item, ok := m.Results.Selected()
		if !ok {
			return false, nil
		}
		m.Detail = item
		return true, nil

	case ViewHistory:
		entry, ok := m.History.Selected()
		if !ok {
			return false, nil
		}
		scope, err := source.ParseScope(entry.Scope)
		if err != nil {
			scope = m.Search.Scope()
		}
		return true, tea.Batch(m.Search.SetScope(scope), m.searchFor(entry.Query))

	case ViewFavorites:
		fav, ok := m.Favorites.Selected()
		if !ok {
			return false, nil
		}
		m.ShowFavorites = false
		return true, m.searchFor(fav.Label)
	}
	return false, nil
}

func (m *Model) searchFor(query string) tea.Cmd {
	m.Input.SetValue(query)
	m.Input.CursorEnd()
	m.Detail = nil
	m.Notice = ""
	return m.Search.SetQuery(query)
}

// selectedItem returns the item favorite and vote actions apply to.
func (m *Model) selectedItem(view View) (source.Item, bool) {
	if m.Detail != nil {
		return m.Detail, true
	}
	if view != ViewResults {
		return nil, false
	}
	return m.Results.Selected()
}

func (m *Model) toggleFavorite(item source.Item) {
	on, err := m.Prefs.ToggleFavorite(item)
	if err != nil {
		m.failOn(errmsg.OpFavoriteToggle, item, err)
		return
	}
	m.Favorites.Refresh(m.Prefs.Favorites())
	if on {
		m.Notice = "Added to favorites: " + item.Label()
	} else {
		m.Notice = "Removed from favorites: " + item.Label()
	}
}

func (m *Model) vote(item source.Item, delta int) {
	v, err := m.Prefs.AddVote(item.Key(), delta)
	if err != nil {
		m.failOn(errmsg.OpVote, item, err)
		return
	}
	switch v {
	case 1:
		m.Notice = "Voted up: " + item.Label()
	case -1:
		m.Notice = "Voted down: " + item.Label()
	default:
		m.Notice = "Vote cleared: " + item.Label()
	}
}

func (m *Model) toggleTheme() {
	next := state.ThemeLight
	if styles.T().Name == state.ThemeLight {
		next = state.ThemeDark
	}
	styles.SetTheme(next)
	if err := m.Prefs.SetTheme(next); err != nil {
		m.fail(errmsg.OpThemeSave, err)
	}
}

func (m *Model) recordSearch(msg searchctl.AppliedMsg) {
	if err := m.Prefs.RecordSearch(msg.Query, msg.Scope, msg.Results.Len()); err != nil {
		m.Logger.Warn("record search history", zap.String("query", msg.Query), zap.Error(err))
		return
	}
	m.History.SetItems(m.Prefs.History())
}

func (m *Model) fail(op errmsg.Op, err error) {
	m.Logger.Warn("operation failed", zap.String("op", string(op)), zap.Error(err))
	m.Notice = errmsg.Format(op, err)
}

func (m *Model) failOn(op errmsg.Op, item source.Item, err error) {
	m.Logger.Warn("operation failed",
		zap.String("op", string(op)),
		zap.String("key", item.Key()),
		zap.Error(err),
	)
	m.Notice = errmsg.FormatWith(op, item.Label(), err)
}

// keyHint returns the keys bound to action, e.g. "ctrl+f".
func (m Model) keyHint(action keymap.Action) string {
	return strings.Join(m.Keys.KeysFor(action), "/")
}
