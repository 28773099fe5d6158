// Package keymap defines key bindings for the application.
package keymap

import "strings"

// Binding maps keys to an action and documents it.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "results", "history"
}

// All contains all key bindings. Letter keys are never bound: they belong to
// the search input.
var All = []Binding{
	// Global
	{ActionQuit, []string{"ctrl+c"}, "Quit", "global"},
	{ActionBack, []string{"esc"}, "Close detail / clear search", "global"},
	{ActionCycleScope, []string{"tab"}, "Cycle scope", "global"},
	{ActionToggleTheme, []string{"ctrl+t"}, "Toggle theme", "global"},
	{ActionRefresh, []string{"ctrl+r"}, "Search again", "global"},
	{ActionShowFavorites, []string{"ctrl+o"}, "Show favorites", "global"},

	// Results
	{ActionOpenDetail, []string{"enter"}, "Details", "results"},
	{ActionToggleFavorite, []string{"ctrl+f"}, "Favorite", "results"},
	{ActionVoteUp, []string{"ctrl+u"}, "Vote up", "results"},
	{ActionVoteDown, []string{"ctrl+d"}, "Vote down", "results"},

	// History
	{ActionOpenDetail, []string{"enter"}, "Search again", "history"},
	{ActionClearHistory, []string{"ctrl+x"}, "Clear history", "history"},
}

// ByContext returns all bindings for a given context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, b := range All {
		if b.Context == context {
			result = append(result, b)
		}
	}
	return result
}

// Help renders a one-line summary of the bindings in the given contexts,
// e.g. "enter details · ctrl+f favorite".
func Help(contexts ...string) string {
	var parts []string
	for _, ctx := range contexts {
		for _, b := range ByContext(ctx) {
			parts = append(parts, strings.Join(b.Keys, "/")+" "+strings.ToLower(b.Description))
		}
	}
	return strings.Join(parts, " · ")
}
