// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit        Action = "quit"
	ActionCycleScope  Action = "cycle_scope"
	ActionToggleTheme Action = "toggle_theme"
	ActionRefresh     Action = "refresh"
	ActionBack        Action = "back"

	// Result list actions
	ActionOpenDetail     Action = "open_detail"
	ActionToggleFavorite Action = "toggle_favorite"
	ActionVoteUp         Action = "vote_up"
	ActionVoteDown       Action = "vote_down"
	ActionShowFavorites  Action = "show_favorites"

	// History actions
	ActionClearHistory Action = "clear_history"
)
