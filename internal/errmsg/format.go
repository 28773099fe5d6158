// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"fmt"
	"strings"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Search
	OpSearch Op = "search"

	// Preferences
	OpFavoriteToggle Op = "update favorites"
	OpFavoritesLoad  Op = "load favorites"
	OpVote           Op = "record vote"
	OpThemeSave      Op = "save theme"
	OpHistoryLoad    Op = "load search history"
	OpHistoryClear   Op = "clear search history"

	// Initialization
	OpConfigLoad Op = "load configuration"
	OpStateOpen  Op = "open preferences store"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Retry is the message shown when op failed as a whole and the user can
// simply try again. The cause is logged, not shown.
func Retry(op Op) string {
	s := string(op)
	if s == "" {
		return "Something went wrong. Please try again."
	}
	return strings.ToUpper(s[:1]) + s[1:] + " failed. Please try again."
}
