// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of rows kept visible above/below the cursor.
	ScrollMargin = 3

	// FooterHeight is the status line plus the key help line.
	FooterHeight = 2

	// InputHeight is the search input line.
	InputHeight = 1

	// GapHeight is the blank line between the input and the body.
	GapHeight = 1
)
