// Package layout provides pure functions for UI dimension calculations.
package layout

// SplitThreshold is the terminal width from which the detail pane is shown
// beside the results instead of replacing them.
const SplitThreshold = 100

// SplitGutterWidth is the width of the separator between results and detail.
const SplitGutterWidth = 3

// ChromeOpts contains the heights of the fixed rows around the body.
type ChromeOpts struct {
	HeaderHeight int
	InputHeight  int
	GapHeight    int // blank rows between input and body
	FooterHeight int
}

// BodyHeight calculates the rows left for the body (results, history or
// favorites). It is never below 1.
func BodyHeight(windowHeight int, opts ChromeOpts) int {
	height := windowHeight
	height -= opts.HeaderHeight
	height -= opts.InputHeight
	height -= opts.GapHeight
	height -= opts.FooterHeight
	return max(height, 1)
}

// IsSplit returns true if the detail pane fits beside the results.
func IsSplit(width int) bool {
	return width >= SplitThreshold
}

// ResultsWidth calculates the width of the results list. In split mode the
// list takes half of the window so the detail pane can open beside it.
func ResultsWidth(windowWidth int) int {
	if IsSplit(windowWidth) {
		return windowWidth / 2
	}
	return windowWidth
}

// DetailWidth calculates the width of the detail pane. In split mode it
// takes what the results and gutter leave; otherwise the full width.
func DetailWidth(windowWidth int) int {
	if IsSplit(windowWidth) {
		return windowWidth - ResultsWidth(windowWidth) - SplitGutterWidth
	}
	return windowWidth
}

// ListHeight calculates the item rows of a list whose body also holds
// headingRows heading lines. It is never below 1.
func ListHeight(bodyHeight, headingRows int) int {
	return max(bodyHeight-headingRows, 1)
}
