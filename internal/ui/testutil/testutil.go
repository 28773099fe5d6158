// Package testutil provides common testing utilities for UI components.
package testutil

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ansiRe  = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// StripANSI removes ANSI escape codes so rendered output can be compared as text.
func StripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// NormalizeWhitespace collapses whitespace runs into single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// MeasureWidth returns the visual width of s without its ANSI codes.
func MeasureWidth(s string) int {
	return lipgloss.Width(StripANSI(s))
}

// FindLine returns the first line of the stripped output containing substr, or "".
func FindLine(output, substr string) string {
	for line := range strings.SplitSeq(StripANSI(output), "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

// LineIndex returns the index of the first line containing substr, or -1.
func LineIndex(output, substr string) int {
	for i, line := range strings.Split(StripANSI(output), "\n") {
		if strings.Contains(line, substr) {
			return i
		}
	}
	return -1
}

// CountLines returns the number of non-empty lines in the output.
func CountLines(output string) int {
	count := 0
	for line := range strings.SplitSeq(output, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}
