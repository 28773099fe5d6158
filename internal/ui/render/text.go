// Package render provides text rendering utilities for TUI components.
package render

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Sanitize removes control characters and invalid UTF-8 bytes, and turns
// newlines, tabs and non-breaking spaces into plain spaces. Remote catalogue
// fields go through it before reaching the terminal.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == utf8.RuneError && size <= 1:
		case r == '\n' || r == '\t' || r == '\u00a0':
			b.WriteByte(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsSanitize(s string) bool {
	for i := range len(s) {
		c := s[i]
		if c < 0x20 || c == 0x7f || c >= 0x80 {
			// Multi-byte text takes the slow path; the check stays byte-cheap.
			return true
		}
	}
	return false
}

// PlainText strips HTML tags and entities from s and collapses whitespace.
// Museum descriptions embed inline markup such as <i> and <br>.
func PlainText(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(Sanitize(s)), " ")
}

// Truncate shortens s to fit within maxWidth, adding "..." if truncated.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// Pad fills s with spaces to reach width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Row places left and right at the edges of a line of the given width.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator creates a horizontal rule of the given width.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// Wrap breaks s into lines no wider than width, on word boundaries.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if line.Len() > 0 && runewidth.StringWidth(line.String())+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(Truncate(word, width))
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
