// internal/app/view.go
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/culturedeck/internal/describe"
	"github.com/llehouerou/culturedeck/internal/keymap"
	"github.com/llehouerou/culturedeck/internal/searchctl"
	"github.com/llehouerou/culturedeck/internal/source"
	"github.com/llehouerou/culturedeck/internal/ui/headerbar"
	"github.com/llehouerou/culturedeck/internal/ui/layout"
	"github.com/llehouerou/culturedeck/internal/ui/render"
	"github.com/llehouerou/culturedeck/internal/ui/styles"
)

var categoryTitles = map[source.Category]string{
	source.CategoryArtifacts:   "Artifacts",
	source.CategoryRecordings:  "Recordings",
	source.CategoryArtists:     "Artists",
	source.CategoryInstruments: "Instruments",
}

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerbar.Render(m.Search.Scope(), m.Width))
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderBody() string {
	height := m.bodyHeight()

	var body string
	switch m.ActiveView() {
	case ViewFavorites:
		body = m.renderFavorites()
	case ViewHistory:
		body = m.renderHistory()
	case ViewResults:
		switch {
		case m.Detail == nil:
			body = m.renderResults()
		case layout.IsSplit(m.Width):
			results := lipgloss.NewStyle().Width(m.Results.Width()).Render(m.renderResults())
			detail := m.renderDetail(layout.DetailWidth(m.Width))
			gutter := lipgloss.NewStyle().Foreground(styles.T().Border).Render(" │ ")
			body = lipgloss.JoinHorizontal(lipgloss.Top, results, gutter, detail)
		default:
			body = m.renderDetail(m.Width)
		}
	}

	// Pad or clip to a fixed height so the footer stays at the bottom.
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderResults() string {
	s := styles.T().S()
	width := m.Results.Width()
	items := m.Results.Items()

	if len(items) == 0 {
		return s.Muted.Render(m.emptyResultsText())
	}

	res := m.Search.Results()
	start, end := m.Results.VisibleRange()

	var lines []string
	var prev source.Category
	for i := start; i < end; i++ {
		item := items[i]
		if cat := item.Provenance().Category(); i == start || cat != prev {
			title := fmt.Sprintf("%s (%d)", categoryTitles[cat], len(res.Category(cat)))
			lines = append(lines, s.Heading.Render(title))
			prev = cat
		}
		lines = append(lines, m.renderItemRow(item, i == m.Results.SelectedIndex(), width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) emptyResultsText() string {
	switch m.Search.State() {
	case searchctl.StatePending, searchctl.StateInFlight:
		return "Searching..."
	}
	if m.Search.Results() != nil {
		return "No results. Try another spelling or widen the scope with " + m.keyHint(keymap.ActionCycleScope) + "."
	}
	return fmt.Sprintf("Type at least %d characters to search.", m.Search.MinLength())
}

// renderItemRow renders one result: marker, favorite and vote flags, label and
// a muted provenance-specific subtitle.
func (m Model) renderItemRow(item source.Item, selected bool, width int) string {
	s := styles.T().S()

	marker := "  "
	if selected {
		marker = "› "
	}

	flags := " "
	if m.Prefs.IsFavorite(item.Key()) {
		flags = s.Favorite.Render("★")
	}
	switch m.Prefs.Vote(item.Key()) {
	case 1:
		flags += s.Success.Render("▲")
	case -1:
		flags += s.Error.Render("▼")
	default:
		flags += " "
	}

	textWidth := max(width-lipgloss.Width(marker)-3, 1)
	labelWidth := min(lipgloss.Width(render.Sanitize(item.Label())), textWidth)
	label := render.Truncate(item.Label(), labelWidth)
	subtitle := ""
	if rest := textWidth - lipgloss.Width(label) - 2; rest > 3 {
		subtitle = "  " + s.Muted.Render(render.Truncate(describe.Subtitle(item), rest))
	}

	line := marker + flags + " " + s.Base.Render(label) + subtitle
	if selected {
		return s.Cursor.Render(render.Pad(line, width))
	}
	return line
}

func (m Model) renderDetail(width int) string {
	s := styles.T().S()
	item := m.Detail
	width = max(width, 20)

	var lines []string
	title := render.Truncate(item.Label(), width)
	if m.Prefs.IsFavorite(item.Key()) {
		title = s.Favorite.Render("★ ") + s.Title.Render(title)
	} else {
		title = s.Title.Render(title)
	}
	lines = append(lines, title, s.Subtle.Render(item.Key()), s.Subtle.Render(render.Separator(width)))

	for _, f := range describe.Fields(item) {
		name := s.Muted.Render(render.Pad(f.Name, 15))
		wrapped := render.Wrap(f.Value, max(width-16, 10))
		for i, w := range wrapped {
			if i == 0 {
				lines = append(lines, name+" "+w)
			} else {
				lines = append(lines, strings.Repeat(" ", 16)+w)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHistory() string {
	s := styles.T().S()
	entries := m.History.Items()

	lines := []string{s.Heading.Render("Recent searches")}
	if len(entries) == 0 {
		lines = append(lines, s.Muted.Render(fmt.Sprintf(
			"Type at least %d characters to search the Met, Cleveland and MusicBrainz.",
			m.Search.MinLength(),
		)))
		return strings.Join(lines, "\n")
	}

	start, end := m.History.VisibleRange()
	for i := start; i < end; i++ {
		e := entries[i]
		meta := fmt.Sprintf("%s · %s · %s", e.Scope, pluralResults(e.Results), humanize.Time(e.At))
		lines = append(lines, m.renderSimpleRow(e.Query, meta, i == m.History.SelectedIndex(), m.History.Width()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFavorites() string {
	s := styles.T().S()
	favs := m.Favorites.Items()

	lines := []string{s.Heading.Render(fmt.Sprintf("Favorites (%d)", len(favs)))}
	if len(favs) == 0 {
		lines = append(lines, s.Muted.Render(
			"No favorites yet. Press "+m.keyHint(keymap.ActionToggleFavorite)+" on a result to save it.",
		))
		return strings.Join(lines, "\n")
	}

	start, end := m.Favorites.VisibleRange()
	for i := start; i < end; i++ {
		f := favs[i]
		meta := describe.SourceName(f.Provenance) + " · added " + humanize.Time(f.AddedAt)
		lines = append(lines, m.renderSimpleRow(f.Label, meta, i == m.Favorites.SelectedIndex(), m.Favorites.Width()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSimpleRow(label, meta string, selected bool, width int) string {
	s := styles.T().S()

	marker := "  "
	if selected {
		marker = "› "
	}
	metaWidth := lipgloss.Width(meta)
	labelWidth := max(width-len(marker)-metaWidth-2, 8)
	line := render.Row(marker+render.Truncate(label, labelWidth), s.Muted.Render(meta), width)
	if selected {
		return s.Cursor.Render(line)
	}
	return line
}

func pluralResults(n int) string {
	if n == 1 {
		return "1 result"
	}
	return humanize.Comma(int64(n)) + " results"
}

func (m Model) renderFooter() string {
	s := styles.T().S()

	status := m.Notice
	if status == "" {
		status = m.Search.Status()
	}

	contexts := []string{"global"}
	switch m.ActiveView() {
	case ViewResults:
		contexts = append(contexts, "results")
	case ViewHistory:
		contexts = append(contexts, "history")
	case ViewFavorites:
	}

	statusLine := render.Truncate(status, m.Width)
	if m.Search.Results().Partial() {
		statusLine = s.Warning.Render(statusLine)
	} else {
		statusLine = s.Base.Render(statusLine)
	}
	return statusLine + "\n" + s.Subtle.Render(render.Truncate(keymap.Help(contexts...), m.Width))
}
