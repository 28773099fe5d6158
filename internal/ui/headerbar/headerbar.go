// internal/ui/headerbar/headerbar.go
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/culturedeck/internal/source"
	"github.com/llehouerou/culturedeck/internal/ui/render"
	"github.com/llehouerou/culturedeck/internal/ui/styles"
)

// Height is the header height: banner and scope tabs.
const Height = 2

// Title is the banner text.
const Title = "culturedeck"

var scopes = []source.Scope{source.ScopeAll, source.ScopeArtifacts, source.ScopeMusic}

// Render returns the header for the given width: the gradient banner with
// the active theme name on the right, then the scope tabs.
func Render(active source.Scope, width int) string {
	t := styles.T()
	s := t.S()

	banner := render.Row(styles.Banner(Title), s.Subtle.Render(t.Name), width)
	return banner + "\n" + renderTabs(active)
}

func renderTabs(active source.Scope) string {
	t := styles.T()
	s := t.S()

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Underline(true)

	parts := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		if scope == active {
			parts = append(parts, activeStyle.Render(scope.String()))
		} else {
			parts = append(parts, s.Muted.Render(scope.String()))
		}
	}
	return s.Subtle.Render("scope ") + strings.Join(parts, s.Subtle.Render(" │ "))
}
