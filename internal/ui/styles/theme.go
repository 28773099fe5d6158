package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Name string

	// Brand/accent colors
	Primary   lipgloss.Color // focused items, active scope
	Secondary lipgloss.Color // favorites, votes

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color // selection highlight

	Border lipgloss.Color // split pane gutter

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	// Gradient endpoints for the title banner
	GradientFrom lipgloss.Color
	GradientTo   lipgloss.Color

	once   sync.Once
	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Heading  lipgloss.Style // category headings
	Cursor   lipgloss.Style
	Favorite lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
}

var dark = Theme{
	Name:      "dark",
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border: lipgloss.Color("#585858"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),

	GradientFrom: lipgloss.Color("#a78bfa"),
	GradientTo:   lipgloss.Color("#f1a208"),
}

var light = Theme{
	Name:      "light",
	Primary:   lipgloss.Color("#6d28d9"),
	Secondary: lipgloss.Color("#b45309"),

	FgBase:   lipgloss.Color("#1f1f1f"),
	FgMuted:  lipgloss.Color("#5c5c5c"),
	FgSubtle: lipgloss.Color("#8a8a8a"),

	BgCursor: lipgloss.Color("#e4e4e7"),

	Border: lipgloss.Color("#a1a1aa"),

	Success: lipgloss.Color("#15803d"),
	Error:   lipgloss.Color("#b91c1c"),
	Warning: lipgloss.Color("#b45309"),

	GradientFrom: lipgloss.Color("#6d28d9"),
	GradientTo:   lipgloss.Color("#b45309"),
}

var (
	currentMu sync.RWMutex
	current   = &dark
)

// T returns the active theme.
func T() *Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetTheme activates the theme with the given name ("dark" or "light").
// Unknown names select dark. It returns the active theme's name.
func SetTheme(name string) string {
	currentMu.Lock()
	defer currentMu.Unlock()
	if name == light.Name {
		current = &light
	} else {
		current = &dark
	}
	return current.Name
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	t.once.Do(func() { t.styles = t.buildStyles() })
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Heading: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Favorite: lipgloss.NewStyle().Foreground(t.Secondary),
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
	}
}
