package state

import (
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/llehouerou/culturedeck/internal/source"
)

// Keys used in the store.
const (
	KeyFavorites = "favorites"
	KeyVotes     = "votes"
	KeyTheme     = "theme"
	KeyHistory   = "history"
)

// MaxHistory caps the number of remembered searches.
const MaxHistory = 20

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrUnknownTheme is returned when setting a theme other than dark or light.
var ErrUnknownTheme = errors.New("unknown theme")

// Favorite is a saved result.
type Favorite struct {
	Key        string            `json:"key"`
	Provenance source.Provenance `json:"provenance"`
	Label      string            `json:"label"`
	AddedAt    time.Time         `json:"addedAt"`
}

// HistoryEntry is one applied search.
type HistoryEntry struct {
	ID      string    `json:"id"`
	Query   string    `json:"query"`
	Scope   string    `json:"scope"`
	Results int       `json:"results"`
	At      time.Time `json:"at"`
}

// Preferences exposes typed user preferences over a store.
type Preferences struct {
	store Interface
	now   func() time.Time
}

// NewPreferences wraps s.
func NewPreferences(s Interface) *Preferences {
	return &Preferences{store: s, now: time.Now}
}

// Favorites returns saved favorites, most recently added first.
func (p *Preferences) Favorites() []Favorite {
	return GetOr(p.store, KeyFavorites, []Favorite{})
}

// IsFavorite reports whether the item with key is saved.
func (p *Preferences) IsFavorite(key string) bool {
	return slices.ContainsFunc(p.Favorites(), func(f Favorite) bool { return f.Key == key })
}

// ToggleFavorite saves item, or removes it when already saved.
// It returns whether the item is a favorite afterwards.
func (p *Preferences) ToggleFavorite(item source.Item) (bool, error) {
	favs := p.Favorites()
	key := item.Key()

	if i := slices.IndexFunc(favs, func(f Favorite) bool { return f.Key == key }); i >= 0 {
		favs = slices.Delete(favs, i, i+1)
		return false, p.store.Set(KeyFavorites, favs)
	}

	favs = slices.Insert(favs, 0, Favorite{
		Key:        key,
		Provenance: item.Provenance(),
		Label:      item.Label(),
		AddedAt:    p.now(),
	})
	return true, p.store.Set(KeyFavorites, favs)
}

// Vote returns the current vote for key: -1, 0 or +1.
func (p *Preferences) Vote(key string) int {
	return GetOr(p.store, KeyVotes, map[string]int{})[key]
}

// AddVote adds delta to the vote for key, clamped to [-1, 1].
// Voting up then down returns to 0.
func (p *Preferences) AddVote(key string, delta int) (int, error) {
	votes := GetOr(p.store, KeyVotes, map[string]int{})
	v := max(-1, min(1, votes[key]+delta))
	if v == 0 {
		delete(votes, key)
	} else {
		votes[key] = v
	}
	return v, p.store.Set(KeyVotes, votes)
}

// Theme returns the saved theme, dark by default.
func (p *Preferences) Theme() string {
	switch name := GetOr(p.store, KeyTheme, ThemeDark); name {
	case ThemeDark, ThemeLight:
		return name
	default:
		return ThemeDark
	}
}

// SetTheme saves the theme name.
func (p *Preferences) SetTheme(name string) error {
	if name != ThemeDark && name != ThemeLight {
		return errors.Wrapf(ErrUnknownTheme, "%q", name)
	}
	return p.store.Set(KeyTheme, name)
}

// History returns past searches, most recent first.
func (p *Preferences) History() []HistoryEntry {
	return GetOr(p.store, KeyHistory, []HistoryEntry{})
}

// RecordSearch prepends a search to the history. An earlier entry for the
// same query (case-insensitive) is replaced. The write is deferred so bursts
// of searches are flushed together.
func (p *Preferences) RecordSearch(query string, scope source.Scope, results int) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	history := slices.DeleteFunc(p.History(), func(e HistoryEntry) bool {
		return strings.EqualFold(e.Query, query)
	})
	history = slices.Insert(history, 0, HistoryEntry{
		ID:      uuid.NewString(),
		Query:   query,
		Scope:   scope.String(),
		Results: results,
		At:      p.now(),
	})
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	return p.store.SetDeferred(KeyHistory, history)
}

// ClearHistory forgets all past searches.
func (p *Preferences) ClearHistory() error {
	return p.store.Set(KeyHistory, []HistoryEntry{})
}

// HistorySavedAt returns when the history was last persisted.
func (p *Preferences) HistorySavedAt() (time.Time, bool) {
	return p.store.UpdatedAt(KeyHistory)
}
