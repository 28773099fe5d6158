package source

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Scope restricts which sources a search reaches.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeArtifacts
	ScopeMusic
)

var scopeNames = [...]string{"all", "artifacts", "music"}

func (s Scope) String() string {
	if s < 0 || int(s) >= len(scopeNames) {
		return fmt.Sprintf("Scope(%d)", int(s))
	}
	return scopeNames[s]
}

// IncludesArt reports whether museum sources are searched.
func (s Scope) IncludesArt() bool {
	return s == ScopeAll || s == ScopeArtifacts
}

// IncludesMusic reports whether MusicBrainz is searched.
func (s Scope) IncludesMusic() bool {
	return s == ScopeAll || s == ScopeMusic
}

// Next cycles all -> artifacts -> music -> all.
func (s Scope) Next() Scope {
	return (s + 1) % Scope(len(scopeNames))
}

// ParseScope parses "all", "artifacts" or "music".
func ParseScope(name string) (Scope, error) {
	for i, n := range scopeNames {
		if n == name {
			return Scope(i), nil
		}
	}
	return ScopeAll, errors.Newf("unknown scope %q (want all, artifacts or music)", name)
}
