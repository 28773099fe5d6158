package aggregate

import (
	"sync"
	"time"

	"github.com/llehouerou/culturedeck/internal/source"
)

// Results is one search's categorized output. It is built once per search and
// must not be mutated afterwards; a newer search replaces it wholesale.
type Results struct {
	Query       string
	Artifacts   []source.Item // Cleveland first, then Met
	Recordings  []source.Item
	Artists     []source.Item
	Instruments []source.Item
	Failures    []Failure
	Took        time.Duration
}

// Failure records a source whose search failed and was isolated.
type Failure struct {
	Source source.Provenance
	Err    error
}

// Category returns the items of category c.
func (r *Results) Category(c source.Category) []source.Item {
	if r == nil {
		return nil
	}
	switch c {
	case source.CategoryArtifacts:
		return r.Artifacts
	case source.CategoryRecordings:
		return r.Recordings
	case source.CategoryArtists:
		return r.Artists
	case source.CategoryInstruments:
		return r.Instruments
	default:
		return nil
	}
}

// Len returns the total item count across categories.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Artifacts) + len(r.Recordings) + len(r.Artists) + len(r.Instruments)
}

// Empty reports a well-formed search that matched nothing.
func (r *Results) Empty() bool {
	return r.Len() == 0
}

// Partial reports whether some source failed while the search still completed.
func (r *Results) Partial() bool {
	return r != nil && len(r.Failures) > 0
}

type failures struct {
	mu    sync.Mutex
	items []Failure
}

func (f *failures) add(failure Failure) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, failure)
}

func (f *failures) list() []Failure {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Failure(nil), f.items...)
}
