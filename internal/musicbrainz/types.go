// Package musicbrainz provides a client for the MusicBrainz search API.
package musicbrainz

import (
	"time"

	"github.com/llehouerou/culturedeck/internal/source"
)

// Artist represents a MusicBrainz artist.
type Artist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SortName       string `json:"sort-name"`
	Type           string `json:"type"` // Person, Group, etc.
	Country        string `json:"country"`
	Score          int    `json:"score"` // Search relevance score (0-100)
	Disambiguation string `json:"disambiguation"`
	BeginYear      string // Extracted from life-span
	EndYear        string // Extracted from life-span
}

// Recording represents a MusicBrainz recording.
type Recording struct {
	ID             string
	Title          string
	Length         time.Duration
	Artist         string // Extracted from artist-credit
	FirstRelease   string
	ReleaseID      string // First release the recording appears on
	ReleaseTitle   string
	Score          int
	Disambiguation string
}

// Instrument represents a MusicBrainz instrument.
type Instrument struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"` // Wind instrument, String instrument, etc.
	Description    string `json:"description"`
	Disambiguation string `json:"disambiguation"`
	Score          int    `json:"score"`
}

var (
	_ source.Item = Artist{}
	_ source.Item = Recording{}
	_ source.Item = Instrument{}
)

func (a Artist) Provenance() source.Provenance { return source.ProvenanceMusicBrainzArtist }
func (a Artist) Key() string                   { return source.Key(a.Provenance(), a.ID) }
func (a Artist) Label() string                 { return a.Name }

// LifeSpan formats the active years, e.g. "1926 - 1991" or "1985 -".
func (a Artist) LifeSpan() string {
	switch {
	case a.BeginYear == "" && a.EndYear == "":
		return ""
	case a.EndYear == "":
		return a.BeginYear + " -"
	default:
		return a.BeginYear + " - " + a.EndYear
	}
}

func (r Recording) Provenance() source.Provenance { return source.ProvenanceMusicBrainzRecording }
func (r Recording) Key() string                   { return source.Key(r.Provenance(), r.ID) }
func (r Recording) Label() string                 { return r.Title }

func (i Instrument) Provenance() source.Provenance { return source.ProvenanceMusicBrainzInstrument }
func (i Instrument) Key() string                   { return source.Key(i.Provenance(), i.ID) }
func (i Instrument) Label() string                 { return i.Name }

// artistSearchResponse is the raw response from MusicBrainz artist search.
type artistSearchResponse struct {
	Artists []artistResult `json:"artists"`
}

// artistResult is a single artist from search results.
type artistResult struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SortName       string    `json:"sort-name"`
	Type           string    `json:"type"`
	Country        string    `json:"country"`
	Score          int       `json:"score"`
	Disambiguation string    `json:"disambiguation"`
	LifeSpan       *lifeSpan `json:"life-span"`
}

type lifeSpan struct {
	Begin string `json:"begin"`
	End   string `json:"end"`
}

// artistCredit represents an artist contribution.
type artistCredit struct {
	Name   string `json:"name"`
	Artist struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		SortName string `json:"sort-name"`
	} `json:"artist"`
	JoinPhrase string `json:"joinphrase"`
}

type recordingSearchResponse struct {
	Recordings []recordingResult `json:"recordings"`
}

type recordingResult struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Length           int            `json:"length"` // milliseconds, may be null
	Score            int            `json:"score"`
	Disambiguation   string         `json:"disambiguation"`
	FirstReleaseDate string         `json:"first-release-date"`
	ArtistCredit     []artistCredit `json:"artist-credit"`
	Releases         []releaseRef   `json:"releases"`
}

type releaseRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type instrumentSearchResponse struct {
	Instruments []instrumentResult `json:"instruments"`
}

type instrumentResult struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Description    string `json:"description"`
	Disambiguation string `json:"disambiguation"`
	Score          int    `json:"score"`
}
