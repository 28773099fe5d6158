// Package describe turns provenance-tagged items into display text shared
// by the TUI and the CLI.
package describe

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/culturedeck/internal/cleveland"
	"github.com/llehouerou/culturedeck/internal/met"
	"github.com/llehouerou/culturedeck/internal/musicbrainz"
	"github.com/llehouerou/culturedeck/internal/source"
	"github.com/llehouerou/culturedeck/internal/ui/render"
)

const musicBrainzSite = "https://musicbrainz.org"

// Field is one labeled detail line.
type Field struct {
	Name  string
	Value string
}

// SourceName returns the human name of the source an item came from.
func SourceName(p source.Provenance) string {
	switch p {
	case source.ProvenanceMet:
		return "The Met"
	case source.ProvenanceCleveland:
		return "Cleveland Museum of Art"
	case source.ProvenanceMusicBrainzArtist,
		source.ProvenanceMusicBrainzRecording,
		source.ProvenanceMusicBrainzInstrument:
		return "MusicBrainz"
	default:
		return string(p)
	}
}

// Subtitle returns the one-line summary shown under or beside an item's label.
func Subtitle(item source.Item) string {
	switch v := item.(type) {
	case met.Object:
		return join(v.ArtistDisplayName, v.ObjectDate, v.Department)
	case cleveland.Artwork:
		return join(v.Creator(), v.CreationDate, v.Type)
	case musicbrainz.Artist:
		return join(v.Type, v.Country, v.LifeSpan(), v.Disambiguation)
	case musicbrainz.Recording:
		return join(v.Artist, v.ReleaseTitle, v.FirstRelease, Duration(v.Length))
	case musicbrainz.Instrument:
		return join(v.Type, v.Disambiguation)
	default:
		return SourceName(item.Provenance())
	}
}

// Fields returns the labeled details of an item, skipping empty values.
func Fields(item source.Item) []Field {
	var fields []Field
	add := func(name, value string) {
		if value = render.PlainText(value); value != "" {
			fields = append(fields, Field{Name: name, Value: value})
		}
	}

	switch v := item.(type) {
	case met.Object:
		add("Artist", v.ArtistDisplayName)
		add("Date", v.ObjectDate)
		add("Culture", v.Culture)
		add("Medium", v.Medium)
		add("Department", v.Department)
		add("Image", v.Image())
	case cleveland.Artwork:
		add("Creator", v.Creator())
		add("Date", v.CreationDate)
		add("Type", v.Type)
		add("Technique", v.Technique)
		add("Accession", v.AccessionNumber)
		add("Image", v.Image())
		add("Description", v.Description)
	case musicbrainz.Artist:
		add("Type", v.Type)
		add("Country", v.Country)
		add("Active", v.LifeSpan())
		add("Note", v.Disambiguation)
	case musicbrainz.Recording:
		add("Artist", v.Artist)
		add("Release", v.ReleaseTitle)
		add("First released", v.FirstRelease)
		add("Length", Duration(v.Length))
		add("Note", v.Disambiguation)
	case musicbrainz.Instrument:
		add("Type", v.Type)
		add("Note", v.Disambiguation)
		add("Description", v.Description)
	}

	add("Source", SourceName(item.Provenance()))
	add("Link", URL(item))
	return fields
}

// URL returns the public page for an item, or "" when unknown.
func URL(item source.Item) string {
	switch v := item.(type) {
	case met.Object:
		if v.ObjectURL != "" {
			return v.ObjectURL
		}
		return "https://www.metmuseum.org/art/collection/search/" + strconv.Itoa(v.ObjectID)
	case cleveland.Artwork:
		return v.URL
	case musicbrainz.Artist:
		return musicBrainzSite + "/artist/" + v.ID
	case musicbrainz.Recording:
		return musicBrainzSite + "/recording/" + v.ID
	case musicbrainz.Instrument:
		return musicBrainzSite + "/instrument/" + v.ID
	default:
		return ""
	}
}

// Duration formats a track length as m:ss, or "" when unknown.
func Duration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(render.Sanitize(p)); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}
