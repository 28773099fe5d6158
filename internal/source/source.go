// Package source defines the provenance-tagged result variants produced by
// the source adapters and the categories they are grouped into.
package source

// Provenance identifies which adapter produced an item.
type Provenance string

const (
	ProvenanceMet                   Provenance = "met"
	ProvenanceCleveland             Provenance = "cleveland"
	ProvenanceMusicBrainzArtist     Provenance = "musicbrainz-artist"
	ProvenanceMusicBrainzRecording  Provenance = "musicbrainz-recording"
	ProvenanceMusicBrainzInstrument Provenance = "musicbrainz-instrument"
)

// Category returns the result category items of this provenance belong to.
func (p Provenance) Category() Category {
	switch p {
	case ProvenanceMet, ProvenanceCleveland:
		return CategoryArtifacts
	case ProvenanceMusicBrainzArtist:
		return CategoryArtists
	case ProvenanceMusicBrainzRecording:
		return CategoryRecordings
	case ProvenanceMusicBrainzInstrument:
		return CategoryInstruments
	default:
		return ""
	}
}

// Category groups items in aggregated results.
type Category string

const (
	CategoryArtifacts   Category = "artifacts"
	CategoryRecordings  Category = "recordings"
	CategoryArtists     Category = "artists"
	CategoryInstruments Category = "instruments"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryArtifacts,
	CategoryRecordings,
	CategoryArtists,
	CategoryInstruments,
}

// Item is a single result from one source. Each adapter's native record type
// implements it; consumers switch on Provenance to reach the native fields.
type Item interface {
	Provenance() Provenance
	// Key is unique across sources, e.g. "met:45734".
	Key() string
	// Label is the title or name shown in lists.
	Label() string
}

// Key builds the cross-source key for an item with the given native id.
func Key(p Provenance, id string) string {
	return string(p) + ":" + id
}
