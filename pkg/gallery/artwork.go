// Package gallery provides the artwork collection model with
// filtering, pagination, and stats aggregation.
package gallery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Artwork is one record of the backend collection. The backend owns
// the schema and may omit any field, so the typed accessors report
// absence explicitly instead of relying on empty-string sentinels.
type Artwork struct {
	ID       string
	Title    string
	Keywords string
	Medium   string
	Surface  string

	// year is kept raw so Year can distinguish absent from invalid.
	year string

	// Fields holds the full decoded payload for detail rendering.
	Fields map[string]any
}

// UnmarshalJSON decodes a backend artwork object. Numbers are kept as
// json.Number so years survive both string and numeric encodings.
func (a *Artwork) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return fmt.Errorf("decode artwork: %w", err)
	}

	a.Fields = fields
	a.ID = stringField(fields, "artwork_id")
	a.Title = stringField(fields, "title")
	a.Keywords = stringField(fields, "keywords")
	a.Medium = stringField(fields, "medium")
	a.Surface = stringField(fields, "surface")
	a.year = stringField(fields, "year")

	return nil
}

// Year returns the artwork's year as an integer. The second return is
// false when the field is missing, blank, or not numeric.
func (a Artwork) Year() (int, bool) {
	raw := strings.TrimSpace(a.year)
	if raw == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n, true
	}

	// Backends occasionally send years as floats (1990.0).
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f), true
	}

	return 0, false
}

// YearLabel returns the raw year text for display, empty when the
// field is missing.
func (a Artwork) YearLabel() string {
	return strings.TrimSpace(a.year)
}

// searchText returns the lower-cased haystack used by the free-text
// filter: artwork_id, title, keywords, medium, and surface joined by
// spaces, with missing fields contributing nothing.
func (a Artwork) searchText() string {
	s := a.ID + " " + a.Title + " " + a.Keywords + " " + a.Medium + " " + a.Surface
	return strings.ToLower(s)
}

// stringField extracts a field as a string. Strings pass through,
// numbers and booleans are formatted, anything else (including a
// missing key) is the empty string.
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// DecodeCollection parses the backend's artwork collection payload.
// The backend may legitimately return an empty or null body for an
// empty collection.
func DecodeCollection(payload []byte) ([]Artwork, error) {
	var collection []Artwork
	if err := json.Unmarshal(payload, &collection); err != nil {
		return nil, fmt.Errorf("decode artwork collection: %w", err)
	}
	return collection, nil
}

// DecodeArtwork parses a single artwork payload.
func DecodeArtwork(payload []byte) (Artwork, error) {
	var a Artwork
	if err := json.Unmarshal(payload, &a); err != nil {
		return Artwork{}, fmt.Errorf("decode artwork: %w", err)
	}
	return a, nil
}
