package geo

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"weathermap.app/pkg/validation"
)

// LatLng is a WGS84 coordinate in degrees
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a rectangular geographic area. West may exceed East when the
// area crosses the antimeridian.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// IsValid validates bounds
func (b Bounds) IsValid() error {
	if b.North < b.South {
		return fmt.Errorf("north %.4f is below south %.4f", b.North, b.South)
	}
	if b.North > 90 || b.South < -90 {
		return fmt.Errorf("latitude out of range")
	}
	if b.East > 180 || b.East < -180 || b.West > 180 || b.West < -180 {
		return fmt.Errorf("longitude out of range")
	}
	return nil
}

// Contains reports whether p lies inside b, edges included
func (b Bounds) Contains(p LatLng) bool {
	if p.Lat < b.South || p.Lat > b.North {
		return false
	}
	if b.West <= b.East {
		return p.Lng >= b.West && p.Lng <= b.East
	}
	return p.Lng >= b.West || p.Lng <= b.East
}

// Center returns the midpoint of b
func (b Bounds) Center() LatLng {
	lng := (b.West + b.East) / 2
	if b.West > b.East {
		lng += 180
		if lng > 180 {
			lng -= 360
		}
	}
	return LatLng{Lat: (b.North + b.South) / 2, Lng: lng}
}

// String renders b in Overpass bbox order: south,west,north,east
func (b Bounds) String() string {
	return fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", b.South, b.West, b.North, b.East)
}

// Place is a named, geolocated administrative entity. Identity is ID.
type Place struct {
	ID             string            `json:"id"`
	DisplayName    string            `json:"displayName"`
	LocalizedNames map[string]string `json:"localizedNames,omitempty"`
	Latitude       float64           `json:"latitude"`
	Longitude      float64           `json:"longitude"`
	PlaceRank      int               `json:"placeRank"`
}

// Position returns the place coordinate
func (p Place) Position() LatLng {
	return LatLng{Lat: p.Latitude, Lng: p.Longitude}
}

// HasUsableLocation reports whether the place carries a name and a non-zero coordinate
func (p Place) HasUsableLocation() bool {
	return validation.IsNotEmpty(p.DisplayName) && p.Latitude != 0 && p.Longitude != 0
}

// Name picks the localized name that best matches locale, falling back to DisplayName
func (p Place) Name(locale string) string {
	if locale == "" || len(p.LocalizedNames) == 0 {
		return p.DisplayName
	}
	if name, ok := p.LocalizedNames[locale]; ok {
		return name
	}

	tags := make([]language.Tag, 0, len(p.LocalizedNames))
	keys := make([]string, 0, len(p.LocalizedNames))
	for key := range p.LocalizedNames {
		tag, err := language.Parse(key)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		keys = append(keys, key)
	}
	if len(tags) == 0 {
		return p.DisplayName
	}

	want, err := language.Parse(locale)
	if err != nil {
		return p.DisplayName
	}

	_, idx, confidence := language.NewMatcher(tags).Match(want)
	if confidence < language.High {
		return p.DisplayName
	}
	return p.LocalizedNames[keys[idx]]
}

// NormalizeLocale canonicalizes a locale key such as "ES" or "es_ES"
func NormalizeLocale(locale string) (string, bool) {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	return tag.String(), true
}
