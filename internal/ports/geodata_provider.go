package ports

import (
	"context"

	"weathermap.app/internal/core/geo"
)

// PlaceQuery selects places of the given classes inside a bounding box
type PlaceQuery struct {
	Bounds  geo.Bounds
	Classes []string
}

// PlaceCenter is the computed center Overpass returns for ways and relations
type PlaceCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PlaceElement is one raw element of a geodata response
type PlaceElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *PlaceCenter      `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

// PlaceProvider defines the contract for geodata sources
type PlaceProvider interface {
	QueryPlaces(ctx context.Context, query PlaceQuery) ([]PlaceElement, error)
	GetProviderName() string
}
