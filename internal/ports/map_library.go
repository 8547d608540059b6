package ports

import (
	"context"

	"weathermap.app/internal/core/geo"
)

// MapEvent names a native map notification
type MapEvent string

const (
	EventZoomEnd MapEvent = "zoomend"
	EventMoveEnd MapEvent = "moveend"
)

// MapOptions configures a new map instance
type MapOptions struct {
	Center geo.LatLng
	Zoom   int
	Width  int
	Height int
}

// ClusterOptions configures a marker cluster group
type ClusterOptions struct {
	// DisableClusteringAtZoom renders markers individually from this zoom on; 0 keeps clustering on
	DisableClusteringAtZoom int
}

// MapConstructor creates a map mounted into the given container
type MapConstructor func(container string, opts MapOptions) (MapInstance, error)

// ClusterConstructor creates a marker cluster group
type ClusterConstructor func(opts ClusterOptions) ClusterLayer

// MapLibrary is an imported mapping library handle. A handle whose
// MapConstructor is nil was only partially initialised and must not be used.
type MapLibrary interface {
	Name() string
	Version() string
	MapConstructor() MapConstructor
	// ClusterConstructor is nil when the clustering plugin is not available
	ClusterConstructor() ClusterConstructor
}

// LibraryImporter performs one import attempt of the mapping library
type LibraryImporter interface {
	Import(ctx context.Context) (MapLibrary, error)
}

// Environment describes the host execution context of a loader
type Environment interface {
	// Interactive reports whether a rendering surface is attached
	Interactive() bool
}

// MapInstance is a live map
type MapInstance interface {
	Container() string
	SetView(center geo.LatLng, zoom int)
	Center() geo.LatLng
	Zoom() int
	Bounds() geo.Bounds
	On(event MapEvent, handler func())
	NewLayer() MarkerLayer
	AddLayer(layer MarkerLayer)
	// GeoJSON exports what the map shows at its current zoom
	GeoJSON() geo.FeatureCollection
	Remove()
}

// MarkerSpec describes a marker to render
type MarkerSpec struct {
	ID       string
	Position geo.LatLng
	IconKey  string
	Label    string
	OnClick  func()
}

// MarkerHandle is the opaque library object behind a rendered marker
type MarkerHandle interface {
	ID() string
	Position() geo.LatLng
	IconKey() string
	Label() string
	Click()
}

// MarkerLayer groups markers rendered on a map
type MarkerLayer interface {
	AddMarker(spec MarkerSpec) MarkerHandle
	RemoveMarker(handle MarkerHandle)
	ClearLayers()
	Markers() []MarkerHandle
}

// Cluster is a group of markers shown as one symbol at a zoom level
type Cluster struct {
	Key       string     `json:"key"`
	Center    geo.LatLng `json:"center"`
	Count     int        `json:"count"`
	MarkerIDs []string   `json:"markerIds"`
}

// ClusterLayer is a marker layer that groups nearby markers
type ClusterLayer interface {
	MarkerLayer
	Clusters(zoom int) []Cluster
}
