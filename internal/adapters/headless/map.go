package headless

import (
	"math"
	"sync"

	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
	"weathermap.app/pkg/validation"
)

// Map is a headless map instance. It is safe for concurrent use; event
// handlers run on the goroutine that changed the view.
type Map struct {
	mu        sync.RWMutex
	container string
	center    geo.LatLng
	zoom      int
	width     int
	height    int
	handlers  map[ports.MapEvent][]func()
	layers    []ports.MarkerLayer
	removed   bool
}

// NewMap mounts a map into container. It satisfies ports.MapConstructor.
func NewMap(container string, opts ports.MapOptions) (ports.MapInstance, error) {
	if !validation.IsNotEmpty(container) {
		return nil, errors.NewValidationError("map container is required")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.NewValidationError("map viewport must have a positive size")
	}

	return &Map{
		container: container,
		center:    normalizeCenter(opts.Center),
		zoom:      clampZoom(opts.Zoom),
		width:     opts.Width,
		height:    opts.Height,
		handlers:  make(map[ports.MapEvent][]func()),
	}, nil
}

func normalizeCenter(c geo.LatLng) geo.LatLng {
	return geo.LatLng{
		Lat: math.Max(-maxLat, math.Min(maxLat, c.Lat)),
		Lng: wrapLng(c.Lng),
	}
}

func (m *Map) Container() string {
	return m.container
}

// SetView moves the map. zoomend fires before moveend when the zoom changed,
// moveend fires whenever the view changed at all.
func (m *Map) SetView(center geo.LatLng, zoom int) {
	center = normalizeCenter(center)
	zoom = clampZoom(zoom)

	m.mu.Lock()
	if m.removed {
		m.mu.Unlock()
		return
	}
	zoomed := zoom != m.zoom
	moved := center != m.center
	m.center, m.zoom = center, zoom
	m.mu.Unlock()

	if zoomed {
		m.fire(ports.EventZoomEnd)
	}
	if zoomed || moved {
		m.fire(ports.EventMoveEnd)
	}
}

// PanTo moves the center keeping the zoom
func (m *Map) PanTo(center geo.LatLng) {
	m.SetView(center, m.Zoom())
}

// SetZoom changes the zoom keeping the center
func (m *Map) SetZoom(zoom int) {
	m.SetView(m.Center(), zoom)
}

func (m *Map) Center() geo.LatLng {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.center
}

func (m *Map) Zoom() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zoom
}

// Size returns the viewport size in pixels
func (m *Map) Size() (width, height int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.width, m.height
}

func (m *Map) Bounds() geo.Bounds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ViewBounds(m.center, m.zoom, m.width, m.height)
}

func (m *Map) On(event ports.MapEvent, handler func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removed {
		return
	}
	m.handlers[event] = append(m.handlers[event], handler)
}

func (m *Map) fire(event ports.MapEvent) {
	m.mu.RLock()
	handlers := append([]func(){}, m.handlers[event]...)
	m.mu.RUnlock()

	for _, h := range handlers {
		h()
	}
}

// NewLayer creates a flat marker layer not yet attached to the map
func (m *Map) NewLayer() ports.MarkerLayer {
	return NewFlatLayer()
}

func (m *Map) AddLayer(layer ports.MarkerLayer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removed || layer == nil {
		return
	}
	m.layers = append(m.layers, layer)
}

// Layers returns the attached layers in insertion order
func (m *Map) Layers() []ports.MarkerLayer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ports.MarkerLayer(nil), m.layers...)
}

// Marker finds a rendered marker by id across all layers
func (m *Map) Marker(id string) (ports.MarkerHandle, bool) {
	for _, layer := range m.Layers() {
		for _, marker := range layer.Markers() {
			if marker.ID() == id {
				return marker, true
			}
		}
	}
	return nil, false
}

// ClickMarker dispatches a click to the marker with id
func (m *Map) ClickMarker(id string) bool {
	marker, ok := m.Marker(id)
	if !ok {
		return false
	}
	marker.Click()
	return true
}

// Remove detaches every layer and handler. The map is inert afterwards.
func (m *Map) Remove() {
	m.mu.Lock()
	layers := m.layers
	m.layers = nil
	m.handlers = make(map[ports.MapEvent][]func())
	m.removed = true
	m.mu.Unlock()

	for _, layer := range layers {
		layer.ClearLayers()
	}
}
