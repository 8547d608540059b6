package headless

import (
	"sync"

	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
)

// Marker is a rendered marker
type Marker struct {
	spec ports.MarkerSpec
}

func (m *Marker) ID() string           { return m.spec.ID }
func (m *Marker) Position() geo.LatLng { return m.spec.Position }
func (m *Marker) IconKey() string      { return m.spec.IconKey }
func (m *Marker) Label() string        { return m.spec.Label }

// Click runs the marker's click handler, if any
func (m *Marker) Click() {
	if m.spec.OnClick != nil {
		m.spec.OnClick()
	}
}

// FlatLayer renders every marker individually
type FlatLayer struct {
	mu      sync.RWMutex
	markers []*Marker
}

func NewFlatLayer() *FlatLayer {
	return &FlatLayer{}
}

// AddMarker renders spec. The layer does not deduplicate by id.
func (l *FlatLayer) AddMarker(spec ports.MarkerSpec) ports.MarkerHandle {
	marker := &Marker{spec: spec}
	l.mu.Lock()
	l.markers = append(l.markers, marker)
	l.mu.Unlock()
	return marker
}

func (l *FlatLayer) RemoveMarker(handle ports.MarkerHandle) {
	target, ok := handle.(*Marker)
	if !ok {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i, m := range l.markers {
		if m == target {
			l.markers = append(l.markers[:i], l.markers[i+1:]...)
			return
		}
	}
}

func (l *FlatLayer) ClearLayers() {
	l.mu.Lock()
	l.markers = nil
	l.mu.Unlock()
}

func (l *FlatLayer) Markers() []ports.MarkerHandle {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ports.MarkerHandle, len(l.markers))
	for i, m := range l.markers {
		out[i] = m
	}
	return out
}
