package markers

import (
	"weathermap.app/internal/core/maploader"
	"weathermap.app/internal/ports"
)

// Sink is where rendered markers go. The implementation is picked once per map
// from the library capability.
type Sink interface {
	Add(spec ports.MarkerSpec) ports.MarkerHandle
	Remove(handle ports.MarkerHandle)
	Clear()
	Mode() maploader.Capability
}

type flatSink struct {
	layer ports.MarkerLayer
}

// NewFlatSink renders markers directly onto a new layer of m
func NewFlatSink(m ports.MapInstance) Sink {
	layer := m.NewLayer()
	m.AddLayer(layer)
	return &flatSink{layer: layer}
}

func (s *flatSink) Add(spec ports.MarkerSpec) ports.MarkerHandle { return s.layer.AddMarker(spec) }
func (s *flatSink) Remove(handle ports.MarkerHandle)             { s.layer.RemoveMarker(handle) }
func (s *flatSink) Clear()                                       { s.layer.ClearLayers() }
func (s *flatSink) Mode() maploader.Capability                   { return maploader.CapabilityFlat }

type clusterSink struct {
	group ports.ClusterLayer
}

// NewClusterSink routes every marker through a cluster group added to m
func NewClusterSink(m ports.MapInstance, newGroup ports.ClusterConstructor, opts ports.ClusterOptions) Sink {
	group := newGroup(opts)
	m.AddLayer(group)
	return &clusterSink{group: group}
}

func (s *clusterSink) Add(spec ports.MarkerSpec) ports.MarkerHandle { return s.group.AddMarker(spec) }
func (s *clusterSink) Remove(handle ports.MarkerHandle)             { s.group.RemoveMarker(handle) }
func (s *clusterSink) Clear()                                       { s.group.ClearLayers() }
func (s *clusterSink) Mode() maploader.Capability                   { return maploader.CapabilityClustered }

// Clusters exposes the grouping at zoom
func (s *clusterSink) Clusters(zoom int) []ports.Cluster {
	return s.group.Clusters(zoom)
}

// NewSink picks the sink matching the library capability. Clustering can be
// switched off even when the library supports it.
func NewSink(m ports.MapInstance, handle maploader.Handle, enableClustering bool, opts ports.ClusterOptions) Sink {
	if enableClustering && handle.Capability == maploader.CapabilityClustered {
		if newGroup := handle.Library.ClusterConstructor(); newGroup != nil {
			return NewClusterSink(m, newGroup, opts)
		}
	}
	return NewFlatSink(m)
}
