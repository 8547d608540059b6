package headless

import (
	"sort"

	"github.com/uber/h3-go/v4"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
)

const maxH3Resolution = 15

// ClusterLayer groups markers that share an H3 cell at a resolution derived
// from the map zoom
type ClusterLayer struct {
	*FlatLayer
	opts ports.ClusterOptions
}

func NewClusterLayer(opts ports.ClusterOptions) *ClusterLayer {
	return &ClusterLayer{FlatLayer: NewFlatLayer(), opts: opts}
}

// resolutionForZoom maps a map zoom onto an H3 resolution whose cells are
// roughly a marker icon wide
func resolutionForZoom(zoom int) int {
	res := zoom - 3
	if res < 0 {
		return 0
	}
	if res > maxH3Resolution {
		return maxH3Resolution
	}
	return res
}

// Clusters groups the layer's markers for zoom. Markers whose cell cannot be
// computed, or every marker once clustering is disabled at zoom, form
// singleton clusters.
func (l *ClusterLayer) Clusters(zoom int) []ports.Cluster {
	markers := l.Markers()
	if l.opts.DisableClusteringAtZoom > 0 && zoom >= l.opts.DisableClusteringAtZoom {
		return singletons(markers)
	}

	res := resolutionForZoom(zoom)
	groups := make(map[string][]ports.MarkerHandle)
	var order []string

	for _, m := range markers {
		pos := m.Position()
		key := "marker:" + m.ID()
		if cell, err := h3.LatLngToCell(h3.NewLatLng(pos.Lat, pos.Lng), res); err == nil {
			key = cell.String()
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}

	clusters := make([]ports.Cluster, 0, len(order))
	for _, key := range order {
		clusters = append(clusters, newCluster(key, groups[key]))
	}
	return clusters
}

func singletons(markers []ports.MarkerHandle) []ports.Cluster {
	clusters := make([]ports.Cluster, 0, len(markers))
	for _, m := range markers {
		clusters = append(clusters, newCluster("marker:"+m.ID(), []ports.MarkerHandle{m}))
	}
	return clusters
}

func newCluster(key string, members []ports.MarkerHandle) ports.Cluster {
	var lat, lng float64
	ids := make([]string, 0, len(members))
	for _, m := range members {
		p := m.Position()
		lat += p.Lat
		lng += p.Lng
		ids = append(ids, m.ID())
	}
	sort.Strings(ids)

	n := float64(len(members))
	return ports.Cluster{
		Key:       key,
		Center:    geo.LatLng{Lat: lat / n, Lng: lng / n},
		Count:     len(members),
		MarkerIDs: ids,
	}
}
