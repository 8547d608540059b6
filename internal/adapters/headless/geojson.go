package headless

import (
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
)

func markerFeature(m ports.MarkerHandle) geo.Feature {
	return geo.Feature{
		Type:     "Feature",
		ID:       m.ID(),
		Geometry: geo.Point(m.Position()),
		Properties: map[string]interface{}{
			"kind":    "marker",
			"placeId": m.ID(),
			"iconKey": m.IconKey(),
			"label":   m.Label(),
		},
	}
}

func clusterFeature(c ports.Cluster) geo.Feature {
	return geo.Feature{
		Type:     "Feature",
		ID:       c.Key,
		Geometry: geo.Point(c.Center),
		Properties: map[string]interface{}{
			"kind":      "cluster",
			"count":     c.Count,
			"markerIds": c.MarkerIDs,
		},
	}
}

// GeoJSON renders what the map currently shows: individual markers of flat
// layers and, for cluster layers, clusters at the current zoom
func (m *Map) GeoJSON() geo.FeatureCollection {
	fc := geo.NewFeatureCollection()
	zoom := m.Zoom()

	for _, layer := range m.Layers() {
		clustered, ok := layer.(ports.ClusterLayer)
		if !ok {
			for _, marker := range layer.Markers() {
				fc.Features = append(fc.Features, markerFeature(marker))
			}
			continue
		}

		byID := make(map[string]ports.MarkerHandle)
		for _, marker := range clustered.Markers() {
			byID[marker.ID()] = marker
		}
		for _, c := range clustered.Clusters(zoom) {
			if c.Count == 1 {
				if marker, found := byID[c.MarkerIDs[0]]; found {
					fc.Features = append(fc.Features, markerFeature(marker))
					continue
				}
			}
			fc.Features = append(fc.Features, clusterFeature(c))
		}
	}
	return fc
}
