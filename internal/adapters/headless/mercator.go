package headless

import (
	"math"

	"weathermap.app/internal/core/geo"
)

const (
	tileSize  = 256.0
	maxLat    = 85.05112878
	MinZoom   = 0
	MaxZoom   = 22
	fullWorld = 360.0
)

// project converts a coordinate to world pixel space at zoom
func project(p geo.LatLng, zoom int) (x, y float64) {
	scale := tileSize * math.Pow(2, float64(zoom))
	lat := math.Max(-maxLat, math.Min(maxLat, p.Lat))
	latRad := lat * math.Pi / 180

	x = (p.Lng + 180) / 360 * scale
	y = (0.5 - math.Log(math.Tan(latRad*0.5+math.Pi/4))/math.Pi*0.5) * scale
	return x, y
}

// unproject converts world pixel space back to a coordinate. Longitude is not wrapped.
func unproject(x, y float64, zoom int) geo.LatLng {
	scale := tileSize * math.Pow(2, float64(zoom))
	lng := x/scale*360 - 180
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*y/scale)))
	return geo.LatLng{Lat: latRad * 180 / math.Pi, Lng: lng}
}

func wrapLng(lng float64) float64 {
	for lng > 180 {
		lng -= fullWorld
	}
	for lng < -180 {
		lng += fullWorld
	}
	return lng
}

func clampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// ViewBounds computes the geographic area a width x height pixel viewport
// shows around center at zoom. A view wider than the world spans all longitudes.
func ViewBounds(center geo.LatLng, zoom, width, height int) geo.Bounds {
	cx, cy := project(center, zoom)
	halfW, halfH := float64(width)/2, float64(height)/2

	nw := unproject(cx-halfW, cy-halfH, zoom)
	se := unproject(cx+halfW, cy+halfH, zoom)

	b := geo.Bounds{
		North: math.Min(nw.Lat, maxLat),
		South: math.Max(se.Lat, -maxLat),
	}
	if se.Lng-nw.Lng >= fullWorld {
		b.West, b.East = -180, 180
		return b
	}
	b.West, b.East = wrapLng(nw.Lng), wrapLng(se.Lng)
	return b
}
