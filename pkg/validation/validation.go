package validation

import (
	"math"
	"strings"
)

// IsValidLatitude reports whether lat is a finite latitude in degrees
func IsValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

// IsValidLongitude reports whether lng is a finite longitude in degrees
func IsValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180 && lng <= 180
}

// IsValidZoom checks the zoom range supported by slippy-map tiles
func IsValidZoom(zoom int) bool {
	return zoom >= 0 && zoom <= 22
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
