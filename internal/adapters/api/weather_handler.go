package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/core/geo"
	"weathermap.app/pkg/errors"
)

// WeatherQuery selects a coordinate for an ad hoc weather lookup
type WeatherQuery struct {
	Lat  *float64 `form:"lat" binding:"required,latitude"`
	Lon  *float64 `form:"lon" binding:"required,longitude"`
	Name string   `form:"name" binding:"max=128"`
}

// getWeather handles GET /api/weather requests
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	var query WeatherQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		s.handleError(c, bindingError(err))
		return
	}

	place := geo.Place{
		ID:          fmt.Sprintf("coord/%.4f,%.4f", *query.Lat, *query.Lon),
		DisplayName: query.Name,
		Latitude:    *query.Lat,
		Longitude:   *query.Lon,
	}
	if place.DisplayName == "" {
		place.DisplayName = fmt.Sprintf("%.4f, %.4f", place.Latitude, place.Longitude)
	}

	slog.Debug("Getting weather for coordinate", "place", place.ID)

	snapshot := s.weather.Fetch(c.Request.Context(), place)
	if snapshot == nil {
		s.handleError(c, errors.NewExternalAPIError("weather lookup failed for "+place.ID, nil))
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
