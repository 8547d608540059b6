// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to map sessions
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	// SheetHeartbeat is the keepalive interval of bottom sheet streams
	SheetHeartbeat time.Duration
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router           *gin.Engine
	config           ServerConfig
	sessions         SessionManager
	weather          WeatherLookup
	metricsCollector MetricsCollector
	healthChecker    ports.SystemHealthChecker
}

// MapSession is the part of a map controller the HTTP layer drives
type MapSession interface {
	ID() string
	View(ctx context.Context) (mapview.View, error)
	SetViewport(center geo.LatLng, zoom int) error
	Markers() (geo.FeatureCollection, error)
	Click(ctx context.Context, placeID string) (*weather.Snapshot, error)
	Sheet() *mapview.Sheet
}

// SessionManager owns the open map sessions
type SessionManager interface {
	Create(ctx context.Context, opts mapview.Options) (MapSession, error)
	Get(id string) (MapSession, error)
	Close(id string) error
}

// WeatherLookup resolves weather for an arbitrary place through the shared cache
type WeatherLookup interface {
	Fetch(ctx context.Context, place geo.Place) *weather.Snapshot
}

type MetricsCollector interface {
	GetMetrics(ctx context.Context) (map[string]interface{}, error)
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config              ServerConfig
	Sessions            SessionManager
	Weather             WeatherLookup
	MetricsCollector    MetricsCollector
	SystemHealthChecker ports.SystemHealthChecker
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}
	if err := RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	if opts.Config.SheetHeartbeat <= 0 {
		opts.Config.SheetHeartbeat = 30 * time.Second
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &HTTPServerAdapter{
		router:           router,
		config:           opts.Config,
		sessions:         opts.Sessions,
		weather:          opts.Weather,
		metricsCollector: opts.MetricsCollector,
		healthChecker:    opts.SystemHealthChecker,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Sessions == nil {
		return errors.NewValidationError("session manager is required")
	}
	if opts.Weather == nil {
		return errors.NewValidationError("weather lookup is required")
	}
	if opts.MetricsCollector == nil {
		return errors.NewValidationError("metrics collector is required")
	}
	if opts.SystemHealthChecker == nil {
		return errors.NewValidationError("system health checker is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/sessions", s.createSession)
		api.GET("/sessions/:id", s.getSession)
		api.DELETE("/sessions/:id", s.deleteSession)
		api.PUT("/sessions/:id/viewport", s.setViewport)
		api.GET("/sessions/:id/markers", s.getMarkers)
		api.POST("/sessions/:id/markers/:kind/:osmId/click", s.clickMarker)
		api.GET("/sessions/:id/sheet", s.streamSheet)

		api.GET("/weather", s.getWeather)
		api.GET("/health", s.getHealth)
		api.GET("/metrics", s.getMetrics)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}
