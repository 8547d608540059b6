package infrastructure

import (
	"context"

	"weathermap.app/internal/ports"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

// breakerReporter is implemented by upstream providers behind a circuit breaker
type breakerReporter interface {
	BreakerState() string
}

// upstreamStatus derives a health status from a provider's circuit breaker
func upstreamStatus(component, providerName string, provider interface{}) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: component,
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"provider": providerName,
		},
	}

	reporter, ok := provider.(breakerReporter)
	if !ok {
		return status
	}

	state := reporter.BreakerState()
	status.Details["circuit"] = state
	switch state {
	case "open":
		status.Status = statusUnhealthy
		status.Error = "circuit breaker is open"
	case "half-open":
		status.Status = statusDegraded
	}
	return status
}

// WeatherAPIHealthChecker reports the forecast upstream
type WeatherAPIHealthChecker struct {
	provider ports.WeatherProvider
}

// NewWeatherAPIHealthChecker creates a new weather API health checker
func NewWeatherAPIHealthChecker(provider ports.WeatherProvider) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{provider: provider}
}

func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	if w.provider == nil {
		return ports.HealthStatus{Component: "weatherAPI", Status: statusUnhealthy, Error: "weather provider is not available"}
	}
	return upstreamStatus("weatherAPI", w.provider.GetProviderName(), w.provider)
}

// GeodataHealthChecker reports the place search upstream
type GeodataHealthChecker struct {
	provider ports.PlaceProvider
}

// NewGeodataHealthChecker creates a new geodata health checker
func NewGeodataHealthChecker(provider ports.PlaceProvider) *GeodataHealthChecker {
	return &GeodataHealthChecker{provider: provider}
}

func (g *GeodataHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	if g.provider == nil {
		return ports.HealthStatus{Component: "geodataAPI", Status: statusUnhealthy, Error: "geodata provider is not available"}
	}
	return upstreamStatus("geodataAPI", g.provider.GetProviderName(), g.provider)
}

// Pinger is a cache backend that can report liveness
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker pings the weather cache backend
type CacheHealthChecker struct {
	cache     Pinger
	cacheType string
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(cache Pinger, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{cache: cache, cacheType: cacheType}
}

func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    statusHealthy,
		Details: map[string]interface{}{
			"type": c.cacheType,
		},
	}

	if c.cache == nil {
		status.Details["enabled"] = false
		return status
	}
	if err := c.cache.Ping(ctx); err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
	}
	return status
}
