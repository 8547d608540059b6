package infrastructure

import (
	"context"
	"sync"

	"weathermap.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	checkers       map[string]ports.HealthChecker
	configProvider ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	WeatherAPIChecker ports.HealthChecker
	GeodataChecker    ports.HealthChecker
	CacheChecker      ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	checkers := make(map[string]ports.HealthChecker)
	if config.WeatherAPIChecker != nil {
		checkers["weatherAPI"] = config.WeatherAPIChecker
	}
	if config.GeodataChecker != nil {
		checkers["geodataAPI"] = config.GeodataChecker
	}
	if config.CacheChecker != nil {
		checkers["cache"] = config.CacheChecker
	}

	return &SystemHealthChecker{
		checkers:       checkers,
		configProvider: config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components concurrently
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus, len(s.checkers)+1)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for name, checker := range s.checkers {
		wg.Add(1)
		go func(name string, checker ports.HealthChecker) {
			defer wg.Done()
			status := checker.Check(ctx)
			mu.Lock()
			results[name] = status
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	if s.configProvider != nil {
		mapConfig := s.configProvider.GetMapConfig()
		sessionConfig := s.configProvider.GetSessionConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    statusHealthy,
			Details: map[string]interface{}{
				"defaultZoom": mapConfig.DefaultZoom,
				"clustering":  mapConfig.EnableClustering,
				"maxSessions": sessionConfig.MaxSessions,
			},
		}
	}

	return results
}

// Healthy reports whether every component in results is healthy or degraded
func Healthy(results map[string]ports.HealthStatus) bool {
	for _, status := range results {
		if status.Status == statusUnhealthy {
			return false
		}
	}
	return true
}
