package infrastructure

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"weathermap.app/internal/ports"
)

// MetricsCollectorAdapter implements the MetricsCollector port on Prometheus
// and aggregates a JSON summary for the metrics endpoint
type MetricsCollectorAdapter struct {
	weatherMetrics ports.WeatherMetrics

	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	cacheHitRatio    prometheus.Gauge
	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	loaderAttempts   *prometheus.CounterVec
	renderedMarkers  *prometheus.GaugeVec
	activeSessions   prometheus.Gauge

	hits     atomic.Int64
	misses   atomic.Int64
	sessions atomic.Int64

	mu       sync.Mutex
	attempts map[string]int64
}

// MetricsCollectorConfig holds configuration for creating the metrics collector
type MetricsCollectorConfig struct {
	WeatherMetrics ports.WeatherMetrics
	// Registerer defaults to prometheus.DefaultRegisterer
	Registerer prometheus.Registerer
}

// NewMetricsCollectorAdapter creates a new metrics collector adapter
func NewMetricsCollectorAdapter(config MetricsCollectorConfig) *MetricsCollectorAdapter {
	reg := config.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &MetricsCollectorAdapter{
		weatherMetrics: config.WeatherMetrics,
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "weathermap_weather_cache_hits_total",
			Help: "The total number of weather cache hits",
		}),
		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "weathermap_weather_cache_misses_total",
			Help: "The total number of weather cache misses",
		}),
		cacheHitRatio: factory.NewGauge(prometheus.GaugeOpts{
			Name: "weathermap_weather_cache_hit_ratio",
			Help: "Weather cache hit ratio (hits/total lookups)",
		}),
		upstreamCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weathermap_upstream_calls_total",
			Help: "Upstream calls by provider and outcome",
		}, []string{"provider", "outcome"}),
		upstreamDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weathermap_upstream_duration_seconds",
			Help:    "Upstream call duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		loaderAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "weathermap_loader_attempts_total",
			Help: "Map library load attempts by outcome",
		}, []string{"outcome"}),
		renderedMarkers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "weathermap_rendered_markers",
			Help: "Markers currently rendered per map session",
		}, []string{"session"}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "weathermap_active_sessions",
			Help: "Open map sessions",
		}),
		attempts: make(map[string]int64),
	}
}

// SetWeatherMetrics attaches the provider summary once the gateways exist
func (m *MetricsCollectorAdapter) SetWeatherMetrics(weatherMetrics ports.WeatherMetrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weatherMetrics = weatherMetrics
}

func (m *MetricsCollectorAdapter) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Inc()
	m.hits.Add(1)
	m.updateHitRatio()
}

func (m *MetricsCollectorAdapter) RecordCacheMiss(ctx context.Context) {
	m.cacheMisses.Inc()
	m.misses.Add(1)
	m.updateHitRatio()
}

func (m *MetricsCollectorAdapter) updateHitRatio() {
	hits, misses := m.hits.Load(), m.misses.Load()
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

func (m *MetricsCollectorAdapter) RecordUpstreamCall(ctx context.Context, provider string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.upstreamCalls.WithLabelValues(provider, outcome).Inc()
	m.upstreamDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *MetricsCollectorAdapter) RecordLoaderAttempt(outcome string) {
	m.loaderAttempts.WithLabelValues(outcome).Inc()

	m.mu.Lock()
	m.attempts[outcome]++
	m.mu.Unlock()
}

func (m *MetricsCollectorAdapter) SetRenderedMarkers(session string, count int) {
	m.renderedMarkers.WithLabelValues(session).Set(float64(count))
}

// ForgetSession drops the per-session series of a closed session
func (m *MetricsCollectorAdapter) ForgetSession(session string) {
	m.renderedMarkers.DeleteLabelValues(session)
}

func (m *MetricsCollectorAdapter) SetActiveSessions(count int) {
	m.activeSessions.Set(float64(count))
	m.sessions.Store(int64(count))
}

// GetMetrics returns aggregated metrics from all monitored services
func (m *MetricsCollectorAdapter) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	m.mu.Lock()
	weatherMetrics := m.weatherMetrics
	attempts := make(map[string]int64, len(m.attempts))
	for outcome, n := range m.attempts {
		attempts[outcome] = n
	}
	m.mu.Unlock()

	metrics := map[string]interface{}{
		"sessions": map[string]interface{}{
			"active": m.sessions.Load(),
		},
		"loader": attempts,
	}

	if weatherMetrics == nil {
		return metrics, nil
	}

	metrics["providers"] = weatherMetrics.GetProviderInfo()
	if cacheStats, err := weatherMetrics.GetCacheMetrics(); err == nil {
		metrics["cache"] = map[string]interface{}{
			"hits":      cacheStats.Hits,
			"misses":    cacheStats.Misses,
			"total_ops": cacheStats.TotalOps,
			"hit_ratio": cacheStats.HitRatio,
			"updated":   cacheStats.LastUpdated,
		}
	}

	return metrics, nil
}
