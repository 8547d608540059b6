package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"weathermap.app/internal/adapters/external"
	"weathermap.app/internal/adapters/headless"
	"weathermap.app/internal/adapters/infrastructure"
	"weathermap.app/internal/config"
	"weathermap.app/internal/core/forecast"
	"weathermap.app/internal/core/maploader"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/internal/core/places"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/logger"
)

type DependencyContainer struct {
	config *config.Config
	ports  *ports.ApplicationPorts

	cache      external.ManagedCache
	fileLogger *infrastructure.FileLoggerAdapter
	metrics    *infrastructure.MetricsCollectorAdapter

	forecast *forecast.Gateway
	places   *places.Gateway
	loader   *maploader.Loader
	health   *infrastructure.SystemHealthChecker
}

// DependencyOptions overrides parts of the wiring, mostly for tests
type DependencyOptions struct {
	// Registerer receives the Prometheus metrics; defaults to prometheus.DefaultRegisterer
	Registerer prometheus.Registerer
	// Importer replaces the headless map library importer
	Importer ports.LibraryImporter
	// Interactive reports whether map sessions get a rendering surface; defaults to true
	Interactive *bool
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	container := &DependencyContainer{config: cfg}

	if err := container.initializePorts(opts); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	if err := container.initializeGateways(opts); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("initialize gateways: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeLogger() ports.Logger {
	var log ports.Logger = infrastructure.NewSlogLoggerAdapter(nil)

	// the upstream log file mirrors the console log
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath, logger.ParseLevel(c.config.LogLevel))
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLogger = fileLogger
			log = infrastructure.TeeLogger{log, fileLogger}
			slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}
	return log
}

func (c *DependencyContainer) initializePorts(opts DependencyOptions) error {
	slog.Info("Initializing ports...")

	log := c.initializeLogger()
	configProvider := infrastructure.NewConfigProviderAdapter(c.config)

	breaker := external.BreakerParams{
		Failures: c.config.Weather.BreakerFailures,
		Timeout:  time.Duration(c.config.Weather.BreakerTimeoutSeconds) * time.Second,
	}

	openMeteo := external.NewOpenMeteoProviderAdapter(external.OpenMeteoProviderParams{
		BaseURL: c.config.Weather.BaseURL,
		Timeout: time.Duration(c.config.Weather.TimeoutSeconds) * time.Second,
		Breaker: breaker,
	})
	var weatherProvider ports.WeatherProvider = openMeteo

	// Overpass mirrors form a Chain of Responsibility behind the primary endpoint
	geodataTimeout := time.Duration(c.config.Geodata.TimeoutSeconds) * time.Second
	mirrors := make([]ports.PlaceProvider, 0, len(c.config.Geodata.FallbackURLs)+1)
	mirrors = append(mirrors, external.NewOverpassProviderAdapter(external.OverpassProviderParams{
		Name:    "overpass",
		BaseURL: c.config.Geodata.BaseURL,
		Timeout: geodataTimeout,
		Breaker: breaker,
	}))
	for i, mirror := range c.config.Geodata.FallbackURLs {
		mirrors = append(mirrors, external.NewOverpassProviderAdapter(external.OverpassProviderParams{
			Name:    fmt.Sprintf("overpass-mirror-%d", i+1),
			BaseURL: mirror,
			Timeout: geodataTimeout,
			Breaker: breaker,
		}))
	}
	chain := external.NewPlaceProviderChain(log, mirrors...)
	var placeProvider ports.PlaceProvider = chain

	if c.config.Weather.EnableLogging {
		weatherProvider = external.NewWeatherProviderLoggingDecorator(weatherProvider, log)
		placeProvider = external.NewPlaceProviderLoggingDecorator(placeProvider, log)
		slog.Info("Upstream provider logging enabled")
	}

	cache, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		slog.Error("Failed to create cache provider", "error", err)
		return fmt.Errorf("create cache provider: %w", err)
	}
	c.cache = cache
	slog.Info("Cache provider initialized",
		"type", c.config.Cache.Type.String(),
		"redis_addr", c.config.Cache.Redis.Addr)

	weatherMetrics := external.NewWeatherMetricsAdapter(cache, c.config.Cache.Type.String(), weatherProvider, chain)

	c.metrics = infrastructure.NewMetricsCollectorAdapter(infrastructure.MetricsCollectorConfig{
		WeatherMetrics: weatherMetrics,
		Registerer:     opts.Registerer,
	})

	importer := opts.Importer
	if importer == nil {
		var importOpts []headless.ImporterOption
		if !c.config.Map.EnableClustering {
			importOpts = append(importOpts, headless.WithoutClustering())
		}
		if c.config.Loader.SimulateBrokenImport {
			importOpts = append(importOpts, headless.WithPartialInit(-1))
			slog.Warn("Map library imports will be missing their map constructor")
		}
		importer = headless.NewImporter(importOpts...)
	}

	c.ports = &ports.ApplicationPorts{
		WeatherProvider: weatherProvider,
		WeatherCache:    external.NewWeatherCacheAdapter(cache),
		WeatherMetrics:  weatherMetrics,
		PlaceProvider:   placeProvider,
		LibraryImporter: importer,
		CacheMetrics:    cache,
		ConfigProvider:  configProvider,
		Logger:          log,
		Metrics:         c.metrics,
	}

	c.health = infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		WeatherAPIChecker: infrastructure.NewWeatherAPIHealthChecker(openMeteo),
		GeodataChecker:    infrastructure.NewGeodataHealthChecker(chain),
		CacheChecker:      infrastructure.NewCacheHealthChecker(cache, c.config.Cache.Type.String()),
		ConfigProvider:    configProvider,
	})

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) initializeGateways(opts DependencyOptions) error {
	p := c.ports

	forecastGateway, err := forecast.NewGateway(forecast.Dependencies{
		Provider: p.WeatherProvider,
		Cache:    p.WeatherCache,
		Config:   p.ConfigProvider,
		Logger:   p.Logger,
		Metrics:  p.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create forecast gateway: %w", err)
	}
	c.forecast = forecastGateway

	placesGateway, err := places.NewGateway(places.Dependencies{
		Provider: p.PlaceProvider,
		Config:   p.ConfigProvider,
		Logger:   p.Logger,
		Metrics:  p.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create places gateway: %w", err)
	}
	c.places = placesGateway

	interactive := true
	if opts.Interactive != nil {
		interactive = *opts.Interactive
	}
	loader, err := maploader.NewLoader(maploader.Dependencies{
		Importer:    p.LibraryImporter,
		Environment: maploader.StaticEnvironment(interactive),
		Slot:        maploader.NewSlot(),
		Config:      p.ConfigProvider,
		Logger:      p.Logger,
		Metrics:     p.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create map library loader: %w", err)
	}
	c.loader = loader

	return nil
}

// NewController builds an unstarted map controller sharing the container's gateways and loader
func (c *DependencyContainer) NewController(id string, opts mapview.Options) (*mapview.Controller, error) {
	return mapview.NewController(mapview.Dependencies{
		SessionID: id,
		Container: opts.Container,
		Locale:    opts.Locale,
		Width:     opts.Width,
		Height:    opts.Height,
		Loader:    c.loader,
		Places:    c.places,
		Weather:   c.forecast,
		Config:    c.ports.ConfigProvider,
		Logger:    c.ports.Logger,
		Metrics:   c.ports.Metrics,
	})
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

func (c *DependencyContainer) Forecast() *forecast.Gateway {
	return c.forecast
}

func (c *DependencyContainer) MetricsCollector() *infrastructure.MetricsCollectorAdapter {
	return c.metrics
}

func (c *DependencyContainer) HealthChecker() *infrastructure.SystemHealthChecker {
	return c.health
}

// Cleanup releases the cache connection and the log file
func (c *DependencyContainer) Cleanup() {
	if closer, ok := c.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("Error closing cache", "error", err)
		}
	}
	if c.fileLogger != nil {
		if err := c.fileLogger.Close(); err != nil {
			slog.Warn("Error closing log file", "error", err)
		}
	}
}
