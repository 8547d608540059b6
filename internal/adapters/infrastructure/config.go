package infrastructure

import (
	"time"

	"weathermap.app/internal/config"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
		Mode: c.config.Server.Mode,
	}
}

// GetWeatherConfig returns weather gateway configuration. A zero TTL keeps
// snapshots for the lifetime of the process.
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		EnableCache: c.config.Weather.EnableCache,
		CacheTTL:    time.Duration(c.config.Weather.CacheTTLMinutes) * time.Minute,
		Timezone:    c.config.Weather.Timezone,
	}
}

// GetGeodataConfig returns geodata gateway configuration
func (c *ConfigProviderAdapter) GetGeodataConfig() ports.GeodataConfig {
	return ports.GeodataConfig{
		MaxAttempts: c.config.Geodata.MaxAttempts,
		BaseDelay:   millis(c.config.Geodata.BaseDelayMS),
	}
}

// GetMapConfig returns map session defaults
func (c *ConfigProviderAdapter) GetMapConfig() ports.MapConfig {
	m := c.config.Map
	return ports.MapConfig{
		DefaultCenter:    geo.LatLng{Lat: m.DefaultLat, Lng: m.DefaultLng},
		DefaultZoom:      m.DefaultZoom,
		Width:            m.Width,
		Height:           m.Height,
		DebounceQuiet:    millis(m.DebounceMS),
		SettleDelay:      millis(m.SettleMS),
		EnableClustering: m.EnableClustering,
		InitAttempts:     m.InitAttempts,
		InitBaseDelay:    millis(m.InitBaseDelayMS),
	}
}

// GetLoaderConfig returns map library loader configuration
func (c *ConfigProviderAdapter) GetLoaderConfig() ports.LoaderConfig {
	return ports.LoaderConfig{
		MaxAttempts: c.config.Loader.MaxAttempts,
		BaseDelay:   millis(c.config.Loader.BaseDelayMS),
	}
}

// GetCacheConfig returns cache configuration
func (c *ConfigProviderAdapter) GetCacheConfig() ports.CacheConfig {
	return ports.CacheConfig{
		Type: c.config.Cache.Type.String(),
		Redis: ports.RedisConfig{
			Addr:         c.config.Cache.Redis.Addr,
			Password:     c.config.Cache.Redis.Password,
			DB:           c.config.Cache.Redis.DB,
			DialTimeout:  c.config.Cache.Redis.DialTimeout,
			ReadTimeout:  c.config.Cache.Redis.ReadTimeout,
			WriteTimeout: c.config.Cache.Redis.WriteTimeout,
		},
	}
}

// GetSessionConfig returns map session lifecycle configuration
func (c *ConfigProviderAdapter) GetSessionConfig() ports.SessionConfig {
	s := c.config.Sessions
	return ports.SessionConfig{
		IdleTimeout:  time.Duration(s.IdleTimeoutMinutes) * time.Minute,
		ReapInterval: time.Duration(s.ReapIntervalMinutes) * time.Minute,
		MaxSessions:  s.MaxSessions,
	}
}
