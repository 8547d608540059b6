package ports

import (
	"context"
	"time"

	"weathermap.app/internal/core/geo"
)

// WeatherConfig represents weather gateway configuration
type WeatherConfig struct {
	EnableCache bool
	CacheTTL    time.Duration
	Timezone    string
}

// GeodataConfig represents geodata gateway configuration
type GeodataConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// MapConfig represents map session defaults
type MapConfig struct {
	DefaultCenter    geo.LatLng
	DefaultZoom      int
	Width            int
	Height           int
	DebounceQuiet    time.Duration
	SettleDelay      time.Duration
	EnableClustering bool
	InitAttempts     int
	InitBaseDelay    time.Duration
}

// LoaderConfig represents map library loader configuration
type LoaderConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
	Mode string
}

// CacheConfig represents cache configuration
type CacheConfig struct {
	Type  string
	Redis RedisConfig
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  int
	ReadTimeout  int
	WriteTimeout int
}

// SessionConfig represents map session lifecycle configuration
type SessionConfig struct {
	IdleTimeout  time.Duration
	ReapInterval time.Duration
	MaxSessions  int
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetGeodataConfig() GeodataConfig
	GetMapConfig() MapConfig
	GetLoaderConfig() LoaderConfig
	GetServerConfig() ServerConfig
	GetCacheConfig() CacheConfig
	GetSessionConfig() SessionConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// MetricsCollector defines the contract for metrics collection
type MetricsCollector interface {
	RecordCacheHit(ctx context.Context)
	RecordCacheMiss(ctx context.Context)
	RecordUpstreamCall(ctx context.Context, provider string, success bool, duration time.Duration)
	RecordLoaderAttempt(outcome string)
	SetRenderedMarkers(session string, count int)
	SetActiveSessions(count int)
}
