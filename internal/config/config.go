package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"weathermap.app/pkg/errors"
	"weathermap.app/pkg/validation"
)

const (
	maxRedisDB         = 15
	maxCacheTTLMinutes = 1440
	maxPortNumber      = 65535
	maxAttempts        = 10
	maxViewportPixels  = 8192
)

// Config represents the application configuration structure
type Config struct {
	Server   ServerConfig   `split_words:"true"`
	Map      MapConfig      `split_words:"true"`
	Loader   LoaderConfig   `split_words:"true"`
	Weather  WeatherConfig  `split_words:"true"`
	Geodata  GeodataConfig  `split_words:"true"`
	Cache    CacheConfig    `split_words:"true"`
	Sessions SessionsConfig `split_words:"true"`
	LogLevel string         `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Port int    `envconfig:"SERVER_PORT" default:"8080"`
	Mode string `envconfig:"GIN_MODE" default:"release"`
}

// MapConfig holds the default view and timing of map sessions
type MapConfig struct {
	DefaultLat       float64 `envconfig:"MAP_DEFAULT_LAT" default:"40.4168"`
	DefaultLng       float64 `envconfig:"MAP_DEFAULT_LNG" default:"-3.7038"`
	DefaultZoom      int     `envconfig:"MAP_DEFAULT_ZOOM" default:"6"`
	Width            int     `envconfig:"MAP_VIEWPORT_WIDTH" default:"1280"`
	Height           int     `envconfig:"MAP_VIEWPORT_HEIGHT" default:"800"`
	DebounceMS       int     `envconfig:"MAP_DEBOUNCE_MS" default:"500"`
	SettleMS         int     `envconfig:"MAP_SETTLE_MS" default:"1000"`
	EnableClustering bool    `envconfig:"MAP_ENABLE_CLUSTERING" default:"true"`
	InitAttempts     int     `envconfig:"MAP_INIT_ATTEMPTS" default:"3"`
	InitBaseDelayMS  int     `envconfig:"MAP_INIT_BASE_DELAY_MS" default:"1000"`
}

// LoaderConfig bounds map library import attempts
type LoaderConfig struct {
	MaxAttempts int `envconfig:"LOADER_MAX_ATTEMPTS" default:"3"`
	BaseDelayMS int `envconfig:"LOADER_BASE_DELAY_MS" default:"500"`
	// SimulateBrokenImport makes every import return a handle without its map constructor
	SimulateBrokenImport bool `envconfig:"LOADER_SIMULATE_BROKEN_IMPORT" default:"false"`
}

type WeatherConfig struct {
	BaseURL         string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.open-meteo.com/v1"`
	Timezone        string `envconfig:"WEATHER_TIMEZONE" default:"Europe/Madrid"`
	TimeoutSeconds  int    `envconfig:"WEATHER_TIMEOUT_SECONDS" default:"10"`
	EnableCache     bool   `envconfig:"WEATHER_ENABLE_CACHE" default:"true"`
	CacheTTLMinutes int    `envconfig:"WEATHER_CACHE_TTL_MINUTES" default:"0"`
	EnableLogging   bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath     string `envconfig:"WEATHER_LOG_FILE_PATH" default:""`
	// BreakerFailures is the number of consecutive upstream failures that opens the circuit
	BreakerFailures       int `envconfig:"WEATHER_BREAKER_FAILURES" default:"5"`
	BreakerTimeoutSeconds int `envconfig:"WEATHER_BREAKER_TIMEOUT_SECONDS" default:"30"`
}

type GeodataConfig struct {
	BaseURL string `envconfig:"GEODATA_API_BASE_URL" default:"https://overpass-api.de/api/interpreter"`
	// FallbackURLs are Overpass mirrors tried in order when the primary endpoint fails
	FallbackURLs   []string `envconfig:"GEODATA_FALLBACK_URLS" default:""`
	TimeoutSeconds int      `envconfig:"GEODATA_TIMEOUT_SECONDS" default:"25"`
	MaxAttempts    int      `envconfig:"GEODATA_MAX_ATTEMPTS" default:"2"`
	BaseDelayMS    int      `envconfig:"GEODATA_BASE_DELAY_MS" default:"500"`
}

// CacheType represents the type of cache to use
type CacheType int

const (
	CacheTypeUnknown CacheType = iota
	CacheTypeMemory
	CacheTypeRedis
)

// String returns the string representation of cache type
func (c CacheType) String() string {
	switch c {
	case CacheTypeMemory:
		return "memory"
	case CacheTypeRedis:
		return "redis"
	default:
		return "unknown"
	}
}

// IsValid checks if the cache type is valid
func (c CacheType) IsValid() bool {
	return c == CacheTypeMemory || c == CacheTypeRedis
}

// CacheTypeFromString converts string to CacheType enum
func CacheTypeFromString(s string) CacheType {
	switch s {
	case "memory":
		return CacheTypeMemory
	case "redis":
		return CacheTypeRedis
	default:
		return CacheTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (c *CacheType) UnmarshalText(text []byte) error {
	*c = CacheTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (c CacheType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type CacheConfig struct {
	Type  CacheType   `envconfig:"CACHE_TYPE" default:"memory"`
	Redis RedisConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

// SessionsConfig controls how long idle map sessions survive
type SessionsConfig struct {
	IdleTimeoutMinutes  int `envconfig:"SESSION_IDLE_TIMEOUT_MINUTES" default:"30"`
	ReapIntervalMinutes int `envconfig:"SESSION_REAP_INTERVAL_MINUTES" default:"5"`
	MaxSessions         int `envconfig:"SESSION_MAX" default:"1000"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigurationError("LOG_LEVEL must be one of: debug, info, warn, error", nil)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Map.Validate(); err != nil {
		return err
	}
	if err := c.Loader.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Geodata.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Sessions.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	switch s.Mode {
	case "debug", "release", "test":
		return nil
	default:
		return errors.NewConfigurationError("GIN_MODE must be one of: debug, release, test", nil)
	}
}

func (m *MapConfig) Validate() error {
	if !validation.IsValidLatitude(m.DefaultLat) {
		return errors.NewConfigurationError("MAP_DEFAULT_LAT must be between -90 and 90", nil)
	}
	if !validation.IsValidLongitude(m.DefaultLng) {
		return errors.NewConfigurationError("MAP_DEFAULT_LNG must be between -180 and 180", nil)
	}
	if !validation.IsValidZoom(m.DefaultZoom) {
		return errors.NewConfigurationError("MAP_DEFAULT_ZOOM must be between 0 and 22", nil)
	}
	if m.Width < 1 || m.Width > maxViewportPixels || m.Height < 1 || m.Height > maxViewportPixels {
		return errors.NewConfigurationError(
			fmt.Sprintf("MAP_VIEWPORT_WIDTH and MAP_VIEWPORT_HEIGHT must be between 1 and %d", maxViewportPixels), nil)
	}
	if m.DebounceMS < 1 {
		return errors.NewConfigurationError("MAP_DEBOUNCE_MS must be at least 1", nil)
	}
	if m.SettleMS < 0 {
		return errors.NewConfigurationError("MAP_SETTLE_MS cannot be negative", nil)
	}
	if m.InitAttempts < 1 || m.InitAttempts > maxAttempts {
		return errors.NewConfigurationError("MAP_INIT_ATTEMPTS must be between 1 and 10", nil)
	}
	if m.InitBaseDelayMS < 0 {
		return errors.NewConfigurationError("MAP_INIT_BASE_DELAY_MS cannot be negative", nil)
	}
	return nil
}

func (l *LoaderConfig) Validate() error {
	if l.MaxAttempts < 1 || l.MaxAttempts > maxAttempts {
		return errors.NewConfigurationError("LOADER_MAX_ATTEMPTS must be between 1 and 10", nil)
	}
	if l.BaseDelayMS < 0 {
		return errors.NewConfigurationError("LOADER_BASE_DELAY_MS cannot be negative", nil)
	}
	return nil
}

func validateBaseURL(name, value string) error {
	if value == "" {
		return errors.NewConfigurationError(name+" cannot be empty", nil)
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return errors.NewConfigurationError(name+" must start with http:// or https://", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if err := validateBaseURL("WEATHER_API_BASE_URL", w.BaseURL); err != nil {
		return err
	}
	if strings.TrimSpace(w.Timezone) == "" {
		return errors.NewConfigurationError("WEATHER_TIMEZONE cannot be empty", nil)
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if w.CacheTTLMinutes < 0 || w.CacheTTLMinutes > maxCacheTTLMinutes {
		return errors.NewConfigurationError("WEATHER_CACHE_TTL_MINUTES must be between 0 and 1440 minutes", nil)
	}
	if w.BreakerFailures < 1 {
		return errors.NewConfigurationError("WEATHER_BREAKER_FAILURES must be at least 1", nil)
	}
	if w.BreakerTimeoutSeconds < 1 {
		return errors.NewConfigurationError("WEATHER_BREAKER_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}

func (g *GeodataConfig) Validate() error {
	if err := validateBaseURL("GEODATA_API_BASE_URL", g.BaseURL); err != nil {
		return err
	}
	for _, mirror := range g.FallbackURLs {
		if err := validateBaseURL("GEODATA_FALLBACK_URLS", mirror); err != nil {
			return err
		}
	}
	if g.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("GEODATA_TIMEOUT_SECONDS must be at least 1", nil)
	}
	if g.MaxAttempts < 1 || g.MaxAttempts > maxAttempts {
		return errors.NewConfigurationError("GEODATA_MAX_ATTEMPTS must be between 1 and 10", nil)
	}
	if g.BaseDelayMS < 0 {
		return errors.NewConfigurationError("GEODATA_BASE_DELAY_MS cannot be negative", nil)
	}
	return nil
}

func (c *CacheConfig) Validate() error {
	if !c.Type.IsValid() {
		return errors.NewConfigurationError("CACHE_TYPE must be one of: memory, redis", nil)
	}

	if c.Type == CacheTypeRedis {
		return c.Redis.Validate()
	}

	return nil
}

func (r *RedisConfig) Validate() error {
	if r.Addr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when using Redis cache", nil)
	}
	if r.DB < 0 || r.DB > maxRedisDB {
		return errors.NewConfigurationError("REDIS_DB must be between 0 and 15", nil)
	}
	if r.DialTimeout < 1 {
		return errors.NewConfigurationError("REDIS_DIAL_TIMEOUT must be at least 1 second", nil)
	}
	if r.ReadTimeout < 1 {
		return errors.NewConfigurationError("REDIS_READ_TIMEOUT must be at least 1 second", nil)
	}
	if r.WriteTimeout < 1 {
		return errors.NewConfigurationError("REDIS_WRITE_TIMEOUT must be at least 1 second", nil)
	}
	return nil
}

func (s *SessionsConfig) Validate() error {
	if s.IdleTimeoutMinutes < 1 {
		return errors.NewConfigurationError("SESSION_IDLE_TIMEOUT_MINUTES must be at least 1 minute", nil)
	}
	if s.ReapIntervalMinutes < 1 {
		return errors.NewConfigurationError("SESSION_REAP_INTERVAL_MINUTES must be at least 1 minute", nil)
	}
	if s.MaxSessions < 1 {
		return errors.NewConfigurationError("SESSION_MAX must be at least 1", nil)
	}
	return nil
}
