package weather

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"weathermap.app/internal/core/geo"
)

// Condition is the fixed set of weather conditions a marker can show
type Condition int

const (
	ConditionUnknown Condition = iota
	ConditionClear
	ConditionPartlyCloudy
	ConditionCloudy
	ConditionFog
	ConditionDrizzle
	ConditionLightRain
	ConditionHeavyRain
	ConditionSnow
	ConditionStorm
)

// String returns the string representation of the condition
func (c Condition) String() string {
	switch c {
	case ConditionClear:
		return "clear"
	case ConditionPartlyCloudy:
		return "partly cloudy"
	case ConditionCloudy:
		return "cloudy"
	case ConditionFog:
		return "fog"
	case ConditionDrizzle:
		return "drizzle"
	case ConditionLightRain:
		return "light rain"
	case ConditionHeavyRain:
		return "heavy rain"
	case ConditionSnow:
		return "snow"
	case ConditionStorm:
		return "storm"
	default:
		return "unknown"
	}
}

// IconKey returns the single icon key bound to the condition
func (c Condition) IconKey() string {
	switch c {
	case ConditionClear:
		return "clear-day"
	case ConditionPartlyCloudy:
		return "partly-cloudy-day"
	case ConditionCloudy:
		return "cloudy"
	case ConditionFog:
		return "fog"
	case ConditionDrizzle:
		return "drizzle"
	case ConditionLightRain:
		return "rain"
	case ConditionHeavyRain:
		return "heavy-rain"
	case ConditionSnow:
		return "snow"
	case ConditionStorm:
		return "thunderstorm"
	default:
		return "not-available"
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Condition) UnmarshalText(text []byte) error {
	*c = ConditionFromString(string(text))
	return nil
}

// ConditionFromString converts the String form back into a Condition
func ConditionFromString(s string) Condition {
	for c := ConditionClear; c <= ConditionStorm; c++ {
		if c.String() == s {
			return c
		}
	}
	return ConditionUnknown
}

// ConditionFromCode maps a WMO weather interpretation code onto a Condition.
// Unrecognized codes map to ConditionUnknown.
func ConditionFromCode(code int) Condition {
	switch code {
	case 0:
		return ConditionClear
	case 1, 2:
		return ConditionPartlyCloudy
	case 3:
		return ConditionCloudy
	case 45, 48:
		return ConditionFog
	case 51, 53, 55, 56, 57:
		return ConditionDrizzle
	case 61, 66, 80:
		return ConditionLightRain
	case 63, 65, 67, 81, 82:
		return ConditionHeavyRain
	case 71, 73, 75, 77, 85, 86:
		return ConditionSnow
	case 95, 96, 99:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}

// MaxForecastDays bounds the forecast attached to a snapshot
const MaxForecastDays = 5

// ForecastDay is one day of the daily forecast
type ForecastDay struct {
	Date        time.Time `json:"date"`
	TempMinC    float64   `json:"tempMinC"`
	TempMaxC    float64   `json:"tempMaxC"`
	Description Condition `json:"description"`
	IconKey     string    `json:"iconKey"`
}

// Snapshot is the weather for one place at fetch time. It is never mutated,
// only replaced wholesale on re-fetch.
type Snapshot struct {
	Place           geo.Place     `json:"place"`
	TemperatureC    float64       `json:"temperatureC"`
	Description     Condition     `json:"description"`
	HumidityPct     int           `json:"humidityPct"`
	WindKph         float64       `json:"windKph"`
	PrecipitationMm float64       `json:"precipitationMm"`
	ObservedAt      time.Time     `json:"observedAt"`
	IconKey         string        `json:"iconKey"`
	Forecast        []ForecastDay `json:"forecast"`
}

// MarshalJSON adds the Fahrenheit temperature and the humidity level shown on
// the bottom sheet
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return json.Marshal(struct {
		plain
		TemperatureF  float64 `json:"temperatureF"`
		HumidityLevel string  `json:"humidityLevel"`
	}{
		plain:         plain(s),
		TemperatureF:  s.TemperatureInFahrenheit(),
		HumidityLevel: s.HumidityDescription(),
	})
}

// IsValid validates snapshot data
func (s *Snapshot) IsValid() error {
	if strings.TrimSpace(s.Place.ID) == "" {
		return fmt.Errorf("place id cannot be empty")
	}
	if s.TemperatureC < -273.15 {
		return fmt.Errorf("temperature cannot be below absolute zero")
	}
	if s.HumidityPct < 0 || s.HumidityPct > 100 {
		return fmt.Errorf("humidity must be between 0 and 100")
	}
	if len(s.Forecast) > MaxForecastDays {
		return fmt.Errorf("forecast cannot exceed %d days", MaxForecastDays)
	}
	return nil
}

// Label is the marker tooltip text: name, temperature and description
func (s *Snapshot) Label(locale string) string {
	return fmt.Sprintf("%s: %.0f°C, %s", s.Place.Name(locale), s.TemperatureC, s.Description)
}

// TemperatureInFahrenheit converts temperature from Celsius to Fahrenheit
func (s *Snapshot) TemperatureInFahrenheit() float64 {
	return s.TemperatureC*9/5 + 32
}

// HumidityDescription provides a human-readable description of humidity level
func (s *Snapshot) HumidityDescription() string {
	switch {
	case s.HumidityPct < 30:
		if s.HumidityPct < 20 {
			return "Very dry"
		}
		return "Dry"
	case s.HumidityPct < 60:
		return "Comfortable"
	case s.HumidityPct < 80:
		return "Humid"
	default:
		return "Very humid"
	}
}
