package weather

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/geo"
)

func TestConditionFromCode(t *testing.T) {
	tests := []struct {
		code     int
		expected Condition
	}{
		{0, ConditionClear},
		{2, ConditionPartlyCloudy},
		{3, ConditionCloudy},
		{48, ConditionFog},
		{53, ConditionDrizzle},
		{61, ConditionLightRain},
		{65, ConditionHeavyRain},
		{82, ConditionHeavyRain},
		{75, ConditionSnow},
		{99, ConditionStorm},
		{4, ConditionUnknown},
		{-1, ConditionUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ConditionFromCode(tt.code), "code %d", tt.code)
	}
}

func TestCondition_IconKeysAreDistinct(t *testing.T) {
	seen := make(map[string]Condition)
	for c := ConditionUnknown; c <= ConditionStorm; c++ {
		key := c.IconKey()
		assert.NotEmpty(t, key)
		if prev, ok := seen[key]; ok {
			t.Fatalf("icon key %q shared by %s and %s", key, prev, c)
		}
		seen[key] = c
	}
}

func TestCondition_TextRoundTrip(t *testing.T) {
	for c := ConditionUnknown; c <= ConditionStorm; c++ {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back Condition
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}
	assert.Equal(t, ConditionUnknown, ConditionFromString("hail"))
}

func TestSnapshot_JSONKeepsConditionReadable(t *testing.T) {
	s := Snapshot{
		Place:       geo.Place{ID: "node/1", DisplayName: "Madrid"},
		Description: ConditionLightRain,
		IconKey:     ConditionLightRain.IconKey(),
		ObservedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":"light rain"`)

	var back Snapshot
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ConditionLightRain, back.Description)
}

func TestSnapshot_IsValid(t *testing.T) {
	valid := Snapshot{Place: geo.Place{ID: "node/1"}, TemperatureC: 20, HumidityPct: 50}
	assert.NoError(t, valid.IsValid())

	noID := valid
	noID.Place.ID = ""
	assert.Error(t, noID.IsValid())

	cold := valid
	cold.TemperatureC = -300
	assert.Error(t, cold.IsValid())

	wet := valid
	wet.HumidityPct = 101
	assert.Error(t, wet.IsValid())

	long := valid
	long.Forecast = make([]ForecastDay, MaxForecastDays+1)
	assert.Error(t, long.IsValid())
}

func TestSnapshot_Label(t *testing.T) {
	s := Snapshot{
		Place: geo.Place{
			DisplayName:    "London",
			LocalizedNames: map[string]string{"es": "Londres"},
		},
		TemperatureC: 14.6,
		Description:  ConditionCloudy,
	}

	assert.Equal(t, "London: 15°C, cloudy", s.Label(""))
	assert.Equal(t, "Londres: 15°C, cloudy", s.Label("es"))
}

func TestSnapshot_HumidityDescription(t *testing.T) {
	assert.Equal(t, "Very dry", (&Snapshot{HumidityPct: 10}).HumidityDescription())
	assert.Equal(t, "Dry", (&Snapshot{HumidityPct: 25}).HumidityDescription())
	assert.Equal(t, "Comfortable", (&Snapshot{HumidityPct: 45}).HumidityDescription())
	assert.Equal(t, "Humid", (&Snapshot{HumidityPct: 70}).HumidityDescription())
	assert.Equal(t, "Very humid", (&Snapshot{HumidityPct: 95}).HumidityDescription())
	assert.InDelta(t, 68.0, (&Snapshot{TemperatureC: 20}).TemperatureInFahrenheit(), 0.001)
}

func TestSnapshot_JSONPayload(t *testing.T) {
	s := &Snapshot{
		Place:        geo.Place{ID: "node/7", DisplayName: "Bilbao", Latitude: 43.26, Longitude: -2.93, PlaceRank: 8},
		TemperatureC: 20,
		Description:  ConditionFog,
		HumidityPct:  70,
		IconKey:      ConditionFog.IconKey(),
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.InDelta(t, 68.0, payload["temperatureF"], 0.001)
	assert.Equal(t, "Humid", payload["humidityLevel"])
	assert.Equal(t, "fog", payload["description"])

	place, ok := payload["place"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "node/7", place["id"])
	assert.Equal(t, "Bilbao", place["displayName"])
	assert.InDelta(t, 8.0, place["placeRank"], 0.001)
	assert.NotContains(t, place, "localizedNames")

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s.Place, decoded.Place)
	assert.Equal(t, ConditionFog, decoded.Description)
}
