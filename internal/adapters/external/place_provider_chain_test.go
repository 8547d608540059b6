package external

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

var chainQuery = ports.PlaceQuery{
	Bounds:  geo.Bounds{North: 41, South: 40, West: -4, East: -3},
	Classes: []string{"city"},
}

func TestPlaceProviderChain_PrimarySucceeds(t *testing.T) {
	primary := &testPlaceProvider{name: "primary", elements: []ports.PlaceElement{{ID: 1}}}
	secondary := &testPlaceProvider{name: "secondary"}
	chain := NewPlaceProviderChain(&testLogger{}, primary, secondary)

	elements, err := chain.QueryPlaces(context.Background(), chainQuery)

	require.NoError(t, err)
	assert.Len(t, elements, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestPlaceProviderChain_FallsThrough(t *testing.T) {
	primary := &testPlaceProvider{name: "primary", err: errors.NewExternalAPIError("Overpass returned status 504", nil)}
	secondary := &testPlaceProvider{name: "secondary", elements: []ports.PlaceElement{{ID: 2}}}
	logger := &testLogger{}
	chain := NewPlaceProviderChain(logger, primary, secondary)

	elements, err := chain.QueryPlaces(context.Background(), chainQuery)

	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, int64(2), elements[0].ID)

	entries := logger.all()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].level)
	assert.Equal(t, "primary", entries[0].fields["provider"])
	assert.Equal(t, "Geodata served by fallback provider", entries[1].message)
	assert.Equal(t, 2, entries[1].fields["position"])
}

func TestPlaceProviderChain_ValidationErrorStops(t *testing.T) {
	primary := &testPlaceProvider{name: "primary", err: errors.NewValidationError("at least one place class is required")}
	secondary := &testPlaceProvider{name: "secondary"}
	chain := NewPlaceProviderChain(&testLogger{}, primary, secondary)

	_, err := chain.QueryPlaces(context.Background(), chainQuery)

	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, 0, secondary.calls)
}

func TestPlaceProviderChain_AllFail(t *testing.T) {
	cause := stderrors.New("connection refused")
	chain := NewPlaceProviderChain(&testLogger{},
		&testPlaceProvider{name: "a", err: cause},
		&testPlaceProvider{name: "b", err: cause},
	)

	_, err := chain.QueryPlaces(context.Background(), chainQuery)

	require.Error(t, err)
	assert.True(t, errors.IsExternalAPIError(err))
	assert.Contains(t, err.Error(), "tried 2 providers")
	assert.ErrorIs(t, err, cause)
}

func TestPlaceProviderChain_Empty(t *testing.T) {
	chain := NewPlaceProviderChain(&testLogger{})

	_, err := chain.QueryPlaces(context.Background(), chainQuery)

	assert.True(t, errors.IsExternalAPIError(err))
	assert.Equal(t, "none", chain.GetProviderName())
}

func TestPlaceProviderChain_GetProviderInfo(t *testing.T) {
	chain := NewPlaceProviderChain(&testLogger{},
		&testPlaceProvider{name: "overpass"},
		&testPlaceProvider{name: "overpass-mirror-1"},
	)

	info := chain.GetProviderInfo()

	assert.Equal(t, "overpass", chain.GetProviderName())
	assert.Equal(t, 2, info["total_providers"])
	assert.Equal(t, []string{"overpass", "overpass-mirror-1"}, info["provider_order"])
	assert.Equal(t, true, info["fallback_enabled"])
}

type reportingPlaceProvider struct {
	testPlaceProvider
	state string
}

func (p *reportingPlaceProvider) BreakerState() string {
	return p.state
}

func TestPlaceProviderChain_BreakerState(t *testing.T) {
	tests := []struct {
		name     string
		states   []string
		expected string
	}{
		{"AllOpen", []string{"open", "open"}, "open"},
		{"OneClosed", []string{"open", "closed"}, "closed"},
		{"Probing", []string{"open", "half-open"}, "half-open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers := make([]ports.PlaceProvider, len(tt.states))
			for i, state := range tt.states {
				providers[i] = &reportingPlaceProvider{state: state}
			}

			chain := NewPlaceProviderChain(&testLogger{}, providers...)
			assert.Equal(t, tt.expected, chain.BreakerState())
		})
	}
}
