package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/pkg/errors"
)

func TestCreateSession(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/sessions", map[string]interface{}{
		"container": "map",
		"locale":    "es",
		"width":     800,
		"height":    600,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var view mapview.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "created", view.SessionID)
	assert.Equal(t, mapview.StatusReady, view.Status)
	assert.Equal(t, []mapview.Options{{Container: "map", Locale: "es", Width: 800, Height: 600}}, f.sessions.created)
}

func TestCreateSession_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    interface{}
		message string
	}{
		{"MissingContainer", map[string]interface{}{"locale": "es"}, "container failed required validation"},
		{"BadLocale", map[string]interface{}{"container": "map", "locale": "!!"}, "locale failed locale validation"},
		{"HugeViewport", map[string]interface{}{"container": "map", "width": 100000}, "width failed max validation"},
		{"NotJSON", "{", "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)

			w := f.do(t, http.MethodPost, "/api/sessions", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))
			assert.Empty(t, f.sessions.created)
		})
	}
}

func TestCreateSession_LimitReached(t *testing.T) {
	f := newServerFixture(t)
	f.sessions.createErr = errors.NewUnavailableError("session limit reached")

	w := f.do(t, http.MethodPost, "/api/sessions", map[string]interface{}{"container": "map"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "session limit reached", decodeError(t, w))
}

func TestGetSession(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/api/sessions/s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view mapview.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "s1", view.SessionID)

	w = f.do(t, http.MethodGet, "/api/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession(t *testing.T) {
	f := newServerFixture(t)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/sessions/s1", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/api/sessions/s1", nil).Code)
}

func TestSetViewport(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPut, "/api/sessions/s1/viewport", map[string]interface{}{
		"center": map[string]float64{"lat": 41.3874, "lng": 2.1686},
		"zoom":   0,
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, geo.LatLng{Lat: 41.3874, Lng: 2.1686}, f.session.center)
	assert.Equal(t, 0, f.session.zoom)
	assert.Equal(t, 1, f.session.moves)
}

func TestSetViewport_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
	}{
		{
			name:    "LatitudeOutOfRange",
			body:    map[string]interface{}{"center": map[string]float64{"lat": 91, "lng": 0}, "zoom": 5},
			message: "lat failed latitude validation",
		},
		{
			name:    "LongitudeOutOfRange",
			body:    map[string]interface{}{"center": map[string]float64{"lat": 0, "lng": 181}, "zoom": 5},
			message: "lng failed longitude validation",
		},
		{
			name:    "ZoomTooDeep",
			body:    map[string]interface{}{"center": map[string]float64{"lat": 0, "lng": 0}, "zoom": 30},
			message: "zoom failed zoomlevel validation",
		},
		{
			name:    "MissingZoom",
			body:    map[string]interface{}{"center": map[string]float64{"lat": 0, "lng": 0}},
			message: "zoom failed required validation",
		},
		{
			name:    "MissingCenter",
			body:    map[string]interface{}{"zoom": 5},
			message: "center failed required validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t)

			w := f.do(t, http.MethodPut, "/api/sessions/s1/viewport", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, decodeError(t, w))
			assert.Zero(t, f.session.moves)
		})
	}
}

func TestSetViewport_SessionState(t *testing.T) {
	body := map[string]interface{}{"center": map[string]float64{"lat": 40, "lng": -3}, "zoom": 6}

	t.Run("Closed", func(t *testing.T) {
		f := newServerFixture(t)
		f.session.viewportErr = errors.NewSessionClosedError("map session is closed")

		assert.Equal(t, http.StatusGone, f.do(t, http.MethodPut, "/api/sessions/s1/viewport", body).Code)
	})

	t.Run("StillStarting", func(t *testing.T) {
		f := newServerFixture(t)
		f.session.viewportErr = errors.NewUnavailableError("map is still starting")

		w := f.do(t, http.MethodPut, "/api/sessions/s1/viewport", body)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "map is still starting", decodeError(t, w))
	})
}

func TestGetMarkers(t *testing.T) {
	f := newServerFixture(t)
	feature := geo.Feature{
		Type:       "Feature",
		ID:         "node/1",
		Geometry:   geo.Point(geo.LatLng{Lat: 40.4168, Lng: -3.7038}),
		Properties: map[string]interface{}{"label": "Madrid: 20°C, clear"},
	}
	f.session.features.Features = append(f.session.features.Features, feature)

	w := f.do(t, http.MethodGet, "/api/sessions/s1/markers", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var fc geo.FeatureCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Madrid: 20°C, clear", fc.Features[0].Properties["label"])
	assert.Equal(t, []float64{-3.7038, 40.4168}, fc.Features[0].Geometry.Coordinates)
}

func TestClickMarker(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodPost, "/api/sessions/s1/markers/node/1/click", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(20), body["temperatureC"])
	assert.Equal(t, "clear", body["description"])
	assert.Same(t, madridSnapshot, f.session.sheet.Current())

	w = f.do(t, http.MethodPost, "/api/sessions/s1/markers/node/99/click", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no marker for place node/99", decodeError(t, w))
}

// sseReader yields "event:data" pairs read from a live stream
func sseReader(t *testing.T, resp *http.Response) <-chan [2]string {
	t.Helper()
	events := make(chan [2]string, 16)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		var event string
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event:"):
				event = strings.TrimPrefix(line, "event:")
			case strings.HasPrefix(line, "data:"):
				events <- [2]string{event, strings.TrimPrefix(line, "data:")}
			}
		}
	}()
	return events
}

func nextEvent(t *testing.T, events <-chan [2]string) [2]string {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "stream ended")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return [2]string{}
	}
}

func TestStreamSheet(t *testing.T) {
	f := newServerFixture(t)
	srv := httptest.NewServer(f.server.GetRouter())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/sessions/s1/sheet", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := sseReader(t, resp)
	connected := nextEvent(t, events)
	assert.Equal(t, "connected", connected[0])
	assert.Contains(t, connected[1], `"sessionId":"s1"`)

	_, err = f.session.Click(context.Background(), "node/1")
	require.NoError(t, err)

	snapshot := nextEvent(t, events)
	assert.Equal(t, "snapshot", snapshot[0])
	assert.Contains(t, snapshot[1], `"displayName":"Madrid"`)

	f.session.sheet.Close()
	assert.Equal(t, "closed", nextEvent(t, events)[0])
}

func TestStreamSheet_ReplaysCurrentAndHeartbeats(t *testing.T) {
	f := newServerFixture(t, func(o *ServerOptions) { o.Config.SheetHeartbeat = 20 * time.Millisecond })
	f.session.sheet.Show(madridSnapshot)

	srv := httptest.NewServer(f.server.GetRouter())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/sessions/s1/sheet", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	events := sseReader(t, resp)
	assert.Equal(t, "connected", nextEvent(t, events)[0])
	assert.Equal(t, "snapshot", nextEvent(t, events)[0])
	assert.Equal(t, "ping", nextEvent(t, events)[0])
}

func TestStreamSheet_UnknownSession(t *testing.T) {
	f := newServerFixture(t)

	w := f.do(t, http.MethodGet, "/api/sessions/nope/sheet", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
