package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/mapview"
)

func call(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newTestApplication(t *testing.T) (*Application, *upstream) {
	t.Helper()
	u := newUpstream(t)
	cfg := testConfig(u.server.URL)
	application, err := NewApplicationWithDependencies(cfg, newTestContainer(t, cfg, DependencyOptions{}))
	require.NoError(t, err)
	t.Cleanup(application.Sessions().Shutdown)
	return application, u
}

func TestApplication_MapSessionLifecycle(t *testing.T) {
	application, u := newTestApplication(t)
	router := application.GetRouter()

	w := call(t, router, http.MethodPost, "/api/sessions", map[string]interface{}{"container": "map", "locale": "en"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var view mapview.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, mapview.StatusReady, view.Status)
	assert.Equal(t, 6, view.Zoom)

	controller, err := application.Sessions().Get(view.SessionID)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, controller.WaitSettled(ctx))

	w = call(t, router, http.MethodGet, "/api/sessions/"+view.SessionID+"/markers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var markers geo.FeatureCollection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &markers))
	require.Len(t, markers.Features, 1)
	assert.Equal(t, "node/1", markers.Features[0].ID)
	assert.Equal(t, "clear-day", markers.Features[0].Properties["iconKey"])

	w = call(t, router, http.MethodPost, "/api/sessions/"+view.SessionID+"/markers/node/1/click", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, float64(21), snapshot["temperatureC"])
	assert.NotNil(t, controller.Sheet().Current())

	w = call(t, router, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var metrics map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	assert.Equal(t, float64(1), metrics["sessions"].(map[string]interface{})["active"])

	assert.Equal(t, http.StatusNoContent, call(t, router, http.MethodDelete, "/api/sessions/"+view.SessionID, nil).Code)
	assert.Equal(t, http.StatusNotFound, call(t, router, http.MethodGet, "/api/sessions/"+view.SessionID, nil).Code)

	assert.GreaterOrEqual(t, u.queries.Load(), int32(1))
	assert.EqualValues(t, 1, u.forecasts.Load())
}

func TestApplication_WeatherLookupUsesCache(t *testing.T) {
	application, u := newTestApplication(t)
	router := application.GetRouter()

	for i := 0; i < 2; i++ {
		w := call(t, router, http.MethodGet, "/api/weather?lat=40.4168&lon=-3.7038&name=Madrid", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.EqualValues(t, 1, u.forecasts.Load())
}

func TestApplication_Health(t *testing.T) {
	application, _ := newTestApplication(t)

	w := call(t, application.GetRouter(), http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status     string                            `json:"status"`
		Components map[string]map[string]interface{} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Contains(t, body.Components, "weatherAPI")
	assert.Contains(t, body.Components, "geodataAPI")
	assert.Contains(t, body.Components, "cache")
	assert.Contains(t, body.Components, "config")
}

func TestApplication_Shutdown(t *testing.T) {
	application, _ := newTestApplication(t)

	_, err := application.Sessions().Create(context.Background(), mapview.Options{Container: "map"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, application.Shutdown(ctx))
	assert.Zero(t, application.Sessions().Len())
}
