package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

var madridSnapshot = &weather.Snapshot{
	Place:        geo.Place{ID: "node/1", DisplayName: "Madrid", Latitude: 40.4168, Longitude: -3.7038, PlaceRank: 2},
	TemperatureC: 20,
	Description:  weather.ConditionClear,
	HumidityPct:  40,
	IconKey:      weather.ConditionClear.IconKey(),
}

type fakeSession struct {
	mu sync.Mutex

	id          string
	view        mapview.View
	viewportErr error
	center      geo.LatLng
	zoom        int
	moves       int
	features    geo.FeatureCollection
	snapshots   map[string]*weather.Snapshot
	sheet       *mapview.Sheet
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{
		id:        id,
		view:      mapview.View{SessionID: id, Status: mapview.StatusReady, Zoom: 6, Capability: "flat"},
		features:  geo.NewFeatureCollection(),
		snapshots: map[string]*weather.Snapshot{madridSnapshot.Place.ID: madridSnapshot},
		sheet:     mapview.NewSheet(),
	}
}

func (f *fakeSession) ID() string { return f.id }

func (f *fakeSession) View(ctx context.Context) (mapview.View, error) {
	return f.view, nil
}

func (f *fakeSession) SetViewport(center geo.LatLng, zoom int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.viewportErr != nil {
		return f.viewportErr
	}
	f.center, f.zoom = center, zoom
	f.moves++
	return nil
}

func (f *fakeSession) Markers() (geo.FeatureCollection, error) {
	return f.features, nil
}

func (f *fakeSession) Click(ctx context.Context, placeID string) (*weather.Snapshot, error) {
	snapshot, ok := f.snapshots[placeID]
	if !ok {
		return nil, errors.NewNotFoundError("no marker for place " + placeID)
	}
	f.sheet.Show(snapshot)
	return snapshot, nil
}

func (f *fakeSession) Sheet() *mapview.Sheet { return f.sheet }

type fakeSessions struct {
	mu        sync.Mutex
	sessions  map[string]*fakeSession
	createErr error
	created   []mapview.Options
}

func newFakeSessions(sessions ...*fakeSession) *fakeSessions {
	f := &fakeSessions{sessions: make(map[string]*fakeSession)}
	for _, s := range sessions {
		f.sessions[s.id] = s
	}
	return f
}

func (f *fakeSessions) Create(ctx context.Context, opts mapview.Options) (MapSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, opts)
	session := newFakeSession("created")
	f.sessions[session.id] = session
	return session, nil
}

func (f *fakeSessions) Get(id string) (MapSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("map session not found")
	}
	return session, nil
}

func (f *fakeSessions) Close(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return errors.NewNotFoundError("map session not found")
	}
	session.sheet.Close()
	delete(f.sessions, id)
	return nil
}

type weatherLookupFunc func(ctx context.Context, place geo.Place) *weather.Snapshot

func (f weatherLookupFunc) Fetch(ctx context.Context, place geo.Place) *weather.Snapshot {
	return f(ctx, place)
}

type fakeMetrics map[string]interface{}

func (f fakeMetrics) GetMetrics(ctx context.Context) (map[string]interface{}, error) {
	return f, nil
}

type fakeHealth map[string]ports.HealthStatus

func (f fakeHealth) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	return f
}

type serverFixture struct {
	server   *HTTPServerAdapter
	sessions *fakeSessions
	session  *fakeSession
}

func newServerFixture(t *testing.T, opts ...func(*ServerOptions)) *serverFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	session := newFakeSession("s1")
	sessions := newFakeSessions(session)
	options := ServerOptions{
		Config:   ServerConfig{SheetHeartbeat: time.Minute},
		Sessions: sessions,
		Weather: weatherLookupFunc(func(ctx context.Context, place geo.Place) *weather.Snapshot {
			return nil
		}),
		MetricsCollector:    fakeMetrics{"sessions": map[string]interface{}{"active": 1}},
		SystemHealthChecker: fakeHealth{"cache": {Component: "cache", Status: "healthy"}},
	}
	for _, opt := range opts {
		opt(&options)
	}

	server, err := NewHTTPServerAdapter(options)
	require.NoError(t, err)

	return &serverFixture{server: server, sessions: sessions, session: session}
}

func (f *serverFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.server.GetRouter().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}
