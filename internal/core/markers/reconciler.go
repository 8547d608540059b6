// Package markers keeps the rendered marker set of one map in step with the
// viewport. Every exported Reconciler method must run on the session event
// loop; network work runs on separate goroutines and reports back through it.
package markers

import (
	"context"
	"sort"
	"time"

	"weathermap.app/internal/core/eventloop"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/maploader"
	"weathermap.app/internal/core/viewport"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// State of the marker set
type State int

const (
	StateEmpty State = iota
	StatePopulating
	StateSettled
)

func (s State) String() string {
	switch s {
	case StatePopulating:
		return "populating"
	case StateSettled:
		return "settled"
	default:
		return "empty"
	}
}

// RenderedMarker is a marker currently on the map
type RenderedMarker struct {
	PlaceID   string
	Place     geo.Place
	Handle    ports.MarkerHandle
	Clustered bool
	Snapshot  *weather.Snapshot
}

// PlaceSource finds places inside a viewport
type PlaceSource interface {
	FetchPlaces(ctx context.Context, bounds geo.Bounds, zoom int) ([]geo.Place, error)
}

// WeatherSource resolves weather for a place. Cached never touches the network;
// Fetch returns nil on failure.
type WeatherSource interface {
	Cached(ctx context.Context, place geo.Place) *weather.Snapshot
	Fetch(ctx context.Context, place geo.Place) *weather.Snapshot
}

// Executor runs tasks on the session event loop
type Executor interface {
	Post(fn eventloop.Task) bool
}

// ClickFunc receives the snapshot behind a clicked marker
type ClickFunc func(snapshot *weather.Snapshot)

type Dependencies struct {
	SessionID string
	Places    PlaceSource
	Weather   WeatherSource
	Executor  Executor
	Sink      Sink
	OnClick   ClickFunc
	Logger    ports.Logger
	Metrics   ports.MetricsCollector
	// Locale selects marker label names
	Locale string
	// SettleDelay is how long the initial view is protected from re-fetches
	SettleDelay time.Duration
}

type Reconciler struct {
	sessionID string
	places    PlaceSource
	weather   WeatherSource
	exec      Executor
	sink      Sink
	onClick   ClickFunc
	logger    ports.Logger
	metrics   ports.MetricsCollector
	locale    string
	settle    time.Duration

	state    State
	rendered map[string]*RenderedMarker
	// inflight maps a place id to the epoch its weather request belongs to
	inflight map[string]uint64
	pending  int

	bounds     geo.Bounds
	zoom       int
	generation uint64
	// epoch advances on every zoom; weather from an older epoch is discarded
	epoch uint64

	queryCancel context.CancelFunc
	fetchCtx    context.Context
	fetchCancel context.CancelFunc

	guarded   bool
	initial   viewport.Change
	deferred  *viewport.Change
	lastErr   error
	closed    bool
	onSettled []func()
}

func NewReconciler(deps Dependencies) (*Reconciler, error) {
	if deps.Places == nil {
		return nil, errors.NewValidationError("place source is required")
	}
	if deps.Weather == nil {
		return nil, errors.NewValidationError("weather source is required")
	}
	if deps.Executor == nil {
		return nil, errors.NewValidationError("executor is required")
	}
	if deps.Sink == nil {
		return nil, errors.NewValidationError("marker sink is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	onClick := deps.OnClick
	if onClick == nil {
		onClick = func(*weather.Snapshot) {}
	}

	fetchCtx, fetchCancel := context.WithCancel(context.Background())
	return &Reconciler{
		sessionID:   deps.SessionID,
		places:      deps.Places,
		weather:     deps.Weather,
		exec:        deps.Executor,
		sink:        deps.Sink,
		onClick:     onClick,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
		locale:      deps.Locale,
		settle:      deps.SettleDelay,
		rendered:    make(map[string]*RenderedMarker),
		inflight:    make(map[string]uint64),
		fetchCtx:    fetchCtx,
		fetchCancel: fetchCancel,
	}, nil
}

// Populate performs the first population for the initial view. Viewport
// changes arriving within the settle delay are deferred and replayed once,
// if they still differ from the initial view.
func (r *Reconciler) Populate(bounds geo.Bounds, zoom int) {
	if r.closed {
		return
	}

	r.initial = viewport.Change{Bounds: bounds, Zoom: zoom, IsZoomChange: true}
	r.apply(r.initial)

	if r.settle <= 0 {
		return
	}
	r.guarded = true
	time.AfterFunc(r.settle, func() {
		r.exec.Post(r.releaseGuard)
	})
}

func (r *Reconciler) releaseGuard() {
	if r.closed || !r.guarded {
		return
	}
	r.guarded = false

	deferred := r.deferred
	r.deferred = nil
	if deferred == nil {
		return
	}
	if deferred.Bounds == r.initial.Bounds && deferred.Zoom == r.initial.Zoom {
		r.logger.Debug("Deferred viewport change matches the initial view, dropped",
			ports.F("session", r.sessionID))
		return
	}
	r.apply(*deferred)
}

// OnViewportChange reconciles the marker set against a debounced change. A
// zoom clears every marker; a pan removes only markers now out of bounds.
func (r *Reconciler) OnViewportChange(change viewport.Change) {
	if r.closed {
		return
	}

	if r.guarded {
		if r.deferred == nil {
			c := change
			r.deferred = &c
		} else {
			sticky := r.deferred.IsZoomChange || change.IsZoomChange
			*r.deferred = change
			r.deferred.IsZoomChange = sticky
		}
		r.logger.Debug("Viewport change deferred while the initial view settles",
			ports.F("session", r.sessionID),
			ports.F("generation", change.Generation))
		return
	}

	r.apply(change)
}

func (r *Reconciler) apply(change viewport.Change) {
	r.generation++
	r.bounds = change.Bounds
	r.zoom = change.Zoom
	r.lastErr = nil

	if change.IsZoomChange {
		r.clearAll()
	} else {
		r.pruneOutside(change.Bounds)
	}

	if r.queryCancel != nil {
		r.queryCancel()
	}
	queryCtx, cancel := context.WithCancel(r.fetchCtx)
	r.queryCancel = cancel

	r.state = StatePopulating
	r.pending++

	generation, bounds, zoom := r.generation, change.Bounds, change.Zoom
	r.logger.Debug("Querying places",
		ports.F("session", r.sessionID),
		ports.F("generation", generation),
		ports.F("zoom", zoom),
		ports.F("fullRefresh", change.IsZoomChange))

	go func() {
		places, err := r.places.FetchPlaces(queryCtx, bounds, zoom)
		r.exec.Post(func() { r.onPlaces(generation, places, err) })
	}()
}

func (r *Reconciler) clearAll() {
	r.epoch++
	r.fetchCancel()
	r.fetchCtx, r.fetchCancel = context.WithCancel(context.Background())

	r.sink.Clear()
	r.rendered = make(map[string]*RenderedMarker)
	r.inflight = make(map[string]uint64)
	r.reportCount()
}

func (r *Reconciler) pruneOutside(bounds geo.Bounds) {
	removed := 0
	for id, marker := range r.rendered {
		if bounds.Contains(marker.Place.Position()) {
			continue
		}
		r.sink.Remove(marker.Handle)
		delete(r.rendered, id)
		removed++
	}
	if removed > 0 {
		r.logger.Debug("Removed markers outside the viewport",
			ports.F("session", r.sessionID),
			ports.F("removed", removed))
		r.reportCount()
	}
}

func (r *Reconciler) onPlaces(generation uint64, places []geo.Place, err error) {
	r.pending--
	defer r.checkSettled()

	if r.closed || generation != r.generation {
		return
	}
	if err != nil {
		r.lastErr = err
		r.logger.Error("Place query failed, reconciliation halted",
			ports.F("session", r.sessionID),
			ports.F("generation", generation),
			ports.F("error", err))
		return
	}

	r.AddPlaces(places)
}

// AddPlaces requests weather for every place not rendered or already requested
// and renders a marker for each successful answer
func (r *Reconciler) AddPlaces(places []geo.Place) {
	if r.closed {
		return
	}

	for _, place := range places {
		if _, ok := r.rendered[place.ID]; ok {
			continue
		}
		if _, ok := r.inflight[place.ID]; ok {
			continue
		}

		if snapshot := r.weather.Cached(r.fetchCtx, place); snapshot != nil {
			r.render(place, snapshot)
			continue
		}

		epoch, ctx := r.epoch, r.fetchCtx
		r.inflight[place.ID] = epoch
		r.pending++
		if r.state != StatePopulating {
			r.state = StatePopulating
		}

		go func(place geo.Place) {
			snapshot := r.weather.Fetch(ctx, place)
			r.exec.Post(func() { r.onWeather(epoch, place, snapshot) })
		}(place)
	}
	r.checkSettled()
}

func (r *Reconciler) onWeather(epoch uint64, place geo.Place, snapshot *weather.Snapshot) {
	r.pending--
	defer r.checkSettled()

	if owner, ok := r.inflight[place.ID]; ok && owner == epoch {
		delete(r.inflight, place.ID)
	}
	if r.closed || epoch != r.epoch {
		return
	}
	if snapshot == nil {
		r.logger.Warn("No weather for place, marker skipped",
			ports.F("session", r.sessionID),
			ports.F("placeId", place.ID))
		return
	}
	if _, exists := r.rendered[place.ID]; exists {
		return
	}
	if !r.bounds.Contains(place.Position()) {
		r.logger.Debug("Place left the viewport before its weather arrived",
			ports.F("session", r.sessionID),
			ports.F("placeId", place.ID))
		return
	}

	r.render(place, snapshot)
}

func (r *Reconciler) render(place geo.Place, snapshot *weather.Snapshot) {
	id := place.ID
	handle := r.sink.Add(ports.MarkerSpec{
		ID:       id,
		Position: place.Position(),
		IconKey:  snapshot.IconKey,
		Label:    snapshot.Label(r.locale),
		OnClick: func() {
			r.exec.Post(func() { r.Click(id) })
		},
	})

	r.rendered[id] = &RenderedMarker{
		PlaceID:   id,
		Place:     place,
		Handle:    handle,
		Clustered: r.sink.Mode() == maploader.CapabilityClustered,
		Snapshot:  snapshot,
	}
	r.reportCount()
}

// Click surfaces the snapshot of a rendered marker to the click callback
func (r *Reconciler) Click(placeID string) (*weather.Snapshot, bool) {
	marker, ok := r.rendered[placeID]
	if !ok || r.closed {
		return nil, false
	}
	r.onClick(marker.Snapshot)
	return marker.Snapshot, true
}

// Snapshot returns the weather behind a rendered marker
func (r *Reconciler) Snapshot(placeID string) (*weather.Snapshot, bool) {
	marker, ok := r.rendered[placeID]
	if !ok {
		return nil, false
	}
	return marker.Snapshot, true
}

func (r *Reconciler) checkSettled() {
	if r.pending > 0 || r.state != StatePopulating {
		return
	}
	r.state = StateSettled
	callbacks := r.onSettled
	r.onSettled = nil
	for _, fn := range callbacks {
		fn()
	}
}

// WhenSettled runs fn once no query or weather request is outstanding
func (r *Reconciler) WhenSettled(fn func()) {
	if r.state != StatePopulating {
		fn()
		return
	}
	r.onSettled = append(r.onSettled, fn)
}

func (r *Reconciler) reportCount() {
	r.metrics.SetRenderedMarkers(r.sessionID, len(r.rendered))
}

func (r *Reconciler) State() State {
	return r.state
}

// Count returns the number of rendered markers
func (r *Reconciler) Count() int {
	return len(r.rendered)
}

// Markers returns the rendered markers ordered by place id
func (r *Reconciler) Markers() []RenderedMarker {
	out := make([]RenderedMarker, 0, len(r.rendered))
	for _, m := range r.rendered {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlaceID < out[j].PlaceID })
	return out
}

// Bounds returns the most recently applied viewport
func (r *Reconciler) Bounds() geo.Bounds {
	return r.bounds
}

// Generation returns the number of applied viewport changes
func (r *Reconciler) Generation() uint64 {
	return r.generation
}

// Err returns the failure that halted the latest pass, if any
func (r *Reconciler) Err() error {
	return r.lastErr
}

// Close cancels outstanding work and removes every marker
func (r *Reconciler) Close() {
	if r.closed {
		return
	}
	r.closed = true
	if r.queryCancel != nil {
		r.queryCancel()
	}
	r.fetchCancel()
	r.sink.Clear()
	r.rendered = make(map[string]*RenderedMarker)
	r.inflight = make(map[string]uint64)
	r.state = StateEmpty
	r.reportCount()
}
