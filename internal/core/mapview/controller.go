// Package mapview bootstraps one interactive map: it resolves the mapping
// library, mounts the map, wires native pan/zoom notifications through the
// debouncer into the marker reconciler and routes marker clicks to the
// bottom sheet.
package mapview

import (
	"context"
	"sync"
	"time"

	"weathermap.app/internal/core/eventloop"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/maploader"
	"weathermap.app/internal/core/markers"
	"weathermap.app/internal/core/viewport"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/internal/retry"
	"weathermap.app/pkg/errors"
)

// Clusters split into individual markers from this zoom on
const disableClusteringAtZoom = 14

// closeTimeout bounds how long Close waits for the event loop to tear down markers
const closeTimeout = 2 * time.Second

// Status of a map controller
type Status string

const (
	StatusStarting    Status = "starting"
	StatusReady       Status = "ready"
	StatusUnavailable Status = "unavailable"
	StatusFailed      Status = "failed"
	StatusClosed      Status = "closed"
)

// LibraryLoader resolves the mapping library
type LibraryLoader interface {
	Load(ctx context.Context, forceReload bool) (maploader.Handle, error)
}

// View describes the current state of a map
type View struct {
	SessionID  string     `json:"sessionId"`
	Status     Status     `json:"status"`
	Center     geo.LatLng `json:"center"`
	Zoom       int        `json:"zoom"`
	Bounds     geo.Bounds `json:"bounds"`
	Capability string     `json:"capability"`
	State      string     `json:"state"`
	Markers    int        `json:"markers"`
	Generation uint64     `json:"generation"`
	Error      string     `json:"error,omitempty"`
}

// Options describes the map a client asks for
type Options struct {
	Container string `json:"container"`
	Locale    string `json:"locale"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type Dependencies struct {
	SessionID string
	Container string
	Locale    string
	// Width and Height override the configured viewport size when positive
	Width   int
	Height  int
	Loader  LibraryLoader
	Places  markers.PlaceSource
	Weather markers.WeatherSource
	Config  ports.ConfigProvider
	Logger  ports.Logger
	Metrics ports.MetricsCollector
}

type Controller struct {
	id        string
	container string
	locale    string
	width     int
	height    int
	loader    LibraryLoader
	places    markers.PlaceSource
	weather   markers.WeatherSource
	config    ports.ConfigProvider
	logger    ports.Logger
	metrics   ports.MetricsCollector

	loop   *eventloop.Loop
	sheet  *Sheet
	cancel context.CancelFunc

	mu           sync.RWMutex
	status       Status
	err          error
	instance     ports.MapInstance
	sink         markers.Sink
	reconciler   *markers.Reconciler
	lastActivity time.Time

	closeOnce sync.Once
}

func NewController(deps Dependencies) (*Controller, error) {
	if deps.Container == "" {
		return nil, errors.NewValidationError("map container is required")
	}
	if deps.Loader == nil {
		return nil, errors.NewValidationError("library loader is required")
	}
	if deps.Places == nil {
		return nil, errors.NewValidationError("place source is required")
	}
	if deps.Weather == nil {
		return nil, errors.NewValidationError("weather source is required")
	}
	if deps.Config == nil {
		return nil, errors.NewValidationError("config is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &Controller{
		id:           deps.SessionID,
		container:    deps.Container,
		locale:       deps.Locale,
		width:        deps.Width,
		height:       deps.Height,
		loader:       deps.Loader,
		places:       deps.Places,
		weather:      deps.Weather,
		config:       deps.Config,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		loop:         eventloop.New(),
		sheet:        NewSheet(),
		status:       StatusStarting,
		lastActivity: time.Now(),
	}, nil
}

// Start bootstraps the map. Outside an interactive environment the controller
// stays inert and Start returns nil. A failed bootstrap leaves the controller
// in StatusFailed and returns the error.
func (c *Controller) Start(ctx context.Context) error {
	cfg := c.config.GetMapConfig()
	if c.width <= 0 || c.height <= 0 {
		c.width, c.height = cfg.Width, cfg.Height
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.loop.Run(runCtx)

	instance, handle, err := c.bootstrap(ctx, cfg)
	if err != nil {
		c.logger.Error("Map initialisation failed",
			ports.F("session", c.id),
			ports.F("error", err))
		c.setStatus(StatusFailed, err)
		return err
	}
	if !handle.Available() {
		c.logger.Info("Map library unavailable, map stays inert", ports.F("session", c.id))
		c.setStatus(StatusUnavailable, nil)
		return nil
	}

	if err := c.mount(runCtx, instance, handle, cfg); err != nil {
		instance.Remove()
		c.setStatus(StatusFailed, err)
		return err
	}

	c.logger.Info("Map ready",
		ports.F("session", c.id),
		ports.F("container", c.container),
		ports.F("capability", handle.Capability.String()),
		ports.F("zoom", instance.Zoom()))
	return nil
}

type bootResult struct {
	instance ports.MapInstance
	handle   maploader.Handle
}

func (c *Controller) bootstrap(ctx context.Context, cfg ports.MapConfig) (ports.MapInstance, maploader.Handle, error) {
	opts := ports.MapOptions{
		Center: cfg.DefaultCenter,
		Zoom:   cfg.DefaultZoom,
		Width:  c.width,
		Height: c.height,
	}

	forceReload := false
	policy := retry.Policy{
		MaxAttempts: cfg.InitAttempts,
		Backoff:     retry.Linear(cfg.InitBaseDelay),
		OnRetry: func(attempt int, err error, wait time.Duration) {
			c.logger.Warn("Map initialisation failed, retrying",
				ports.F("session", c.id),
				ports.F("attempt", attempt),
				ports.F("wait", wait.String()),
				ports.F("error", err))
		},
	}

	res, err := retry.Do(ctx, policy, func(ctx context.Context, attempt int) (bootResult, error) {
		handle, err := c.loader.Load(ctx, forceReload)
		if err != nil {
			return bootResult{}, err
		}
		if !handle.Available() {
			return bootResult{handle: handle}, nil
		}

		newMap := handle.Library.MapConstructor()
		if newMap == nil {
			// the shared handle went bad after it was published
			forceReload = true
			return bootResult{}, errors.NewLibraryLoadError("map constructor missing at use time", nil)
		}

		instance, err := newMap(c.container, opts)
		if err != nil {
			if errors.IsValidationError(err) {
				return bootResult{}, retry.Permanent(err)
			}
			return bootResult{}, err
		}
		return bootResult{instance: instance, handle: handle}, nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, maploader.Handle{}, errors.NewLibraryLoadError("map initialisation cancelled", ctxErr)
		}
		return nil, maploader.Handle{}, err
	}
	return res.instance, res.handle, nil
}

func (c *Controller) mount(runCtx context.Context, instance ports.MapInstance, handle maploader.Handle, cfg ports.MapConfig) error {
	sink := markers.NewSink(instance, handle, cfg.EnableClustering,
		ports.ClusterOptions{DisableClusteringAtZoom: disableClusteringAtZoom})

	reconciler, err := markers.NewReconciler(markers.Dependencies{
		SessionID:   c.id,
		Places:      c.places,
		Weather:     c.weather,
		Executor:    c.loop,
		Sink:        sink,
		OnClick:     c.sheet.Show,
		Logger:      c.logger,
		Metrics:     c.metrics,
		Locale:      c.locale,
		SettleDelay: cfg.SettleDelay,
	})
	if err != nil {
		return err
	}

	debouncer := viewport.NewDebouncer(cfg.DebounceQuiet, instance.Bounds(), instance.Zoom())
	instance.On(ports.EventZoomEnd, func() {
		debouncer.Notify(instance.Bounds(), instance.Zoom(), true)
	})
	instance.On(ports.EventMoveEnd, func() {
		debouncer.Notify(instance.Bounds(), instance.Zoom(), false)
	})

	bounds, zoom := instance.Bounds(), instance.Zoom()
	c.loop.Post(func() { reconciler.Populate(bounds, zoom) })

	c.mu.Lock()
	c.instance = instance
	c.sink = sink
	c.reconciler = reconciler
	c.status = StatusReady
	c.mu.Unlock()

	go debouncer.Run(runCtx)
	go func() {
		for change := range debouncer.Events() {
			c.loop.Post(func() { reconciler.OnViewportChange(change) })
		}
	}()
	return nil
}

func (c *Controller) setStatus(status Status, err error) {
	c.mu.Lock()
	c.status = status
	c.err = err
	c.mu.Unlock()
}

func (c *Controller) touch() {
	c.mu.Lock()
	c.lastActivity = time.Now()
	c.mu.Unlock()
}

func (c *Controller) ready() (ports.MapInstance, *markers.Reconciler, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch c.status {
	case StatusReady:
		return c.instance, c.reconciler, nil
	case StatusClosed:
		return nil, nil, errors.NewSessionClosedError("map session is closed")
	case StatusStarting:
		return nil, nil, errors.NewUnavailableError("map is still starting")
	default:
		return nil, nil, errors.NewUnavailableError("map is not available")
	}
}

// SetViewport moves the map. The resulting native notifications flow through
// the debouncer, so the marker set follows once the map has been still for
// the quiet period.
func (c *Controller) SetViewport(center geo.LatLng, zoom int) error {
	instance, _, err := c.ready()
	if err != nil {
		return err
	}
	c.touch()
	instance.SetView(center, zoom)
	return nil
}

// Markers exports the rendered markers, or their clusters, as GeoJSON
func (c *Controller) Markers() (geo.FeatureCollection, error) {
	instance, _, err := c.ready()
	if err != nil {
		return geo.FeatureCollection{}, err
	}
	c.touch()
	return instance.GeoJSON(), nil
}

// Click opens the bottom sheet for a rendered marker
func (c *Controller) Click(ctx context.Context, placeID string) (*weather.Snapshot, error) {
	_, reconciler, err := c.ready()
	if err != nil {
		return nil, err
	}
	c.touch()

	var (
		snapshot *weather.Snapshot
		found    bool
	)
	if err := c.loop.Call(ctx, func() { snapshot, found = reconciler.Click(placeID) }); err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFoundError("no marker for place " + placeID)
	}
	return snapshot, nil
}

// WaitSettled blocks until no place query or weather request is outstanding
func (c *Controller) WaitSettled(ctx context.Context) error {
	_, reconciler, err := c.ready()
	if err != nil {
		return err
	}

	settled := make(chan struct{})
	if err := c.loop.Call(ctx, func() {
		reconciler.WhenSettled(func() { close(settled) })
	}); err != nil {
		return err
	}

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.loop.Done():
		return errors.NewSessionClosedError("map session is closed")
	}
}

// View reports the map state
func (c *Controller) View(ctx context.Context) (View, error) {
	c.mu.RLock()
	view := View{SessionID: c.id, Status: c.status}
	if c.err != nil {
		view.Error = c.err.Error()
	}
	instance, reconciler, sink := c.instance, c.reconciler, c.sink
	c.mu.RUnlock()

	if view.Status != StatusReady {
		return view, nil
	}

	view.Center = instance.Center()
	view.Zoom = instance.Zoom()
	view.Bounds = instance.Bounds()
	view.Capability = sink.Mode().String()

	err := c.loop.Call(ctx, func() {
		view.State = reconciler.State().String()
		view.Markers = reconciler.Count()
		view.Generation = reconciler.Generation()
		if err := reconciler.Err(); err != nil {
			view.Error = err.Error()
		}
	})
	return view, err
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Sheet returns the bottom sheet marker clicks are shown on
func (c *Controller) Sheet() *Sheet {
	return c.sheet
}

// LastActivity is the time of the last viewport, marker or click request
func (c *Controller) LastActivity() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastActivity
}

// Close removes every marker and the map, and stops background work
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		instance, reconciler := c.instance, c.reconciler
		c.status = StatusClosed
		c.mu.Unlock()

		if reconciler != nil {
			ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			if err := c.loop.Call(ctx, reconciler.Close); err != nil {
				c.logger.Warn("Marker teardown did not complete",
					ports.F("session", c.id),
					ports.F("error", err))
			}
			cancel()
		}
		if c.cancel != nil {
			c.cancel()
		}
		c.loop.Close()
		if instance != nil {
			instance.Remove()
		}
		c.sheet.Close()
		c.logger.Info("Map closed", ports.F("session", c.id))
	})
}
