// Package viewport turns raw map notifications into a debounced stream of
// viewport changes, each tagged as a zoom (full refresh) or a pan (incremental).
package viewport

import (
	"context"
	"time"

	"weathermap.app/internal/core/geo"
)

// DefaultQuietPeriod is how long the map must stay still before a change is emitted
const DefaultQuietPeriod = 500 * time.Millisecond

// Change is one debounced viewport change
type Change struct {
	Bounds       geo.Bounds
	Zoom         int
	IsZoomChange bool
	// Generation increases by one per emitted change
	Generation uint64
}

type rawEvent struct {
	bounds geo.Bounds
	zoom   int
	isZoom bool
}

// Debouncer collapses bursts of raw events. The last observed bounds win and
// the zoom flag is sticky within a burst.
type Debouncer struct {
	quiet time.Duration
	in    chan rawEvent
	out   chan Change
	done  chan struct{}

	lastBounds geo.Bounds
	lastZoom   int
	generation uint64
}

// NewDebouncer creates a debouncer whose reference view is the initial map view
func NewDebouncer(quiet time.Duration, initial geo.Bounds, initialZoom int) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Debouncer{
		quiet:      quiet,
		in:         make(chan rawEvent, 64),
		out:        make(chan Change, 16),
		done:       make(chan struct{}),
		lastBounds: initial,
		lastZoom:   initialZoom,
	}
}

// Notify records a raw bound change. It is safe to call from any goroutine.
func (d *Debouncer) Notify(bounds geo.Bounds, zoom int, isZoom bool) {
	select {
	case d.in <- rawEvent{bounds: bounds, zoom: zoom, isZoom: isZoom}:
	case <-d.done:
	}
}

// Events returns the debounced stream. It is closed when Run returns.
func (d *Debouncer) Events() <-chan Change {
	return d.out
}

// Run debounces until ctx is cancelled. Pending changes are dropped on exit.
func (d *Debouncer) Run(ctx context.Context) {
	defer close(d.out)
	defer close(d.done)

	timer := time.NewTimer(d.quiet)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending *rawEvent
	for {
		var fire <-chan time.Time
		if pending != nil {
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return

		case ev := <-d.in:
			if pending == nil {
				pending = &ev
			} else {
				pending.bounds = ev.bounds
				pending.zoom = ev.zoom
				pending.isZoom = pending.isZoom || ev.isZoom
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d.quiet)

		case <-fire:
			change, ok := d.settle(*pending)
			pending = nil
			if !ok {
				continue
			}
			select {
			case d.out <- change:
			case <-ctx.Done():
				return
			}
		}
	}
}

// settle turns a collapsed burst into a Change. A move that changed the zoom
// level is the tail of a zoom and is treated as one. A pan back onto the last
// emitted view is dropped.
func (d *Debouncer) settle(ev rawEvent) (Change, bool) {
	isZoom := ev.isZoom || ev.zoom != d.lastZoom
	if !isZoom && ev.bounds == d.lastBounds {
		return Change{}, false
	}

	d.generation++
	d.lastBounds = ev.bounds
	d.lastZoom = ev.zoom

	return Change{
		Bounds:       ev.bounds,
		Zoom:         ev.zoom,
		IsZoomChange: isZoom,
		Generation:   d.generation,
	}, true
}
