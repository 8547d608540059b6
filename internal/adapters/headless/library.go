// Package headless is a server-side mapping library. It keeps the state a
// browser map would hold (view, layers, markers, clusters) and fires the same
// zoomend/moveend notifications, so the synchronization engine can drive it
// exactly like an interactive map.
package headless

import (
	"context"
	"sync"

	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

const (
	LibraryName    = "headless-map"
	LibraryVersion = "1.0.0"
)

// Library is the imported library handle
type Library struct {
	partial    bool
	clustering bool
}

func (l *Library) Name() string    { return LibraryName }
func (l *Library) Version() string { return LibraryVersion }

// MapConstructor is nil when the library was only partially initialised
func (l *Library) MapConstructor() ports.MapConstructor {
	if l.partial {
		return nil
	}
	return NewMap
}

// ClusterConstructor is nil when the clustering plugin is disabled
func (l *Library) ClusterConstructor() ports.ClusterConstructor {
	if !l.clustering {
		return nil
	}
	return func(opts ports.ClusterOptions) ports.ClusterLayer {
		return NewClusterLayer(opts)
	}
}

// ImporterOption tunes what an Importer hands out
type ImporterOption func(*Importer)

// WithoutClustering imports the library without its clustering plugin
func WithoutClustering() ImporterOption {
	return func(i *Importer) { i.clustering = false }
}

// WithPartialInit makes the first n imports return a handle that lacks its
// map constructor. A negative n breaks every import.
func WithPartialInit(n int) ImporterOption {
	return func(i *Importer) { i.partialLeft = n }
}

// WithFailures makes the first n imports fail outright
func WithFailures(n int) ImporterOption {
	return func(i *Importer) { i.failLeft = n }
}

// Importer hands out Library handles and implements ports.LibraryImporter
type Importer struct {
	mu          sync.Mutex
	clustering  bool
	partialLeft int
	failLeft    int
	imports     int
}

func NewImporter(opts ...ImporterOption) *Importer {
	i := &Importer{clustering: true}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Importer) Import(ctx context.Context) (ports.MapLibrary, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewLibraryLoadError("import cancelled", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.imports++

	if i.failLeft > 0 {
		i.failLeft--
		return nil, errors.NewLibraryLoadError("map library bundle could not be fetched", nil)
	}

	lib := &Library{clustering: i.clustering}
	if i.partialLeft != 0 {
		if i.partialLeft > 0 {
			i.partialLeft--
		}
		lib.partial = true
	}
	return lib, nil
}

// Imports returns how many imports were attempted
func (i *Importer) Imports() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.imports
}
