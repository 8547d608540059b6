package mapview

import (
	"sync"

	"weathermap.app/internal/core/weather"
)

const sheetBuffer = 8

// Sheet is the bottom sheet of a map session: it holds the snapshot of the
// last clicked marker and fans every new one out to its subscribers.
type Sheet struct {
	mu          sync.RWMutex
	current     *weather.Snapshot
	subscribers map[int]chan *weather.Snapshot
	nextID      int
	closed      bool
}

func NewSheet() *Sheet {
	return &Sheet{subscribers: make(map[int]chan *weather.Snapshot)}
}

// Show replaces the displayed snapshot. Slow subscribers miss updates
// rather than block the caller.
func (s *Sheet) Show(snapshot *weather.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || snapshot == nil {
		return
	}
	s.current = snapshot
	for _, ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// Current returns the displayed snapshot, nil before the first click
func (s *Sheet) Current() *weather.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe returns a channel receiving every shown snapshot and a function
// that unsubscribes. The channel is closed on unsubscribe or when the sheet closes.
func (s *Sheet) Subscribe() (<-chan *weather.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *weather.Snapshot, sheetBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subscribers[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			close(sub)
			delete(s.subscribers, id)
		}
	}
}

func (s *Sheet) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Close disconnects every subscriber
func (s *Sheet) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
}
