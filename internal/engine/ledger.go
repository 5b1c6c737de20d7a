package engine

import (
	"sync"

	"github.com/rmbenavides/ZooDia/server/internal/domain/staff"
)

// Tour is a fact created when an activity successfully starts. Tours are
// never mutated or removed once recorded. The worker reference is
// non-owning; the tour does not control the worker's lifecycle.
type Tour struct {
	Category  string        `json:"category"`
	Species   string        `json:"species"`
	StartTime int           `json:"start_time"`
	Duration  int           `json:"duration"`
	Charged   int           `json:"charged"`
	Revenue   int           `json:"revenue"`
	Worker    *staff.Worker `json:"worker"`
}

// EndTime returns the first tick at which the tour is no longer active.
func (t Tour) EndTime() int {
	return t.StartTime + t.Duration
}

// ActiveAt reports whether tick falls inside [start, start+duration).
func (t Tour) ActiveAt(tick int) bool {
	return tick >= t.StartTime && tick < t.EndTime()
}

// TourLedger is the append-only record of admitted tours. The scheduler
// is the single writer; server-mode readers (handlers, hub) take the
// read lock.
type TourLedger struct {
	mu    sync.RWMutex
	tours []Tour
}

// NewTourLedger creates an empty ledger.
func NewTourLedger() *TourLedger {
	return &TourLedger{}
}

// Append records an admitted tour.
func (l *TourLedger) Append(t Tour) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tours = append(l.tours, t)
}

// ActiveAt returns every tour whose interval contains the given tick.
func (l *TourLedger) ActiveAt(tick int) []Tour {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var active []Tour
	for _, t := range l.tours {
		if t.ActiveAt(tick) {
			active = append(active, t)
		}
	}
	return active
}

// All returns the recorded tours in admission order.
func (l *TourLedger) All() []Tour {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tours
}

// Len returns the number of recorded tours.
func (l *TourLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tours)
}
