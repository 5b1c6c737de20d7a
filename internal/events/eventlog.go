// Package events provides the append-only event log for a zoo day.
// Every tick-level decision the scheduler makes (worker starts, tour
// admissions, skips, releases) becomes an immutable record here.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a zoo event.
type EventType string

const (
	EventTypeWorkerStart   EventType = "WORKER_START"
	EventTypeTourAdmitted  EventType = "TOUR_ADMITTED"
	EventTypeTourSkipped   EventType = "TOUR_SKIPPED"
	EventTypeWorkerRelease EventType = "WORKER_RELEASE"
	EventTypeDayReport     EventType = "DAY_REPORT"
)

// WorkerStartPayload records a worker taking its animal at window open.
type WorkerStartPayload struct {
	Role     string `json:"role"`
	Animal   string `json:"animal"`
	Species  string `json:"species"`
	Category string `json:"category"`
	EndTime  int    `json:"end_time"`
}

// TourAdmittedPayload records a successfully admitted tour.
type TourAdmittedPayload struct {
	Role     string `json:"role"`
	Category string `json:"category"`
	Duration int    `json:"duration"`
	Charged  int    `json:"charged"`
	Revenue  int    `json:"revenue"`
}

// TourSkippedPayload records a conflict rejection. Informational only.
type TourSkippedPayload struct {
	Role          string `json:"role"`
	Category      string `json:"category"`
	ConflictsWith string `json:"conflicts_with"`
}

// WorkerReleasePayload records a worker's window closing.
type WorkerReleasePayload struct {
	Role string `json:"role"`
}

// DayReportPayload is the final summary emitted after the last tick.
type DayReportPayload struct {
	ToursAdmitted int `json:"tours_admitted"`
	ToursSkipped  int `json:"tours_skipped"`
	TotalEarnings int `json:"total_earnings"`
}

// ZooEvent represents an immutable record of a scheduling decision.
type ZooEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	Tick      int         `json:"tick"`
	ActorID   string      `json:"actor_id"`  // worker name (or SYSTEM)
	TargetID  string      `json:"target_id"` // animal species (optional)
	Payload   interface{} `json:"payload"`   // event-specific data
}

// Render formats the event as one deterministic, human-readable line.
// IDs and wall-clock timestamps are deliberately excluded so that two
// seeded runs over the same dataset render identical logs.
func (e ZooEvent) Render() string {
	switch p := e.Payload.(type) {
	case WorkerStartPayload:
		return fmt.Sprintf("tick %3d | WORKER_START   | %s (%s) -> %s (%s)",
			e.Tick, e.ActorID, p.Role, p.Animal, p.Species)
	case TourAdmittedPayload:
		return fmt.Sprintf("tick %3d | TOUR_ADMITTED  | %s (%s) | category=%s charged=%d revenue=%d",
			e.Tick, e.ActorID, p.Role, p.Category, p.Charged, p.Revenue)
	case TourSkippedPayload:
		return fmt.Sprintf("tick %3d | TOUR_SKIPPED   | %s (%s) | category=%s conflicts with active %s tour",
			e.Tick, e.ActorID, p.Role, p.Category, p.ConflictsWith)
	case WorkerReleasePayload:
		return fmt.Sprintf("tick %3d | WORKER_RELEASE | %s (%s)", e.Tick, e.ActorID, p.Role)
	case DayReportPayload:
		return fmt.Sprintf("day complete | tours=%d skipped=%d earnings=%d",
			p.ToursAdmitted, p.ToursSkipped, p.TotalEarnings)
	}
	return fmt.Sprintf("tick %3d | %s | %s", e.Tick, e.Type, e.ActorID)
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event ZooEvent) error
}

// EventLog is the in-memory append-only log of zoo events. The scheduler
// is the single writer; the hub poller and HTTP handlers read it.
type EventLog struct {
	mu        sync.RWMutex
	events    []ZooEvent
	persister EventPersister
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]ZooEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
func (el *EventLog) Append(event ZooEvent) {
	el.mu.Lock()
	el.events = append(el.events, event)
	el.mu.Unlock()

	if el.persister != nil {
		// Write through to persistent storage.
		_ = el.persister.Append(event)
	}
}

// GetByType returns all events of a specific type, in append order.
func (el *EventLog) GetByType(t EventType) []ZooEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []ZooEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// GetByTick returns all events that occurred on a specific tick.
func (el *EventLog) GetByTick(tick int) []ZooEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []ZooEvent
	for _, e := range el.events {
		if e.Tick == tick {
			result = append(result, e)
		}
	}
	return result
}

// Replay returns the full history of events in append order.
func (el *EventLog) Replay() []ZooEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.events
}

// RenderAll returns the rendered line for every event, in append order.
func (el *EventLog) RenderAll() []string {
	el.mu.RLock()
	defer el.mu.RUnlock()

	lines := make([]string, 0, len(el.events))
	for _, e := range el.events {
		lines = append(lines, e.Render())
	}
	return lines
}

// NewEventID creates a unique event identifier.
func NewEventID() string {
	return uuid.NewString()
}
