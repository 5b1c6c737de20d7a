// Package storage persists zoo events and day reports. It is a thin
// adapter: the engine never depends on it, it only feeds the event log's
// optional persister hook.
package storage

import (
	"context"
	"time"
)

// ZooEventRecord is the storage shape of an engine event.
type ZooEventRecord struct {
	ID        string
	RunID     string
	Timestamp time.Time
	EventType string
	ActorID   string
	TargetID  string
	Payload   map[string]interface{}
	Tick      int
}

// DayReportRecord is the storage shape of a completed day's summary.
type DayReportRecord struct {
	RunID         string
	DayLength     int
	ToursAdmitted int
	ToursSkipped  int
	TotalEarnings int
	FinishedAt    time.Time
}

// EventRepository defines how zoo events are durably stored and queried.
type EventRepository interface {
	Append(ctx context.Context, event ZooEventRecord) error
	GetByRunID(ctx context.Context, runID string) ([]ZooEventRecord, error)
	GetByEventType(ctx context.Context, runID, eventType string) ([]ZooEventRecord, error)
}

// ReportRepository defines how day reports are stored.
type ReportRepository interface {
	Upsert(ctx context.Context, report DayReportRecord) error
	GetByRunID(ctx context.Context, runID string) (DayReportRecord, error)
}
