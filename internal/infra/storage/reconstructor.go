// Package storage - reconstructor.go
// Rebuilds a day report from the persisted event log: report = f(events).
// Used to audit that the accumulated earnings match the recorded tours.
package storage

import (
	"context"
	"fmt"
)

// Reconstructor rebuilds run summaries from stored events.
type Reconstructor struct {
	eventRepo EventRepository
}

// NewReconstructor creates a new report reconstructor.
func NewReconstructor(eventRepo EventRepository) *Reconstructor {
	return &Reconstructor{eventRepo: eventRepo}
}

// RebuildReport recomputes the day's totals from the persisted events.
// The result must match the engine's own report; a mismatch means events
// were lost on the write path.
func (r *Reconstructor) RebuildReport(ctx context.Context, runID string) (DayReportRecord, error) {
	evts, err := r.eventRepo.GetByRunID(ctx, runID)
	if err != nil {
		return DayReportRecord{}, fmt.Errorf("failed to load events for run %s: %w", runID, err)
	}

	report := DayReportRecord{RunID: runID}
	for _, e := range evts {
		switch e.EventType {
		case "TOUR_ADMITTED":
			report.ToursAdmitted++
			if revenue, ok := e.Payload["revenue"].(float64); ok {
				report.TotalEarnings += int(revenue)
			}
		case "TOUR_SKIPPED":
			report.ToursSkipped++
		}
	}
	return report, nil
}
