package storage

import (
	"context"
	"testing"
)

type fakeEventRepo struct {
	records []ZooEventRecord
}

func (f *fakeEventRepo) Append(ctx context.Context, event ZooEventRecord) error {
	f.records = append(f.records, event)
	return nil
}

func (f *fakeEventRepo) GetByRunID(ctx context.Context, runID string) ([]ZooEventRecord, error) {
	var out []ZooEventRecord
	for _, r := range f.records {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) GetByEventType(ctx context.Context, runID, eventType string) ([]ZooEventRecord, error) {
	var out []ZooEventRecord
	for _, r := range f.records {
		if r.RunID == runID && r.EventType == eventType {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestRebuildReportFromEvents(t *testing.T) {
	repo := &fakeEventRepo{records: []ZooEventRecord{
		{RunID: "run-1", EventType: "WORKER_START", Tick: 12},
		{RunID: "run-1", EventType: "TOUR_ADMITTED", Tick: 12,
			Payload: map[string]interface{}{"revenue": float64(90), "charged": float64(3)}},
		{RunID: "run-1", EventType: "TOUR_SKIPPED", Tick: 14},
		{RunID: "run-1", EventType: "TOUR_ADMITTED", Tick: 30,
			Payload: map[string]interface{}{"revenue": float64(60), "charged": float64(3)}},
		{RunID: "run-2", EventType: "TOUR_ADMITTED", Tick: 5,
			Payload: map[string]interface{}{"revenue": float64(999)}},
	}}

	report, err := NewReconstructor(repo).RebuildReport(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("RebuildReport failed: %v", err)
	}
	if report.ToursAdmitted != 2 {
		t.Errorf("tours admitted = %d, want 2", report.ToursAdmitted)
	}
	if report.ToursSkipped != 1 {
		t.Errorf("tours skipped = %d, want 1", report.ToursSkipped)
	}
	if report.TotalEarnings != 150 {
		t.Errorf("total earnings = %d, want 150", report.TotalEarnings)
	}
}

func TestRebuildReportEmptyRun(t *testing.T) {
	report, err := NewReconstructor(&fakeEventRepo{}).RebuildReport(context.Background(), "nope")
	if err != nil {
		t.Fatalf("RebuildReport failed: %v", err)
	}
	if report.ToursAdmitted != 0 || report.TotalEarnings != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
