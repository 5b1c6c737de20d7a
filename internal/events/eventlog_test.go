package events

import (
	"strings"
	"testing"
	"time"
)

func TestEventLogAppendAndReplay(t *testing.T) {
	el := NewEventLog(nil)

	el.Append(ZooEvent{ID: NewEventID(), Type: EventTypeWorkerStart, Tick: 12, ActorID: "Ana",
		Payload: WorkerStartPayload{Role: "Doctor", Animal: "Simba", Species: "Lion", Category: "Land", EndTime: 17}})
	el.Append(ZooEvent{ID: NewEventID(), Type: EventTypeTourSkipped, Tick: 14, ActorID: "Bruno",
		Payload: TourSkippedPayload{Role: "Feeder", Category: "Aquatic", ConflictsWith: "Land"}})

	if got := len(el.Replay()); got != 2 {
		t.Fatalf("replay length = %d, want 2", got)
	}
	if got := len(el.GetByType(EventTypeTourSkipped)); got != 1 {
		t.Fatalf("skip events = %d, want 1", got)
	}
	if got := len(el.GetByTick(12)); got != 1 {
		t.Fatalf("tick 12 events = %d, want 1", got)
	}
}

// Rendered lines must not leak IDs or wall-clock timestamps: they are the
// deterministic part of the log.
func TestRenderExcludesNondeterministicFields(t *testing.T) {
	id := NewEventID()
	e := ZooEvent{
		ID:        id,
		Timestamp: time.Now(),
		Type:      EventTypeTourAdmitted,
		Tick:      12,
		ActorID:   "Ana",
		Payload:   TourAdmittedPayload{Role: "Doctor", Category: "Land", Duration: 10, Charged: 3, Revenue: 90},
	}

	line := e.Render()
	if strings.Contains(line, id) {
		t.Error("rendered line must not contain the event ID")
	}
	if !strings.Contains(line, "charged=3") || !strings.Contains(line, "revenue=90") {
		t.Errorf("rendered line missing tour details: %s", line)
	}
}

type capturingPersister struct {
	appended []ZooEvent
}

func (p *capturingPersister) Append(e ZooEvent) error {
	p.appended = append(p.appended, e)
	return nil
}

func TestEventLogWritesThroughPersister(t *testing.T) {
	p := &capturingPersister{}
	el := NewEventLog(p)

	el.Append(ZooEvent{ID: NewEventID(), Type: EventTypeWorkerRelease, Tick: 17, ActorID: "Ana",
		Payload: WorkerReleasePayload{Role: "Doctor"}})

	if len(p.appended) != 1 {
		t.Fatalf("persister received %d events, want 1", len(p.appended))
	}
}
