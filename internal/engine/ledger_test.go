package engine

import (
	"testing"

	"github.com/rmbenavides/ZooDia/server/internal/domain/staff"
)

func TestTourActiveWindowIsHalfOpen(t *testing.T) {
	tour := Tour{Category: "Land", StartTime: 12, Duration: 5}

	if tour.ActiveAt(11) {
		t.Error("tour must not be active before its start")
	}
	if !tour.ActiveAt(12) {
		t.Error("tour must be active at its start tick")
	}
	if !tour.ActiveAt(16) {
		t.Error("tour must be active at start+duration-1")
	}
	if tour.ActiveAt(17) {
		t.Error("tour must not be active at start+duration")
	}
}

func TestLedgerActiveAtFiltersOverlaps(t *testing.T) {
	ledger := NewTourLedger()
	w := staff.NewWorker("Ana", staff.RoleDoctor)

	ledger.Append(Tour{Category: "Land", StartTime: 12, Duration: 10, Worker: w})
	ledger.Append(Tour{Category: "Flying", StartTime: 40, Duration: 10, Worker: w})

	active := ledger.ActiveAt(14)
	if len(active) != 1 || active[0].Category != "Land" {
		t.Fatalf("expected only the Land tour at tick 14, got %v", active)
	}
	if got := ledger.ActiveAt(30); got != nil {
		t.Fatalf("expected no active tours at tick 30, got %v", got)
	}
	if ledger.Len() != 2 {
		t.Fatalf("expected 2 recorded tours, got %d", ledger.Len())
	}
}
