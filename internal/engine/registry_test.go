package engine

import (
	"math/rand"
	"testing"

	"github.com/rmbenavides/ZooDia/server/internal/domain/animal"
	"github.com/rmbenavides/ZooDia/server/internal/domain/staff"
	"github.com/rmbenavides/ZooDia/server/internal/domain/visitor"
)

func testAnimals() []*animal.Animal {
	return []*animal.Animal{
		animal.NewAnimal("Simba", "Lion", animal.KindLand, "Savannah"),
		animal.NewAnimal("Flipper", "Dolphin", animal.KindAquatic, "Lagoon"),
		animal.NewAnimal("Rio", "Macaw", animal.KindFlying, "Aviary"),
		animal.NewAnimal("Tembo", "Elephant", animal.KindLand, "Savannah"),
	}
}

func testWorkers() []*staff.Worker {
	return []*staff.Worker{
		staff.NewWorker("Ana", staff.RoleDoctor),
		staff.NewWorker("Bruno", staff.RoleFeeder),
		staff.NewWorker("Carla", staff.RoleCleaner),
	}
}

func testVisitors() []*visitor.Visitor {
	return []*visitor.Visitor{
		visitor.NewVisitor("Diego"),
		visitor.NewVisitor("Elena"),
		visitor.NewVisitor("Fermin"),
	}
}

func TestRegistryDeduplicatesBySpecies(t *testing.T) {
	animals := append(testAnimals(),
		animal.NewAnimal("Nala", "Lion", animal.KindLand, "Savannah"))

	reg := NewRegistry()
	rng := rand.New(rand.NewSource(1))
	if err := reg.Initialize(animals, testWorkers(), testVisitors(), 120, rng); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if got := len(reg.Animals()); got != 4 {
		t.Fatalf("expected 4 deduplicated animals, got %d", got)
	}
	for _, a := range reg.Animals() {
		if a.Species == "Lion" && a.Name != "Simba" {
			t.Errorf("expected first-seen Lion (Simba) to win, got %s", a.Name)
		}
	}
}

func TestRegistryDrawsStartWindowsInsideDay(t *testing.T) {
	const dayLength = 120
	rng := rand.New(rand.NewSource(7))

	// Many draws to exercise both window edges.
	for i := 0; i < 200; i++ {
		workers := testWorkers()
		reg := NewRegistry()
		if err := reg.Initialize(testAnimals(), workers, testVisitors(), dayLength, rng); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		for _, w := range workers {
			if w.StartTime < 0 || w.StartTime > dayLength-w.Duration {
				t.Fatalf("worker %s start %d outside [0, %d]", w.Name, w.StartTime, dayLength-w.Duration)
			}
			if w.EndTime != w.StartTime+w.Duration {
				t.Fatalf("worker %s end %d != start %d + duration %d", w.Name, w.EndTime, w.StartTime, w.Duration)
			}
		}
	}
}

func TestRegistryRejectsShiftLongerThanDay(t *testing.T) {
	reg := NewRegistry()
	rng := rand.New(rand.NewSource(1))

	// Feeder shift is 10 ticks; a 5-tick day cannot fit it.
	err := reg.Initialize(testAnimals(), testWorkers(), testVisitors(), 5, rng)
	if err == nil {
		t.Fatal("expected configuration error for shift longer than day")
	}
}
