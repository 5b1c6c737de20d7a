package engine

import (
	"fmt"
	"math/rand"

	"github.com/rmbenavides/ZooDia/server/internal/domain/animal"
	"github.com/rmbenavides/ZooDia/server/internal/domain/staff"
	"github.com/rmbenavides/ZooDia/server/internal/domain/visitor"
)

// Registry holds the canonical entity sets for one zoo day: the
// deduplicated animals, the worker roster and the visitor roster.
// Iteration order is the input order, which keeps runs reproducible.
type Registry struct {
	animals  []*animal.Animal
	workers  []*staff.Worker
	visitors []*visitor.Visitor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Initialize loads the entity sets and draws each worker's start window.
// Animals are deduplicated by species, first occurrence wins. A worker
// whose shift does not fit inside the day is a configuration error and
// aborts setup before any tick runs.
func (r *Registry) Initialize(animals []*animal.Animal, workers []*staff.Worker, visitors []*visitor.Visitor, dayLength int, rng *rand.Rand) error {
	seen := make(map[string]bool, len(animals))
	r.animals = r.animals[:0]
	for _, a := range animals {
		if seen[a.Species] {
			continue
		}
		seen[a.Species] = true
		r.animals = append(r.animals, a)
	}

	for _, w := range workers {
		window := dayLength - w.Duration
		if window < 0 {
			return fmt.Errorf("engine: worker %s (%s): shift of %d ticks exceeds day length %d",
				w.Name, w.Role, w.Duration, dayLength)
		}
		// Uniform over [0, dayLength-duration], both ends inclusive.
		w.StartTime = rng.Intn(window + 1)
		w.EndTime = w.StartTime + w.Duration
	}

	r.workers = workers
	r.visitors = visitors
	return nil
}

// Animals returns the deduplicated animal set in input order.
func (r *Registry) Animals() []*animal.Animal {
	return r.animals
}

// Workers returns the worker roster in input order.
func (r *Registry) Workers() []*staff.Worker {
	return r.workers
}

// Visitors returns the visitor roster in input order.
func (r *Registry) Visitors() []*visitor.Visitor {
	return r.visitors
}
