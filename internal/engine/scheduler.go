package engine

import (
	"math/rand"
	"time"

	"github.com/rmbenavides/ZooDia/server/internal/domain/animal"
	"github.com/rmbenavides/ZooDia/server/internal/events"
	"github.com/rmbenavides/ZooDia/server/internal/platform/logger"
	"github.com/rmbenavides/ZooDia/server/internal/platform/metrics"
)

// Scheduler drives the zoo day: each tick it starts workers whose window
// opens, consults the conflict table against the tour ledger, and
// releases workers whose window has closed.
//
// Assignment exclusivity is an invariant on two index maps rather than a
// nullable field per worker: byAnimal holds the occupying worker for each
// animal, byWorker the held animal for each busy worker.
type Scheduler struct {
	cfg        Config
	registry   *Registry
	conflicts  *ConflictTable
	ledger     *TourLedger
	accountant *Accountant
	eventLog   *events.EventLog
	logger     *logger.Logger
	rng        *rand.Rand

	byAnimal map[int]int // animal index -> worker index
	byWorker map[int]int // worker index -> animal index

	toursAdmitted int
	toursSkipped  int

	// pick selects the candidate animal index for a starting worker.
	// Overridable so tests can force specific pairings.
	pick func(workerIdx, animalCount int) int
}

// NewScheduler wires the scheduler to its collaborators.
func NewScheduler(cfg Config, reg *Registry, conflicts *ConflictTable, ledger *TourLedger, acc *Accountant, eventLog *events.EventLog, log *logger.Logger, rng *rand.Rand) *Scheduler {
	s := &Scheduler{
		cfg:        cfg,
		registry:   reg,
		conflicts:  conflicts,
		ledger:     ledger,
		accountant: acc,
		eventLog:   eventLog,
		logger:     log,
		rng:        rng,
		byAnimal:   make(map[int]int),
		byWorker:   make(map[int]int),
	}
	s.pick = func(_, animalCount int) int {
		return s.rng.Intn(animalCount)
	}
	return s
}

// Step processes one tick: start phase first, then release phase, both in
// roster order so runs are reproducible.
func (s *Scheduler) Step(tick int) {
	started := time.Now()

	for wi, w := range s.registry.Workers() {
		if tick == w.StartTime {
			s.tryStart(wi, tick)
		}
	}

	for wi, w := range s.registry.Workers() {
		if _, busy := s.byWorker[wi]; busy && tick >= w.EndTime {
			s.release(wi, tick)
		}
	}

	metrics.Get().RecordTick(time.Since(started))
}

// ReleaseRemaining frees every worker still holding an animal once the
// day is over. Workers whose window closes exactly at DayLength release
// here, logged at the final tick; nothing survives past it.
func (s *Scheduler) ReleaseRemaining(finalTick int) {
	for wi := range s.registry.Workers() {
		if _, busy := s.byWorker[wi]; busy {
			s.release(wi, finalTick)
		}
	}
}

// tryStart attempts the Idle -> Busy transition for a worker whose
// window opens this tick.
func (s *Scheduler) tryStart(wi, tick int) {
	animals := s.registry.Animals()
	if len(animals) == 0 {
		return
	}
	w := s.registry.Workers()[wi]

	ai := s.pick(wi, len(animals))
	candidate := animals[ai]

	if _, held := s.byAnimal[ai]; held {
		// Candidate already in use. The worker misses its window; the
		// start tick never repeats.
		s.logger.Warn("worker %s (%s) blocked at tick %d: %s already assigned",
			w.Name, w.Role, tick, candidate.Species)
		return
	}

	s.byAnimal[ai] = wi
	s.byWorker[wi] = ai
	metrics.Get().RecordWorkerStart()

	category := s.categoryOf(candidate)
	startEvent := events.ZooEvent{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeWorkerStart,
		Tick:      tick,
		ActorID:   w.Name,
		TargetID:  candidate.Species,
		Payload: events.WorkerStartPayload{
			Role:     string(w.Role),
			Animal:   candidate.Name,
			Species:  candidate.Species,
			Category: category,
			EndTime:  w.EndTime,
		},
	}
	s.eventLog.Append(startEvent)
	s.logger.Event(string(events.EventTypeWorkerStart), w.Name, startEvent.Render())

	s.admitTour(wi, ai, category, tick)
}

// admitTour runs conflict resolution for the candidate and, on success,
// charges visitors and appends the tour. On rejection no tour is recorded
// and no visitor is charged; by default the worker keeps its assignment
// for the rest of its window.
func (s *Scheduler) admitTour(wi, ai int, category string, tick int) {
	w := s.registry.Workers()[wi]
	candidate := s.registry.Animals()[ai]

	for _, active := range s.ledger.ActiveAt(tick) {
		if !s.conflicts.ConflictsWith(active.Category, category) {
			continue
		}
		s.toursSkipped++
		metrics.Get().RecordTourSkipped()

		skip := events.ZooEvent{
			ID:        events.NewEventID(),
			Timestamp: time.Now(),
			Type:      events.EventTypeTourSkipped,
			Tick:      tick,
			ActorID:   w.Name,
			TargetID:  candidate.Species,
			Payload: events.TourSkippedPayload{
				Role:          string(w.Role),
				Category:      category,
				ConflictsWith: active.Category,
			},
		}
		s.eventLog.Append(skip)
		s.logger.Event(string(events.EventTypeTourSkipped), w.Name, skip.Render())

		if s.cfg.RejectionPolicy == ReleaseOnRejection {
			delete(s.byAnimal, ai)
			delete(s.byWorker, wi)
		}
		return
	}

	charged, amount := s.accountant.Charge(w, s.registry.Visitors())
	s.ledger.Append(Tour{
		Category:  category,
		Species:   candidate.Species,
		StartTime: tick,
		Duration:  s.cfg.TourLength,
		Charged:   charged,
		Revenue:   amount,
		Worker:    w,
	})
	s.toursAdmitted++
	metrics.Get().RecordTourAdmitted(amount)

	admitted := events.ZooEvent{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeTourAdmitted,
		Tick:      tick,
		ActorID:   w.Name,
		TargetID:  candidate.Species,
		Payload: events.TourAdmittedPayload{
			Role:     string(w.Role),
			Category: category,
			Duration: s.cfg.TourLength,
			Charged:  charged,
			Revenue:  amount,
		},
	}
	s.eventLog.Append(admitted)
	s.logger.Event(string(events.EventTypeTourAdmitted), w.Name, admitted.Render())
}

// release performs the Busy -> Idle transition.
func (s *Scheduler) release(wi, tick int) {
	w := s.registry.Workers()[wi]
	ai := s.byWorker[wi]
	delete(s.byAnimal, ai)
	delete(s.byWorker, wi)
	metrics.Get().RecordWorkerRelease()

	rel := events.ZooEvent{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeWorkerRelease,
		Tick:      tick,
		ActorID:   w.Name,
		TargetID:  s.registry.Animals()[ai].Species,
		Payload:   events.WorkerReleasePayload{Role: string(w.Role)},
	}
	s.eventLog.Append(rel)
	s.logger.Event(string(events.EventTypeWorkerRelease), w.Name, rel.Render())
}

// categoryOf maps an animal to its conflict-table tag.
func (s *Scheduler) categoryOf(a *animal.Animal) string {
	if s.cfg.CategoryMode == CategoryBySpecies {
		return a.Species
	}
	return string(a.Kind)
}

// assignedAnimal returns the animal index held by a worker, if any.
func (s *Scheduler) assignedAnimal(wi int) (int, bool) {
	ai, ok := s.byWorker[wi]
	return ai, ok
}
