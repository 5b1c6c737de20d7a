package engine

import (
	"errors"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rmbenavides/ZooDia/server/internal/domain/animal"
	"github.com/rmbenavides/ZooDia/server/internal/domain/staff"
	"github.com/rmbenavides/ZooDia/server/internal/domain/visitor"
	"github.com/rmbenavides/ZooDia/server/internal/events"
	"github.com/rmbenavides/ZooDia/server/internal/platform/logger"
)

// ErrSimulationActive is returned when a second simulation is constructed
// before the first one is closed. One zoo day runs per process lifetime
// unless the previous instance has been released.
var ErrSimulationActive = errors.New("engine: a simulation is already active; close it first")

// simulationActive is the process-lifetime guard. The instance itself is
// passed around explicitly; only the liveness flag is shared.
var simulationActive atomic.Bool

// Report summarizes a completed day.
type Report struct {
	DayLength     int `json:"day_length"`
	ToursAdmitted int `json:"tours_admitted"`
	ToursSkipped  int `json:"tours_skipped"`
	TotalEarnings int `json:"total_earnings"`
}

// Simulation is the orchestrator for one zoo day. It owns the registry,
// the conflict table, the tour ledger, the pricing policy, the accountant
// and the single seeded random source.
type Simulation struct {
	cfg        Config
	registry   *Registry
	conflicts  *ConflictTable
	ledger     *TourLedger
	pricing    *PricePolicy
	accountant *Accountant
	scheduler  *Scheduler
	eventLog   *events.EventLog
	logger     *logger.Logger
	rng        *rand.Rand

	currentTick int
	finished    bool
	closed      bool
}

// NewSimulation constructs and initializes a simulation from a fixed
// dataset. Configuration errors (invalid config, shift longer than the
// day) are reported here, before any tick executes. Constructing a second
// live simulation fails with ErrSimulationActive.
func NewSimulation(cfg Config, animals []*animal.Animal, workers []*staff.Worker, visitors []*visitor.Visitor, eventLog *events.EventLog, log *logger.Logger) (*Simulation, error) {
	if !simulationActive.CompareAndSwap(false, true) {
		return nil, ErrSimulationActive
	}

	if err := cfg.Validate(); err != nil {
		simulationActive.Store(false)
		return nil, err
	}
	if cfg.Conflicts == nil {
		cfg.Conflicts = DefaultConflicts()
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	registry := NewRegistry()
	if err := registry.Initialize(animals, workers, visitors, cfg.DayLength, rng); err != nil {
		simulationActive.Store(false)
		return nil, err
	}

	ledger := NewTourLedger()
	pricing := NewPricePolicy(cfg.Prices, cfg.DefaultPrice)
	accountant := NewAccountant(cfg.ChargePolicy, cfg.GuestCount, pricing, rng)

	s := &Simulation{
		cfg:        cfg,
		registry:   registry,
		conflicts:  NewConflictTable(cfg.Conflicts),
		ledger:     ledger,
		pricing:    pricing,
		accountant: accountant,
		eventLog:   eventLog,
		logger:     log,
		rng:        rng,
	}
	s.scheduler = NewScheduler(cfg, registry, s.conflicts, ledger, accountant, eventLog, log, rng)
	return s, nil
}

// Step advances the simulation by one tick and reports whether the day is
// over. The final call releases remaining workers and emits the report.
func (s *Simulation) Step() (done bool) {
	if s.finished {
		return true
	}
	s.scheduler.Step(s.currentTick)
	s.currentTick++

	if s.currentTick >= s.cfg.DayLength {
		s.finish()
		return true
	}
	return false
}

// Run executes the whole day synchronously: exactly DayLength ticks, no
// cancellation, no retries.
func (s *Simulation) Run() Report {
	for !s.Step() {
	}
	return s.Report()
}

func (s *Simulation) finish() {
	s.finished = true
	s.scheduler.ReleaseRemaining(s.cfg.DayLength - 1)

	report := s.Report()
	s.eventLog.Append(events.ZooEvent{
		ID:        events.NewEventID(),
		Timestamp: time.Now(),
		Type:      events.EventTypeDayReport,
		Tick:      s.cfg.DayLength - 1,
		ActorID:   "SYSTEM",
		Payload: events.DayReportPayload{
			ToursAdmitted: report.ToursAdmitted,
			ToursSkipped:  report.ToursSkipped,
			TotalEarnings: report.TotalEarnings,
		},
	})
	s.logger.Info("day complete: tours=%d skipped=%d earnings=%d",
		report.ToursAdmitted, report.ToursSkipped, report.TotalEarnings)
}

// Report returns the current run summary.
func (s *Simulation) Report() Report {
	return Report{
		DayLength:     s.cfg.DayLength,
		ToursAdmitted: s.scheduler.toursAdmitted,
		ToursSkipped:  s.scheduler.toursSkipped,
		TotalEarnings: s.accountant.TotalEarnings(),
	}
}

// CurrentTick returns the next tick to be processed.
func (s *Simulation) CurrentTick() int {
	return s.currentTick
}

// Finished reports whether the day has completed.
func (s *Simulation) Finished() bool {
	return s.finished
}

// TotalEarnings returns the accumulated earnings so far.
func (s *Simulation) TotalEarnings() int {
	return s.accountant.TotalEarnings()
}

// Ledger exposes the tour ledger for reporting code.
func (s *Simulation) Ledger() *TourLedger {
	return s.ledger
}

// Registry exposes the entity registry for reporting code.
func (s *Simulation) Registry() *Registry {
	return s.registry
}

// EventLog exposes the event log for adapters (console, hub, storage).
func (s *Simulation) EventLog() *events.EventLog {
	return s.eventLog
}

// Close releases the process-lifetime guard so a new simulation can be
// constructed. Idempotent.
func (s *Simulation) Close() {
	if s.closed {
		return
	}
	s.closed = true
	simulationActive.Store(false)
}
