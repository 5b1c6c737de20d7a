package engine

import (
	"fmt"

	"github.com/rmbenavides/ZooDia/server/internal/domain/staff"
)

// Default simulation constants.
const (
	DefaultDayLength   = 120
	DefaultTourLength  = 10
	DefaultGuestCount  = 5
	DefaultTicketPrice = 10
)

// ChargePolicy selects how visitors are picked for an admitted tour.
type ChargePolicy int

const (
	// ChargeFixedQuota charges exactly GuestCount visitors, chosen by
	// reservoir sampling over the roster (all of them if fewer exist).
	ChargeFixedQuota ChargePolicy = iota
	// ChargeAllVisitors charges every visitor present.
	ChargeAllVisitors
)

// RejectionPolicy decides what happens to a worker whose tour is
// rejected for conflict.
type RejectionPolicy int

const (
	// HoldFullWindow keeps the worker's animal assignment for the whole
	// window even though no tour runs. Faithful to the observed source
	// behavior; see DESIGN.md.
	HoldFullWindow RejectionPolicy = iota
	// ReleaseOnRejection frees the worker and its animal immediately.
	ReleaseOnRejection
)

// CategoryMode selects which animal tag feeds the conflict table.
type CategoryMode int

const (
	// CategoryByKind keys conflicts on Land/Flying/Aquatic.
	CategoryByKind CategoryMode = iota
	// CategoryBySpecies keys conflicts on the species name.
	CategoryBySpecies
)

// Config parametrizes a simulation run. The zero value plus Validate
// yields the standard day.
type Config struct {
	DayLength  int
	TourLength int
	GuestCount int

	ChargePolicy    ChargePolicy
	RejectionPolicy RejectionPolicy
	CategoryMode    CategoryMode

	// Prices overrides the role price table; nil keeps staff.Specs.
	Prices map[staff.Role]int
	// DefaultPrice is charged for roles absent from the table.
	DefaultPrice int

	// Conflicts lists category pairs that may not run simultaneously.
	// The table is symmetrized at load time.
	Conflicts [][2]string

	// Seed feeds the single random source. The run is fully
	// deterministic for a fixed seed and dataset.
	Seed int64
}

// Validate fills defaults and rejects impossible configurations.
func (c *Config) Validate() error {
	if c.DayLength == 0 {
		c.DayLength = DefaultDayLength
	}
	if c.TourLength == 0 {
		c.TourLength = DefaultTourLength
	}
	if c.GuestCount == 0 {
		c.GuestCount = DefaultGuestCount
	}
	if c.DefaultPrice == 0 {
		c.DefaultPrice = DefaultTicketPrice
	}
	if c.DayLength < 0 || c.TourLength <= 0 || c.GuestCount < 0 {
		return fmt.Errorf("engine: invalid config: day=%d tour=%d guests=%d",
			c.DayLength, c.TourLength, c.GuestCount)
	}
	return nil
}

// DefaultConflicts is the standard table: land and aquatic tours may not
// overlap.
func DefaultConflicts() [][2]string {
	return [][2]string{{"Land", "Aquatic"}}
}
