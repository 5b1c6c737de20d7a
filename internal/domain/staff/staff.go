// Package staff defines the zoo worker roster domain entities.
// This package is PURE and must NOT import any infrastructure packages.
package staff

// Role identifies what a worker does during their shift.
type Role string

const (
	RoleDoctor  Role = "Doctor"
	RoleFeeder  Role = "Feeder"
	RoleCleaner Role = "Cleaner"
)

// RoleSpec carries the role-specific constants. Roles form a closed set
// of tag variants with a lookup table instead of subtypes.
type RoleSpec struct {
	Duration    int // shift length in ticks
	TicketPrice int // price charged per visitor on an admitted tour
}

// Specs is the default role table.
var Specs = map[Role]RoleSpec{
	RoleDoctor:  {Duration: 5, TicketPrice: 30},
	RoleFeeder:  {Duration: 10, TicketPrice: 20},
	RoleCleaner: {Duration: 2, TicketPrice: 10},
}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	_, ok := Specs[r]
	return ok
}

// Worker represents a temporally scoped staff member. StartTime is drawn
// by the registry at setup; EndTime = StartTime + Duration. The "currently
// assigned animal" lock lives in the scheduler's assignment maps, not here.
type Worker struct {
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Duration  int    `json:"duration"`
	StartTime int    `json:"start_time"`
	EndTime   int    `json:"end_time"`
}

// NewWorker creates a worker with the duration dictated by its role.
// The start window is assigned later by the registry.
func NewWorker(name string, role Role) *Worker {
	return &Worker{
		Name:     name,
		Role:     role,
		Duration: Specs[role].Duration,
	}
}
