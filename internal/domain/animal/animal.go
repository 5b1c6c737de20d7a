// Package animal defines the core domain entity for zoo animals.
// This package is PURE and must NOT import any infrastructure packages.
package animal

// Kind classifies an animal for scheduling purposes. Tours over
// conflicting kinds may not run at the same time.
type Kind string

const (
	KindLand    Kind = "Land"
	KindFlying  Kind = "Flying"
	KindAquatic Kind = "Aquatic"
)

// ValidKind reports whether k is one of the known classifications.
func ValidKind(k Kind) bool {
	switch k {
	case KindLand, KindFlying, KindAquatic:
		return true
	}
	return false
}

// Animal represents a single animal on exhibit. Animals are immutable
// after construction; species is the unique key within the registry.
type Animal struct {
	Name     string `json:"name"`
	Species  string `json:"species"`
	Kind     Kind   `json:"kind"`
	Location string `json:"location"`
}

// NewAnimal creates an animal record.
func NewAnimal(name, species string, kind Kind, location string) *Animal {
	return &Animal{
		Name:     name,
		Species:  species,
		Kind:     kind,
		Location: location,
	}
}
