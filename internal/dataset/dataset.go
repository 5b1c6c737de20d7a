// Package dataset loads the hand-authored initial dataset for a zoo day:
// the animal list, the worker roster and the visitor roster. The dataset
// is the only input of the engine; it arrives as a YAML file or as the
// embedded default below.
package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rmbenavides/ZooDia/server/internal/domain/animal"
	"github.com/rmbenavides/ZooDia/server/internal/domain/staff"
	"github.com/rmbenavides/ZooDia/server/internal/domain/visitor"
)

// AnimalSpec is one animal entry in the dataset file.
type AnimalSpec struct {
	Name     string `yaml:"name"`
	Species  string `yaml:"species"`
	Kind     string `yaml:"kind"`
	Location string `yaml:"location"`
}

// WorkerSpec is one worker entry in the dataset file.
type WorkerSpec struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// Dataset is the full initial state of a zoo day.
type Dataset struct {
	Animals  []AnimalSpec `yaml:"animals"`
	Workers  []WorkerSpec `yaml:"workers"`
	Visitors []string     `yaml:"visitors"`
}

// Load reads a dataset from a YAML file.
func Load(path string) (*Dataset, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(f, &ds); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return &ds, nil
}

// Default returns the embedded standard dataset: four animals spanning
// the three kinds, one worker per role and three visitors.
func Default() *Dataset {
	return &Dataset{
		Animals: []AnimalSpec{
			{Name: "Simba", Species: "Lion", Kind: "Land", Location: "Savannah"},
			{Name: "Flipper", Species: "Dolphin", Kind: "Aquatic", Location: "Lagoon"},
			{Name: "Rio", Species: "Macaw", Kind: "Flying", Location: "Aviary"},
			{Name: "Tembo", Species: "Elephant", Kind: "Land", Location: "Savannah"},
		},
		Workers: []WorkerSpec{
			{Name: "Ana", Role: "Doctor"},
			{Name: "Bruno", Role: "Feeder"},
			{Name: "Carla", Role: "Cleaner"},
		},
		Visitors: []string{"Diego", "Elena", "Fermin"},
	}
}

// Entities validates the dataset and materializes the domain entities.
// Unknown kinds or roles are configuration defects, reported before the
// run starts.
func (d *Dataset) Entities() ([]*animal.Animal, []*staff.Worker, []*visitor.Visitor, error) {
	if len(d.Animals) == 0 {
		return nil, nil, nil, fmt.Errorf("dataset: no animals defined")
	}

	animals := make([]*animal.Animal, 0, len(d.Animals))
	for _, a := range d.Animals {
		kind := animal.Kind(a.Kind)
		if !animal.ValidKind(kind) {
			return nil, nil, nil, fmt.Errorf("dataset: animal %s: unknown kind %q", a.Species, a.Kind)
		}
		animals = append(animals, animal.NewAnimal(a.Name, a.Species, kind, a.Location))
	}

	workers := make([]*staff.Worker, 0, len(d.Workers))
	for _, w := range d.Workers {
		role := staff.Role(w.Role)
		if !staff.ValidRole(role) {
			return nil, nil, nil, fmt.Errorf("dataset: worker %s: unknown role %q", w.Name, w.Role)
		}
		workers = append(workers, staff.NewWorker(w.Name, role))
	}

	visitors := make([]*visitor.Visitor, 0, len(d.Visitors))
	for _, name := range d.Visitors {
		visitors = append(visitors, visitor.NewVisitor(name))
	}

	return animals, workers, visitors, nil
}
