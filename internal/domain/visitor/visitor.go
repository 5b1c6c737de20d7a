// Package visitor defines the zoo visitor domain entity.
// This package is PURE and must NOT import any infrastructure packages.
package visitor

// Visitor is a paying guest. MoneySpent only ever grows and is mutated
// exclusively by the revenue accountant.
type Visitor struct {
	Name       string `json:"name"`
	MoneySpent int    `json:"money_spent"`
}

// NewVisitor creates a visitor with nothing spent yet.
func NewVisitor(name string) *Visitor {
	return &Visitor{Name: name}
}

// Charge adds amount to the visitor's cumulative spend.
func (v *Visitor) Charge(amount int) {
	v.MoneySpent += amount
}
