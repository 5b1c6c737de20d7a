package engine

import (
	"math/rand"

	"github.com/rmbenavides/ZooDia/server/internal/domain/staff"
	"github.com/rmbenavides/ZooDia/server/internal/domain/visitor"
)

// Accountant charges visitors for admitted tours and accumulates the
// day's total earnings. Charging is atomic with tour recording: the
// scheduler only calls Charge after admission succeeds.
type Accountant struct {
	policy  ChargePolicy
	quota   int
	pricing *PricePolicy
	rng     *rand.Rand
	total   int
}

// NewAccountant creates an accountant for one run.
func NewAccountant(policy ChargePolicy, quota int, pricing *PricePolicy, rng *rand.Rand) *Accountant {
	return &Accountant{
		policy:  policy,
		quota:   quota,
		pricing: pricing,
		rng:     rng,
	}
}

// Charge bills the selected visitors the acting worker's ticket price and
// returns how many were charged and the revenue added.
func (a *Accountant) Charge(w *staff.Worker, visitors []*visitor.Visitor) (charged int, amount int) {
	price := a.pricing.PriceFor(w.Role)

	var selected []*visitor.Visitor
	switch a.policy {
	case ChargeAllVisitors:
		selected = visitors
	case ChargeFixedQuota:
		selected = a.sample(visitors, a.quota)
	}

	for _, v := range selected {
		v.Charge(price)
	}

	amount = price * len(selected)
	a.total += amount
	return len(selected), amount
}

// sample picks k visitors without bias via reservoir sampling, avoiding a
// full-roster permutation. Selection order is roster order, so a fixed
// seed selects the same visitors.
func (a *Accountant) sample(visitors []*visitor.Visitor, k int) []*visitor.Visitor {
	if len(visitors) <= k {
		return visitors
	}
	reservoir := make([]*visitor.Visitor, k)
	copy(reservoir, visitors[:k])
	for i := k; i < len(visitors); i++ {
		j := a.rng.Intn(i + 1)
		if j < k {
			reservoir[j] = visitors[i]
		}
	}
	return reservoir
}

// TotalEarnings returns the accumulated earnings so far.
func (a *Accountant) TotalEarnings() int {
	return a.total
}
