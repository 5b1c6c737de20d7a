package engine

import "github.com/rmbenavides/ZooDia/server/internal/domain/staff"

// PricePolicy maps a worker's role to a fixed ticket price. The table is
// injectable configuration; a role missing from the table falls back to
// the default price rather than failing.
type PricePolicy struct {
	prices       map[staff.Role]int
	defaultPrice int
}

// NewPricePolicy builds a policy from a role table. A nil table uses the
// standard staff.Specs prices.
func NewPricePolicy(prices map[staff.Role]int, defaultPrice int) *PricePolicy {
	if prices == nil {
		prices = make(map[staff.Role]int, len(staff.Specs))
		for role, spec := range staff.Specs {
			prices[role] = spec.TicketPrice
		}
	}
	return &PricePolicy{prices: prices, defaultPrice: defaultPrice}
}

// PriceFor returns the ticket price for a role.
func (p *PricePolicy) PriceFor(role staff.Role) int {
	if price, ok := p.prices[role]; ok {
		return price
	}
	return p.defaultPrice
}
