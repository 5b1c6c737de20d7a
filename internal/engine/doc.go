// Package engine contains the zoo-day scheduling loop and its supporting
// components: the entity registry, the conflict table, the tour ledger,
// the pricing policy and the revenue accountant.
//
// ARCHITECTURAL RULE: the engine owns all shared mutable state (ledger,
// assignments, earnings) and touches it from a single logical thread.
// External collaborators observe the run through the event log only.
package engine
