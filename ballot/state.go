// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import "fmt"

// State is the serializable form of an Allocator
type State struct {
	TotalBudget int64       `json:"total_budget"`
	Allocations Allocations `json:"allocations"`
}

func (a *Allocator) State() State {
	return State{TotalBudget: a.total, Allocations: a.Allocations()}
}

// RestoreAllocator rebuilds an Allocator from saved state.
// Allocations for founders no longer in candidateIDs are dropped.
func RestoreAllocator(state State, candidateIDs []string) (*Allocator, error) {
	a := NewAllocator(state.TotalBudget, candidateIDs)

	for id, amount := range state.Allocations {
		if !a.known[id] {
			continue
		}
		if amount < 0 {
			return nil, fmt.Errorf("restore %s: %w", id, ErrNegativeAmount)
		}
		if amount > 0 {
			a.alloc[id] = amount
		}
	}

	if a.alloc.Sum() > a.total {
		return nil, fmt.Errorf("restore: %w", &ExceedsBudgetError{MaxAllowable: a.total})
	}

	return a, nil
}
