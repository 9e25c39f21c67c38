// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Allocations maps founder id to an amount in whole currency units
type Allocations map[string]int64

// Sum returns the total of all amounts
func (a Allocations) Sum() int64 {
	var sum int64
	for _, amount := range a {
		sum += amount
	}
	return sum
}

// Allocator tracks allocations against a fixed total budget.
// It is not safe for concurrent use.
type Allocator struct {
	total      int64
	candidates []string
	known      map[string]bool
	alloc      Allocations
}

// NewAllocator starts an empty allocation over the given founders, in display order
func NewAllocator(totalBudget int64, candidateIDs []string) *Allocator {
	known := make(map[string]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		known[id] = true
	}
	return &Allocator{
		total:      totalBudget,
		candidates: append([]string(nil), candidateIDs...),
		known:      known,
		alloc:      make(Allocations),
	}
}

// SetAllocation sets the amount for one founder. On error the allocation is unchanged.
// Setting zero removes the founder from the allocation.
func (a *Allocator) SetAllocation(id string, amount int64) (Allocations, error) {
	if !a.known[id] {
		return a.Allocations(), fmt.Errorf("%w: %s", ErrUnknownCandidate, id)
	}
	if amount < 0 {
		return a.Allocations(), ErrNegativeAmount
	}

	if limit := a.MaxFor(id); amount > limit {
		return a.Allocations(), &ExceedsBudgetError{MaxAllowable: limit}
	}

	if amount == 0 {
		delete(a.alloc, id)
	} else {
		a.alloc[id] = amount
	}
	return a.Allocations(), nil
}

// SetAllocationInput parses free text typed by the voter and sets it.
// Blank input clears the founder. Thousands separators and a leading currency sign are accepted.
func (a *Allocator) SetAllocationInput(id, raw string) (Allocations, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return a.Allocations(), err
	}
	return a.SetAllocation(id, amount)
}

// Add moves an amount onto a founder, as the quick-allocate buttons do
func (a *Allocator) Add(id string, delta int64) (Allocations, error) {
	cur := a.alloc[id]
	// Compared against the headroom so a huge delta cannot wrap cur+delta
	if limit := a.MaxFor(id); a.known[id] && delta > limit-cur {
		return a.Allocations(), &ExceedsBudgetError{MaxAllowable: limit}
	}
	return a.SetAllocation(id, cur+delta)
}

// MaxFor is the largest amount id can hold given every other allocation
func (a *Allocator) MaxFor(id string) int64 {
	return a.total - (a.alloc.Sum() - a.alloc[id])
}

func (a *Allocator) Remaining() int64 {
	return a.total - a.alloc.Sum()
}

func (a *Allocator) Allocated() int64 {
	return a.alloc.Sum()
}

func (a *Allocator) TotalBudget() int64 {
	return a.total
}

// IsComplete reports whether the whole budget is allocated
func (a *Allocator) IsComplete() bool {
	return a.Remaining() == 0
}

// Amount returns the current amount for id, zero if none
func (a *Allocator) Amount(id string) int64 {
	return a.alloc[id]
}

// Candidates returns the founder ids in display order
func (a *Allocator) Candidates() []string {
	return append([]string(nil), a.candidates...)
}

// Allocations returns a copy of the current allocation
func (a *Allocator) Allocations() Allocations {
	return maps.Clone(a.alloc)
}

func (a *Allocator) Reset() {
	clear(a.alloc)
}

// ParseAmount converts voter input such as "20,000" or "€ 5_000" to an amount
func ParseAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "€$£")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	s = strings.NewReplacer(",", "", "_", "").Replace(s)
	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return amount, nil
}
