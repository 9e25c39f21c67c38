// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrInvalidAmount        = errors.New("amount is not a number")
	ErrUnknownCandidate     = errors.New("unknown founder")
	ErrExceedsBudget        = errors.New("amount exceeds remaining budget")
	ErrIncompleteAllocation = errors.New("budget not fully allocated")
	ErrAlreadyVoted         = errors.New("already voted")
	ErrRejected             = errors.New("vote rejected")
)

// ExceedsBudgetError reports the largest amount that would have fit
type ExceedsBudgetError struct {
	MaxAllowable int64
}

func (e *ExceedsBudgetError) Error() string {
	return fmt.Sprintf("%s: at most %d can be allocated", ErrExceedsBudget, e.MaxAllowable)
}

func (e *ExceedsBudgetError) Is(target error) bool { return target == ErrExceedsBudget }

// IncompleteAllocationError reports how much budget is still unallocated
type IncompleteAllocationError struct {
	Remaining int64
}

func (e *IncompleteAllocationError) Error() string {
	return fmt.Sprintf("%s: %d remaining", ErrIncompleteAllocation, e.Remaining)
}

func (e *IncompleteAllocationError) Is(target error) bool { return target == ErrIncompleteAllocation }

// RejectedError carries the server's reason for refusing a vote
type RejectedError struct {
	Detail string
	Err    error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrRejected, e.Detail)
}

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }

func (e *RejectedError) Unwrap() error { return e.Err }
