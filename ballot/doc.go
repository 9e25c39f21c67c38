// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot holds a voter's budget allocation and submits it once.

# Allocator

An Allocator splits a fixed budget across founders. The allocated sum never
exceeds the budget: an amount that would overflow is rejected with the
largest amount that would have fit, and the allocation is left unchanged.

	alloc := ballot.NewAllocator(50000, founderIDs)
	if _, err := alloc.SetAllocation(id, 60000); err != nil {
		var over *ballot.ExceedsBudgetError
		if errors.As(err, &over) {
			fmt.Println("at most", over.MaxAllowable)
		}
	}

State and RestoreAllocator convert an Allocator to and from a plain value
that can be persisted between runs.

# Submitter

A Submitter posts a complete allocation exactly once per session. Incomplete
ballots and sessions that already hold a vote receipt are rejected locally,
without a network call. Submission is never retried.
*/
package ballot
