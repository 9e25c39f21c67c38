// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"slices"

	"github.com/danielhkuo/audience-choice/models"
)

// Board is one snapshot of the results
type Board struct {
	Entries     []models.FounderResult
	TotalVotes  int
	TotalBudget int64
}

// NewBoard ranks a results response
func NewBoard(resp models.ResultsResponse) Board {
	return Board{
		Entries:     Rank(resp.Results),
		TotalVotes:  resp.TotalVotes,
		TotalBudget: resp.TotalBudget,
	}
}

// TotalCast is the sum allocated across every founder
func (b Board) TotalCast() int64 {
	var sum int64
	for _, e := range b.Entries {
		sum += e.TotalAllocated
	}
	return sum
}

// Share is an entry's percentage of everything cast
func (b Board) Share(e models.FounderResult) float64 {
	return Share(e, b.TotalVotes, b.TotalBudget)
}

// Rank orders results by total allocated, descending.
// Equal totals keep the order the server sent. The input is not modified.
func Rank(results []models.FounderResult) []models.FounderResult {
	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, func(a, b models.FounderResult) int {
		switch {
		case a.TotalAllocated > b.TotalAllocated:
			return -1
		case a.TotalAllocated < b.TotalAllocated:
			return 1
		}
		return 0
	})
	return ranked
}

// Share is the percentage of all budget cast (votes × budget) that went to e
func Share(e models.FounderResult, totalVotes int, budget int64) float64 {
	cast := int64(totalVotes) * budget
	if cast <= 0 {
		return 0
	}
	return float64(e.TotalAllocated) * 100 / float64(cast)
}
