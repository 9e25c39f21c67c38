// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"slices"

	"github.com/danielhkuo/audience-choice/models"
)

// SummaryLine is one founder on the thank-you screen
type SummaryLine struct {
	Founder models.Founder
	Amount  int64
	Percent float64
}

// Summary lists the funded founders, largest amount first.
// Equal amounts keep the order of founders.
func Summary(allocations Allocations, founders []models.Founder) []SummaryLine {
	total := allocations.Sum()

	lines := make([]SummaryLine, 0, len(allocations))
	for _, f := range founders {
		amount := allocations[f.ID]
		if amount <= 0 {
			continue
		}
		line := SummaryLine{Founder: f, Amount: amount}
		if total > 0 {
			line.Percent = float64(amount) * 100 / float64(total)
		}
		lines = append(lines, line)
	}

	slices.SortStableFunc(lines, func(a, b SummaryLine) int {
		switch {
		case a.Amount > b.Amount:
			return -1
		case a.Amount < b.Amount:
			return 1
		}
		return 0
	})
	return lines
}
