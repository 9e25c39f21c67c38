// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"math/rand/v2"
	"strconv"
)

var (
	nameAdjectives = []string{"Visionary", "Bold", "Strategic", "Savvy", "Dynamic", "Innovative", "Future", "Rising"}
	nameNouns      = []string{"Investor", "Backer", "Angel", "Patron", "Supporter", "Pioneer"}
)

// GenerateInvestorName returns a random display name such as "BoldAngel417"
func GenerateInvestorName() string {
	return investorName(rand.IntN)
}

func investorName(intn func(int) int) string {
	adj := nameAdjectives[intn(len(nameAdjectives))]
	noun := nameNouns[intn(len(nameNouns))]
	return adj + noun + strconv.Itoa(100+intn(999))
}
