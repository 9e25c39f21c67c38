// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/danielhkuo/audience-choice/models"
)

// ComputeResults tallies every founder's allocations.
// Results are ordered by total allocated, descending; ties keep server order.
func ComputeResults(db *sql.DB) ([]models.FounderResult, int, error) {
	rows, err := db.Query(`
		SELECT f.id, f.name, f.company, f.logo, f.profile, f.description, f.color, f.created_at,
		       COALESCE(SUM(a.amount), 0), COUNT(a.vote_id)
		FROM founder f
		LEFT JOIN vote_allocation a ON a.founder_id = f.id AND a.amount > 0
		GROUP BY f.id, f.name, f.company, f.logo, f.profile, f.description, f.color, f.created_at
		ORDER BY f.created_at, f.id
	`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tallies: %w", err)
	}
	defer rows.Close()

	results := []models.FounderResult{}
	for rows.Next() {
		var fr models.FounderResult
		if err := rows.Scan(&fr.ID, &fr.Name, &fr.Company, &fr.Logo, &fr.Profile,
			&fr.Description, &fr.Color, &fr.CreatedAt, &fr.TotalAllocated, &fr.VoteCount); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tally: %w", err)
		}
		results = append(results, fr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tallies: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalAllocated > results[j].TotalAllocated
	})

	var totalVotes int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote`).Scan(&totalVotes); err != nil {
		return nil, 0, fmt.Errorf("failed to count votes: %w", err)
	}

	return results, totalVotes, nil
}
