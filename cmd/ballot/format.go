// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/audience-choice/ballot"
	"github.com/danielhkuo/audience-choice/leaderboard"
	"github.com/danielhkuo/audience-choice/models"
)

func formatMoney(amount int64) string {
	return "€" + humanize.Comma(amount)
}

func printFounders(out io.Writer, founders []models.Founder) {
	if len(founders) == 0 {
		fmt.Fprintln(out, "No founders yet.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tCOMPANY\tID")
	for i, f := range founders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, f.Name, f.Company, f.ID)
	}
	w.Flush()
}

func printThankYou(out io.Writer, conf ballot.Confirmation, founders []models.Founder) {
	fmt.Fprintf(out, "Thank you, %s! Your vote is in.\n", conf.InvestorName)
	fmt.Fprintf(out, "Receipt: %s\n\n", conf.VoteCode)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, line := range ballot.Summary(conf.Allocations, founders) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\n", line.Founder.Name, line.Founder.Company, formatMoney(line.Amount), line.Percent)
	}
	w.Flush()
}

func printBoard(out io.Writer, b leaderboard.Board, updated time.Time) {
	fmt.Fprintf(out, "%s cast by %s %s (updated %s)\n\n",
		formatMoney(b.TotalCast()), humanize.Comma(int64(b.TotalVotes)), plural(b.TotalVotes, "investor", "investors"),
		updated.Format("15:04:05"))

	if len(b.Entries) == 0 {
		fmt.Fprintln(out, "No founders yet.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tFOUNDER\tCOMPANY\tRAISED\tSHARE\tBACKERS")
	for i, e := range b.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f%%\t%d\n",
			humanize.Ordinal(i+1), e.Name, e.Company, formatMoney(e.TotalAllocated), b.Share(e), e.VoteCount)
	}
	w.Flush()
}

func printCodes(out io.Writer, resp models.ListCodesResponse, now time.Time) {
	fmt.Fprintf(out, "%d codes: %d used, %d available\n\n", resp.Stats.Total, resp.Stats.Used, resp.Stats.Available)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tSTATUS\tCREATED")
	for _, c := range resp.Codes {
		status := "available"
		if c.Used {
			status = "used"
			if c.UsedAt != nil {
				status += " " + humanize.RelTime(*c.UsedAt, now, "ago", "from now")
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Code, status, humanize.RelTime(c.CreatedAt, now, "ago", "from now"))
	}
	w.Flush()
}

// printVotes lists ballots with their allocations in founder display order.
// Founders deleted since the vote are shown by id at the end.
func printVotes(out io.Writer, votes []models.Vote, founders []models.Founder, now time.Time) {
	fmt.Fprintf(out, "%d %s\n\n", len(votes), plural(len(votes), "vote", "votes"))
	if len(votes) == 0 {
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VOTE CODE\tINVESTOR\tSUBMITTED\tALLOCATIONS")
	for _, v := range votes {
		rest := maps.Clone(v.Allocations)
		parts := make([]string, 0, len(v.Allocations))
		for _, f := range founders {
			if amount, ok := rest[f.ID]; ok {
				parts = append(parts, f.Name+" "+formatMoney(amount))
				delete(rest, f.ID)
			}
		}
		for _, id := range slices.Sorted(maps.Keys(rest)) {
			parts = append(parts, id+" "+formatMoney(rest[id]))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.VoteCode, v.InvestorName,
			humanize.RelTime(v.SubmittedAt, now, "ago", "from now"), strings.Join(parts, ", "))
	}
	w.Flush()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// joinURL builds a voting link for a code, as printed on QR handouts
func joinURL(base, code string) string {
	return strings.TrimRight(base, "/") + "/?code=" + code
}
