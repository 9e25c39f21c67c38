// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/audience-choice/ballot"
	"github.com/danielhkuo/audience-choice/client"
	"github.com/danielhkuo/audience-choice/models"
	"github.com/danielhkuo/audience-choice/session"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [code]",
		Short: "Check an access code and start a voting session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code string
			if len(args) == 1 {
				code = args[0]
			}
			if err := a.sess.Validate(cmd.Context(), code); err != nil {
				return explainAccessError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Access code %s accepted. Run 'ballot vote' to allocate your budget.\n", a.sess.AccessCode())
			return nil
		},
	}
}

func newFoundersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "founders",
		Short: "List the founders in this event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			founders, err := a.api.Founders(cmd.Context())
			if err != nil {
				return err
			}
			printFounders(cmd.OutOrStdout(), founders)
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local voting session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case a.sess.VoteCode() != "":
				fmt.Fprintf(out, "Voted. Receipt: %s\n", a.sess.VoteCode())
			case a.sess.AccessCode() != "":
				fmt.Fprintf(out, "Ready to vote with access code %s\n", a.sess.AccessCode())
				if a.sess.SavedBallot() != "" {
					fmt.Fprintln(out, "A partial ballot is saved.")
				}
			default:
				fmt.Fprintln(out, "No session. Run 'ballot validate CODE'.")
			}
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the access code, saved ballot and vote receipt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sess.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
			return nil
		},
	}
}

type voteOptions struct {
	code        string
	name        string
	allocations []string
	reset       bool
}

func newVoteCmd(a *app) *cobra.Command {
	var opts voteOptions

	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Allocate your budget and submit your vote",
		Long: `Allocate the event budget across founders and submit it.

Without --alloc, ballot asks for an amount per founder. Founders can be named
by list number, id or name. A partial ballot is saved and resumed next time.

Example:
  ballot vote --code ABCD2345 --alloc 1=20000 --alloc Grace=30,000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVote(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.code, "code", "", "access code (uses the stored one if omitted)")
	cmd.Flags().StringVar(&opts.name, "name", "", "investor name shown on the thank-you screen (generated if empty)")
	cmd.Flags().StringArrayVar(&opts.allocations, "alloc", nil, "founder=amount, repeatable")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "discard a saved partial ballot")

	return cmd
}

func runVote(cmd *cobra.Command, a *app, opts voteOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if err := a.sess.Validate(ctx, opts.code); err != nil {
		return explainAccessError(err)
	}

	ev, err := a.api.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("failed to load event: %w", err)
	}
	if len(ev.Founders) == 0 {
		return errors.New("no founders to vote for yet")
	}

	alloc := restoreBallot(a.sess, ev, opts.reset)

	if len(opts.allocations) > 0 {
		for _, spec := range opts.allocations {
			if err := applyAllocation(alloc, ev.Founders, spec); err != nil {
				return err
			}
		}
	} else if err := promptAllocations(cmd.InOrStdin(), out, alloc, ev.Founders); err != nil {
		return err
	}

	if !alloc.IsComplete() {
		if err := saveBallot(a.sess, alloc); err != nil {
			slog.Warn("failed to save ballot", "error", err)
		}
		fmt.Fprintf(out, "%s still to allocate. Ballot saved; run 'ballot vote' again to finish.\n",
			formatMoney(alloc.Remaining()))
		return &ballot.IncompleteAllocationError{Remaining: alloc.Remaining()}
	}

	conf, err := ballot.NewSubmitter(a.api, a.sess).Submit(ctx, opts.name, alloc)
	if err != nil {
		if errors.Is(err, ballot.ErrAlreadyVoted) {
			return fmt.Errorf("%w: this access code has already been used", err)
		}
		return err
	}

	printThankYou(out, conf, ev.Founders)
	return nil
}

// restoreBallot resumes a saved partial ballot when it still fits the event
func restoreBallot(sess *session.AccessSession, ev *client.Event, reset bool) *ballot.Allocator {
	ids := ev.FounderIDs()
	fresh := ballot.NewAllocator(ev.Settings.TotalBudget, ids)

	saved := sess.SavedBallot()
	if reset || saved == "" {
		return fresh
	}

	var state ballot.State
	if err := json.Unmarshal([]byte(saved), &state); err != nil {
		slog.Warn("ignoring unreadable saved ballot", "error", err)
		return fresh
	}
	if state.TotalBudget != ev.Settings.TotalBudget {
		slog.Warn("ignoring saved ballot for a different budget", "saved", state.TotalBudget)
		return fresh
	}

	alloc, err := ballot.RestoreAllocator(state, ids)
	if err != nil {
		slog.Warn("ignoring invalid saved ballot", "error", err)
		return fresh
	}
	return alloc
}

func saveBallot(sess *session.AccessSession, alloc *ballot.Allocator) error {
	buf, err := json.Marshal(alloc.State())
	if err != nil {
		return err
	}
	return sess.SaveBallot(string(buf))
}

// applyAllocation handles one "founder=amount" flag
func applyAllocation(alloc *ballot.Allocator, founders []models.Founder, spec string) error {
	ref, raw, ok := strings.Cut(spec, "=")
	if !ok {
		return fmt.Errorf("invalid --alloc %q: want founder=amount", spec)
	}

	f, err := resolveFounder(founders, ref)
	if err != nil {
		return err
	}

	if _, err := alloc.SetAllocationInput(f.ID, raw); err != nil {
		return explainAllocationError(f, err)
	}
	return nil
}

// resolveFounder finds a founder by 1-based list number, id or case-insensitive name
func resolveFounder(founders []models.Founder, ref string) (models.Founder, error) {
	ref = strings.TrimSpace(ref)

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(founders) {
		return founders[n-1], nil
	}
	for _, f := range founders {
		if f.ID == ref {
			return f, nil
		}
	}

	var match *models.Founder
	for i, f := range founders {
		if strings.EqualFold(f.Name, ref) || strings.EqualFold(f.Company, ref) {
			if match != nil {
				return models.Founder{}, fmt.Errorf("%q matches more than one founder", ref)
			}
			match = &founders[i]
		}
	}
	if match == nil {
		return models.Founder{}, fmt.Errorf("%w: %q", ballot.ErrUnknownCandidate, ref)
	}
	return *match, nil
}

// promptAllocations asks for an amount per founder until the budget is spent or input ends
func promptAllocations(in io.Reader, out io.Writer, alloc *ballot.Allocator, founders []models.Founder) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "You have %s to invest. Press enter to keep the current amount.\n\n", formatMoney(alloc.TotalBudget()))

	for i := 0; i < len(founders) && !alloc.IsComplete(); i++ {
		f := founders[i]
		fmt.Fprintf(out, "%d. %s (%s) [now %s, up to %s]: ",
			i+1, f.Name, f.Company, formatMoney(alloc.Amount(f.ID)), formatMoney(alloc.MaxFor(f.ID)))

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := alloc.SetAllocationInput(f.ID, line); err != nil {
			fmt.Fprintln(out, "  ", explainAllocationError(f, err))
			i--
			continue
		}
		fmt.Fprintf(out, "   %s remaining\n", formatMoney(alloc.Remaining()))
	}
	return nil
}

func explainAllocationError(f models.Founder, err error) error {
	var over *ballot.ExceedsBudgetError
	switch {
	case errors.As(err, &over):
		return fmt.Errorf("%s can receive at most %s: %w", f.Name, formatMoney(over.MaxAllowable), err)
	case errors.Is(err, ballot.ErrNegativeAmount), errors.Is(err, ballot.ErrInvalidAmount):
		return fmt.Errorf("%s: enter a whole, non-negative amount: %w", f.Name, err)
	}
	return err
}

func explainAccessError(err error) error {
	switch {
	case errors.Is(err, session.ErrMissing):
		return fmt.Errorf("%w: scan your QR code or run 'ballot validate CODE'", err)
	case errors.Is(err, session.ErrAlreadyVoted):
		return fmt.Errorf("%w: thank you, your vote is recorded", err)
	}
	return err
}
