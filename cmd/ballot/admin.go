// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/audience-choice/models"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Organizer commands (need --admin-key or BALLOT_ADMIN_KEY)",
	}
	cmd.AddCommand(newAdminCodesCmd(a), newAdminFoundersCmd(a), newAdminVotesCmd(a), newAdminResetCmd(a))
	return cmd
}

func newAdminCodesCmd(a *app) *cobra.Command {
	codes := &cobra.Command{
		Use:   "codes",
		Short: "Generate, list and revoke access codes",
	}

	var voteURL string
	generate := &cobra.Command{
		Use:   "generate COUNT",
		Short: "Generate new single-use access codes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil || count < models.MinCodesPerBatch || count > models.MaxCodesPerBatch {
				return fmt.Errorf("COUNT must be a number between %d and %d", models.MinCodesPerBatch, models.MaxCodesPerBatch)
			}

			generated, err := a.api.GenerateCodes(cmd.Context(), count)
			if err != nil {
				return err
			}
			for _, code := range generated {
				if voteURL != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, joinURL(voteURL, code))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), code)
				}
			}
			return nil
		},
	}
	generate.Flags().StringVar(&voteURL, "vote-url", "", "print a voting link per code using this base URL")

	list := &cobra.Command{
		Use:   "list",
		Short: "List access codes with usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.api.ListCodes(cmd.Context())
			if err != nil {
				return err
			}
			printCodes(cmd.OutOrStdout(), resp, time.Now())
			return nil
		},
	}

	revoke := &cobra.Command{
		Use:     "delete CODE",
		Aliases: []string{"revoke"},
		Short:   "Delete an unused access code",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.DeleteCode(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	codes.AddCommand(generate, list, revoke)
	return codes
}

func newAdminFoundersCmd(a *app) *cobra.Command {
	founders := &cobra.Command{
		Use:   "founders",
		Short: "Add, edit and remove founders",
	}

	var req models.FounderRequest
	addFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&req.Name, "name", "", "founder name")
		cmd.Flags().StringVar(&req.Company, "company", "", "company name")
		cmd.Flags().StringVar(&req.Logo, "logo", "", "logo URL or path")
		cmd.Flags().StringVar(&req.Profile, "profile", "", "profile picture URL or path")
		cmd.Flags().StringVar(&req.Description, "description", "", "short pitch")
		cmd.Flags().StringVar(&req.Color, "color", "", "card color tag")
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a founder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.api.CreateFounder(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) as %s\n", f.Name, f.Company, f.ID)
			return nil
		},
	}
	addFlags(add)
	add.MarkFlagRequired("name")
	add.MarkFlagRequired("company")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a founder's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.api.UpdateFounder(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", f.Name, f.Company)
			return nil
		},
	}
	addFlags(update)

	remove := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a founder and their allocations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.DeleteFounder(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted founder %s\n", args[0])
			return nil
		},
	}

	founders.AddCommand(add, update, remove)
	return founders
}

func newAdminVotesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "votes",
		Short: "List submitted ballots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			votes, err := a.api.ListVotes(cmd.Context())
			if err != nil {
				return err
			}
			founders, err := a.api.Founders(cmd.Context())
			if err != nil {
				return err
			}
			printVotes(cmd.OutOrStdout(), votes, founders, time.Now())
			return nil
		},
	}
}

func newAdminResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every vote and release used access codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete votes without --yes")
			}
			resp, err := a.api.ResetVotes(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d votes, released %d codes\n", resp.DeletedVotes, resp.ReleasedCodes)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")

	return cmd
}
