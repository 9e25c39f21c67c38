// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/audience-choice/leaderboard"
)

const clearScreen = "\033[H\033[2J"

func newLeaderboardCmd(a *app) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"results"},
		Short:   "Show the live ranking of founders",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !watch {
				resp, err := a.api.Results(ctx)
				if err != nil {
					return err
				}
				printBoard(out, leaderboard.NewBoard(resp), time.Now())
				return nil
			}

			p := leaderboard.NewPoller(a.api, interval, func(b leaderboard.Board, err error) {
				if err != nil {
					slog.Warn("leaderboard refresh failed", "error", err)
					return
				}
				fmt.Fprint(out, clearScreen)
				printBoard(out, b, time.Now())
			})
			p.Start(ctx)
			<-ctx.Done()
			p.Stop()
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", leaderboard.DefaultInterval, "refresh interval with --watch")

	return cmd
}
