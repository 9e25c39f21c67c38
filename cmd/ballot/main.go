// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command ballot is the voter and organizer terminal for an Audience Choice event.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/audience-choice/client"
	"github.com/danielhkuo/audience-choice/session"
)

const defaultAPIURL = "http://localhost:3318"

// app holds the flags and connections shared by every command
type app struct {
	apiURL      string
	sessionPath string
	adminKey    string
	verbose     bool

	api   *client.Client
	store session.Store
	sess  *session.AccessSession
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: failed to load .env:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	a := &app{}
	err := execute(ctx, a, newRootCmd(a))
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs root and releases the session store however the command ends.
// Cobra skips post-run hooks when RunE fails, so the close lives here.
func execute(ctx context.Context, a *app, root *cobra.Command) (err error) {
	defer func() {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}()
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ballot",
		Short: "Vote in and run an Audience Choice event",
		Long: `ballot talks to an Audience Choice server.

Voters validate their access code, split the budget across founders and
submit once. Organizers manage founders and access codes and watch the
leaderboard.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr("BALLOT_API_URL", defaultAPIURL), "Audience Choice server URL")
	root.PersistentFlags().StringVar(&a.sessionPath, "session", defaultSessionPath(), "session file (empty keeps the session in memory)")
	root.PersistentFlags().StringVar(&a.adminKey, "admin-key", os.Getenv("BALLOT_ADMIN_KEY"), "organizer key for admin commands")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newValidateCmd(a),
		newFoundersCmd(a),
		newVoteCmd(a),
		newStatusCmd(a),
		newLogoutCmd(a),
		newLeaderboardCmd(a),
		newAdminCmd(a),
	)

	return root
}

func (a *app) init() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	a.api = client.New(a.apiURL)
	a.api.AdminKey = a.adminKey

	if a.sessionPath == "" {
		a.store = session.NewMemoryStore()
	} else {
		store, err := session.OpenBoltStore(a.sessionPath)
		if err != nil {
			return err
		}
		a.store = store
	}
	a.sess = session.New(a.store, a.api)

	slog.Debug("ballot ready", "api", a.apiURL, "session", a.sessionPath)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "audience-choice", "session.db")
}
