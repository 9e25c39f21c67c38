// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/audience-choice/models"
)

// Event is what a voter needs before allocating: the founders and the budget rules
type Event struct {
	Founders []models.Founder
	Settings models.SettingsResponse
}

// FounderIDs returns the founder ids in server order
func (e *Event) FounderIDs() []string {
	ids := make([]string, len(e.Founders))
	for i, f := range e.Founders {
		ids[i] = f.ID
	}
	return ids
}

// Bootstrap fetches founders and settings concurrently.
// The first failure cancels the other request.
func (c *Client) Bootstrap(ctx context.Context) (*Event, error) {
	var ev Event

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		founders, err := c.Founders(egCtx)
		if err != nil {
			return err
		}
		ev.Founders = founders
		return nil
	})
	eg.Go(func() error {
		settings, err := c.Settings(egCtx)
		if err != nil {
			return err
		}
		ev.Settings = settings
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &ev, nil
}
