// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/audience-choice/models"
)

// DefaultInterval matches the refresh rate of the live leaderboard screen
const DefaultInterval = 5 * time.Second

// ResultsSource fetches the current results. *client.Client satisfies it.
type ResultsSource interface {
	Results(ctx context.Context) (models.ResultsResponse, error)
}

// Poller refreshes a Board on a fixed interval.
// Each successful fetch replaces the board; failures leave it as it was.
type Poller struct {
	source   ResultsSource
	interval time.Duration
	onUpdate func(Board, error)

	mu      sync.Mutex
	board   Board
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewPoller creates a stopped poller. onUpdate is called from the polling goroutine
// after every fetch, with the error if it failed; it may be nil.
func NewPoller(source ResultsSource, interval time.Duration, onUpdate func(Board, error)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{source: source, interval: interval, onUpdate: onUpdate}
}

// Start fetches immediately, then every interval until Stop or ctx is done.
// Calling Start on a running poller does nothing; once ctx is done the poller
// can be started again.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running && p.ctx.Err() == nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.ctx, p.cancel = ctx, cancel
	p.done = make(chan struct{})
	p.running = true

	go p.run(ctx, p.done)
}

// Stop ends polling and waits for the goroutine to exit
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel, done := p.cancel, p.done
	p.running = false
	p.mu.Unlock()

	cancel()
	<-done
}

// Board returns the latest snapshot
func (p *Poller) Board() Board {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.board
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer func() {
		close(done)
		p.mu.Lock()
		if p.done == done {
			p.running = false
		}
		p.mu.Unlock()
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.fetch(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	resp, err := p.source.Results(ctx)
	if ctx.Err() != nil {
		return
	}

	p.mu.Lock()
	if err == nil {
		p.board = NewBoard(resp)
	}
	board := p.board
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(board, err)
	}
}
