// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielhkuo/audience-choice/models"
)

// scriptedSource returns its responses in order, repeating the last one
type scriptedSource struct {
	mu        sync.Mutex
	calls     int
	responses []models.ResultsResponse
	errs      []error
}

func (s *scriptedSource) Results(ctx context.Context) (models.ResultsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := min(s.calls, len(s.responses)-1)
	s.calls++
	return s.responses[i], s.errs[i]
}

func (s *scriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestPollerReplacesBoard(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &scriptedSource{
		responses: []models.ResultsResponse{
			{Results: []models.FounderResult{result("a", 10), result("b", 20)}, TotalVotes: 1},
			{},
			{Results: []models.FounderResult{result("a", 50)}, TotalVotes: 2},
		},
		errs: []error{nil, errors.New("server down"), nil},
	}

	type update struct {
		board Board
		err   error
	}
	updates := make(chan update, 16)
	p := NewPoller(source, 10*time.Millisecond, func(b Board, err error) {
		select {
		case updates <- update{b, err}:
		default:
		}
	})

	p.Start(context.Background())

	u := <-updates
	require.NoError(t, u.err)
	assert.Equal(t, []string{"b", "a"}, ids(u.board.Entries))

	// A failed fetch is reported and keeps the previous board
	u = <-updates
	require.Error(t, u.err)
	assert.Equal(t, []string{"b", "a"}, ids(u.board.Entries))

	// The next fetch fully replaces it
	u = <-updates
	require.NoError(t, u.err)
	assert.Equal(t, []string{"a"}, ids(u.board.Entries))
	assert.Equal(t, 2, u.board.TotalVotes)

	p.Stop()
}

func TestPollerStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &scriptedSource{
		responses: []models.ResultsResponse{{}},
		errs:      []error{nil},
	}
	p := NewPoller(source, time.Hour, nil)

	p.Start(context.Background())
	p.Start(context.Background())

	require.Eventually(t, func() bool { return source.Calls() == 1 }, time.Second, time.Millisecond)

	p.Stop()
	p.Stop()

	assert.Equal(t, 1, source.Calls())
}

func TestPollerParentCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &scriptedSource{
		responses: []models.ResultsResponse{{}},
		errs:      []error{nil},
	}
	p := NewPoller(source, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	require.Eventually(t, func() bool { return source.Calls() >= 2 }, time.Second, time.Millisecond)

	cancel()
	p.Stop()
}

func TestPollerRestartAfterParentCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &scriptedSource{
		responses: []models.ResultsResponse{{}},
		errs:      []error{nil},
	}
	p := NewPoller(source, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	require.Eventually(t, func() bool { return source.Calls() >= 1 }, time.Second, time.Millisecond)

	// Restart straight away, before the cancelled goroutine has necessarily exited
	cancel()
	p.Start(context.Background())

	after := source.Calls()
	require.Eventually(t, func() bool { return source.Calls() >= after+3 }, time.Second, time.Millisecond)

	p.Stop()
	stopped := source.Calls()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, source.Calls())
}

func TestPollerStoppedAfterParentCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	source := &scriptedSource{
		responses: []models.ResultsResponse{{}},
		errs:      []error{nil},
	}
	p := NewPoller(source, 5*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	// Once the goroutine has exited the poller reports itself stopped
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return !p.running
	}, time.Second, time.Millisecond)

	p.Start(context.Background())
	after := source.Calls()
	require.Eventually(t, func() bool { return source.Calls() >= after+2 }, time.Second, time.Millisecond)
	p.Stop()
}

func TestNewPollerDefaultInterval(t *testing.T) {
	p := NewPoller(&scriptedSource{}, 0, nil)
	assert.Equal(t, DefaultInterval, p.interval)
}
