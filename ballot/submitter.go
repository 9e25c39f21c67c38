// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/audience-choice/client"
	"github.com/danielhkuo/audience-choice/models"
)

// VoteAPI posts a ballot. *client.Client satisfies it.
type VoteAPI interface {
	SubmitVote(ctx context.Context, req models.SubmitVoteRequest) (models.SubmitVoteResponse, error)
}

// Session is the voter's local state. *session.AccessSession satisfies it.
type Session interface {
	AccessCode() string
	VoteCode() string
	RecordVote(voteCode string) error
}

// Confirmation is returned for an accepted vote
type Confirmation struct {
	VoteCode     string
	InvestorName string
	Allocations  Allocations
	SubmittedAt  time.Time
}

type Submitter struct {
	api     VoteAPI
	session Session
	voted   bool
}

func NewSubmitter(api VoteAPI, session Session) *Submitter {
	return &Submitter{api: api, session: session}
}

// Submit sends the allocation once. A blank investor name is replaced with a generated one.
func (s *Submitter) Submit(ctx context.Context, investorName string, a *Allocator) (Confirmation, error) {
	if !a.IsComplete() {
		return Confirmation{}, &IncompleteAllocationError{Remaining: a.Remaining()}
	}
	if s.voted || s.session.VoteCode() != "" {
		return Confirmation{}, ErrAlreadyVoted
	}

	investorName = strings.TrimSpace(investorName)
	if investorName == "" {
		investorName = GenerateInvestorName()
	}

	allocations := a.Allocations()
	resp, err := s.api.SubmitVote(ctx, models.SubmitVoteRequest{
		InvestorName: investorName,
		Allocations:  allocations,
		AccessCode:   s.session.AccessCode(),
	})
	if err != nil {
		return Confirmation{}, classify(err)
	}

	s.voted = true
	if err := s.session.RecordVote(resp.VoteCode); err != nil {
		// The server has the vote; only the local receipt is missing
		slog.Warn("failed to persist vote receipt", "error", err)
	}

	return Confirmation{
		VoteCode:     resp.VoteCode,
		InvestorName: investorName,
		Allocations:  allocations,
		SubmittedAt:  time.Now(),
	}, nil
}

func classify(err error) error {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return &RejectedError{Detail: "could not reach the voting server", Err: err}
	}

	if apiErr.Reason == models.ReasonAlreadyVoted {
		return fmt.Errorf("%w: %s", ErrAlreadyVoted, apiErr.Detail)
	}

	detail := apiErr.Detail
	if detail == "" {
		detail = apiErr.Message
	}
	if detail == "" {
		detail = "vote was not accepted"
	}
	return &RejectedError{Detail: detail, Err: err}
}
