// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/audience-choice/client"
	"github.com/danielhkuo/audience-choice/models"
)

type fakeAPI struct {
	calls    int
	lastReq  models.SubmitVoteRequest
	voteCode string
	err      error
}

func (f *fakeAPI) SubmitVote(ctx context.Context, req models.SubmitVoteRequest) (models.SubmitVoteResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return models.SubmitVoteResponse{}, f.err
	}
	return models.SubmitVoteResponse{VoteCode: f.voteCode}, nil
}

type fakeSession struct {
	accessCode string
	voteCode   string
	recordErr  error
}

func (s *fakeSession) AccessCode() string { return s.accessCode }
func (s *fakeSession) VoteCode() string   { return s.voteCode }

func (s *fakeSession) RecordVote(voteCode string) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.voteCode = voteCode
	s.accessCode = ""
	return nil
}

func completeAllocator(t *testing.T) *Allocator {
	t.Helper()
	a := NewAllocator(50000, []string{"A", "B"})
	_, err := a.SetAllocation("A", 20000)
	require.NoError(t, err)
	_, err = a.SetAllocation("B", 30000)
	require.NoError(t, err)
	return a
}

func TestSubmitSuccess(t *testing.T) {
	api := &fakeAPI{voteCode: "V-abc123"}
	sess := &fakeSession{accessCode: "ABCD2345"}
	s := NewSubmitter(api, sess)

	conf, err := s.Submit(context.Background(), "BoldAngel123", completeAllocator(t))
	require.NoError(t, err)

	assert.Equal(t, "V-abc123", conf.VoteCode)
	assert.Equal(t, "BoldAngel123", conf.InvestorName)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, "ABCD2345", api.lastReq.AccessCode)
	assert.Equal(t, map[string]int64{"A": 20000, "B": 30000}, api.lastReq.Allocations)

	assert.Equal(t, "V-abc123", sess.voteCode)
	assert.Empty(t, sess.accessCode)
}

func TestSubmitIncompleteMakesNoCall(t *testing.T) {
	api := &fakeAPI{voteCode: "V-abc123"}
	s := NewSubmitter(api, &fakeSession{accessCode: "ABCD2345"})

	a := NewAllocator(50000, []string{"A", "B"})
	_, err := a.SetAllocation("A", 20000)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), "BoldAngel123", a)
	require.ErrorIs(t, err, ErrIncompleteAllocation)

	var incomplete *IncompleteAllocationError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, int64(30000), incomplete.Remaining)
	assert.Zero(t, api.calls)
}

func TestSubmitTwiceFailsLocally(t *testing.T) {
	api := &fakeAPI{voteCode: "V-abc123"}
	s := NewSubmitter(api, &fakeSession{accessCode: "ABCD2345"})
	a := completeAllocator(t)

	_, err := s.Submit(context.Background(), "BoldAngel123", a)
	require.NoError(t, err)

	_, err = s.Submit(context.Background(), "BoldAngel123", a)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 1, api.calls)
}

func TestSubmitWithStoredReceipt(t *testing.T) {
	api := &fakeAPI{voteCode: "V-new"}
	s := NewSubmitter(api, &fakeSession{voteCode: "V-old"})

	_, err := s.Submit(context.Background(), "BoldAngel123", completeAllocator(t))
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Zero(t, api.calls)
}

func TestSubmitReceiptPersistFailureStillBlocksResubmit(t *testing.T) {
	api := &fakeAPI{voteCode: "V-abc123"}
	s := NewSubmitter(api, &fakeSession{accessCode: "ABCD2345", recordErr: errors.New("disk full")})
	a := completeAllocator(t)

	conf, err := s.Submit(context.Background(), "BoldAngel123", a)
	require.NoError(t, err)
	assert.Equal(t, "V-abc123", conf.VoteCode)

	_, err = s.Submit(context.Background(), "BoldAngel123", a)
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Equal(t, 1, api.calls)
}

func TestSubmitServerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantErr    error
		wantDetail string
	}{
		{
			name: "already voted",
			err: &client.APIError{Status: http.StatusConflict, Reason: models.ReasonAlreadyVoted,
				Detail: "This access code has already been used to vote"},
			wantErr: ErrAlreadyVoted,
		},
		{
			name: "invalid ballot",
			err: &client.APIError{Status: http.StatusBadRequest, Reason: models.ReasonInvalidBallot,
				Detail: "allocations must add up to 50000, got 40000"},
			wantErr:    ErrRejected,
			wantDetail: "allocations must add up to 50000, got 40000",
		},
		{
			name:       "error without detail",
			err:        &client.APIError{Status: http.StatusInternalServerError, Message: "Database error"},
			wantErr:    ErrRejected,
			wantDetail: "Database error",
		},
		{
			name:       "transport failure",
			err:        errors.New("dial tcp: connection refused"),
			wantErr:    ErrRejected,
			wantDetail: "could not reach the voting server",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{err: tt.err}
			sess := &fakeSession{accessCode: "ABCD2345"}
			s := NewSubmitter(api, sess)

			_, err := s.Submit(context.Background(), "BoldAngel123", completeAllocator(t))
			require.ErrorIs(t, err, tt.wantErr)

			if tt.wantDetail != "" {
				var rejected *RejectedError
				require.ErrorAs(t, err, &rejected)
				assert.Equal(t, tt.wantDetail, rejected.Detail)
			}

			// Failures keep the access code for a manual retry
			assert.Equal(t, "ABCD2345", sess.accessCode)
			assert.Empty(t, sess.voteCode)
			assert.Equal(t, 1, api.calls)
		})
	}
}

func TestSubmitGeneratesNameWhenBlank(t *testing.T) {
	api := &fakeAPI{voteCode: "V-abc123"}
	s := NewSubmitter(api, &fakeSession{accessCode: "ABCD2345"})

	conf, err := s.Submit(context.Background(), "  ", completeAllocator(t))
	require.NoError(t, err)
	assert.Regexp(t, investorNamePattern, conf.InvestorName)
	assert.Equal(t, conf.InvestorName, api.lastReq.InvestorName)
}

var investorNamePattern = regexp.MustCompile(`^(Visionary|Bold|Strategic|Savvy|Dynamic|Innovative|Future|Rising)(Investor|Backer|Angel|Patron|Supporter|Pioneer)\d{3,4}$`)

func TestGenerateInvestorName(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, investorNamePattern, GenerateInvestorName())
	}

	// Deterministic picks
	seq := []int{1, 2, 317}
	next := func(n int) int {
		v := seq[0]
		seq = seq[1:]
		return v
	}
	assert.Equal(t, "BoldAngel417", investorName(next))
}
