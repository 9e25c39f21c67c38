// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/audience-choice/client"
)

const (
	keyAccessCode = "access_code"
	keyVoteCode   = "vote_code"
	keyBallot     = "ballot_state"
)

var (
	ErrMissing      = errors.New("no access code")
	ErrInvalid      = errors.New("invalid access code")
	ErrAlreadyVoted = errors.New("already voted")
)

// InvalidError is a rejected access code, with the server's explanation
type InvalidError struct {
	Detail string
	Reason string
	Err    error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, e.Detail)
}

func (e *InvalidError) Is(target error) bool { return target == ErrInvalid }

func (e *InvalidError) Unwrap() error { return e.Err }

// CodeValidator checks a code with the server. *client.Client satisfies it.
type CodeValidator interface {
	ValidateCode(ctx context.Context, code string) error
}

type AccessSession struct {
	store     Store
	validator CodeValidator
}

func New(store Store, validator CodeValidator) *AccessSession {
	return &AccessSession{store: store, validator: validator}
}

// Validate authenticates the session. urlCode is the code the voter arrived with, if any.
func (s *AccessSession) Validate(ctx context.Context, urlCode string) error {
	code := strings.ToUpper(strings.TrimSpace(urlCode))

	if code == "" {
		if s.AccessCode() != "" {
			return nil
		}
		if s.VoteCode() != "" {
			return ErrAlreadyVoted
		}
		return ErrMissing
	}

	if err := s.validator.ValidateCode(ctx, code); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			detail := apiErr.Detail
			if detail == "" {
				detail = apiErr.Message
			}
			return &InvalidError{Detail: detail, Reason: apiErr.Reason, Err: err}
		}
		return &InvalidError{Detail: "could not verify the access code", Err: err}
	}

	// Re-entering the current code keeps the partial ballot; a new code starts over
	if code == s.AccessCode() {
		slog.Debug("access code revalidated", "code", code)
		return nil
	}
	if err := s.store.Delete(keyVoteCode); err != nil {
		return fmt.Errorf("failed to clear vote receipt: %w", err)
	}
	if err := s.store.Delete(keyBallot); err != nil {
		return fmt.Errorf("failed to clear saved ballot: %w", err)
	}
	if err := s.store.Put(keyAccessCode, code); err != nil {
		return fmt.Errorf("failed to store access code: %w", err)
	}

	slog.Debug("access code validated", "code", code)
	return nil
}

func (s *AccessSession) AccessCode() string {
	return s.get(keyAccessCode)
}

// VoteCode is the receipt of a submitted vote, "" before submission
func (s *AccessSession) VoteCode() string {
	return s.get(keyVoteCode)
}

// RecordVote stores the receipt and forgets the consumed access code
func (s *AccessSession) RecordVote(voteCode string) error {
	if err := s.store.Put(keyVoteCode, voteCode); err != nil {
		return fmt.Errorf("failed to store vote receipt: %w", err)
	}
	if err := s.store.Delete(keyAccessCode); err != nil {
		return fmt.Errorf("failed to clear access code: %w", err)
	}
	return s.store.Delete(keyBallot)
}

// SaveBallot keeps an in-progress allocation, encoded by the caller
func (s *AccessSession) SaveBallot(encoded string) error {
	return s.store.Put(keyBallot, encoded)
}

// SavedBallot returns the in-progress allocation, "" if none
func (s *AccessSession) SavedBallot() string {
	return s.get(keyBallot)
}

// Clear forgets everything, including the receipt
func (s *AccessSession) Clear() error {
	for _, key := range []string{keyAccessCode, keyVoteCode, keyBallot} {
		if err := s.store.Delete(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

func (s *AccessSession) get(key string) string {
	v, err := s.store.Get(key)
	if err != nil {
		slog.Warn("failed to read session", "key", key, "error", err)
		return ""
	}
	return v
}
