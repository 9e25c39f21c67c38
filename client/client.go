// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/audience-choice/models"
)

// DefaultTimeout bounds a single request when no HTTPClient is supplied
const DefaultTimeout = 10 * time.Second

// ErrNoAdminKey is returned by admin calls when Client.AdminKey is empty
var ErrNoAdminKey = errors.New("admin key not configured")

// APIError is a non-2xx response from the server
type APIError struct {
	Status  int
	Message string
	Detail  string
	Reason  string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, msg)
}

// HasReason reports whether err is an *APIError with the given reason
func HasReason(err error, reason string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Reason == reason
}

type Client struct {
	BaseURL    string
	AdminKey   string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *Client) Founders(ctx context.Context) ([]models.Founder, error) {
	var founders []models.Founder
	if err := c.do(ctx, http.MethodGet, "/api/founders", false, nil, &founders); err != nil {
		return nil, err
	}
	return founders, nil
}

func (c *Client) Settings(ctx context.Context) (models.SettingsResponse, error) {
	var settings models.SettingsResponse
	err := c.do(ctx, http.MethodGet, "/api/settings", false, nil, &settings)
	return settings, err
}

// ValidateCode checks a code without consuming it
func (c *Client) ValidateCode(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/api/validate-code", false,
		models.ValidateCodeRequest{AccessCode: code}, nil)
}

func (c *Client) SubmitVote(ctx context.Context, req models.SubmitVoteRequest) (models.SubmitVoteResponse, error) {
	var resp models.SubmitVoteResponse
	err := c.do(ctx, http.MethodPost, "/api/submit-vote", false, req, &resp)
	return resp, err
}

func (c *Client) Results(ctx context.Context) (models.ResultsResponse, error) {
	var resp models.ResultsResponse
	err := c.do(ctx, http.MethodGet, "/api/results", false, nil, &resp)
	return resp, err
}

// Admin calls

func (c *Client) CreateFounder(ctx context.Context, req models.FounderRequest) (models.Founder, error) {
	var f models.Founder
	err := c.do(ctx, http.MethodPost, "/api/founders", true, req, &f)
	return f, err
}

func (c *Client) UpdateFounder(ctx context.Context, id string, req models.FounderRequest) (models.Founder, error) {
	var f models.Founder
	err := c.do(ctx, http.MethodPut, "/api/founders/"+url.PathEscape(id), true, req, &f)
	return f, err
}

func (c *Client) DeleteFounder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/founders/"+url.PathEscape(id), true, nil, nil)
}

func (c *Client) GenerateCodes(ctx context.Context, count int) ([]string, error) {
	var resp models.GenerateCodesResponse
	if err := c.do(ctx, http.MethodPost, "/api/access-codes/generate", true,
		models.GenerateCodesRequest{Count: count}, &resp); err != nil {
		return nil, err
	}
	return resp.Codes, nil
}

func (c *Client) ListCodes(ctx context.Context) (models.ListCodesResponse, error) {
	var resp models.ListCodesResponse
	err := c.do(ctx, http.MethodGet, "/api/access-codes", true, nil, &resp)
	return resp, err
}

func (c *Client) DeleteCode(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodDelete, "/api/access-codes/"+url.PathEscape(code), true, nil, nil)
}

// ListVotes returns every ballot with its allocations, newest first
func (c *Client) ListVotes(ctx context.Context) ([]models.Vote, error) {
	var resp models.ListVotesResponse
	if err := c.do(ctx, http.MethodGet, "/api/votes", true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Votes, nil
}

func (c *Client) ResetVotes(ctx context.Context) (models.ResetVotesResponse, error) {
	var resp models.ResetVotesResponse
	err := c.do(ctx, http.MethodDelete, "/api/reset-votes", true, nil, &resp)
	return resp, err
}

// do sends one request. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, admin bool, body, out any) error {
	if admin && c.AdminKey == "" {
		return ErrNoAdminKey
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.Header.Set("X-Admin-Key", c.AdminKey)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body models.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Error
		apiErr.Detail = body.Detail
		apiErr.Reason = body.Reason
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
