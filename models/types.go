package models

import "time"

// Error reasons carried in ErrorResponse.Reason
const (
	ReasonAlreadyVoted  = "already_voted"
	ReasonInvalidCode   = "invalid_code"
	ReasonMissingCode   = "missing_code"
	ReasonInvalidBallot = "invalid_ballot"
)

// Access code generation limits
const (
	MinCodesPerBatch = 1
	MaxCodesPerBatch = 500
)

// Request types

type FounderRequest struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Logo        string `json:"logo"`
	Profile     string `json:"profile"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type ValidateCodeRequest struct {
	AccessCode string `json:"accessCode"`
}

// founder_id -> amount (whole currency units)
type SubmitVoteRequest struct {
	InvestorName string           `json:"investorName"`
	Allocations  map[string]int64 `json:"allocations"`
	AccessCode   string           `json:"accessCode,omitempty"`
}

type GenerateCodesRequest struct {
	Count int `json:"count"`
}

// Response types

type SettingsResponse struct {
	TotalBudget       int64 `json:"total_budget"`
	RequireAccessCode bool  `json:"require_access_code"`
}

type ValidateCodeResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

type SubmitVoteResponse struct {
	VoteCode string `json:"voteCode"`
	Message  string `json:"message"`
}

type ResultsResponse struct {
	Results     []FounderResult `json:"results"`
	TotalVotes  int             `json:"total_votes"`
	TotalBudget int64           `json:"total_budget"`
}

type ResetVotesResponse struct {
	DeletedVotes  int64 `json:"deleted_votes"`
	ReleasedCodes int64 `json:"released_codes"`
}

type GenerateCodesResponse struct {
	Codes []string `json:"codes"`
}

type AccessCodeStats struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

type ListVotesResponse struct {
	Votes []Vote `json:"votes"`
	Count int    `json:"count"`
}

type ListCodesResponse struct {
	Codes []AccessCode    `json:"codes"`
	Stats AccessCodeStats `json:"stats"`
}

// Domain types

type Founder struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Logo        string    `json:"logo"`
	Profile     string    `json:"profile"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

type FounderResult struct {
	Founder
	TotalAllocated int64 `json:"total_allocated"`
	VoteCount      int   `json:"vote_count"`
}

type AccessCode struct {
	Code      string     `json:"code"`
	Used      bool       `json:"used"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Vote is the admin view of a ballot.
// The access code, IP hash and user agent stay in the database.
type Vote struct {
	ID           string           `json:"id"`
	VoteCode     string           `json:"vote_code"`
	InvestorName string           `json:"investor_name"`
	Allocations  map[string]int64 `json:"allocations"`
	SubmittedAt  time.Time        `json:"submitted_at"`
}

// Error response

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Reason string `json:"reason,omitempty"`
}
