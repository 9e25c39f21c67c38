// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.
The server and the voter client share these types, so the JSON field
names here are the wire contract.

# Request Types

  - FounderRequest: name, company, logo, profile, description, color
  - ValidateCodeRequest: accessCode
  - SubmitVoteRequest: investorName, allocations (map[string]int64), accessCode
  - GenerateCodesRequest: count (1-500)

# Response Types

  - SettingsResponse: total_budget, require_access_code
  - SubmitVoteResponse: voteCode, message
  - ResultsResponse: results, total_votes, total_budget
  - ListCodesResponse: codes, stats
  - ErrorResponse: error, detail, reason

# Domain Types

  - Founder: a candidate voters allocate budget to
  - FounderResult: founder with server-side tallies
  - AccessCode: single-use code with used state
  - Vote: an immutable submitted vote

# Error Reasons

ErrorResponse.Reason lets clients tell failures apart without parsing
the human-readable detail:

	ReasonAlreadyVoted  = "already_voted"
	ReasonInvalidCode   = "invalid_code"
	ReasonMissingCode   = "missing_code"
	ReasonInvalidBallot = "invalid_ballot"
*/
package models
