// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides code generation and credential checks.

# Admin Key

Organizer endpoints require the configured admin key in X-Admin-Key.
The comparison runs in constant time:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

# Access Codes

Access codes are 8 random characters from an alphabet without look-alike
characters, printed on QR cards and handed to attendees:

	code, err := auth.GenerateAccessCode()

Codes typed or scanned by voters are normalized before lookup:

	code, err := auth.NormalizeAccessCode(" abcd2345 ")  // "ABCD2345"

# Vote Codes

Each accepted vote gets a confirmation code shown on the thank-you screen:

	voteCode, err := auth.GenerateVoteCode()  // "V-" + base62

# IP Hashing

For privacy-preserving fraud review:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
