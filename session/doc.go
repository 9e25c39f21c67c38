// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session keeps a voter's access code and vote receipt between runs.

A session moves through three states:

	empty          → Validate(ctx, code) → authenticated (access code stored)
	authenticated  → RecordVote(voteCode) → voted (receipt stored, code cleared)
	any            → Validate(ctx, newCode) → authenticated (receipt cleared)

Validate with no code reuses a stored access code without contacting the
server. With nothing stored it fails with ErrMissing, or ErrAlreadyVoted
when only a receipt remains.

State lives in a Store. BoltStore persists to a bbolt file; MemoryStore is
for tests and one-shot runs.
*/
package session
