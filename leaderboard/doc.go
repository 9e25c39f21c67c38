// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package leaderboard ranks live results and keeps them fresh by polling.
package leaderboard
