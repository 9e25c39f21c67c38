// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with method, path, status and duration_ms.
4xx responses log at warn and 5xx at error.

# CORS Middleware

Let the voting page and admin dashboard call the API from their own origin:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

The request Origin is echoed back (with credentials) when present, "*"
otherwise. Preflights get 204 without reaching the mux.

# Admin Gate

Organizer routes are wrapped with the configured admin key:

	mux.HandleFunc("DELETE /api/reset-votes",
		middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h.ResetVotes)))

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "detail")
	middleware.ReasonResponse(w, http.StatusConflict, models.ReasonAlreadyVoted, "detail")

Parse JSON request bodies (capped at MaxBodyBytes; an empty body is ErrEmptyBody):

	var req models.FounderRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the voter's IP (first X-Forwarded-For entry, then X-Real-IP, then the socket):

	ip := middleware.GetClientIP(r)

Used for IP hashing in fraud detection.
*/
package middleware
