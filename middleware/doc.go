// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("POST /add_vote", middleware.WithLogging(handler))

Logs method, path, status and duration_ms once the handler returns.

# CORS Middleware

The poll frontend is served from another origin:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, vote)
	middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
	err := middleware.ParseJSONBody(w, r, &vote)

# Client IP

GetClientIP returns the first X-Forwarded-For hop, then X-Real-IP, then
the host part of RemoteAddr. The result is hashed before storage and
never logged.
*/
package middleware
