// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /topics", middleware.WithLogging(handler))

Logs method, path, client IP and duration_ms once the handler returns.

# CORS Middleware

The topic API is read-only and may be embedded in dashboards:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "topic not found")

# Client IP Extraction

GetClientIP honours X-Forwarded-For and X-Real-IP before RemoteAddr.
*/
package middleware
