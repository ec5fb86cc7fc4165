// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the topic API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc)

# Endpoints

Health:

	GET /health

Current topics:

	GET /topics       - Ranked list with live vote counts
	GET /topics/{id}  - One topic

Archive:

	GET /episodes                  - Archived episode numbers
	GET /episodes/{episode}/topics - Topics of one episode with frozen counts

The API is read-only. Every route except /health and / is wrapped with
middleware.WithLogging.
*/
package router
