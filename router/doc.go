// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Czoodle vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, registry)

# Endpoints

Health:

	GET /health

Votes (paths used by the poll frontend):

	POST /add_vote          - Submit a vote
	GET  /get_vote?uuid=... - Read a vote back

REST aliases:

	POST /votes      - Submit a vote
	GET  /votes/{id} - Read a vote back

Metrics:

	GET /metrics - Prometheus exposition of the given gatherer

CORS is applied by the caller around the returned mux.
*/
package router
