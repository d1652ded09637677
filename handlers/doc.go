// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Czoodle vote API.

# Handler Types

VoteHandler wraps a *vote.Service and is created via its constructor:

	svc := vote.NewService(store, cfg, m)
	voteHandler := handlers.NewVoteHandler(svc)

# Routes

The frontend uses the original paths; the REST aliases map to the same
handlers:

	POST /add_vote         → AddVote
	POST /votes            → AddVote
	GET  /get_vote?uuid=   → GetVote
	GET  /votes/{id}       → GetVote

A vote is posted as JSON:

	{
	  "uuid":   "6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b",
	  "nonces": ["1043", "88"],
	  "order":  [3, 1, 0, 2, 4, 5, 6, 7, 8, 9],
	  "polls": {
	    "twoRound": -1, "oneRound": 3,
	    "divide": [...], "d21": [...], "doodle": [...],
	    "order": [...], "star": [...]
	  }
	}

# Status Codes

	201 vote stored, empty body
	400 malformed JSON or a violated voting rule (message names the rule)
	404 unknown uuid
	409 uuid already used
	500 storage failure or a stored row that cannot be decoded

The client address is taken from X-Forwarded-For, X-Real-IP or the
connection and only ever stored as a salted hash.
*/
package handlers
