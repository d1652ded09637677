// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Czoodle vote server.

The server accepts one anonymous vote per uuid covering several polls at
once (two-round, one-round, divide, D21, doodle, order and star). Each vote
carries a sequential SHA-256 proof-of-work chain bound to its uuid, is
validated against every poll's rules and stored as one flat row.

# Starting the Server

	DATABASE_URL=votes.db HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -hash-salt ...

Variables from a .env file in the working directory are loaded first;
variables already set in the environment win.

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file or PostgreSQL connection string
  - HASH_SALT (-hash-salt): Secret mixed into stored client address hashes

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - NONCE_TAG (-nonce-tag): Proof-of-work seed tag (default: czoodle)
  - NONCE_PREFIX (-nonce-prefix): Required digest prefix (default: 777)
  - MIN_ROUNDS (-min-rounds): Minimum proof-of-work rounds (default: 0)
  - CANDIDATE_COUNT (-candidates): Candidates per poll (default: 10)
  - DIVIDE_BUDGET (-divide-budget): Points in the divide poll (default: 5)

# Architecture

  - auth: SHA-256 digests, origin hashing, nonce chain verify and mine
  - models: Vote, Polls, Method and the flat VoteRow
  - ballot: Per-method validation rules and the row codec
  - db: Store interface, SQL and in-memory stores, schema
  - vote: Submit and Fetch orchestration
  - metrics: Prometheus counters
  - handlers, router, middleware: HTTP transport
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
