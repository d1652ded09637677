// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Call LoadDotEnv first to pick up a local .env file.

# CLI Flags

	-p              Server port (default 3318)
	-d              Database URL
	-t              Database type: sqlite (default) or postgres
	-hash-salt      Salt for IP hashing
	-nonce-tag      Proof-of-work chain tag (default "czoodle")
	-nonce-prefix   Required digest prefix (default "777")
	-min-rounds     Minimum proof-of-work nonces (default 0)
	-candidates     Number of candidates (default 10)
	-divide-budget  Divide poll points (default 5)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	HASH_SALT       → -hash-salt
	NONCE_TAG       → -nonce-tag
	NONCE_PREFIX    → -nonce-prefix
	MIN_ROUNDS      → -min-rounds
	CANDIDATE_COUNT → -candidates
	DIVIDE_BUDGET   → -divide-budget

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL or HASH_SALT is missing, or if
a numeric setting does not parse.

Changing CANDIDATE_COUNT changes the votes table layout; the schema and
the ballot rules always read it from the same Config.
*/
package cliparse
