// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores vote rows.

# Schema Creation

CreateSchema creates the votes table for N candidates:

	if err := db.CreateSchema(conn, cfg.Candidates); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Table Layout

	votes (
	    id TEXT PRIMARY KEY,
	    nonces, permutation TEXT,
	    strength INTEGER,
	    ip_hash TEXT,
	    rd2_0 .. rd2_{N-1}   two-round one-hot flags
	    rd1_0 .. rd1_{N-1}   one-round one-hot flags
	    div_*, d21_*, ddl_*, ord_*, str_*
	)

The primary key on id is what rejects a resubmitted vote; nothing checks
for existence before writing.

# Stores

Store is the interface the vote service depends on:

	Put(ctx, row) error                // ErrDuplicateVote, ErrStorage
	Get(ctx, id) (models.VoteRow, error) // ErrNotFound, ErrStorage

SQLStore works with postgres (lib/pq) and sqlite (modernc.org/sqlite).
MemoryStore keeps rows in a map for tests.
*/
package db
