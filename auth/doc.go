// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth holds the hashing primitives that gate and anonymize votes.

# Digest

Digest is SHA-256 rendered as lowercase hex. It backs both the
proof-of-work chain and origin anonymization:

	hash := auth.DigestString("abc")

# Origin Hashing

The submitter's IP address is never stored. HashOrigin concatenates it
with the deployment salt and stores only the digest:

	ipHash := auth.HashOrigin(clientIP, cfg.HashSalt)

# Proof-of-Work

Each vote carries a list of nonces forming a hash chain seeded by the vote
UUID and a tag:

	running := uuid + "czoodle"
	for each nonce:
		running = Digest(running + nonce)   // must start with "777"

Every link must carry the prefix. A broken link anywhere rejects the
whole vote with ErrInvalidNonceChain; the position is not reported.
An empty chain passes unless MinRounds is set.

Mine builds a chain the same way the frontend does and is used by tests
and scripted clients.
*/
package auth
