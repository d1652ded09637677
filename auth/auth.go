// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the lowercase hex SHA-256 of data
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestString is Digest for string input
func DigestString(s string) string {
	return Digest([]byte(s))
}

// HashOrigin creates a one-way hash of the submitter's origin (usually an IP address).
// The raw origin is never stored; only this digest is.
func HashOrigin(origin, salt string) string {
	return DigestString(origin + salt)
}
