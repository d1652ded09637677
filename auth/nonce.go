// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Defaults used by the deployed poll frontend
const (
	DefaultNonceTag    = "czoodle"
	DefaultNoncePrefix = "777"
)

var (
	ErrInvalidNonceChain = errors.New("invalid proof-of-work chain")
	ErrTooFewNonces      = errors.New("not enough proof-of-work rounds")
)

// NonceChain verifies the sequential proof-of-work attached to a vote.
//
// The chain starts from id+Tag. Every nonce extends it with
// running = Digest(running + nonce), and every intermediate digest must
// start with Prefix.
type NonceChain struct {
	Tag       string
	Prefix    string
	MinRounds int
}

// DefaultNonceChain returns the chain parameters the frontend mines against
func DefaultNonceChain() NonceChain {
	return NonceChain{Tag: DefaultNonceTag, Prefix: DefaultNoncePrefix}
}

// Verify checks every link of the chain for id.
// The failing position is deliberately not reported.
func (c NonceChain) Verify(id string, nonces []string) error {
	if len(nonces) < c.MinRounds {
		return ErrTooFewNonces
	}

	current := id + c.Tag
	for _, nonce := range nonces {
		current = DigestString(current + nonce)
		if !strings.HasPrefix(current, c.Prefix) {
			return ErrInvalidNonceChain
		}
	}
	return nil
}

// Mine builds a valid chain of the given number of rounds for id.
// Nonces are decimal counters, so the result is deterministic.
func (c NonceChain) Mine(ctx context.Context, id string, rounds int) ([]string, error) {
	nonces := make([]string, 0, rounds)
	current := id + c.Tag

	for len(nonces) < rounds {
		found := false
		for counter := uint64(0); counter < math.MaxUint64; counter++ {
			if counter%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			nonce := strconv.FormatUint(counter, 10)
			next := DigestString(current + nonce)
			if strings.HasPrefix(next, c.Prefix) {
				nonces = append(nonces, nonce)
				current = next
				found = true
				break
			}
		}
		if !found {
			return nil, ErrInvalidNonceChain
		}
	}
	return nonces, nil
}

// ExpectedHashes estimates how many digests a client computes to build a chain
// of the given length. Each hex character of the prefix costs a factor of 16.
func (c NonceChain) ExpectedHashes(rounds int) uint64 {
	per := uint64(1)
	for range len(c.Prefix) {
		per *= 16
	}
	return per * uint64(rounds)
}
