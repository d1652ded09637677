// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"

	"github.com/danielhkuo/czoodle-vote/auth"
)

// ErrValidation matches every *ValidationError via errors.Is
var ErrValidation = errors.New("vote validation failed")

// ErrMalformedRow is returned when a stored row cannot be decoded
var ErrMalformedRow = errors.New("malformed vote row")

// ErrUnencodable is returned when a vote does not fit the column layout
var ErrUnencodable = errors.New("vote cannot be encoded")

// ValidationError is one violated voting rule.
// Field names the offending part of the vote ("uuid", "nonces", "order" or a poll method).
type ValidationError struct {
	Field  string
	Reason string
	err    error
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

var (
	ErrInvalidUUID = newValidationError("uuid", "invalid UUID")

	ErrInvalidNonces = &ValidationError{Field: "nonces", Reason: "invalid validation nonce", err: auth.ErrInvalidNonceChain}
	ErrTooFewNonces  = &ValidationError{Field: "nonces", Reason: "not enough validation nonces", err: auth.ErrTooFewNonces}
	ErrNonceFormat   = newValidationError("nonces", "validation nonce is empty or contains a comma")

	ErrOrderLength      = newValidationError("order", "invalid length of order array")
	ErrOrderPermutation = newValidationError("order", "invalid order array")

	ErrOneRound = newValidationError("polls.oneRound", "invalid one-round poll value")
	ErrTwoRound = newValidationError("polls.twoRound", "invalid two-round poll value")

	ErrDivideLength = newValidationError("polls.divide", "invalid length of divide poll array")
	ErrDivideValues = newValidationError("polls.divide", "invalid values in divide poll")
	ErrDivideSum    = newValidationError("polls.divide", "invalid divide poll value")

	ErrD21Length          = newValidationError("polls.d21", "invalid length of D21 poll array")
	ErrD21Values          = newValidationError("polls.d21", "invalid values in D21 poll")
	ErrD21NoPositive      = newValidationError("polls.d21", "invalid values in D21 poll - no positive vote")
	ErrD21TooManyPositive = newValidationError("polls.d21", "invalid values in D21 poll - too many positive votes")
	ErrD21TooManyNegative = newValidationError("polls.d21", "invalid values in D21 poll - too many negative votes")

	ErrDoodleLength     = newValidationError("polls.doodle", "invalid length of Doodle poll array")
	ErrDoodleValues     = newValidationError("polls.doodle", "invalid values in Doodle poll")
	ErrDoodleNoPositive = newValidationError("polls.doodle", "invalid values in Doodle poll - no positive vote")

	ErrOrderPollLength = newValidationError("polls.order", "invalid length of order poll array")
	ErrOrderPoll       = newValidationError("polls.order", "invalid order poll")

	ErrStarLength     = newValidationError("polls.star", "invalid length of star poll array")
	ErrStarValues     = newValidationError("polls.star", "invalid values in star poll")
	ErrStarNoPositive = newValidationError("polls.star", "invalid values in star poll - no positive vote")
)
