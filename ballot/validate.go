// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danielhkuo/czoodle-vote/auth"
	"github.com/danielhkuo/czoodle-vote/models"
)

const uuidLength = 36

// Rules holds the deployment constants the voting rules depend on
type Rules struct {
	Candidates   int
	DivideBudget int
}

// DefaultRules returns the rules of the deployed poll: 10 candidates, 5 divide points
func DefaultRules() Rules {
	return Rules{
		Candidates:   models.DefaultCandidateCount,
		DivideBudget: models.DefaultDivideBudget,
	}
}

type methodRule func(r Rules, p *models.Polls) error

// One rule per poll method, indexed by models.Method
var methodRules = [models.MethodCount]methodRule{
	models.MethodTwoRound: func(r Rules, p *models.Polls) error {
		return r.singleWinner(p.TwoRound, ErrTwoRound)
	},
	models.MethodOneRound: func(r Rules, p *models.Polls) error {
		return r.singleWinner(p.OneRound, ErrOneRound)
	},
	models.MethodDivide: func(r Rules, p *models.Polls) error {
		return r.divide(p.Divide)
	},
	models.MethodD21: func(r Rules, p *models.Polls) error {
		return r.d21(p.D21)
	},
	models.MethodDoodle: func(r Rules, p *models.Polls) error {
		return r.doodle(p.Doodle)
	},
	models.MethodOrder: func(r Rules, p *models.Polls) error {
		return r.permutation(p.Order, ErrOrderPollLength, ErrOrderPoll)
	},
	models.MethodStar: func(r Rules, p *models.Polls) error {
		return r.star(p.Star)
	},
}

// validationOrder is the order in which ballots are checked; the first violation wins
var validationOrder = [models.MethodCount]models.Method{
	models.MethodOneRound,
	models.MethodTwoRound,
	models.MethodDivide,
	models.MethodD21,
	models.MethodDoodle,
	models.MethodOrder,
	models.MethodStar,
}

// Validator checks a whole vote: identifier, proof-of-work, candidate order
// and every poll ballot.
type Validator struct {
	Rules Rules
	Chain auth.NonceChain
}

func NewValidator(rules Rules, chain auth.NonceChain) *Validator {
	return &Validator{Rules: rules, Chain: chain}
}

// Validate returns the first violated rule, or nil.
func (v *Validator) Validate(vote *models.Vote) error {
	if err := ValidateUUID(vote.UUID); err != nil {
		return err
	}

	if err := nonceFormat(vote.Nonces); err != nil {
		return err
	}

	if err := v.Chain.Verify(vote.UUID, vote.Nonces); err != nil {
		if errors.Is(err, auth.ErrTooFewNonces) {
			return ErrTooFewNonces
		}
		return ErrInvalidNonces
	}

	if err := v.Rules.permutation(vote.Order, ErrOrderLength, ErrOrderPermutation); err != nil {
		return err
	}

	return v.Rules.ValidatePolls(&vote.Polls)
}

// ValidatePolls checks every poll ballot in validation order
func (r Rules) ValidatePolls(p *models.Polls) error {
	for _, m := range validationOrder {
		if err := r.ValidateMethod(m, p); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMethod checks the ballot of a single poll method
func (r Rules) ValidateMethod(m models.Method, p *models.Polls) error {
	return methodRules[m](r, p)
}

// ValidateUUID checks the vote identifier is a 36-character canonical UUID
func ValidateUUID(id string) error {
	if utf8.RuneCountInString(id) != uuidLength {
		return ErrInvalidUUID
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidUUID
	}
	return nil
}

// nonceFormat rejects nonces that would not survive the comma-joined nonces column
func nonceFormat(nonces []string) error {
	for _, nonce := range nonces {
		if nonce == "" || strings.Contains(nonce, listSeparator) {
			return ErrNonceFormat
		}
	}
	return nil
}

func (r Rules) singleWinner(choice int, invalid error) error {
	if choice == models.Abstain {
		return nil
	}
	if choice < 0 || choice >= r.Candidates {
		return invalid
	}
	return nil
}

// permutation requires values to be exactly 0..N-1 in any order
func (r Rules) permutation(values []int, badLength, invalid error) error {
	if len(values) != r.Candidates {
		return badLength
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	for i, v := range sorted {
		if v != i {
			return invalid
		}
	}
	return nil
}

func (r Rules) divide(values []int) error {
	if len(values) != r.Candidates {
		return ErrDivideLength
	}
	// bounding each entry keeps the sum from overflowing
	sum := 0
	for _, v := range values {
		if v < 0 || v > r.DivideBudget {
			return ErrDivideValues
		}
		sum += v
	}
	if sum != r.DivideBudget {
		return ErrDivideSum
	}
	return nil
}

// d21 allows 1-3 positive votes and one negative vote once at least two
// positives are cast. Slot positions do not matter, only counts.
func (r Rules) d21(values []int) error {
	if len(values) != r.Candidates {
		return ErrD21Length
	}

	positive, negative := 0, 0
	for _, v := range values {
		switch v {
		case 1:
			positive++
		case -1:
			negative++
		case 0:
		default:
			return ErrD21Values
		}
	}

	if positive == 0 {
		return ErrD21NoPositive
	}
	if positive > 3 {
		return ErrD21TooManyPositive
	}
	if negative > 1 || (negative > 0 && positive < 2) {
		return ErrD21TooManyNegative
	}
	return nil
}

func (r Rules) doodle(values []int) error {
	if len(values) != r.Candidates {
		return ErrDoodleLength
	}
	for _, v := range values {
		if v < 0 || v > 2 {
			return ErrDoodleValues
		}
	}
	if !anyPositive(values) {
		return ErrDoodleNoPositive
	}
	return nil
}

func (r Rules) star(values []int) error {
	if len(values) != r.Candidates {
		return ErrStarLength
	}
	for _, v := range values {
		if v < 0 || v > 100 {
			return ErrStarValues
		}
	}
	if !anyPositive(values) {
		return ErrStarNoPositive
	}
	return nil
}

func anyPositive(values []int) bool {
	return slices.ContainsFunc(values, func(v int) bool { return v > 0 })
}
