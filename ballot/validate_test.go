// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/danielhkuo/czoodle-vote/auth"
	"github.com/danielhkuo/czoodle-vote/models"
)

const testUUID = "6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b"

func testChain() auth.NonceChain {
	return auth.NonceChain{Tag: auth.DefaultNonceTag, Prefix: "7"}
}

// validVote returns a vote that passes every rule with the default rules
func validVote() models.Vote {
	return models.Vote{
		UUID:   testUUID,
		Nonces: []string{},
		Order:  []int{3, 1, 0, 2, 4, 5, 6, 7, 8, 9},
		Polls: models.Polls{
			TwoRound: -1,
			OneRound: 3,
			Divide:   []int{5, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			D21:      []int{1, 1, 0, 0, -1, 0, 0, 0, 0, 0},
			Doodle:   []int{2, 1, 0, 0, 0, 0, 0, 0, 0, 0},
			Order:    []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
			Star:     []int{100, 50, 0, 0, 0, 0, 0, 0, 0, 1},
		},
	}
}

func TestValidate_ValidVote(t *testing.T) {
	v := NewValidator(DefaultRules(), testChain())
	vote := validVote()

	nonces, err := v.Chain.Mine(context.Background(), vote.UUID, 3)
	if err != nil {
		t.Fatalf("Mine() error = %v", err)
	}
	vote.Nonces = nonces

	if err := v.Validate(&vote); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *models.Vote)
		want   error
	}{
		{"short uuid", func(v *models.Vote) { v.UUID = "abc" }, ErrInvalidUUID},
		{"36 chars not a uuid", func(v *models.Vote) { v.UUID = "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz" }, ErrInvalidUUID},
		{"urn uuid", func(v *models.Vote) { v.UUID = "urn:uuid:" + testUUID }, ErrInvalidUUID},
		{"bad nonce", func(v *models.Vote) { v.Nonces = []string{"not-a-nonce-for-this-chain-0"} }, ErrInvalidNonces},
		{"order too short", func(v *models.Vote) { v.Order = []int{0, 1, 2} }, ErrOrderLength},
		{"order duplicate", func(v *models.Vote) { v.Order = []int{0, 0, 2, 3, 4, 5, 6, 7, 8, 9} }, ErrOrderPermutation},
		{"order out of range", func(v *models.Vote) { v.Order = []int{10, 1, 2, 3, 4, 5, 6, 7, 8, 9} }, ErrOrderPermutation},
		{"one-round too big", func(v *models.Vote) { v.Polls.OneRound = 10 }, ErrOneRound},
		{"one-round negative", func(v *models.Vote) { v.Polls.OneRound = -2 }, ErrOneRound},
		{"two-round too big", func(v *models.Vote) { v.Polls.TwoRound = 11 }, ErrTwoRound},
		{"divide length", func(v *models.Vote) { v.Polls.Divide = []int{5} }, ErrDivideLength},
		{"divide sum", func(v *models.Vote) { v.Polls.Divide = []int{5, 1, 0, 0, 0, 0, 0, 0, 0, 0} }, ErrDivideSum},
		{"d21 length", func(v *models.Vote) { v.Polls.D21 = nil }, ErrD21Length},
		{"d21 value", func(v *models.Vote) { v.Polls.D21 = []int{2, 0, 0, 0, 0, 0, 0, 0, 0, 0} }, ErrD21Values},
		{"d21 no positive", func(v *models.Vote) { v.Polls.D21 = make([]int, 10) }, ErrD21NoPositive},
		{"d21 four positive", func(v *models.Vote) { v.Polls.D21 = []int{1, 1, 1, 1, 0, 0, 0, 0, 0, 0} }, ErrD21TooManyPositive},
		{"d21 two negative", func(v *models.Vote) { v.Polls.D21 = []int{1, 1, 1, -1, -1, 0, 0, 0, 0, 0} }, ErrD21TooManyNegative},
		{"d21 negative with one positive", func(v *models.Vote) { v.Polls.D21 = []int{1, -1, 0, 0, 0, 0, 0, 0, 0, 0} }, ErrD21TooManyNegative},
		{"doodle length", func(v *models.Vote) { v.Polls.Doodle = []int{1, 1} }, ErrDoodleLength},
		{"doodle value", func(v *models.Vote) { v.Polls.Doodle = []int{3, 0, 0, 0, 0, 0, 0, 0, 0, 0} }, ErrDoodleValues},
		{"doodle negative", func(v *models.Vote) { v.Polls.Doodle = []int{1, -1, 0, 0, 0, 0, 0, 0, 0, 0} }, ErrDoodleValues},
		{"doodle empty", func(v *models.Vote) { v.Polls.Doodle = make([]int, 10) }, ErrDoodleNoPositive},
		{"order poll length", func(v *models.Vote) { v.Polls.Order = []int{0} }, ErrOrderPollLength},
		{"order poll not permutation", func(v *models.Vote) { v.Polls.Order = []int{1, 1, 2, 3, 4, 5, 6, 7, 8, 9} }, ErrOrderPoll},
		{"star length", func(v *models.Vote) { v.Polls.Star = []int{} }, ErrStarLength},
		{"star over 100", func(v *models.Vote) { v.Polls.Star = []int{101, 0, 0, 0, 0, 0, 0, 0, 0, 0} }, ErrStarValues},
		{"star negative", func(v *models.Vote) { v.Polls.Star = []int{-1, 5, 0, 0, 0, 0, 0, 0, 0, 0} }, ErrStarValues},
		{"star empty", func(v *models.Vote) { v.Polls.Star = make([]int, 10) }, ErrStarNoPositive},
	}

	// No hex digest starts with "zz", so any nonce breaks the chain
	v := NewValidator(DefaultRules(), auth.NonceChain{Tag: auth.DefaultNonceTag, Prefix: "zz"})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vote := validVote()
			tt.mutate(&vote)

			err := v.Validate(&vote)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error %v does not match ErrValidation", err)
			}
		})
	}
}

func TestValidate_FixedOrder(t *testing.T) {
	v := NewValidator(DefaultRules(), testChain())

	// Several simultaneous violations: the earliest in check order wins
	vote := validVote()
	vote.Polls.Star = nil
	vote.Polls.TwoRound = 42
	vote.Polls.OneRound = 42
	if err := v.Validate(&vote); !errors.Is(err, ErrOneRound) {
		t.Errorf("Validate() error = %v, want ErrOneRound", err)
	}

	vote = validVote()
	vote.Polls.Divide = nil
	vote.Order = nil
	if err := v.Validate(&vote); !errors.Is(err, ErrOrderLength) {
		t.Errorf("Validate() error = %v, want ErrOrderLength", err)
	}

	vote = validVote()
	vote.UUID = "short"
	vote.Order = nil
	if err := v.Validate(&vote); !errors.Is(err, ErrInvalidUUID) {
		t.Errorf("Validate() error = %v, want ErrInvalidUUID", err)
	}
}

func TestValidate_NonceErrors(t *testing.T) {
	chain := auth.NonceChain{Tag: auth.DefaultNonceTag, Prefix: "zz", MinRounds: 2}
	v := NewValidator(DefaultRules(), chain)

	vote := validVote()
	err := v.Validate(&vote)
	if !errors.Is(err, ErrTooFewNonces) || !errors.Is(err, auth.ErrTooFewNonces) {
		t.Errorf("Validate() error = %v, want ErrTooFewNonces", err)
	}

	vote.Nonces = []string{"a", "b"}
	err = v.Validate(&vote)
	if !errors.Is(err, ErrInvalidNonces) || !errors.Is(err, auth.ErrInvalidNonceChain) {
		t.Errorf("Validate() error = %v, want ErrInvalidNonces", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "nonces" {
		t.Errorf("expected ValidationError on field nonces, got %v", err)
	}
}

func TestValidate_NonceFormat(t *testing.T) {
	// an empty prefix accepts every link, so only the format check can reject
	v := NewValidator(DefaultRules(), auth.NonceChain{Tag: auth.DefaultNonceTag})

	tests := []struct {
		name   string
		nonces []string
		want   error
	}{
		{"plain", []string{"a", "227"}, nil},
		{"comma", []string{"a,227"}, ErrNonceFormat},
		{"empty nonce", []string{""}, ErrNonceFormat},
		{"empty after valid", []string{"1", ""}, ErrNonceFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vote := validVote()
			vote.Nonces = tt.nonces
			err := v.Validate(&vote)
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Errorf("Validate(nonces=%q) = %v, want %v", tt.nonces, err, tt.want)
			}
		})
	}

	// format is checked before the chain
	strict := NewValidator(DefaultRules(), auth.NonceChain{Tag: auth.DefaultNonceTag, Prefix: "zz"})
	vote := validVote()
	vote.Nonces = []string{"a,b"}
	if err := strict.Validate(&vote); !errors.Is(err, ErrNonceFormat) {
		t.Errorf("Validate() error = %v, want ErrNonceFormat", err)
	}
}

func TestValidate_Abstain(t *testing.T) {
	v := NewValidator(DefaultRules(), testChain())

	vote := validVote()
	vote.Polls.OneRound = models.Abstain
	vote.Polls.TwoRound = models.Abstain
	if err := v.Validate(&vote); err != nil {
		t.Errorf("Validate() with both abstaining error = %v", err)
	}
}

func TestDivideRule(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name   string
		values []int
		want   error
	}{
		{"all on one", []int{5, 0, 0, 0, 0, 0, 0, 0, 0, 0}, nil},
		{"split", []int{4, 0, 0, 0, 0, 0, 0, 0, 0, 1}, nil},
		{"spread", []int{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}, nil},
		{"sum six", []int{5, 1, 0, 0, 0, 0, 0, 0, 0, 0}, ErrDivideSum},
		{"sum zero", []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, ErrDivideSum},
		{"negative entry", []int{6, -1, 0, 0, 0, 0, 0, 0, 0, 0}, ErrDivideValues},
		{"entry over budget", []int{math.MaxInt32, 5 - math.MaxInt32, 0, 0, 0, 0, 0, 0, 0, 0}, ErrDivideValues},
		{"overflowing sum", []int{math.MaxInt, math.MaxInt, 7, 0, 0, 0, 0, 0, 0, 0}, ErrDivideValues},
		{"nine values", []int{5, 0, 0, 0, 0, 0, 0, 0, 0}, ErrDivideLength},
		{"eleven values", []int{5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, ErrDivideLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.Polls{Divide: tt.values}
			err := rules.ValidateMethod(models.MethodDivide, &p)
			if !errors.Is(err, tt.want) || (tt.want == nil && err != nil) {
				t.Errorf("divide(%v) = %v, want %v", tt.values, err, tt.want)
			}
		})
	}
}

func TestDivideRule_Property(t *testing.T) {
	rules := Rules{Candidates: 3, DivideBudget: 5}

	for a := -2; a <= 7; a++ {
		for b := -2; b <= 7; b++ {
			for c := -2; c <= 7; c++ {
				p := models.Polls{Divide: []int{a, b, c}}
				err := rules.ValidateMethod(models.MethodDivide, &p)
				inRange := a >= 0 && b >= 0 && c >= 0 && a <= 5 && b <= 5 && c <= 5
				accept := inRange && a+b+c == 5
				if (err == nil) != accept {
					t.Fatalf("divide([%d %d %d]) = %v, want accept=%v", a, b, c, err, accept)
				}
			}
		}
	}
}

func TestD21Rule_Property(t *testing.T) {
	rules := DefaultRules()
	values := make([]int, rules.Candidates)

	// Every ballot over {-1, 0, 1}^10
	var walk func(i int)
	walk = func(i int) {
		if i == len(values) {
			positive, negative := 0, 0
			for _, v := range values {
				if v > 0 {
					positive++
				} else if v < 0 {
					negative++
				}
			}
			accept := positive >= 1 && positive <= 3 && negative <= 1 && (negative == 0 || positive >= 2)

			p := models.Polls{D21: values}
			err := rules.ValidateMethod(models.MethodD21, &p)
			if (err == nil) != accept {
				t.Fatalf("d21(%v) = %v, want accept=%v", values, err, accept)
			}
			return
		}
		for _, v := range []int{-1, 0, 1} {
			values[i] = v
			walk(i + 1)
		}
	}
	walk(0)
}

func TestD21Rule_SlotPositionIrrelevant(t *testing.T) {
	rules := DefaultRules()

	// Negative before any positive in candidate order, three positives overall
	ballots := [][]int{
		{-1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
		{1, 1, -1, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 1, 1, -1},
	}
	for _, b := range ballots {
		p := models.Polls{D21: b}
		if err := rules.ValidateMethod(models.MethodD21, &p); err != nil {
			t.Errorf("d21(%v) = %v, want nil", b, err)
		}
	}
}

func TestPermutationRule_Property(t *testing.T) {
	for n := 1; n <= 6; n++ {
		rules := Rules{Candidates: n, DivideBudget: 5}

		identity := make([]int, n)
		for i := range identity {
			identity[i] = i
		}
		if err := rules.permutation(identity, ErrOrderLength, ErrOrderPermutation); err != nil {
			t.Errorf("n=%d identity rejected: %v", n, err)
		}

		reversed := make([]int, n)
		for i := range reversed {
			reversed[i] = n - 1 - i
		}
		if err := rules.permutation(reversed, ErrOrderLength, ErrOrderPermutation); err != nil {
			t.Errorf("n=%d reversed rejected: %v", n, err)
		}

		// Replace one element with a value that breaks the permutation
		for i := 0; i < n; i++ {
			for _, bad := range []int{-1, n, (i + 1) % n} {
				if n == 1 && bad == 0 {
					continue
				}
				broken := append([]int(nil), identity...)
				broken[i] = bad
				err := rules.permutation(broken, ErrOrderLength, ErrOrderPermutation)
				if !errors.Is(err, ErrOrderPermutation) {
					t.Errorf("n=%d %v accepted: %v", n, broken, err)
				}
			}
		}

		if err := rules.permutation(identity[:n-1], ErrOrderLength, ErrOrderPermutation); !errors.Is(err, ErrOrderLength) {
			t.Errorf("n=%d short order = %v, want ErrOrderLength", n, err)
		}
	}
}

func TestMethodRules_Complete(t *testing.T) {
	for _, m := range models.AllMethods {
		if methodRules[m] == nil {
			t.Errorf("no rule for method %v", m)
		}
	}
}
