// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingChoice is returned when a polls object omits a single-winner field.
// A missing field must not decode as a vote for slot 0.
var ErrMissingChoice = errors.New("polls: twoRound and oneRound are required")

// UnmarshalJSON decodes polls and requires twoRound and oneRound to be present
func (p *Polls) UnmarshalJSON(data []byte) error {
	type plain Polls
	aux := struct {
		TwoRound *int `json:"twoRound"`
		OneRound *int `json:"oneRound"`
		*plain
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.TwoRound == nil || aux.OneRound == nil {
		return ErrMissingChoice
	}
	p.TwoRound = *aux.TwoRound
	p.OneRound = *aux.OneRound
	return nil
}

// Choice returns the chosen slot of a single-winner method
func (p *Polls) Choice(m Method) int {
	switch m {
	case MethodTwoRound:
		return p.TwoRound
	case MethodOneRound:
		return p.OneRound
	}
	panic(fmt.Sprintf("models: %v is not a single-winner method", m))
}

// SetChoice sets the chosen slot of a single-winner method
func (p *Polls) SetChoice(m Method, slot int) {
	switch m {
	case MethodTwoRound:
		p.TwoRound = slot
	case MethodOneRound:
		p.OneRound = slot
	default:
		panic(fmt.Sprintf("models: %v is not a single-winner method", m))
	}
}

// Values returns the per-candidate values of a multi-value method
func (p *Polls) Values(m Method) []int {
	switch m {
	case MethodDivide:
		return p.Divide
	case MethodD21:
		return p.D21
	case MethodDoodle:
		return p.Doodle
	case MethodOrder:
		return p.Order
	case MethodStar:
		return p.Star
	}
	panic(fmt.Sprintf("models: %v is not a multi-value method", m))
}

// SetValues sets the per-candidate values of a multi-value method
func (p *Polls) SetValues(m Method, values []int) {
	switch m {
	case MethodDivide:
		p.Divide = values
	case MethodD21:
		p.D21 = values
	case MethodDoodle:
		p.Doodle = values
	case MethodOrder:
		p.Order = values
	case MethodStar:
		p.Star = values
	default:
		panic(fmt.Sprintf("models: %v is not a multi-value method", m))
	}
}
