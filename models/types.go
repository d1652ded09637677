// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "strconv"

// Deployment defaults
const (
	DefaultCandidateCount = 10
	DefaultDivideBudget   = 5
)

// Abstain is the single-winner value for "no candidate chosen"
const Abstain = -1

// Method identifies one poll method on the ballot.
// Values follow the column order of the votes table.
type Method int

const (
	MethodTwoRound Method = iota
	MethodOneRound
	MethodDivide
	MethodD21
	MethodDoodle
	MethodOrder
	MethodStar

	MethodCount = 7
)

// AllMethods lists every method in storage column order
var AllMethods = [MethodCount]Method{
	MethodTwoRound,
	MethodOneRound,
	MethodDivide,
	MethodD21,
	MethodDoodle,
	MethodOrder,
	MethodStar,
}

var methodInfo = [MethodCount]struct {
	name   string
	prefix string
	single bool
}{
	MethodTwoRound: {"twoRound", "rd2", true},
	MethodOneRound: {"oneRound", "rd1", true},
	MethodDivide:   {"divide", "div", false},
	MethodD21:      {"d21", "d21", false},
	MethodDoodle:   {"doodle", "ddl", false},
	MethodOrder:    {"order", "ord", false},
	MethodStar:     {"star", "str", false},
}

// String returns the JSON field name of the method
func (m Method) String() string {
	if m < 0 || m >= MethodCount {
		return "method(" + strconv.Itoa(int(m)) + ")"
	}
	return methodInfo[m].name
}

// ColumnPrefix returns the short prefix of the method's storage columns
func (m Method) ColumnPrefix() string {
	return methodInfo[m].prefix
}

// SingleWinner reports whether the method is stored as one-hot flags
func (m Method) SingleWinner() bool {
	return methodInfo[m].single
}

// Column returns the storage column name for a candidate slot, e.g. "rd1_3"
func (m Method) Column(slot int) string {
	return m.ColumnPrefix() + "_" + strconv.Itoa(slot)
}

// Request/response types

// Polls is the per-method ballot container of a vote.
type Polls struct {
	TwoRound int   `json:"twoRound"`
	OneRound int   `json:"oneRound"`
	Divide   []int `json:"divide"`
	D21      []int `json:"d21"`
	Doodle   []int `json:"doodle"`
	Order    []int `json:"order"`
	Star     []int `json:"star"`
}

// Vote is one submission as the frontend sends and receives it
type Vote struct {
	UUID   string   `json:"uuid"`
	Nonces []string `json:"nonces"`
	Order  []int    `json:"order"`
	Polls  Polls    `json:"polls"`
}

// Storage types

// VoteRow is the flat form of a vote in the votes table.
// Columns holds exactly N values per method, indexed by Method then slot.
type VoteRow struct {
	ID          string
	Nonces      string
	Permutation string
	Strength    int
	IPHash      string
	Columns     [MethodCount][]int
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
