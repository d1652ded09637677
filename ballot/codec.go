// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danielhkuo/czoodle-vote/models"
)

const listSeparator = ","

// Leniency controls how forgiving Decode is with rows written by older clients.
type Leniency struct {
	// FirstPositiveFlag decodes a single-winner method as the first flag > 0
	// even if more than one flag is set. When false such rows are malformed.
	FirstPositiveFlag bool
	// DropNonNumericOrder skips permutation tokens that are not integers.
	// When false such rows are malformed.
	DropNonNumericOrder bool
}

// DefaultLeniency is what every row written so far has been read with
func DefaultLeniency() Leniency {
	return Leniency{FirstPositiveFlag: true, DropNonNumericOrder: true}
}

// Codec maps votes to storage rows and back
type Codec struct {
	Candidates int
	Leniency   Leniency
}

func NewCodec(candidates int) *Codec {
	return &Codec{Candidates: candidates, Leniency: DefaultLeniency()}
}

// Encode flattens a validated vote into a storage row.
// Single-winner methods become N one-hot flags (all zero for Abstain),
// multi-value methods are copied verbatim.
func (c *Codec) Encode(vote *models.Vote, ipHash string) (models.VoteRow, error) {
	row := models.VoteRow{
		ID:          vote.UUID,
		Nonces:      strings.Join(vote.Nonces, listSeparator),
		Permutation: joinInts(vote.Order),
		Strength:    len(vote.Order),
		IPHash:      ipHash,
	}

	for _, m := range models.AllMethods {
		if m.SingleWinner() {
			flags, err := c.oneHot(vote.Polls.Choice(m))
			if err != nil {
				return models.VoteRow{}, fmt.Errorf("%w: %v: %v", ErrUnencodable, m, err)
			}
			row.Columns[m] = flags
			continue
		}

		values := vote.Polls.Values(m)
		if len(values) != c.Candidates {
			return models.VoteRow{}, fmt.Errorf("%w: %v has %d values, want %d", ErrUnencodable, m, len(values), c.Candidates)
		}
		row.Columns[m] = append([]int(nil), values...)
	}

	return row, nil
}

// Decode rebuilds the vote from a storage row.
func (c *Codec) Decode(row *models.VoteRow) (models.Vote, error) {
	vote := models.Vote{
		UUID:   row.ID,
		Nonces: splitList(row.Nonces),
	}

	order, err := c.parseOrder(row.Permutation)
	if err != nil {
		return models.Vote{}, err
	}
	vote.Order = order

	for _, m := range models.AllMethods {
		column := row.Columns[m]
		if len(column) != c.Candidates {
			return models.Vote{}, fmt.Errorf("%w: %v has %d columns, want %d", ErrMalformedRow, m, len(column), c.Candidates)
		}

		if m.SingleWinner() {
			choice, err := c.fromOneHot(column)
			if err != nil {
				return models.Vote{}, fmt.Errorf("%w: %v", err, m)
			}
			vote.Polls.SetChoice(m, choice)
			continue
		}

		vote.Polls.SetValues(m, append([]int(nil), column...))
	}

	return vote, nil
}

func (c *Codec) oneHot(choice int) ([]int, error) {
	flags := make([]int, c.Candidates)
	if choice == models.Abstain {
		return flags, nil
	}
	if choice < 0 || choice >= c.Candidates {
		return nil, fmt.Errorf("slot %d out of range", choice)
	}
	flags[choice] = 1
	return flags, nil
}

func (c *Codec) fromOneHot(flags []int) (int, error) {
	choice := models.Abstain
	for slot, flag := range flags {
		if flag <= 0 {
			continue
		}
		if choice == models.Abstain {
			choice = slot
			if c.Leniency.FirstPositiveFlag {
				break
			}
			continue
		}
		return 0, fmt.Errorf("%w: more than one flag set", ErrMalformedRow)
	}
	return choice, nil
}

func (c *Codec) parseOrder(permutation string) ([]int, error) {
	order := []int{}
	for _, token := range splitList(permutation) {
		v, err := strconv.Atoi(token)
		if err != nil {
			if c.Leniency.DropNonNumericOrder {
				continue
			}
			return nil, fmt.Errorf("%w: permutation token %q", ErrMalformedRow, token)
		}
		order = append(order, v)
	}
	return order, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, listSeparator)
}

// splitList is the inverse of strings.Join; the empty string is the empty list
func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, listSeparator)
}
