// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot validates votes and converts them to the flat storage row.

# Validation

Validator runs the checks in a fixed order and returns the first
violation:

	uuid → nonces → order → oneRound → twoRound → divide → d21 → doodle → order poll → star

Every violation is a *ValidationError sentinel such as ErrD21TooManyPositive.
All of them match ErrValidation:

	if errors.Is(err, ballot.ErrValidation) { ... }

Nonces must be non-empty and free of commas, since they are stored
comma-joined; the chain itself is checked only after that.

Method rules (N candidates):

  - oneRound, twoRound: slot in [0, N) or -1 (abstain)
  - divide: N integers in [0, budget] summing to the budget (5)
  - d21: N values in {-1, 0, 1}; 1-3 positives; at most one negative,
    and only with at least two positives
  - doodle: N values in {0, 1, 2}; at least one positive
  - order: a permutation of [0, N)
  - star: N values in [0, 100]; at least one positive

# Codec

Codec.Encode writes N columns per method. Single-winner methods are
one-hot flags; everything else is copied verbatim. Decode reverses it.

Decode is lenient in two documented ways, both controlled by Leniency:

  - FirstPositiveFlag: a single-winner column with several flags set
    decodes to the first one
  - DropNonNumericOrder: unparsable permutation tokens are skipped
*/
package ballot
