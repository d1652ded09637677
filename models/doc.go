// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the transport and storage shapes of a vote.

# Transport Types

Vote is the JSON body of POST /add_vote and GET /get_vote:

	{
	  "uuid": "0b6f4b2e-...",
	  "nonces": ["1234", "877"],
	  "order": [3, 1, 0, 2, 4, 5, 6, 7, 8, 9],
	  "polls": {
	    "twoRound": 2, "oneRound": -1,
	    "divide": [...], "d21": [...], "doodle": [...],
	    "order": [...], "star": [...]
	  }
	}

# Storage Types

VoteRow is one row of the votes table: id, joined nonces, joined
permutation, strength, ip_hash and N columns per poll method.

# Methods

Method enumerates the seven poll methods in column order:

	MethodTwoRound  rd2_*  one-hot
	MethodOneRound  rd1_*  one-hot
	MethodDivide    div_*
	MethodD21       d21_*
	MethodDoodle    ddl_*
	MethodOrder     ord_*
	MethodStar      str_*
*/
package models
