// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/danielhkuo/czoodle-vote/models"
)

// ErrSchemaMismatch means an existing votes table was built for another candidate count
var ErrSchemaMismatch = errors.New("votes table does not match configured candidate count")

// CreateSchema creates the votes table for the given candidate count.
// Safe to call multiple times - uses IF NOT EXISTS. An existing table with a
// different column layout yields ErrSchemaMismatch.
func CreateSchema(db *sql.DB, candidates int) error {
	for _, stmt := range schemaStatements(candidates) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return CheckSchema(db, candidates)
}

// CheckSchema compares the columns of the votes table with the layout for candidates
func CheckSchema(db *sql.DB, candidates int) error {
	rows, err := db.Query(`SELECT * FROM votes LIMIT 0`)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	defer rows.Close()

	got, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	for i := range got {
		got[i] = strings.ToLower(got[i])
	}

	want := voteColumns(candidates)
	if !slices.Equal(got, want) {
		return fmt.Errorf("%w: table has %d columns, want %d for %d candidates",
			ErrSchemaMismatch, len(got), len(want), candidates)
	}
	return nil
}

func schemaStatements(candidates int) []string {
	var b strings.Builder
	b.WriteString(`CREATE TABLE IF NOT EXISTS votes (
    id TEXT PRIMARY KEY,
    nonces TEXT NOT NULL,
    permutation TEXT NOT NULL,
    strength INTEGER NOT NULL,
    ip_hash TEXT NOT NULL`)
	for _, m := range models.AllMethods {
		for slot := 0; slot < candidates; slot++ {
			b.WriteString(",\n    ")
			b.WriteString(m.Column(slot))
			b.WriteString(" INTEGER NOT NULL")
		}
	}
	b.WriteString("\n)")

	return []string{
		b.String(),
		`CREATE INDEX IF NOT EXISTS idx_votes_ip_hash ON votes(ip_hash)`,
	}
}

// voteColumns lists every column of the votes table in insert order
func voteColumns(candidates int) []string {
	cols := []string{"id", "nonces", "permutation", "strength", "ip_hash"}
	for _, m := range models.AllMethods {
		for slot := 0; slot < candidates; slot++ {
			cols = append(cols, m.Column(slot))
		}
	}
	return cols
}
