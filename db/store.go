// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/czoodle-vote/ballot"
	"github.com/danielhkuo/czoodle-vote/models"
)

var (
	ErrNotFound      = errors.New("vote not found")
	ErrStorage       = errors.New("storage error")
	ErrDuplicateVote = fmt.Errorf("%w: duplicate vote id", ErrStorage)
)

// Database types accepted by Open
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Store persists vote rows keyed by vote id.
// Put must reject a second row with the same id.
type Store interface {
	Put(ctx context.Context, row *models.VoteRow) error
	Get(ctx context.Context, id string) (models.VoteRow, error)
}

// Open connects to the database and verifies the connection
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case TypePostgres, TypeSQLite:
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serializes writers anyway
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

// SQLStore keeps votes in the votes table of a postgres or sqlite database
type SQLStore struct {
	db         *sql.DB
	candidates int
	insertSQL  string
	selectSQL  string
}

func NewSQLStore(db *sql.DB, dbType string, candidates int) *SQLStore {
	cols := voteColumns(candidates)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = placeholder(dbType, i+1)
	}

	return &SQLStore{
		db:         db,
		candidates: candidates,
		insertSQL: "INSERT INTO votes (" + strings.Join(cols, ", ") + ") VALUES (" +
			strings.Join(placeholders, ", ") + ")",
		selectSQL: "SELECT " + strings.Join(cols, ", ") + " FROM votes WHERE id = " +
			placeholder(dbType, 1),
	}
}

func placeholder(dbType string, n int) string {
	if dbType == TypePostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Put inserts a new row. A row with the same id yields ErrDuplicateVote.
func (s *SQLStore) Put(ctx context.Context, row *models.VoteRow) error {
	args := make([]any, 0, 5+models.MethodCount*s.candidates)
	args = append(args, row.ID, row.Nonces, row.Permutation, row.Strength, row.IPHash)
	for _, m := range models.AllMethods {
		if len(row.Columns[m]) != s.candidates {
			return fmt.Errorf("%w: %v has %d columns, want %d", ballot.ErrUnencodable, m, len(row.Columns[m]), s.candidates)
		}
		for _, v := range row.Columns[m] {
			args = append(args, v)
		}
	}

	if _, err := s.db.ExecContext(ctx, s.insertSQL, args...); err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateVote, row.ID)
		}
		return fmt.Errorf("%w: insert vote: %v", ErrStorage, err)
	}
	return nil
}

// Get loads the row for id. A missing row yields ErrNotFound.
// Numeric columns are read as text and parsed here, so a value that is not
// an integer is reported as ballot.ErrMalformedRow rather than a storage error.
func (s *SQLStore) Get(ctx context.Context, id string) (models.VoteRow, error) {
	var rowID, nonces, permutation, strength, ipHash sql.NullString
	values := make([]sql.NullString, models.MethodCount*s.candidates)

	dest := make([]any, 0, 5+len(values))
	dest = append(dest, &rowID, &nonces, &permutation, &strength, &ipHash)
	for i := range values {
		dest = append(dest, &values[i])
	}

	err := s.db.QueryRowContext(ctx, s.selectSQL, id).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VoteRow{}, ErrNotFound
	}
	if err != nil {
		return models.VoteRow{}, fmt.Errorf("%w: select vote: %v", ErrStorage, err)
	}

	if !rowID.Valid || !nonces.Valid || !permutation.Valid || !ipHash.Valid {
		return models.VoteRow{}, fmt.Errorf("%w: null field in vote %s", ballot.ErrMalformedRow, id)
	}

	strengthValue, err := parseColumn(strength, "strength", id)
	if err != nil {
		return models.VoteRow{}, err
	}

	row := models.VoteRow{
		ID:          rowID.String,
		Nonces:      nonces.String,
		Permutation: permutation.String,
		Strength:    strengthValue,
		IPHash:      ipHash.String,
	}
	for i, m := range models.AllMethods {
		column := make([]int, s.candidates)
		for slot := range column {
			v, err := parseColumn(values[i*s.candidates+slot], m.Column(slot), id)
			if err != nil {
				return models.VoteRow{}, err
			}
			column[slot] = v
		}
		row.Columns[m] = column
	}
	return row, nil
}

// parseColumn converts one integer column; NULL and non-integers are malformed
func parseColumn(v sql.NullString, column, id string) (int, error) {
	if !v.Valid {
		return 0, fmt.Errorf("%w: null %s in vote %s", ballot.ErrMalformedRow, column, id)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.String))
	if err != nil {
		return 0, fmt.Errorf("%w: %s in vote %s: %v", ballot.ErrMalformedRow, column, id, err)
	}
	return n, nil
}

func isDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return true
		}
		return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE")
	}
	return false
}
