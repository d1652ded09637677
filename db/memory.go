// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielhkuo/czoodle-vote/models"
)

// MemoryStore is an in-process Store used by tests and local runs
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]models.VoteRow
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]models.VoteRow)}
}

func (s *MemoryStore) Put(ctx context.Context, row *models.VoteRow) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[row.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVote, row.ID)
	}
	s.rows[row.ID] = cloneRow(row)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (models.VoteRow, error) {
	if err := ctx.Err(); err != nil {
		return models.VoteRow{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return models.VoteRow{}, ErrNotFound
	}
	return cloneRow(&row), nil
}

// Len returns the number of stored rows
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

func cloneRow(row *models.VoteRow) models.VoteRow {
	out := *row
	for m := range out.Columns {
		out.Columns[m] = append([]int(nil), row.Columns[m]...)
	}
	return out
}
