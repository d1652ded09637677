// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/czoodle-vote/auth"
	"github.com/danielhkuo/czoodle-vote/ballot"
	"github.com/danielhkuo/czoodle-vote/cliparse"
	"github.com/danielhkuo/czoodle-vote/db"
	"github.com/danielhkuo/czoodle-vote/metrics"
	"github.com/danielhkuo/czoodle-vote/models"
)

// Service accepts and returns votes. It holds no per-vote state, so a
// single instance serves any number of concurrent requests.
type Service struct {
	store     db.Store
	validator *ballot.Validator
	codec     *ballot.Codec
	hashSalt  string
	metrics   *metrics.VoteMetrics
}

func NewService(store db.Store, cfg cliparse.Config, m *metrics.VoteMetrics) *Service {
	rules := ballot.Rules{
		Candidates:   cfg.Candidates,
		DivideBudget: cfg.DivideBudget,
	}
	chain := auth.NonceChain{
		Tag:       cfg.NonceTag,
		Prefix:    cfg.NoncePrefix,
		MinRounds: cfg.MinRounds,
	}

	return &Service{
		store:     store,
		validator: ballot.NewValidator(rules, chain),
		codec:     ballot.NewCodec(cfg.Candidates),
		hashSalt:  cfg.HashSalt,
		metrics:   m,
	}
}

// Submit validates the vote, flattens it and stores it.
// Nothing is written when validation fails; the *ballot.ValidationError is returned as is.
func (s *Service) Submit(ctx context.Context, vote *models.Vote, origin string) error {
	if err := s.validator.Validate(vote); err != nil {
		field := "unknown"
		var verr *ballot.ValidationError
		if errors.As(err, &verr) {
			field = verr.Field
		}
		s.metrics.IncRejected(field)
		slog.Warn("vote rejected", "uuid", vote.UUID, "field", field, "reason", err)
		return err
	}

	ipHash := auth.HashOrigin(origin, s.hashSalt)
	row, err := s.codec.Encode(vote, ipHash)
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, &row); err != nil {
		if errors.Is(err, db.ErrDuplicateVote) {
			s.metrics.IncDuplicate()
			slog.Warn("duplicate vote", "uuid", vote.UUID, "ip_hash", ipHash)
		} else {
			s.metrics.IncStorageError()
			slog.Error("failed to store vote", "uuid", vote.UUID, "error", err)
		}
		return err
	}

	s.metrics.IncAccepted(len(vote.Nonces))
	slog.Info("vote stored",
		"uuid", vote.UUID,
		"rounds", len(vote.Nonces),
		"work", humanize.Comma(int64(s.validator.Chain.ExpectedHashes(len(vote.Nonces)))),
		"ip_hash", ipHash,
	)
	return nil
}

// Fetch loads a stored vote by uuid.
// Returns db.ErrNotFound for an unknown uuid and ballot.ErrMalformedRow for rows that cannot be decoded.
func (s *Service) Fetch(ctx context.Context, id string) (models.Vote, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			s.metrics.IncRead(metrics.ReadNotFound)
		case errors.Is(err, ballot.ErrMalformedRow):
			s.metrics.IncRead(metrics.ReadMalformed)
			slog.Error("malformed vote row", "uuid", id, "error", err)
		default:
			s.metrics.IncRead(metrics.ReadError)
			slog.Error("failed to load vote", "uuid", id, "error", err)
		}
		return models.Vote{}, err
	}

	vote, err := s.codec.Decode(&row)
	if err != nil {
		s.metrics.IncRead(metrics.ReadMalformed)
		slog.Error("malformed vote row", "uuid", id, "error", err)
		return models.Vote{}, fmt.Errorf("decode vote %s: %w", id, err)
	}

	s.metrics.IncRead(metrics.ReadFound)
	return vote, nil
}
