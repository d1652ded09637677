// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/czoodle-vote/ballot"
	"github.com/danielhkuo/czoodle-vote/db"
	"github.com/danielhkuo/czoodle-vote/middleware"
	"github.com/danielhkuo/czoodle-vote/models"
	"github.com/danielhkuo/czoodle-vote/vote"
)

type VoteHandler struct {
	svc *vote.Service
}

func NewVoteHandler(svc *vote.Service) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// AddVote handles POST /add_vote and POST /votes
func (h *VoteHandler) AddVote(w http.ResponseWriter, r *http.Request) {
	var req models.Vote
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.Submit(r.Context(), &req, middleware.GetClientIP(r)); err != nil {
		writeVoteError(w, err)
		return
	}

	// no body on success
	w.WriteHeader(http.StatusCreated)
}

// GetVote handles GET /get_vote?uuid= and GET /votes/{id}
func (h *VoteHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		id = r.URL.Query().Get("uuid")
	}
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "uuid is required")
		return
	}

	v, err := h.svc.Fetch(r.Context(), id)
	if err != nil {
		writeVoteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, v)
}

// writeVoteError maps service errors to status codes.
// Storage details stay in the server log.
func writeVoteError(w http.ResponseWriter, err error) {
	var verr *ballot.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, db.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
	case errors.Is(err, db.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "Vote already submitted")
	case errors.Is(err, ballot.ErrMalformedRow):
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Stored vote is malformed")
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
