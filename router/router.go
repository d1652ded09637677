// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/czoodle-vote/handlers"
	"github.com/danielhkuo/czoodle-vote/middleware"
	"github.com/danielhkuo/czoodle-vote/vote"
)

// NewRouter registers the vote API. A nil gatherer leaves /metrics unregistered.
func NewRouter(svc *vote.Service, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	voteHandler := handlers.NewVoteHandler(svc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Paths used by the poll frontend
	mux.HandleFunc("POST /add_vote", middleware.WithLogging(voteHandler.AddVote))
	mux.HandleFunc("GET /get_vote", middleware.WithLogging(voteHandler.GetVote))

	// REST aliases
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.AddVote))
	mux.HandleFunc("GET /votes/{id}", middleware.WithLogging(voteHandler.GetVote))

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("czoodle-vote API v1"))
	})

	return mux
}
