package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/czoodle-vote/auth"
	"github.com/danielhkuo/czoodle-vote/cliparse"
	"github.com/danielhkuo/czoodle-vote/db"
	"github.com/danielhkuo/czoodle-vote/metrics"
	"github.com/danielhkuo/czoodle-vote/middleware"
	"github.com/danielhkuo/czoodle-vote/router"
	"github.com/danielhkuo/czoodle-vote/vote"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	if err := cliparse.LoadDotEnv(); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.Candidates); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType, "candidates", cfg.Candidates)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	voteMetrics := &metrics.VoteMetrics{}
	voteMetrics.Register(registry)

	store := db.NewSQLStore(dbConn, cfg.DatabaseType, cfg.Candidates)
	svc := vote.NewService(store, cfg, voteMetrics)

	chain := auth.NonceChain{Tag: cfg.NonceTag, Prefix: cfg.NoncePrefix, MinRounds: cfg.MinRounds}
	slog.Info("Proof-of-work",
		"tag", chain.Tag,
		"prefix", chain.Prefix,
		"min_rounds", chain.MinRounds,
		"hashes_per_round", humanize.Comma(int64(chain.ExpectedHashes(1))),
	)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(router.NewRouter(svc, registry)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Wait for Ctrl-C signal
		<-signalCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
