// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	HashSalt     string

	// Proof-of-work
	NonceTag    string
	NoncePrefix string
	MinRounds   int

	// Ballot layout
	Candidates   int
	DivideBudget int
}

// LoadDotEnv reads variables from .env files into the environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("czoodle-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.HashSalt, "hash-salt", "", "IP hash salt (prefer env)")

	fs.StringVar(&cfg.NonceTag, "nonce-tag", "", "Proof-of-work chain tag")
	fs.StringVar(&cfg.NoncePrefix, "nonce-prefix", "", "Required digest prefix of every proof-of-work link")
	fs.IntVar(&cfg.MinRounds, "min-rounds", -1, "Minimum number of proof-of-work nonces")
	fs.IntVar(&cfg.Candidates, "candidates", 0, "Number of candidates")
	fs.IntVar(&cfg.DivideBudget, "divide-budget", 0, "Points to distribute in the divide poll")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	var err error
	if cfg.Port, err = intSetting(cfg.Port, 0, "PORT", 3318); err != nil {
		return Config{}, err
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	cfg.DatabaseType = stringSetting(cfg.DatabaseType, "DATABASE_TYPE", "sqlite")
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	cfg.NonceTag = stringSetting(cfg.NonceTag, "NONCE_TAG", "czoodle")
	cfg.NoncePrefix = stringSetting(cfg.NoncePrefix, "NONCE_PREFIX", "777")

	if cfg.MinRounds, err = intSetting(cfg.MinRounds, -1, "MIN_ROUNDS", 0); err != nil {
		return Config{}, err
	}
	if cfg.MinRounds < 0 {
		return Config{}, errors.New("MIN_ROUNDS must not be negative")
	}

	if cfg.Candidates, err = intSetting(cfg.Candidates, 0, "CANDIDATE_COUNT", 10); err != nil {
		return Config{}, err
	}
	if cfg.Candidates < 1 {
		return Config{}, errors.New("CANDIDATE_COUNT must be at least 1")
	}

	if cfg.DivideBudget, err = intSetting(cfg.DivideBudget, 0, "DIVIDE_BUDGET", 5); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.HashSalt == "" {
		cfg.HashSalt = os.Getenv("HASH_SALT")
	}
	if cfg.HashSalt == "" {
		return Config{}, errors.New("HASH_SALT required")
	}

	return cfg, nil
}

func stringSetting(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// intSetting returns value unless it equals unset, then the env variable, then def
func intSetting(value, unset int, env string, def int) (int, error) {
	if value != unset {
		return value, nil
	}
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return v, nil
}
