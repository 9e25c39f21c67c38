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

// Defaults
const (
	DefaultPort        = 3318
	DefaultTotalBudget = 50000
	DefaultSQLitePath  = "audience-choice.db"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	AdminKey          string
	IPHashSalt        string
	TotalBudget       int64
	RequireAccessCode bool
}

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first; variables that
// are already set are not overridden.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	fs := flag.NewFlagSet("audience-choice", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	// Voting rules
	fs.Int64Var(&cfg.TotalBudget, "budget", 0, "Budget each voter must allocate")
	fs.BoolVar(&cfg.RequireAccessCode, "require-code", true, "Require an access code to vote")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLitePath
	}

	if cfg.TotalBudget == 0 {
		if budgetStr := os.Getenv("TOTAL_BUDGET"); budgetStr != "" {
			budget, err := strconv.ParseInt(budgetStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid TOTAL_BUDGET env variable")
			}
			cfg.TotalBudget = budget
		} else {
			cfg.TotalBudget = DefaultTotalBudget
		}
	}
	if cfg.TotalBudget <= 0 {
		return Config{}, errors.New("total budget must be positive")
	}

	if !set["require-code"] {
		if v := os.Getenv("REQUIRE_ACCESS_CODE"); v != "" {
			require, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid REQUIRE_ACCESS_CODE env variable")
			}
			cfg.RequireAccessCode = require
		}
	}

	// Secrets - admin key MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = cfg.AdminKey
	}

	return cfg, nil
}
