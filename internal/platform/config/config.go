// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, Mission Clock) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/syncbridge/internal/platform/sec"
	"github.com/taibuivan/syncbridge/pkg/query"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// MissionDateLayout is the accepted format of MISSION_START_DATE.
const MissionDateLayout = "2006-01-02"

// # Configuration Schema

// Config holds all runtime configuration for the SyncBridge API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Honor X-Real-IP / X-Forwarded-For. Enable only behind a proxy that
	// overwrites them, otherwise clients can pick their own throttle key.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// Storage backend selection
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL"`
	// DatabaseMaxConns caps the pgx pool size.
	DatabaseMaxConns int32 `env:"DATABASE_MAX_CONNS" envDefault:"10"`

	// Embedded Database (SQLite), used when StorageDriver is "sqlite"
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/syncbridge.db"`

	// Key-Value Cache (Redis). Optional: enables the admin lockout.
	RedisURL string `env:"REDIS_URL"`

	// Admin shared secret. Exactly one of the two must be set.
	AdminPassword          string        `env:"ADMIN_PASSWORD"`
	AdminPasswordHash      string        `env:"ADMIN_PASSWORD_HASH"`
	AdminMaxFailedAttempts int           `env:"ADMIN_MAX_FAILED_ATTEMPTS" envDefault:"5"`
	AdminLockoutWindow     time.Duration `env:"ADMIN_LOCKOUT_WINDOW"      envDefault:"15m"`

	// Mission timeline
	MissionStart     string `env:"MISSION_START_DATE" envDefault:"2026-02-22"`
	MissionTotalDays int    `env:"MISSION_TOTAL_DAYS" envDefault:"325"`

	// MissionStartDate is MissionStart parsed by Load.
	MissionStartDate time.Time

	// Optional YAML catalog override. The built-in table is used when empty.
	CatalogPath string `env:"CATALOG_PATH"`

	// Cross-Origin Resource Sharing (comma separated, "*" allowed)
	CORSOrigins string `env:"CORS_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces the cross-field rules env tags cannot express and
// resolves derived values.
func (c *Config) validate() error {
	var problems []error

	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, errors.New("SQLITE_PATH is required when STORAGE_DRIVER=sqlite"))
		}
	default:
		problems = append(problems, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.StorageDriver))
	}

	if (c.AdminPassword == "") == (c.AdminPasswordHash == "") {
		problems = append(problems, errors.New("exactly one of ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set"))
	}

	if c.AdminPasswordHash != "" && !sec.ValidHash(c.AdminPasswordHash) {
		problems = append(problems, errors.New("ADMIN_PASSWORD_HASH is not a bcrypt hash (generate one with `api hash-password`)"))
	}

	if c.AdminMaxFailedAttempts < 1 {
		problems = append(problems, errors.New("ADMIN_MAX_FAILED_ATTEMPTS must be at least 1"))
	}

	if c.MissionTotalDays < 1 {
		problems = append(problems, errors.New("MISSION_TOTAL_DAYS must be at least 1"))
	}

	start, err := time.Parse(MissionDateLayout, c.MissionStart)
	if err != nil {
		problems = append(problems, fmt.Errorf("MISSION_START_DATE must be YYYY-MM-DD: %w", err))
	}
	c.MissionStartDate = start

	if len(problems) > 0 {
		return fmt.Errorf("config: %w", errors.Join(problems...))
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the configured CORS origins.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.CORSOrigins)
}
