// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecOps Lab

package config

// StructuredConfig is the top-level configuration container for the
// secwatch application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence inputs: the
	// relational database, the legacy flat-file credential store, and
	// the batch-seed data directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Shown on the console welcome screen.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage inputs used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Legacy holds the flat-file credential store settings used as a
	// one-way migration source.
	Legacy Legacy `envPrefix:"LEGACY_"`

	// Seed holds the batch-ingestion input settings.
	Seed Seed `envPrefix:"SEED_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects and configures the backend. A "postgres://" prefix opens
	// a PostgreSQL connection via pgx; anything else is treated as a SQLite
	// file path (e.g. "secwatch.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// BusyTimeoutMS bounds how long SQLite waits for a lock held by
	// another caller before failing the statement. Zero selects the
	// default of 5000 ms.
	// Env: STORAGE_DB_BUSY_TIMEOUT_MS
	BusyTimeoutMS int `env:"BUSY_TIMEOUT_MS"`
}

// Legacy holds settings for the flat-file credential store
// ("username,password_hash,role" lines) consumed at seed time.
type Legacy struct {
	// UsersFile is the path to the legacy users.txt file. A missing file
	// is not an error; the migration step is skipped.
	// Env: STORAGE_LEGACY_USERS_FILE
	UsersFile string `env:"USERS_FILE"`
}

// Seed holds settings for startup batch ingestion.
type Seed struct {
	// DataDir is the directory scanned for cyber_incidents.csv,
	// it_tickets.csv, and datasets_metadata.csv. Missing files are
	// skipped silently.
	// Env: STORAGE_SEED_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}