package config

// Defaults applied after all sources are merged.
const (
	// DefaultDSN is the SQLite file used when no DSN is configured.
	DefaultDSN = "secwatch.db"

	// DefaultBusyTimeoutMS bounds the SQLite lock wait. Contention from
	// multiple logical callers inside one process waits up to this long
	// instead of failing immediately.
	DefaultBusyTimeoutMS = 5000
)

// applyDefaults fills in values that every deployment needs but no source
// supplied. Called once by the builder after merging.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDSN
	}
	if cfg.Storage.DB.BusyTimeoutMS == 0 {
		cfg.Storage.DB.BusyTimeoutMS = DefaultBusyTimeoutMS
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.BusyTimeoutMS < 0 {
		return ErrInvalidStorageConfigs
	}

	return nil
}
