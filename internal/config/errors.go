package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, a negative busy timeout).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
