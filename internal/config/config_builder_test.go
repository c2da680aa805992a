package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// config populated only with defaults.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultBusyTimeoutMS, cfg.Storage.DB.BusyTimeoutMS)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result, earlier configs winning for non-zero fields.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "first.db"}}},
		&StructuredConfig{Storage: Storage{
			DB:     DB{DSN: "second.db", BusyTimeoutMS: 250},
			Legacy: Legacy{UsersFile: "data/users.txt"},
		}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "first.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 250, cfg.Storage.DB.BusyTimeoutMS)
	assert.Equal(t, "data/users.txt", cfg.Storage.Legacy.UsersFile)
}

// TestBuild_RejectsNegativeBusyTimeout verifies that validation fails when a
// source supplies a negative lock-wait bound.
func TestBuild_RejectsNegativeBusyTimeout(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{BusyTimeoutMS: -1}}},
	)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoPathIsNoop verifies that withJSON does nothing when no prior
// source supplied a JSON path.
func TestWithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestWithJSON_LoadsFromFile verifies that a JSON config referenced by a
// prior source is parsed and appended with lowest priority.
func TestWithJSON_LoadsFromFile(t *testing.T) {
	var jsonCfg StructuredJSONConfig
	jsonCfg.Storage.DB.DSN = "from-json.db"
	jsonCfg.Storage.Seed.DataDir = "data"
	path := writeTempJSONConfig(t, jsonCfg)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-json.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "data", cfg.Storage.Seed.DataDir)
}

// TestWithJSON_FileHigherSourceWins verifies that a DSN from an earlier
// (higher-priority) source is not overridden by the JSON file.
func TestWithJSON_FileHigherSourceWins(t *testing.T) {
	var jsonCfg StructuredJSONConfig
	jsonCfg.Storage.DB.DSN = "from-json.db"
	path := writeTempJSONConfig(t, jsonCfg)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Storage:      Storage{DB: DB{DSN: "from-env.db"}},
		JSONFilePath: path,
	})
	b.withJSON()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Storage.DB.DSN)
}

// TestWithJSON_MissingFileSetsError verifies that a dangling JSON path is
// reported as a builder error.
func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "does/not/exist.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// ── parseJSON ─────────────────────────────────────────────────────────────────

// TestParseJSON_InvalidContent verifies that malformed JSON is rejected.
func TestParseJSON_InvalidContent(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = parseJSON(f.Name())
	assert.Error(t, err)
}

// ── env ───────────────────────────────────────────────────────────────────────

// TestParseEnv_ReadsVariables verifies env tag mapping for the storage group.
func TestParseEnv_ReadsVariables(t *testing.T) {
	t.Setenv("STORAGE_DB_DATABASE_URI", "env.db")
	t.Setenv("STORAGE_LEGACY_USERS_FILE", "legacy/users.txt")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "legacy/users.txt", cfg.Storage.Legacy.UsersFile)
}
