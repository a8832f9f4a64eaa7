package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"server_base_url":     "http://api.example:9000",
		"backend":             "mock",
		"database_path":       "alt.db",
		"office_latitude":     51.5074,
		"office_longitude":    -0.1278,
		"office_radius_km":    0.3,
		"provider_permission": true,
		"position_max_age":    "20s",
		"position_timeout":    "30s",
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "http://api.example:9000", cfg.ServerBaseURL)
		assert.Equal(t, BackendMock, cfg.Backend)
		assert.Equal(t, "alt.db", cfg.DatabasePath)
		assert.Equal(t, 51.5074, cfg.OfficeLatitude)
		assert.Equal(t, 0.3, cfg.OfficeRadiusKm)
		assert.True(t, cfg.ProviderPermission)
		assert.Equal(t, 20*time.Second, cfg.PositionMaxAge)
		assert.Equal(t, 30*time.Second, cfg.PositionTimeout)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerBaseURL: "http://defaults:1234", PositionTimeout: 42 * time.Second}
		parseJson(cfg)

		assert.Equal(t, "http://defaults:1234", cfg.ServerBaseURL)
		assert.Equal(t, 42*time.Second, cfg.PositionTimeout)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
