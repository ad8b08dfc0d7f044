package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POCKETLEDGER_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8761", cfg.Server.Addr)
	assert.Contains(t, cfg.Database.Path, "pocketledger.db")
	assert.Equal(t, "internal/database/migrations", cfg.Database.MigrationsPath)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[server]
addr = ":9999"

[database]
path = "/tmp/custom.db"
migrations_path = "/tmp/migrations"
`), 0o644))
	t.Setenv("POCKETLEDGER_CONFIG", cfgPath)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, "/tmp/migrations", cfg.Database.MigrationsPath)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("POCKETLEDGER_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("POCKETLEDGER_SERVER_ADDR", ":7000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}
