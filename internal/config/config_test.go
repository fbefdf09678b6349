package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/workbench/internal/config"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WORKBENCH_CONFIG_PATH", "WORKBENCH_SERVER_HOST", "WORKBENCH_SERVER_PORT",
		"WORKBENCH_TRANSPORT", "WORKBENCH_STATELESS", "WORKBENCH_LOG_LEVEL",
		"WORKBENCH_LOG_PATH", "WORKBENCH_ACTIVITY_DB", "WORKBENCH_ACTIVITY_ENABLED",
		"WORKBENCH_SEED_DATE", "WORKBENCH_TIMEZONE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, ":memory:", cfg.Activity.Path)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "workbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9000
transport:
  mode: http
  session_timeout: 5m
log:
  level: debug
seed:
  reference_date: "2024-01-10"
  timezone: UTC
`), 0o600))

	t.Setenv("WORKBENCH_CONFIG_PATH", path)
	t.Setenv("WORKBENCH_SERVER_PORT", "9100")
	t.Setenv("WORKBENCH_LOG_LEVEL", "warn")

	cfg, err := config.Load([]string{"--port", "9200", "--activity-db", "audit.db"})
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9200, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, 5*time.Minute, cfg.Transport.SessionTimeout)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "audit.db", cfg.Activity.Path)
	require.True(t, cfg.Activity.Enabled)

	loc, err := cfg.Seed.Location()
	require.NoError(t, err)
	ref, err := cfg.Seed.Reference(time.Now(), loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), ref)
}

func TestLoad_ConfigFlagOverridesEnvPath(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.yaml")
	flagPath := filepath.Join(dir, "flag.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("server:\n  port: 1111\n"), 0o600))
	require.NoError(t, os.WriteFile(flagPath, []byte("server:\n  port: 2222\n"), 0o600))
	t.Setenv("WORKBENCH_CONFIG_PATH", envPath)

	cfg, err := config.Load([]string{"--config", flagPath})
	require.NoError(t, err)
	require.Equal(t, 2222, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	_, err := config.Load([]string{"--transport", "carrier-pigeon"})
	require.Error(t, err)

	t.Setenv("WORKBENCH_SERVER_PORT", "eighty")
	_, err = config.Load(nil)
	require.Error(t, err)

	clearEnv(t)
	_, err = config.Load([]string{"--seed-date", "yesterday"})
	require.Error(t, err)

	_, err = config.Load([]string{"--timezone", "Mars/Olympus_Mons"})
	require.Error(t, err)

	_, err = config.Load([]string{"--no-such-flag"})
	require.Error(t, err)
}

func TestLoad_Help(t *testing.T) {
	clearEnv(t)

	_, err := config.Load([]string{"-h"})
	require.True(t, config.IsHelp(err))
}
