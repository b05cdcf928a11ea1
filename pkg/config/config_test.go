package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{EnvTCPPort, EnvUDPPort, EnvWSPort, EnvAPIPort, EnvDatabaseURL, EnvLogLevel, EnvTickRate, EnvServerHost} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv(EnvTCPPort, "7000")
	t.Setenv(EnvTickRate, "60")
	t.Setenv(EnvDatabaseURL, "postgresql://localhost/torchlight")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.TCPPort)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, "postgresql://localhost/torchlight", cfg.DatabaseURL)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv(EnvUDPPort, "not-a-port")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv(EnvUDPPort, "")
	t.Setenv(EnvTickRate, "0")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv(EnvAPIPort, "")
	// godotenv never overrides variables that are already present
	require.NoError(t, os.Unsetenv(EnvAPIPort))
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(EnvAPIPort+"=9191\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.APIPort)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
