package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvLocal)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.RunAddress)
	assert.Equal(t, SecretKey, cfg.Auth.Secret)
	assert.True(t, cfg.Auth.DefaultSecret)
	assert.False(t, cfg.Server.TrustProxy)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, BlobLocal, cfg.Upload.Backend)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Seed.Alerts)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("RUN_ADDRESS", ":8080")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("BLOB_BACKEND", "S3")
	t.Setenv("SEED_ALERTS", "false")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, "s3cr3t", cfg.Auth.Secret)
	assert.False(t, cfg.Auth.DefaultSecret)
	assert.True(t, cfg.Server.TrustProxy)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, BlobS3, cfg.Upload.Backend)
	assert.False(t, cfg.Seed.Alerts)
}

func TestLoad_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_UnknownBlobBackend(t *testing.T) {
	t.Setenv("APP_ENV", EnvLocal)
	t.Setenv("BLOB_BACKEND", "ftp")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("APP_ENV", EnvLocal)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run_address: \":7000\"\nupload_dir: /tmp/img\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.RunAddress)
	assert.Equal(t, "/tmp/img", cfg.Upload.Dir)
}
